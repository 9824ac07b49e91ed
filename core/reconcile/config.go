package reconcile

// Config holds engine settings.
type Config struct {
	// EffectPrefix tags generated effect names.
	EffectPrefix string `mapstructure:"effect_prefix" default:"collbool_"`
	// SettleRounds bounds how many notification rounds a scene update may
	// trigger before it stops re-dispatching.
	SettleRounds int `mapstructure:"settle_rounds" default:"4"`
	// CacheTTLSeconds is how long loaded scenes stay cached.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}
