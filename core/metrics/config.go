package metrics

// Config holds configuration for the metrics endpoint.
type Config struct {
	// Enabled turns collection and the /metrics route on.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Path is the route the metrics are exposed on.
	Path string `mapstructure:"path" default:"/metrics"`
	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace" default:"collbool"`
}
