package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// SceneBackend selects where scene documents live (file, storage, database).
	SceneBackend string `mapstructure:"scene_backend" default:"file"`
	// SceneDir is the directory used by the file backend.
	SceneDir string `mapstructure:"scene_dir" default:"scenes"`
}

const (
	BackendFile     = "file"
	BackendStorage  = "storage"
	BackendDatabase = "database"
)

// IsValidSceneBackend checks if the configured scene backend is supported.
func (c Config) IsValidSceneBackend() bool {
	switch c.SceneBackend {
	case BackendFile, BackendStorage, BackendDatabase:
		return true
	default:
		return false
	}
}
