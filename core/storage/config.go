package storage

import "strings"

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket scene documents are stored in.
	Bucket string `mapstructure:"bucket" default:"collbool"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ScenePrefix is the object key prefix for scene documents.
	ScenePrefix string `mapstructure:"scene_prefix" default:"scenes/"`
}

// Prefix returns the scene prefix, always ending in '/'.
func (c Config) Prefix() string {
	p := c.ScenePrefix
	if p == "" {
		return "scenes/"
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// SceneKey returns the object key of the named scene document.
func (c Config) SceneKey(name, ext string) string {
	return c.Prefix() + name + ext
}
