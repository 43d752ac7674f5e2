package storage

// Backend names supported by NewSource.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Backend selects the storage implementation (local, s3).
	Backend string `mapstructure:"backend" default:"local"`
	// RootDir is the uploads directory. Used by the local backend only.
	RootDir string `mapstructure:"root_dir" default:""`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding the uploads.
	Bucket string `mapstructure:"bucket" default:"uploads"`
	// Prefix scopes all keys beneath this bucket prefix.
	Prefix string `mapstructure:"prefix" default:""`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
