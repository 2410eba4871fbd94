package configuration

import (
	"fmt"
	"os"
)

const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

type Config struct {
	Database DatabaseConfig
	Remote   RemoteConfig
	Server   ServerConfig

	// StorageMode selects the blob backend for new uploads: "local" or "remote".
	StorageMode string

	NATSURL    string
	AuthIssuer string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RemoteConfig holds the object-storage credentials. Endpoint is the bare
// host (no scheme), e.g. "oss-cn-hangzhou.aliyuncs.com" or "localhost:9000".
type RemoteConfig struct {
	AccessKeyID     string
	AccessKeySecret string
	Endpoint        string
	Bucket          string
	CustomDomain    string
	UseSSL          bool
}

type ServerConfig struct {
	Port string

	// PublicHost is the externally visible host used when resolving local
	// references into URLs. May carry a scheme; without one the resolver
	// emits a scheme-relative URL.
	PublicHost string

	// LocalUploadDir is the disk root for the local backend.
	LocalUploadDir string

	// StaticPrefix is the URL path the local upload dir is served under.
	StaticPrefix string
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "adminpanel"),
			Password: getEnv("DB_PASSWORD", "adminpanel"),
			DBName:   getEnv("DB_NAME", "adminpanel"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Remote: RemoteConfig{
			AccessKeyID:     getEnv("OSS_ACCESS_KEY_ID", ""),
			AccessKeySecret: getEnv("OSS_ACCESS_KEY_SECRET", ""),
			Endpoint:        getEnv("OSS_ENDPOINT", ""),
			Bucket:          getEnv("OSS_BUCKET", ""),
			CustomDomain:    getEnv("OSS_CUSTOM_DOMAIN", ""),
			UseSSL:          getEnv("OSS_USE_SSL", "true") == "true",
		},
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			PublicHost:     getEnv("PUBLIC_HOST", "localhost:8080"),
			LocalUploadDir: getEnv("LOCAL_UPLOAD_DIR", "./public/uploads"),
			StaticPrefix:   getEnv("STATIC_PREFIX", "/uploads"),
		},
		StorageMode: getEnv("STORAGE_MODE", ModeLocal),
		NATSURL:     getEnv("NATS_URL", ""),
		AuthIssuer:  getEnv("AUTH_ISSUER", ""),
	}
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
