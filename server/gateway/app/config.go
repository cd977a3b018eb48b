package app

import (
	"time"

	cmnenv "media_gateway/server/common/env"
)

// Config is read from the environment once at startup and passed
// explicitly to every component; nothing below the app layer reads the
// environment.
type Config struct {
	Host       string
	Port       string
	PublicHost string

	SMBHost     string
	SMBShare    string
	SMBUsername string
	SMBPassword string
	MountPoint  string

	StorageBackend string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	RedisAddr    string
	ListCacheTTL time.Duration
	PostgresDSN  string
	AMQPURL      string

	MaxUploadBytes int64

	LogPath       string
	LogLevel      string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func LoadConfig() Config {
	return Config{
		Host:       cmnenv.String("SERVER_HOST", "0.0.0.0"),
		Port:       cmnenv.String("PORT", "8080"),
		PublicHost: cmnenv.String("PUBLIC_HOST", ""),

		SMBHost:     cmnenv.String("SMB_HOST", "localhost"),
		SMBShare:    cmnenv.String("SMB_SHARE", "media"),
		SMBUsername: cmnenv.String("SMB_USERNAME", ""),
		SMBPassword: cmnenv.String("SMB_PASSWORD", ""),
		MountPoint:  cmnenv.String("SMB_MOUNT", "/mnt/smb-storage"),

		StorageBackend: cmnenv.String("STORAGE_BACKEND", "mount"),
		MinioEndpoint:  cmnenv.String("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: cmnenv.String("MINIO_ACCESS_KEY", "minio"),
		MinioSecretKey: cmnenv.String("MINIO_SECRET_KEY", "minio123"),
		MinioBucket:    cmnenv.String("MINIO_BUCKET", "supplier-media"),
		MinioUseSSL:    cmnenv.Bool("MINIO_USE_SSL", false),

		RedisAddr:    cmnenv.String("REDIS_ADDR", ""),
		ListCacheTTL: time.Duration(cmnenv.Int("LIST_CACHE_TTL_SECONDS", 30)) * time.Second,
		PostgresDSN:  cmnenv.String("POSTGRES_DSN", ""),
		AMQPURL:      cmnenv.String("AMQP_URL", ""),

		MaxUploadBytes: cmnenv.Int64("MAX_UPLOAD_MB", 50) * 1024 * 1024,

		LogPath:       cmnenv.String("LOG_PATH", "./logs/media_gateway.log"),
		LogLevel:      cmnenv.String("LOG_LEVEL", "info"),
		LogMaxSizeMB:  cmnenv.Int("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: cmnenv.Int("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: cmnenv.Int("LOG_MAX_AGE_DAYS", 7),
	}
}
