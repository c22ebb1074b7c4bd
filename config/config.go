package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageDriverHTTP = "http"
	StorageDriverS3   = "s3"
)

type Config struct {
	Debug    bool   `envconfig:"debug"`
	Env      string `envconfig:"env" default:"dev"`
	Port     int    `envconfig:"port" default:"3000"`
	LogLevel string `envconfig:"log_level" default:"info"`

	PostgresHost     string `envconfig:"postgres_host" default:"localhost"`
	PostgresUser     string `envconfig:"postgres_user"`
	PostgresPassword string `envconfig:"postgres_password"`
	PostgresDB       string `envconfig:"postgres_db"`
	PostgresPort     int    `envconfig:"postgres_port" default:"5432"`
	PostgresSSLMode  string `envconfig:"postgres_sslmode" default:"disable"`

	DBMaxOpenConns    int           `envconfig:"db_max_open_conns" default:"10"`
	DBMaxIdleConns    int           `envconfig:"db_max_idle_conns" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"db_conn_max_lifetime" default:"30m"`

	JWTSecret string `envconfig:"jwt_secret"`

	// UploadURL is prefixed to every stored filename on read.
	UploadURL string `envconfig:"upload_url"`
	// UploadServer is the base address of the upload storage service.
	UploadServer  string `envconfig:"upload_server"`
	StorageDriver string `envconfig:"storage_driver" default:"http"`

	S3Bucket       string `envconfig:"s3_bucket"`
	S3Region       string `envconfig:"s3_region" default:"us-east-1"`
	S3Endpoint     string `envconfig:"s3_endpoint"`
	S3AccessKeyID  string `envconfig:"s3_access_key_id"`
	S3SecretKey    string `envconfig:"s3_secret_key"`
	S3UsePathStyle bool   `envconfig:"s3_use_path_style"`

	QueryTimeout   time.Duration `envconfig:"query_timeout" default:"5s"`
	StorageTimeout time.Duration `envconfig:"storage_timeout" default:"10s"`

	RateLimit       uint          `envconfig:"rate_limit" default:"30"`
	RateLimitWindow time.Duration `envconfig:"rate_limit_window" default:"1m"`

	AllowedOrigins string `envconfig:"allowed_origins"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("mediahub", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Origins splits AllowedOrigins on commas. An empty result means any origin.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
