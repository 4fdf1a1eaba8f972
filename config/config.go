package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Upload   UploadConfig
	Kafka    KafkaConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	AppEnv         string        `env:"APP_ENV" envDefault:"dev"`
	HTTPPort       string        `env:"HTTP_PORT" envDefault:":8080"`
	GRPCHealthPort string        `env:"GRPC_HEALTH_PORT" envDefault:":8082"`
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

type LoggerConfig struct {
	Level             string `env:"LOGGER_LEVEL" envDefault:"debug"`
	Encoding          string `env:"LOGGER_ENCODING" envDefault:"console"`
	DisableCaller     bool   `env:"LOGGER_DISABLE_CALLER" envDefault:"false"`
	DisableStacktrace bool   `env:"LOGGER_DISABLE_STACKTRACE" envDefault:"true"`
}

type PostgresConfig struct {
	Host            string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string `env:"POSTGRES_PORT" envDefault:"5432"`
	User            string `env:"POSTGRES_USER" envDefault:"directory"`
	Password        string `env:"POSTGRES_PASSWORD" envDefault:"directory"`
	DBName          string `env:"POSTGRES_DB" envDefault:"directory"`
	SSLMode         string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int    `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int    `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime int    `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"300"`
	ConnMaxIdleTime int    `env:"POSTGRES_CONN_MAX_IDLE_TIME" envDefault:"60"`
}

// UploadConfig selects where multipart images end up. CloudinaryURL wins over
// the local directory when set.
type UploadConfig struct {
	Dir              string `env:"UPLOAD_DIR" envDefault:"uploads/stores"`
	PublicPrefix     string `env:"UPLOAD_PUBLIC_PREFIX" envDefault:"/uploads/stores"`
	ServeRoot        string `env:"UPLOAD_SERVE_ROOT" envDefault:"uploads"`
	MaxFileBytes     int64  `env:"UPLOAD_MAX_FILE_BYTES" envDefault:"5242880"`
	MaxRequestBytes  int64  `env:"UPLOAD_MAX_REQUEST_BYTES" envDefault:"67108864"`
	CloudinaryURL    string `env:"CLOUDINARY_URL"`
	CloudinaryFolder string `env:"CLOUDINARY_FOLDER" envDefault:"stores"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC_DIRECTORY" envDefault:"directory.events"`
}

type AdminConfig struct {
	Email       string `env:"DEFAULT_ADMIN_EMAIL" envDefault:"admin@hydroserve.com"`
	Name        string `env:"DEFAULT_ADMIN_NAME" envDefault:"Super Admin"`
	PhoneNumber string `env:"DEFAULT_ADMIN_PHONE" envDefault:"9898989898"`
}

// LoadEnv reads the process environment into a Config. Call godotenv.Load
// first if a .env file should be honoured.
func LoadEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}
