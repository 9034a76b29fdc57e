package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Database Database `validate:"required"`

	Kafka Kafka
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,numeric"`
}

type Database struct {
	Driver     string `validate:"required,oneof=sqlite postgres"`
	SQLitePath string `validate:"required_if=Driver sqlite"`

	Postgres Postgres
}

type Kafka struct {
	Enabled bool

	GroupID string   `validate:"required"`
	Brokers []string `validate:"required,min=1,dive,hostname_port"`
	Topic   string   `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Database: Database{
			Driver:     env("DB_DRIVER", DriverSQLite),
			SQLitePath: env("SQLITE_PATH", "orders.db"),

			Postgres: Postgres{
				Port:     envInt("POSTGRES_PORT", 5432),
				Host:     env("POSTGRES_HOST", "localhost"),
				DBName:   env("POSTGRES_DB", "orders"),
				User:     env("POSTGRES_USER", ""),
				Password: env("POSTGRES_PASSWORD", ""),

				SSLMode: env("POSTGRES_SSL_MODE", "disable"),

				MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
			},
		},

		Kafka: Kafka{
			Enabled: envBool("KAFKA_ENABLED", false),
			GroupID: env("KAFKA_GROUP_ID", "shop-orders"),
			Topic:   env("KAFKA_TOPIC", "orders"),
			Brokers: strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},
	}
}

// Validate skips the sections that are switched off.
func (c Config) Validate() error {
	validate := validator.New()

	var skip []string
	if c.Database.Driver != DriverPostgres {
		skip = append(skip, "Database.Postgres")
	}
	if !c.Kafka.Enabled {
		skip = append(skip, "Kafka")
	}

	if len(skip) == 0 {
		return validate.Struct(c)
	}
	return validate.StructExcept(c, skip...)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
