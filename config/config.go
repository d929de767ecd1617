package config

import (
	"github.com/coldreach/inboxstack/internal/logger"
	"github.com/coldreach/inboxstack/internal/tracing"
)

type AppConfig struct {
	APIPort string `env:"PORT,required" envDefault:"11000"`
	APIKey  string `env:"API_KEY,required"`
	Logger  *logger.Config
	Tracing *tracing.JaegerConfig
}

type InboxstackDatabaseConfig struct {
	Host            string `env:"INBOXSTACK_POSTGRES_HOST,required"`
	Port            string `env:"INBOXSTACK_POSTGRES_PORT,required"`
	User            string `env:"INBOXSTACK_POSTGRES_USER,required"`
	DBName          string `env:"INBOXSTACK_POSTGRES_DB_NAME,required"`
	Password        string `env:"INBOXSTACK_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"INBOXSTACK_POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"INBOXSTACK_POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"INBOXSTACK_POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"INBOXSTACK_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"INBOXSTACK_POSTGRES_SSL_MODE"`
}
