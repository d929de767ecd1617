package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/coldreach/inboxstack/internal/logger"
	"github.com/coldreach/inboxstack/internal/tracing"
)

type Config struct {
	AppConfig                *AppConfig
	Logger                   *logger.Config
	Tracing                  *tracing.JaegerConfig
	InboxstackDatabaseConfig *InboxstackDatabaseConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:                &AppConfig{},
		Logger:                   &logger.Config{},
		Tracing:                  &tracing.JaegerConfig{},
		InboxstackDatabaseConfig: &InboxstackDatabaseConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading inboxstack config: %v", err)
	}

	return config, nil
}
