package main

import (
	"fmt"
	"log"
	"os"

	"github.com/coldreach/inboxstack/config"
	"github.com/coldreach/inboxstack/internal/database"
	"github.com/coldreach/inboxstack/internal/repository"
	"github.com/coldreach/inboxstack/server"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: inboxstack <command>")
		fmt.Println("Commands:")
		fmt.Println("  migrate   Run database migrations")
		fmt.Println("  server    Start the application server")
		os.Exit(1)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}
	if cfg == nil {
		log.Fatalf("config is empty")
	}

	// Setup the database
	inboxstackDB, err := database.InitInboxstackDatabase(&database.DatabaseConfig{
		DBName:          cfg.InboxstackDatabaseConfig.DBName,
		Host:            cfg.InboxstackDatabaseConfig.Host,
		Port:            cfg.InboxstackDatabaseConfig.Port,
		User:            cfg.InboxstackDatabaseConfig.User,
		Password:        cfg.InboxstackDatabaseConfig.Password,
		MaxConn:         cfg.InboxstackDatabaseConfig.MaxConn,
		MaxIdleConn:     cfg.InboxstackDatabaseConfig.MaxIdleConn,
		ConnMaxLifetime: cfg.InboxstackDatabaseConfig.ConnMaxLifetime,
		LogLevel:        cfg.InboxstackDatabaseConfig.LogLevel,
		SSLMode:         cfg.InboxstackDatabaseConfig.SSLMode,
	})
	if err != nil {
		log.Fatalf("Inboxstack database initialization failed: %v", err)
	}

	switch os.Args[1] {
	case "migrate":

		err := repository.MigrateDB(inboxstackDB)
		if err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")

	case "server":

		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Println("InboxStack starting up...")

		server, err := server.NewServer(cfg, inboxstackDB)
		if err != nil {
			log.Fatalf("Server setup failed: %v", err)
		}

		err = server.Run()
		if err != nil {
			log.Fatalf("Server startup failed: %v", err)
		}

		log.Println("Shutdown complete")

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		fmt.Println("Usage: inboxstack <command>")
		fmt.Println("Commands:")
		fmt.Println("  migrate   Run database migrations")
		fmt.Println("  server    Start the application server")
		os.Exit(1)
	}
}
