package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skillbites-ai/bites_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		deviceID = flag.String("device", "demo-device", "Device ID the demo session is bound to")
		dbPath   = flag.String("db", "", "Database path (overrides DB_DATABASE env var)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	databasePath := *dbPath
	if databasePath == "" {
		databasePath = os.Getenv("DB_DATABASE")
		if databasePath == "" {
			databasePath = "app.db"
		}
	}

	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Printf("Connected to database: %s", databasePath)

	if err := seeders.NewDemoSeeder(db).Seed(*deviceID); err != nil {
		log.Fatalf("Failed to seed demo session: %v", err)
	}

	log.Println("Seeding operation completed successfully!")
}

func showHelp() {
	log.Println(`
Demo Session Seeding Tool

Creates a session with a sample learning plan already installed, so the
API can be explored locally without a Gemini API key.

Usage: go run seed/main.go [flags]

Flags:
  -device string
        Device ID the demo session is bound to (default "demo-device")
  -db string
        Database path (overrides DB_DATABASE environment variable)
  -help
        Show this help message

Examples:
  # Seed the default demo session
  go run seed/main.go

  # Seed a session for a specific device
  go run seed/main.go -device=my-tablet

Environment Variables:
  DB_DATABASE - Default database path (default: app.db)`)
}
