// Command migrate creates the courier tracking schema without starting the service.
// It is an alternative to DB_AUTO_MIGRATE for deployments where the application role
// may not run DDL.
package main

import (
	"context"
	"database/sql"
	_ "embed"
	"os"
	"time"

	"couriertracking/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	configs, err := cmd.LoadConfig(os.LookupEnv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := sql.Open("postgres", configs.DSN())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	log.Info("Initializing database schema...")
	if _, err = db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("Schema initialization failed: %v", err)
	}
	log.Info("Schema ready.")
}
