package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"school-map-service/internal/adapters/repositories"
	"school-map-service/internal/config"
	"school-map-service/internal/platform/db"
)

// dbtool initializes the shared Postgres schema and imports the school
// roster CSV, so server instances pointed at DATABASE_URL start ready.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	rosterPath := config.Get("ROSTER_PATH", "data/mappa_scuole.csv")
	if err := initAndImport(pg, rosterPath); err != nil {
		log.Fatal(err)
	}
}

func initAndImport(pg *sql.DB, rosterPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchemaPostgres(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Importing school roster...")
	if err := repositories.SeedFromCSVPostgres(pg, rosterPath); err != nil {
		log.Fatalf("roster import failed: %v", err)
	}
	log.Println("Import complete.")

	return nil
}
