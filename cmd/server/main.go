package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"school-map-service/internal/adapters/cache"
	"school-map-service/internal/adapters/geocode"
	"school-map-service/internal/adapters/repositories"
	"school-map-service/internal/adapters/routing"
	"school-map-service/internal/api"
	"school-map-service/internal/config"
	"school-map-service/internal/platform/db"
	"school-map-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Nominatim, ORS) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	rosterPath := config.Get("ROSTER_PATH", "data/mappa_scuole.csv")
	port := config.Get("PORT", "8080")

	var (
		repo         ports.SchoolRepository
		geocodeCache geocode.GeocodeCache
		routeCache   routing.RouteCache
	)

	// A configured DATABASE_URL switches roster and caches to Postgres
	// (shared across instances); the default is a local SQLite file seeded
	// from the roster CSV on startup.
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		repo = repositories.NewSQLSchoolRepository(pg)
		geocodeCache = cache.NewSQLGeocodeCache(pg)
		routeCache = cache.NewSQLRouteCache(pg)
	} else {
		lite, err := openDB(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer lite.Close()

		// Missing or malformed roster halts startup with a clear message;
		// the dashboard never renders partially without its input file.
		if err := initAndSeed(lite, rosterPath); err != nil {
			log.Fatal(err)
		}

		repo = repositories.NewSqliteSchoolRepository(lite)
		geocodeCache = cache.NewSqliteGeocodeCache(lite)
		routeCache = cache.NewSqliteRouteCache(lite)
	}

	geocoder := geocode.NewNominatimGeocoder(geocodeCache)

	// Route enrichment is optional: without an API key the dashboard still
	// serves distances, bands and statistics.
	var provider ports.RouteProvider
	if orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY")); orsKey != "" {
		p, err := routing.NewORSRouteProvider(orsKey, routeCache)
		if err != nil {
			log.Fatal(err)
		}
		provider = p
	} else {
		log.Println("ORS_API_KEY not set; route overlays disabled")
	}

	router := api.NewRouter(repo, geocoder, provider)

	// Timeouts are tuned for cold-cache route fetching (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, rosterPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromCSV(db, rosterPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
