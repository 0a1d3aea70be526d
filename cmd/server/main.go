package main

import (
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"reportlens/adapters/api"
	"reportlens/adapters/postgres"
	"reportlens/internal/config"
	"reportlens/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ERROR] Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("[ERROR] Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("[ERROR] Failed to migrate database: %v", err)
	}

	backend := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.PollInterval, cfg.Backend.PollTimeout)
	app := ui.NewApp(ui.Config{
		Reports:  postgres.NewReportRepository(db),
		Snapshot: backend,
	})

	addr := ":" + cfg.Server.Port
	log.Printf("Starting report server on %s", addr)
	if err := http.ListenAndServe(addr, app.Router()); err != nil {
		log.Fatalf("[ERROR] Server failed: %v", err)
	}
}
