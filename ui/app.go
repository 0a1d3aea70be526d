// Package ui exposes the report pipeline over HTTP. Handlers are thin: they
// decode input, call the pure core, and persist or return the result; every
// rendering decision stays with the client.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"reportlens/ports"
)

// App represents the UI application
type App struct {
	router   *chi.Mux
	reports  ports.ReportRepository
	snapshot ports.SnapshotSource
}

// Config holds UI application configuration
type Config struct {
	Reports  ports.ReportRepository
	Snapshot ports.SnapshotSource
}

// NewApp creates a new UI application
func NewApp(config Config) *App {
	app := &App{
		router:   chi.NewRouter(),
		reports:  config.Reports,
		snapshot: config.Snapshot,
	}
	app.routes()
	return app
}

func (a *App) routes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/healthz", a.handleHealth)
	a.router.Route("/api", func(r chi.Router) {
		r.Post("/reports", a.handleCreateReport)
		r.Get("/reports", a.handleListReports)
		r.Get("/reports/{id}", a.handleGetReport)
		r.Post("/runs/{id}/report", a.handleBuildFromRun)
		r.Post("/datasets/profile", a.handleProfileDataset)
	})
}

// Router returns the HTTP handler for serving.
func (a *App) Router() http.Handler {
	return a.router
}
