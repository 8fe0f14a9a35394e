package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/catalog-api/internal/api"
	apiMiddleware "github.com/phrazzld/catalog-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	itemHandler := api.NewItemHandler(app.itemService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsCache)

	r.Route("/api", func(r chi.Router) {
		r.Get("/items", itemHandler.ListItems)
		r.Get("/items/{id}", itemHandler.GetItem)
		r.Post("/items", itemHandler.CreateItem)

		r.Get("/stats", statsHandler.GetStats)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
