package router

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"terradash/internal/delivery/http/handler"
	"terradash/internal/delivery/http/middleware"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Upload    *handler.UploadHandler
	Dataset   *handler.DatasetHandler
	Dashboard *handler.DashboardHandler
}

// Setup configures all routes for the application
func Setup(handlers Handlers, log *logrus.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// Middleware helpers
	cors := middleware.CORS
	logged := middleware.Logging(log)

	// Chain helper
	chain := func(h http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}

	// Ingestion
	mux.HandleFunc("/api/upload", chain(handlers.Upload.Upload, logged, cors))

	// Stored collections
	mux.HandleFunc("/api/orders", chain(handlers.Dataset.Orders, logged, cors))
	mux.HandleFunc("/api/campaigns", chain(handlers.Dataset.Campaigns, logged, cors))

	// Derived metrics
	mux.HandleFunc("/api/dashboard", chain(handlers.Dashboard.Dashboard, logged, cors))

	mux.HandleFunc("/api/health", chain(handler.Health, logged, cors))

	return mux
}
