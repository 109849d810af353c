package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/purchasebook/purchasebook/internal/auth"
	"github.com/purchasebook/purchasebook/internal/purchases"
	"github.com/purchasebook/purchasebook/internal/reports"
	"github.com/purchasebook/purchasebook/internal/suppliers"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthHandler      *auth.Handler
	SuppliersHandler *suppliers.Handler
	PurchasesHandler *purchases.Handler
	ReportsHandler   *reports.Handler
}

// NewRouter constructs the chi.Router with purchasebook defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(20, time.Minute))
		params.AuthHandler.MountRoutes(r)
	})
	r.Route("/suppliers", func(r chi.Router) {
		params.SuppliersHandler.MountRoutes(r)
	})
	r.Route("/purchases", func(r chi.Router) {
		params.PurchasesHandler.MountRoutes(r)
	})
	r.Route("/reports", func(r chi.Router) {
		params.ReportsHandler.MountRoutes(r)
	})

	return r
}
