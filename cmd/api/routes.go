package main

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"cashier-api/internal/config"
	"cashier-api/internal/handlers"
	"cashier-api/internal/middleware"
	"cashier-api/internal/services"
)

func SetupRoutes(log *zap.Logger, cashDrawerService *services.CashDrawerService, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Teller-ID"},
		MaxAge:         300,
	}))
	r.Use(chimw.RequestID)
	r.Use(middleware.ExtractTeller)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	// --- Handlers ---
	cashDrawerHandler := handlers.NewCashDrawerHandler(cashDrawerService)

	// --- Routes ---
	r.Get("/health", handlers.HealthCheck)

	r.Route("/drawer", func(r chi.Router) {
		r.Get("/", cashDrawerHandler.GetInventory)
		r.Post("/settle", cashDrawerHandler.Settle)
		r.Post("/open", cashDrawerHandler.OpenCashDrawer)
	})

	return r
}
