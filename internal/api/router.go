package api

import (
	_ "fxconverter/docs"
	"fxconverter/internal/api/handler"
	"fxconverter/internal/api/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestLogger)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/health", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/convert", h.Convert)
		r.Get("/rates", h.GetRates)
		r.Get("/rates/supported-currencies", h.GetSupportedCodes)
		r.Get("/transactions/{user_id}", h.ListTransactions)
	})
	return router
}
