package api

import (
	"github.com/botanoz/turistpassfinal-sub000/internal/adapters"
	"github.com/botanoz/turistpassfinal-sub000/internal/currency/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(currencyHandler *handler.Handler, profileCache adapters.ProfileCache, profiles adapters.ProfileRepository) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1/admin/currencies", func(r chi.Router) {
		r.Use(handler.AdminContext(profileCache, profiles))
		r.Get("/", currencyHandler.List)
		r.Post("/", currencyHandler.Create)
		r.Post("/bulk-rates", currencyHandler.BulkUpdate)
		r.Post("/refresh-live", currencyHandler.RefreshLive)
		r.Get("/{code:[A-Za-z]{3}}", currencyHandler.Get)
		r.Put("/{code:[A-Za-z]{3}}", currencyHandler.Update)
	})
	return router
}
