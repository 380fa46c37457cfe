package routes

import (
	"asksearch/asksearch/controllers"
	"asksearch/asksearch/middlewares"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every route of the proxy. No request timeout is applied;
// the upstream call runs until the transport gives up.
func NewRouter(searchCtrl *controllers.SearchController, healthCtrl *controllers.HealthController) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Mount("/health", HealthRoutes(healthCtrl))
	r.Mount("/api", SearchRoutes(searchCtrl))
	return r
}
