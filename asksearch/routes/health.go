package routes

import (
	"asksearch/asksearch/controllers"

	"github.com/go-chi/chi/v5"
)

// HealthRoutes answers liveness probes. HEAD is accepted for load balancers
// that do not send GET.
func HealthRoutes(ctrl *controllers.HealthController) chi.Router {
	r := chi.NewRouter()
	r.Get("/", ctrl.HealthCheck)
	r.Head("/", ctrl.HealthCheck)
	return r
}
