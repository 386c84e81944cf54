package routes

import (
	"github.com/go-chi/chi/v5"

	"squadron-ops/airboss/internal/api"
	"squadron-ops/airboss/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys)) // global: all routes need a valid API key

		// Pilot roster
		v1.Get("/pilots", api.ListPilotsHandler(deps))
		v1.Post("/pilots", api.CreatePilotHandler(deps))
		v1.Get("/pilots/{id}", api.GetPilotHandler(deps))
		v1.Put("/pilots/{id}", api.UpdatePilotHandler(deps))
		v1.Delete("/pilots/{id}", api.DeletePilotHandler(deps))

		// Events and crew assignments
		v1.Get("/events", api.ListEventsHandler(deps))
		v1.Post("/events", api.CreateEventHandler(deps))
		v1.Get("/events/{id}", api.GetEventHandler(deps))
		v1.Put("/events/{id}", api.UpdateEventHandler(deps))
		v1.Delete("/events/{id}", api.DeleteEventHandler(deps))
		v1.Post("/events/{id}/assignments", api.AddAssignmentHandler(deps))
		v1.Patch("/events/{id}/status", api.PatchEventStatusHandler(deps))

		// Aircraft and simulator inventory
		v1.Get("/resources/aircraft", api.ListAircraftHandler(deps))
		v1.Get("/resources/simulators", api.ListSimulatorsHandler(deps))

		// Assignment engine
		v1.Post("/scheduler/optimize", api.OptimizeScheduleHandler(deps))

		// Currency records
		v1.Post("/currency/import", api.ImportCurrencyHandler(deps))
		v1.Get("/currency/pilot/{id}", api.PilotCurrencyHandler(deps))
		v1.Get("/currency/expiring", api.ExpiringCurrencyHandler(deps))

		// Training requirements and readiness
		v1.Get("/training/requirements", api.ListRequirementsHandler(deps))
		v1.Post("/training/requirements", api.CreateRequirementHandler(deps))
		v1.Get("/training/status/pilot/{id}", api.PilotStatusHandler(deps))
		v1.Post("/training/status/evaluate/{id}", api.EvaluatePilotHandler(deps))
		v1.Post("/training/status/evaluate-all", api.EvaluateAllHandler(deps))

		// Calendar feeds
		v1.Get("/calendar/pilot/{id}/ics", api.PilotCalendarHandler(deps))
		v1.Get("/calendar/ics", api.AllCalendarsHandler(deps))
	})
}
