package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/skyops/aeroops-be/internal/api/handlers"
	"github.com/skyops/aeroops-be/internal/auth"
	"github.com/skyops/aeroops-be/internal/models"
	"github.com/skyops/aeroops-be/internal/services"
	"github.com/skyops/aeroops-be/internal/store"
	"github.com/skyops/aeroops-be/internal/transfer"
	"github.com/skyops/aeroops-be/internal/websocket"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth        services.AuthServiceProvider
	Maintenance services.MaintenanceServiceProvider
	Incidents   services.IncidentServiceProvider
	Flights     services.FlightServiceProvider
	Stats       services.StatsServiceProvider
	Query       services.QueryServiceProvider
	Events      services.EventServiceProvider
	Demo        services.DemoServiceProvider
}

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, st store.RecordStore, svc Services) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Auth)
	maintenanceHandler := handlers.NewMaintenanceHandler(svc.Maintenance)
	incidentHandler := handlers.NewIncidentHandler(svc.Incidents)
	flightHandler := handlers.NewFlightHandler(svc.Flights)
	dashboardHandler := handlers.NewDashboardHandler(svc.Stats)
	queryHandler := handlers.NewQueryHandler(svc.Query)
	eventHandler := handlers.NewEventHandler(svc.Events)
	demoHandler := handlers.NewDemoHandler(svc.Demo)
	transferHandler := handlers.NewTransferHandler(transfer.New(st))
	healthHandler := handlers.NewHealthHandler(st)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Get)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/reset/request", authHandler.RequestReset)
			r.Post("/reset/confirm", authHandler.ConfirmReset)

			r.Group(func(r chi.Router) {
				r.Use(auth.JWTMiddleware())
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.GetMe)
			})
		})

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())

			r.Get("/ws", wsHandler.Serve)
			r.Get("/events/recent", eventHandler.GetRecent)

			r.Route("/maintenance", func(r chi.Router) {
				r.Get("/", maintenanceHandler.GetAll)
				r.Post("/", maintenanceHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", maintenanceHandler.Get)
					r.Put("/", maintenanceHandler.Update)
					r.With(auth.RequireRole(models.RoleAdmin)).Delete("/", maintenanceHandler.Delete)
				})
			})

			r.Route("/incidents", func(r chi.Router) {
				r.Get("/", incidentHandler.GetAll)
				r.Post("/", incidentHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", incidentHandler.Get)
					r.Put("/", incidentHandler.Update)
					r.With(auth.RequireRole(models.RoleAdmin)).Delete("/", incidentHandler.Delete)
				})
			})

			r.Route("/flights", func(r chi.Router) {
				r.Get("/", flightHandler.GetAll)
				r.Post("/", flightHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", flightHandler.Get)
					r.Put("/", flightHandler.Update)
					r.With(auth.RequireRole(models.RoleAdmin)).Delete("/", flightHandler.Delete)
				})
			})

			r.Get("/dashboard/stats", dashboardHandler.GetStats)
			r.Get("/reports/{type}", dashboardHandler.GetReport)
			r.Post("/query", queryHandler.Query)

			r.Route("/transfer", func(r chi.Router) {
				r.Post("/import/{table}", transferHandler.Import)
				r.Get("/export/{table}", transferHandler.Export)
			})

			r.With(auth.RequireRole(models.RoleAdmin)).Post("/demo/seed", demoHandler.Seed)
		})
	})

	return r
}
