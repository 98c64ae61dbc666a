package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyops/aeroops-be/internal/api"
	"github.com/skyops/aeroops-be/internal/config"
	"github.com/skyops/aeroops-be/internal/database"
	"github.com/skyops/aeroops-be/internal/logger"
	"github.com/skyops/aeroops-be/internal/mailer"
	"github.com/skyops/aeroops-be/internal/monitoring"
	"github.com/skyops/aeroops-be/internal/services"
	"github.com/skyops/aeroops-be/internal/store"
	"github.com/skyops/aeroops-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up the record store. The variant is chosen once here, by explicit
	// configuration.
	var recordStore store.RecordStore
	switch cfg.StoreDriver {
	case "sqlite":
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply database migrations: %v", err)
		}
		recordStore = store.NewSQLite(db)
	case "memory":
		recordStore = store.NewMemory()
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(recordStore, hub)
	authService := services.NewAuthService(recordStore, mailer.NewLogSender(), eventService)
	maintenanceService := services.NewMaintenanceService(recordStore, eventService)
	incidentService := services.NewIncidentService(recordStore, eventService)
	flightService := services.NewFlightService(recordStore, eventService)
	statsService := services.NewStatsService(maintenanceService, incidentService, flightService)
	queryService := services.NewQueryService(maintenanceService, incidentService)
	demoService := services.NewDemoService(maintenanceService, incidentService, flightService)

	// Seed the first admin account when configured
	if err := authService.BootstrapAdmin(context.Background(), cfg.AdminBootstrapPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// Set up and run the background jobs
	jobs := monitoring.NewJobs(authService, statsService, eventService)
	go jobs.Run()

	// Set up router
	router := api.NewRouter(hub, recordStore, api.Services{
		Auth:        authService,
		Maintenance: maintenanceService,
		Incidents:   incidentService,
		Flights:     flightService,
		Stats:       statsService,
		Query:       queryService,
		Events:      eventService,
		Demo:        demoService,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	jobs.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
