package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/skyops/aeroops-be/internal/services"
)

// Cron expressions for the background jobs.
const (
	tokenSweepSpec   = "*/10 * * * *" // every 10 minutes
	dailySummarySpec = "0 6 * * *"    // 06:00 daily
)

// Jobs runs the background maintenance work: clearing expired password-reset
// tokens and emitting a daily operations summary event.
type Jobs struct {
	auth   services.AuthServiceProvider
	stats  services.StatsServiceProvider
	events services.EventServiceProvider
	cron   *cron.Cron
}

// NewJobs creates the background job runner.
func NewJobs(auth services.AuthServiceProvider, stats services.StatsServiceProvider, events services.EventServiceProvider) *Jobs {
	return &Jobs{
		auth:   auth,
		stats:  stats,
		events: events,
		cron:   cron.New(),
	}
}

// Run registers the jobs and starts the cron loop. Sweeps once immediately so
// a restart cannot extend a token's life.
func (j *Jobs) Run() {
	log.Info().Msg("Starting background jobs...")

	j.sweepTokens()

	if _, err := j.cron.AddFunc(tokenSweepSpec, j.sweepTokens); err != nil {
		log.Error().Err(err).Msg("Failed to schedule token sweep")
	}
	if _, err := j.cron.AddFunc(dailySummarySpec, j.dailySummary); err != nil {
		log.Error().Err(err).Msg("Failed to schedule daily summary")
	}

	j.cron.Start()
}

// Stop halts the cron loop, waiting for running jobs to finish.
func (j *Jobs) Stop() {
	log.Info().Msg("Stopping background jobs.")
	<-j.cron.Stop().Done()
}

func (j *Jobs) sweepTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared, err := j.auth.SweepExpiredTokens(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Token sweep failed")
		return
	}
	if cleared > 0 {
		log.Info().Int("cleared", cleared).Msg("Cleared expired reset tokens")
	}
}

func (j *Jobs) dailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := j.stats.GetDashboardStats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Daily summary failed")
		return
	}
	msg := fmt.Sprintf("Daily summary: %d maintenance tasks, %d incidents (%d critical), %d flights.",
		stats.MaintenanceCount, stats.IncidentCount, stats.CriticalIncidentCount, stats.FlightCount)
	if err := j.events.CreateEvent(ctx, "system.summary", "info", msg, nil); err != nil {
		log.Error().Err(err).Msg("Failed to record daily summary event")
	}
}
