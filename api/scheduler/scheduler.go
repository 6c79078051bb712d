package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/api"
	"github.com/linesmerrill/legal-chat-api/chat"
)

// DefaultStatsSchedule is used when no schedule is configured
const DefaultStatsSchedule = "@every 1m"

// Scheduler runs the periodic background jobs of the chat api
type Scheduler struct {
	cron     *cron.Cron
	Router   *chat.Router
	Metrics  *api.MetricsCollector
	schedule string
}

// NewScheduler creates a scheduler reporting on router. metrics may be nil.
func NewScheduler(router *chat.Router, metrics *api.MetricsCollector, schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		Router:   router,
		Metrics:  metrics,
		schedule: schedule,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.logStats); err != nil {
		zap.S().Errorw("failed to register stats job",
			"schedule", s.schedule,
			"error", err,
		)
		return err
	}

	s.cron.Start()
	zap.S().Infow("chat scheduler started", "schedule", s.schedule)
	return nil
}

// Stop waits for running jobs and stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("chat scheduler stopped")
}

// logStats reports live connections, rooms in memory and, when available, the dedup
// window fill and request totals
func (s *Scheduler) logStats() {
	stats := s.Router.Stats()
	fields := []interface{}{
		"activeConnections", stats.ActiveConnections,
		"rooms", stats.Rooms,
	}
	if window, ok := s.Router.Dedup.(interface{ Len() int }); ok {
		fields = append(fields, "dedupWindow", window.Len())
	}
	if s.Metrics != nil {
		summary := s.Metrics.Summary()
		fields = append(fields,
			"totalRequests", summary.TotalRequests,
			"totalErrors", summary.TotalErrors,
		)
	}
	zap.S().Infow("chat stats", fields...)
}
