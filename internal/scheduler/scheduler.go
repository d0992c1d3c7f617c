// Package scheduler runs recurring table syncs on cron schedules, so
// each day's partition is registered without manual intervention.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"spectrum-sync/internal/domain"
	"spectrum-sync/internal/spectrum"
)

// Scheduler manages cron-based sync execution.
type Scheduler struct {
	cron    *cron.Cron
	svc     *spectrum.Service
	logger  *slog.Logger
	mu      sync.Mutex
	entries map[string]cron.EntryID // schema.table → cron entry
}

// New creates a new sync scheduler.
func New(svc *spectrum.Service, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		cron:    cron.New(),
		svc:     svc,
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// Add registers a recurring sync. A second Add for the same table
// replaces its previous schedule. The request's partition value is
// cleared on every run so each run registers the current date.
func (s *Scheduler) Add(schedule string, req domain.SyncRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runOnce(req)
	})
	if err != nil {
		return domain.ErrValidation("invalid cron schedule %q: %s", schedule, err.Error())
	}

	key := fmt.Sprintf("%s.%s", req.Identity.Schema, req.Identity.Table)
	if old, ok := s.entries[key]; ok {
		s.cron.Remove(old)
	}
	s.entries[key] = entryID
	s.logger.Info("scheduled sync", "table", key, "schedule", schedule)
	return nil
}

// runOnce syncs a single table, registering the partition for the day
// the run fires on.
func (s *Scheduler) runOnce(req domain.SyncRequest) {
	req.Partition.Value = ""

	ctx := context.Background()
	if _, err := s.svc.Sync(ctx, req); err != nil {
		s.logger.Warn("scheduled sync failed",
			"schema", req.Identity.Schema,
			"table", req.Identity.Table,
			"error", err,
		)
	}
}

// Start begins firing schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("sync scheduler started")
}

// Stop stops the scheduler and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("sync scheduler stopped")
}
