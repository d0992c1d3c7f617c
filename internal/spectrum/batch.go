package spectrum

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"spectrum-sync/internal/domain"
)

// SyncAll syncs every request concurrently and returns the results in
// request order. The first failure cancels the remaining syncs.
func (s *Service) SyncAll(ctx context.Context, reqs []domain.SyncRequest) ([]domain.SyncResult, error) {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	logger.Info("batch sync started", "tables", len(reqs))

	results := make([]domain.SyncResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4) // bounded parallelism

	for i := range reqs {
		req := reqs[i]
		g.Go(func() error {
			res, err := s.Sync(gctx, req)
			if err != nil {
				logger.Warn("sync failed",
					"schema", req.Identity.Schema, "table", req.Identity.Table, "error", err)
				return fmt.Errorf("sync %s.%s: %w", req.Identity.Schema, req.Identity.Table, err)
			}
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("batch sync complete", "tables", len(reqs))
	return results, nil
}
