package listener

import (
	"context"
	"time"

	"biblioteca/internal/catalog"
	"biblioteca/internal/logger"
)

// Reloader is satisfied by *catalog.Handle.
type Reloader interface {
	Reload(ctx context.Context) (*catalog.Catalog, error)
}

// Service reloads the catalog on a fixed interval so edits to the source
// files show up without a restart.
type Service struct {
	reloader Reloader
	interval time.Duration
	log      *logger.Logger
}

func NewService(reloader Reloader, interval time.Duration, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{reloader: reloader, interval: interval, log: log}
}

// Run blocks until ctx is done. A non-positive interval disables reloading.
func (s *Service) Run(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Service) runCycle(ctx context.Context) {
	cat, err := s.reloader.Reload(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reload cycle error")
		return
	}
	s.log.Info().
		Str("run_id", cat.RunID).
		Int("records", len(cat.Records)).
		Int("failed", len(cat.Failed())).
		Msg("reload cycle done")
}
