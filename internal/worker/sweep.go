package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelworks/hotel-api/internal/service/sweep"
)

// SweepWorker triggers the expiry sweep on a fixed interval. Errors are
// logged and the next tick runs anyway.
type SweepWorker struct {
	svc      *sweep.Service
	interval time.Duration
	logger   zerolog.Logger
}

func NewSweepWorker(svc *sweep.Service, interval time.Duration, logger zerolog.Logger) *SweepWorker {
	return &SweepWorker{
		svc:      svc,
		interval: interval,
		logger:   logger,
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, unfinished, err := w.svc.Run(ctx)
			if err != nil {
				w.logger.Error().Err(err).Msg("expiry sweep failed")
				continue
			}
			w.logger.Info().
				Int("expired", expired).
				Int("unfinished", unfinished).
				Msg("expiry sweep tick complete")
		}
	}
}
