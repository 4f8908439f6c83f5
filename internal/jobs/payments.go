package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const sweepTimeout = 30 * time.Second

type OverduePayments interface {
	CompleteOverduePayments(ctx context.Context) ([]domain.Booking, error)
}

// StartPaymentSweep runs CompleteOverduePayments on schedule. Stop the
// returned cron to end it.
func StartPaymentSweep(svc OverduePayments, schedule string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { sweepOverduePayments(svc) }); err != nil {
		return nil, fmt.Errorf("schedule payment sweep %q: %w", schedule, err)
	}
	c.Start()
	log.Info().Str("schedule", schedule).Msg("payment sweep scheduled")
	return c, nil
}

func sweepOverduePayments(svc OverduePayments) int {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	completed, err := svc.CompleteOverduePayments(ctx)
	if err != nil {
		log.Error().Err(err).Msg("complete overdue payments")
		return 0
	}
	if len(completed) > 0 {
		log.Info().Int("count", len(completed)).Msg("completed overdue payments")
	}
	return len(completed)
}
