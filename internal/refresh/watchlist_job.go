package refresh

import (
	"context"
	"fmt"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/pkg/logger"
)

// Broadcaster pushes fresh score results to connected consumers.
type Broadcaster interface {
	Broadcast(result *contracts.ScoreResult)
}

// WatchlistJob re-evaluates every watchlist symbol on a schedule and
// broadcasts each fresh result. A single failing symbol does not abort
// the rest of the list; the job fails only when every symbol failed.
type WatchlistJob struct {
	service     *Service
	broadcaster Broadcaster
	symbols     []string
	schedule    string
	logger      *logger.Logger
}

// NewWatchlistJob creates a new watchlist refresh job.
func NewWatchlistJob(service *Service, broadcaster Broadcaster, symbols []string, schedule string, log *logger.Logger) *WatchlistJob {
	return &WatchlistJob{
		service:     service,
		broadcaster: broadcaster,
		symbols:     symbols,
		schedule:    schedule,
		logger:      log,
	}
}

// Name returns the job name.
func (j *WatchlistJob) Name() string {
	return "watchlist_refresh"
}

// Schedule returns the cron expression.
func (j *WatchlistJob) Schedule() string {
	return j.schedule
}

// Run evaluates all watchlist symbols.
func (j *WatchlistJob) Run(ctx context.Context) error {
	failures := 0

	for _, symbol := range j.symbols {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := j.service.Evaluate(ctx, symbol)
		if err != nil {
			failures++
			j.logger.WithError(err).WithField("symbol", symbol).Warn("Watchlist evaluation failed")
			continue
		}

		if j.broadcaster != nil {
			j.broadcaster.Broadcast(result)
		}

		j.logger.WithFields(map[string]interface{}{
			"symbol":         symbol,
			"final_score":    result.FinalScore,
			"recommendation": result.Recommendation,
		}).Info("Watchlist symbol refreshed")
	}

	if failures == len(j.symbols) && len(j.symbols) > 0 {
		return fmt.Errorf("all %d watchlist evaluations failed", failures)
	}

	return nil
}
