package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
)

// StateFlusher is the part of the state persister the retry job drives.
type StateFlusher interface {
	RetryFailed(ctx context.Context) error
}

type StateJobs struct {
	flusher       StateFlusher
	refreshTokens auth.RefreshTokenRepository
	retryInterval time.Duration
}

// NewStateJobs wires the background maintenance of the studio document.
// refreshTokens may be nil when tokens are only tracked in memory.
func NewStateJobs(flusher StateFlusher, refreshTokens auth.RefreshTokenRepository, retryInterval time.Duration) *StateJobs {
	return &StateJobs{
		flusher:       flusher,
		refreshTokens: refreshTokens,
		retryInterval: retryInterval,
	}
}

func (j *StateJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("retry_state_flush", j.retryInterval, j.RetryStateFlush)
	if j.refreshTokens != nil {
		scheduler.AddJob("prune_refresh_tokens", 6*time.Hour, j.PruneRefreshTokens)
	}
}

// RetryStateFlush re-attempts a state write that failed earlier. It is a no-op
// while the last write succeeded.
func (j *StateJobs) RetryStateFlush(ctx context.Context) error {
	if err := j.flusher.RetryFailed(ctx); err != nil {
		return fmt.Errorf("state flush still failing: %w", err)
	}
	return nil
}

func (j *StateJobs) PruneRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokens.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to prune refresh tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("Pruned expired refresh tokens", "count", deleted)
	}
	return nil
}
