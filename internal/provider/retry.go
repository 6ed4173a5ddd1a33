package provider

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 2 * time.Second
)

// retryingProvider wraps a Provider with retry/backoff behavior.
type retryingProvider struct {
	inner       Provider
	logger      *zap.SugaredLogger
	maxAttempts int
	backoff     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. Zero
// maxAttempts/backoff fall back to defaults. ErrTeamNotFound is never
// retried; a missing team does not become findable on attempt two.
func NewRetryingProvider(inner Provider, logger *zap.Logger, maxAttempts int, backoff time.Duration) Provider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger.Sugar(),
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

func (r *retryingProvider) ResolveTeam(ctx context.Context, query string) (models.TeamRef, error) {
	var ref models.TeamRef
	err := r.retry(ctx, "ResolveTeam", func() error {
		var err error
		ref, err = r.inner.ResolveTeam(ctx, query)
		return err
	})
	return ref, err
}

func (r *retryingProvider) TeamMatches(ctx context.Context, query string, limit int) ([]models.Match, models.TeamRef, error) {
	var (
		matches []models.Match
		ref     models.TeamRef
	)
	err := r.retry(ctx, "TeamMatches", func() error {
		var err error
		matches, ref, err = r.inner.TeamMatches(ctx, query, limit)
		return err
	})
	return matches, ref, err
}

func (r *retryingProvider) retry(ctx context.Context, op string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrTeamNotFound) {
			return err
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		delay := r.backoff * time.Duration(1<<(attempt-1))
		if delay > maxBackoff {
			delay = maxBackoff
		}
		r.logger.Warnw("Vendor call retry",
			"op", op,
			"attempt", attempt,
			"maxAttempts", r.maxAttempts,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logger.Warnw("Vendor call failed", "op", op, "attempts", r.maxAttempts, "error", lastErr)
	return lastErr
}
