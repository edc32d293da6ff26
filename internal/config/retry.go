package config

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// WithRetry runs op with exponential backoff per cfg. Each attempt gets its
// own timeout; the parent context cancels the whole sequence.
func WithRetry(ctx context.Context, cfg RetryConfig, operation string, op func(context.Context) error) error {
	wait := cfg.InitialWait

	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		err = op(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		log.Debug().
			Err(err).
			Str("operation", operation).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("Operation failed, retrying after backoff")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		wait = time.Duration(float64(wait) * cfg.Multiplier)
		if wait > cfg.MaxWait {
			wait = cfg.MaxWait
		}
	}

	return err
}
