// Package retry runs provider calls with exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"
)

const (
	// DefaultMaxRetries is the default number of retry attempts.
	DefaultMaxRetries = 3
	// DefaultBaseDelay is the base delay for exponential backoff.
	DefaultBaseDelay = 2 * time.Second
	// DefaultMaxJitterPercent is the maximum jitter percentage (0-25%).
	DefaultMaxJitterPercent = 25
)

// ErrRetryable marks an error as safe to retry regardless of its message.
var ErrRetryable = errors.New("retryable")

// Config holds retry configuration.
type Config struct {
	// MaxRetries is the number of retries after the first attempt.
	// Zero disables retries; a negative value selects DefaultMaxRetries.
	MaxRetries       int
	BaseDelay        time.Duration
	MaxJitterPercent int

	// OnRetry is called before each wait with the 1-based attempt that
	// failed, the delay about to be taken and the error.
	OnRetry func(attempt int, delay time.Duration, err error)

	// Sleep waits for d or until ctx is done. Defaults to a timer wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		MaxRetries:       DefaultMaxRetries,
		BaseDelay:        DefaultBaseDelay,
		MaxJitterPercent: DefaultMaxJitterPercent,
	}
}

// Classifier reports whether err is worth another attempt.
type Classifier func(err error) bool

// Do runs op until it succeeds, returns an error the classifier rejects, the
// retry budget runs out or ctx is done. The last error is returned unchanged
// so callers can keep classifying it with errors.Is.
func Do[T any](ctx context.Context, cfg Config, classify Classifier, op func(ctx context.Context) (T, error)) (T, error) {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BaseDelay < 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxJitterPercent < 0 || cfg.MaxJitterPercent > 100 {
		cfg.MaxJitterPercent = DefaultMaxJitterPercent
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleep
	}
	if classify == nil {
		classify = IsRetryable
	}

	var zero T
	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		// A cancelled caller is never retried.
		if ctx.Err() != nil {
			return zero, err
		}

		if !classify(err) || attempt >= cfg.MaxRetries {
			return zero, err
		}

		delay := CalculateDelay(cfg.BaseDelay, attempt, cfg.MaxJitterPercent)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, delay, err)
		}

		if sleepErr := cfg.Sleep(ctx, delay); sleepErr != nil {
			return zero, err
		}
	}
}

// CalculateDelay returns the delay for a given attempt using exponential backoff with jitter.
// Formula: base * 2^attempt + jitter (0-maxJitterPercent% of calculated delay)
func CalculateDelay(base time.Duration, attempt int, maxJitterPercent int) time.Duration {
	multiplier := 1 << attempt
	delay := base * time.Duration(multiplier)

	if maxJitterPercent > 0 {
		jitterRange := float64(delay) * float64(maxJitterPercent) / 100.0
		delay += time.Duration(rand.Float64() * jitterRange)
	}

	return delay
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryablePatterns contains error message patterns that indicate retryable errors.
var retryablePatterns = []string{
	"rate limit",
	"rate_limit",
	"resource_exhausted",
	"timeout",
	"timed out",
	"deadline exceeded",
	"network",
	"connection refused",
	"connection reset",
	"temporary failure",
	"service unavailable",
	"unavailable",
	"503",
	"502",
	"500",
	"429",
	"overloaded",
	"too many requests",
	"eof",
}

// nonRetryablePatterns contains error message patterns that indicate non-retryable errors.
var nonRetryablePatterns = []string{
	"invalid",
	"not found",
	"unauthorized",
	"unauthenticated",
	"forbidden",
	"permission denied",
	"permission_denied",
	"bad request",
	"400",
	"401",
	"403",
	"404",
}

// IsRetryable determines if an error is retryable.
// Errors wrapping ErrRetryable always are; otherwise rate limit, timeout and
// network errors are retryable while auth and validation errors are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrRetryable) {
		return true
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	errStr := strings.ToLower(err.Error())

	for _, pattern := range nonRetryablePatterns {
		if strings.Contains(errStr, pattern) {
			return false
		}
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	// Unknown errors are not retried.
	return false
}
