package db

import (
	"context"
	"math"
	"time"

	"github.com/2beens/coachdesk/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// RetryPolicy bounds the retries of one operation. Attempt n (1-based) that
// fails is followed by a delay of min(MinTimeout * Factor^(n-1), MaxTimeout),
// as long as n <= Retries and ShouldRetry accepts the error.
type RetryPolicy struct {
	Retries     int
	MinTimeout  time.Duration
	MaxTimeout  time.Duration
	Factor      float64
	ShouldRetry func(err error) bool
	// OnRetry is called before each backoff
	OnRetry func(attempt int, err error)
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:    3,
		MinTimeout: 100 * time.Millisecond,
		MaxTimeout: 2 * time.Second,
		Factor:     2,
	}
}

// Instrumented returns a copy of the policy that counts and logs every retry
// of the named operation.
func (p RetryPolicy) Instrumented(metricsManager *metrics.Manager, operation string) RetryPolicy {
	onRetry := p.OnRetry
	p.OnRetry = func(attempt int, err error) {
		if metricsManager != nil {
			metricsManager.CounterDBRetries.WithLabelValues(operation).Inc()
		}
		log.Warnf("%s: attempt %d failed, retrying: %s", operation, attempt, err)
		if onRetry != nil {
			onRetry(attempt, err)
		}
	}
	return p
}

func (p RetryPolicy) Delay(attempt int) time.Duration {
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}
	maxTimeout := max(p.MaxTimeout, p.MinTimeout)

	delay := float64(p.MinTimeout) * math.Pow(factor, float64(attempt-1))
	if delay >= float64(maxTimeout) {
		return maxTimeout
	}
	return time.Duration(delay)
}

func (p RetryPolicy) shouldRetry(attempt int, err error) bool {
	if attempt > p.Retries {
		return false
	}
	if p.ShouldRetry == nil {
		return true
	}
	return p.ShouldRetry(err)
}

type retryState int

const (
	stateAttempting retryState = iota
	stateBackoff
	stateFailed
)

// WithRetry runs op until it succeeds or the policy gives up, returning the
// last error unchanged. The attempt number (starting at 1) is passed to op.
// A done ctx stops the backoff and ends the retries.
func WithRetry[T any](ctx context.Context, policy RetryPolicy, op func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
		attempt = 1
		state   = stateAttempting
	)

	for {
		switch state {
		case stateAttempting:
			res, err := op(ctx, attempt)
			if err == nil {
				return res, nil
			}
			lastErr = err
			if policy.shouldRetry(attempt, err) {
				state = stateBackoff
			} else {
				state = stateFailed
			}

		case stateBackoff:
			if policy.OnRetry != nil {
				policy.OnRetry(attempt, lastErr)
			}
			timer := time.NewTimer(policy.Delay(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				state = stateFailed
			case <-timer.C:
				attempt++
				state = stateAttempting
			}

		case stateFailed:
			return zero, lastErr
		}
	}
}

// Retry is WithRetry for operations without a result.
func Retry(ctx context.Context, policy RetryPolicy, op func(ctx context.Context, attempt int) error) error {
	_, err := WithRetry(ctx, policy, func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, op(ctx, attempt)
	})
	return err
}
