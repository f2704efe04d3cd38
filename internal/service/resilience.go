package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// resilience holds the retry policy and the consecutive-error circuit breaker
// shared by the generator implementations.
type resilience struct {
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration

	mu                sync.Mutex
	consecutiveErrors int
	circuitBreakerMax int
	log               *zap.Logger
}

func newResilience(maxRetries int, timeout time.Duration, log *zap.Logger) *resilience {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &resilience{
		MaxRetries:        maxRetries,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    timeout,
		circuitBreakerMax: 5,
		log:               log,
	}
}

// do runs call under the request timeout, retrying retryable failures up to
// MaxRetries times with exponential backoff.
func (r *resilience) do(ctx context.Context, name string, call func(ctx context.Context) (string, error)) (string, error) {
	if errs, open := r.breakerState(); open {
		return "", fmt.Errorf("%w: too many consecutive errors (%d)", ErrCircuitOpen, errs)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, r.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= r.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := r.calculateBackoff(attempt)
			r.log.Info("retrying generation",
				zap.String("prompt", name),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", r.MaxRetries),
				zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return "", fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		text, err := call(timeoutCtx)
		if err == nil {
			r.recordSuccess()
			return text, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			r.recordFailure()
			return "", err
		}
		r.log.Warn("retryable generation error",
			zap.String("prompt", name),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	r.recordFailure()
	if r.MaxRetries == 0 {
		return "", lastErr
	}
	return "", fmt.Errorf("max retries (%d) exceeded: %w", r.MaxRetries, lastErr)
}

func (r *resilience) calculateBackoff(attempt int) time.Duration {
	delay := r.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > r.MaxDelay {
		delay = r.MaxDelay
	}

	// Spread retries over [delay-jitter/2, delay+jitter/2).
	jitter := int64(float64(delay) * 0.25)
	if jitter > 0 {
		delay += time.Duration(rand.Int64N(jitter) - jitter/2)
	}
	return delay
}

func (r *resilience) breakerState() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.consecutiveErrors, r.consecutiveErrors >= r.circuitBreakerMax
}

func (r *resilience) recordSuccess() {
	r.mu.Lock()
	r.consecutiveErrors = 0
	r.mu.Unlock()
}

func (r *resilience) recordFailure() {
	r.mu.Lock()
	r.consecutiveErrors++
	r.mu.Unlock()
}

func (r *resilience) ResetCircuitBreaker() {
	r.recordSuccess()
	r.log.Info("circuit breaker reset")
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	code := 0
	var apiErr *genai.APIError
	var statusErr *StatusError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &statusErr):
		code = statusErr.Code
	}
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	case 400, 401, 403, 404:
		return false
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errMsg, "UNAVAILABLE") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}
