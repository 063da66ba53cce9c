package webhook

import (
	"context"
	"strconv"
	"time"

	"github.com/sandpay-io/sandpay/internal/infrastructure/metrics"
	"github.com/sandpay-io/sandpay/internal/shared/biztime"
	"github.com/sandpay-io/sandpay/internal/shared/logger"
)

// DefaultMaxRetries is the number of retries after the initial attempt,
// so a dispatch performs at most DefaultMaxRetries+1 requests.
const DefaultMaxRetries = 5

// Request describes one webhook notification to deliver.
type Request struct {
	URL            string
	Body           []byte
	Secret         string
	IdempotencyKey string
	TestMode       bool
	// MaxRetries <= 0 means DefaultMaxRetries.
	MaxRetries int
}

// DeliveryResult is the terminal outcome of a dispatch. Delivery failures
// are never surfaced as errors; the result value is the whole story.
type DeliveryResult struct {
	Success    bool
	StatusCode int
	Attempts   int
}

// Dispatcher owns the attempt-and-retry loop for delivering a single
// notification. Each dispatch is self-contained: the signature and
// timestamp are computed once and reused across retries so receivers can
// correlate and deduplicate, and the backoff delay blocks only the
// dispatching goroutine.
type Dispatcher struct {
	executor *Executor
	backoff  *BackoffScheduler
	logger   logger.Interface
}

func NewDispatcher(executor *Executor, backoff *BackoffScheduler, log logger.Interface) *Dispatcher {
	return &Dispatcher{
		executor: executor,
		backoff:  backoff,
		logger:   log.Named("webhook-dispatcher"),
	}
}

// Dispatch delivers req, retrying non-2xx responses and transport failures
// with exponential backoff until acceptance or exhaustion. There is no
// error path: every failure mode ends in a DeliveryResult.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) DeliveryResult {
	maxRetries := req.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	// Signature and timestamp are fixed for the whole dispatch, not
	// recomputed per attempt.
	signature := Sign(req.Secret, req.Body)
	timestamp := biztime.UnixSeconds(biztime.NowUTC())

	log := d.logger.With(
		"url", req.URL,
		"idempotency_key", req.IdempotencyKey,
		"test_mode", req.TestMode,
	)

	start := time.Now()
	defer func() {
		metrics.WebhookDeliveryDuration.Observe(time.Since(start).Seconds())
	}()

	var last AttemptResult
	attempts := 0
	for attempt := 0; attempt <= maxRetries; attempt++ {
		headers := map[string]string{
			HeaderSignature:  signature,
			HeaderTimestamp:  timestamp,
			HeaderRetryCount: strconv.Itoa(attempt),
		}
		if req.IdempotencyKey != "" {
			headers[HeaderIdempotencyKey] = req.IdempotencyKey
		}
		if req.TestMode {
			headers[HeaderTestMode] = "true"
		}

		last = d.executor.Do(ctx, req.URL, req.Body, headers)
		attempts++
		metrics.WebhookAttemptsTotal.WithLabelValues(string(last.Outcome())).Inc()

		if last.Accepted {
			log.Infow("webhook delivered",
				"attempt", attempt,
				"status_code", last.StatusCode,
			)
			metrics.WebhookDeliveriesTotal.WithLabelValues(metrics.DeliveryResultDelivered).Inc()
			return DeliveryResult{
				Success:    true,
				StatusCode: last.StatusCode,
				Attempts:   attempts,
			}
		}

		if attempt < maxRetries {
			delay := d.backoff.DelayFor(attempt + 1)
			log.Warnw("webhook attempt failed, will retry",
				"attempt", attempt,
				"outcome", string(last.Outcome()),
				"status_code", last.StatusCode,
				"error", last.Err,
				"retry_in", delay,
			)
			if !sleep(ctx, delay) {
				break
			}
		}
	}

	log.Errorw("webhook delivery exhausted",
		"attempts", attempts,
		"outcome", string(last.Outcome()),
		"status_code", last.StatusCode,
		"error", last.Err,
	)
	metrics.WebhookDeliveriesTotal.WithLabelValues(metrics.DeliveryResultExhausted).Inc()
	return DeliveryResult{
		Success:    false,
		StatusCode: last.StatusCode,
		Attempts:   attempts,
	}
}

// sleep blocks for d or until ctx is done; it returns false when the
// context ended first (process shutdown is the only canceller).
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
