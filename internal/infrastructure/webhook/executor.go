package webhook

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Header names carried by every delivery attempt.
const (
	HeaderSignature      = "X-Gateway-Signature"
	HeaderTimestamp      = "X-Gateway-Timestamp"
	HeaderRetryCount     = "X-Gateway-Retry-Count"
	HeaderIdempotencyKey = "X-Gateway-Idempotency-Key"
	HeaderTestMode       = "X-Gateway-Test-Mode"
)

const defaultAttemptTimeout = 15 * time.Second

// Outcome classifies one delivery attempt.
type Outcome string

const (
	OutcomeAccepted       Outcome = "accepted"
	OutcomeRejected       Outcome = "rejected"
	OutcomeTransportError Outcome = "transport_error"
)

// AttemptResult is the classified outcome of a single HTTP POST.
type AttemptResult struct {
	Accepted   bool
	StatusCode int
	Err        error
}

// Outcome returns the attempt classification for logs and metrics.
func (r AttemptResult) Outcome() Outcome {
	switch {
	case r.Accepted:
		return OutcomeAccepted
	case r.Err != nil:
		return OutcomeTransportError
	default:
		return OutcomeRejected
	}
}

// Executor performs one signed HTTP POST to a merchant callback URL and
// classifies the result. A 2xx response is accepted; any other status,
// connection failure, or timeout is uniformly retryable.
type Executor struct {
	client *resty.Client
}

// NewExecutor creates an executor whose per-request timeout bounds each
// individual attempt so the retry loop always makes progress.
func NewExecutor(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "sandpay-webhook/1.0")
	return &Executor{client: client}
}

// Do sends one POST with the given pre-signed headers.
func (e *Executor) Do(ctx context.Context, url string, body []byte, headers map[string]string) AttemptResult {
	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeaders(headers).
		SetBody(body).
		Post(url)
	if err != nil {
		return AttemptResult{Err: err}
	}

	code := resp.StatusCode()
	return AttemptResult{
		Accepted:   code >= 200 && code < 300,
		StatusCode: code,
	}
}
