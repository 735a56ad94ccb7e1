package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"stackfast/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retrying struct {
	base  Client
	delay time.Duration
}

// WithRetry wraps base so transient failures are retried once.
func WithRetry(base Client) Client {
	if base == nil {
		return nil
	}
	return retrying{base: base, delay: retryBaseDelay}
}

func (r retrying) Complete(ctx context.Context, req Request) (string, error) {
	out, err := r.base.Complete(ctx, req)
	if err == nil || !ShouldRetry(err) {
		return out, err
	}

	telemetry.Warn("llm.retry", map[string]any{"attempt": 1, "error": err.Error()})
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return r.base.Complete(ctx, req)
}

// ShouldRetry reports whether err looks transient: timeouts, 5xx responses and
// dropped connections.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") {
		return true
	}
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "eof")
}
