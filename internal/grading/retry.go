package grading

import (
	"context"
	"log/slog"
	"time"
)

// retryBaseDelay controls the base duration for exponential backoff on
// failed capability calls: 1s, 2s, 4s. Tests override this to avoid
// real sleeps.
var retryBaseDelay = time.Second

// retryAttempts bounds capability invocations per call site. Retries
// apply to the network/capability boundary only, never to JSON
// interpretation of a response that did arrive.
const retryAttempts = 3

// invokeWithRetry calls the capability up to retryAttempts times with
// exponential backoff between attempts. Each attempt runs under
// timeout so a hung provider cannot block a file's processing
// indefinitely. If the context is cancelled during a backoff wait the
// function returns ctx.Err().
func invokeWithRetry(
	ctx context.Context,
	cap Capability,
	prompt string,
	images []string,
	timeout time.Duration,
	logger *slog.Logger,
) (string, error) {
	var lastErr error

	for attempt := 0; attempt < retryAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		text, err := cap.Invoke(attemptCtx, prompt, images)
		cancel()

		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt == retryAttempts-1 {
			break
		}

		backoff := retryBaseDelay << attempt
		logger.Warn(
			"capability call failed, retrying",
			"attempt", attempt+1,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	return "", lastErr
}
