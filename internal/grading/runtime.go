package grading

import (
	"context"
	"log/slog"
	"time"

	"github.com/RockeTall/CheckMate-demo/internal/memory"
)

// DefaultCallTimeout bounds a single capability attempt. Retries (see
// retry.go) multiply this for the worst case per call site.
const DefaultCallTimeout = 2 * time.Minute

// autoLearnThreshold is the quality score above which an AI-scored
// result is opportunistically written back to the correction store as
// an auto-learned example, without explicit teacher confirmation.
const autoLearnThreshold = 80

// Runtime bundles the dependencies the pipeline nodes require. It is
// constructed by higher-level composition code; both the capability
// and the correction store are injected so tests can substitute fakes.
type Runtime struct {
	Capability  Capability
	Memory      memory.System
	Logger      *slog.Logger
	CallTimeout time.Duration
}

func (rt *Runtime) callTimeout() time.Duration {
	if rt.CallTimeout > 0 {
		return rt.CallTimeout
	}
	return DefaultCallTimeout
}

// Call invokes the capability under the runtime's retry and timeout
// policy. It is the entry point for callers outside the pipeline that
// need one-off model calls with the same hardening.
func (rt *Runtime) Call(ctx context.Context, prompt string, images []string) (string, error) {
	return invokeWithRetry(ctx, rt.Capability, prompt, images, rt.callTimeout(), rt.Logger)
}
