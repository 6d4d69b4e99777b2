package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvGradingCallTimeout  = "CHECKMATE_GRADING_CALL_TIMEOUT"
	EnvGradingSmartDefault = "CHECKMATE_GRADING_SMART_DEFAULT"
)

// GradingConfig holds the pipeline tuning knobs.
type GradingConfig struct {
	// CallTimeout bounds a single vision or scoring call attempt.
	CallTimeout string `toml:"call_timeout"`

	// SmartDefault enables correction-store lookups on requests that
	// do not specify the smart grading flag themselves.
	SmartDefault bool `toml:"smart_default"`
}

func (c *GradingConfig) CallTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.CallTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and
// validation.
func (c *GradingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := time.ParseDuration(c.CallTimeout); err != nil {
		return fmt.Errorf("invalid call_timeout: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *GradingConfig) Merge(overlay *GradingConfig) {
	if overlay.CallTimeout != "" {
		c.CallTimeout = overlay.CallTimeout
	}
	if overlay.SmartDefault {
		c.SmartDefault = true
	}
}

func (c *GradingConfig) loadDefaults() {
	if c.CallTimeout == "" {
		c.CallTimeout = "2m"
	}
}

func (c *GradingConfig) loadEnv() {
	if v := os.Getenv(EnvGradingCallTimeout); v != "" {
		c.CallTimeout = v
	}
	if v := os.Getenv(EnvGradingSmartDefault); v != "" {
		c.SmartDefault = v == "true" || v == "1"
	}
}
