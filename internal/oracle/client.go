// Package oracle talks to external text-classification services. Every
// provider is treated as untrusted free-text: the package returns the raw
// answer and leaves acceptance entirely to the caller.
package oracle

import (
	"context"
	"time"
)

// Client defines the interface for classification providers.
type Client interface {
	// Complete sends a prompt and returns the provider's raw text answer.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for the oracle classifier.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	RateLimit   int
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
