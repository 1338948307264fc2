package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
)

// Classifier wraps a provider client with rate limiting and prompt
// construction. It implements the engine's Oracle interface: the returned
// string is the provider's raw (trimmed) answer, not a validated category.
type Classifier struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
}

// NewClassifier creates a rate-limited classifier over the given provider client.
func NewClassifier(client Client, cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &Classifier{
		client:      client,
		logger:      logger,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// Classify asks the provider to pick a catalog candidate for the description.
func (c *Classifier) Classify(ctx context.Context, description string, candidates []model.CategoryEntry) (string, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return "", err
	}

	prompt := BuildPrompt(description, candidates)

	answer, err := c.client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("oracle completion failed: %w", err)
	}

	answer = strings.TrimSpace(answer)
	c.logger.Debug("oracle answered",
		"description", description,
		"answer", answer)

	return answer, nil
}

// Close releases the rate limiter and, when supported, the provider client.
func (c *Classifier) Close() error {
	c.rateLimiter.Close()
	if closer, ok := c.client.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
