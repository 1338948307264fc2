package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlexRiks/AccountingDesk-IA/internal/common"
)

// NewClient creates a provider client from configuration.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return newGeminiClient(ctx, cfg)
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported oracle provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}
