package engine

import (
	"context"

	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
)

// Oracle defines the contract for the external classifier. Implementations
// return the provider's raw answer text; acceptance is the engine's job.
type Oracle interface {
	Classify(ctx context.Context, description string, candidates []model.CategoryEntry) (string, error)
}
