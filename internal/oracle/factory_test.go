package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlexRiks/AccountingDesk-IA/internal/common"
)

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Provider: "cohere"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestNewClient_EmptyProvider(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
