package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", ErrRateLimit, true},
		{"oracle unavailable", ErrOracleUnavailable, true},
		{"wrapped oracle unavailable", fmt.Errorf("classify: %w", ErrOracleUnavailable), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"explicitly retryable", &RetryableError{Err: errors.New("blip"), Retryable: true}, true},
		{"explicitly terminal", &RetryableError{Err: errors.New("bad request"), Retryable: false}, false},
		{"plain error", errors.New("schema mismatch"), false},
		{"empty key", ErrEmptyKey, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestUserError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUserError("could not reach the classifier", cause)

	assert.Equal(t, "could not reach the classifier: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	var userErr *UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, "could not reach the classifier", userErr.UserMessage)
}

func TestUserError_NoCause(t *testing.T) {
	err := &UserError{UserMessage: "nothing to import"}
	assert.Equal(t, "nothing to import", err.Error())
}
