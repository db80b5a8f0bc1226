package reporterror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidArgumentError(t *testing.T) {
	err := &InvalidArgumentError{Field: "username", Reason: "must not be empty"}

	assert.Equal(t, "invalid argument username: must not be empty", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrInvalidArgument))
	assert.True(t, IsClientError(err))
}

func TestUpstreamFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &UpstreamFetchError{Username: "moshe", Err: cause}

	assert.Equal(t, "failed to fetch transactions for user 'moshe': connection refused", err.Error())
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsClientError(err))
}

func TestClassificationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClassificationError
		expected string
		target   error
	}{
		{
			name:     "unexpected status",
			err:      &ClassificationError{Description: "coffee", Err: fmt.Errorf("%w: 503", ErrUnexpectedStatus)},
			expected: "classification failed for 'coffee': unexpected response status: 503",
			target:   ErrUnexpectedStatus,
		},
		{
			name:     "timeout",
			err:      &ClassificationError{Description: "flight", Err: context.DeadlineExceeded},
			expected: "classification failed for 'flight': context deadline exceeded",
			target:   context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, tt.target))

			var ce *ClassificationError
			assert.True(t, errors.As(fmt.Errorf("report: %w", tt.err), &ce))
			assert.Equal(t, tt.err.Description, ce.Description)
		})
	}
}
