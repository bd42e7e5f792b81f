package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestDomainError_WithContext_DoesNotMutateTemplate(t *testing.T) {
	err := shared.ErrNotFound.WithContext("table", "spin_history")

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, shared.ErrNotFound.Context)
	assert.Contains(t, err.Error(), "spin_history")
}

func TestDomainError_WithCause_Unwraps(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	err := fmt.Errorf("load settings: %w", shared.ErrGatewayUnavailable.WithCause(cause))

	assert.ErrorIs(t, err, shared.ErrGatewayUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestDomainError_WithContext_OddArguments_Panics(t *testing.T) {
	assert.Panics(t, func() {
		_ = shared.ErrNotFound.WithContext("only-key")
	})
}
