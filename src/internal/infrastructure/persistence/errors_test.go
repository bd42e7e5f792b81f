package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

func TestUnavailable(t *testing.T) {
	t.Run("資料庫錯誤包裝為 GatewayUnavailable", func(t *testing.T) {
		cause := errors.New("connection refused")

		err := Unavailable(cause)

		assert.ErrorIs(t, err, shared.ErrGatewayUnavailable)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("DomainError 原樣返回", func(t *testing.T) {
		err := Unavailable(shared.ErrNotFound)

		assert.Same(t, shared.ErrNotFound, err)
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, Unavailable(nil))
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"PostgreSQL", errors.New(`ERROR: duplicate key value violates unique constraint "uq_lucky_claim_discount_user" (SQLSTATE 23505)`), true},
		{"SQLite", errors.New("UNIQUE constraint failed: spin_wheel_history.coupon_code"), true},
		{"MySQL", errors.New("Error 1062 (23000): Duplicate entry 'SPIN-0A1B2C3D4E' for key 'coupon_code'"), true},
		{"GORM", gorm.ErrDuplicatedKey, true},
		{"其他錯誤", errors.New("database is locked"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueConstraintError(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
	assert.False(t, IsNotFound(errors.New("boom")))
}
