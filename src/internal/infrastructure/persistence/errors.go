package persistence

import (
	"errors"
	"strings"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// Unavailable 將非預期的資料庫錯誤包裝為 ErrGatewayUnavailable
//
// DomainError 原樣返回（倉儲已轉換過的錯誤不重複包裝）
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return shared.ErrGatewayUnavailable.WithCause(err)
}

// IsNotFound 是否為查無資料
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueConstraintError 判斷是否為唯一約束錯誤
//
// 支援：
// - PostgreSQL: "duplicate key value violates unique constraint"（SQLSTATE 23505）
// - SQLite: "UNIQUE constraint failed"
// - MySQL: "Duplicate entry"（1062）
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "sqlstate 23505") ||
		strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate entry")
}
