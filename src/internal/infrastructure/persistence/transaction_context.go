package persistence

import (
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext 封裝事務中的 *gorm.DB
//
// Domain Layer 只看得到 shared.TransactionContext 標記介面，
// GetDB() 只供 Infrastructure Layer 使用。
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 獲取事務中的 GORM DB 連接
func (ctx *gormTransactionContext) GetDB() *gorm.DB {
	return ctx.db
}

// dbProvider 可取得 *gorm.DB 的事務上下文
type dbProvider interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// Conn 選擇倉儲要使用的連接
//
//   - tx 為 GORM 事務上下文：使用事務中的 DB
//   - tx 為 nil：使用預設 DB（auto-commit）
func Conn(db *gorm.DB, tx shared.TransactionContext) *gorm.DB {
	if tx != nil {
		if provider, ok := tx.(dbProvider); ok {
			return provider.GetDB()
		}
	}
	return db
}
