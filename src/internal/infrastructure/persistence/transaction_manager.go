package persistence

import (
	"context"
	"fmt"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionManager 以 GORM 實作 shared.TransactionManager
//
// 行為：
// 1. fn 返回 nil → Commit
// 2. fn 返回錯誤 → Rollback，原樣返回 fn 的錯誤
// 3. fn panic → Rollback 後重新 panic
//
// 事務綁定 ctx，請求逾時或取消時資料庫操作一併中止。
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在事務中執行 fn
func (m *GORMTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return Unavailable(fmt.Errorf("begin transaction: %w", tx.Error))
	}

	committed := false
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(NewGORMTransactionContext(tx)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return Unavailable(fmt.Errorf("commit transaction: %w", err))
	}
	committed = true
	return nil
}
