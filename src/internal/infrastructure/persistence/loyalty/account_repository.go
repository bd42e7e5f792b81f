package loyalty

import (
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================
// AccountRepository
// ===========================

// AccountRepository 積分帳戶倉儲實現（GORM）
//
// 錯誤轉換：
// - gorm.ErrRecordNotFound → loyalty.ErrAccountNotFound
// - 唯一索引衝突（user_id）→ loyalty.ErrAccountAlreadyExists
// - version 不符 → loyalty.ErrConcurrentUpdate
// - 其他 → shared.ErrGatewayUnavailable
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 創建倉儲實例
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Save 保存新的積分帳戶
func (r *AccountRepository) Save(tx shared.TransactionContext, account *loyalty.LoyaltyAccount) error {
	result := persistence.Conn(r.db, tx).Create(toAccountGORM(account))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return loyalty.ErrAccountAlreadyExists.WithContext("user_id", account.UserID().String())
		}
		return persistence.Unavailable(result.Error)
	}
	return nil
}

// FindByUserID 根據使用者 ID 查找積分帳戶
func (r *AccountRepository) FindByUserID(tx shared.TransactionContext, userID loyalty.UserID) (*loyalty.LoyaltyAccount, error) {
	return r.findByUserID(persistence.Conn(r.db, tx), userID)
}

// FindByUserIDForUpdate 在事務中鎖定帳戶列（SELECT ... FOR UPDATE）
//
// 同一帳戶的寫入事務依序執行，直到持鎖的事務提交或回滾。
// SQLite 不支援列鎖，此時只靠 Update 的 version 條件。
func (r *AccountRepository) FindByUserIDForUpdate(tx shared.TransactionContext, userID loyalty.UserID) (*loyalty.LoyaltyAccount, error) {
	conn := persistence.Conn(r.db, tx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findByUserID(conn, userID)
}

func (r *AccountRepository) findByUserID(conn *gorm.DB, userID loyalty.UserID) (*loyalty.LoyaltyAccount, error) {
	var model AccountGORM
	result := conn.Where("user_id = ?", userID.String()).First(&model)
	if result.Error != nil {
		if persistence.IsNotFound(result.Error) {
			return nil, loyalty.ErrAccountNotFound.WithContext("user_id", userID.String())
		}
		return nil, persistence.Unavailable(result.Error)
	}
	return model.toDomain()
}

// Update 以樂觀鎖更新積分
//
// 只在資料庫中的 version 與讀取時相同才寫入，成功後 version 加一；
// 使用 map 更新，積分降為 0 時也會寫入。
func (r *AccountRepository) Update(tx shared.TransactionContext, account *loyalty.LoyaltyAccount) error {
	conn := persistence.Conn(r.db, tx)
	result := conn.
		Model(&AccountGORM{}).
		Where("account_id = ? AND version = ?", account.AccountID().String(), account.Version()).
		Updates(map[string]interface{}{
			"total_points":    account.TotalPoints().Value(),
			"redeemed_points": account.RedeemedPoints().Value(),
			"updated_at":      account.UpdatedAt(),
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return persistence.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(conn, account)
	}
	account.AdvanceVersion()
	return nil
}

// missingOrStale 條件更新沒有影響任何列時，區分帳戶不存在與版本過期
func (r *AccountRepository) missingOrStale(conn *gorm.DB, account *loyalty.LoyaltyAccount) error {
	var count int64
	err := conn.Model(&AccountGORM{}).
		Where("account_id = ?", account.AccountID().String()).
		Count(&count).Error
	if err != nil {
		return persistence.Unavailable(err)
	}
	if count == 0 {
		return loyalty.ErrAccountNotFound.WithContext("account_id", account.AccountID().String())
	}
	return loyalty.ErrConcurrentUpdate.WithContext(
		"account_id", account.AccountID().String(),
		"version", account.Version(),
	)
}
