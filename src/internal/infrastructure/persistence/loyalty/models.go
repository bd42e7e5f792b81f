package loyalty

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
	"github.com/shopspring/decimal"
)

// ===========================
// GORM Models
// ===========================

// AccountGORM 積分帳戶資料表（loyalty_points）
//
// 資料庫約束：
// - user_id 唯一索引（一位客人一個帳戶）
// - redeemed_points <= total_points 由聚合保證，Reconstruct 時再驗證
// - version 樂觀鎖，每次 Update 加一
type AccountGORM struct {
	AccountID      string    `gorm:"column:account_id;type:varchar(36);primaryKey"`
	UserID         string    `gorm:"column:user_id;type:varchar(36);uniqueIndex;not null"`
	TotalPoints    int       `gorm:"column:total_points;not null;default:0"`
	RedeemedPoints int       `gorm:"column:redeemed_points;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"`
	Version        int       `gorm:"column:version;not null;default:1"`
}

// TableName 指定資料表名稱
func (AccountGORM) TableName() string {
	return "loyalty_points"
}

// TransactionGORM 積分流水資料表（只新增）
type TransactionGORM struct {
	ID              string    `gorm:"column:id;type:varchar(36);primaryKey"`
	UserID          string    `gorm:"column:user_id;type:varchar(36);index:idx_loyalty_tx_user_created,priority:1;not null"`
	Points          int       `gorm:"column:points;not null"`
	Description     string    `gorm:"column:description;type:varchar(255)"`
	TransactionType string    `gorm:"column:transaction_type;type:varchar(32);not null"`
	CreatedAt       time.Time `gorm:"column:created_at;index:idx_loyalty_tx_user_created,priority:2;not null"`
}

// TableName 指定資料表名稱
func (TransactionGORM) TableName() string {
	return "loyalty_transactions"
}

// settingsRowID 設定表只有一列
const settingsRowID = 1

// SettingsGORM 積分規則設定（單列）
type SettingsGORM struct {
	ID                  uint            `gorm:"column:id;primaryKey;autoIncrement:false"`
	PointsPerRupee      decimal.Decimal `gorm:"column:points_per_rupee;type:decimal(10,4);not null"`
	PointsValuePerRupee decimal.Decimal `gorm:"column:points_value_per_rupee;type:decimal(10,4);not null"`
	MinPointsToRedeem   int             `gorm:"column:min_points_to_redeem;not null"`
	MaxDiscountPercent  int             `gorm:"column:max_discount_percent;not null"`
	WelcomeBonusPoints  int             `gorm:"column:welcome_bonus_points;not null"`
	IsEnabled           bool            `gorm:"column:is_enabled;not null"`
	UpdatedAt           time.Time       `gorm:"column:updated_at"`
}

// TableName 指定資料表名稱
func (SettingsGORM) TableName() string {
	return "loyalty_settings"
}

// Models 本模組所有資料表（供 schema 遷移使用）
func Models() []interface{} {
	return []interface{}{&AccountGORM{}, &TransactionGORM{}, &SettingsGORM{}}
}

// ===========================
// Mapper Functions
// ===========================

func (g *AccountGORM) toDomain() (*loyalty.LoyaltyAccount, error) {
	accountID, err := loyalty.AccountIDFromString(g.AccountID)
	if err != nil {
		return nil, err
	}
	userID, err := loyalty.UserIDFromString(g.UserID)
	if err != nil {
		return nil, err
	}
	return loyalty.ReconstructLoyaltyAccount(
		accountID,
		userID,
		g.TotalPoints,
		g.RedeemedPoints,
		g.CreatedAt,
		g.UpdatedAt,
		g.Version,
	)
}

func toAccountGORM(account *loyalty.LoyaltyAccount) *AccountGORM {
	return &AccountGORM{
		AccountID:      account.AccountID().String(),
		UserID:         account.UserID().String(),
		TotalPoints:    account.TotalPoints().Value(),
		RedeemedPoints: account.RedeemedPoints().Value(),
		CreatedAt:      account.CreatedAt(),
		UpdatedAt:      account.UpdatedAt(),
		Version:        account.Version(),
	}
}

func (g *TransactionGORM) toDomain() (*loyalty.LoyaltyTransaction, error) {
	id, err := loyalty.TransactionIDFromString(g.ID)
	if err != nil {
		return nil, err
	}
	userID, err := loyalty.UserIDFromString(g.UserID)
	if err != nil {
		return nil, err
	}
	txType, err := loyalty.ParseTransactionType(g.TransactionType)
	if err != nil {
		return nil, err
	}
	return loyalty.ReconstructLoyaltyTransaction(id, userID, g.Points, g.Description, txType, g.CreatedAt), nil
}

func toTransactionGORM(entry *loyalty.LoyaltyTransaction) *TransactionGORM {
	return &TransactionGORM{
		ID:              entry.ID().String(),
		UserID:          entry.UserID().String(),
		Points:          entry.Points(),
		Description:     entry.Description(),
		TransactionType: string(entry.Type()),
		CreatedAt:       entry.CreatedAt(),
	}
}

func (g *SettingsGORM) toDomain() loyalty.Settings {
	return loyalty.Settings{
		PointsPerRupee:      g.PointsPerRupee,
		PointsValuePerRupee: g.PointsValuePerRupee,
		MinPointsToRedeem:   g.MinPointsToRedeem,
		MaxDiscountPercent:  g.MaxDiscountPercent,
		WelcomeBonusPoints:  g.WelcomeBonusPoints,
		IsEnabled:           g.IsEnabled,
	}
}

func toSettingsGORM(s loyalty.Settings) *SettingsGORM {
	return &SettingsGORM{
		ID:                  settingsRowID,
		PointsPerRupee:      s.PointsPerRupee,
		PointsValuePerRupee: s.PointsValuePerRupee,
		MinPointsToRedeem:   s.MinPointsToRedeem,
		MaxDiscountPercent:  s.MaxDiscountPercent,
		WelcomeBonusPoints:  s.WelcomeBonusPoints,
		IsEnabled:           s.IsEnabled,
	}
}
