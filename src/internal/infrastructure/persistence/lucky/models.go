package lucky

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"gorm.io/datatypes"
)

// ===========================
// GORM Models
// ===========================

// DiscountGORM 幸運折扣活動（lucky_number_discounts）
//
// 中獎規則以 rule_kind + rule_params(JSON) 儲存，讀取時經 lucky.ParseRule 驗證
type DiscountGORM struct {
	ID              string         `gorm:"column:id;type:varchar(36);primaryKey"`
	Name            string         `gorm:"column:name;type:varchar(120);not null"`
	Code            string         `gorm:"column:code;type:varchar(64);not null"`
	DiscountPercent int            `gorm:"column:discount_percent;not null"`
	RuleKind        string         `gorm:"column:rule_kind;type:varchar(32);not null"`
	RuleParams      datatypes.JSON `gorm:"column:rule_params;not null"`
	StartsAt        time.Time      `gorm:"column:starts_at;not null"`
	ExpiresAt       time.Time      `gorm:"column:expires_at;index;not null"`
	IsActive        bool           `gorm:"column:is_active;not null"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
}

// TableName 指定資料表名稱
func (DiscountGORM) TableName() string {
	return "lucky_number_discounts"
}

// ClaimGORM 領取紀錄（lucky_number_claims）
//
// (discount_id, user_id) 唯一索引：同一活動每位客人只能領一次
type ClaimGORM struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey"`
	DiscountID   string    `gorm:"column:discount_id;type:varchar(36);not null;uniqueIndex:uq_lucky_claim_discount_user,priority:1"`
	UserID       string    `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:uq_lucky_claim_discount_user,priority:2;index"`
	LuckyNumber  int       `gorm:"column:lucky_number;not null"`
	DiscountCode string    `gorm:"column:discount_code;type:varchar(64);not null"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定資料表名稱
func (ClaimGORM) TableName() string {
	return "lucky_number_claims"
}

// Models 本模組所有資料表
func Models() []interface{} {
	return []interface{}{&DiscountGORM{}, &ClaimGORM{}}
}

// ===========================
// Mapper Functions
// ===========================

func (g *DiscountGORM) toDomain() (lucky.Discount, error) {
	id, err := lucky.DiscountIDFromString(g.ID)
	if err != nil {
		return lucky.Discount{}, err
	}
	rule, err := lucky.ParseRule(lucky.RuleKind(g.RuleKind), g.RuleParams)
	if err != nil {
		return lucky.Discount{}, err
	}
	return lucky.Discount{
		ID:              id,
		Name:            g.Name,
		Code:            g.Code,
		DiscountPercent: g.DiscountPercent,
		Rule:            rule,
		StartsAt:        g.StartsAt,
		ExpiresAt:       g.ExpiresAt,
		IsActive:        g.IsActive,
	}, nil
}

func toDiscountGORM(d lucky.Discount) (*DiscountGORM, error) {
	params, err := lucky.MarshalRule(d.Rule)
	if err != nil {
		return nil, lucky.ErrInvalidRule.WithCause(err)
	}
	return &DiscountGORM{
		ID:              d.ID.String(),
		Name:            d.Name,
		Code:            d.Code,
		DiscountPercent: d.DiscountPercent,
		RuleKind:        string(d.Rule.Kind()),
		RuleParams:      datatypes.JSON(params),
		StartsAt:        d.StartsAt.UTC(),
		ExpiresAt:       d.ExpiresAt.UTC(),
		IsActive:        d.IsActive,
	}, nil
}

func (g *ClaimGORM) toDomain() (*lucky.Claim, error) {
	id, err := lucky.ClaimIDFromString(g.ID)
	if err != nil {
		return nil, err
	}
	discountID, err := lucky.DiscountIDFromString(g.DiscountID)
	if err != nil {
		return nil, err
	}
	userID, err := lucky.UserIDFromString(g.UserID)
	if err != nil {
		return nil, err
	}
	return lucky.ReconstructClaim(id, discountID, userID, g.LuckyNumber, g.DiscountCode, g.ExpiresAt, g.CreatedAt)
}

func toClaimGORM(c *lucky.Claim) *ClaimGORM {
	return &ClaimGORM{
		ID:           c.ID().String(),
		DiscountID:   c.DiscountID().String(),
		UserID:       c.UserID().String(),
		LuckyNumber:  c.LuckyNumber().Int(),
		DiscountCode: c.DiscountCode(),
		ExpiresAt:    c.ExpiresAt().UTC(),
		CreatedAt:    c.CreatedAt().UTC(),
	}
}
