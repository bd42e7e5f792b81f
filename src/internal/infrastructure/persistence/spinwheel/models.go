package spinwheel

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
	"gorm.io/datatypes"
)

// ===========================
// GORM Models
// ===========================

// PrizeGORM 轉盤獎項（spin_wheel_prizes）
type PrizeGORM struct {
	ID              string `gorm:"column:id;type:varchar(36);primaryKey"`
	Label           string `gorm:"column:label;type:varchar(120);not null"`
	Value           string `gorm:"column:value;type:varchar(120);not null"`
	DiscountPercent *int   `gorm:"column:discount_percent"`
	Color           string `gorm:"column:color;type:varchar(32)"`
	Weight          int    `gorm:"column:weight;not null"`
	IsActive        bool   `gorm:"column:is_active;not null"`
	SortOrder       int    `gorm:"column:sort_order;not null;default:0"`
}

// TableName 指定資料表名稱
func (PrizeGORM) TableName() string {
	return "spin_wheel_prizes"
}

const settingsRowID = 1

// SettingsGORM 轉盤設定（單列）
type SettingsGORM struct {
	ID           uint                        `gorm:"column:id;primaryKey;autoIncrement:false"`
	SpinsPerDay  int                         `gorm:"column:spins_per_day;not null"`
	ShowOnPages  datatypes.JSONSlice[string] `gorm:"column:show_on_pages"`
	IsEnabled    bool                        `gorm:"column:is_enabled;not null"`
	ValidityDays int                         `gorm:"column:validity_days;not null"`
	UpdatedAt    time.Time                   `gorm:"column:updated_at"`
}

// TableName 指定資料表名稱
func (SettingsGORM) TableName() string {
	return "spin_wheel_settings"
}

// HistoryGORM 抽獎紀錄（spin_wheel_history）
//
// user_id 與 session_id 恰好其一有值；coupon_code 唯一索引。
// (identity_key, quota_day, quota_slot) 唯一索引：同一抽獎者同一天的第 N 次只能有一筆，
// 名額為 NULL 的紀錄不受限制。
type HistoryGORM struct {
	ID          string  `gorm:"column:id;type:varchar(36);primaryKey"`
	UserID      *string `gorm:"column:user_id;type:varchar(36);index:idx_spin_user_created,priority:1"`
	SessionID   *string `gorm:"column:session_id;type:varchar(128);index:idx_spin_session_created,priority:1"`
	IdentityKey string  `gorm:"column:identity_key;type:varchar(192);not null;default:'';uniqueIndex:idx_spin_quota_slot,priority:1"`
	QuotaDay    *string `gorm:"column:quota_day;type:varchar(10);uniqueIndex:idx_spin_quota_slot,priority:2"`
	QuotaSlot   *int    `gorm:"column:quota_slot;uniqueIndex:idx_spin_quota_slot,priority:3"`
	PrizeID    string    `gorm:"column:prize_id;type:varchar(36);not null"`
	PrizeLabel string    `gorm:"column:prize_label;type:varchar(120);not null"`
	PrizeValue string    `gorm:"column:prize_value;type:varchar(120);not null"`
	CouponCode string    `gorm:"column:coupon_code;type:varchar(32);uniqueIndex;not null"`
	IsRedeemed bool      `gorm:"column:is_redeemed;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;index:idx_spin_user_created,priority:2;index:idx_spin_session_created,priority:2"`
	ExpiresAt  time.Time `gorm:"column:expires_at;not null"`
}

// TableName 指定資料表名稱
func (HistoryGORM) TableName() string {
	return "spin_wheel_history"
}

// Models 本模組所有資料表
func Models() []interface{} {
	return []interface{}{&PrizeGORM{}, &SettingsGORM{}, &HistoryGORM{}}
}

// ===========================
// Mapper Functions
// ===========================

func (g *PrizeGORM) toDomain() (spinwheel.Prize, error) {
	id, err := spinwheel.PrizeIDFromString(g.ID)
	if err != nil {
		return spinwheel.Prize{}, err
	}
	return spinwheel.Prize{
		ID:              id,
		Label:           g.Label,
		Value:           g.Value,
		DiscountPercent: g.DiscountPercent,
		Color:           g.Color,
		Weight:          g.Weight,
		IsActive:        g.IsActive,
		SortOrder:       g.SortOrder,
	}, nil
}

func toPrizeGORM(p spinwheel.Prize) PrizeGORM {
	return PrizeGORM{
		ID:              p.ID.String(),
		Label:           p.Label,
		Value:           p.Value,
		DiscountPercent: p.DiscountPercent,
		Color:           p.Color,
		Weight:          p.Weight,
		IsActive:        p.IsActive,
		SortOrder:       p.SortOrder,
	}
}

func (g *SettingsGORM) toDomain() spinwheel.Settings {
	return spinwheel.Settings{
		SpinsPerDay:  g.SpinsPerDay,
		ShowOnPages:  []string(g.ShowOnPages),
		IsEnabled:    g.IsEnabled,
		ValidityDays: g.ValidityDays,
	}
}

func toSettingsGORM(s spinwheel.Settings) *SettingsGORM {
	pages := s.ShowOnPages
	if pages == nil {
		pages = []string{}
	}
	return &SettingsGORM{
		ID:           settingsRowID,
		SpinsPerDay:  s.SpinsPerDay,
		ShowOnPages:  datatypes.JSONSlice[string](pages),
		IsEnabled:    s.IsEnabled,
		ValidityDays: s.ValidityDays,
	}
}

func (g *HistoryGORM) toDomain() (*spinwheel.HistoryEntry, error) {
	id, err := spinwheel.EntryIDFromString(g.ID)
	if err != nil {
		return nil, err
	}
	prizeID, err := spinwheel.PrizeIDFromString(g.PrizeID)
	if err != nil {
		return nil, err
	}

	var identity spinwheel.Identity
	if g.UserID != nil {
		userID, err := spinwheel.UserIDFromString(*g.UserID)
		if err != nil {
			return nil, err
		}
		identity, err = spinwheel.NewUserIdentity(userID)
		if err != nil {
			return nil, err
		}
	} else {
		sessionID := ""
		if g.SessionID != nil {
			sessionID = *g.SessionID
		}
		identity, err = spinwheel.NewGuestIdentity(sessionID)
		if err != nil {
			return nil, err
		}
	}

	entry := spinwheel.ReconstructHistoryEntry(
		id,
		identity,
		prizeID,
		g.PrizeLabel,
		g.PrizeValue,
		g.CouponCode,
		g.IsRedeemed,
		g.CreatedAt,
		g.ExpiresAt,
	)
	if g.QuotaDay != nil && g.QuotaSlot != nil {
		entry.AssignQuotaSlot(spinwheel.QuotaSlot{Day: *g.QuotaDay, Number: *g.QuotaSlot})
	}
	return entry, nil
}

func toHistoryGORM(e *spinwheel.HistoryEntry) *HistoryGORM {
	model := &HistoryGORM{
		ID:         e.ID().String(),
		PrizeID:    e.PrizeID().String(),
		PrizeLabel: e.PrizeLabel(),
		PrizeValue: e.PrizeValue(),
		CouponCode: e.CouponCode(),
		IsRedeemed: e.IsRedeemed(),
		CreatedAt:  e.CreatedAt().UTC(),
		ExpiresAt:  e.ExpiresAt().UTC(),
	}
	identity := e.Identity()
	model.IdentityKey = identity.String()
	if slot, ok := e.QuotaSlot(); ok {
		model.QuotaDay = &slot.Day
		model.QuotaSlot = &slot.Number
	}
	if identity.IsGuest() {
		sessionID := identity.SessionID()
		model.SessionID = &sessionID
	} else {
		userID := identity.UserID().String()
		model.UserID = &userID
	}
	return model
}
