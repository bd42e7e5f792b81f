package spinwheel

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

// PrizeDTO 轉盤獎項（含中獎機率）
type PrizeDTO struct {
	ID              string
	Label           string
	Value           string
	DiscountPercent *int
	Color           string
	Weight          int
	IsActive        bool
	SortOrder       int
	ChancePercent   float64
}

func toPrizeDTO(p spinwheel.Prize, chance float64) PrizeDTO {
	return PrizeDTO{
		ID:              p.ID.String(),
		Label:           p.Label,
		Value:           p.Value,
		DiscountPercent: p.DiscountPercent,
		Color:           p.Color,
		Weight:          p.Weight,
		IsActive:        p.IsActive,
		SortOrder:       p.SortOrder,
		ChancePercent:   chance,
	}
}

// CouponDTO 抽中的優惠券
type CouponDTO struct {
	EntryID    string
	PrizeID    string
	PrizeLabel string
	PrizeValue string
	CouponCode string
	IsRedeemed bool
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

func toCouponDTO(e *spinwheel.HistoryEntry) CouponDTO {
	return CouponDTO{
		EntryID:    e.ID().String(),
		PrizeID:    e.PrizeID().String(),
		PrizeLabel: e.PrizeLabel(),
		PrizeValue: e.PrizeValue(),
		CouponCode: e.CouponCode(),
		IsRedeemed: e.IsRedeemed(),
		CreatedAt:  e.CreatedAt(),
		ExpiresAt:  e.ExpiresAt(),
	}
}

// identityFrom 已登入客人優先使用 UserID，否則使用訪客 SessionID
func identityFrom(userID, sessionID string) (spinwheel.Identity, error) {
	if userID != "" {
		id, err := spinwheel.UserIDFromString(userID)
		if err != nil {
			return spinwheel.Identity{}, err
		}
		return spinwheel.NewUserIdentity(id)
	}
	return spinwheel.NewGuestIdentity(sessionID)
}
