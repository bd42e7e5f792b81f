package lucky

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
)

// DiscountDTO 幸運折扣活動
type DiscountDTO struct {
	ID              string
	Name            string
	Code            string
	DiscountPercent int
	RuleKind        string
	RuleDescription string
	ExpiresAt       time.Time
}

func toDiscountDTO(d lucky.Discount) DiscountDTO {
	dto := DiscountDTO{
		ID:              d.ID.String(),
		Name:            d.Name,
		Code:            d.Code,
		DiscountPercent: d.DiscountPercent,
		ExpiresAt:       d.ExpiresAt,
	}
	if d.Rule != nil {
		dto.RuleKind = string(d.Rule.Kind())
		dto.RuleDescription = d.Rule.Describe()
	}
	return dto
}

// ClaimDTO 領取紀錄
type ClaimDTO struct {
	ClaimID      string
	DiscountID   string
	LuckyNumber  int
	DiscountCode string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

func toClaimDTO(c *lucky.Claim) ClaimDTO {
	return ClaimDTO{
		ClaimID:      c.ID().String(),
		DiscountID:   c.DiscountID().String(),
		LuckyNumber:  c.LuckyNumber().Int(),
		DiscountCode: c.DiscountCode(),
		ExpiresAt:    c.ExpiresAt(),
		CreatedAt:    c.CreatedAt(),
	}
}
