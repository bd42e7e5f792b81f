package loyalty

import (
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/loyalty"
)

// TransactionDTO 積分流水
type TransactionDTO struct {
	ID          string
	Points      int
	Description string
	Type        string
	CreatedAt   time.Time
}

func toTransactionDTO(entry *loyalty.LoyaltyTransaction) TransactionDTO {
	return TransactionDTO{
		ID:          entry.ID().String(),
		Points:      entry.Points(),
		Description: entry.Description(),
		Type:        string(entry.Type()),
		CreatedAt:   entry.CreatedAt(),
	}
}

// BalanceDTO 帳戶餘額與等級
type BalanceDTO struct {
	TotalPoints     int
	RedeemedPoints  int
	AvailablePoints int
	Tier            string
	NextTier        string
	PointsToNext    int
	ProgressPercent float64
}

func toBalanceDTO(account *loyalty.LoyaltyAccount) BalanceDTO {
	progress := account.Progress()
	return BalanceDTO{
		TotalPoints:     account.TotalPoints().Value(),
		RedeemedPoints:  account.RedeemedPoints().Value(),
		AvailablePoints: account.AvailablePoints().Value(),
		Tier:            string(progress.Tier),
		NextTier:        string(progress.NextTier),
		PointsToNext:    progress.PointsToNext,
		ProgressPercent: progress.ProgressPercent,
	}
}
