package spinwheel

import (
	"context"
	"fmt"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

// ListPrizesQuery 轉盤顯示資料查詢
type ListPrizesQuery struct {
	Page      string
	UserID    string
	SessionID string
}

// ListPrizesResult 轉盤顯示資料
type ListPrizesResult struct {
	Visible        bool
	SpinsPerDay    int
	SpinsRemaining int
	Prizes         []PrizeDTO
}

// ListPrizesUseCase 查詢轉盤獎項、機率與今日剩餘次數
type ListPrizesUseCase struct {
	prizes    spinwheel.PrizeRepository
	settings  spinwheel.SettingsRepository
	history   spinwheel.HistoryRepository
	txManager shared.TransactionManager
	clock     shared.Clock
	location  *time.Location
}

// NewListPrizesUseCase 創建 Use Case 實例
func NewListPrizesUseCase(
	prizes spinwheel.PrizeRepository,
	settings spinwheel.SettingsRepository,
	history spinwheel.HistoryRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
	location *time.Location,
) *ListPrizesUseCase {
	return &ListPrizesUseCase{
		prizes:    prizes,
		settings:  settings,
		history:   history,
		txManager: txManager,
		clock:     clock,
		location:  location,
	}
}

// Execute 執行查詢
//
// 轉盤不在此頁面顯示時，只返回 Visible=false
func (uc *ListPrizesUseCase) Execute(ctx context.Context, query ListPrizesQuery) (*ListPrizesResult, error) {
	var identity *spinwheel.Identity
	if query.UserID != "" || query.SessionID != "" {
		id, err := identityFrom(query.UserID, query.SessionID)
		if err != nil {
			return nil, err
		}
		identity = &id
	}

	var result *ListPrizesResult
	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		settings, err := uc.settings.Get(tx)
		if err != nil {
			return fmt.Errorf("failed to load spin settings: %w", err)
		}
		result = &ListPrizesResult{SpinsPerDay: settings.SpinsPerDay, Prizes: []PrizeDTO{}}
		if !settings.IsEnabled || (query.Page != "" && !settings.ShowsOn(query.Page)) {
			return nil
		}
		result.Visible = true

		prizes, err := uc.prizes.ListAll(tx)
		if err != nil {
			return fmt.Errorf("failed to load prizes: %w", err)
		}
		for _, odds := range spinwheel.Odds(prizes) {
			result.Prizes = append(result.Prizes, toPrizeDTO(odds.Prize, odds.ChancePercent))
		}

		result.SpinsRemaining = settings.SpinsPerDay
		if identity == nil {
			return nil
		}
		since := shared.StartOfDay(uc.clock.Now(), uc.location)
		count, err := uc.history.CountSince(tx, *identity, since)
		if err != nil {
			return fmt.Errorf("failed to count spins: %w", err)
		}
		result.SpinsRemaining = spinwheel.QuotaState{SpinsToday: count, SpinsPerDay: settings.SpinsPerDay}.Remaining()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
