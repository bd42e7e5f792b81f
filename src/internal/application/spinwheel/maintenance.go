package spinwheel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

// ExpireStaleSpinsUseCase 管理端批次作廢過期優惠券
//
// 建立時間早於 now - ValidityDays 且尚未兌換的紀錄，ExpiresAt 設為 now
type ExpireStaleSpinsUseCase struct {
	settings  spinwheel.SettingsRepository
	history   spinwheel.HistoryRepository
	txManager shared.TransactionManager
	clock     shared.Clock
	logger    *slog.Logger
}

// NewExpireStaleSpinsUseCase 創建 Use Case 實例
func NewExpireStaleSpinsUseCase(
	settings spinwheel.SettingsRepository,
	history spinwheel.HistoryRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
	logger *slog.Logger,
) *ExpireStaleSpinsUseCase {
	return &ExpireStaleSpinsUseCase{settings: settings, history: history, txManager: txManager, clock: clock, logger: logger}
}

// Execute 執行作廢，返回影響筆數
func (uc *ExpireStaleSpinsUseCase) Execute(ctx context.Context) (int64, error) {
	now := uc.clock.Now()
	var affected int64

	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		settings, err := uc.settings.Get(tx)
		if err != nil {
			return fmt.Errorf("failed to load spin settings: %w", err)
		}
		cutoff := now.AddDate(0, 0, -settings.ValidityDays)
		affected, err = uc.history.ExpireUnredeemed(tx, cutoff, now)
		if err != nil {
			return fmt.Errorf("failed to expire spin coupons: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if uc.logger != nil {
		uc.logger.Info("stale spin coupons expired", slog.Int64("count", affected))
	}
	return affected, nil
}

// ResetTodaySpinsUseCase 管理端清除今日（店家時區）所有抽獎紀錄，讓所有人可重新抽
type ResetTodaySpinsUseCase struct {
	history   spinwheel.HistoryRepository
	txManager shared.TransactionManager
	clock     shared.Clock
	location  *time.Location
	logger    *slog.Logger
}

// NewResetTodaySpinsUseCase 創建 Use Case 實例
func NewResetTodaySpinsUseCase(
	history spinwheel.HistoryRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
	location *time.Location,
	logger *slog.Logger,
) *ResetTodaySpinsUseCase {
	return &ResetTodaySpinsUseCase{history: history, txManager: txManager, clock: clock, location: location, logger: logger}
}

// Execute 執行清除，返回刪除筆數
func (uc *ResetTodaySpinsUseCase) Execute(ctx context.Context) (int64, error) {
	since := shared.StartOfDay(uc.clock.Now(), uc.location)
	var deleted int64

	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		deleted, err = uc.history.DeleteSince(tx, since)
		if err != nil {
			return fmt.Errorf("failed to reset today's spins: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if uc.logger != nil {
		uc.logger.Warn("today's spins reset", slog.Int64("count", deleted), slog.Time("since", since))
	}
	return deleted, nil
}
