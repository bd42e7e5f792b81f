package spinwheel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/application"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

// maxSaveAttempts 優惠券代碼或當日名額衝突時最多重試次數
const maxSaveAttempts = 5

// ===========================
// Spin Use Case
// ===========================

// SpinCommand 轉盤抽獎的命令
type SpinCommand struct {
	UserID    string // 已登入客人
	SessionID string // 訪客
}

// SpinResult 抽獎結果
type SpinResult struct {
	Prize          PrizeDTO
	Coupon         CouponDTO
	SpinsRemaining int
}

// SpinUseCase 轉盤抽獎 Use Case
//
// 流程：
// 1. 轉盤停用 → ErrSpinDisabled
// 2. 計算今日（店家時區）已抽次數
// 3. Resolve：次數已滿 → ErrQuotaExceeded；依權重抽出獎項
// 4. 產生優惠券並佔用當日第 N 次名額後保存，ExpiresAt = now + ValidityDays
// 5. 優惠券代碼衝突時以新代碼重試整個事務；名額被並發請求佔用時重新計算次數
type SpinUseCase struct {
	prizes    spinwheel.PrizeRepository
	settings  spinwheel.SettingsRepository
	history   spinwheel.HistoryRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	rng       shared.RandomSource
	clock     shared.Clock
	location  *time.Location
	logger    *slog.Logger
}

// SpinDependencies SpinUseCase 的依賴
type SpinDependencies struct {
	Prizes    spinwheel.PrizeRepository
	Settings  spinwheel.SettingsRepository
	History   spinwheel.HistoryRepository
	TxManager shared.TransactionManager
	Publisher shared.EventPublisher
	Random    shared.RandomSource
	Clock     shared.Clock
	Location  *time.Location
	Logger    *slog.Logger
}

// NewSpinUseCase 創建 Use Case 實例
func NewSpinUseCase(deps SpinDependencies) *SpinUseCase {
	return &SpinUseCase{
		prizes:    deps.Prizes,
		settings:  deps.Settings,
		history:   deps.History,
		txManager: deps.TxManager,
		publisher: deps.Publisher,
		rng:       deps.Random,
		clock:     deps.Clock,
		location:  deps.Location,
		logger:    deps.Logger,
	}
}

// Execute 執行抽獎
func (uc *SpinUseCase) Execute(ctx context.Context, cmd SpinCommand) (*SpinResult, error) {
	identity, err := identityFrom(cmd.UserID, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	since := shared.StartOfDay(now, uc.location)

	var (
		won     *spinwheel.Prize
		entry   *spinwheel.HistoryEntry
		quota   spinwheel.QuotaState
		attempt int
	)
	for attempt = 1; attempt <= maxSaveAttempts; attempt++ {
		err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
			settings, err := uc.settings.Get(tx)
			if err != nil {
				return fmt.Errorf("failed to load spin settings: %w", err)
			}
			if !settings.IsEnabled {
				return spinwheel.ErrSpinDisabled
			}

			count, err := uc.history.CountSince(tx, identity, since)
			if err != nil {
				return fmt.Errorf("failed to count spins: %w", err)
			}
			quota = spinwheel.QuotaState{SpinsToday: count, SpinsPerDay: settings.SpinsPerDay}

			if entry == nil {
				prizes, err := uc.prizes.ListAll(tx)
				if err != nil {
					return fmt.Errorf("failed to load prizes: %w", err)
				}
				prize, err := spinwheel.Resolve(prizes, quota, uc.rng)
				if err != nil {
					return err
				}
				won = &prize
				entry = spinwheel.NewHistoryEntry(identity, prize, spinwheel.NewCouponCode(), now, settings.ValidityDays)
			} else {
				// 重試時沿用已抽出的獎項，只換優惠券代碼
				if !quota.Allows() {
					return spinwheel.ErrQuotaExceeded.WithContext(
						"spins_today", quota.SpinsToday,
						"spins_per_day", quota.SpinsPerDay,
					)
				}
				entry.ReassignCouponCode(spinwheel.NewCouponCode())
			}

			entry.AssignQuotaSlot(quota.NextSlot(since))
			return uc.history.Save(tx, entry)
		})
		if !errors.Is(err, spinwheel.ErrCouponConflict) && !errors.Is(err, spinwheel.ErrSlotTaken) {
			break
		}
		uc.logger.Warn("spin save conflict, retrying",
			slog.Int("attempt", attempt),
			slog.String("identity", identity.String()),
			slog.Any("error", err),
		)
	}
	if err != nil {
		return nil, err
	}

	application.PublishEvents(uc.publisher, uc.logger, entry.PullEvents())

	quota.SpinsToday++
	return &SpinResult{
		Prize:          toPrizeDTO(*won, 0),
		Coupon:         toCouponDTO(entry),
		SpinsRemaining: quota.Remaining(),
	}, nil
}
