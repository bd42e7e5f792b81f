package lucky

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/application"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// ===========================
// ClaimDiscount Use Case
// ===========================

// ClaimDiscountCommand 領取幸運折扣的命令
type ClaimDiscountCommand struct {
	UserID           string
	Email            string
	SessionStartedAt time.Time
	DiscountID       string
	LuckyNumber      int
}

// ClaimDiscountUseCase 領取幸運折扣 Use Case
//
// 職責：
// 1. 載入折扣活動並建立 Claim（資格、過期檢查在 Domain）
// 2. 保存；唯一約束衝突 → ErrAlreadyClaimed（附上原本的折扣碼）
// 3. 提交後發布 lucky.discount_claimed，由訂閱者寄送通知信
//
// 通知信失敗不影響領取結果。
type ClaimDiscountUseCase struct {
	discounts lucky.DiscountRepository
	claims    lucky.ClaimRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	clock     shared.Clock
	logger    *slog.Logger
}

// NewClaimDiscountUseCase 創建 Use Case 實例
func NewClaimDiscountUseCase(
	discounts lucky.DiscountRepository,
	claims lucky.ClaimRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *slog.Logger,
) *ClaimDiscountUseCase {
	return &ClaimDiscountUseCase{
		discounts: discounts,
		claims:    claims,
		txManager: txManager,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute 執行領取
//
// 錯誤處理：
// - ErrDiscountNotFound
// - ErrExpired / ErrNotEligible（Domain 規則）
// - ErrAlreadyClaimed：Context 含 discount_code 與 expires_at
func (uc *ClaimDiscountUseCase) Execute(ctx context.Context, cmd ClaimDiscountCommand) (*ClaimDTO, error) {
	userID, err := lucky.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}
	discountID, err := lucky.DiscountIDFromString(cmd.DiscountID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse discount ID: %w", err)
	}
	number, err := lucky.NewLuckyNumber(cmd.LuckyNumber)
	if err != nil {
		return nil, err
	}

	claimant := lucky.Claimant{
		Seed:  lucky.Seed{UserID: userID, SessionStartedAt: cmd.SessionStartedAt},
		Email: cmd.Email,
	}
	now := uc.clock.Now()

	var claim *lucky.Claim
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		discount, err := uc.discounts.FindByID(tx, discountID)
		if err != nil {
			return fmt.Errorf("failed to load discount: %w", err)
		}

		claim, err = lucky.NewClaim(discount, claimant, number, now)
		if err != nil {
			return err
		}

		return uc.claims.Save(tx, claim)
	})
	if errors.Is(err, lucky.ErrAlreadyClaimed) {
		return nil, uc.alreadyClaimed(ctx, discountID, userID)
	}
	if err != nil {
		return nil, err
	}

	application.PublishEvents(uc.publisher, uc.logger, claim.PullEvents())

	dto := toClaimDTO(claim)
	return &dto, nil
}

// alreadyClaimed 查出原本的領取紀錄，讓客人看到既有的折扣碼
func (uc *ClaimDiscountUseCase) alreadyClaimed(ctx context.Context, discountID lucky.DiscountID, userID lucky.UserID) error {
	var existing *lucky.Claim
	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		existing, err = uc.claims.FindByDiscountAndUser(tx, discountID, userID)
		return err
	})
	if err != nil {
		return lucky.ErrAlreadyClaimed.WithContext("discount_id", discountID.String())
	}
	return lucky.ErrAlreadyClaimed.WithContext(
		"discount_id", discountID.String(),
		"discount_code", existing.DiscountCode(),
		"expires_at", existing.ExpiresAt(),
	)
}
