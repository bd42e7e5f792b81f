package lucky

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// CheckEligibilityQuery 查詢此 session 的幸運折扣資格
type CheckEligibilityQuery struct {
	UserID           string
	SessionStartedAt time.Time
}

// CheckEligibilityResult 資格查詢結果
type CheckEligibilityResult struct {
	IsEligible  bool
	LuckyNumber int
	Discount    *DiscountDTO
	Message     string
	// Claim 已領取過此折扣時返回原本的領取紀錄
	Claim *ClaimDTO
}

// CheckEligibilityUseCase 幸運折扣資格查詢（唯讀）
type CheckEligibilityUseCase struct {
	discounts lucky.DiscountRepository
	claims    lucky.ClaimRepository
	txManager shared.TransactionManager
	clock     shared.Clock
}

// NewCheckEligibilityUseCase 創建 Use Case 實例
func NewCheckEligibilityUseCase(
	discounts lucky.DiscountRepository,
	claims lucky.ClaimRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{discounts: discounts, claims: claims, txManager: txManager, clock: clock}
}

// Execute 執行查詢
//
// 同一 session 重複查詢返回相同號碼與結果
func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, query CheckEligibilityQuery) (*CheckEligibilityResult, error) {
	userID, err := lucky.UserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}
	now := uc.clock.Now()
	seed := lucky.Seed{UserID: userID, SessionStartedAt: query.SessionStartedAt}

	var (
		eligibility lucky.Eligibility
		claim       *lucky.Claim
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		running, err := uc.discounts.FindRunning(tx, now)
		if err != nil {
			return fmt.Errorf("failed to load lucky discounts: %w", err)
		}

		eligibility = lucky.CheckEligibility(seed, running, now)
		if !eligibility.IsEligible {
			return nil
		}

		claim, err = uc.claims.FindByDiscountAndUser(tx, eligibility.Discount.ID, userID)
		if errors.Is(err, lucky.ErrClaimNotFound) {
			claim = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CheckEligibilityResult{
		IsEligible:  eligibility.IsEligible,
		LuckyNumber: eligibility.LuckyNumber.Int(),
		Message:     eligibility.Message,
	}
	if !eligibility.IsEligible {
		return result, nil
	}

	dto := toDiscountDTO(*eligibility.Discount)
	result.Discount = &dto
	if claim != nil {
		claimDTO := toClaimDTO(claim)
		result.Claim = &claimDTO
	}

	return result, nil
}
