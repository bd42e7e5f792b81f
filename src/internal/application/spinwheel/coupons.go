package spinwheel

import (
	"context"
	"fmt"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

// RedeemCouponCommand 結帳時兌換轉盤優惠券
type RedeemCouponCommand struct {
	CouponCode string
}

// RedeemCouponUseCase 兌換轉盤優惠券
//
// 錯誤：ErrCouponNotFound、ErrAlreadyRedeemed、ErrCouponExpired
type RedeemCouponUseCase struct {
	history   spinwheel.HistoryRepository
	txManager shared.TransactionManager
	clock     shared.Clock
}

// NewRedeemCouponUseCase 創建 Use Case 實例
func NewRedeemCouponUseCase(
	history spinwheel.HistoryRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
) *RedeemCouponUseCase {
	return &RedeemCouponUseCase{history: history, txManager: txManager, clock: clock}
}

// Execute 執行兌換
func (uc *RedeemCouponUseCase) Execute(ctx context.Context, cmd RedeemCouponCommand) (*CouponDTO, error) {
	code, err := spinwheel.NormalizeCouponCode(cmd.CouponCode)
	if err != nil {
		return nil, err
	}

	var result CouponDTO
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		entry, err := uc.history.FindByCouponCode(tx, code)
		if err != nil {
			return err
		}
		if err := entry.Redeem(uc.clock.Now()); err != nil {
			return err
		}
		if err := uc.history.MarkRedeemed(tx, entry); err != nil {
			return fmt.Errorf("failed to redeem spin coupon: %w", err)
		}
		result = toCouponDTO(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCouponsQuery 查詢抽獎者的優惠券
type ListCouponsQuery struct {
	UserID    string
	SessionID string
	Limit     int
}

// ListCouponsUseCase 列出抽獎者的優惠券（新到舊）
type ListCouponsUseCase struct {
	history   spinwheel.HistoryRepository
	txManager shared.TransactionManager
}

// NewListCouponsUseCase 創建 Use Case 實例
func NewListCouponsUseCase(history spinwheel.HistoryRepository, txManager shared.TransactionManager) *ListCouponsUseCase {
	return &ListCouponsUseCase{history: history, txManager: txManager}
}

// Execute 執行查詢
func (uc *ListCouponsUseCase) Execute(ctx context.Context, query ListCouponsQuery) ([]CouponDTO, error) {
	identity, err := identityFrom(query.UserID, query.SessionID)
	if err != nil {
		return nil, err
	}
	var entries []*spinwheel.HistoryEntry
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		entries, err = uc.history.ListByIdentity(tx, identity, query.Limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list spin coupons: %w", err)
	}
	result := make([]CouponDTO, 0, len(entries))
	for _, e := range entries {
		result = append(result, toCouponDTO(e))
	}
	return result, nil
}
