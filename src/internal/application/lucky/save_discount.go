package lucky

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// SaveDiscountCommand 新增或修改幸運折扣活動（管理端）
type SaveDiscountCommand struct {
	ID              string // 空字串表示新增
	Name            string
	Code            string
	DiscountPercent int
	RuleKind        string
	RuleParams      json.RawMessage
	StartsAt        time.Time
	ExpiresAt       time.Time
	IsActive        bool
}

// SaveDiscountUseCase 儲存幸運折扣活動
//
// 規則參數在儲存時驗證，評估時不再檢查。
type SaveDiscountUseCase struct {
	discounts lucky.DiscountRepository
	txManager shared.TransactionManager
}

// NewSaveDiscountUseCase 創建 Use Case 實例
func NewSaveDiscountUseCase(discounts lucky.DiscountRepository, txManager shared.TransactionManager) *SaveDiscountUseCase {
	return &SaveDiscountUseCase{discounts: discounts, txManager: txManager}
}

// Execute 執行儲存
func (uc *SaveDiscountUseCase) Execute(ctx context.Context, cmd SaveDiscountCommand) (*DiscountDTO, error) {
	id := lucky.NewDiscountID()
	if cmd.ID != "" {
		parsed, err := lucky.DiscountIDFromString(cmd.ID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	rule, err := lucky.ParseRule(lucky.RuleKind(cmd.RuleKind), cmd.RuleParams)
	if err != nil {
		return nil, err
	}

	discount := lucky.Discount{
		ID:              id,
		Name:            strings.TrimSpace(cmd.Name),
		Code:            strings.ToUpper(strings.TrimSpace(cmd.Code)),
		DiscountPercent: cmd.DiscountPercent,
		Rule:            rule,
		StartsAt:        cmd.StartsAt,
		ExpiresAt:       cmd.ExpiresAt,
		IsActive:        cmd.IsActive,
	}
	if err := discount.Validate(); err != nil {
		return nil, err
	}

	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		return uc.discounts.Save(tx, discount)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save discount: %w", err)
	}

	dto := toDiscountDTO(discount)
	return &dto, nil
}
