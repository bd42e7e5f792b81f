package spinwheel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/spinwheel"
)

// ===========================
// 管理端：獎項
// ===========================

// PrizeInput 管理端送出的單一獎項；ID 為空表示新增
type PrizeInput struct {
	ID              string
	Label           string
	Value           string
	DiscountPercent *int
	Color           string
	Weight          int
	IsActive        bool
	SortOrder       int
}

// SavePrizesCommand 整組儲存獎項
type SavePrizesCommand struct {
	Prizes []PrizeInput
}

// SavePrizesUseCase 管理端整組儲存轉盤獎項
//
// 權重錯誤在此處拒絕（ErrInvalidWeights），不會進入資料庫
type SavePrizesUseCase struct {
	prizes    spinwheel.PrizeRepository
	txManager shared.TransactionManager
	logger    *slog.Logger
}

// NewSavePrizesUseCase 創建 Use Case 實例
func NewSavePrizesUseCase(
	prizes spinwheel.PrizeRepository,
	txManager shared.TransactionManager,
	logger *slog.Logger,
) *SavePrizesUseCase {
	return &SavePrizesUseCase{prizes: prizes, txManager: txManager, logger: logger}
}

// Execute 執行儲存
func (uc *SavePrizesUseCase) Execute(ctx context.Context, cmd SavePrizesCommand) ([]PrizeDTO, error) {
	prizes := make([]spinwheel.Prize, 0, len(cmd.Prizes))
	for _, in := range cmd.Prizes {
		id := spinwheel.NewPrizeID()
		if in.ID != "" {
			parsed, err := spinwheel.PrizeIDFromString(in.ID)
			if err != nil {
				return nil, err
			}
			id = parsed
		}
		prizes = append(prizes, spinwheel.Prize{
			ID:              id,
			Label:           strings.TrimSpace(in.Label),
			Value:           strings.TrimSpace(in.Value),
			DiscountPercent: in.DiscountPercent,
			Color:           in.Color,
			Weight:          in.Weight,
			IsActive:        in.IsActive,
			SortOrder:       in.SortOrder,
		})
	}

	if err := spinwheel.ValidatePrizes(prizes); err != nil {
		return nil, err
	}

	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		return uc.prizes.ReplaceAll(tx, prizes)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save prizes: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("spin prizes saved", slog.Int("count", len(prizes)))
	}

	odds := spinwheel.Odds(prizes)
	chances := make(map[string]float64, len(odds))
	for _, o := range odds {
		chances[o.Prize.ID.String()] = o.ChancePercent
	}
	result := make([]PrizeDTO, 0, len(prizes))
	for _, p := range prizes {
		result = append(result, toPrizeDTO(p, chances[p.ID.String()]))
	}
	return result, nil
}

// ===========================
// 管理端：設定
// ===========================

// GetSettingsUseCase 讀取轉盤設定
type GetSettingsUseCase struct {
	settings  spinwheel.SettingsRepository
	txManager shared.TransactionManager
}

// NewGetSettingsUseCase 創建 Use Case 實例
func NewGetSettingsUseCase(settings spinwheel.SettingsRepository, txManager shared.TransactionManager) *GetSettingsUseCase {
	return &GetSettingsUseCase{settings: settings, txManager: txManager}
}

// Execute 執行查詢
func (uc *GetSettingsUseCase) Execute(ctx context.Context) (spinwheel.Settings, error) {
	var settings spinwheel.Settings
	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		settings, err = uc.settings.Get(tx)
		return err
	})
	if err != nil {
		return spinwheel.Settings{}, fmt.Errorf("failed to load spin settings: %w", err)
	}
	return settings, nil
}

// SaveSettingsUseCase 儲存轉盤設定
type SaveSettingsUseCase struct {
	settings  spinwheel.SettingsRepository
	txManager shared.TransactionManager
}

// NewSaveSettingsUseCase 創建 Use Case 實例
func NewSaveSettingsUseCase(settings spinwheel.SettingsRepository, txManager shared.TransactionManager) *SaveSettingsUseCase {
	return &SaveSettingsUseCase{settings: settings, txManager: txManager}
}

// Execute 驗證並儲存
func (uc *SaveSettingsUseCase) Execute(ctx context.Context, settings spinwheel.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	pages := make([]string, 0, len(settings.ShowOnPages))
	for _, p := range settings.ShowOnPages {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			pages = append(pages, p)
		}
	}
	settings.ShowOnPages = pages

	return uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		if err := uc.settings.Save(tx, settings); err != nil {
			return fmt.Errorf("failed to save spin settings: %w", err)
		}
		return nil
	})
}
