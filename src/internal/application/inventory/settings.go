package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/inventory"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
)

// SettingsDTO 庫存設定
type SettingsDTO struct {
	LowStockThreshold      int
	CriticalStockThreshold int
	LowStockAlerts         bool
	OutOfStockAlerts       bool
	EmailAlerts            bool
	AlertEmailAddress      string
}

func toSettingsDTO(s inventory.Settings) SettingsDTO {
	return SettingsDTO{
		LowStockThreshold:      s.Thresholds.Low(),
		CriticalStockThreshold: s.Thresholds.Critical(),
		LowStockAlerts:         s.LowStockAlerts,
		OutOfStockAlerts:       s.OutOfStockAlerts,
		EmailAlerts:            s.EmailAlerts,
		AlertEmailAddress:      s.AlertEmailAddress,
	}
}

// SaveSettingsUseCase 管理端儲存庫存設定
//
// 門檻在此處驗證（ErrInvalidThresholds），分類時不再檢查
type SaveSettingsUseCase struct {
	settings  inventory.SettingsRepository
	txManager shared.TransactionManager
}

// NewSaveSettingsUseCase 創建 Use Case 實例
func NewSaveSettingsUseCase(settings inventory.SettingsRepository, txManager shared.TransactionManager) *SaveSettingsUseCase {
	return &SaveSettingsUseCase{settings: settings, txManager: txManager}
}

// Execute 驗證並儲存
func (uc *SaveSettingsUseCase) Execute(ctx context.Context, cmd SettingsDTO) (*SettingsDTO, error) {
	thresholds, err := inventory.NewThresholds(cmd.LowStockThreshold, cmd.CriticalStockThreshold)
	if err != nil {
		return nil, err
	}

	settings := inventory.Settings{
		Thresholds:        thresholds,
		LowStockAlerts:    cmd.LowStockAlerts,
		OutOfStockAlerts:  cmd.OutOfStockAlerts,
		EmailAlerts:       cmd.EmailAlerts,
		AlertEmailAddress: strings.TrimSpace(cmd.AlertEmailAddress),
	}

	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		if err := uc.settings.Save(tx, settings); err != nil {
			return fmt.Errorf("failed to save inventory settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := toSettingsDTO(settings)
	return &dto, nil
}

// GetSettingsUseCase 讀取庫存設定
type GetSettingsUseCase struct {
	settings  inventory.SettingsRepository
	txManager shared.TransactionManager
}

// NewGetSettingsUseCase 創建 Use Case 實例
func NewGetSettingsUseCase(settings inventory.SettingsRepository, txManager shared.TransactionManager) *GetSettingsUseCase {
	return &GetSettingsUseCase{settings: settings, txManager: txManager}
}

// Execute 執行查詢
func (uc *GetSettingsUseCase) Execute(ctx context.Context) (*SettingsDTO, error) {
	var settings inventory.Settings
	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		settings, err = uc.settings.Get(tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory settings: %w", err)
	}
	dto := toSettingsDTO(settings)
	return &dto, nil
}
