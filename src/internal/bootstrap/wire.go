package bootstrap

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	inventoryapp "github.com/jackyeh168/jewel_rewards/src/internal/application/inventory"
	loyaltyapp "github.com/jackyeh168/jewel_rewards/src/internal/application/loyalty"
	luckyapp "github.com/jackyeh168/jewel_rewards/src/internal/application/lucky"
	spinapp "github.com/jackyeh168/jewel_rewards/src/internal/application/spinwheel"
	"github.com/jackyeh168/jewel_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	inventorypersistence "github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence/inventory"
	loyaltypersistence "github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence/loyalty"
	luckypersistence "github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence/lucky"
	spinpersistence "github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence/spinwheel"
	"github.com/jackyeh168/jewel_rewards/src/internal/interfaces/httpapi"
)

// Deps 組裝 Use Case 所需的外部依賴
type Deps struct {
	DB        *gorm.DB
	Publisher shared.EventPublisher
	Clock     shared.Clock
	Random    shared.RandomSource
	Location  *time.Location // 商店時區，決定「今天」
	Logger    *slog.Logger
}

// repositories 所有 GORM 倉儲
type repositories struct {
	accounts        *loyaltypersistence.AccountRepository
	ledger          *loyaltypersistence.TransactionRepository
	loyaltySettings *loyaltypersistence.SettingsRepository

	discounts *luckypersistence.DiscountRepository
	claims    *luckypersistence.ClaimRepository

	prizes       *spinpersistence.PrizeRepository
	spinSettings *spinpersistence.SettingsRepository
	history      *spinpersistence.HistoryRepository

	products          *inventorypersistence.ProductRepository
	inventorySettings *inventorypersistence.SettingsRepository
}

func newRepositories(db *gorm.DB) repositories {
	return repositories{
		accounts:          loyaltypersistence.NewAccountRepository(db),
		ledger:            loyaltypersistence.NewTransactionRepository(db),
		loyaltySettings:   loyaltypersistence.NewSettingsRepository(db),
		discounts:         luckypersistence.NewDiscountRepository(db),
		claims:            luckypersistence.NewClaimRepository(db),
		prizes:            spinpersistence.NewPrizeRepository(db),
		spinSettings:      spinpersistence.NewSettingsRepository(db),
		history:           spinpersistence.NewHistoryRepository(db),
		products:          inventorypersistence.NewProductRepository(db),
		inventorySettings: inventorypersistence.NewSettingsRepository(db),
	}
}

// NewServices 以 GORM 倉儲組裝所有 Use Case
func NewServices(d Deps) httpapi.Services {
	if d.Clock == nil {
		d.Clock = shared.SystemClock{}
	}
	if d.Random == nil {
		d.Random = shared.SystemRandom{}
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	repos := newRepositories(d.DB)
	tx := persistence.NewGORMTransactionManager(d.DB)

	return httpapi.Services{
		CreateAccount:   loyaltyapp.NewCreateAccountUseCase(repos.accounts, repos.ledger, repos.loyaltySettings, tx, d.Publisher, d.Logger),
		EarnPoints:      loyaltyapp.NewEarnPointsUseCase(repos.accounts, repos.ledger, repos.loyaltySettings, tx, d.Publisher, d.Logger),
		QuoteRedemption: loyaltyapp.NewQuoteRedemptionUseCase(repos.accounts, repos.loyaltySettings, tx),
		RedeemPoints:    loyaltyapp.NewRedeemPointsUseCase(repos.accounts, repos.ledger, repos.loyaltySettings, tx, d.Publisher, d.Logger),
		ForfeitPoints:   loyaltyapp.NewForfeitPointsUseCase(repos.accounts, repos.ledger, tx, d.Publisher, d.Logger),
		GetSummary:      loyaltyapp.NewGetSummaryUseCase(repos.accounts, repos.ledger, tx),
		Reconcile:       loyaltyapp.NewReconcileAccountUseCase(repos.accounts, repos.ledger, tx, d.Logger),

		CheckEligibility: luckyapp.NewCheckEligibilityUseCase(repos.discounts, repos.claims, tx, d.Clock),
		ClaimDiscount:    luckyapp.NewClaimDiscountUseCase(repos.discounts, repos.claims, tx, d.Publisher, d.Clock, d.Logger),
		SaveDiscount:     luckyapp.NewSaveDiscountUseCase(repos.discounts, tx),

		ListPrizes: spinapp.NewListPrizesUseCase(repos.prizes, repos.spinSettings, repos.history, tx, d.Clock, d.Location),
		Spin: spinapp.NewSpinUseCase(spinapp.SpinDependencies{
			Prizes:    repos.prizes,
			Settings:  repos.spinSettings,
			History:   repos.history,
			TxManager: tx,
			Publisher: d.Publisher,
			Random:    d.Random,
			Clock:     d.Clock,
			Location:  d.Location,
			Logger:    d.Logger,
		}),
		ListCoupons:      spinapp.NewListCouponsUseCase(repos.history, tx),
		RedeemCoupon:     spinapp.NewRedeemCouponUseCase(repos.history, tx, d.Clock),
		SavePrizes:       spinapp.NewSavePrizesUseCase(repos.prizes, tx, d.Logger),
		GetSpinSettings:  spinapp.NewGetSettingsUseCase(repos.spinSettings, tx),
		SaveSpinSettings: spinapp.NewSaveSettingsUseCase(repos.spinSettings, tx),
		ExpireStaleSpins: spinapp.NewExpireStaleSpinsUseCase(repos.spinSettings, repos.history, tx, d.Clock, d.Logger),
		ResetTodaySpins:  spinapp.NewResetTodaySpinsUseCase(repos.history, tx, d.Clock, d.Location, d.Logger),

		GetInventorySettings:  inventoryapp.NewGetSettingsUseCase(repos.inventorySettings, tx),
		SaveInventorySettings: inventoryapp.NewSaveSettingsUseCase(repos.inventorySettings, tx),
		StockReport:           inventoryapp.NewStockReportUseCase(repos.products, repos.inventorySettings, tx),
		UpdateStock:           inventoryapp.NewUpdateStockUseCase(repos.products, repos.inventorySettings, tx, d.Publisher, d.Logger),
	}
}

// NotificationDeps 事件處理器所需的依賴
type NotificationDeps struct {
	DB      *gorm.DB
	Invoker shared.FunctionInvoker
	Timeout time.Duration
	Logger  *slog.Logger
}

// Subscribe 註冊通知類事件處理器（幸運折扣通知信、庫存警示）
func Subscribe(subscriber shared.EventSubscriber, d NotificationDeps) error {
	handlers := []shared.EventHandler{
		luckyapp.NewClaimEmailHandler(d.Invoker, d.Timeout, d.Logger),
		inventoryapp.NewStockAlertHandler(inventorypersistence.NewSettingsRepository(d.DB), d.Invoker, d.Timeout, d.Logger),
	}
	for _, h := range handlers {
		if err := subscriber.Subscribe(h.EventType(), h); err != nil {
			return err
		}
	}
	return nil
}
