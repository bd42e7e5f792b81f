package lucky

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jackyeh168/jewel_rewards/src/internal/domain/lucky"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
)

var testNow = time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	return persistence.SetupTestDB(t, Models()...)
}

func discount(name string, percent int, rule lucky.WinningRule, startsAt, expiresAt time.Time, active bool) lucky.Discount {
	return lucky.Discount{
		ID:              lucky.NewDiscountID(),
		Name:            name,
		Code:            "CODE" + name,
		DiscountPercent: percent,
		Rule:            rule,
		StartsAt:        startsAt,
		ExpiresAt:       expiresAt,
		IsActive:        active,
	}
}

// ===========================
// DiscountRepository
// ===========================

// Test 1: 規則以 JSON 儲存並還原
func TestDiscountRepository_RoundTripsRule(t *testing.T) {
	// Arrange
	repo := NewDiscountRepository(setupDB(t))
	d := discount("Diwali", 15, lucky.NumberSet{Numbers: []int{7, 21, 77}}, testNow.Add(-time.Hour), testNow.AddDate(0, 0, 7), true)

	// Act
	require.NoError(t, repo.Save(nil, d))
	found, err := repo.FindByID(nil, d.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Diwali", found.Name)
	assert.Equal(t, lucky.RuleKindNumberSet, found.Rule.Kind())
	assert.True(t, found.Matches(77))
	assert.False(t, found.Matches(8))
	assert.True(t, d.ExpiresAt.Equal(found.ExpiresAt))
}

// Test 2: 只返回進行中的活動
func TestDiscountRepository_FindRunning(t *testing.T) {
	// Arrange
	repo := NewDiscountRepository(setupDB(t))
	rule := lucky.DivisibleBy{Divisor: 1}
	running := discount("Running", 10, rule, testNow.Add(-time.Hour), testNow.Add(time.Hour), true)
	notStarted := discount("Future", 20, rule, testNow.Add(time.Hour), testNow.Add(2*time.Hour), true)
	expired := discount("Past", 30, rule, testNow.Add(-2*time.Hour), testNow, true)
	inactive := discount("Off", 40, rule, testNow.Add(-time.Hour), testNow.Add(time.Hour), false)
	for _, d := range []lucky.Discount{running, notStarted, expired, inactive} {
		require.NoError(t, repo.Save(nil, d))
	}

	// Act
	found, err := repo.FindRunning(nil, testNow)

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, running.ID.String(), found[0].ID.String())
}

// Test 3: 查無活動
func TestDiscountRepository_NotFound(t *testing.T) {
	repo := NewDiscountRepository(setupDB(t))

	_, err := repo.FindByID(nil, lucky.NewDiscountID())

	assert.ErrorIs(t, err, lucky.ErrDiscountNotFound)
}

// ===========================
// ClaimRepository
// ===========================

func newClaim(t *testing.T, d lucky.Discount, userID lucky.UserID) *lucky.Claim {
	t.Helper()
	seed := lucky.Seed{UserID: userID, SessionStartedAt: testNow}
	claim, err := lucky.NewClaim(d, lucky.Claimant{Seed: seed}, lucky.DeriveLuckyNumber(seed), testNow)
	require.NoError(t, err)
	return claim
}

// Test 4: 同一活動重複領取被唯一索引擋下
func TestClaimRepository_UniquePerDiscountAndUser(t *testing.T) {
	// Arrange
	repo := NewClaimRepository(setupDB(t))
	d := discount("Everyone", 15, lucky.DivisibleBy{Divisor: 1}, testNow.Add(-time.Hour), testNow.AddDate(0, 0, 7), true)
	userID := lucky.NewUserID()
	require.NoError(t, repo.Save(nil, newClaim(t, d, userID)))

	// Act
	err := repo.Save(nil, newClaim(t, d, userID))

	// Assert
	assert.ErrorIs(t, err, lucky.ErrAlreadyClaimed)
}

// Test 5: 查回領取紀錄
func TestClaimRepository_FindAndList(t *testing.T) {
	// Arrange
	repo := NewClaimRepository(setupDB(t))
	d1 := discount("A", 10, lucky.DivisibleBy{Divisor: 1}, testNow.Add(-time.Hour), testNow.AddDate(0, 0, 7), true)
	d2 := discount("B", 20, lucky.DivisibleBy{Divisor: 1}, testNow.Add(-time.Hour), testNow.AddDate(0, 0, 7), true)
	userID := lucky.NewUserID()
	claim := newClaim(t, d1, userID)
	require.NoError(t, repo.Save(nil, claim))
	require.NoError(t, repo.Save(nil, newClaim(t, d2, userID)))
	require.NoError(t, repo.Save(nil, newClaim(t, d1, lucky.NewUserID())))

	// Act
	found, err := repo.FindByDiscountAndUser(nil, d1.ID, userID)
	require.NoError(t, err)
	all, err := repo.ListByUser(nil, userID)
	require.NoError(t, err)
	_, missing := repo.FindByDiscountAndUser(nil, d2.ID, lucky.NewUserID())

	// Assert
	assert.Equal(t, claim.ID().String(), found.ID().String())
	assert.Equal(t, "CODEA", found.DiscountCode())
	assert.Equal(t, claim.LuckyNumber(), found.LuckyNumber())
	assert.Len(t, all, 2)
	assert.ErrorIs(t, missing, lucky.ErrClaimNotFound)
}
