package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/dooza/social-signups-api/internal/domain/entities"
	"github.com/dooza/social-signups-api/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupAt(created time.Time, status entities.SignupStatus) entities.SocialSignup {
	return entities.SocialSignup{
		Email:     "lead@example.com",
		Status:    status,
		CreatedAt: created,
	}
}

func TestCalculateStatsEmpty(t *testing.T) {
	stats := CalculateStats(nil, time.Now())

	assert.Equal(t, entities.SignupStats{}, stats)
}

func TestCalculateStatsStatusPartition(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

	signups := []entities.SocialSignup{
		signupAt(now.Add(-time.Hour), entities.StatusPending),
		signupAt(now.Add(-2*time.Hour), entities.StatusPending),
		signupAt(now.AddDate(0, 0, -3), entities.StatusVerified),
		signupAt(now.AddDate(0, 0, -20), entities.StatusActive),
	}

	stats := CalculateStats(signups, now)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Verified)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, stats.Total, stats.Pending+stats.Verified+stats.Active)
}

func TestCalculateStatsTodayUsesUTCCalendarDay(t *testing.T) {
	// 00:30 UTC; a record from 23:30 the previous UTC day is recent but
	// not "today"
	now := time.Date(2026, time.March, 10, 0, 30, 0, 0, time.UTC)

	signups := []entities.SocialSignup{
		signupAt(now, entities.StatusPending),
		signupAt(now.Add(-time.Hour), entities.StatusPending),
	}

	stats := CalculateStats(signups, now)

	assert.Equal(t, 1, stats.Today)
	assert.Equal(t, 2, stats.Week)
}

func TestCalculateStatsRecordAtNowCountsTowardBoth(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	stats := CalculateStats([]entities.SocialSignup{signupAt(now, entities.StatusPending)}, now)

	assert.Equal(t, 1, stats.Today)
	assert.Equal(t, 1, stats.Week)
}

func TestCalculateStatsWeekIsContinuousSevenDays(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	signups := []entities.SocialSignup{
		signupAt(now.AddDate(0, 0, -6), entities.StatusPending),
		signupAt(now.AddDate(0, 0, -8), entities.StatusPending),
		// exactly the boundary: strictly-after comparison excludes it
		signupAt(now.AddDate(0, 0, -7), entities.StatusPending),
	}

	stats := CalculateStats(signups, now)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Week)
}

func TestGetStatsCachesResult(t *testing.T) {
	repo := newFakeSignupRepo()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	seeded := signupAt(now, entities.StatusPending)
	require.NoError(t, repo.Create(context.Background(), &seeded))

	uc := NewStatsUseCase(repo, cache.New())
	uc.now = func() time.Time { return now }

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, repo.findAllCalls)

	// Second read within the TTL is served from cache
	stats, err = uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, repo.findAllCalls)
}

func TestGetStatsStoreFailure(t *testing.T) {
	repo := newFakeSignupRepo()
	repo.findAllErr = assert.AnError

	uc := NewStatsUseCase(repo, nil)

	_, err := uc.GetStats(context.Background())
	assert.Error(t, err)
}
