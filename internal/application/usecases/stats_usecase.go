package usecases

import (
	"context"
	"time"

	"github.com/dooza/social-signups-api/internal/domain/entities"
	"github.com/dooza/social-signups-api/internal/domain/repositories"
	"github.com/dooza/social-signups-api/internal/infrastructure/cache"
	"github.com/dooza/social-signups-api/internal/utils"
)

const (
	statsCacheKey = "signup_stats"
	statsCacheTTL = 30 * time.Second
)

// CalculateStats derives the dashboard summary from the full record
// set. Pure: deterministic for a fixed now, no store access. created_at
// is the canonical timestamp for every bucket.
func CalculateStats(signups []entities.SocialSignup, now time.Time) entities.SignupStats {
	stats := entities.SignupStats{
		Total: len(signups),
	}

	weekAgo := utils.WeekAgo(now)

	for _, signup := range signups {
		if utils.SameUTCDay(signup.CreatedAt, now) {
			stats.Today++
		}
		if signup.CreatedAt.After(weekAgo) {
			stats.Week++
		}

		switch signup.Status {
		case entities.StatusPending:
			stats.Pending++
		case entities.StatusVerified:
			stats.Verified++
		case entities.StatusActive:
			stats.Active++
		}
	}

	return stats
}

type StatsUseCase struct {
	signupRepo repositories.ISignupRepository
	statsCache *cache.Cache
	now        func() time.Time
}

func NewStatsUseCase(signupRepo repositories.ISignupRepository, statsCache *cache.Cache) *StatsUseCase {
	return &StatsUseCase{
		signupRepo: signupRepo,
		statsCache: statsCache,
		now:        time.Now,
	}
}

// GetStats returns the aggregate counts, served from cache while fresh.
func (uc *StatsUseCase) GetStats(ctx context.Context) (entities.SignupStats, error) {
	if uc.statsCache != nil {
		if cached, found := uc.statsCache.Get(statsCacheKey); found {
			if stats, ok := cached.(entities.SignupStats); ok {
				return stats, nil
			}
		}
	}

	signups, err := uc.signupRepo.FindAll(ctx)
	if err != nil {
		return entities.SignupStats{}, err
	}

	stats := CalculateStats(signups, uc.now())

	if uc.statsCache != nil {
		uc.statsCache.Set(statsCacheKey, stats, statsCacheTTL)
	}

	return stats, nil
}
