package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"learnhub/internal/leaderboard"
	"learnhub/internal/repository"
	"learnhub/pkg/logger"
	"learnhub/pkg/models"
	"learnhub/pkg/utils"
)

// LeaderboardService serves ranked views over the user population. The
// ranking itself is always recomputed from the authoritative rows; Redis
// only caches the result for a short TTL.
type LeaderboardService interface {
	Get(ctx context.Context, metric models.LeaderboardMetric, requesterID string, offset, limit int) (*models.LeaderboardResponse, error)
}

type leaderboardService struct {
	progressRepo repository.ProgressRepository
	xpEvents     repository.XPEventRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	now          func() time.Time
}

// NewLeaderboardService creates the leaderboard service. cache may be nil,
// in which case every request recomputes.
func NewLeaderboardService(
	progressRepo repository.ProgressRepository,
	xpEvents repository.XPEventRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) LeaderboardService {
	return &leaderboardService{
		progressRepo: progressRepo,
		xpEvents:     xpEvents,
		cache:        cache,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

// Get returns one page of the requested leaderboard plus the requester's own
// rank computed over the full population, even when they fall outside the
// page.
func (s *leaderboardService) Get(ctx context.Context, metric models.LeaderboardMetric, requesterID string, offset, limit int) (*models.LeaderboardResponse, error) {
	entries, err := s.rankedEntries(ctx, metric)
	if err != nil {
		return nil, err
	}

	response := &models.LeaderboardResponse{
		Metric:    metric,
		Entries:   leaderboard.Page(entries, offset, limit),
		Total:     len(entries),
		UpdatedAt: s.now(),
	}
	if requesterID != "" {
		me := leaderboard.FindRank(entries, requesterID)
		response.Me = &me
	}
	return response, nil
}

func (s *leaderboardService) rankedEntries(ctx context.Context, metric models.LeaderboardMetric) ([]models.LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:%s", metric)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	users, err := s.progressRepo.ListRanked(ctx)
	if err != nil {
		return nil, err
	}

	if metric == models.MetricWeeklyXP {
		// Weekly score is the ledger sum since the Monday boundary; users
		// without events this week rank with zero.
		sums, err := s.xpEvents.SumByUserSince(ctx, utils.WeekStart(s.now()))
		if err != nil {
			return nil, err
		}
		for i := range users {
			users[i].Score = sums[users[i].UserID]
		}
	}

	entries := leaderboard.Rank(users)
	s.toCache(ctx, cacheKey, entries)
	return entries, nil
}

func (s *leaderboardService) fromCache(ctx context.Context, key string) ([]models.LeaderboardEntry, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *leaderboardService) toCache(ctx context.Context, key string, entries []models.LeaderboardEntry) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		logger.Warnf("leaderboard cache write failed: %v", err)
	}
}
