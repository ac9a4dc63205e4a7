package club

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/misanthropic-codes/sports360/internal/cache"
	"github.com/misanthropic-codes/sports360/internal/domain"
)

// Analytics recompute after every result, so the window stays short.
const analyticsTTL = 5 * time.Minute

// AnalyticsService serves per-team performance aggregates
type AnalyticsService struct {
	api       domain.API
	snapshots domain.Snapshots
	logger    *slog.Logger

	mu     sync.Mutex
	byTeam map[string]*cache.Resource[*domain.TeamAnalytics]
}

// NewAnalyticsService creates an analytics service
func NewAnalyticsService(api domain.API, snapshots domain.Snapshots, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		api:       api,
		snapshots: snapshots,
		logger:    logger,
		byTeam:    make(map[string]*cache.Resource[*domain.TeamAnalytics]),
	}
}

// ForTeam returns a team's analytics through a per-team cache
func (s *AnalyticsService) ForTeam(ctx context.Context, teamID string, force bool) (*domain.TeamAnalytics, error) {
	return s.resource(teamID).Get(ctx, force)
}

// InvalidateTeam forces the next read for one team to hit the network
func (s *AnalyticsService) InvalidateTeam(teamID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.byTeam[teamID]; ok {
		r.Invalidate()
	}
}

func (s *AnalyticsService) resource(teamID string) *cache.Resource[*domain.TeamAnalytics] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.byTeam[teamID]; ok {
		return r
	}
	key := PrefixAnalytics + teamID
	r := cache.New(key, analyticsTTL, func(ctx context.Context) (*domain.TeamAnalytics, error) {
		ta, err := s.api.TeamAnalytics(ctx, teamID)
		if err != nil {
			return nil, err
		}
		if ta == nil {
			ta = &domain.TeamAnalytics{TeamID: teamID}
		}
		return ta, nil
	}, s.snapshots, s.logger)
	s.byTeam[teamID] = r
	return r
}
