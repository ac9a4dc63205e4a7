// Package club holds the per-resource services between the API client and
// the UI. Each service is thin configuration of a cached resource (TTL,
// snapshot key, fetch func) plus the mutations that invalidate it. TTLs
// are tuned per resource; there is no single canonical value.
package club

import (
	"context"
	"log/slog"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/misanthropic-codes/sports360/internal/cache"
	"github.com/misanthropic-codes/sports360/internal/domain"
)

// Teams change often (joins, approvals), so the listing goes stale fast.
const teamsTTL = 5 * time.Minute

// TeamsService serves the current user's teams and their mutations
type TeamsService struct {
	api    domain.API
	logger *slog.Logger
	mine   *cache.Resource[[]domain.Team]
}

// NewTeamsService creates a teams service backed by the given snapshot store
func NewTeamsService(api domain.API, snapshots domain.Snapshots, logger *slog.Logger) *TeamsService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TeamsService{api: api, logger: logger}
	s.mine = cache.New(KeyMyTeams, teamsTTL, func(ctx context.Context) ([]domain.Team, error) {
		teams, err := api.MyTeams(ctx)
		if err != nil {
			return nil, err
		}
		if teams == nil {
			teams = []domain.Team{}
		}
		return teams, nil
	}, snapshots, logger)
	return s
}

// MyTeams returns the user's teams, served from cache while fresh
func (s *TeamsService) MyTeams(ctx context.Context, force bool) ([]domain.Team, error) {
	return s.mine.Get(ctx, force)
}

// TeamDetail fetches one team with its roster; not cached, the detail
// screen always wants current members
func (s *TeamsService) TeamDetail(ctx context.Context, teamID string) (*domain.Team, []domain.TeamMember, error) {
	return s.api.Team(ctx, teamID)
}

// JoinRequests lists pending requests for a team the user manages
func (s *TeamsService) JoinRequests(ctx context.Context, teamID string) ([]domain.JoinRequest, error) {
	return s.api.JoinRequests(ctx, teamID)
}

// Join joins a team by invite code. The confirmed team is appended to the
// cached listing immediately so the UI updates without a refetch; the
// listing is also invalidated so the next read reconciles with the server.
func (s *TeamsService) Join(ctx context.Context, joinCode string) (*domain.Team, error) {
	team, err := s.api.JoinTeam(ctx, joinCode)
	if err != nil {
		s.logger.Error("failed to join team", "error", err)
		return nil, err
	}

	s.mine.Mutate(func(teams []domain.Team) []domain.Team {
		for _, t := range teams {
			if t.ID == team.ID {
				return teams
			}
		}
		return append(teams, *team)
	})
	s.mine.Invalidate()

	s.logger.Info("joined team", "teamID", team.ID)
	return team, nil
}

// ApproveRequest approves a pending join request and invalidates the
// listing so member counts refresh on the next read
func (s *TeamsService) ApproveRequest(ctx context.Context, teamID, requestID string) error {
	if err := s.api.ApproveJoinRequest(ctx, teamID, requestID); err != nil {
		s.logger.Error("failed to approve join request", "error", err, "teamID", teamID)
		return err
	}
	s.mine.Invalidate()
	s.logger.Info("approved join request", "teamID", teamID, "requestID", requestID)
	return nil
}

// Search fuzzy-filters the cached listing by name and city. Works entirely
// on the in-memory copy; returns nil when nothing is loaded yet.
func (s *TeamsService) Search(query string) []domain.Team {
	teams, ok := s.mine.Peek()
	if !ok || query == "" {
		return teams
	}

	var matched []domain.Team
	for _, t := range teams {
		if fuzzy.MatchNormalizedFold(query, t.Name) || fuzzy.MatchNormalizedFold(query, t.City) {
			matched = append(matched, t)
		}
	}
	return matched
}

// Invalidate forces the next MyTeams call to hit the network
func (s *TeamsService) Invalidate() {
	s.mine.Invalidate()
}

// Loading reports whether a teams fetch is in flight
func (s *TeamsService) Loading() bool {
	return s.mine.Loading()
}

// LastError returns the most recent teams fetch failure
func (s *TeamsService) LastError() error {
	return s.mine.LastError()
}
