package club

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/misanthropic-codes/sports360/internal/cache"
	"github.com/misanthropic-codes/sports360/internal/domain"
)

// Tournament listings move slower than teams; fixtures and standings share
// the same window since both change only when results come in.
const tournamentsTTL = 10 * time.Minute

// TournamentsService serves tournament listings, fixtures, and standings
type TournamentsService struct {
	api       domain.API
	snapshots domain.Snapshots
	logger    *slog.Logger

	listing *cache.Resource[[]domain.Tournament]

	mu        sync.Mutex
	fixtures  map[string]*cache.Resource[[]domain.Fixture]
	standings map[string]*cache.Resource[[]domain.Standing]
}

// NewTournamentsService creates a tournaments service
func NewTournamentsService(api domain.API, snapshots domain.Snapshots, logger *slog.Logger) *TournamentsService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TournamentsService{
		api:       api,
		snapshots: snapshots,
		logger:    logger,
		fixtures:  make(map[string]*cache.Resource[[]domain.Fixture]),
		standings: make(map[string]*cache.Resource[[]domain.Standing]),
	}
	s.listing = cache.New(KeyTournaments, tournamentsTTL, func(ctx context.Context) ([]domain.Tournament, error) {
		ts, err := api.Tournaments(ctx)
		if err != nil {
			return nil, err
		}
		if ts == nil {
			ts = []domain.Tournament{}
		}
		return ts, nil
	}, snapshots, logger)
	return s
}

// Tournaments returns the listing, served from cache while fresh
func (s *TournamentsService) Tournaments(ctx context.Context, force bool) ([]domain.Tournament, error) {
	return s.listing.Get(ctx, force)
}

// Fixtures returns a tournament's fixtures through a per-tournament cache
func (s *TournamentsService) Fixtures(ctx context.Context, tournamentID string, force bool) ([]domain.Fixture, error) {
	return s.fixturesResource(tournamentID).Get(ctx, force)
}

// Standings returns a tournament's table through a per-tournament cache
func (s *TournamentsService) Standings(ctx context.Context, tournamentID string, force bool) ([]domain.Standing, error) {
	return s.standingsResource(tournamentID).Get(ctx, force)
}

// fixturesResource returns (creating on first use) the cached resource for
// one tournament's fixtures. Resources live for the process lifetime, like
// every cache entry in this client.
func (s *TournamentsService) fixturesResource(tournamentID string) *cache.Resource[[]domain.Fixture] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.fixtures[tournamentID]; ok {
		return r
	}
	key := PrefixFixtures + tournamentID
	r := cache.New(key, tournamentsTTL, func(ctx context.Context) ([]domain.Fixture, error) {
		fs, err := s.api.TournamentFixtures(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		if fs == nil {
			fs = []domain.Fixture{}
		}
		return fs, nil
	}, s.snapshots, s.logger)
	s.fixtures[tournamentID] = r
	return r
}

func (s *TournamentsService) standingsResource(tournamentID string) *cache.Resource[[]domain.Standing] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.standings[tournamentID]; ok {
		return r
	}
	key := PrefixStandings + tournamentID
	r := cache.New(key, tournamentsTTL, func(ctx context.Context) ([]domain.Standing, error) {
		st, err := s.api.TournamentStandings(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		if st == nil {
			st = []domain.Standing{}
		}
		return st, nil
	}, s.snapshots, s.logger)
	s.standings[tournamentID] = r
	return r
}

// InvalidateTournament clears the cached fixtures and standings for one
// tournament, forcing the next read to hit the network
func (s *TournamentsService) InvalidateTournament(tournamentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.fixtures[tournamentID]; ok {
		r.Invalidate()
	}
	if r, ok := s.standings[tournamentID]; ok {
		r.Invalidate()
	}
}

// Invalidate clears the listing cache
func (s *TournamentsService) Invalidate() {
	s.listing.Invalidate()
}
