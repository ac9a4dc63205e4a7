package club

import (
	"context"
	"testing"

	"github.com/misanthropic-codes/sports360/internal/adapter"
	"github.com/misanthropic-codes/sports360/internal/domain"
)

func TestTournamentListingCached(t *testing.T) {
	api := &fakeAPI{
		tournamentsFn: func(context.Context) ([]domain.Tournament, error) {
			return []domain.Tournament{{ID: "cup", Name: "City Cup"}}, nil
		},
	}
	svc := NewTournamentsService(api, nil, adapter.NullLogger())

	for i := 0; i < 3; i++ {
		ts, err := svc.Tournaments(context.Background(), false)
		if err != nil {
			t.Fatalf("Tournaments: %v", err)
		}
		if len(ts) != 1 || ts[0].ID != "cup" {
			t.Fatalf("unexpected listing: %+v", ts)
		}
	}
	if got := api.tournamentsCalls.Load(); got != 1 {
		t.Errorf("expected 1 fetch, got %d", got)
	}
}

func TestFixturesCachedPerTournament(t *testing.T) {
	api := &fakeAPI{
		fixturesFn: func(_ context.Context, id string) ([]domain.Fixture, error) {
			return []domain.Fixture{{ID: "fx-" + id, TournamentID: id}}, nil
		},
	}
	svc := NewTournamentsService(api, nil, adapter.NullLogger())

	a, err := svc.Fixtures(context.Background(), "cup", false)
	if err != nil {
		t.Fatalf("Fixtures cup: %v", err)
	}
	b, err := svc.Fixtures(context.Background(), "league", false)
	if err != nil {
		t.Fatalf("Fixtures league: %v", err)
	}
	if a[0].ID != "fx-cup" || b[0].ID != "fx-league" {
		t.Fatalf("fixtures crossed tournaments: %+v %+v", a, b)
	}

	// Repeat reads of either tournament come from that tournament's cache.
	if _, err := svc.Fixtures(context.Background(), "cup", false); err != nil {
		t.Fatalf("Fixtures cup again: %v", err)
	}
	if _, err := svc.Fixtures(context.Background(), "league", false); err != nil {
		t.Fatalf("Fixtures league again: %v", err)
	}
	if got := api.fixturesCalls.Load(); got != 2 {
		t.Errorf("expected one fetch per tournament, got %d", got)
	}
}

func TestInvalidateTournamentIsScoped(t *testing.T) {
	api := &fakeAPI{
		fixturesFn: func(_ context.Context, id string) ([]domain.Fixture, error) {
			return []domain.Fixture{}, nil
		},
	}
	svc := NewTournamentsService(api, nil, adapter.NullLogger())

	if _, err := svc.Fixtures(context.Background(), "cup", false); err != nil {
		t.Fatalf("Fixtures cup: %v", err)
	}
	if _, err := svc.Fixtures(context.Background(), "league", false); err != nil {
		t.Fatalf("Fixtures league: %v", err)
	}

	svc.InvalidateTournament("cup")

	if _, err := svc.Fixtures(context.Background(), "cup", false); err != nil {
		t.Fatalf("Fixtures cup after invalidate: %v", err)
	}
	if _, err := svc.Fixtures(context.Background(), "league", false); err != nil {
		t.Fatalf("Fixtures league after invalidate: %v", err)
	}

	// Only cup refetched; league's cache was untouched.
	if got := api.fixturesCalls.Load(); got != 3 {
		t.Errorf("expected 3 fetches, got %d", got)
	}
}

func TestStandingsIndependentOfFixtures(t *testing.T) {
	api := &fakeAPI{
		fixturesFn: func(_ context.Context, id string) ([]domain.Fixture, error) {
			return []domain.Fixture{}, nil
		},
		standingsFn: func(_ context.Context, id string) ([]domain.Standing, error) {
			return []domain.Standing{{TeamID: "t1", Points: 9}}, nil
		},
	}
	svc := NewTournamentsService(api, nil, adapter.NullLogger())

	if _, err := svc.Fixtures(context.Background(), "cup", false); err != nil {
		t.Fatalf("Fixtures: %v", err)
	}
	st, err := svc.Standings(context.Background(), "cup", false)
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(st) != 1 || st[0].Points != 9 {
		t.Fatalf("unexpected standings: %+v", st)
	}
}
