package club

import (
	"context"
	"errors"
	"testing"

	"github.com/misanthropic-codes/sports360/internal/adapter"
	"github.com/misanthropic-codes/sports360/internal/domain"
)

func TestMyTeamsServedFromCache(t *testing.T) {
	api := &fakeAPI{
		myTeamsFn: func(context.Context) ([]domain.Team, error) {
			return []domain.Team{{ID: "t1", Name: "Rovers"}}, nil
		},
	}
	svc := NewTeamsService(api, nil, adapter.NullLogger())

	for i := 0; i < 3; i++ {
		teams, err := svc.MyTeams(context.Background(), false)
		if err != nil {
			t.Fatalf("MyTeams: %v", err)
		}
		if len(teams) != 1 || teams[0].ID != "t1" {
			t.Fatalf("unexpected teams: %+v", teams)
		}
	}
	if got := api.myTeamsCalls.Load(); got != 1 {
		t.Errorf("expected 1 fetch, got %d", got)
	}
}

func TestForceRefreshHitsNetwork(t *testing.T) {
	api := &fakeAPI{
		myTeamsFn: func(context.Context) ([]domain.Team, error) {
			return []domain.Team{}, nil
		},
	}
	svc := NewTeamsService(api, nil, adapter.NullLogger())

	if _, err := svc.MyTeams(context.Background(), false); err != nil {
		t.Fatalf("MyTeams: %v", err)
	}
	if _, err := svc.MyTeams(context.Background(), true); err != nil {
		t.Fatalf("MyTeams force: %v", err)
	}
	if got := api.myTeamsCalls.Load(); got != 2 {
		t.Errorf("expected 2 fetches, got %d", got)
	}
}

func TestJoinAppendsOptimisticallyAndInvalidates(t *testing.T) {
	api := &fakeAPI{
		myTeamsFn: func(context.Context) ([]domain.Team, error) {
			return []domain.Team{{ID: "t1", Name: "Rovers"}}, nil
		},
		joinTeamFn: func(_ context.Context, code string) (*domain.Team, error) {
			if code != "ABC123" {
				t.Errorf("unexpected join code %q", code)
			}
			return &domain.Team{ID: "t2", Name: "United"}, nil
		},
	}
	svc := NewTeamsService(api, nil, adapter.NullLogger())

	if _, err := svc.MyTeams(context.Background(), false); err != nil {
		t.Fatalf("MyTeams: %v", err)
	}

	team, err := svc.Join(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if team.ID != "t2" {
		t.Fatalf("unexpected team %+v", team)
	}

	// The joined team is visible immediately, without waiting for a refetch.
	cached := svc.Search("")
	if len(cached) != 2 || cached[1].ID != "t2" {
		t.Fatalf("optimistic append missing: %+v", cached)
	}

	// Join also invalidated the listing, so the next read reconciles.
	if _, err := svc.MyTeams(context.Background(), false); err != nil {
		t.Fatalf("MyTeams after join: %v", err)
	}
	if got := api.myTeamsCalls.Load(); got != 2 {
		t.Errorf("expected refetch after join, got %d fetches", got)
	}
}

func TestJoinDoesNotDuplicateExistingTeam(t *testing.T) {
	api := &fakeAPI{
		myTeamsFn: func(context.Context) ([]domain.Team, error) {
			return []domain.Team{{ID: "t1", Name: "Rovers"}}, nil
		},
		joinTeamFn: func(context.Context, string) (*domain.Team, error) {
			return &domain.Team{ID: "t1", Name: "Rovers"}, nil
		},
	}
	svc := NewTeamsService(api, nil, adapter.NullLogger())

	if _, err := svc.MyTeams(context.Background(), false); err != nil {
		t.Fatalf("MyTeams: %v", err)
	}
	if _, err := svc.Join(context.Background(), "ABC123"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if cached := svc.Search(""); len(cached) != 1 {
		t.Fatalf("expected no duplicate, got %+v", cached)
	}
}

func TestJoinFailureLeavesCacheAlone(t *testing.T) {
	api := &fakeAPI{
		myTeamsFn: func(context.Context) ([]domain.Team, error) {
			return []domain.Team{{ID: "t1", Name: "Rovers"}}, nil
		},
		joinTeamFn: func(context.Context, string) (*domain.Team, error) {
			return nil, errors.New("invalid code")
		},
	}
	svc := NewTeamsService(api, nil, adapter.NullLogger())

	if _, err := svc.MyTeams(context.Background(), false); err != nil {
		t.Fatalf("MyTeams: %v", err)
	}
	if _, err := svc.Join(context.Background(), "BAD"); err == nil {
		t.Fatal("expected join error")
	}

	// Still fresh and unchanged; no refetch happened.
	teams, err := svc.MyTeams(context.Background(), false)
	if err != nil {
		t.Fatalf("MyTeams: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("cache changed after failed join: %+v", teams)
	}
	if got := api.myTeamsCalls.Load(); got != 1 {
		t.Errorf("expected 1 fetch, got %d", got)
	}
}

func TestApproveRequestInvalidatesListing(t *testing.T) {
	api := &fakeAPI{
		myTeamsFn: func(context.Context) ([]domain.Team, error) {
			return []domain.Team{{ID: "t1", Name: "Rovers"}}, nil
		},
		approveFn: func(_ context.Context, teamID, requestID string) error {
			if teamID != "t1" || requestID != "r1" {
				t.Errorf("unexpected args %q %q", teamID, requestID)
			}
			return nil
		},
	}
	svc := NewTeamsService(api, nil, adapter.NullLogger())

	if _, err := svc.MyTeams(context.Background(), false); err != nil {
		t.Fatalf("MyTeams: %v", err)
	}
	if err := svc.ApproveRequest(context.Background(), "t1", "r1"); err != nil {
		t.Fatalf("ApproveRequest: %v", err)
	}
	if _, err := svc.MyTeams(context.Background(), false); err != nil {
		t.Fatalf("MyTeams: %v", err)
	}
	if got := api.myTeamsCalls.Load(); got != 2 {
		t.Errorf("expected refetch after approval, got %d fetches", got)
	}
}

func TestSearchFiltersByNameAndCity(t *testing.T) {
	api := &fakeAPI{
		myTeamsFn: func(context.Context) ([]domain.Team, error) {
			return []domain.Team{
				{ID: "t1", Name: "Thunder FC", City: "Pune"},
				{ID: "t2", Name: "Rovers", City: "Mumbai"},
				{ID: "t3", Name: "Mumbai Kings", City: "Mumbai"},
			}, nil
		},
	}
	svc := NewTeamsService(api, nil, adapter.NullLogger())

	if _, err := svc.MyTeams(context.Background(), false); err != nil {
		t.Fatalf("MyTeams: %v", err)
	}

	got := svc.Search("mumbai")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %+v", got)
	}
	for _, tm := range got {
		if tm.ID == "t1" {
			t.Errorf("Thunder FC should not match: %+v", got)
		}
	}

	if got := svc.Search("thunder"); len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("expected Thunder FC only, got %+v", got)
	}
}

func TestSearchBeforeLoadReturnsNil(t *testing.T) {
	svc := NewTeamsService(&fakeAPI{}, nil, adapter.NullLogger())
	if got := svc.Search("anything"); got != nil {
		t.Fatalf("expected nil before first load, got %+v", got)
	}
}
