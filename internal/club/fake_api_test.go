package club

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/misanthropic-codes/sports360/internal/domain"
)

var errNotStubbed = errors.New("not stubbed")

// fakeAPI is a configurable domain.API stub. Only the function fields a
// test sets are usable; everything else fails loudly.
type fakeAPI struct {
	myTeamsFn     func(ctx context.Context) ([]domain.Team, error)
	joinTeamFn    func(ctx context.Context, joinCode string) (*domain.Team, error)
	approveFn     func(ctx context.Context, teamID, requestID string) error
	tournamentsFn func(ctx context.Context) ([]domain.Tournament, error)
	fixturesFn    func(ctx context.Context, tournamentID string) ([]domain.Fixture, error)
	standingsFn   func(ctx context.Context, tournamentID string) ([]domain.Standing, error)
	groundsFn     func(ctx context.Context) ([]domain.Ground, error)
	slotsFn       func(ctx context.Context, groundID, date string) ([]domain.Slot, error)
	bookFn        func(ctx context.Context, slotID, teamID string) (*domain.Booking, error)
	analyticsFn   func(ctx context.Context, teamID string) (*domain.TeamAnalytics, error)
	highlightsFn  func(ctx context.Context) (*domain.GuestHighlights, error)

	myTeamsCalls     atomic.Int32
	tournamentsCalls atomic.Int32
	fixturesCalls    atomic.Int32
	groundsCalls     atomic.Int32
	analyticsCalls   atomic.Int32
}

func (f *fakeAPI) Login(context.Context, string, string) (*domain.Session, error) {
	return nil, errNotStubbed
}

func (f *fakeAPI) Register(context.Context, string, string, string) (*domain.Session, error) {
	return nil, errNotStubbed
}

func (f *fakeAPI) MyTeams(ctx context.Context) ([]domain.Team, error) {
	f.myTeamsCalls.Add(1)
	if f.myTeamsFn == nil {
		return nil, errNotStubbed
	}
	return f.myTeamsFn(ctx)
}

func (f *fakeAPI) Team(context.Context, string) (*domain.Team, []domain.TeamMember, error) {
	return nil, nil, errNotStubbed
}

func (f *fakeAPI) JoinTeam(ctx context.Context, joinCode string) (*domain.Team, error) {
	if f.joinTeamFn == nil {
		return nil, errNotStubbed
	}
	return f.joinTeamFn(ctx, joinCode)
}

func (f *fakeAPI) JoinRequests(context.Context, string) ([]domain.JoinRequest, error) {
	return nil, errNotStubbed
}

func (f *fakeAPI) ApproveJoinRequest(ctx context.Context, teamID, requestID string) error {
	if f.approveFn == nil {
		return errNotStubbed
	}
	return f.approveFn(ctx, teamID, requestID)
}

func (f *fakeAPI) Tournaments(ctx context.Context) ([]domain.Tournament, error) {
	f.tournamentsCalls.Add(1)
	if f.tournamentsFn == nil {
		return nil, errNotStubbed
	}
	return f.tournamentsFn(ctx)
}

func (f *fakeAPI) TournamentFixtures(ctx context.Context, tournamentID string) ([]domain.Fixture, error) {
	f.fixturesCalls.Add(1)
	if f.fixturesFn == nil {
		return nil, errNotStubbed
	}
	return f.fixturesFn(ctx, tournamentID)
}

func (f *fakeAPI) TournamentStandings(ctx context.Context, tournamentID string) ([]domain.Standing, error) {
	if f.standingsFn == nil {
		return nil, errNotStubbed
	}
	return f.standingsFn(ctx, tournamentID)
}

func (f *fakeAPI) Grounds(ctx context.Context) ([]domain.Ground, error) {
	f.groundsCalls.Add(1)
	if f.groundsFn == nil {
		return nil, errNotStubbed
	}
	return f.groundsFn(ctx)
}

func (f *fakeAPI) GroundSlots(ctx context.Context, groundID, date string) ([]domain.Slot, error) {
	if f.slotsFn == nil {
		return nil, errNotStubbed
	}
	return f.slotsFn(ctx, groundID, date)
}

func (f *fakeAPI) BookSlot(ctx context.Context, slotID, teamID string) (*domain.Booking, error) {
	if f.bookFn == nil {
		return nil, errNotStubbed
	}
	return f.bookFn(ctx, slotID, teamID)
}

func (f *fakeAPI) TeamAnalytics(ctx context.Context, teamID string) (*domain.TeamAnalytics, error) {
	f.analyticsCalls.Add(1)
	if f.analyticsFn == nil {
		return nil, errNotStubbed
	}
	return f.analyticsFn(ctx, teamID)
}

func (f *fakeAPI) GuestHighlights(ctx context.Context) (*domain.GuestHighlights, error) {
	if f.highlightsFn == nil {
		return nil, errNotStubbed
	}
	return f.highlightsFn(ctx)
}
