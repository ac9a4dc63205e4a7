package domain

import "context"

// API is the remote Sports360 backend surface this client consumes.
// Implemented by internal/api.Client.
type API interface {
	// Auth
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, name, email, password string) (*Session, error)

	// Teams
	MyTeams(ctx context.Context) ([]Team, error)
	Team(ctx context.Context, teamID string) (*Team, []TeamMember, error)
	JoinTeam(ctx context.Context, joinCode string) (*Team, error)
	JoinRequests(ctx context.Context, teamID string) ([]JoinRequest, error)
	ApproveJoinRequest(ctx context.Context, teamID, requestID string) error

	// Tournaments
	Tournaments(ctx context.Context) ([]Tournament, error)
	TournamentFixtures(ctx context.Context, tournamentID string) ([]Fixture, error)
	TournamentStandings(ctx context.Context, tournamentID string) ([]Standing, error)

	// Grounds
	Grounds(ctx context.Context) ([]Ground, error)
	GroundSlots(ctx context.Context, groundID, date string) ([]Slot, error)
	BookSlot(ctx context.Context, slotID, teamID string) (*Booking, error)

	// Aggregates
	TeamAnalytics(ctx context.Context, teamID string) (*TeamAnalytics, error)
	GuestHighlights(ctx context.Context) (*GuestHighlights, error)
}

// Snapshots persists last-known-good payloads so cached resources can fall
// back to stale data when a fetch fails. Implemented by internal/store.Store.
type Snapshots interface {
	// LoadSnapshot unmarshals the payload stored under key into dest,
	// returning false if no snapshot exists
	LoadSnapshot(key string, dest any) bool

	// SaveSnapshot stores a payload under key, replacing any previous one
	SaveSnapshot(key string, value any) error

	// DeleteSnapshot removes the payload stored under key
	DeleteSnapshot(key string)
}
