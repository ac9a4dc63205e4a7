package tui

import (
	"github.com/misanthropic-codes/sports360/internal/domain"
	"github.com/misanthropic-codes/sports360/internal/signal"
)

// Message types for the TUI

// ErrMsg represents a request-local error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// APIErrorMsg carries a globally broadcast API error into the tea loop
type APIErrorMsg struct {
	Event signal.Event
}

// LoggedInMsg signals a successful login
type LoggedInMsg struct {
	Session domain.Session
}

// TeamsLoadedMsg signals that the user's teams have been loaded.
// Stale is true when the payload is a persisted fallback after a failed
// fetch.
type TeamsLoadedMsg struct {
	Teams []domain.Team
	Stale bool
}

// TeamDetailLoadedMsg signals that a team's roster has been loaded
type TeamDetailLoadedMsg struct {
	Team     domain.Team
	Members  []domain.TeamMember
	Requests []domain.JoinRequest
}

// TeamJoinedMsg signals that the user joined a team
type TeamJoinedMsg struct {
	Team domain.Team
}

// RequestApprovedMsg signals that a join request was approved
type RequestApprovedMsg struct {
	TeamID    string
	RequestID string
}

// TournamentsLoadedMsg signals that tournaments have been loaded
type TournamentsLoadedMsg struct {
	Tournaments []domain.Tournament
	Stale       bool
}

// TournamentDetailLoadedMsg signals fixtures + standings for one tournament
type TournamentDetailLoadedMsg struct {
	TournamentID string
	Fixtures     []domain.Fixture
	Standings    []domain.Standing
}

// GroundsLoadedMsg signals that grounds have been loaded
type GroundsLoadedMsg struct {
	Grounds []domain.Ground
	Stale   bool
}

// SlotsLoadedMsg signals availability for a ground on a date
type SlotsLoadedMsg struct {
	GroundID string
	Date     string
	Slots    []domain.Slot
}

// SlotBookedMsg signals a confirmed booking
type SlotBookedMsg struct {
	Booking domain.Booking
}

// AnalyticsLoadedMsg signals that a team's analytics have been loaded
type AnalyticsLoadedMsg struct {
	Analytics domain.TeamAnalytics
}

// GuestHighlightsLoadedMsg signals that the guest aggregate has been loaded
type GuestHighlightsLoadedMsg struct {
	Highlights domain.GuestHighlights
	Stale      bool
}

// LoggedOutMsg signals that in-memory and persisted state were cleared
type LoggedOutMsg struct{}
