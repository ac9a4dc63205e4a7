package domain

import (
	"fmt"
	"time"
)

// Sport identifies the sport a team, tournament, or ground slot is for.
type Sport string

const (
	SportFootball   Sport = "football"
	SportCricket    Sport = "cricket"
	SportBasketball Sport = "basketball"
	SportBadminton  Sport = "badminton"
	SportTennis     Sport = "tennis"
)

// TeamRole is the current user's role within a team
type TeamRole string

const (
	RoleCaptain TeamRole = "captain"
	RoleManager TeamRole = "manager"
	RolePlayer  TeamRole = "player"
)

// Team represents a team the current user belongs to (or can join)
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Sport       Sport    `json:"sport"`
	City        string   `json:"city"`
	Role        TeamRole `json:"role"`       // Current user's role, empty for teams the user is not in
	MemberCount int      `json:"memberCount"`
	JoinCode    string   `json:"joinCode"` // Invite code, only present for captains/managers
	CreatedAt   int64    `json:"createdAt"` // Unix timestamp
}

// TeamMember is one member of a team roster
type TeamMember struct {
	UserID   string   `json:"userId"`
	Name     string   `json:"name"`
	Role     TeamRole `json:"role"`
	Jersey   int      `json:"jersey"`
	JoinedAt int64    `json:"joinedAt"`
}

// JoinRequest is a pending request from a user to join a team
type JoinRequest struct {
	ID        string `json:"id"`
	TeamID    string `json:"teamId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
}

// TournamentStatus tracks a tournament through its lifecycle
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentLive      TournamentStatus = "live"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament represents a competition the backend schedules fixtures for
type Tournament struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Sport     Sport            `json:"sport"`
	Format    string           `json:"format"` // "league", "knockout", "groups+knockout"
	City      string           `json:"city"`
	StartDate string           `json:"startDate"` // ISO date, schedule granularity is a day
	EndDate   string           `json:"endDate"`
	Status    TournamentStatus `json:"status"`
	TeamCount int              `json:"teamCount"`
	EntryFee  int              `json:"entryFee"` // Smallest currency unit, 0 = free
}

// Fixture is a single scheduled match within a tournament.
// Fixture generation happens server-side; this client only renders them.
type Fixture struct {
	ID           string `json:"id"`
	TournamentID string `json:"tournamentId"`
	Round        string `json:"round"` // "Group A", "Quarter-final", "Matchday 3"
	HomeTeam     string `json:"homeTeam"`
	AwayTeam     string `json:"awayTeam"`
	KickoffAt    int64  `json:"kickoffAt"` // Unix timestamp
	Venue        string `json:"venue"`
	Status       string `json:"status"` // "scheduled", "live", "finished"
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
}

// Standing is one row of a tournament table
type Standing struct {
	Position int    `json:"position"`
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Played   int    `json:"played"`
	Won      int    `json:"won"`
	Drawn    int    `json:"drawn"`
	Lost     int    `json:"lost"`
	Points   int    `json:"points"`
}

// Ground is a bookable venue
type Ground struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Sports       []Sport `json:"sports"`
	PricePerHour int     `json:"pricePerHour"`
	Rating       float64 `json:"rating"` // 0-5
}

// Slot is a bookable window at a ground on a given day.
// Availability is resolved server-side at request time and is never cached.
type Slot struct {
	ID        string `json:"id"`
	GroundID  string `json:"groundId"`
	Date      string `json:"date"` // ISO date
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	Price     int    `json:"price"`
}

// Booking is a confirmed slot reservation
type Booking struct {
	ID         string `json:"id"`
	SlotID     string `json:"slotId"`
	GroundID   string `json:"groundId"`
	GroundName string `json:"groundName"`
	TeamID     string `json:"teamId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	AmountPaid int    `json:"amountPaid"`
}

// TeamAnalytics is the server-computed performance aggregate for one team
type TeamAnalytics struct {
	TeamID        string   `json:"teamId"`
	Played        int      `json:"played"`
	Won           int      `json:"won"`
	Drawn         int      `json:"drawn"`
	Lost          int      `json:"lost"`
	GoalsFor      int      `json:"goalsFor"`
	GoalsAgainst  int      `json:"goalsAgainst"`
	WinRate       float64  `json:"winRate"`
	CurrentStreak string   `json:"currentStreak"` // "W3", "L1", "D2"
	RecentForm    []string `json:"recentForm"`    // Last five results, most recent first
}

// GuestHighlights is the pre-login aggregate shown in guest mode
type GuestHighlights struct {
	FeaturedTournaments []Tournament `json:"featuredTournaments"`
	PopularGrounds      []Ground     `json:"popularGrounds"`
	TrendingTeams       []Team       `json:"trendingTeams"`
}

// Session is the authenticated user session persisted on device
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// KickoffTime returns the fixture kickoff as a time.Time
func (f Fixture) KickoffTime() time.Time {
	return time.Unix(f.KickoffAt, 0)
}

// Score renders "2-1" for finished or live fixtures, "vs" otherwise
func (f Fixture) Score() string {
	if f.Status == "scheduled" {
		return "vs"
	}
	return fmt.Sprintf("%d-%d", f.HomeScore, f.AwayScore)
}

// Record renders the analytics W-D-L summary, e.g. "12W 3D 5L"
func (a TeamAnalytics) Record() string {
	return fmt.Sprintf("%dW %dD %dL", a.Won, a.Drawn, a.Lost)
}
