package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/misanthropic-codes/sports360/internal/club"
	"github.com/misanthropic-codes/sports360/internal/session"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// LoadTeamsCmd loads the user's teams, from cache when fresh
func LoadTeamsCmd(svc *club.TeamsService, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		teams, err := svc.MyTeams(ctx, force)
		if err != nil {
			if len(teams) > 0 {
				// Persisted fallback: render what we have, flag it stale
				return TeamsLoadedMsg{Teams: teams, Stale: true}
			}
			return ErrMsg{Err: err, Context: "loading teams"}
		}
		return TeamsLoadedMsg{Teams: teams}
	}
}

// LoadTeamDetailCmd loads one team's roster and pending requests
func LoadTeamDetailCmd(svc *club.TeamsService, teamID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		team, members, err := svc.TeamDetail(ctx, teamID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading team"}
		}

		// Requests are only visible to captains/managers; a 403 here is fine
		requests, err := svc.JoinRequests(ctx, teamID)
		if err != nil {
			requests = nil
		}
		return TeamDetailLoadedMsg{Team: *team, Members: members, Requests: requests}
	}
}

// JoinTeamCmd joins a team by invite code
func JoinTeamCmd(svc *club.TeamsService, joinCode string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		team, err := svc.Join(ctx, joinCode)
		if err != nil {
			return ErrMsg{Err: err, Context: "joining team"}
		}
		return TeamJoinedMsg{Team: *team}
	}
}

// ApproveRequestCmd approves a pending join request
func ApproveRequestCmd(svc *club.TeamsService, teamID, requestID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := svc.ApproveRequest(ctx, teamID, requestID); err != nil {
			return ErrMsg{Err: err, Context: "approving request"}
		}
		return RequestApprovedMsg{TeamID: teamID, RequestID: requestID}
	}
}

// LoadTournamentsCmd loads the tournament listing
func LoadTournamentsCmd(svc *club.TournamentsService, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		ts, err := svc.Tournaments(ctx, force)
		if err != nil {
			if len(ts) > 0 {
				return TournamentsLoadedMsg{Tournaments: ts, Stale: true}
			}
			return ErrMsg{Err: err, Context: "loading tournaments"}
		}
		return TournamentsLoadedMsg{Tournaments: ts}
	}
}

// LoadTournamentDetailCmd loads fixtures and standings for one tournament
func LoadTournamentDetailCmd(svc *club.TournamentsService, tournamentID string, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		fixtures, err := svc.Fixtures(ctx, tournamentID, force)
		if err != nil && len(fixtures) == 0 {
			return ErrMsg{Err: err, Context: "loading fixtures"}
		}
		standings, err := svc.Standings(ctx, tournamentID, force)
		if err != nil && len(standings) == 0 {
			standings = nil
		}
		return TournamentDetailLoadedMsg{
			TournamentID: tournamentID,
			Fixtures:     fixtures,
			Standings:    standings,
		}
	}
}

// LoadGroundsCmd loads the venue listing
func LoadGroundsCmd(svc *club.GroundsService, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		grounds, err := svc.Grounds(ctx, force)
		if err != nil {
			if len(grounds) > 0 {
				return GroundsLoadedMsg{Grounds: grounds, Stale: true}
			}
			return ErrMsg{Err: err, Context: "loading grounds"}
		}
		return GroundsLoadedMsg{Grounds: grounds}
	}
}

// LoadSlotsCmd loads live availability for a ground on a date
func LoadSlotsCmd(svc *club.GroundsService, groundID, date string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		slots, err := svc.Slots(ctx, groundID, date)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading slots"}
		}
		return SlotsLoadedMsg{GroundID: groundID, Date: date, Slots: slots}
	}
}

// BookSlotCmd books a slot for a team
func BookSlotCmd(svc *club.GroundsService, slotID, teamID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		booking, err := svc.Book(ctx, slotID, teamID)
		if err != nil {
			return ErrMsg{Err: err, Context: "booking slot"}
		}
		return SlotBookedMsg{Booking: *booking}
	}
}

// LoadAnalyticsCmd loads a team's performance aggregate
func LoadAnalyticsCmd(svc *club.AnalyticsService, teamID string, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		analytics, err := svc.ForTeam(ctx, teamID, force)
		if err != nil {
			if analytics != nil {
				return AnalyticsLoadedMsg{Analytics: *analytics}
			}
			return ErrMsg{Err: err, Context: "loading analytics"}
		}
		return AnalyticsLoadedMsg{Analytics: *analytics}
	}
}

// LoadGuestHighlightsCmd loads the pre-login aggregate
func LoadGuestHighlightsCmd(svc *club.GuestService, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		highlights, err := svc.Highlights(ctx, force)
		if err != nil {
			if highlights != nil {
				return GuestHighlightsLoadedMsg{Highlights: *highlights, Stale: true}
			}
			return ErrMsg{Err: err, Context: "loading highlights"}
		}
		return GuestHighlightsLoadedMsg{Highlights: *highlights}
	}
}

// LoginCmd authenticates and persists the session
func LoginCmd(svc *session.Service, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sess, err := svc.Login(ctx, email, password)
		if err != nil {
			return ErrMsg{Err: err, Context: "logging in"}
		}
		return LoggedInMsg{Session: *sess}
	}
}

// LogoutCmd clears the session and all cached data
func LogoutCmd(svc *session.Service) tea.Cmd {
	return func() tea.Msg {
		svc.Logout()
		return LoggedOutMsg{}
	}
}
