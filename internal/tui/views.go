package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/misanthropic-codes/sports360/internal/domain"
	"github.com/misanthropic-codes/sports360/internal/tui/styles"
)

// View renders the current screen
func (m *Model) View() string {
	if m.errModal.Visible() {
		return m.errModal.View()
	}

	var body string
	switch m.state {
	case StateGuest:
		body = m.viewGuest()
	case StateLogin:
		body = m.viewLogin()
	case StateTeams:
		body = m.teamsList.View()
	case StateTeamDetail:
		body = m.viewTeamDetail()
	case StateTournaments:
		body = m.tournamentsList.View()
	case StateTournamentDetail:
		body = m.viewTournamentDetail()
	case StateGrounds:
		body = m.groundsList.View()
	case StateSlots:
		body = m.viewSlots()
	case StateAnalytics:
		body = m.viewAnalytics()
	case StateJoinTeam:
		body = m.viewJoinTeam()
	case StateConfirmLogout:
		body = m.viewConfirmLogout()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewStatusBar())
}

func (m *Model) viewStatusBar() string {
	left := "1 teams · 2 tournaments · 3 grounds · 4 analytics · / filter · r refresh · q quit"
	if m.statusLine != "" {
		left = m.statusLine
	}
	if m.loading {
		left = m.spinner.View() + " " + left
	}
	return styles.StatusBarStyle.Width(max(0, m.width)).Render(left)
}

func (m *Model) viewGuest() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Sports360"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("press enter to log in, 2/3 to browse as guest"))
	b.WriteString("\n\n")

	if len(m.highlights.FeaturedTournaments) > 0 {
		b.WriteString(styles.AccentStyle.Render("Featured tournaments"))
		b.WriteString("\n")
		for _, t := range m.highlights.FeaturedTournaments {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", glyphForStatus(t.Status), t.Name,
				styles.SubtitleStyle.Render(string(t.Sport))))
		}
		b.WriteString("\n")
	}
	if len(m.highlights.PopularGrounds) > 0 {
		b.WriteString(styles.AccentStyle.Render("Popular grounds"))
		b.WriteString("\n")
		for _, g := range m.highlights.PopularGrounds {
			b.WriteString(fmt.Sprintf("  %s  %s\n", g.Name, styles.SubtitleStyle.Render(g.City)))
		}
		b.WriteString("\n")
	}
	if len(m.highlights.TrendingTeams) > 0 {
		b.WriteString(styles.AccentStyle.Render("Trending teams"))
		b.WriteString("\n")
		for _, t := range m.highlights.TrendingTeams {
			b.WriteString(fmt.Sprintf("  %s  %s\n", t.Name, styles.SubtitleStyle.Render(t.City)))
		}
	}
	return b.String()
}

func (m *Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Log in"))
	b.WriteString("\n\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("tab to switch · enter to submit · esc to cancel"))
	return b.String()
}

func (m *Model) viewJoinTeam() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Join a team"))
	b.WriteString("\n\n")
	b.WriteString(m.joinCodeInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("enter to join · esc to cancel"))
	return b.String()
}

func (m *Model) viewConfirmLogout() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Log out?"))
	b.WriteString("\n\n")
	b.WriteString("This clears the session and all cached data on this device.")
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("y to confirm · n to cancel"))
	return b.String()
}

func (m *Model) viewTeamDetail() string {
	var b strings.Builder
	t := m.currentTeam
	b.WriteString(styles.TitleStyle.Render(t.Name))
	b.WriteString("  ")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%s · %s", t.Sport, t.City)))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentStyle.Render("Roster"))
	b.WriteString("\n")
	for _, mem := range m.teamMembers {
		line := fmt.Sprintf("  #%-2d %s", mem.Jersey, mem.Name)
		if mem.Role != domain.RolePlayer {
			line += "  " + styles.WarnStyle.Render(string(mem.Role))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.teamRequests) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.AccentStyle.Render("Pending requests"))
		b.WriteString("\n")
		for _, r := range m.teamRequests {
			b.WriteString(fmt.Sprintf("  %s  %s\n", r.UserName, styles.SubtitleStyle.Render(r.Message)))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("h back"))
	return b.String()
}

func (m *Model) viewTournamentDetail() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.currentTournament.Name))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentStyle.Render("Fixtures"))
	b.WriteString("\n")
	for _, f := range m.fixtures {
		when := f.KickoffTime().Format("Jan 2 15:04")
		b.WriteString(fmt.Sprintf("  %-14s %s %s %s  %s\n",
			f.Round, f.HomeTeam, f.Score(), f.AwayTeam, styles.SubtitleStyle.Render(when)))
	}

	if len(m.standings) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.AccentStyle.Render("Standings"))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("   #  Team                 P   W   D   L  Pts"))
		b.WriteString("\n")
		for _, s := range m.standings {
			b.WriteString(fmt.Sprintf("  %2d  %-20s %2d  %2d  %2d  %2d  %3d\n",
				s.Position, s.TeamName, s.Played, s.Won, s.Drawn, s.Lost, s.Points))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("h back · r refresh"))
	return b.String()
}

func (m *Model) viewSlots() string {
	header := styles.TitleStyle.Render(m.currentGround.Name) + "  " +
		styles.SubtitleStyle.Render(m.slotDate)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.slotsList.View(),
		styles.DimStyle.Render("enter books the selected slot for your selected team"))
}

func (m *Model) viewAnalytics() string {
	a := m.analytics
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Team analytics"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Played   %d\n", a.Played))
	b.WriteString(fmt.Sprintf("  Record   %s\n", a.Record()))
	b.WriteString(fmt.Sprintf("  Goals    %d for / %d against\n", a.GoalsFor, a.GoalsAgainst))
	b.WriteString(fmt.Sprintf("  Win rate %.0f%%\n", a.WinRate*100))
	b.WriteString(fmt.Sprintf("  Streak   %s\n", a.CurrentStreak))
	if len(a.RecentForm) > 0 {
		b.WriteString(fmt.Sprintf("  Form     %s\n", strings.Join(a.RecentForm, " ")))
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("h back · r refresh"))
	return b.String()
}
