package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/misanthropic-codes/sports360/internal/club"
	"github.com/misanthropic-codes/sports360/internal/domain"
	"github.com/misanthropic-codes/sports360/internal/session"
	"github.com/misanthropic-codes/sports360/internal/signal"
	"github.com/misanthropic-codes/sports360/internal/tui/components"
)

// ApplicationState represents the current screen
type ApplicationState int

const (
	StateGuest ApplicationState = iota
	StateLogin
	StateTeams
	StateTeamDetail
	StateTournaments
	StateTournamentDetail
	StateGrounds
	StateSlots
	StateAnalytics
	StateJoinTeam
	StateConfirmLogout
)

// Services bundles everything the TUI calls into
type Services struct {
	Teams       *club.TeamsService
	Tournaments *club.TournamentsService
	Grounds     *club.GroundsService
	Analytics   *club.AnalyticsService
	Guest       *club.GuestService
	Session     *session.Service
}

// Model is the root Bubble Tea model
type Model struct {
	svcs   Services
	keys   KeyMap
	logger *slog.Logger

	state     ApplicationState
	prevState ApplicationState

	width  int
	height int

	// Global error modal, fed by the signal broadcaster
	errModal *components.ErrorModal
	errCh    *errorChannel

	// Lists per view
	teamsList       *components.List
	tournamentsList *components.List
	groundsList     *components.List
	slotsList       *components.List

	// Detail state
	currentTeam       domain.Team
	teamMembers       []domain.TeamMember
	teamRequests      []domain.JoinRequest
	currentTournament domain.Tournament
	fixtures          []domain.Fixture
	standings         []domain.Standing
	currentGround     domain.Ground
	slotDate          string
	analytics         domain.TeamAnalytics
	highlights        domain.GuestHighlights

	// Login inputs
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocused  int // 0 = email, 1 = password
	joinCodeInput textinput.Model

	spinner    spinner.Model
	loading    bool
	statusLine string
	loggedIn   bool
}

// NewModel creates the root model
func NewModel(svcs Services, errs *signal.Broadcaster, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	joinCode := textinput.New()
	joinCode.Placeholder = "invite code"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		svcs:            svcs,
		keys:            DefaultKeyMap(),
		logger:          logger,
		errModal:        components.NewErrorModal(),
		errCh:           newErrorChannel(errs),
		teamsList:       components.NewList("My Teams"),
		tournamentsList: components.NewList("Tournaments"),
		groundsList:     components.NewList("Grounds"),
		slotsList:       components.NewList("Slots"),
		emailInput:      email,
		passwordInput:   password,
		joinCodeInput:   joinCode,
		spinner:         sp,
		slotDate:        time.Now().Format("2006-01-02"),
	}

	if _, ok := svcs.Session.Current(); ok {
		m.loggedIn = true
		m.state = StateTeams
	} else {
		m.state = StateGuest
	}
	return m
}

// Init starts the error channel pump and the first load
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.errCh.wait(), m.spinner.Tick}
	if m.loggedIn {
		m.loading = true
		cmds = append(cmds, LoadTeamsCmd(m.svcs.Teams, false))
	} else {
		cmds = append(cmds, LoadGuestHighlightsCmd(m.svcs.Guest, false))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.errModal.SetSize(msg.Width, msg.Height)
		listHeight := msg.Height - 4
		m.teamsList.SetSize(msg.Width, listHeight)
		m.tournamentsList.SetSize(msg.Width, listHeight)
		m.groundsList.SetSize(msg.Width, listHeight)
		m.slotsList.SetSize(msg.Width, listHeight)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case APIErrorMsg:
		m.errModal.Show(msg.Event)
		// Keep pumping: further broadcasts replace the modal content
		return m, m.errCh.wait()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.handleData(msg)
}

// handleData routes loaded-data messages into view state
func (m *Model) handleData(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoggedInMsg:
		m.loggedIn = true
		m.state = StateTeams
		m.loading = true
		m.statusLine = "Welcome back, " + msg.Session.Name
		return m, LoadTeamsCmd(m.svcs.Teams, false)

	case LoggedOutMsg:
		m.loggedIn = false
		m.state = StateGuest
		m.statusLine = "Logged out"
		return m, LoadGuestHighlightsCmd(m.svcs.Guest, false)

	case TeamsLoadedMsg:
		m.loading = false
		m.teamsList.SetLoading(false)
		m.teamsList.SetStale(msg.Stale)
		m.teamsList.SetRows(teamRows(msg.Teams))
		return m, nil

	case TeamDetailLoadedMsg:
		m.loading = false
		m.currentTeam = msg.Team
		m.teamMembers = msg.Members
		m.teamRequests = msg.Requests
		m.state = StateTeamDetail
		return m, nil

	case TeamJoinedMsg:
		m.statusLine = "Joined " + msg.Team.Name
		m.state = StateTeams
		// The listing was optimistically updated and invalidated; refetch
		m.teamsList.SetLoading(true)
		return m, LoadTeamsCmd(m.svcs.Teams, false)

	case RequestApprovedMsg:
		m.statusLine = "Request approved"
		return m, LoadTeamDetailCmd(m.svcs.Teams, msg.TeamID)

	case TournamentsLoadedMsg:
		m.loading = false
		m.tournamentsList.SetLoading(false)
		m.tournamentsList.SetStale(msg.Stale)
		m.tournamentsList.SetRows(tournamentRows(msg.Tournaments))
		return m, nil

	case TournamentDetailLoadedMsg:
		m.loading = false
		m.fixtures = msg.Fixtures
		m.standings = msg.Standings
		m.state = StateTournamentDetail
		return m, nil

	case GroundsLoadedMsg:
		m.loading = false
		m.groundsList.SetLoading(false)
		m.groundsList.SetStale(msg.Stale)
		m.groundsList.SetRows(groundRows(msg.Grounds))
		return m, nil

	case SlotsLoadedMsg:
		m.loading = false
		m.slotsList.SetLoading(false)
		m.slotsList.SetRows(slotRows(msg.Slots))
		m.state = StateSlots
		return m, nil

	case SlotBookedMsg:
		m.statusLine = fmt.Sprintf("Booked %s %s-%s at %s",
			msg.Booking.Date, msg.Booking.StartTime, msg.Booking.EndTime, msg.Booking.GroundName)
		m.state = StateGrounds
		return m, LoadGroundsCmd(m.svcs.Grounds, false)

	case AnalyticsLoadedMsg:
		m.loading = false
		m.analytics = msg.Analytics
		m.state = StateAnalytics
		return m, nil

	case GuestHighlightsLoadedMsg:
		m.loading = false
		m.highlights = msg.Highlights
		return m, nil

	case ErrMsg:
		// Request-local error: render inline, never as the global modal
		m.loading = false
		m.teamsList.SetLoading(false)
		m.tournamentsList.SetLoading(false)
		m.groundsList.SetLoading(false)
		m.statusLine = msg.Error()
		m.logger.Warn("screen error", "context", msg.Context, "error", msg.Err)
		return m, nil
	}

	return m, nil
}

// handleKey routes key presses by state
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The error modal is blocking while visible
	if m.errModal.Visible() {
		switch {
		case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Confirm):
			if m.errModal.RequiresLogout() {
				m.errModal.Hide()
				return m, LogoutCmd(m.svcs.Session)
			}
			m.errModal.Hide()
			return m, nil
		case key.Matches(msg, m.keys.Escape):
			if !m.errModal.RequiresLogout() {
				m.errModal.Hide()
			}
			return m, nil
		}
		return m, nil
	}

	switch m.state {
	case StateLogin:
		return m.handleLoginKey(msg)
	case StateJoinTeam:
		return m.handleJoinKey(msg)
	case StateConfirmLogout:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.state = StateTeams
			return m, LogoutCmd(m.svcs.Session)
		case key.Matches(msg, m.keys.Deny):
			m.state = m.prevState
			return m, nil
		}
		return m, nil
	}

	// Filter mode captures most keys
	if list := m.activeList(); list != nil && list.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Escape):
			list.StopFilter()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			list.StopFilter()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			list.MoveUp()
			return m, nil
		case key.Matches(msg, m.keys.Down):
			list.MoveDown()
			return m, nil
		}
		var cmd tea.Cmd
		*list.FilterInput(), cmd = list.FilterInput().Update(msg)
		list.ApplyFilter()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Teams):
		if !m.loggedIn {
			m.state = StateLogin
			return m, nil
		}
		m.state = StateTeams
		m.teamsList.SetLoading(true)
		return m, LoadTeamsCmd(m.svcs.Teams, false)

	case key.Matches(msg, m.keys.Tournaments):
		m.state = StateTournaments
		m.tournamentsList.SetLoading(true)
		return m, LoadTournamentsCmd(m.svcs.Tournaments, false)

	case key.Matches(msg, m.keys.Grounds):
		m.state = StateGrounds
		m.groundsList.SetLoading(true)
		return m, LoadGroundsCmd(m.svcs.Grounds, false)

	case key.Matches(msg, m.keys.Analytics):
		if row, ok := m.teamsList.Selected(); ok {
			m.loading = true
			return m, LoadAnalyticsCmd(m.svcs.Analytics, row.ID, false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.refreshCurrent()

	case key.Matches(msg, m.keys.Filter):
		if list := m.activeList(); list != nil {
			list.StartFilter()
		}
		return m, nil

	case key.Matches(msg, m.keys.Join):
		if m.loggedIn && m.state == StateTeams {
			m.state = StateJoinTeam
			m.joinCodeInput.SetValue("")
			m.joinCodeInput.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Book):
		if m.state == StateSlots {
			return m.bookSelectedSlot()
		}
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		if m.loggedIn {
			m.prevState = m.state
			m.state = StateConfirmLogout
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if list := m.activeList(); list != nil {
			list.MoveUp()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if list := m.activeList(); list != nil {
			list.MoveDown()
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.drillDown()

	case key.Matches(msg, m.keys.Back):
		return m.navigateBack()
	}

	return m, nil
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.state = StateGuest
		return m, nil
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab:
		if m.loginFocused == 0 {
			m.loginFocused = 1
			m.emailInput.Blur()
			m.passwordInput.Focus()
		} else {
			m.loginFocused = 0
			m.passwordInput.Blur()
			m.emailInput.Focus()
		}
		return m, nil
	case msg.Type == tea.KeyEnter:
		if m.loginFocused == 0 {
			m.loginFocused = 1
			m.emailInput.Blur()
			m.passwordInput.Focus()
			return m, nil
		}
		m.loading = true
		return m, LoginCmd(m.svcs.Session, m.emailInput.Value(), m.passwordInput.Value())
	}

	var cmd tea.Cmd
	if m.loginFocused == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleJoinKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.state = StateTeams
		return m, nil
	case msg.Type == tea.KeyEnter:
		code := m.joinCodeInput.Value()
		if code == "" {
			return m, nil
		}
		m.loading = true
		return m, JoinTeamCmd(m.svcs.Teams, code)
	}

	var cmd tea.Cmd
	m.joinCodeInput, cmd = m.joinCodeInput.Update(msg)
	return m, cmd
}

// drillDown opens the selected item's detail view
func (m *Model) drillDown() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateGuest:
		m.state = StateLogin
		return m, nil
	case StateTeams:
		if row, ok := m.teamsList.Selected(); ok {
			m.loading = true
			return m, LoadTeamDetailCmd(m.svcs.Teams, row.ID)
		}
	case StateTournaments:
		if row, ok := m.tournamentsList.Selected(); ok {
			m.loading = true
			m.currentTournament = domain.Tournament{ID: row.ID, Name: row.Title}
			return m, LoadTournamentDetailCmd(m.svcs.Tournaments, row.ID, false)
		}
	case StateGrounds:
		if row, ok := m.groundsList.Selected(); ok {
			m.loading = true
			m.currentGround = domain.Ground{ID: row.ID, Name: row.Title}
			m.slotsList.SetLoading(true)
			return m, LoadSlotsCmd(m.svcs.Grounds, row.ID, m.slotDate)
		}
	case StateSlots:
		return m.bookSelectedSlot()
	}
	return m, nil
}

// bookSelectedSlot books the highlighted slot for the highlighted team.
// Reached by enter or the b shortcut on the slots view.
func (m *Model) bookSelectedSlot() (tea.Model, tea.Cmd) {
	if row, ok := m.slotsList.Selected(); ok {
		if teamRow, okTeam := m.teamsList.Selected(); okTeam {
			m.loading = true
			return m, BookSlotCmd(m.svcs.Grounds, row.ID, teamRow.ID)
		}
		m.statusLine = "Load your teams first (press 1)"
	}
	return m, nil
}

// navigateBack pops one level
func (m *Model) navigateBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateTeamDetail, StateAnalytics, StateJoinTeam:
		m.state = StateTeams
	case StateTournamentDetail:
		m.state = StateTournaments
	case StateSlots:
		m.state = StateGrounds
	case StateLogin:
		m.state = StateGuest
	}
	return m, nil
}

// refreshCurrent force-refreshes the active view, bypassing the cache
func (m *Model) refreshCurrent() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateTeams:
		m.teamsList.SetLoading(true)
		return m, LoadTeamsCmd(m.svcs.Teams, true)
	case StateTournaments:
		m.tournamentsList.SetLoading(true)
		return m, LoadTournamentsCmd(m.svcs.Tournaments, true)
	case StateTournamentDetail:
		m.loading = true
		return m, LoadTournamentDetailCmd(m.svcs.Tournaments, m.currentTournament.ID, true)
	case StateGrounds:
		m.groundsList.SetLoading(true)
		return m, LoadGroundsCmd(m.svcs.Grounds, true)
	case StateSlots:
		m.slotsList.SetLoading(true)
		return m, LoadSlotsCmd(m.svcs.Grounds, m.currentGround.ID, m.slotDate)
	case StateAnalytics:
		m.loading = true
		return m, LoadAnalyticsCmd(m.svcs.Analytics, m.analytics.TeamID, true)
	case StateGuest:
		return m, LoadGuestHighlightsCmd(m.svcs.Guest, true)
	}
	return m, nil
}

// activeList returns the list for the current state, if any
func (m *Model) activeList() *components.List {
	switch m.state {
	case StateTeams:
		return m.teamsList
	case StateTournaments:
		return m.tournamentsList
	case StateGrounds:
		return m.groundsList
	case StateSlots:
		return m.slotsList
	}
	return nil
}

// === Row mapping ===

func teamRows(teams []domain.Team) []components.Row {
	rows := make([]components.Row, len(teams))
	for i, t := range teams {
		desc := fmt.Sprintf("%s · %s · %d members", t.Sport, t.City, t.MemberCount)
		rows[i] = components.Row{ID: t.ID, Title: t.Name, Description: desc}
	}
	return rows
}

func tournamentRows(ts []domain.Tournament) []components.Row {
	rows := make([]components.Row, len(ts))
	for i, t := range ts {
		glyph := glyphForStatus(t.Status)
		desc := fmt.Sprintf("%s · %s · %d teams", t.Sport, t.Format, t.TeamCount)
		rows[i] = components.Row{ID: t.ID, Title: t.Name, Description: desc, Glyph: glyph}
	}
	return rows
}

func groundRows(gs []domain.Ground) []components.Row {
	rows := make([]components.Row, len(gs))
	for i, g := range gs {
		desc := fmt.Sprintf("%s · %d/hr · %.1f★", g.City, g.PricePerHour, g.Rating)
		rows[i] = components.Row{ID: g.ID, Title: g.Name, Description: desc}
	}
	return rows
}

func slotRows(slots []domain.Slot) []components.Row {
	rows := make([]components.Row, 0, len(slots))
	for _, s := range slots {
		title := fmt.Sprintf("%s - %s", s.StartTime, s.EndTime)
		desc := fmt.Sprintf("%d", s.Price)
		if !s.Available {
			desc = "taken"
		}
		rows = append(rows, components.Row{ID: s.ID, Title: title, Description: desc})
	}
	return rows
}

func glyphForStatus(status domain.TournamentStatus) string {
	switch status {
	case domain.TournamentLive:
		return "●"
	case domain.TournamentCompleted:
		return "✓"
	default:
		return "○"
	}
}
