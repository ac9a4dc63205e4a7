package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/misanthropic-codes/sports360/internal/signal"
	"github.com/misanthropic-codes/sports360/internal/tui/styles"
)

// ErrorModal is the root-level blocking modal for globally broadcast API
// errors. Session expiry prompts a logout; server and network errors are
// dismissable.
type ErrorModal struct {
	event   signal.Event
	visible bool
	width   int
	height  int
}

// NewErrorModal creates a hidden modal
func NewErrorModal() *ErrorModal {
	return &ErrorModal{}
}

// Show displays the modal for an event
func (m *ErrorModal) Show(event signal.Event) {
	m.event = event
	m.visible = true
}

// Hide dismisses the modal
func (m *ErrorModal) Hide() { m.visible = false }

// Visible reports whether the modal is on screen
func (m *ErrorModal) Visible() bool { return m.visible }

// Event returns the event currently shown
func (m *ErrorModal) Event() signal.Event { return m.event }

// RequiresLogout reports whether dismissing the modal must also log out
func (m *ErrorModal) RequiresLogout() bool {
	return m.visible && m.event.Kind == signal.SessionExpired
}

// SetSize updates the render dimensions
func (m *ErrorModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the modal centered in the available space
func (m *ErrorModal) View() string {
	if !m.visible {
		return ""
	}

	var title, hint string
	switch m.event.Kind {
	case signal.SessionExpired:
		title = "Session expired"
		hint = "press enter to log out"
	case signal.ServerError:
		title = fmt.Sprintf("Server error (%d)", m.event.StatusCode)
		hint = "press esc to dismiss"
	case signal.NetworkError:
		title = "Connection problem"
		hint = "press esc to dismiss"
	}

	var b strings.Builder
	b.WriteString(styles.ErrorStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.event.Message)
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render(hint))

	box := styles.ModalBorder.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
