package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/misanthropic-codes/sports360/internal/signal"
)

// errorChannel bridges the synchronous error broadcaster into the tea
// loop: the transport emits on its goroutine, the program reads messages.
type errorChannel struct {
	ch chan signal.Event
}

func newErrorChannel(errs *signal.Broadcaster) *errorChannel {
	ec := &errorChannel{ch: make(chan signal.Event, 8)}
	errs.Subscribe(func(event signal.Event) {
		select {
		case ec.ch <- event:
		default: // Non-blocking if channel full
		}
	})
	return ec
}

// wait returns a command that delivers the next broadcast event
func (ec *errorChannel) wait() tea.Cmd {
	return func() tea.Msg {
		return APIErrorMsg{Event: <-ec.ch}
	}
}
