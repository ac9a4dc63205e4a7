// Package signal carries API failures that need a global UI reaction
// (forced logout, blocking modal) from the transport layer to whoever
// renders them, without either side knowing about the other.
package signal

import (
	"log/slog"
	"sync"
)

// Kind classifies a broadcast API error
type Kind int

const (
	SessionExpired Kind = iota
	ServerError
	NetworkError
)

// String returns the kind name for logging
func (k Kind) String() string {
	switch k {
	case SessionExpired:
		return "session_expired"
	case ServerError:
		return "server_error"
	case NetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Event is a single broadcast API error. It has no identity beyond the
// broadcast; it is never persisted.
type Event struct {
	Kind       Kind
	Message    string
	StatusCode int // 0 for NetworkError
}

// Listener receives broadcast events
type Listener func(Event)

type subscriber struct {
	id int
	fn Listener
}

// Broadcaster fans events out to the current listener set. It is an
// explicit object rather than package-level state so tests and the TUI
// construct isolated instances.
type Broadcaster struct {
	mu     sync.Mutex
	subs   []subscriber
	nextID int
	logger *slog.Logger
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{logger: logger}
}

// Subscribe registers a listener and returns its unsubscribe func.
// Listeners are invoked in registration order.
func (b *Broadcaster) Subscribe(fn Listener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit synchronously delivers the event to every registered listener.
// A panicking listener is logged and skipped; the rest still run.
func (b *Broadcaster) Emit(event Event) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		b.deliver(s.fn, event)
	}
}

func (b *Broadcaster) deliver(fn Listener, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("api error listener panicked", "kind", event.Kind.String(), "panic", r)
		}
	}()
	fn(event)
}

// NotifySessionExpired broadcasts a 401 session expiry
func (b *Broadcaster) NotifySessionExpired() {
	b.Emit(Event{
		Kind:       SessionExpired,
		Message:    "Your session has expired. Please log in again.",
		StatusCode: 401,
	})
}

// NotifyServerError broadcasts a 5xx failure
func (b *Broadcaster) NotifyServerError(statusCode int, message string) {
	b.Emit(Event{Kind: ServerError, Message: message, StatusCode: statusCode})
}

// NotifyNetworkError broadcasts a no-response transport failure
func (b *Broadcaster) NotifyNetworkError(message string) {
	b.Emit(Event{Kind: NetworkError, Message: message})
}
