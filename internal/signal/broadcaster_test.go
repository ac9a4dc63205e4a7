package signal

import (
	"io"
	"log/slog"
	"testing"
)

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmitDeliversInRegistrationOrder(t *testing.T) {
	b := NewBroadcaster(nullLogger())

	var order []int
	b.Subscribe(func(Event) { order = append(order, 1) })
	b.Subscribe(func(Event) { order = append(order, 2) })
	b.Subscribe(func(Event) { order = append(order, 3) })

	b.Emit(Event{Kind: ServerError})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected delivery in registration order, got %v", order)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroadcaster(nullLogger())

	var got int
	unsub := b.Subscribe(func(Event) { got++ })

	b.Emit(Event{Kind: NetworkError})
	unsub()
	b.Emit(Event{Kind: NetworkError})

	if got != 1 {
		t.Errorf("expected exactly one delivery, got %d", got)
	}
}

func TestPanickingListenerDoesNotStarveOthers(t *testing.T) {
	b := NewBroadcaster(nullLogger())

	b.Subscribe(func(Event) { panic("bad listener") })

	var received bool
	b.Subscribe(func(Event) { received = true })

	b.Emit(Event{Kind: ServerError, Message: "oops"})

	if !received {
		t.Error("second listener must still receive the event")
	}
}

func TestNotifySessionExpired(t *testing.T) {
	b := NewBroadcaster(nullLogger())

	var got Event
	b.Subscribe(func(e Event) { got = e })

	b.NotifySessionExpired()

	if got.Kind != SessionExpired {
		t.Errorf("expected SessionExpired, got %v", got.Kind)
	}
	if got.StatusCode != 401 {
		t.Errorf("expected 401, got %d", got.StatusCode)
	}
	if got.Message != "Your session has expired. Please log in again." {
		t.Errorf("unexpected message %q", got.Message)
	}
}

func TestNotifyServerError(t *testing.T) {
	b := NewBroadcaster(nullLogger())

	var got Event
	b.Subscribe(func(e Event) { got = e })

	b.NotifyServerError(503, "db down")

	if got.Kind != ServerError || got.StatusCode != 503 || got.Message != "db down" {
		t.Errorf("unexpected event %+v", got)
	}
}

func TestNotifyNetworkError(t *testing.T) {
	b := NewBroadcaster(nullLogger())

	var got Event
	b.Subscribe(func(e Event) { got = e })

	b.NotifyNetworkError("connection refused")

	if got.Kind != NetworkError || got.Message != "connection refused" {
		t.Errorf("unexpected event %+v", got)
	}
	if got.StatusCode != 0 {
		t.Errorf("network errors carry no status, got %d", got.StatusCode)
	}
}

func TestEmitWithNoListeners(t *testing.T) {
	b := NewBroadcaster(nullLogger())
	// Must not panic
	b.Emit(Event{Kind: NetworkError})
}
