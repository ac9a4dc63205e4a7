package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/misanthropic-codes/sports360/internal/adapter"
	"github.com/misanthropic-codes/sports360/internal/domain"
	"github.com/misanthropic-codes/sports360/internal/signal"
)

// eventRecorder captures broadcast events for assertions
type eventRecorder struct {
	mu     sync.Mutex
	events []signal.Event
}

func (r *eventRecorder) record(e signal.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) all() []signal.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]signal.Event(nil), r.events...)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *eventRecorder, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	rec := &eventRecorder{}
	errs := signal.NewBroadcaster(adapter.NullLogger())
	errs.Subscribe(rec.record)

	client := NewClient(server.URL, func() string { return token }, errs, adapter.NullLogger())
	return client, rec, server
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "tok-123")

	if _, err := client.MyTeams(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}, "")

	if _, err := client.GuestHighlights(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hasAuth {
		t.Errorf("expected no Authorization header when logged out, got %q", gotAuth)
	}
}

func TestNoResponseBroadcastsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // Connection refused from here on

	rec := &eventRecorder{}
	errs := signal.NewBroadcaster(adapter.NullLogger())
	errs.Subscribe(rec.record)
	client := NewClient(url, nil, errs, adapter.NullLogger())

	_, err := client.MyTeams(context.Background())
	if err == nil {
		t.Fatal("expected error from dead server")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNetwork {
		t.Fatalf("expected KindNetwork, got %v", err)
	}
	if !errors.Is(err, domain.ErrServerUnreachable) {
		t.Error("expected error to match domain.ErrServerUnreachable")
	}

	events := rec.all()
	if len(events) != 1 || events[0].Kind != signal.NetworkError {
		t.Errorf("expected one NetworkError broadcast, got %v", events)
	}
}

func TestUnauthorizedBroadcastsSessionExpired(t *testing.T) {
	client, rec, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "expired")

	_, err := client.MyTeams(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("expected session-expired sentinel, got %v", err)
	}

	events := rec.all()
	if len(events) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(events))
	}
	if events[0].Kind != signal.SessionExpired {
		t.Errorf("expected SessionExpired, got %v", events[0].Kind)
	}
	if events[0].Message != "Your session has expired. Please log in again." {
		t.Errorf("unexpected message: %q", events[0].Message)
	}
	if events[0].StatusCode != 401 {
		t.Errorf("expected status 401, got %d", events[0].StatusCode)
	}
}

func TestServerErrorBroadcastsWithServerMessage(t *testing.T) {
	client, rec, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"db down"}`))
	}, "tok")

	_, err := client.Tournaments(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindServer {
		t.Fatalf("expected KindServer, got %v", err)
	}
	if apiErr.StatusCode != 503 || apiErr.Message != "db down" {
		t.Errorf("expected 503 'db down', got %d %q", apiErr.StatusCode, apiErr.Message)
	}

	events := rec.all()
	if len(events) != 1 || events[0].Kind != signal.ServerError {
		t.Fatalf("expected one ServerError broadcast, got %v", events)
	}
	if events[0].StatusCode != 503 || events[0].Message != "db down" {
		t.Errorf("broadcast carried %d %q", events[0].StatusCode, events[0].Message)
	}
}

func TestServerErrorFallsBackToStatusText(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "tok")

	_, err := client.Tournaments(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("expected status-text fallback, got %q", apiErr.Message)
	}
}

func TestNotFoundStaysLocal(t *testing.T) {
	client, rec, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such team"}`))
	}, "tok")

	_, _, err := client.Team(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("expected IsNotFound, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Error("expected error to match domain.ErrNotFound")
	}

	if events := rec.all(); len(events) != 0 {
		t.Errorf("4xx errors must not broadcast, got %v", events)
	}
}

func TestSuccessDecodesPayload(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/mine" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"t1","name":"Northside United","sport":"football","city":"Pune"}]`))
	}, "tok")

	teams, err := client.MyTeams(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(teams) != 1 || teams[0].Name != "Northside United" {
		t.Errorf("unexpected decode: %+v", teams)
	}
}

func TestNullBodyYieldsEmptyValue(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}, "")

	highlights, err := client.GuestHighlights(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if highlights == nil {
		t.Fatal("expected empty highlights, got nil")
	}
	if len(highlights.FeaturedTournaments) != 0 {
		t.Errorf("expected zero value, got %+v", highlights)
	}

	analytics, err := client.TeamAnalytics(context.Background(), "t1")
	if err != nil {
		t.Fatal(err)
	}
	if analytics == nil {
		t.Fatal("expected empty analytics, got nil")
	}
}

func TestBookSlotPostsJSON(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		w.Write([]byte(`{"id":"b1","slotId":"s1","groundId":"g1"}`))
	}, "tok")

	booking, err := client.BookSlot(context.Background(), "s1", "team1")
	if err != nil {
		t.Fatal(err)
	}
	if booking.ID != "b1" {
		t.Errorf("unexpected booking: %+v", booking)
	}
}
