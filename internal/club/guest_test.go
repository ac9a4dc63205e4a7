package club

import (
	"context"
	"testing"

	"github.com/misanthropic-codes/sports360/internal/adapter"
	"github.com/misanthropic-codes/sports360/internal/domain"
)

func TestHighlightsNeverNilOnSuccess(t *testing.T) {
	// Some backends encode "nothing to show" as a null body
	api := &fakeAPI{
		highlightsFn: func(context.Context) (*domain.GuestHighlights, error) {
			return nil, nil
		},
	}
	svc := NewGuestService(api, nil, adapter.NullLogger())

	hl, err := svc.Highlights(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if hl == nil {
		t.Fatal("expected empty highlights, got nil")
	}
	if len(hl.FeaturedTournaments) != 0 {
		t.Errorf("expected zero value, got %+v", hl)
	}
}

func TestHighlightsCached(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		highlightsFn: func(context.Context) (*domain.GuestHighlights, error) {
			calls++
			return &domain.GuestHighlights{}, nil
		},
	}
	svc := NewGuestService(api, nil, adapter.NullLogger())

	for i := 0; i < 3; i++ {
		if _, err := svc.Highlights(context.Background(), false); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 fetch, got %d", calls)
	}
}
