package club

import (
	"context"
	"log/slog"
	"time"

	"github.com/misanthropic-codes/sports360/internal/cache"
	"github.com/misanthropic-codes/sports360/internal/domain"
)

// Guest highlights are editorial content; fifteen minutes is plenty.
const guestTTL = 15 * time.Minute

// GuestService serves the pre-login highlights aggregate. The endpoint is
// unauthenticated, so this works with no session at all.
type GuestService struct {
	logger     *slog.Logger
	highlights *cache.Resource[*domain.GuestHighlights]
}

// NewGuestService creates a guest-mode service
func NewGuestService(api domain.API, snapshots domain.Snapshots, logger *slog.Logger) *GuestService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &GuestService{logger: logger}
	s.highlights = cache.New(KeyGuestHighlights, guestTTL, func(ctx context.Context) (*domain.GuestHighlights, error) {
		hl, err := api.GuestHighlights(ctx)
		if err != nil {
			return nil, err
		}
		if hl == nil {
			hl = &domain.GuestHighlights{}
		}
		return hl, nil
	}, snapshots, logger)
	return s
}

// Highlights returns the guest aggregate, served from cache while fresh
func (s *GuestService) Highlights(ctx context.Context, force bool) (*domain.GuestHighlights, error) {
	return s.highlights.Get(ctx, force)
}

// Invalidate forces the next Highlights call to hit the network
func (s *GuestService) Invalidate() {
	s.highlights.Invalidate()
}
