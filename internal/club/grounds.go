package club

import (
	"context"
	"log/slog"
	"time"

	"github.com/misanthropic-codes/sports360/internal/cache"
	"github.com/misanthropic-codes/sports360/internal/domain"
)

// Ground listings are near-static (names, addresses, pricing), so they get
// the longest window in the client.
const groundsTTL = 30 * time.Minute

// GroundsService serves bookable venues and slot bookings
type GroundsService struct {
	api     domain.API
	logger  *slog.Logger
	listing *cache.Resource[[]domain.Ground]
}

// NewGroundsService creates a grounds service
func NewGroundsService(api domain.API, snapshots domain.Snapshots, logger *slog.Logger) *GroundsService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &GroundsService{api: api, logger: logger}
	s.listing = cache.New(KeyGrounds, groundsTTL, func(ctx context.Context) ([]domain.Ground, error) {
		gs, err := api.Grounds(ctx)
		if err != nil {
			return nil, err
		}
		if gs == nil {
			gs = []domain.Ground{}
		}
		return gs, nil
	}, snapshots, logger)
	return s
}

// Grounds returns the venue listing, served from cache while fresh
func (s *GroundsService) Grounds(ctx context.Context, force bool) ([]domain.Ground, error) {
	return s.listing.Get(ctx, force)
}

// Slots returns availability for a ground on a date. Never cached:
// availability resolved a minute ago is worthless for booking.
func (s *GroundsService) Slots(ctx context.Context, groundID, date string) ([]domain.Slot, error) {
	return s.api.GroundSlots(ctx, groundID, date)
}

// Book reserves a slot for a team. Conflict resolution is entirely
// server-side; a taken slot comes back as a request error for the booking
// screen to render inline.
func (s *GroundsService) Book(ctx context.Context, slotID, teamID string) (*domain.Booking, error) {
	booking, err := s.api.BookSlot(ctx, slotID, teamID)
	if err != nil {
		s.logger.Error("failed to book slot", "error", err, "slotID", slotID)
		return nil, err
	}
	s.listing.Invalidate()
	s.logger.Info("booked slot", "bookingID", booking.ID, "groundID", booking.GroundID)
	return booking, nil
}

// Invalidate forces the next Grounds call to hit the network
func (s *GroundsService) Invalidate() {
	s.listing.Invalidate()
}
