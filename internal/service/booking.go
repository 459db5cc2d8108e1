package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/glowhaven/glowbot/internal/domain"
	"github.com/glowhaven/glowbot/internal/repository"
)

type BookingService struct {
	store *repository.Store
}

func NewBookingService(store *repository.Store) *BookingService {
	return &BookingService{store: store}
}

// Create inserts the confirmed booking. A collision on the slot's start
// time (another booker got there first) surfaces as ErrSlotTaken.
func (s *BookingService) Create(ctx context.Context, b *domain.Booking) (int64, error) {
	id, err := s.store.InsertBooking(ctx, b)
	if err != nil {
		if repository.IsUniqueViolation(err, repository.BookingTimeConstraint) {
			return 0, domain.ErrSlotTaken
		}
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	return id, nil
}

// GetOwned fetches a booking only if it belongs to the given identity.
func (s *BookingService) GetOwned(ctx context.Context, id int64, identity string) (domain.Booking, error) {
	b, err := s.store.GetBookingByIdentity(ctx, id, identity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (s *BookingService) ListByIdentity(ctx context.Context, identity string) ([]domain.BookingSummary, error) {
	bookings, err := s.store.ListBookingsByIdentity(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
