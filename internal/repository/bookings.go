package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/glowhaven/glowbot/internal/domain"
)

// BookingTimeConstraint is the unique constraint guaranteeing one booking
// per slot start time.
const BookingTimeConstraint = "bookings_booking_time_key"

func (s *Store) InsertBooking(ctx context.Context, b *domain.Booking) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO bookings (user_name, phone_number, service_id, booking_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, b.UserName, b.PhoneNumber, b.ServiceID, b.BookingTime).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetBookingByIdentity fetches a booking only if it belongs to the given
// phone number. pgx.ErrNoRows passes through otherwise.
func (s *Store) GetBookingByIdentity(ctx context.Context, id int64, phoneNumber string) (domain.Booking, error) {
	var b domain.Booking
	err := s.pool.QueryRow(ctx, `
		SELECT b.id, b.user_name, b.phone_number, b.service_id, s.name, b.booking_time, b.deposit_paid
		FROM bookings b
		JOIN services s ON b.service_id = s.id
		WHERE b.id = $1 AND b.phone_number = $2
	`, id, phoneNumber).Scan(
		&b.ID,
		&b.UserName,
		&b.PhoneNumber,
		&b.ServiceID,
		&b.ServiceName,
		&b.BookingTime,
		&b.DepositPaid,
	)
	return b, err
}

func (s *Store) ListBookingsByIdentity(ctx context.Context, phoneNumber string) ([]domain.BookingSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, s.name, b.booking_time
		FROM bookings b
		JOIN services s ON b.service_id = s.id
		WHERE b.phone_number = $1
		ORDER BY b.booking_time DESC
	`, phoneNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.BookingSummary
	for rows.Next() {
		var b domain.BookingSummary
		if err := rows.Scan(&b.ID, &b.ServiceName, &b.BookingTime); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// BookedStarts returns the start times of all bookings in [from, to).
func (s *Store) BookedStarts(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT booking_time
		FROM bookings
		WHERE booking_time >= $1 AND booking_time < $2
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		starts = append(starts, t)
	}
	return starts, rows.Err()
}

// AddDeposit increments a booking's deposit total inside the caller's
// transaction and returns the new total.
func (s *Store) AddDeposit(ctx context.Context, tx pgx.Tx, bookingID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx, `
		UPDATE bookings
		SET deposit_paid = deposit_paid + $2
		WHERE id = $1
		RETURNING deposit_paid
	`, bookingID, amount).Scan(&total)
	return total, err
}
