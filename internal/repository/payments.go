package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InsertPayment appends a payment row inside the caller's transaction.
func (s *Store) InsertPayment(ctx context.Context, tx pgx.Tx, bookingID int64, amount decimal.Decimal, transactionID string) (id int64, paidAt time.Time, err error) {
	err = tx.QueryRow(ctx, `
		INSERT INTO payments (booking_id, amount, transaction_id)
		VALUES ($1, $2, $3)
		RETURNING id, payment_date
	`, bookingID, amount, transactionID).Scan(&id, &paidAt)
	return id, paidAt, err
}
