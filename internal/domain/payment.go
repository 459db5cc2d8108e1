package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID            int64
	BookingID     int64
	Amount        decimal.Decimal
	PaymentDate   time.Time
	TransactionID string
}

// PaymentReceipt reports the outcome of a recorded payment: the amount
// just paid, the booking's running deposit total, and the generated
// transaction identifier.
type PaymentReceipt struct {
	BookingID     int64
	Amount        decimal.Decimal
	TotalPaid     decimal.Decimal
	TransactionID string
}
