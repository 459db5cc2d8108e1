package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID          int64
	UserName    string
	PhoneNumber string
	ServiceID   int64
	ServiceName string
	BookingTime time.Time
	DepositPaid decimal.Decimal
}

// BookingSummary is the compact shape used for "my bookings" listings.
type BookingSummary struct {
	ID          int64
	ServiceName string
	BookingTime time.Time
}
