package domain

import "github.com/shopspring/decimal"

// Service is one entry of the salon's treatment catalog. The catalog is
// owned by an external management process; the bot only reads it.
type Service struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Duration string
}
