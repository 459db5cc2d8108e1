package domain

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotTaken       = errors.New("slot already booked")
	ErrInvalidAmount   = errors.New("invalid payment amount")
	ErrInvalidRating   = errors.New("rating out of range")
	ErrSessionCorrupt  = errors.New("session temp data unreadable")
)
