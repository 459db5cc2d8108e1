package config

import "time"

const (
	// Booking horizon offered to the user.
	HorizonDays = 7

	// Fixed slot width. Service durations are informational only; slot
	// boundaries always use this granularity.
	SlotGranularity = time.Hour

	// WhatsApp keeps messages readable under this size; generated lists
	// are chunked into segments no longer than this.
	MaxSegmentLen = 1000

	// Currency prefix for displayed amounts.
	CurrencyPrefix = "KES"

	// Layouts for values carried through session temp data.
	DateLayout     = "2006-01-02"
	SlotTimeLayout = "2006-01-02 15:04"

	// HTTP server timeouts.
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 15 * time.Second
	ShutdownTimeout = 10 * time.Second
)

// ResetKeywords return the user to the main menu from any dialogue state.
var ResetKeywords = []string{"hi", "hello", "start", "menu", "main menu", "0"}
