// Package handler implements the conversation state machine: given the
// sender's identity, their stored session, and the new inbound message it
// decides the next dialogue state, the ledger writes, and the reply.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glowhaven/glowbot/internal/config"
	"github.com/glowhaven/glowbot/internal/domain"
)

// Sessions is the per-identity dialogue state repository.
type Sessions interface {
	Load(ctx context.Context, identity string) (domain.State, domain.TempData, bool, error)
	Save(ctx context.Context, identity string, state domain.State, temp domain.TempData) error
}

// Catalog reads the salon's service catalog.
type Catalog interface {
	List(ctx context.Context) ([]domain.Service, error)
	Get(ctx context.Context, id int64) (domain.Service, error)
}

// Availability computes bookable dates and free slots.
type Availability interface {
	Dates() []domain.DateOption
	Slots(ctx context.Context, date time.Time, serviceID int64) ([]domain.Slot, error)
}

// Bookings mutates and reads the booking ledger.
type Bookings interface {
	Create(ctx context.Context, b *domain.Booking) (int64, error)
	GetOwned(ctx context.Context, id int64, identity string) (domain.Booking, error)
	ListByIdentity(ctx context.Context, identity string) ([]domain.BookingSummary, error)
}

// Payments records deposits against bookings.
type Payments interface {
	Record(ctx context.Context, bookingID int64, amount decimal.Decimal) (domain.PaymentReceipt, error)
}

// Feedback appends review entries.
type Feedback interface {
	Save(ctx context.Context, fb *domain.Feedback) error
}

// Handler drives the dialogue. It holds no per-user state; everything it
// needs between messages lives in the session row.
type Handler struct {
	sessions     Sessions
	catalog      Catalog
	availability Availability
	bookings     Bookings
	payments     Payments
	feedback     Feedback
	loc          *time.Location
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Sessions     Sessions
	Catalog      Catalog
	Availability Availability
	Bookings     Bookings
	Payments     Payments
	Feedback     Feedback
	Location     *time.Location
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		sessions:     deps.Sessions,
		catalog:      deps.Catalog,
		availability: deps.Availability,
		bookings:     deps.Bookings,
		payments:     deps.Payments,
		feedback:     deps.Feedback,
		loc:          loc,
	}
}

// Handle processes one inbound message and returns the ordered reply
// segments. Every path replies with at least one segment.
func (h *Handler) Handle(ctx context.Context, identity, body string) []string {
	raw := strings.TrimSpace(body)
	input := strings.ToLower(raw)

	// The reset keywords win over any state-specific handling.
	if slices.Contains(config.ResetKeywords, input) {
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{}, mainMenuText)
	}

	state, temp, found, err := h.sessions.Load(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrSessionCorrupt) {
			slog.Warn("session temp data unreadable, resetting", "identity", identity)
			return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
				corruptSessionText, mainMenuText)
		}
		slog.Error("load session", "error", err, "identity", identity)
		return []string{unavailableText}
	}

	if !found {
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{}, mainMenuText)
	}

	switch state {
	case domain.StateMenu:
		return h.handleMenu(ctx, identity, input)
	case domain.StateInfoMenu:
		return h.handleInfoMenu(ctx, identity, input)
	case domain.StateServiceSelection:
		return h.handleServiceSelection(ctx, identity, input, temp)
	case domain.StateBookingName:
		return h.handleBookingName(ctx, identity, raw, temp)
	case domain.StateBookingDate:
		return h.handleDateSelection(ctx, identity, input, temp)
	case domain.StateBookingSlot:
		return h.handleSlotSelection(ctx, identity, input, temp)
	case domain.StatePaymentBookingID:
		return h.handlePaymentBookingID(ctx, identity, input, temp)
	case domain.StatePaymentAmount:
		return h.handlePaymentAmount(ctx, identity, input, temp)
	case domain.StateReviewBookingID:
		return h.handleReviewBookingID(ctx, identity, input, temp)
	case domain.StateReviewRating:
		return h.handleReviewRating(ctx, identity, input, temp)
	case domain.StateReviewComment:
		return h.handleReviewComment(ctx, identity, raw, temp)
	default:
		slog.Warn("unknown session state, resetting", "state", state, "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			unknownStateText, mainMenuText)
	}
}

// transition saves the new session state and, on success, returns the
// prepared reply. A failed save replaces the reply with a retry notice so
// the user never believes a transition happened that was not persisted.
func (h *Handler) transition(ctx context.Context, identity string, state domain.State, temp domain.TempData, reply ...string) []string {
	if err := h.sessions.Save(ctx, identity, state, temp); err != nil {
		slog.Error("save session", "error", err, "identity", identity, "state", state)
		return []string{retryLaterText}
	}
	return reply
}
