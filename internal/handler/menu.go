package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glowhaven/glowbot/internal/domain"
)

func (h *Handler) handleMenu(ctx context.Context, identity, input string) []string {
	switch input {
	case "1", "chat", "info":
		return h.transition(ctx, identity, domain.StateInfoMenu, domain.TempData{},
			"💬 *General Info Menu:*\n\n"+
				"1. *Services:* See our full treatment list 💅\n"+
				"2. *Location:* Find us & check hours 📍\n"+
				"3. *Back:* Return to main menu")

	case "2", "book", "schedule":
		lines, err := h.serviceLines(ctx)
		if err != nil {
			slog.Error("list services", "error", err, "identity", identity)
			return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
				unavailableText, mainMenuText)
		}
		if len(lines) == 0 {
			return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
				"⚠️ No services are available to book right now.\n\nReturning to main menu.", mainMenuText)
		}
		segments := chunkLines(
			"🗓️ *Ready to book? Choose your service:*\n",
			lines,
			"\n\n✨ To proceed, please reply with the *service ID* you wish to book.",
		)
		return h.transition(ctx, identity, domain.StateServiceSelection, domain.TempData{}, segments...)

	case "3", "pay", "payments", "deposit":
		return h.transition(ctx, identity, domain.StatePaymentBookingID, domain.TempData{},
			"💳 To process a payment, please reply with your *booking ID*.")

	case "4", "my bookings", "bookings":
		return h.handleMyBookings(ctx, identity)

	case "5", "review", "feedback":
		return h.transition(ctx, identity, domain.StateReviewBookingID, domain.TempData{},
			"🌟 We value your opinion! Please enter the *booking ID* for the service you'd like to review.")

	default:
		return []string{"❌ That wasn't a valid menu option. Please choose 1, 2, 3, 4, or 5."}
	}
}

func (h *Handler) handleMyBookings(ctx context.Context, identity string) []string {
	bookings, err := h.bookings.ListByIdentity(ctx, identity)
	if err != nil {
		slog.Error("list bookings", "error", err, "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			unavailableText, mainMenuText)
	}

	if len(bookings) == 0 {
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			"🥺 You have no current or past bookings recorded. Reply *2* to book your first service!",
			mainMenuText)
	}

	lines := make([]string, len(bookings))
	for i, b := range bookings {
		lines[i] = fmt.Sprintf("*ID %d*: %s on %s",
			b.ID, b.ServiceName, b.BookingTime.In(h.loc).Format("2006-01-02 at 15:04"))
	}
	segments := chunkLines(
		"📅 *Your Upcoming & Past Bookings:*\n",
		lines,
		"\n\nType 'menu' to go back to the main menu.",
	)
	segments = append(segments, mainMenuText)
	return h.transition(ctx, identity, domain.StateMenu, domain.TempData{}, segments...)
}

// serviceLines formats the catalog for listing, one line per service.
func (h *Handler) serviceLines(ctx context.Context) ([]string, error) {
	services, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(services))
	for i, s := range services {
		lines[i] = fmt.Sprintf("*%d*. %s (Est. %s) | %s", s.ID, s.Name, s.Duration, formatAmount(s.Price))
	}
	return lines, nil
}
