package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/glowhaven/glowbot/internal/domain"
)

func (h *Handler) handlePaymentBookingID(ctx context.Context, identity, input string, temp domain.TempData) []string {
	bookingID, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return []string{"❌ Invalid input. Please reply with the *numeric booking ID*."}
	}

	booking, err := h.bookings.GetOwned(ctx, bookingID, identity)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return []string{"❌ Booking ID not found for your number. Please double-check your ID or type 'menu'."}
		}
		slog.Error("get booking", "error", err, "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			unavailableText, mainMenuText)
	}

	temp.BookingID = booking.ID
	temp.ServiceName = booking.ServiceName
	return h.transition(ctx, identity, domain.StatePaymentAmount, temp,
		fmt.Sprintf("💵 Booking found: *%s*. Current deposit paid: %s.\n\nPlease enter the *amount* you wish to pay now (e.g. 1500).",
			booking.ServiceName, formatAmount(booking.DepositPaid)))
}

func (h *Handler) handlePaymentAmount(ctx context.Context, identity, input string, temp domain.TempData) []string {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return []string{"❌ Invalid amount. Please enter a number (e.g. 1500) without currency signs."}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return []string{"❌ Payment amount must be greater than zero. Please try again."}
	}
	if temp.BookingID == 0 {
		slog.Warn("stale payment temp data", "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			corruptSessionText, mainMenuText)
	}

	receipt, err := h.payments.Record(ctx, temp.BookingID, amount)
	if err != nil {
		slog.Error("record payment", "error", err, "identity", identity, "booking_id", temp.BookingID)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			dbFailureText, mainMenuText)
	}

	serviceName := temp.ServiceName
	if serviceName == "" {
		serviceName = "Service"
	}
	receiptText := fmt.Sprintf("✅ Payment successfully recorded!\n"+
		"*Service:* %s\n"+
		"*Amount paid now:* %s\n"+
		"*Total deposit paid:* %s 💰\n"+
		"*Transaction ID:* %s\n\n"+
		"Thank you for your payment! Type 'menu' to continue.",
		serviceName, formatAmount(receipt.Amount), formatAmount(receipt.TotalPaid), receipt.TransactionID)

	return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
		receiptText, mainMenuText)
}
