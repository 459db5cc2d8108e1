package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/glowhaven/glowbot/internal/domain"
)

func (h *Handler) handleReviewBookingID(ctx context.Context, identity, input string, temp domain.TempData) []string {
	bookingID, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return []string{"❌ Invalid input. Please reply with the *numeric booking ID*."}
	}

	booking, err := h.bookings.GetOwned(ctx, bookingID, identity)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return []string{"❌ Booking ID not found or does not belong to your number. Please try again or type 'menu'."}
		}
		slog.Error("get booking", "error", err, "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			unavailableText, mainMenuText)
	}

	temp.ReviewBookingID = booking.ID
	temp.ReviewServiceName = booking.ServiceName
	return h.transition(ctx, identity, domain.StateReviewRating, temp,
		fmt.Sprintf("You are reviewing: *%s*.\n\nPlease enter your rating (a single number from *1* to *5*, where 5 is excellent).",
			booking.ServiceName))
}

func (h *Handler) handleReviewRating(ctx context.Context, identity, input string, temp domain.TempData) []string {
	rating, err := strconv.Atoi(input)
	if err != nil || rating < 1 || rating > 5 {
		return []string{"❌ Invalid rating. Please enter a single number between 1 and 5."}
	}

	temp.ReviewRating = rating
	return h.transition(ctx, identity, domain.StateReviewComment, temp,
		fmt.Sprintf("Thank you for the %d/5 star rating! ⭐ You can now provide any additional *comments or suggestions* below (optional).", rating))
}

func (h *Handler) handleReviewComment(ctx context.Context, identity, comment string, temp domain.TempData) []string {
	if temp.ReviewBookingID == 0 || temp.ReviewRating == 0 {
		slog.Warn("stale review temp data", "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			corruptSessionText, mainMenuText)
	}

	err := h.feedback.Save(ctx, &domain.Feedback{
		BookingID: temp.ReviewBookingID,
		Rating:    temp.ReviewRating,
		Comments:  comment,
	})
	if err != nil {
		slog.Error("save feedback", "error", err, "identity", identity, "booking_id", temp.ReviewBookingID)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			"⚠️ A database error occurred. Your feedback could not be saved. Please try again.", mainMenuText)
	}

	serviceName := temp.ReviewServiceName
	if serviceName == "" {
		serviceName = "service"
	}
	return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
		fmt.Sprintf("💖 Feedback received for the %s!\nYour rating (%d/5) helps us improve. Thank you for choosing Glow Haven!",
			serviceName, temp.ReviewRating),
		mainMenuText)
}
