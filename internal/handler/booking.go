package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/glowhaven/glowbot/internal/config"
	"github.com/glowhaven/glowbot/internal/domain"
)

func (h *Handler) handleServiceSelection(ctx context.Context, identity, input string, temp domain.TempData) []string {
	serviceID, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return []string{"❌ Invalid input. Please reply only with the *service ID number*."}
	}

	svc, err := h.catalog.Get(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return []string{"❌ Service ID *not* found. Please enter a valid ID from the list above."}
		}
		slog.Error("get service", "error", err, "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			unavailableText, mainMenuText)
	}

	temp.ServiceID = svc.ID
	temp.ServiceName = svc.Name
	return h.transition(ctx, identity, domain.StateBookingName, temp,
		fmt.Sprintf("📝 Excellent! You chose *%s*. Please reply with your *full name* (first and last) for the booking.", svc.Name))
}

func (h *Handler) handleBookingName(ctx context.Context, identity, name string, temp domain.TempData) []string {
	if name == "" {
		return []string{"❌ Please enter your full name to proceed with the booking."}
	}

	temp.UserName = name
	dates := h.availability.Dates()
	temp.AvailableDates = make([]string, len(dates))

	var list strings.Builder
	list.WriteString("📅 *Next Available Dates:*\n\n")
	for i, d := range dates {
		temp.AvailableDates[i] = d.Date.Format(config.DateLayout)
		fmt.Fprintf(&list, "*%d*. %s\n", i+1, d.Label)
	}
	list.WriteString("\n➡️ Please reply with the *number* of the date you prefer.")

	return h.transition(ctx, identity, domain.StateBookingDate, temp,
		fmt.Sprintf("Hello, *%s*! Next, let's pick your date.\n\n%s", name, list.String()))
}

func (h *Handler) handleDateSelection(ctx context.Context, identity, input string, temp domain.TempData) []string {
	choice, err := strconv.Atoi(input)
	if err != nil {
		return []string{"❌ Invalid input. Please reply with the *number* of your preferred date."}
	}
	if choice < 1 || choice > len(temp.AvailableDates) {
		return []string{"❌ Invalid date choice. Please reply with a number corresponding to one of the listed dates."}
	}

	selected := temp.AvailableDates[choice-1]
	date, err := time.ParseInLocation(config.DateLayout, selected, h.loc)
	if err != nil {
		// The stored date list is not something we wrote; reset rather
		// than guess.
		slog.Warn("unparseable date in temp data", "value", selected, "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			corruptSessionText, mainMenuText)
	}

	slots, err := h.availability.Slots(ctx, date, temp.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
				"⚠️ That service is no longer available. Let's start over.", mainMenuText)
		}
		slog.Error("compute slots", "error", err, "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			unavailableText, mainMenuText)
	}

	if len(slots) == 0 {
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			fmt.Sprintf("😔 No available slots found for *%s*.\nPlease try selecting a different date from the menu by typing *'menu'*.",
				date.Format("Monday, Jan 02")),
			mainMenuText)
	}

	temp.SelectedDate = selected
	temp.SlotMap = make(map[string]string, len(slots))

	var list strings.Builder
	fmt.Fprintf(&list, "⏱️ *Available Slots for %s:*\n\n", date.Format("Monday, Jan 02"))
	for _, s := range slots {
		temp.SlotMap[s.Key] = s.Start.Format(config.SlotTimeLayout)
		fmt.Fprintf(&list, "*%s*. %s\n", s.Key, s.Label)
	}
	list.WriteString("\n➡️ Please reply with the *letter* of the time slot you want.")

	return h.transition(ctx, identity, domain.StateBookingSlot, temp, list.String())
}

func (h *Handler) handleSlotSelection(ctx context.Context, identity, input string, temp domain.TempData) []string {
	key := strings.ToUpper(input)
	startStr, ok := temp.SlotMap[key]
	if !ok {
		return []string{"❌ Invalid choice. Please reply with the *letter* corresponding to one of the listed time slots."}
	}

	start, err := time.ParseInLocation(config.SlotTimeLayout, startStr, h.loc)
	if err != nil || temp.ServiceID == 0 || temp.UserName == "" {
		slog.Warn("stale booking temp data", "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			corruptSessionText, mainMenuText)
	}

	bookingID, err := h.bookings.Create(ctx, &domain.Booking{
		UserName:    temp.UserName,
		PhoneNumber: identity,
		ServiceID:   temp.ServiceID,
		BookingTime: start,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
				"😔 Sorry, that slot was just taken by another client. Please type 'menu' and book again to see what's still free.",
				mainMenuText)
		}
		slog.Error("create booking", "error", err, "identity", identity)
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
			dbFailureText, mainMenuText)
	}

	confirmation := fmt.Sprintf("🎉 *Booking Confirmed!* 🎉\n"+
		"*Booking ID:* %d\n"+
		"*Service:* %s\n"+
		"*Time:* %s\n"+
		"*Client:* %s\n\n"+
		"We can't wait to pamper you! You can now send a payment (option 3) or type 'menu'.",
		bookingID, temp.ServiceName, start.Format("Monday, January 2 at 3:04 PM"), temp.UserName)

	return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
		confirmation, mainMenuText)
}
