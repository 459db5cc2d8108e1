package handler

import (
	"context"
	"log/slog"

	"github.com/glowhaven/glowbot/internal/domain"
)

const locationText = "📍 *Find Your Haven:*\n\n" +
	"*Location:* 1st Floor, Valley Arcade Mall, Nairobi\n" +
	"*Hours:* Mon-Sat, 9:00 AM - 7:00 PM | Sunday: Closed\n" +
	"*Contact:* Call us at +254 712 345 678 or email info@glowhavenbeauty.co.ke\n" +
	"*Instagram:* @glowhavenbeautylounge\n\n" +
	"Reply with *3* to go back or 'menu' to return to the main menu."

func (h *Handler) handleInfoMenu(ctx context.Context, identity, input string) []string {
	switch input {
	case "1":
		lines, err := h.serviceLines(ctx)
		if err != nil {
			slog.Error("list services", "error", err, "identity", identity)
			return h.transition(ctx, identity, domain.StateMenu, domain.TempData{},
				unavailableText, mainMenuText)
		}
		if len(lines) == 0 {
			return []string{"⚠️ No services are listed right now.\n\nReply with *3* to go back or 'menu' for the main menu."}
		}
		return chunkLines(
			"💆 *Glow Haven Services Menu:*\n",
			lines,
			"\n\nReply with *3* to go back to the Info Menu or 'menu' for the main menu.",
		)

	case "2":
		return []string{locationText}

	case "3":
		return h.transition(ctx, identity, domain.StateMenu, domain.TempData{}, mainMenuText)

	default:
		return []string{"❌ Invalid option. Please choose 1 (Services), 2 (Location), or 3 (Back)."}
	}
}
