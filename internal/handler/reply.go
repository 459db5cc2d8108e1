package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/glowhaven/glowbot/internal/config"
)

const mainMenuText = "✨ *Welcome to Glow Haven Beauty Lounge!* We're here to make you shine. How can I assist you?\n\n" +
	"1. *Chat:* Get info (services, location, hours)\n" +
	"2. *Book:* Schedule your appointment\n" +
	"3. *Pay:* Settle your deposit or balance\n" +
	"4. *My Bookings:* View your appointments\n" +
	"5. *Review:* Share your feedback\n\n" +
	"Tip: you can always reply 'menu' to return here."

const (
	unavailableText    = "🛠️ Our service is temporarily unavailable. Please try again in a few minutes."
	retryLaterText     = "⚠️ We could not save your progress just now. Please resend your last message in a moment."
	dbFailureText      = "⚠️ A database error prevented that from being recorded. Please try again."
	corruptSessionText = "⚠️ We encountered an issue with your session data. Starting fresh. Please choose an option."
	unknownStateText   = "🤔 Oops! I didn't recognize where we were. Let's start fresh."
)

// chunkLines assembles header + lines into reply segments no longer than
// the configured limit, appending the instruction to the final segment
// only.
func chunkLines(header string, lines []string, instruction string) []string {
	var parts []string
	chunk := header
	for _, line := range lines {
		if len(chunk)+len(line)+1 > config.MaxSegmentLen {
			parts = append(parts, strings.TrimSpace(chunk))
			chunk = ""
		}
		chunk += "\n" + line
	}
	if strings.TrimSpace(chunk) != "" {
		parts = append(parts, strings.TrimSpace(chunk))
	}
	if len(parts) == 0 {
		parts = []string{strings.TrimSpace(header)}
	}
	parts[len(parts)-1] += instruction
	return parts
}

// formatAmount renders a monetary value as "KES 1,500.00".
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return config.CurrencyPrefix + " " + sign + b.String() + "." + fracPart
}
