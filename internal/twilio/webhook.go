// Package twilio adapts the Twilio messaging gateway's webhook format:
// form-encoded inbound messages in, TwiML responses out.
package twilio

import (
	"net/http"
	"strings"
)

// Inbound is one message forwarded by the gateway. Identity is the
// sender's channel address with the transport prefix stripped; the rest
// of the system treats it as an opaque unique key.
type Inbound struct {
	Identity string
	Body     string
}

// ParseInbound extracts the sender identity and message body from a
// gateway webhook request.
func ParseInbound(r *http.Request) (Inbound, error) {
	if err := r.ParseForm(); err != nil {
		return Inbound{}, err
	}
	return Inbound{
		Identity: strings.TrimPrefix(r.PostFormValue("From"), "whatsapp:"),
		Body:     strings.TrimSpace(r.PostFormValue("Body")),
	}, nil
}
