package twilio

import "encoding/xml"

type messagingResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// MessagingResponse encodes reply segments as a TwiML document with one
// <Message> element per segment.
func MessagingResponse(segments ...string) string {
	out, err := xml.Marshal(messagingResponse{Messages: segments})
	if err != nil {
		// Only reachable with invalid XML characters; reply something
		// rather than nothing.
		return xml.Header + "<Response><Message>Something went wrong. Please type 'menu' to start over.</Message></Response>"
	}
	return xml.Header + string(out)
}
