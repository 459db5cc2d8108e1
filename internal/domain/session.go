package domain

import "time"

// State is the current position of one identity in the dialogue.
type State string

const (
	StateMenu     State = "menu"
	StateInfoMenu State = "chat_info_menu"

	// Booking flow
	StateServiceSelection State = "service_selection"
	StateBookingName      State = "booking_name_input"
	StateBookingDate      State = "booking_date_selection"
	StateBookingSlot      State = "booking_slot_selection"

	// Payment flow
	StatePaymentBookingID State = "payment_input"
	StatePaymentAmount    State = "payment_amount_input"

	// Review flow
	StateReviewBookingID State = "review_booking_id_input"
	StateReviewRating    State = "review_rating_input"
	StateReviewComment   State = "review_comment_input"
)

// TempData carries partially entered flow fields between messages. It is
// overwritten as a whole on every transition; each state validates the
// presence and range of the fields it reads, so stale or missing entries
// are handled as input-validation errors, never as crashes.
type TempData struct {
	ServiceID   int64  `json:"service_id,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
	UserName    string `json:"user_name,omitempty"`

	// Dates offered at booking_date_selection, in DateLayout order.
	AvailableDates []string `json:"available_dates,omitempty"`
	SelectedDate   string   `json:"selected_date,omitempty"`

	// Slot letter -> start time in SlotTimeLayout.
	SlotMap map[string]string `json:"available_slots_map,omitempty"`

	BookingID int64 `json:"booking_id,omitempty"`

	ReviewBookingID   int64  `json:"review_booking_id,omitempty"`
	ReviewServiceName string `json:"review_service_name,omitempty"`
	ReviewRating      int    `json:"review_rating,omitempty"`
}

// IsEmpty reports whether no flow fields are set.
func (t TempData) IsEmpty() bool {
	return t.ServiceID == 0 && t.ServiceName == "" && t.UserName == "" &&
		len(t.AvailableDates) == 0 && t.SelectedDate == "" && len(t.SlotMap) == 0 &&
		t.BookingID == 0 && t.ReviewBookingID == 0 && t.ReviewServiceName == "" && t.ReviewRating == 0
}

// DateOption is one bookable calendar day offered to the user.
type DateOption struct {
	Date  time.Time
	Label string
}

// Slot is one bookable time window, keyed by the letter the user replies
// with.
type Slot struct {
	Key   string
	Start time.Time
	Label string
}
