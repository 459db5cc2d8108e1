package domain

type Feedback struct {
	BookingID int64
	Rating    int
	Comments  string // empty means no comment
}
