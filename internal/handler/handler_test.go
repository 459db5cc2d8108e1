package handler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glowhaven/glowbot/internal/domain"
)

type fakeSessions struct {
	states  map[string]domain.State
	temps   map[string]domain.TempData
	loadErr error
	saveErr error
	saves   int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		states: make(map[string]domain.State),
		temps:  make(map[string]domain.TempData),
	}
}

func (f *fakeSessions) Load(_ context.Context, identity string) (domain.State, domain.TempData, bool, error) {
	if f.loadErr != nil {
		return domain.StateMenu, domain.TempData{}, true, f.loadErr
	}
	state, ok := f.states[identity]
	if !ok {
		return domain.StateMenu, domain.TempData{}, false, nil
	}
	return state, f.temps[identity], true, nil
}

func (f *fakeSessions) Save(_ context.Context, identity string, state domain.State, temp domain.TempData) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.states[identity] = state
	f.temps[identity] = temp
	return nil
}

type fakeCatalog struct {
	services []domain.Service
	err      error
}

func (f *fakeCatalog) List(context.Context) ([]domain.Service, error) {
	return f.services, f.err
}

func (f *fakeCatalog) Get(_ context.Context, id int64) (domain.Service, error) {
	if f.err != nil {
		return domain.Service{}, f.err
	}
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Service{}, domain.ErrServiceNotFound
}

type fakeAvailability struct {
	dates    []domain.DateOption
	slots    []domain.Slot
	slotsErr error
}

func (f *fakeAvailability) Dates() []domain.DateOption { return f.dates }

func (f *fakeAvailability) Slots(context.Context, time.Time, int64) ([]domain.Slot, error) {
	return f.slots, f.slotsErr
}

type fakeBookings struct {
	nextID    int64
	created   []*domain.Booking
	createErr error
	owned     map[int64]domain.Booking
	list      []domain.BookingSummary
	listErr   error
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.created = append(f.created, b)
	return f.nextID, nil
}

func (f *fakeBookings) GetOwned(_ context.Context, id int64, identity string) (domain.Booking, error) {
	b, ok := f.owned[id]
	if !ok || b.PhoneNumber != identity {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookings) ListByIdentity(context.Context, string) ([]domain.BookingSummary, error) {
	return f.list, f.listErr
}

type paymentCall struct {
	bookingID int64
	amount    decimal.Decimal
}

type fakePayments struct {
	receipt domain.PaymentReceipt
	err     error
	calls   []paymentCall
}

func (f *fakePayments) Record(_ context.Context, bookingID int64, amount decimal.Decimal) (domain.PaymentReceipt, error) {
	if f.err != nil {
		return domain.PaymentReceipt{}, f.err
	}
	f.calls = append(f.calls, paymentCall{bookingID: bookingID, amount: amount})
	r := f.receipt
	r.BookingID = bookingID
	r.Amount = amount
	return r, nil
}

type fakeFeedback struct {
	saved []domain.Feedback
	err   error
}

func (f *fakeFeedback) Save(_ context.Context, fb *domain.Feedback) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *fb)
	return nil
}

type testEnv struct {
	h        *Handler
	sessions *fakeSessions
	catalog  *fakeCatalog
	avail    *fakeAvailability
	bookings *fakeBookings
	payments *fakePayments
	feedback *fakeFeedback
}

func newTestEnv() *testEnv {
	env := &testEnv{
		sessions: newFakeSessions(),
		catalog: &fakeCatalog{services: []domain.Service{
			{ID: 1, Name: "Classic Manicure", Price: decimal.NewFromInt(1500), Duration: "45 mins"},
			{ID: 3, Name: "Deep Cleansing Facial", Price: decimal.NewFromInt(3500), Duration: "1 hr"},
		}},
		avail:    &fakeAvailability{},
		bookings: &fakeBookings{owned: make(map[int64]domain.Booking)},
		payments: &fakePayments{},
		feedback: &fakeFeedback{},
	}
	env.h = New(Deps{
		Sessions:     env.sessions,
		Catalog:      env.catalog,
		Availability: env.avail,
		Bookings:     env.bookings,
		Payments:     env.payments,
		Feedback:     env.feedback,
		Location:     time.UTC,
	})
	return env
}

func (e *testEnv) seed(identity string, state domain.State, temp domain.TempData) {
	e.sessions.states[identity] = state
	e.sessions.temps[identity] = temp
}

const ident = "+254700000001"

func TestResetKeywordClearsAnyState(t *testing.T) {
	states := []domain.State{
		domain.StateMenu, domain.StateInfoMenu, domain.StateServiceSelection,
		domain.StateBookingName, domain.StateBookingDate, domain.StateBookingSlot,
		domain.StatePaymentBookingID, domain.StatePaymentAmount,
		domain.StateReviewBookingID, domain.StateReviewRating, domain.StateReviewComment,
	}
	for _, state := range states {
		for _, keyword := range []string{"menu", "Hi", "START", "0"} {
			env := newTestEnv()
			env.seed(ident, state, domain.TempData{ServiceID: 3, UserName: "Jane"})

			reply := env.h.Handle(context.Background(), ident, keyword)

			if len(reply) == 0 || !strings.Contains(reply[0], "Welcome to Glow Haven") {
				t.Fatalf("state %s keyword %q: expected main menu, got %v", state, keyword, reply)
			}
			if env.sessions.states[ident] != domain.StateMenu {
				t.Fatalf("state %s keyword %q: expected reset to menu, got %s", state, keyword, env.sessions.states[ident])
			}
			if !env.sessions.temps[ident].IsEmpty() {
				t.Fatalf("state %s keyword %q: temp data not cleared", state, keyword)
			}
		}
	}
}

func TestFirstContactCreatesMenuSession(t *testing.T) {
	env := newTestEnv()

	reply := env.h.Handle(context.Background(), ident, "anything at all")

	if !strings.Contains(reply[0], "Welcome to Glow Haven") {
		t.Fatalf("expected welcome menu, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("expected menu session created, got %s", env.sessions.states[ident])
	}
}

func TestMenuBookOptionListsServices(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateMenu, domain.TempData{})

	reply := env.h.Handle(context.Background(), ident, "2")

	if env.sessions.states[ident] != domain.StateServiceSelection {
		t.Fatalf("expected service_selection, got %s", env.sessions.states[ident])
	}
	if !strings.Contains(reply[0], "*1*. Classic Manicure") || !strings.Contains(reply[0], "*3*. Deep Cleansing Facial") {
		t.Fatalf("expected service list with IDs, got %q", reply[0])
	}
	if !strings.Contains(reply[len(reply)-1], "service ID") {
		t.Fatalf("expected selection instruction on final segment, got %q", reply[len(reply)-1])
	}
}

func TestMenuInvalidOptionKeepsState(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateMenu, domain.TempData{})

	reply := env.h.Handle(context.Background(), ident, "9")

	if !strings.Contains(reply[0], "valid menu option") {
		t.Fatalf("expected re-prompt, got %v", reply)
	}
	if env.sessions.saves != 0 {
		t.Fatalf("invalid input must not persist a transition")
	}
}

func TestServiceSelectionStoresService(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateServiceSelection, domain.TempData{})

	env.h.Handle(context.Background(), ident, "3")

	if env.sessions.states[ident] != domain.StateBookingName {
		t.Fatalf("expected booking_name_input, got %s", env.sessions.states[ident])
	}
	temp := env.sessions.temps[ident]
	if temp.ServiceID != 3 || temp.ServiceName != "Deep Cleansing Facial" {
		t.Fatalf("temp data missing service: %+v", temp)
	}
}

func TestServiceSelectionRejectsUnknownID(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateServiceSelection, domain.TempData{})

	reply := env.h.Handle(context.Background(), ident, "42")

	if !strings.Contains(reply[0], "not") {
		t.Fatalf("expected not-found reply, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateServiceSelection {
		t.Fatalf("state must not advance on unknown service")
	}
}

func TestBookingNameOffersDates(t *testing.T) {
	env := newTestEnv()
	env.avail.dates = []domain.DateOption{
		{Date: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC), Label: "Thursday, Jan 29"},
		{Date: time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), Label: "Friday, Jan 30"},
	}
	env.seed(ident, domain.StateBookingName, domain.TempData{ServiceID: 3, ServiceName: "Deep Cleansing Facial"})

	reply := env.h.Handle(context.Background(), ident, "Jane Doe")

	if env.sessions.states[ident] != domain.StateBookingDate {
		t.Fatalf("expected booking_date_selection, got %s", env.sessions.states[ident])
	}
	temp := env.sessions.temps[ident]
	if temp.UserName != "Jane Doe" {
		t.Fatalf("expected user name stored, got %q", temp.UserName)
	}
	if len(temp.AvailableDates) != 2 || temp.AvailableDates[0] != "2026-01-29" {
		t.Fatalf("expected date list in temp data, got %v", temp.AvailableDates)
	}
	if !strings.Contains(reply[0], "Thursday, Jan 29") {
		t.Fatalf("expected date labels in reply, got %q", reply[0])
	}
}

func TestBookingNameRejectsEmpty(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateBookingName, domain.TempData{ServiceID: 3})

	reply := env.h.Handle(context.Background(), ident, "   ")

	if !strings.Contains(reply[0], "full name") {
		t.Fatalf("expected name re-prompt, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateBookingName {
		t.Fatalf("state must not advance on empty name")
	}
}

func TestDateSelectionBuildsSlotMap(t *testing.T) {
	env := newTestEnv()
	day := time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)
	env.avail.slots = []domain.Slot{
		{Key: "A", Start: day.Add(9 * time.Hour), Label: "9:00 AM"},
		{Key: "B", Start: day.Add(10 * time.Hour), Label: "10:00 AM"},
	}
	env.seed(ident, domain.StateBookingDate, domain.TempData{
		ServiceID:      3,
		UserName:       "Jane Doe",
		AvailableDates: []string{"2026-01-29", "2026-01-30"},
	})

	reply := env.h.Handle(context.Background(), ident, "1")

	if env.sessions.states[ident] != domain.StateBookingSlot {
		t.Fatalf("expected booking_slot_selection, got %s", env.sessions.states[ident])
	}
	temp := env.sessions.temps[ident]
	if temp.SlotMap["A"] != "2026-01-29 09:00" || temp.SlotMap["B"] != "2026-01-29 10:00" {
		t.Fatalf("unexpected slot map: %v", temp.SlotMap)
	}
	if temp.SelectedDate != "2026-01-29" {
		t.Fatalf("expected selected date stored, got %q", temp.SelectedDate)
	}
	if !strings.Contains(reply[0], "*A*. 9:00 AM") {
		t.Fatalf("expected slot list, got %q", reply[0])
	}
}

func TestDateSelectionEmptySlotsAbortsToMenu(t *testing.T) {
	env := newTestEnv()
	env.avail.slots = nil
	env.seed(ident, domain.StateBookingDate, domain.TempData{
		ServiceID:      3,
		UserName:       "Jane Doe",
		AvailableDates: []string{"2026-01-29"},
	})

	reply := env.h.Handle(context.Background(), ident, "1")

	if !strings.Contains(reply[0], "No available slots") {
		t.Fatalf("expected no-slots notice, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("empty slot list must abort to menu, got %s", env.sessions.states[ident])
	}
}

func TestDateSelectionOutOfRangeIndex(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateBookingDate, domain.TempData{
		ServiceID:      3,
		UserName:       "Jane Doe",
		AvailableDates: []string{"2026-01-29"},
	})

	reply := env.h.Handle(context.Background(), ident, "5")

	if !strings.Contains(reply[0], "Invalid date choice") {
		t.Fatalf("expected range error, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateBookingDate {
		t.Fatalf("state must not advance on out-of-range index")
	}
}

func TestSlotSelectionCreatesBooking(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateBookingSlot, domain.TempData{
		ServiceID:   3,
		ServiceName: "Deep Cleansing Facial",
		UserName:    "Jane Doe",
		SlotMap:     map[string]string{"A": "2026-01-29 10:00"},
	})

	reply := env.h.Handle(context.Background(), ident, "a")

	if len(env.bookings.created) != 1 {
		t.Fatalf("expected one booking created, got %d", len(env.bookings.created))
	}
	b := env.bookings.created[0]
	want := time.Date(2026, 1, 29, 10, 0, 0, 0, time.UTC)
	if !b.BookingTime.Equal(want) || b.ServiceID != 3 || b.UserName != "Jane Doe" || b.PhoneNumber != ident {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if !strings.Contains(reply[0], "Booking Confirmed") {
		t.Fatalf("expected confirmation, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("expected reset to menu after booking, got %s", env.sessions.states[ident])
	}
}

func TestSlotSelectionSlotJustTaken(t *testing.T) {
	env := newTestEnv()
	env.bookings.createErr = domain.ErrSlotTaken
	env.seed(ident, domain.StateBookingSlot, domain.TempData{
		ServiceID: 3, UserName: "Jane Doe",
		SlotMap: map[string]string{"A": "2026-01-29 10:00"},
	})

	reply := env.h.Handle(context.Background(), ident, "A")

	if !strings.Contains(reply[0], "just taken") {
		t.Fatalf("expected slot-taken notice, got %v", reply)
	}
	if len(env.bookings.created) != 0 {
		t.Fatalf("no booking row may exist after a slot collision")
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("expected menu after collision, got %s", env.sessions.states[ident])
	}
}

func TestSlotSelectionLedgerFailureIsAtomic(t *testing.T) {
	env := newTestEnv()
	env.bookings.createErr = errors.New("connection reset")
	env.seed(ident, domain.StateBookingSlot, domain.TempData{
		ServiceID: 3, UserName: "Jane Doe",
		SlotMap: map[string]string{"A": "2026-01-29 10:00"},
	})

	reply := env.h.Handle(context.Background(), ident, "A")

	if len(env.bookings.created) != 0 {
		t.Fatalf("failed insert must leave no booking")
	}
	if !strings.Contains(reply[0], "database error") {
		t.Fatalf("expected failure reply, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("session must still advance to menu after ledger failure")
	}
}

func TestSlotSelectionUnknownLetter(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateBookingSlot, domain.TempData{
		ServiceID: 3, UserName: "Jane Doe",
		SlotMap: map[string]string{"A": "2026-01-29 10:00"},
	})

	reply := env.h.Handle(context.Background(), ident, "z")

	if !strings.Contains(reply[0], "Invalid choice") {
		t.Fatalf("expected letter re-prompt, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateBookingSlot {
		t.Fatalf("state must not change on unknown letter")
	}
}

func TestPaymentBookingIDChecksOwnership(t *testing.T) {
	env := newTestEnv()
	env.bookings.owned[7] = domain.Booking{
		ID: 7, PhoneNumber: ident, ServiceName: "Gel Pedicure",
		DepositPaid: decimal.NewFromInt(500),
	}
	env.seed(ident, domain.StatePaymentBookingID, domain.TempData{})

	reply := env.h.Handle(context.Background(), ident, "7")

	if env.sessions.states[ident] != domain.StatePaymentAmount {
		t.Fatalf("expected payment_amount_input, got %s", env.sessions.states[ident])
	}
	if env.sessions.temps[ident].BookingID != 7 {
		t.Fatalf("expected booking id in temp data")
	}
	if !strings.Contains(reply[0], "KES 500.00") {
		t.Fatalf("expected current deposit in reply, got %q", reply[0])
	}

	// Someone else's booking is invisible.
	env.bookings.owned[9] = domain.Booking{ID: 9, PhoneNumber: "+254711111111"}
	env.seed(ident, domain.StatePaymentBookingID, domain.TempData{})
	reply = env.h.Handle(context.Background(), ident, "9")
	if !strings.Contains(reply[0], "not found") {
		t.Fatalf("expected ownership rejection, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StatePaymentBookingID {
		t.Fatalf("state must not advance for foreign booking")
	}
}

func TestPaymentAmountRecordsPayment(t *testing.T) {
	env := newTestEnv()
	env.payments.receipt = domain.PaymentReceipt{
		TotalPaid:     decimal.NewFromInt(1500),
		TransactionID: "GH-TXN-7c2f",
	}
	env.seed(ident, domain.StatePaymentAmount, domain.TempData{BookingID: 7, ServiceName: "Gel Pedicure"})

	reply := env.h.Handle(context.Background(), ident, "1500")

	if len(env.payments.calls) != 1 {
		t.Fatalf("expected exactly one payment, got %d", len(env.payments.calls))
	}
	call := env.payments.calls[0]
	if call.bookingID != 7 || !call.amount.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("unexpected payment call: %+v", call)
	}
	if !strings.Contains(reply[0], "GH-TXN-7c2f") || !strings.Contains(reply[0], "KES 1,500.00") {
		t.Fatalf("expected receipt with transaction id and totals, got %q", reply[0])
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("expected reset to menu after payment")
	}
}

func TestPaymentAmountValidation(t *testing.T) {
	for _, input := range []string{"abc", "-50", "0"} {
		env := newTestEnv()
		env.seed(ident, domain.StatePaymentAmount, domain.TempData{BookingID: 7})

		reply := env.h.Handle(context.Background(), ident, input)

		if len(env.payments.calls) != 0 {
			t.Fatalf("input %q: no payment may be recorded", input)
		}
		if env.sessions.states[ident] != domain.StatePaymentAmount {
			t.Fatalf("input %q: state must not change", input)
		}
		if len(reply) != 1 || !strings.Contains(reply[0], "❌") {
			t.Fatalf("input %q: expected validation reply, got %v", input, reply)
		}
	}
}

func TestPaymentLedgerFailureRollsBackToMenu(t *testing.T) {
	env := newTestEnv()
	env.payments.err = errors.New("write failed")
	env.seed(ident, domain.StatePaymentAmount, domain.TempData{BookingID: 7})

	reply := env.h.Handle(context.Background(), ident, "1500")

	if !strings.Contains(reply[0], "database error") {
		t.Fatalf("expected failure reply, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("expected menu after ledger failure, got %s", env.sessions.states[ident])
	}
}

func TestReviewRatingValidation(t *testing.T) {
	for _, input := range []string{"6", "0", "five"} {
		env := newTestEnv()
		env.seed(ident, domain.StateReviewRating, domain.TempData{ReviewBookingID: 7})

		reply := env.h.Handle(context.Background(), ident, input)

		if !strings.Contains(reply[0], "Invalid rating") {
			t.Fatalf("input %q: expected rating error, got %v", input, reply)
		}
		if env.sessions.states[ident] != domain.StateReviewRating {
			t.Fatalf("input %q: state must not change", input)
		}
	}
}

func TestReviewFlowSavesFeedback(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateReviewComment, domain.TempData{
		ReviewBookingID:   7,
		ReviewServiceName: "Gel Pedicure",
		ReviewRating:      4,
	})

	reply := env.h.Handle(context.Background(), ident, "Lovely experience!")

	if len(env.feedback.saved) != 1 {
		t.Fatalf("expected one feedback row, got %d", len(env.feedback.saved))
	}
	fb := env.feedback.saved[0]
	if fb.BookingID != 7 || fb.Rating != 4 || fb.Comments != "Lovely experience!" {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
	if !strings.Contains(reply[0], "Feedback received") {
		t.Fatalf("expected thanks, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("expected reset to menu after review")
	}
}

func TestCorruptSessionResetsWithNotice(t *testing.T) {
	env := newTestEnv()
	env.sessions.loadErr = domain.ErrSessionCorrupt

	reply := env.h.Handle(context.Background(), ident, "2")

	if !strings.Contains(reply[0], "Starting fresh") {
		t.Fatalf("expected corrupt-session notice, got %v", reply)
	}
	env.sessions.loadErr = nil
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("expected reset to menu, got %s", env.sessions.states[ident])
	}
}

func TestStoreUnavailableReplies(t *testing.T) {
	env := newTestEnv()
	env.sessions.loadErr = errors.New("dial tcp: connection refused")

	reply := env.h.Handle(context.Background(), ident, "2")

	if len(reply) != 1 || !strings.Contains(reply[0], "temporarily unavailable") {
		t.Fatalf("expected unavailable reply, got %v", reply)
	}
}

func TestSaveFailureYieldsRetryReply(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.StateMenu, domain.TempData{})
	env.sessions.saveErr = errors.New("write failed")

	reply := env.h.Handle(context.Background(), ident, "2")

	if len(reply) != 1 || !strings.Contains(reply[0], "could not save") {
		t.Fatalf("expected retry-later reply, got %v", reply)
	}
}

func TestMyBookingsListsAndReturnsToMenu(t *testing.T) {
	env := newTestEnv()
	env.bookings.list = []domain.BookingSummary{
		{ID: 7, ServiceName: "Gel Pedicure", BookingTime: time.Date(2026, 1, 29, 10, 0, 0, 0, time.UTC)},
	}
	env.seed(ident, domain.StateMenu, domain.TempData{})

	reply := env.h.Handle(context.Background(), ident, "4")

	if !strings.Contains(reply[0], "*ID 7*: Gel Pedicure") {
		t.Fatalf("expected booking listing, got %q", reply[0])
	}
	if !strings.Contains(reply[len(reply)-1], "Welcome to Glow Haven") {
		t.Fatalf("expected trailing menu segment, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("expected menu state retained")
	}
}

func TestUnknownStoredStateResets(t *testing.T) {
	env := newTestEnv()
	env.seed(ident, domain.State("totally_bogus"), domain.TempData{})

	reply := env.h.Handle(context.Background(), ident, "whatever")

	if !strings.Contains(reply[0], "start fresh") {
		t.Fatalf("expected reset notice, got %v", reply)
	}
	if env.sessions.states[ident] != domain.StateMenu {
		t.Fatalf("expected reset to menu")
	}
}
