package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/glowhaven/glowbot/internal/config"
	"github.com/glowhaven/glowbot/internal/domain"
)

// AvailabilityStore is the read-only slice of the ledger the engine
// needs: the catalog lookup and existing booking start times.
type AvailabilityStore interface {
	GetService(ctx context.Context, id int64) (domain.Service, error)
	BookedStarts(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// AvailabilityService computes bookable dates and time slots from the
// fixed operating rules and existing bookings. It holds no state of its
// own; results are a pure function of the clock and the ledger.
type AvailabilityService struct {
	store         AvailabilityStore
	loc           *time.Location
	openHour      int
	closeHour     int
	closedWeekday time.Weekday
	horizonDays   int
	now           func() time.Time
}

func NewAvailabilityService(store AvailabilityStore, cfg *config.Config, loc *time.Location) *AvailabilityService {
	return &AvailabilityService{
		store:         store,
		loc:           loc,
		openHour:      cfg.OpenHour,
		closeHour:     cfg.CloseHour,
		closedWeekday: time.Weekday(cfg.ClosedWeekday),
		horizonDays:   config.HorizonDays,
		now:           time.Now,
	}
}

// Dates enumerates the next horizon of open days starting today. The
// closed weekday is skipped, and today is skipped entirely once local
// time has reached the closing hour.
func (s *AvailabilityService) Dates() []domain.DateOption {
	now := s.now().In(s.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if now.Hour() >= s.closeHour {
		day = day.AddDate(0, 0, 1)
	}

	dates := make([]domain.DateOption, 0, s.horizonDays)
	for len(dates) < s.horizonDays {
		if day.Weekday() != s.closedWeekday {
			dates = append(dates, domain.DateOption{
				Date:  day,
				Label: day.Format("Monday, Jan 02"),
			})
		}
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// Slots generates the free slots for one date and service. Slot width is
// fixed at the configured granularity regardless of the service's nominal
// duration. On the current date, slots at or before the current hour are
// dropped. A slot whose start collides with any existing booking is
// excluded. Surviving slots get letter keys A, B, C... in order.
func (s *AvailabilityService) Slots(ctx context.Context, date time.Time, serviceID int64) ([]domain.Slot, error) {
	if _, err := s.store.GetService(ctx, serviceID); err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) || errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}

	now := s.now().In(s.loc)
	date = date.In(s.loc)

	startHour := s.openHour
	if sameDay(date, now) && now.Hour()+1 > startHour {
		startHour = now.Hour() + 1
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	closeAt := dayStart.Add(time.Duration(s.closeHour) * time.Hour)

	booked, err := s.store.BookedStarts(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("booked starts: %w", err)
	}
	taken := make(map[int64]struct{}, len(booked))
	for _, t := range booked {
		taken[t.Unix()] = struct{}{}
	}

	var slots []domain.Slot
	start := dayStart.Add(time.Duration(startHour) * time.Hour)
	for t := start; !t.Add(config.SlotGranularity).After(closeAt); t = t.Add(config.SlotGranularity) {
		if _, ok := taken[t.Unix()]; ok {
			continue
		}
		slots = append(slots, domain.Slot{
			Key:   string(rune('A' + len(slots))),
			Start: t,
			Label: t.Format("3:04 PM"),
		})
	}
	return slots, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
