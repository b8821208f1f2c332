package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
	"github.com/adminedificios/backend/pkg/metrics"
)

var (
	ErrAreaNotFound        = errors.New("common area not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrOutOfHours          = errors.New("interval outside area operating hours")
	ErrInvalidInterval     = errors.New("invalid date or time interval")
)

// ConflictError reports an overlapping reservation and names the one that
// already holds the slot.
type ConflictError struct {
	ReservationID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflict with reservation %s", e.ReservationID)
}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Service checks common-area availability and records reservations. The
// check-then-insert sequence is serialized per (area, date) by a keyed mutex,
// so two concurrent requests for the same slot cannot both pass the overlap
// scan. State lives in the store only; the mutexes guard nothing durable.
type Service struct {
	store store.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(st store.Store) *Service {
	return &Service{store: st, locks: make(map[string]*sync.Mutex)}
}

func (s *Service) lock(areaID, date string) func() {
	key := areaID + "|" + date
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// minutesOf converts a validated "HH:MM" string to minutes since midnight.
func minutesOf(t string) int {
	h, _ := strconv.Atoi(t[:2])
	m, _ := strconv.Atoi(t[3:])
	return h*60 + m
}

// overlaps tests half-open intervals: [aStart,aEnd) and [bStart,bEnd) overlap
// iff aStart < bEnd && bStart < aEnd. Adjacent intervals do not overlap.
// Zero-padded "HH:MM" strings make the string comparison chronological.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// CheckAndReserve validates the requested interval against the area's
// operating hours, scans non-cancelled reservations for (area, date) for an
// overlap and, finding none, persists a CONFIRMED reservation with the cost
// derived from the area's hourly price. Returns *ConflictError when the slot
// is taken. Nothing is persisted on any failure path.
func (s *Service) CheckAndReserve(ctx context.Context, areaID, residentID, date, startTime, endTime string) (*models.Reservation, error) {
	if !dateRe.MatchString(date) || !timeRe.MatchString(startTime) || !timeRe.MatchString(endTime) {
		return nil, ErrInvalidInterval
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidInterval
	}
	if startTime >= endTime {
		return nil, ErrInvalidInterval
	}

	var area models.CommonArea
	err := s.store.FindOne(ctx, "common_areas", store.Filter{
		"id":        store.Eq(areaID),
		"is_active": store.Eq(true),
	}, &area)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, fmt.Errorf("load common area: %w", err)
	}
	if startTime < area.OpeningTime || endTime > area.ClosingTime {
		return nil, ErrOutOfHours
	}

	unlock := s.lock(areaID, date)
	defer unlock()

	var existing []models.Reservation
	err = s.store.FindMany(ctx, "reservations", store.Filter{
		"common_area_id": store.Eq(areaID),
		"date":           store.Eq(date),
		"status":         store.In(string(models.ReservationConfirmed), string(models.ReservationPending)),
	}, nil, &existing)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	for _, r := range existing {
		if overlaps(startTime, endTime, r.StartTime, r.EndTime) {
			metrics.ReservationConflicts.Inc()
			return nil, &ConflictError{ReservationID: r.ID}
		}
	}

	hours := float64(minutesOf(endTime)-minutesOf(startTime)) / 60
	cost := math.Round(hours*area.PricePerHour*100) / 100

	res := &models.Reservation{
		ID:           uuid.NewString(),
		CommonAreaID: areaID,
		ResidentID:   residentID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		Status:       models.ReservationConfirmed,
		TotalCost:    cost,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, "reservations", res); err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}
	metrics.ReservationsCreated.Inc()
	return res, nil
}

// ListForArea returns non-cancelled reservations for an area with date >=
// fromDate, soonest first.
func (s *Service) ListForArea(ctx context.Context, areaID, fromDate string) ([]*models.Reservation, error) {
	out := []*models.Reservation{}
	err := s.store.FindMany(ctx, "reservations", store.Filter{
		"common_area_id": store.Eq(areaID),
		"date":           store.Gte(fromDate),
		"status":         store.In(string(models.ReservationConfirmed), string(models.ReservationPending)),
	}, &store.FindOpts{Sort: []store.SortField{{Field: "date"}, {Field: "start_time"}}}, &out)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

// Cancel transitions a reservation to CANCELLED. Cancelling an already
// cancelled reservation is a no-op; no other transition exists.
func (s *Service) Cancel(ctx context.Context, reservationID string) error {
	var res models.Reservation
	err := s.store.FindOne(ctx, "reservations", store.Filter{"id": store.Eq(reservationID)}, &res)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("load reservation: %w", err)
	}
	if res.Status == models.ReservationCancelled {
		return nil
	}
	err = s.store.UpdateOne(ctx, "reservations", store.Filter{"id": store.Eq(reservationID)},
		map[string]any{"status": string(models.ReservationCancelled)})
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	return nil
}
