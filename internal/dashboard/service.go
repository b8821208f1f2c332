package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
)

var ErrResidentNotFound = errors.New("resident not found")

// PaymentsSummary partitions a resident's payments by status. Totals are sums
// of the matching amounts.
type PaymentsSummary struct {
	PendingCount int     `json:"pending_count"`
	PendingTotal float64 `json:"pending_total"`
	OverdueCount int     `json:"overdue_count"`
	OverdueTotal float64 `json:"overdue_total"`
}

// View is the composed resident dashboard. It is a read-side join over four
// independent queries; each sub-list reflects store state at its own read
// time.
type View struct {
	Resident             *models.Resident      `json:"resident"`
	PaymentsSummary      PaymentsSummary       `json:"payments_summary"`
	UpcomingReservations []*models.Reservation `json:"upcoming_reservations"`
	ActiveVotings        []*models.Voting      `json:"active_votings"`
	RecentIncidents      []*models.Incident    `json:"recent_incidents"`
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Build composes the dashboard for one resident. today is a "YYYY-MM-DD"
// string; reservations on or after it count as upcoming.
func (s *Service) Build(ctx context.Context, buildingID, residentID, today string) (*View, error) {
	var resident models.Resident
	err := s.store.FindOne(ctx, "residents", store.Filter{"id": store.Eq(residentID)}, &resident)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, fmt.Errorf("load resident: %w", err)
	}

	payments := []*models.Payment{}
	if err := s.store.FindMany(ctx, "payments", store.Filter{"resident_id": store.Eq(residentID)}, nil, &payments); err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	summary := PaymentsSummary{}
	for _, p := range payments {
		switch p.Status {
		case models.PaymentPending:
			summary.PendingCount++
			summary.PendingTotal += p.Amount
		case models.PaymentOverdue:
			summary.OverdueCount++
			summary.OverdueTotal += p.Amount
		}
	}

	reservations := []*models.Reservation{}
	err = s.store.FindMany(ctx, "reservations", store.Filter{
		"resident_id": store.Eq(residentID),
		"date":        store.Gte(today),
		"status":      store.Eq(string(models.ReservationConfirmed)),
	}, &store.FindOpts{
		Sort:  []store.SortField{{Field: "date"}, {Field: "start_time"}},
		Limit: 10,
	}, &reservations)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	votings := []*models.Voting{}
	err = s.store.FindMany(ctx, "votings", store.Filter{
		"building_id": store.Eq(buildingID),
		"status":      store.Eq(string(models.VotingActive)),
	}, &store.FindOpts{Limit: 10}, &votings)
	if err != nil {
		return nil, fmt.Errorf("load votings: %w", err)
	}

	incidents := []*models.Incident{}
	err = s.store.FindMany(ctx, "incidents", store.Filter{
		"reported_by": store.Eq(residentID),
		"building_id": store.Eq(buildingID),
	}, &store.FindOpts{
		Sort:  []store.SortField{{Field: "created_at", Desc: true}},
		Limit: 5,
	}, &incidents)
	if err != nil {
		return nil, fmt.Errorf("load incidents: %w", err)
	}

	return &View{
		Resident:             &resident,
		PaymentsSummary:      summary,
		UpcomingReservations: reservations,
		ActiveVotings:        votings,
		RecentIncidents:      incidents,
	}, nil
}
