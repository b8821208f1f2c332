package incidents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
)

var ErrInvalidPriority = errors.New("unknown incident priority")

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns the incidents a resident reported in a building, newest first.
func (s *Service) List(ctx context.Context, buildingID, residentID string) ([]*models.Incident, error) {
	out := []*models.Incident{}
	err := s.store.FindMany(ctx, "incidents", store.Filter{
		"reported_by": store.Eq(residentID),
		"building_id": store.Eq(buildingID),
	}, &store.FindOpts{Sort: []store.SortField{{Field: "created_at", Desc: true}}}, &out)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	return out, nil
}

// Report records a new incident with status OPEN. images is a placeholder list
// of references; no upload handling exists.
func (s *Service) Report(ctx context.Context, buildingID, residentID, title, description, category string, priority models.Priority, images []string) (*models.Incident, error) {
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
	default:
		return nil, ErrInvalidPriority
	}
	if images == nil {
		images = []string{}
	}
	inc := &models.Incident{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      models.IncidentOpen,
		ReportedBy:  residentID,
		BuildingID:  buildingID,
		Images:      images,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, "incidents", inc); err != nil {
		return nil, fmt.Errorf("insert incident: %w", err)
	}
	return inc, nil
}
