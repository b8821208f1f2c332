package areas

import (
	"context"
	"fmt"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// ListActive returns the active common areas of a building.
func (s *Service) ListActive(ctx context.Context, buildingID string) ([]*models.CommonArea, error) {
	out := []*models.CommonArea{}
	err := s.store.FindMany(ctx, "common_areas", store.Filter{
		"building_id": store.Eq(buildingID),
		"is_active":   store.Eq(true),
	}, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list common areas: %w", err)
	}
	return out, nil
}
