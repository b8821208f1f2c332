package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
)

var ErrNoTenant = errors.New("demo building or resident not found")

// Resolver maps a request to its building and resident. The current
// implementation resolves the demo tenant; a real deployment swaps this for a
// session-backed resolver without touching the handlers.
type Resolver struct {
	store store.Store
}

func NewResolver(st store.Store) *Resolver {
	return &Resolver{store: st}
}

func (r *Resolver) Resolve(ctx context.Context) (*models.Building, *models.Resident, error) {
	var building models.Building
	err := r.store.FindOne(ctx, "buildings", store.Filter{"is_demo": store.Eq(true)}, &building)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrNoTenant
		}
		return nil, nil, fmt.Errorf("load building: %w", err)
	}
	var resident models.Resident
	err = r.store.FindOne(ctx, "residents", store.Filter{"building_id": store.Eq(building.ID)}, &resident)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrNoTenant
		}
		return nil, nil, fmt.Errorf("load resident: %w", err)
	}
	return &building, &resident, nil
}
