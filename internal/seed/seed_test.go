package seed

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
)

func TestInit(t *testing.T) {
	st := store.NewMemoryStore()
	s := NewSeeder(st)
	ctx := context.Background()

	require.NoError(t, s.Init(ctx))

	var building models.Building
	require.NoError(t, st.FindOne(ctx, "buildings", store.Filter{"is_demo": store.Eq(true)}, &building))
	require.Equal(t, "Torre Moderna Demo", building.Name)

	areas := []*models.CommonArea{}
	require.NoError(t, st.FindMany(ctx, "common_areas", store.Filter{"building_id": store.Eq(building.ID)}, nil, &areas))
	require.Len(t, areas, 4)

	var gym models.CommonArea
	require.NoError(t, st.FindOne(ctx, "common_areas", store.Filter{"name": store.Eq("Gym")}, &gym))
	require.Equal(t, 25.0, gym.PricePerHour)
	require.Equal(t, "06:00", gym.OpeningTime)
	require.Equal(t, "22:00", gym.ClosingTime)

	payments := []*models.Payment{}
	require.NoError(t, st.FindMany(ctx, "payments", store.Filter{"building_id": store.Eq(building.ID)}, nil, &payments))
	require.Len(t, payments, 3)

	votings := []*models.Voting{}
	require.NoError(t, st.FindMany(ctx, "votings", store.Filter{"status": store.Eq(string(models.VotingActive))}, nil, &votings))
	require.Len(t, votings, 1)
	require.Len(t, votings[0].Options, 3)
}

func TestInit_Idempotent(t *testing.T) {
	st := store.NewMemoryStore()
	s := NewSeeder(st)
	ctx := context.Background()

	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.Init(ctx))

	buildings := []*models.Building{}
	require.NoError(t, st.FindMany(ctx, "buildings", store.Filter{"is_demo": store.Eq(true)}, nil, &buildings))
	require.Len(t, buildings, 1)

	residents := []*models.Resident{}
	require.NoError(t, st.FindMany(ctx, "residents", store.Filter{"building_id": store.Eq(buildings[0].ID)}, nil, &residents))
	require.Len(t, residents, 1)
}

// Concurrent calls must not double-seed: only one may insert the demo
// building, the rest back off on the duplicate key.
func TestInit_Concurrent(t *testing.T) {
	st := store.NewMemoryStore()
	s := NewSeeder(st)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Init(ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	buildings := []*models.Building{}
	require.NoError(t, st.FindMany(ctx, "buildings", store.Filter{"is_demo": store.Eq(true)}, nil, &buildings))
	require.Len(t, buildings, 1)

	areas := []*models.CommonArea{}
	require.NoError(t, st.FindMany(ctx, "common_areas", store.Filter{"building_id": store.Eq(buildings[0].ID)}, nil, &areas))
	require.Len(t, areas, 4)

	payments := []*models.Payment{}
	require.NoError(t, st.FindMany(ctx, "payments", store.Filter{"building_id": store.Eq(buildings[0].ID)}, nil, &payments))
	require.Len(t, payments, 3)
}
