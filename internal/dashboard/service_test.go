package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
)

func seedDashboard(t *testing.T, st *store.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, st.Insert(ctx, "residents", models.Resident{
		ID: "res1", UserID: "u1", FirstName: "Juan", LastName: "Pérez", UnitNumber: "301", BuildingID: "b1",
	}))

	payments := []models.Payment{
		{ID: "p1", ResidentID: "res1", Amount: 280.0, Status: models.PaymentPending, BuildingID: "b1"},
		{ID: "p2", ResidentID: "res1", Amount: 52.30, Status: models.PaymentOverdue, BuildingID: "b1"},
		{ID: "p3", ResidentID: "res1", Amount: 38.50, Status: models.PaymentPaid, BuildingID: "b1"},
		{ID: "p4", ResidentID: "res2", Amount: 999.0, Status: models.PaymentPending, BuildingID: "b1"},
	}
	for _, p := range payments {
		require.NoError(t, st.Insert(ctx, "payments", p))
	}

	reservations := []models.Reservation{
		{ID: "r-future-late", ResidentID: "res1", CommonAreaID: "a1", Date: "2099-05-02", StartTime: "10:00", EndTime: "11:00", Status: models.ReservationConfirmed},
		{ID: "r-future-early", ResidentID: "res1", CommonAreaID: "a1", Date: "2099-05-01", StartTime: "09:00", EndTime: "10:00", Status: models.ReservationConfirmed},
		{ID: "r-future-same-day", ResidentID: "res1", CommonAreaID: "a1", Date: "2099-05-01", StartTime: "18:00", EndTime: "19:00", Status: models.ReservationConfirmed},
		{ID: "r-past", ResidentID: "res1", CommonAreaID: "a1", Date: "2000-01-01", StartTime: "10:00", EndTime: "11:00", Status: models.ReservationConfirmed},
		{ID: "r-cancelled", ResidentID: "res1", CommonAreaID: "a1", Date: "2099-05-03", StartTime: "10:00", EndTime: "11:00", Status: models.ReservationCancelled},
	}
	for _, r := range reservations {
		require.NoError(t, st.Insert(ctx, "reservations", r))
	}

	votings := []models.Voting{
		{ID: "vt1", Title: "Active here", Status: models.VotingActive, BuildingID: "b1", Options: []string{"YES", "NO"}},
		{ID: "vt2", Title: "Closed", Status: models.VotingClosed, BuildingID: "b1", Options: []string{"YES", "NO"}},
		{ID: "vt3", Title: "Other building", Status: models.VotingActive, BuildingID: "b2", Options: []string{"YES", "NO"}},
	}
	for _, v := range votings {
		require.NoError(t, st.Insert(ctx, "votings", v))
	}

	for i := 0; i < 7; i++ {
		require.NoError(t, st.Insert(ctx, "incidents", models.Incident{
			ID: "i" + string(rune('0'+i)), Title: "Incident", ReportedBy: "res1", BuildingID: "b1",
			Status: models.IncidentOpen, Priority: models.PriorityLow,
			CreatedAt: now.Add(time.Duration(i) * time.Hour),
		}))
	}
}

func TestBuild(t *testing.T) {
	st := store.NewMemoryStore()
	seedDashboard(t, st)
	svc := NewService(st)

	view, err := svc.Build(context.Background(), "b1", "res1", "2026-09-01")
	require.NoError(t, err)

	require.Equal(t, "Juan", view.Resident.FirstName)

	// totals equal the sums of matching payment amounts
	require.Equal(t, 1, view.PaymentsSummary.PendingCount)
	require.Equal(t, 280.0, view.PaymentsSummary.PendingTotal)
	require.Equal(t, 1, view.PaymentsSummary.OverdueCount)
	require.Equal(t, 52.30, view.PaymentsSummary.OverdueTotal)

	// upcoming CONFIRMED only, date asc then start time asc
	ids := []string{}
	for _, r := range view.UpcomingReservations {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"r-future-early", "r-future-same-day", "r-future-late"}, ids)

	require.Len(t, view.ActiveVotings, 1)
	require.Equal(t, "vt1", view.ActiveVotings[0].ID)

	// capped at the 5 most recent, newest first
	require.Len(t, view.RecentIncidents, 5)
	require.Equal(t, "i6", view.RecentIncidents[0].ID)
	require.Equal(t, "i2", view.RecentIncidents[4].ID)
}

func TestBuild_UnknownResident(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	_, err := svc.Build(context.Background(), "b1", "ghost", "2026-09-01")
	require.ErrorIs(t, err, ErrResidentNotFound)
}
