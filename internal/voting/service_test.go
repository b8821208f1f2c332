package voting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
)

func newVotingService(t *testing.T, status models.VotingStatus) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	v := models.Voting{
		ID:         "vt1",
		Title:      "Approve the new children's play area?",
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-08",
		Status:     status,
		Options:    []string{"IN FAVOR", "AGAINST", "ABSTAIN"},
		BuildingID: "b1",
		CreatedBy:  "admin",
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, st.Insert(context.Background(), "votings", v))
	svc, err := NewService(context.Background(), st)
	require.NoError(t, err)
	return svc, st
}

func TestCastVote_Success(t *testing.T) {
	svc, _ := newVotingService(t, models.VotingActive)
	ctx := context.Background()

	vote, err := svc.CastVote(ctx, "vt1", "res1", "IN FAVOR")
	require.NoError(t, err)
	require.Equal(t, "vt1", vote.VotingID)
	require.Equal(t, "res1", vote.ResidentID)
	require.NotEmpty(t, vote.ID)
}

func TestCastVote_AlreadyVoted(t *testing.T) {
	svc, _ := newVotingService(t, models.VotingActive)
	ctx := context.Background()

	_, err := svc.CastVote(ctx, "vt1", "res1", "IN FAVOR")
	require.NoError(t, err)

	// same resident, even with a different option
	_, err = svc.CastVote(ctx, "vt1", "res1", "AGAINST")
	require.ErrorIs(t, err, ErrAlreadyVoted)

	// another resident still votes freely
	_, err = svc.CastVote(ctx, "vt1", "res2", "AGAINST")
	require.NoError(t, err)
}

func TestCastVote_InvalidOption(t *testing.T) {
	for _, status := range []models.VotingStatus{models.VotingDraft, models.VotingActive, models.VotingClosed} {
		t.Run(string(status), func(t *testing.T) {
			svc, _ := newVotingService(t, status)
			_, err := svc.CastVote(context.Background(), "vt1", "res1", "MAYBE")
			require.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestCastVote_NotActive(t *testing.T) {
	for _, status := range []models.VotingStatus{models.VotingDraft, models.VotingClosed} {
		t.Run(string(status), func(t *testing.T) {
			svc, _ := newVotingService(t, status)
			_, err := svc.CastVote(context.Background(), "vt1", "res1", "IN FAVOR")
			require.ErrorIs(t, err, ErrNotActive)
		})
	}
}

func TestCastVote_VotingNotFound(t *testing.T) {
	svc, _ := newVotingService(t, models.VotingActive)
	_, err := svc.CastVote(context.Background(), "missing", "res1", "IN FAVOR")
	require.ErrorIs(t, err, ErrNotFound)
}

// N concurrent identical casts: exactly one ballot is recorded.
func TestCastVote_ConcurrentDuplicates(t *testing.T) {
	svc, st := newVotingService(t, models.VotingActive)
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CastVote(ctx, "vt1", "res1", "IN FAVOR")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrAlreadyVoted)
		}
	}
	require.Equal(t, 1, succeeded)

	votes := []*models.Vote{}
	require.NoError(t, st.FindMany(ctx, "votes", store.Filter{"voting_id": store.Eq("vt1")}, nil, &votes))
	require.Len(t, votes, 1)
}

func TestListActive(t *testing.T) {
	svc, st := newVotingService(t, models.VotingActive)
	ctx := context.Background()

	closed := models.Voting{ID: "vt2", Title: "Old poll", Status: models.VotingClosed, Options: []string{"YES", "NO"}, BuildingID: "b1"}
	otherBuilding := models.Voting{ID: "vt3", Title: "Elsewhere", Status: models.VotingActive, Options: []string{"YES", "NO"}, BuildingID: "b2"}
	require.NoError(t, st.Insert(ctx, "votings", closed))
	require.NoError(t, st.Insert(ctx, "votings", otherBuilding))

	list, err := svc.ListActive(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "vt1", list[0].ID)
}

func TestResults(t *testing.T) {
	svc, _ := newVotingService(t, models.VotingActive)
	ctx := context.Background()

	for i, opt := range []string{"IN FAVOR", "IN FAVOR", "AGAINST"} {
		_, err := svc.CastVote(ctx, "vt1", string(rune('a'+i)), opt)
		require.NoError(t, err)
	}

	counts, total, err := svc.Results(ctx, "vt1")
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []OptionCount{
		{Option: "IN FAVOR", Count: 2},
		{Option: "AGAINST", Count: 1},
		{Option: "ABSTAIN", Count: 0},
	}, counts)

	_, _, err = svc.Results(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
