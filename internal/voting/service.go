package voting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
	"github.com/adminedificios/backend/pkg/metrics"
)

var (
	ErrNotFound      = errors.New("voting not found")
	ErrNotActive     = errors.New("voting is not active")
	ErrInvalidOption = errors.New("option is not part of this voting")
	ErrAlreadyVoted  = errors.New("resident already voted in this voting")
)

// Service is the vote ledger: it lists votings and records at most one ballot
// per (voting, resident). Uniqueness is enforced by the store's unique index
// on that pair, so concurrent identical casts race on the insert, not on a
// read.
type Service struct {
	store store.Store
}

// NewService ensures the votes uniqueness index exists before returning. The
// index is what closes the duplicate-ballot race; failing to create it is
// fatal.
func NewService(ctx context.Context, st store.Store) (*Service, error) {
	if err := st.EnsureUniqueIndex(ctx, "votes", "voting_id", "resident_id"); err != nil {
		return nil, fmt.Errorf("ensure votes index: %w", err)
	}
	return &Service{store: st}, nil
}

// ListActive returns the ACTIVE votings for a building.
func (s *Service) ListActive(ctx context.Context, buildingID string) ([]*models.Voting, error) {
	out := []*models.Voting{}
	err := s.store.FindMany(ctx, "votings", store.Filter{
		"building_id": store.Eq(buildingID),
		"status":      store.Eq(string(models.VotingActive)),
	}, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list votings: %w", err)
	}
	return out, nil
}

// CastVote records one ballot. Option membership is checked before status so
// an unknown option is always ErrInvalidOption regardless of voting state.
func (s *Service) CastVote(ctx context.Context, votingID, residentID, option string) (*models.Vote, error) {
	var v models.Voting
	err := s.store.FindOne(ctx, "votings", store.Filter{"id": store.Eq(votingID)}, &v)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load voting: %w", err)
	}

	valid := false
	for _, opt := range v.Options {
		if opt == option {
			valid = true
			break
		}
	}
	if !valid {
		metrics.VotesRejected.WithLabelValues("invalid_option").Inc()
		return nil, ErrInvalidOption
	}
	if v.Status != models.VotingActive {
		metrics.VotesRejected.WithLabelValues("not_active").Inc()
		return nil, ErrNotActive
	}

	vote := &models.Vote{
		ID:         uuid.NewString(),
		VotingID:   votingID,
		ResidentID: residentID,
		Option:     option,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, "votes", vote); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			metrics.VotesRejected.WithLabelValues("already_voted").Inc()
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("insert vote: %w", err)
	}
	metrics.VotesCast.Inc()
	return vote, nil
}

// OptionCount is one row of a results tally, in the voting's option order.
type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// Results tallies recorded ballots per option.
func (s *Service) Results(ctx context.Context, votingID string) ([]OptionCount, int, error) {
	var v models.Voting
	err := s.store.FindOne(ctx, "votings", store.Filter{"id": store.Eq(votingID)}, &v)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("load voting: %w", err)
	}
	votes := []*models.Vote{}
	if err := s.store.FindMany(ctx, "votes", store.Filter{"voting_id": store.Eq(votingID)}, nil, &votes); err != nil {
		return nil, 0, fmt.Errorf("list votes: %w", err)
	}
	counts := make(map[string]int, len(v.Options))
	for _, vote := range votes {
		counts[vote.Option]++
	}
	out := make([]OptionCount, 0, len(v.Options))
	for _, opt := range v.Options {
		out = append(out, OptionCount{Option: opt, Count: counts[opt]})
	}
	return out, len(votes), nil
}
