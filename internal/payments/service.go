package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
)

// PaymentWithConcept joins a payment with its concept for the API response.
// Concept is nil when the referenced concept no longer exists.
type PaymentWithConcept struct {
	models.Payment
	Concept *models.PaymentConcept `json:"concept"`
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns a resident's payments, each with its concept attached.
func (s *Service) List(ctx context.Context, residentID string) ([]*PaymentWithConcept, error) {
	raw := []*models.Payment{}
	if err := s.store.FindMany(ctx, "payments", store.Filter{"resident_id": store.Eq(residentID)}, nil, &raw); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]*PaymentWithConcept, 0, len(raw))
	for _, p := range raw {
		item := &PaymentWithConcept{Payment: *p}
		var concept models.PaymentConcept
		err := s.store.FindOne(ctx, "payment_concepts", store.Filter{"id": store.Eq(p.ConceptID)}, &concept)
		if err == nil {
			item.Concept = &concept
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("load concept: %w", err)
		}
		out = append(out, item)
	}
	return out, nil
}
