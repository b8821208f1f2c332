package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/store"
)

// Seeder writes the demo dataset: one building, its users and resident, common
// areas, payment concepts, payments, a voting, reservations and incidents.
type Seeder struct {
	store store.Store
}

func NewSeeder(st store.Store) *Seeder {
	return &Seeder{store: st}
}

// Init seeds the demo data. Idempotent: a no-op when the demo building already
// exists. The unique index on the demo marker makes concurrent calls safe; the
// loser of the insert race backs off without writing anything else.
func (s *Seeder) Init(ctx context.Context) error {
	if err := s.store.EnsureUniqueIndex(ctx, "buildings", "is_demo"); err != nil {
		return fmt.Errorf("ensure buildings index: %w", err)
	}

	var existing models.Building
	err := s.store.FindOne(ctx, "buildings", store.Filter{"is_demo": store.Eq(true)}, &existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check demo building: %w", err)
	}

	now := time.Now().UTC()
	day := 24 * time.Hour
	date := func(t time.Time) string { return t.Format("2006-01-02") }

	building := models.Building{
		ID:         uuid.NewString(),
		Name:       "Torre Moderna Demo",
		Address:    "Av. Principal 123, Lima",
		TotalUnits: 20,
		IsDemo:     true,
		CreatedAt:  now,
	}
	if err := s.store.Insert(ctx, "buildings", building); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil
		}
		return fmt.Errorf("seed building: %w", err)
	}

	users := []models.User{
		{ID: uuid.NewString(), Username: "resident_demo", Email: "resident@demo.com", Role: models.RoleResident, IsActive: true, BuildingID: building.ID, CreatedAt: now},
		{ID: uuid.NewString(), Username: "admin_demo", Email: "admin@demo.com", Role: models.RoleAdmin, IsActive: true, BuildingID: building.ID, CreatedAt: now},
		{ID: uuid.NewString(), Username: "provider_demo", Email: "provider@demo.com", Role: models.RoleProvider, IsActive: true, BuildingID: building.ID, CreatedAt: now},
	}
	for _, u := range users {
		if err := s.store.Insert(ctx, "users", u); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}

	resident := models.Resident{
		ID:         uuid.NewString(),
		UserID:     users[0].ID,
		FirstName:  "Juan",
		LastName:   "Pérez",
		Phone:      "+51 999 888 777",
		UnitNumber: "301",
		BuildingID: building.ID,
	}
	if err := s.store.Insert(ctx, "residents", resident); err != nil {
		return fmt.Errorf("seed resident: %w", err)
	}

	properties := []models.Property{
		{ID: uuid.NewString(), UnitNumber: "301", Floor: 3, AreaM2: 85.5, PropertyValue: 350000.0, BuildingID: building.ID, ResidentID: resident.ID},
		{ID: uuid.NewString(), UnitNumber: "405", Floor: 4, AreaM2: 92.0, PropertyValue: 380000.0, BuildingID: building.ID},
		{ID: uuid.NewString(), UnitNumber: "202", Floor: 2, AreaM2: 78.25, PropertyValue: 320000.0, BuildingID: building.ID},
	}
	for _, p := range properties {
		if err := s.store.Insert(ctx, "properties", p); err != nil {
			return fmt.Errorf("seed property: %w", err)
		}
	}

	areas := []models.CommonArea{
		{ID: uuid.NewString(), Name: "Gym", Description: "Fully equipped gym", Capacity: 15, PricePerHour: 25.0, OpeningTime: "06:00", ClosingTime: "22:00", BuildingID: building.ID, IsActive: true},
		{ID: uuid.NewString(), Name: "Pool", Description: "Heated pool for adults", Capacity: 30, PricePerHour: 40.0, OpeningTime: "08:00", ClosingTime: "20:00", BuildingID: building.ID, IsActive: true},
		{ID: uuid.NewString(), Name: "Social Hall", Description: "Hall for events and meetings", Capacity: 50, PricePerHour: 60.0, OpeningTime: "09:00", ClosingTime: "23:00", BuildingID: building.ID, IsActive: true},
		{ID: uuid.NewString(), Name: "Co-working", Description: "Shared workspace", Capacity: 12, PricePerHour: 15.0, OpeningTime: "07:00", ClosingTime: "21:00", BuildingID: building.ID, IsActive: true},
	}
	for _, a := range areas {
		if err := s.store.Insert(ctx, "common_areas", a); err != nil {
			return fmt.Errorf("seed common area: %w", err)
		}
	}

	concepts := []models.PaymentConcept{
		{ID: uuid.NewString(), Name: "Maintenance", Description: "Monthly maintenance fee", BaseAmount: 280.0, Frequency: "MONTHLY", IsMandatory: true, BuildingID: building.ID},
		{ID: uuid.NewString(), Name: "Water", Description: "Drinking water service", BaseAmount: 45.0, IsVariable: true, Frequency: "MONTHLY", IsMandatory: true, BuildingID: building.ID},
		{ID: uuid.NewString(), Name: "Common electricity", Description: "Electricity for common areas", BaseAmount: 35.0, IsVariable: true, Frequency: "MONTHLY", IsMandatory: true, BuildingID: building.ID},
		{ID: uuid.NewString(), Name: "Security", Description: "24/7 security service", BaseAmount: 120.0, Frequency: "MONTHLY", IsMandatory: true, BuildingID: building.ID},
	}
	for _, c := range concepts {
		if err := s.store.Insert(ctx, "payment_concepts", c); err != nil {
			return fmt.Errorf("seed payment concept: %w", err)
		}
	}

	payments := []models.Payment{
		{ID: uuid.NewString(), ResidentID: resident.ID, ConceptID: concepts[0].ID, Amount: 280.0, DueDate: date(now.Add(5 * day)), Status: models.PaymentPending, BuildingID: building.ID, CreatedAt: now},
		{ID: uuid.NewString(), ResidentID: resident.ID, ConceptID: concepts[1].ID, Amount: 52.30, DueDate: date(now.Add(-2 * day)), Status: models.PaymentOverdue, BuildingID: building.ID, CreatedAt: now},
		{ID: uuid.NewString(), ResidentID: resident.ID, ConceptID: concepts[2].ID, Amount: 38.50, DueDate: date(now.Add(-30 * day)), Status: models.PaymentPaid, PaidDate: date(now.Add(-25 * day)), BuildingID: building.ID, CreatedAt: now},
	}
	for _, p := range payments {
		if err := s.store.Insert(ctx, "payments", p); err != nil {
			return fmt.Errorf("seed payment: %w", err)
		}
	}

	voting := models.Voting{
		ID:          uuid.NewString(),
		Title:       "Approve the new children's play area?",
		Description: "Proposal to build a play area for children on the building rooftop. Estimated investment around S/ 15,000.",
		StartDate:   date(now),
		EndDate:     date(now.Add(7 * day)),
		Status:      models.VotingActive,
		Options:     []string{"IN FAVOR", "AGAINST", "ABSTAIN"},
		BuildingID:  building.ID,
		CreatedBy:   users[1].ID,
		CreatedAt:   now,
	}
	if err := s.store.Insert(ctx, "votings", voting); err != nil {
		return fmt.Errorf("seed voting: %w", err)
	}

	tomorrow := now.Add(day)
	reservations := []models.Reservation{
		{ID: uuid.NewString(), CommonAreaID: areas[0].ID, ResidentID: resident.ID, Date: date(tomorrow), StartTime: "19:00", EndTime: "21:00", Status: models.ReservationConfirmed, TotalCost: 50.0, CreatedAt: now},
		{ID: uuid.NewString(), CommonAreaID: areas[1].ID, ResidentID: resident.ID, Date: date(tomorrow.Add(2 * day)), StartTime: "15:00", EndTime: "17:00", Status: models.ReservationConfirmed, TotalCost: 80.0, CreatedAt: now},
	}
	for _, r := range reservations {
		if err := s.store.Insert(ctx, "reservations", r); err != nil {
			return fmt.Errorf("seed reservation: %w", err)
		}
	}

	incidents := []models.Incident{
		{ID: uuid.NewString(), Title: "Water leak in the lobby", Description: "Water leak reported in the main lobby near the elevators.", Category: "Plumbing", Priority: models.PriorityHigh, Status: models.IncidentInProgress, ReportedBy: resident.ID, BuildingID: building.ID, Images: []string{}, CreatedAt: now},
		{ID: uuid.NewString(), Title: "Parking light not working", Description: "The light in sector B of the underground parking has been out for 2 days.", Category: "Electricity", Priority: models.PriorityMedium, Status: models.IncidentOpen, ReportedBy: resident.ID, BuildingID: building.ID, Images: []string{}, CreatedAt: now.Add(-time.Hour)},
	}
	for _, i := range incidents {
		if err := s.store.Insert(ctx, "incidents", i); err != nil {
			return fmt.Errorf("seed incident: %w", err)
		}
	}

	return nil
}
