package models

import "time"

// Status enums. Persisted as plain strings so documents stay readable in the store.

type UserRole string

const (
	RoleResident UserRole = "RESIDENT"
	RoleAdmin    UserRole = "ADMIN"
	RoleProvider UserRole = "PROVIDER"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentOverdue PaymentStatus = "OVERDUE"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationPending   ReservationStatus = "PENDING"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

type VotingStatus string

const (
	VotingDraft  VotingStatus = "DRAFT"
	VotingActive VotingStatus = "ACTIVE"
	VotingClosed VotingStatus = "CLOSED"
)

type IncidentStatus string

const (
	IncidentOpen       IncidentStatus = "OPEN"
	IncidentInProgress IncidentStatus = "IN_PROGRESS"
	IncidentResolved   IncidentStatus = "RESOLVED"
	IncidentClosed     IncidentStatus = "CLOSED"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Building is the tenancy root; every other record points back at one.
type Building struct {
	ID         string    `json:"id" bson:"id"`
	Name       string    `json:"name" bson:"name"`
	Address    string    `json:"address" bson:"address"`
	TotalUnits int       `json:"total_units" bson:"total_units"`
	IsDemo     bool      `json:"is_demo" bson:"is_demo"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type User struct {
	ID         string    `json:"id" bson:"id"`
	Username   string    `json:"username" bson:"username"`
	Email      string    `json:"email" bson:"email"`
	Role       UserRole  `json:"role" bson:"role"`
	IsActive   bool      `json:"is_active" bson:"is_active"`
	BuildingID string    `json:"building_id" bson:"building_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type Resident struct {
	ID         string `json:"id" bson:"id"`
	UserID     string `json:"user_id" bson:"user_id"`
	FirstName  string `json:"first_name" bson:"first_name"`
	LastName   string `json:"last_name" bson:"last_name"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
	UnitNumber string `json:"unit_number" bson:"unit_number"`
	BuildingID string `json:"building_id" bson:"building_id"`
}

type Property struct {
	ID            string  `json:"id" bson:"id"`
	UnitNumber    string  `json:"unit_number" bson:"unit_number"`
	Floor         int     `json:"floor" bson:"floor"`
	AreaM2        float64 `json:"area_m2" bson:"area_m2"`
	PropertyValue float64 `json:"property_value" bson:"property_value"`
	BuildingID    string  `json:"building_id" bson:"building_id"`
	ResidentID    string  `json:"resident_id,omitempty" bson:"resident_id,omitempty"`
}

// CommonArea is a bookable resource. OpeningTime/ClosingTime are zero-padded
// "HH:MM" wall-clock strings; opening < closing.
type CommonArea struct {
	ID           string  `json:"id" bson:"id"`
	Name         string  `json:"name" bson:"name"`
	Description  string  `json:"description" bson:"description"`
	Capacity     int     `json:"capacity" bson:"capacity"`
	PricePerHour float64 `json:"price_per_hour" bson:"price_per_hour"`
	OpeningTime  string  `json:"opening_time" bson:"opening_time"`
	ClosingTime  string  `json:"closing_time" bson:"closing_time"`
	BuildingID   string  `json:"building_id" bson:"building_id"`
	IsActive     bool    `json:"is_active" bson:"is_active"`
}

// Reservation holds a half-open [StartTime, EndTime) slot on a common area for
// one calendar date. Date is "YYYY-MM-DD", times are "HH:MM"; both formats are
// zero-padded so lexicographic comparison matches chronological order.
type Reservation struct {
	ID           string            `json:"id" bson:"id"`
	CommonAreaID string            `json:"common_area_id" bson:"common_area_id"`
	ResidentID   string            `json:"resident_id" bson:"resident_id"`
	Date         string            `json:"date" bson:"date"`
	StartTime    string            `json:"start_time" bson:"start_time"`
	EndTime      string            `json:"end_time" bson:"end_time"`
	Status       ReservationStatus `json:"status" bson:"status"`
	TotalCost    float64           `json:"total_cost" bson:"total_cost"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
}

type PaymentConcept struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description" bson:"description"`
	BaseAmount  float64 `json:"base_amount" bson:"base_amount"`
	IsVariable  bool    `json:"is_variable" bson:"is_variable"`
	Frequency   string  `json:"frequency" bson:"frequency"`
	IsMandatory bool    `json:"is_mandatory" bson:"is_mandatory"`
	BuildingID  string  `json:"building_id" bson:"building_id"`
}

type Payment struct {
	ID         string        `json:"id" bson:"id"`
	ResidentID string        `json:"resident_id" bson:"resident_id"`
	ConceptID  string        `json:"concept_id" bson:"concept_id"`
	Amount     float64       `json:"amount" bson:"amount"`
	DueDate    string        `json:"due_date" bson:"due_date"`
	Status     PaymentStatus `json:"status" bson:"status"`
	PaidDate   string        `json:"paid_date,omitempty" bson:"paid_date,omitempty"`
	BuildingID string        `json:"building_id" bson:"building_id"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
}

// Voting options are unique within a voting; order is presentation order.
type Voting struct {
	ID          string       `json:"id" bson:"id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	StartDate   string       `json:"start_date" bson:"start_date"`
	EndDate     string       `json:"end_date" bson:"end_date"`
	Status      VotingStatus `json:"status" bson:"status"`
	Options     []string     `json:"options" bson:"options"`
	BuildingID  string       `json:"building_id" bson:"building_id"`
	CreatedBy   string       `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
}

// Vote is one resident's ballot. (VotingID, ResidentID) is unique.
type Vote struct {
	ID         string    `json:"id" bson:"id"`
	VotingID   string    `json:"voting_id" bson:"voting_id"`
	ResidentID string    `json:"resident_id" bson:"resident_id"`
	Option     string    `json:"option" bson:"option"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type Incident struct {
	ID          string         `json:"id" bson:"id"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description" bson:"description"`
	Category    string         `json:"category" bson:"category"`
	Priority    Priority       `json:"priority" bson:"priority"`
	Status      IncidentStatus `json:"status" bson:"status"`
	ReportedBy  string         `json:"reported_by" bson:"reported_by"`
	BuildingID  string         `json:"building_id" bson:"building_id"`
	Images      []string       `json:"images" bson:"images"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
}
