package records

import (
	"time"

	"github.com/google/uuid"

	"github.com/nsitapara/stellarcare/pkg/types"
)

// VisitType is the modality of an appointment.
type VisitType string

const (
	VisitInPerson   VisitType = "In-Person"
	VisitTelehealth VisitType = "Telehealth"
)

// VisitStatus tracks the lifecycle of an appointment.
type VisitStatus string

const (
	VisitScheduled VisitStatus = "Scheduled"
	VisitCompleted VisitStatus = "Completed"
	VisitCancelled VisitStatus = "Cancelled"
	VisitNoShow    VisitStatus = "No-Show"
)

// SleepStudy is a diagnostic sleep study report.
type SleepStudy struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Date            types.Date `db:"date" json:"date"`
	AHI             float64    `db:"ahi" json:"ahi"`
	SleepEfficiency float64    `db:"sleep_efficiency" json:"sleep_efficiency"`
	REMLatency      float64    `db:"rem_latency" json:"rem_latency"`
	Notes           *string    `db:"notes" json:"notes"`
	FileURL         *string    `db:"file_url" json:"file_url"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	ModifiedAt      time.Time  `db:"modified_at" json:"modified_at"`
}

// Treatment is a prescribed therapy or medication course.
type Treatment struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	Name       string      `db:"name" json:"name"`
	Type       string      `db:"type" json:"type"`
	Dosage     string      `db:"dosage" json:"dosage"`
	Frequency  string      `db:"frequency" json:"frequency"`
	StartDate  types.Date  `db:"start_date" json:"start_date"`
	EndDate    *types.Date `db:"end_date" json:"end_date"`
	Notes      *string     `db:"notes" json:"notes"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	ModifiedAt time.Time   `db:"modified_at" json:"modified_at"`
}

// Insurance is a coverage policy record. Policies can be attached to more
// than one patient (family plans), so deleting a patient never deletes the
// policy itself.
type Insurance struct {
	ID                  uuid.UUID   `db:"id" json:"id"`
	Provider            string      `db:"provider" json:"provider"`
	PolicyNumber        string      `db:"policy_number" json:"policy_number"`
	GroupNumber         string      `db:"group_number" json:"group_number"`
	PrimaryHolder       string      `db:"primary_holder" json:"primary_holder"`
	Relationship        string      `db:"relationship" json:"relationship"`
	AuthorizationStatus *string     `db:"authorization_status" json:"authorization_status"`
	AuthorizationExpiry *types.Date `db:"authorization_expiry" json:"authorization_expiry"`
	CreatedAt           time.Time   `db:"created_at" json:"created_at"`
	ModifiedAt          time.Time   `db:"modified_at" json:"modified_at"`
}

// Visit is a scheduled or past appointment. Time is the clock time of day
// in HH:MM:SS form, kept separate from the date as the schedulers expect.
type Visit struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	Date       types.Date  `db:"date" json:"date"`
	Time       string      `db:"time" json:"time"`
	Type       VisitType   `db:"type" json:"type"`
	Status     VisitStatus `db:"status" json:"status"`
	Notes      *string     `db:"notes" json:"notes"`
	ZoomLink   *string     `db:"zoom_link" json:"zoom_link"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	ModifiedAt time.Time   `db:"modified_at" json:"modified_at"`
}
