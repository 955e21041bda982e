package appointment

import (
	"time"

	"github.com/google/uuid"
)

// State transitions possibilities:
//
//	pending → accepted (doctor, own appointments only)
//	pending → rejected (doctor, own appointments only)
//	pending | accepted | rejected → cancelled (patient, own record only)
//
// cancelled is terminal, and accepted/rejected never convert into each other.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	Problem     string    `gorm:"column:problem;type:text;not null"`
	ScheduledAt time.Time `gorm:"column:scheduled_at;not null;index"`
	Status      Status    `gorm:"column:status;type:varchar(30);not null;default:'pending';index"`

	// Cancellation tracking
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
	DecidedAt   *time.Time `gorm:"column:decided_at"` // when the doctor accepted/rejected
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) CanTransitionTo(newStatus Status) bool {
	allowed := map[Status][]Status{
		StatusPending:   {StatusAccepted, StatusRejected, StatusCancelled},
		StatusAccepted:  {StatusCancelled},
		StatusRejected:  {StatusCancelled},
		StatusCancelled: {},
	}

	for _, s := range allowed[a.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// Decide applies the doctor's accept/reject decision.
func (a *Appointment) Decide(newStatus Status) error {
	if newStatus != StatusAccepted && newStatus != StatusRejected {
		return ErrInvalidStatus
	}
	if !a.CanTransitionTo(newStatus) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	a.Status = newStatus
	a.DecidedAt = &now
	return nil
}

// Cancel marks the appointment cancelled. Appointments are never hard-deleted.
func (a *Appointment) Cancel() error {
	if !a.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	a.Status = StatusCancelled
	a.CancelledAt = &now
	return nil
}

type BookAppointmentCommand struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Problem   string
	Date      string // "2006-01-02"
	Time      string // "15:04"
}

// View is an appointment joined with display names for listing. Dangling
// user references degrade to "Unknown" rather than failing the page.
type View struct {
	Appointment
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
}
