package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	// Status values keep the legacy capitalization; they are compared
	// verbatim in the store.
	StatusUnpaid Status = "Unpaid"
	StatusPaid   Status = "Paid"
)

// Bill is created as a cascade of booking an appointment (1:1 at creation)
// and can only ever move Unpaid → Paid, triggered by the owning patient.
type Bill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	// DoctorName is snapshotted at creation so the bill stays readable
	// even if the doctor's account is later deleted.
	DoctorName string `gorm:"column:doctor_name;type:varchar(255);not null"`

	Amount      int64  `gorm:"column:amount;not null"`
	Status      Status `gorm:"column:status;type:varchar(20);not null;default:'Unpaid';index"`
	Description string `gorm:"column:description;type:text"`

	Date                time.Time  `gorm:"column:date;not null;index"`
	AppointmentDateTime time.Time  `gorm:"column:appointment_datetime"`
	PaidAt              *time.Time `gorm:"column:paid_at"`
}

func (Bill) TableName() string {
	return "billing"
}

// MarkPaid transitions Unpaid → Paid. Returns ErrAlreadyPaid when the bill
// was settled before; callers treat that as a no-op, never a double charge.
func (b *Bill) MarkPaid() error {
	if b.Status == StatusPaid {
		return ErrAlreadyPaid
	}
	now := time.Now()
	b.Status = StatusPaid
	b.PaidAt = &now
	return nil
}

// RevenuePoint is one (year, month) bucket of the revenue aggregation.
type RevenuePoint struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Total int64 `json:"total"`
}

// Label renders the bucket as "YYYY-MM".
func (r RevenuePoint) Label() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}
