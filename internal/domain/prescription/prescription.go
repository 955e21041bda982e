package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is append-only: once written it is never updated or deleted.
// The authoring doctor's display name and specialization are snapshotted at
// write time so later profile edits don't rewrite history.
type Prescription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	DoctorName     string `gorm:"column:doctor_name;type:varchar(255);not null"`
	Specialization string `gorm:"column:specialization;type:varchar(100);not null"`

	Diagnosis    string `gorm:"column:diagnosis;type:text;not null"`
	Medicines    string `gorm:"column:medicines;type:text;not null"`
	Instructions string `gorm:"column:instructions;type:text"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

type IssuePrescriptionCommand struct {
	PatientID    uuid.UUID
	Diagnosis    string
	Medicines    string
	Instructions string
}

// View joins a prescription with the patient's display name for doctor-side
// listings. A deleted patient degrades to "Unknown".
type View struct {
	Prescription
	PatientName string `json:"patient_name"`
}
