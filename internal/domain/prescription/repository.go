package prescription

import (
	"context"

	"github.com/google/uuid"
)

// Repository exposes no update or delete: prescriptions are append-only.
type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)

	// ListByPatient returns the patient's prescriptions, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error)

	// ListByDoctor returns prescriptions authored by the doctor, newest first.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Prescription, error)
}
