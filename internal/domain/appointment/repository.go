package appointment

import (
	"context"

	"github.com/aegiscare/hms/internal/domain/billing"
	"github.com/google/uuid"
)

type Repository interface {
	// BookWithBill inserts the appointment and its consultation bill in a
	// single database transaction. Either both records exist afterwards or
	// neither does.
	BookWithBill(ctx context.Context, a *Appointment, b *billing.Bill) error

	// GetByID returns ErrAppointmentNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// UpdateStatus persists the status fields of an already-transitioned
	// appointment.
	UpdateStatus(ctx context.Context, a *Appointment) error

	// ListByPatient returns the patient's appointments sorted by scheduled time.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)

	// ListByDoctor returns the doctor's appointments sorted by scheduled time.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error)

	// HasAccepted reports whether the doctor has at least one accepted
	// appointment with the patient.
	HasAccepted(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error)

	// CountAll is used by the admin dashboard.
	CountAll(ctx context.Context) (int64, error)
}
