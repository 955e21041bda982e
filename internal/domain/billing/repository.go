package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// GetByID returns ErrBillNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)

	// UpdateStatus persists the status fields of a transitioned bill.
	UpdateStatus(ctx context.Context, b *Bill) error

	// ListByPatient returns the patient's bills, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Bill, error)

	// MonthlyRevenue sums bill amounts grouped by (year, month) of the bill
	// date, ascending. An empty result is valid (empty-period business).
	MonthlyRevenue(ctx context.Context) ([]RevenuePoint, error)
}
