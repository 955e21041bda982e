package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/billing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillingService exposes a patient's bills and the payment acknowledgement.
// Bills are created by the booking cascade, never here.
type BillingService struct {
	repo billing.Repository
	log  *zap.Logger
}

func NewBillingService(repo billing.Repository, log *zap.Logger) *BillingService {
	return &BillingService{repo: repo, log: log}
}

// ListForPatient returns the caller's bills, newest first.
func (s *BillingService) ListForPatient(ctx context.Context, p *domain.Principal) ([]*billing.Bill, error) {
	if !p.HasRole(domain.RolePatient) {
		return nil, ErrForbidden
	}
	bills, err := s.repo.ListByPatient(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	return bills, nil
}

// Pay marks the caller's bill as paid. Paying a bill that is already paid is
// a no-op so a double-submitted payment form cannot fail.
func (s *BillingService) Pay(ctx context.Context, p *domain.Principal, billID uuid.UUID) (*billing.Bill, error) {
	if !p.HasRole(domain.RolePatient) {
		return nil, ErrForbidden
	}

	bill, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.PatientID != p.UserID {
		return nil, ErrForbidden
	}

	if err := bill.MarkPaid(); err != nil {
		if errors.Is(err, billing.ErrAlreadyPaid) {
			return bill, nil
		}
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, bill); err != nil {
		return nil, fmt.Errorf("updating bill status: %w", err)
	}

	s.log.Info("bill paid",
		zap.String("bill_id", bill.ID.String()),
		zap.String("patient_id", p.UserID.String()),
		zap.Int64("amount", bill.Amount),
	)

	return bill, nil
}
