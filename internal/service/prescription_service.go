package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/appointment"
	"github.com/aegiscare/hms/internal/domain/prescription"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrescriptionService issues and lists prescriptions. Records are append
// only: there is no update or delete path.
type PrescriptionService struct {
	repo     prescription.Repository
	apptRepo appointment.Repository
	userRepo UserRepository
	log      *zap.Logger
}

func NewPrescriptionService(
	repo prescription.Repository,
	apptRepo appointment.Repository,
	userRepo UserRepository,
	log *zap.Logger,
) *PrescriptionService {
	return &PrescriptionService{repo: repo, apptRepo: apptRepo, userRepo: userRepo, log: log}
}

// Issue writes a prescription from the calling doctor to the named patient.
// The doctor must have at least one accepted appointment with that patient;
// doctor name and specialization are snapshotted from the caller.
func (s *PrescriptionService) Issue(ctx context.Context, p *domain.Principal, cmd *prescription.IssuePrescriptionCommand) (*prescription.Prescription, error) {
	if !p.HasRole(domain.RoleDoctor) {
		return nil, ErrForbidden
	}

	var errs []string
	if strings.TrimSpace(cmd.Diagnosis) == "" {
		errs = append(errs, "diagnosis is required")
	}
	if strings.TrimSpace(cmd.Medicines) == "" {
		errs = append(errs, "medicines are required")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	accepted, err := s.apptRepo.HasAccepted(ctx, p.UserID, cmd.PatientID)
	if err != nil {
		return nil, fmt.Errorf("checking consultation context: %w", err)
	}
	if !accepted {
		return nil, prescription.ErrNoAcceptedContext
	}

	rx := &prescription.Prescription{
		PatientID:      cmd.PatientID,
		DoctorID:       p.UserID,
		DoctorName:     p.Profile.FirstName + " " + p.Profile.LastName,
		Specialization: p.Profile.Specialization,
		Diagnosis:      strings.TrimSpace(cmd.Diagnosis),
		Medicines:      strings.TrimSpace(cmd.Medicines),
		Instructions:   strings.TrimSpace(cmd.Instructions),
	}
	if strings.TrimSpace(rx.DoctorName) == "" {
		rx.DoctorName = p.Username
	}

	if err := s.repo.Create(ctx, rx); err != nil {
		s.log.Error("failed to issue prescription", zap.Error(err))
		return nil, fmt.Errorf("issuing prescription: %w", err)
	}

	s.log.Info("prescription issued",
		zap.String("prescription_id", rx.ID.String()),
		zap.String("doctor_id", p.UserID.String()),
		zap.String("patient_id", cmd.PatientID.String()),
	)

	return rx, nil
}

// ListForPatient returns the caller's prescriptions, newest first.
func (s *PrescriptionService) ListForPatient(ctx context.Context, p *domain.Principal) ([]*prescription.Prescription, error) {
	if !p.HasRole(domain.RolePatient) {
		return nil, ErrForbidden
	}
	rxs, err := s.repo.ListByPatient(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}
	return rxs, nil
}

// ListForDoctor returns the prescriptions the calling doctor has issued,
// with patient names resolved. Dangling patient references degrade to
// "Unknown".
func (s *PrescriptionService) ListForDoctor(ctx context.Context, p *domain.Principal) ([]*prescription.View, error) {
	if !p.HasRole(domain.RoleDoctor) {
		return nil, ErrForbidden
	}

	rxs, err := s.repo.ListByDoctor(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(rxs))
	for _, rx := range rxs {
		ids = append(ids, rx.PatientID)
	}
	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving patients: %w", err)
	}

	views := make([]*prescription.View, 0, len(rxs))
	for _, rx := range rxs {
		name := unknownUserName
		if u, ok := users[rx.PatientID]; ok {
			name = u.DisplayName()
		}
		views = append(views, &prescription.View{Prescription: *rx, PatientName: name})
	}
	return views, nil
}
