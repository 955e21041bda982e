package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/appointment"
	"github.com/aegiscare/hms/internal/domain/billing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const unknownUserName = "Unknown"

// AppointmentService owns the booking workflow: a booking atomically creates
// the pending appointment plus its unpaid consultation bill, doctors decide
// pending appointments, and patients may cancel their own.
type AppointmentService struct {
	repo            appointment.Repository
	userRepo        UserRepository
	consultationFee int64
	log             *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	userRepo UserRepository,
	consultationFee int64,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:            repo,
		userRepo:        userRepo,
		consultationFee: consultationFee,
		log:             log,
	}
}

// BookingResult carries the stored appointment, the bill created alongside
// it, and the specialist suggested for the stated problem.
type BookingResult struct {
	Appointment         *appointment.Appointment
	Bill                *billing.Bill
	SuggestedSpecialist string
}

// Book creates a pending appointment for the calling patient together with
// its unpaid consultation bill. Either both records are stored or neither is.
func (s *AppointmentService) Book(ctx context.Context, p *domain.Principal, cmd *appointment.BookAppointmentCommand) (*BookingResult, error) {
	if !p.HasRole(domain.RolePatient) {
		return nil, ErrForbidden
	}

	if strings.TrimSpace(cmd.Problem) == "" {
		return nil, &ValidationError{Fields: []string{"problem is required"}}
	}

	scheduledAt, err := time.Parse("2006-01-02T15:04", cmd.Date+"T"+cmd.Time)
	if err != nil {
		return nil, appointment.ErrInvalidDateTime
	}

	doctor, err := s.userRepo.GetByID(ctx, cmd.DoctorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, &ValidationError{Fields: []string{"doctor is unknown"}}
		}
		return nil, fmt.Errorf("resolving doctor: %w", err)
	}
	if !doctor.Role.Equals(domain.RoleDoctor) {
		return nil, &ValidationError{Fields: []string{"doctor is unknown"}}
	}

	appt := &appointment.Appointment{
		PatientID:   p.UserID,
		DoctorID:    doctor.ID,
		Problem:     strings.TrimSpace(cmd.Problem),
		ScheduledAt: scheduledAt,
		Status:      appointment.StatusPending,
	}

	bill := &billing.Bill{
		PatientID:           p.UserID,
		DoctorID:            doctor.ID,
		DoctorName:          doctor.DisplayName(),
		Amount:              s.consultationFee,
		Status:              billing.StatusUnpaid,
		Description:         "Consultation for " + appt.Problem,
		Date:                time.Now().UTC(),
		AppointmentDateTime: scheduledAt,
	}

	if err := s.repo.BookWithBill(ctx, appt, bill); err != nil {
		s.log.Error("booking cascade aborted, no partial records kept",
			zap.String("patient_id", p.UserID.String()),
			zap.String("doctor_id", doctor.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("booking appointment: %w", err)
	}

	s.log.Info("appointment booked",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("patient_id", p.UserID.String()),
		zap.String("doctor_id", doctor.ID.String()),
	)

	return &BookingResult{
		Appointment:         appt,
		Bill:                bill,
		SuggestedSpecialist: appointment.SuggestSpecialist(appt.Problem),
	}, nil
}

// DoctorOption is one row of the booking form's doctor picker.
type DoctorOption struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
}

// BookingOptions is what the booking form needs: the problem catalog and
// the doctors on staff.
type BookingOptions struct {
	Problems []string        `json:"problems"`
	Doctors  []*DoctorOption `json:"doctors"`
}

// Options returns the booking form inputs for the calling patient.
func (s *AppointmentService) Options(ctx context.Context, p *domain.Principal) (*BookingOptions, error) {
	if !p.HasRole(domain.RolePatient) {
		return nil, ErrForbidden
	}

	doctors, err := s.userRepo.ListByRole(ctx, domain.RoleDoctor)
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}

	opts := &BookingOptions{Problems: appointment.Problems}
	for _, d := range doctors {
		opts.Doctors = append(opts.Doctors, &DoctorOption{
			ID:             d.ID,
			Name:           d.DisplayName(),
			Specialization: d.Profile.Specialization,
		})
	}
	return opts, nil
}

// Decide lets the assigned doctor accept or reject a pending appointment.
func (s *AppointmentService) Decide(ctx context.Context, p *domain.Principal, apptID uuid.UUID, newStatus appointment.Status) (*appointment.Appointment, error) {
	if !p.HasRole(domain.RoleDoctor) {
		return nil, ErrForbidden
	}

	appt, err := s.repo.GetByID(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != p.UserID {
		return nil, ErrForbidden
	}

	if err := appt.Decide(newStatus); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, appt); err != nil {
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.log.Info("appointment decided",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("status", string(appt.Status)),
	)

	return appt, nil
}

// Cancel lets the booking patient cancel their own appointment from any
// non-cancelled state.
func (s *AppointmentService) Cancel(ctx context.Context, p *domain.Principal, apptID uuid.UUID) (*appointment.Appointment, error) {
	if !p.HasRole(domain.RolePatient) {
		return nil, ErrForbidden
	}

	appt, err := s.repo.GetByID(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != p.UserID {
		return nil, ErrForbidden
	}

	if err := appt.Cancel(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, appt); err != nil {
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.log.Info("appointment cancelled",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("patient_id", p.UserID.String()),
	)

	return appt, nil
}

// ListForPatient returns the caller's appointments, newest first, with
// doctor names resolved. A doctor record removed after booking shows as
// "Unknown" rather than failing the listing.
func (s *AppointmentService) ListForPatient(ctx context.Context, p *domain.Principal) ([]*appointment.View, error) {
	if !p.HasRole(domain.RolePatient) {
		return nil, ErrForbidden
	}

	appts, err := s.repo.ListByPatient(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	return s.buildViews(ctx, appts)
}

// ListForDoctor returns the appointments assigned to the calling doctor,
// newest first, with patient names resolved.
func (s *AppointmentService) ListForDoctor(ctx context.Context, p *domain.Principal) ([]*appointment.View, error) {
	if !p.HasRole(domain.RoleDoctor) {
		return nil, ErrForbidden
	}

	appts, err := s.repo.ListByDoctor(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	return s.buildViews(ctx, appts)
}

// AcceptedPatient is a doctor-facing row: a patient whose appointment with
// this doctor was accepted and who may therefore receive prescriptions.
type AcceptedPatient struct {
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Problem     string    `json:"problem"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// AcceptedPatients lists the patients behind the calling doctor's accepted
// appointments.
func (s *AppointmentService) AcceptedPatients(ctx context.Context, p *domain.Principal) ([]*AcceptedPatient, error) {
	if !p.HasRole(domain.RoleDoctor) {
		return nil, ErrForbidden
	}

	appts, err := s.repo.ListByDoctor(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(appts))
	for _, a := range appts {
		if a.Status == appointment.StatusAccepted {
			ids = append(ids, a.PatientID)
		}
	}
	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving patients: %w", err)
	}

	var out []*AcceptedPatient
	for _, a := range appts {
		if a.Status != appointment.StatusAccepted {
			continue
		}
		name := unknownUserName
		if u, ok := users[a.PatientID]; ok {
			name = u.DisplayName()
		}
		out = append(out, &AcceptedPatient{
			PatientID:   a.PatientID,
			PatientName: name,
			Problem:     a.Problem,
			ScheduledAt: a.ScheduledAt,
		})
	}
	return out, nil
}

// buildViews resolves counterparty names in one bulk read. Dangling user
// references degrade to "Unknown".
func (s *AppointmentService) buildViews(ctx context.Context, appts []*appointment.Appointment) ([]*appointment.View, error) {
	ids := make([]uuid.UUID, 0, len(appts)*2)
	for _, a := range appts {
		ids = append(ids, a.PatientID, a.DoctorID)
	}
	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving participants: %w", err)
	}

	nameOf := func(id uuid.UUID) string {
		if u, ok := users[id]; ok {
			return u.DisplayName()
		}
		return unknownUserName
	}

	views := make([]*appointment.View, 0, len(appts))
	for _, a := range appts {
		views = append(views, &appointment.View{
			Appointment: *a,
			PatientName: nameOf(a.PatientID),
			DoctorName:  nameOf(a.DoctorID),
		})
	}
	return views, nil
}
