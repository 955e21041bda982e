package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/roster"
	"go.uber.org/zap"
)

// RosterService covers staff bookkeeping: nurse shifts and ward
// assignments, leave requests, salary views, the receptionist's front-desk
// schedule and call log.
type RosterService struct {
	repo     roster.Repository
	userRepo UserRepository
	log      *zap.Logger
}

func NewRosterService(repo roster.Repository, userRepo UserRepository, log *zap.Logger) *RosterService {
	return &RosterService{repo: repo, userRepo: userRepo, log: log}
}

// AddNurseShift records a shift for the calling nurse.
func (s *RosterService) AddNurseShift(ctx context.Context, p *domain.Principal, date, shift string) (*roster.NurseShift, error) {
	if !p.HasRole(domain.RoleNurse) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(date) == "" || strings.TrimSpace(shift) == "" {
		return nil, &ValidationError{Fields: []string{"date and time are required"}}
	}

	ns := &roster.NurseShift{NurseID: p.UserID, Date: date, Time: shift}
	if err := s.repo.AddNurseShift(ctx, ns); err != nil {
		return nil, fmt.Errorf("adding shift: %w", err)
	}
	return ns, nil
}

// ListNurseShifts returns the calling nurse's shifts.
func (s *RosterService) ListNurseShifts(ctx context.Context, p *domain.Principal) ([]*roster.NurseShift, error) {
	if !p.HasRole(domain.RoleNurse) {
		return nil, ErrForbidden
	}
	return s.repo.ListNurseShifts(ctx, p.UserID)
}

// ListAssignments returns the calling nurse's ward assignments.
func (s *RosterService) ListAssignments(ctx context.Context, p *domain.Principal) ([]*roster.NurseAssignment, error) {
	if !p.HasRole(domain.RoleNurse) {
		return nil, ErrForbidden
	}
	return s.repo.ListAssignments(ctx, p.UserID)
}

// RequestLeave files a leave request for the calling staff member. New
// requests always start pending.
func (s *RosterService) RequestLeave(ctx context.Context, p *domain.Principal, date, reason string) (*roster.LeaveRequest, error) {
	if !p.HasRole(domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(date) == "" || strings.TrimSpace(reason) == "" {
		return nil, &ValidationError{Fields: []string{"date and reason are required"}}
	}

	lr := &roster.LeaveRequest{
		HolderID: p.UserID,
		Date:     date,
		Reason:   strings.TrimSpace(reason),
		Status:   roster.LeavePending,
	}
	if err := s.repo.AddLeaveRequest(ctx, lr); err != nil {
		return nil, fmt.Errorf("filing leave request: %w", err)
	}

	s.log.Info("leave requested",
		zap.String("user_id", p.UserID.String()),
		zap.String("date", date),
	)
	return lr, nil
}

// ListLeaveRequests returns the caller's own leave requests.
func (s *RosterService) ListLeaveRequests(ctx context.Context, p *domain.Principal) ([]*roster.LeaveRequest, error) {
	if !p.HasRole(domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist) {
		return nil, ErrForbidden
	}
	return s.repo.ListLeaveRequests(ctx, p.UserID)
}

// SalaryView pairs the caller's current salary with their payment history.
type SalaryView struct {
	Current  int64                   `json:"current"`
	Payments []*roster.SalaryPayment `json:"payments"`
}

// Salary returns the caller's salary as recorded on their account, plus any
// payment history.
func (s *RosterService) Salary(ctx context.Context, p *domain.Principal) (*SalaryView, error) {
	if !p.HasRole(domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListSalaryPayments(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing salary payments: %w", err)
	}
	return &SalaryView{Current: user.Salary, Payments: payments}, nil
}

// AddFrontDeskSchedule records an entry in the receptionist's appointment
// ledger. Doctor and patient are free-text labels.
func (s *RosterService) AddFrontDeskSchedule(ctx context.Context, p *domain.Principal, entry *roster.FrontDeskSchedule) (*roster.FrontDeskSchedule, error) {
	if !p.HasRole(domain.RoleReceptionist) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(entry.Doctor) == "" || strings.TrimSpace(entry.Patient) == "" {
		return nil, &ValidationError{Fields: []string{"doctor and patient are required"}}
	}
	if entry.Status == "" {
		entry.Status = "Scheduled"
	}

	if err := s.repo.AddFrontDeskSchedule(ctx, entry); err != nil {
		return nil, fmt.Errorf("adding schedule entry: %w", err)
	}
	return entry, nil
}

// ListFrontDeskSchedules returns the whole front-desk ledger, newest first.
func (s *RosterService) ListFrontDeskSchedules(ctx context.Context, p *domain.Principal) ([]*roster.FrontDeskSchedule, error) {
	if !p.HasRole(domain.RoleReceptionist) {
		return nil, ErrForbidden
	}
	return s.repo.ListFrontDeskSchedules(ctx)
}

// LogCall records an incoming phone call against the calling receptionist.
func (s *RosterService) LogCall(ctx context.Context, p *domain.Principal, callerName, phone, note string) (*roster.CallLog, error) {
	if !p.HasRole(domain.RoleReceptionist) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(callerName) == "" {
		return nil, &ValidationError{Fields: []string{"caller name is required"}}
	}

	cl := &roster.CallLog{
		ReceptionistID: p.UserID,
		CallerName:     strings.TrimSpace(callerName),
		Phone:          phone,
		Note:           note,
	}
	if err := s.repo.AddCallLog(ctx, cl); err != nil {
		return nil, fmt.Errorf("logging call: %w", err)
	}
	return cl, nil
}

// ListCallLogs returns the shared call log, newest first.
func (s *RosterService) ListCallLogs(ctx context.Context, p *domain.Principal) ([]*roster.CallLog, error) {
	if !p.HasRole(domain.RoleReceptionist) {
		return nil, ErrForbidden
	}
	return s.repo.ListCallLogs(ctx)
}
