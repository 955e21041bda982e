package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/appointment"
	"github.com/aegiscare/hms/internal/domain/billing"
	"github.com/aegiscare/hms/internal/domain/rulebook"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminService backs the admin dashboard: aggregate counts, revenue,
// user administration and the hospital rulebook.
type AdminService struct {
	userRepo     UserRepository
	apptRepo     appointment.Repository
	billRepo     billing.Repository
	rulebookRepo rulebook.Repository
	log          *zap.Logger
}

func NewAdminService(
	userRepo UserRepository,
	apptRepo appointment.Repository,
	billRepo billing.Repository,
	rulebookRepo rulebook.Repository,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		apptRepo:     apptRepo,
		billRepo:     billRepo,
		rulebookRepo: rulebookRepo,
		log:          log,
	}
}

// DoctorSalary is one row of the dashboard's payroll listing.
type DoctorSalary struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Salary   int64  `json:"salary"`
}

// DashboardStats is the admin landing view: per-role headcounts, total
// appointments, doctor payroll and the month-by-month revenue series.
type DashboardStats struct {
	Patients       int64                  `json:"patients"`
	Doctors        int64                  `json:"doctors"`
	Nurses         int64                  `json:"nurses"`
	Receptionists  int64                  `json:"receptionists"`
	Appointments   int64                  `json:"appointments"`
	DoctorSalaries []DoctorSalary         `json:"doctor_salaries"`
	Revenue        []billing.RevenuePoint `json:"revenue"`
}

// Dashboard assembles the admin stats. A failing revenue aggregation
// degrades to an empty series with a warning; the counts still render.
func (s *AdminService) Dashboard(ctx context.Context, p *domain.Principal) (*DashboardStats, error) {
	if !p.HasRole(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	stats := &DashboardStats{Revenue: []billing.RevenuePoint{}}

	counts := []struct {
		role domain.Role
		dst  *int64
	}{
		{domain.RolePatient, &stats.Patients},
		{domain.RoleDoctor, &stats.Doctors},
		{domain.RoleNurse, &stats.Nurses},
		{domain.RoleReceptionist, &stats.Receptionists},
	}
	for _, c := range counts {
		n, err := s.userRepo.CountByRole(ctx, c.role)
		if err != nil {
			return nil, fmt.Errorf("counting %s users: %w", c.role, err)
		}
		*c.dst = n
	}

	n, err := s.apptRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}
	stats.Appointments = n

	doctors, err := s.userRepo.ListByRole(ctx, domain.RoleDoctor)
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	for _, d := range doctors {
		stats.DoctorSalaries = append(stats.DoctorSalaries, DoctorSalary{
			Username: d.Username,
			Name:     d.DisplayName(),
			Salary:   d.Salary,
		})
	}

	revenue, err := s.billRepo.MonthlyRevenue(ctx)
	if err != nil {
		s.log.Warn("revenue aggregation failed, rendering empty series", zap.Error(err))
	} else {
		stats.Revenue = revenue
	}

	return stats, nil
}

// CreateStaffCommand creates a non-patient account on behalf of the admin.
type CreateStaffCommand struct {
	Username       string
	Email          string
	Password       string
	Role           string
	FirstName      string
	LastName       string
	Phone          string
	Address        string
	Specialization string
	Qualifications string
	Salary         int64
}

// CreateUser registers an account of any role with its profile and salary
// filled in. Unlike self-registration, the admin chooses the role freely.
func (s *AdminService) CreateUser(ctx context.Context, p *domain.Principal, cmd *CreateStaffCommand) (*domain.User, error) {
	if !p.HasRole(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	var errs []string
	if strings.TrimSpace(cmd.Username) == "" {
		errs = append(errs, "username is required")
	}
	if len(cmd.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	role, ok := domain.ParseRole(cmd.Role)
	if !ok {
		errs = append(errs, "role is invalid")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(cmd.Username),
		Email:        strings.ToLower(strings.TrimSpace(cmd.Email)),
		PasswordHash: string(hash),
		Role:         role,
		Salary:       cmd.Salary,
		Profile: domain.Profile{
			FirstName:      cmd.FirstName,
			LastName:       cmd.LastName,
			Phone:          cmd.Phone,
			Address:        cmd.Address,
			Specialization: cmd.Specialization,
			Qualifications: cmd.Qualifications,
		},
	}

	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		s.log.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.log.Info("user created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
		zap.String("admin_id", p.UserID.String()),
	)

	return user, nil
}

// UpdateStaffCommand mutates the editable parts of an account. Zero-value
// Salary leaves the stored salary untouched.
type UpdateStaffCommand struct {
	Email          string
	FirstName      string
	LastName       string
	Phone          string
	Address        string
	Specialization string
	Qualifications string
	Salary         int64
}

func (s *AdminService) UpdateUser(ctx context.Context, p *domain.Principal, id uuid.UUID, cmd *UpdateStaffCommand) (*domain.User, error) {
	if !p.HasRole(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cmd.Email) != "" {
		user.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	}
	if cmd.Salary > 0 {
		user.Salary = cmd.Salary
	}
	user.Profile = domain.Profile{
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		Phone:          cmd.Phone,
		Address:        cmd.Address,
		Specialization: cmd.Specialization,
		Qualifications: cmd.Qualifications,
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user updated by admin",
		zap.String("user_id", id.String()),
		zap.String("admin_id", p.UserID.String()),
	)

	return user, nil
}

// DeleteUser removes an account. Records referencing the user stay behind
// and render with an "Unknown" name from then on.
func (s *AdminService) DeleteUser(ctx context.Context, p *domain.Principal, id uuid.UUID) error {
	if !p.HasRole(domain.RoleAdmin) {
		return ErrForbidden
	}
	if id == p.UserID {
		return &ValidationError{Fields: []string{"cannot delete your own account"}}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("user deleted by admin",
		zap.String("user_id", id.String()),
		zap.String("admin_id", p.UserID.String()),
	)
	return nil
}

// ListUsers returns every account, or only those of the given role when one
// is supplied.
func (s *AdminService) ListUsers(ctx context.Context, p *domain.Principal, role string) ([]*domain.User, error) {
	if !p.HasRole(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if role == "" {
		return s.userRepo.List(ctx)
	}
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return nil, &ValidationError{Fields: []string{"role is invalid"}}
	}
	return s.userRepo.ListByRole(ctx, parsed)
}

// Rulebook returns the hospital rulebook. An empty rulebook is a valid
// state, not an error.
func (s *AdminService) Rulebook(ctx context.Context) (*rulebook.Rulebook, error) {
	return s.rulebookRepo.Get(ctx)
}

// UpdateRulebook replaces the rulebook content wholesale. There is exactly
// one rulebook; the first write creates it.
func (s *AdminService) UpdateRulebook(ctx context.Context, p *domain.Principal, content string) (*rulebook.Rulebook, error) {
	if !p.HasRole(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	rb, err := s.rulebookRepo.Upsert(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("updating rulebook: %w", err)
	}

	s.log.Info("rulebook updated", zap.String("admin_id", p.UserID.String()))
	return rb, nil
}
