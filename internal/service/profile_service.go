package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/profile"
	"go.uber.org/zap"
)

// ProfileService lets users read and edit their own profile. Patient edits
// also upsert the role-linked patient record so the two views stay in sync.
type ProfileService struct {
	repo     profile.Repository
	userRepo UserRepository
	log      *zap.Logger
}

func NewProfileService(repo profile.Repository, userRepo UserRepository, log *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, userRepo: userRepo, log: log}
}

// Get returns the caller's account record with its embedded profile.
func (s *ProfileService) Get(ctx context.Context, p *domain.Principal) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, p.UserID)
}

// GetPatientRecord returns the caller's role-linked patient record, creating
// it on first access if registration predates the record.
func (s *ProfileService) GetPatientRecord(ctx context.Context, p *domain.Principal) (*profile.PatientProfile, error) {
	if !p.HasRole(domain.RolePatient) {
		return nil, ErrForbidden
	}

	rec, err := s.repo.GetPatient(ctx, p.UserID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.EnsureForUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating patient record: %w", err)
	}
	return s.repo.GetPatient(ctx, p.UserID)
}

// UpdateOwnCommand carries a user's self-service profile edit.
type UpdateOwnCommand struct {
	Email          string
	FirstName      string
	LastName       string
	Phone          string
	Address        string
	Qualifications string
}

// UpdateOwn edits the caller's own profile. Role, username, salary and
// specialization are not self-editable. Patients additionally get their
// role-linked record upserted.
func (s *ProfileService) UpdateOwn(ctx context.Context, p *domain.Principal, cmd *UpdateOwnCommand) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cmd.Email) != "" {
		user.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	}
	user.Profile.FirstName = cmd.FirstName
	user.Profile.LastName = cmd.LastName
	user.Profile.Phone = cmd.Phone
	user.Profile.Address = cmd.Address
	user.Profile.Qualifications = cmd.Qualifications

	if err := s.userRepo.UpdateProfile(ctx, user.ID, user.Profile, user.Email); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	if user.Role.Equals(domain.RolePatient) {
		upd := &profile.UpdatePatientProfileCommand{
			Name:    user.DisplayName(),
			Email:   user.Email,
			Phone:   cmd.Phone,
			Address: cmd.Address,
		}
		if err := s.repo.UpsertPatient(ctx, user.ID, upd); err != nil {
			s.log.Warn("patient record sync failed", zap.Error(err),
				zap.String("user_id", user.ID.String()))
		}
	}

	s.log.Info("profile updated", zap.String("user_id", user.ID.String()))
	return user, nil
}
