package repository

import (
	"context"
	"errors"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/profile"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

var _ profile.Repository = (*ProfileRepository)(nil)

func (r *ProfileRepository) EnsureForUser(ctx context.Context, u *domain.User) error {
	db := r.db.WithContext(ctx)
	switch u.Role {
	case domain.RolePatient:
		var n int64
		if err := db.Model(&profile.PatientProfile{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return db.Create(&profile.PatientProfile{UserID: u.ID, Name: u.Username, Email: u.Email}).Error
	case domain.RoleDoctor:
		var n int64
		if err := db.Model(&profile.DoctorProfile{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return db.Create(&profile.DoctorProfile{
			UserID: u.ID, Name: u.Username, Email: u.Email,
			Specialty: u.Profile.Specialization, Salary: u.Salary,
		}).Error
	case domain.RoleNurse:
		var n int64
		if err := db.Model(&profile.NurseProfile{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return db.Create(&profile.NurseProfile{UserID: u.ID, Name: u.Username, Email: u.Email, Salary: u.Salary}).Error
	case domain.RoleReceptionist:
		var n int64
		if err := db.Model(&profile.ReceptionistProfile{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return db.Create(&profile.ReceptionistProfile{UserID: u.ID, Name: u.Username, Email: u.Email}).Error
	}
	return nil
}

func (r *ProfileRepository) GetPatient(ctx context.Context, userID uuid.UUID) (*profile.PatientProfile, error) {
	var p profile.PatientProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, profile.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) UpsertPatient(ctx context.Context, userID uuid.UUID, cmd *profile.UpdatePatientProfileCommand) error {
	p := &profile.PatientProfile{
		UserID:  userID,
		Name:    cmd.Name,
		Email:   cmd.Email,
		Phone:   cmd.Phone,
		Address: cmd.Address,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "phone", "address"}),
	}).Create(p).Error
}
