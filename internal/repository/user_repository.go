package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/profile"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// CreateWithProfile inserts the user and their role-linked profile record in
// one transaction, so registration never leaves a user without a profile.
func (r *UserRepository) CreateWithProfile(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrUsernameTaken
			}
			return err
		}
		return createLinkedProfile(tx, u)
	})
}

func createLinkedProfile(tx *gorm.DB, u *domain.User) error {
	switch u.Role {
	case domain.RolePatient:
		return tx.Create(&profile.PatientProfile{
			UserID: u.ID, Name: u.Username, Email: u.Email,
		}).Error
	case domain.RoleDoctor:
		return tx.Create(&profile.DoctorProfile{
			UserID: u.ID, Name: u.Username, Email: u.Email,
			Specialty: u.Profile.Specialization, Salary: u.Salary,
		}).Error
	case domain.RoleNurse:
		return tx.Create(&profile.NurseProfile{
			UserID: u.ID, Name: u.Username, Email: u.Email, Salary: u.Salary,
		}).Error
	case domain.RoleReceptionist:
		return tx.Create(&profile.ReceptionistProfile{
			UserID: u.ID, Name: u.Username, Email: u.Email,
		}).Error
	}
	// Admins have no linked record.
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
		"salary":   u.Salary,
		"profile":  u.Profile,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p domain.Profile, email string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"profile": p,
		"email":   email,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	var users []*domain.User
	if err := r.db.WithContext(ctx).Where("role = ?", role).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// GetManyByIDs resolves user references in bulk for list views. Missing ids
// are simply absent from the map; callers degrade them to "Unknown".
func (r *UserRepository) GetManyByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error) {
	result := make(map[uuid.UUID]*domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []*domain.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("resolving users: %w", err)
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}
