package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/service"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	username    string
	email       string
	passwordEnv string
	fallback    string
	role        domain.Role
	salary      int64
	profile     domain.Profile
}

var accounts = []account{
	{
		username:    "admin",
		email:       "admin@aegiscare.example",
		passwordEnv: "SEED_ADMIN_PASSWORD",
		fallback:    "admin123",
		role:        domain.RoleAdmin,
	},
	{
		username:    "drsmith",
		email:       "drsmith@aegiscare.example",
		passwordEnv: "SEED_DOCTOR_PASSWORD",
		fallback:    "doctor123",
		role:        domain.RoleDoctor,
		salary:      120000,
		profile: domain.Profile{
			FirstName:      "John",
			LastName:       "Smith",
			Specialization: "Cardiology",
		},
	},
	{
		username:    "patient1",
		email:       "patient1@aegiscare.example",
		passwordEnv: "SEED_PATIENT_PASSWORD",
		fallback:    "patient123",
		role:        domain.RolePatient,
	},
}

// Run creates the starter accounts if they do not exist yet. Existing
// usernames are left untouched, so running it on every boot is safe.
func Run(ctx context.Context, userRepo service.UserRepository, log *zap.Logger) error {
	for _, a := range accounts {
		if _, err := userRepo.GetByUsername(ctx, a.username); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("checking seed user %q: %w", a.username, err)
		}

		password := a.fallback
		if v := os.Getenv(a.passwordEnv); v != "" {
			password = v
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing seed password: %w", err)
		}

		user := &domain.User{
			Username:     a.username,
			Email:        a.email,
			PasswordHash: string(hash),
			Role:         a.role,
			Salary:       a.salary,
			Profile:      a.profile,
		}

		if err := userRepo.CreateWithProfile(ctx, user); err != nil {
			if errors.Is(err, domain.ErrUsernameTaken) {
				continue
			}
			return fmt.Errorf("seeding user %q: %w", a.username, err)
		}

		log.Info("seeded user",
			zap.String("username", a.username),
			zap.String("role", string(a.role)),
		)
	}
	return nil
}
