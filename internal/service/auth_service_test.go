package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aegiscare/hms/internal/config"
	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/pkg/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters!!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "hms-test",
	})
}

func newTestEntryLogService() *EntryLogService {
	return NewEntryLogService(&MockEntryLogRepository{}, zap.NewNop(), testCollector)
}

func newTestUser(t *testing.T, username, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
}

func TestLogin_Success(t *testing.T) {
	user := newTestUser(t, "alice", "s3cret-pass", domain.RolePatient)
	repo := &MockUserRepository{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			assert.Equal(t, "alice", username)
			return user, nil
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	pair, principal, err := svc.Login(context.Background(), "alice", "s3cret-pass", "", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, domain.RolePatient, principal.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := newTestUser(t, "alice", "s3cret-pass", domain.RolePatient)
	repo := &MockUserRepository{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	_, _, err := svc.Login(context.Background(), "alice", "wrong", "", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserIndistinguishableFromWrongPassword(t *testing.T) {
	repo := &MockUserRepository{} // GetByUsername defaults to ErrUserNotFound
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	_, _, err := svc.Login(context.Background(), "nobody", "whatever", "", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RoleMismatchNamesBothRoles(t *testing.T) {
	user := newTestUser(t, "alice", "s3cret-pass", domain.RolePatient)
	repo := &MockUserRepository{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	_, _, err := svc.Login(context.Background(), "alice", "s3cret-pass", "doctor", "127.0.0.1")
	var mismatch *RoleMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "patient", mismatch.Have)
	assert.Equal(t, "doctor", mismatch.Want)
	assert.Contains(t, mismatch.Error(), "patient")
	assert.Contains(t, mismatch.Error(), "doctor")
}

func TestLogin_RoleMatchIsCaseInsensitive(t *testing.T) {
	user := newTestUser(t, "alice", "s3cret-pass", domain.RolePatient)
	repo := &MockUserRepository{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	_, principal, err := svc.Login(context.Background(), "alice", "s3cret-pass", "Patient", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.RolePatient, principal.Role)
}

func TestRegister_DefaultsToPatient(t *testing.T) {
	var created *domain.User
	repo := &MockUserRepository{
		CreateWithProfileFunc: func(ctx context.Context, u *domain.User) error {
			created = u
			return nil
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	user, err := svc.Register(context.Background(), &RegisterCommand{
		Username: "bob",
		Email:    "Bob@Example.com",
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RolePatient, user.Role)
	assert.Equal(t, "bob@example.com", created.Email)
	assert.NotEqual(t, "longenough", created.PasswordHash)
}

func TestRegister_ValidationFailures(t *testing.T) {
	svc := NewAuthService(&MockUserRepository{}, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	_, err := svc.Register(context.Background(), &RegisterCommand{
		Username: "",
		Email:    "",
		Password: "short",
	})
	var validErr *ValidationError
	require.ErrorAs(t, err, &validErr)
	assert.Len(t, validErr.Fields, 3)
}

func TestRegister_UsernameTaken(t *testing.T) {
	existing := newTestUser(t, "bob", "whatever1", domain.RolePatient)
	repo := &MockUserRepository{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return existing, nil
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	_, err := svc.Register(context.Background(), &RegisterCommand{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_DuplicateInsertRace(t *testing.T) {
	// A concurrent registration can slip past the username pre-check; the
	// unique-constraint violation from the insert must still surface as
	// ErrUsernameTaken, not a generic failure.
	repo := &MockUserRepository{
		CreateWithProfileFunc: func(ctx context.Context, u *domain.User) error {
			return domain.ErrUsernameTaken
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	_, err := svc.Register(context.Background(), &RegisterCommand{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_UnknownRoleRejected(t *testing.T) {
	svc := NewAuthService(&MockUserRepository{}, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	_, err := svc.Register(context.Background(), &RegisterCommand{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "longenough",
		Role:     "superuser",
	})
	var validErr *ValidationError
	assert.ErrorAs(t, err, &validErr)
}

func TestPrincipalFromToken_RoundTrip(t *testing.T) {
	user := newTestUser(t, "alice", "s3cret-pass", domain.RoleDoctor)
	user.Profile = domain.Profile{FirstName: "Alice", LastName: "Reyes", Specialization: "Cardiology"}
	repo := &MockUserRepository{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	pair, _, err := svc.Login(context.Background(), "alice", "s3cret-pass", "doctor", "127.0.0.1")
	require.NoError(t, err)

	principal, err := svc.PrincipalFromToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, domain.RoleDoctor, principal.Role)
	assert.Equal(t, "Cardiology", principal.Profile.Specialization)
}

func TestPrincipalFromToken_GarbageRejected(t *testing.T) {
	svc := NewAuthService(&MockUserRepository{}, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	_, err := svc.PrincipalFromToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshToken_PicksUpRoleChange(t *testing.T) {
	user := newTestUser(t, "alice", "s3cret-pass", domain.RolePatient)
	repo := &MockUserRepository{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return user, nil
		},
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	pair, _, err := svc.Login(context.Background(), "alice", "s3cret-pass", "", "127.0.0.1")
	require.NoError(t, err)

	user.Role = domain.RoleNurse

	newPair, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	principal, err := svc.PrincipalFromToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNurse, principal.Role)
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	user := newTestUser(t, "alice", "s3cret-pass", domain.RolePatient)
	repo := &MockUserRepository{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, newTestJWTManager(), newTestEntryLogService(), zap.NewNop())

	pair, _, err := svc.Login(context.Background(), "alice", "s3cret-pass", "", "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}
