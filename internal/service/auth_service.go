package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/pkg/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error

	// CreateWithProfile also creates the role-linked profile record in the
	// same transaction.
	CreateWithProfile(ctx context.Context, u *domain.User) error

	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	UpdateProfile(ctx context.Context, id uuid.UUID, p domain.Profile, email string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	GetManyByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error)
}

type AuthService struct {
	userRepo   UserRepository
	jwtManager *auth.JWTManager
	entrySvc   *EntryLogService
	log        *zap.Logger
}

func NewAuthService(userRepo UserRepository, jwtManager *auth.JWTManager, entrySvc *EntryLogService, log *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager, entrySvc: entrySvc, log: log}
}

// Login verifies credentials and, when expectedRole is non-empty, enforces
// that the user authenticates under their own declared role. Unknown user
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password, expectedRole, ip string) (*domain.TokenPair, *domain.Principal, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		// Use bcrypt dummy hash to prevent timing-based user enumeration.
		// An attacker measuring response time should not be able to determine
		// whether the username exists in the system.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt",
			zap.String("username", username),
			zap.String("ip", ip),
		)
		return nil, nil, ErrInvalidCredentials
	}

	if expectedRole != "" && !user.Role.Equals(domain.Role(expectedRole)) {
		return nil, nil, &RoleMismatchError{
			Have: strings.ToLower(string(user.Role)),
			Want: strings.ToLower(expectedRole),
		}
	}

	claims := &domain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Profile:  user.Profile,
	}

	pair, err := s.jwtManager.GenerateTokenPair(claims)
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return nil, nil, fmt.Errorf("generating tokens: %w", err)
	}

	principal := &domain.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Profile:  user.Profile,
	}

	s.entrySvc.RecordAsync(principal, domain.EntryLogin, ip)

	s.log.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("ip", ip),
	)

	return pair, principal, nil
}

type RegisterCommand struct {
	Username string
	Email    string
	Password string
	Role     string // defaults to patient
}

// Register creates the user plus exactly one linked per-role profile record,
// seeded from username/email with empty optional fields.
func (s *AuthService) Register(ctx context.Context, cmd *RegisterCommand) (*domain.User, error) {
	if err := validateRegisterCommand(cmd); err != nil {
		return nil, err
	}

	role := domain.RolePatient
	if cmd.Role != "" {
		parsed, ok := domain.ParseRole(cmd.Role)
		if !ok {
			return nil, &ValidationError{Fields: []string{"role is invalid"}}
		}
		role = parsed
	}

	username := strings.TrimSpace(cmd.Username)
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	// bcrypt embeds a randomized per-user salt in the hash.
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(cmd.Email)),
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		s.log.Error("failed to register user", zap.Error(err))
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.log.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)

	return user, nil
}

// RefreshToken issues a new token pair given a valid refresh token. The
// user's current role is re-read so a role change takes effect here at the
// latest.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Profile:  user.Profile,
	})
}

// PrincipalFromToken resolves the opaque session credential to a Principal.
// Any failure is equivalent to "unauthenticated".
func (s *AuthService) PrincipalFromToken(token string) (*domain.Principal, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	return &domain.Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		Profile:  claims.Profile,
	}, nil
}

// Logout records the departure; the token itself simply expires.
func (s *AuthService) Logout(p *domain.Principal, ip string) {
	s.entrySvc.RecordAsync(p, domain.EntryLogout, ip)
}

func validateRegisterCommand(cmd *RegisterCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Username) == "" {
		errs = append(errs, "username is required")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		errs = append(errs, "email is required")
	}
	if len(cmd.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
