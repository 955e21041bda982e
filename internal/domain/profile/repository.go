package profile

import (
	"context"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/google/uuid"
)

type Repository interface {
	// EnsureForUser creates the role-linked profile record for a user if it
	// does not exist yet. A no-op for admins and for users that already
	// have one.
	EnsureForUser(ctx context.Context, u *domain.User) error

	// GetPatient returns ErrProfileNotFound if the user has no patient record.
	GetPatient(ctx context.Context, userID uuid.UUID) (*PatientProfile, error)

	// UpsertPatient creates or replaces the patient profile fields for the
	// user (profile edits upsert, matching the legacy behavior).
	UpsertPatient(ctx context.Context, userID uuid.UUID, cmd *UpdatePatientProfileCommand) error
}
