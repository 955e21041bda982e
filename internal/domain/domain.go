package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
	RolePatient      Role = "patient"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RolePatient:
		return true
	}
	return false
}

// Equals compares roles case-insensitively. Stored roles are lowercase but
// the comparison is tolerant everywhere roles cross a trust boundary.
func (r Role) Equals(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// ParseRole normalizes a raw role string. Returns false for unknown roles.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	return r, r.IsValid()
}

// DashboardPath is where a user of this role lands after login, and where
// a denied request is redirected to. Authorization failures always route
// the caller back into their own territory, never to a generic error page.
func (r Role) DashboardPath() string {
	switch Role(strings.ToLower(string(r))) {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleDoctor:
		return "/doctor/dashboard"
	case RoleNurse:
		return "/nurse/dashboard"
	case RoleReceptionist:
		return "/receptionist/dashboard"
	case RolePatient:
		return "/patient/dashboard"
	}
	return "/auth/login"
}

// Profile is the free-form user profile of the legacy documents mapped to a
// typed record. Optional fields default to the empty string.
type Profile struct {
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Qualifications string `json:"qualifications,omitempty"`
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Username     string  `gorm:"column:username;type:varchar(100);uniqueIndex;not null"`
	Email        string  `gorm:"column:email;type:varchar(255);not null"`
	PasswordHash string  `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         Role    `gorm:"column:role;type:varchar(30);not null;index"`
	Profile      Profile `gorm:"column:profile;serializer:json"`

	// Salary is only meaningful for staff roles; zero for patients.
	Salary int64 `gorm:"column:salary;default:0"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName prefers the profile name and falls back to the username.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.Profile.FirstName + " " + u.Profile.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Principal is the authenticated identity attached to a request. It is
// reconstructed from the session token on each call and passed explicitly
// into every workflow operation.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     Role
	Profile  Profile
}

// HasRole reports whether the principal's role matches any of the allowed
// roles, case-insensitively.
func (p *Principal) HasRole(allowed ...Role) bool {
	for _, r := range allowed {
		if p.Role.Equals(r) {
			return true
		}
	}
	return false
}

type EntryEvent string

const (
	EntryLogin  EntryEvent = "login"
	EntryLogout EntryEvent = "logout"
)

// EntryLog records who entered or left the system. The admin dashboard
// lists the most recent entries.
type EntryLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time  `gorm:"autoCreateTime;index"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	Username   string     `gorm:"column:username;type:varchar(100);not null"`
	UserRole   Role       `gorm:"column:user_role;type:varchar(30);not null"`
	Event      EntryEvent `gorm:"column:event;type:varchar(20);not null"`
	IPAddress  string     `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6
}

func (EntryLog) TableName() string {
	return "entries"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID   uuid.UUID `json:"sub"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	Profile  Profile   `json:"profile"`
}
