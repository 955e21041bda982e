package profile

import (
	"time"

	"github.com/google/uuid"
)

// Each registration creates exactly one role-linked record below, seeded
// from the username/email with optional fields left empty. Admins get no
// linked record. UserID is a weak reference into the users table.

type PatientProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID  uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	Name    string    `gorm:"column:name;type:varchar(255);not null"`
	Email   string    `gorm:"column:email;type:varchar(255)"`
	Phone   string    `gorm:"column:phone;type:varchar(20)"`
	Address string    `gorm:"column:address;type:text"`
}

func (PatientProfile) TableName() string {
	return "patients"
}

type DoctorProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     string    `gorm:"column:email;type:varchar(255)"`
	Specialty string    `gorm:"column:specialty;type:varchar(100)"`
	Salary    int64     `gorm:"column:salary;default:0"`
}

func (DoctorProfile) TableName() string {
	return "doctors"
}

type NurseProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	Name   string    `gorm:"column:name;type:varchar(255);not null"`
	Email  string    `gorm:"column:email;type:varchar(255)"`
	Shift  string    `gorm:"column:shift;type:varchar(50)"`
	Salary int64     `gorm:"column:salary;default:0"`
}

func (NurseProfile) TableName() string {
	return "nurses"
}

type ReceptionistProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	Name   string    `gorm:"column:name;type:varchar(255);not null"`
	Email  string    `gorm:"column:email;type:varchar(255)"`
	Phone  string    `gorm:"column:phone;type:varchar(20)"`
}

func (ReceptionistProfile) TableName() string {
	return "receptionists"
}

type UpdatePatientProfileCommand struct {
	Name    string
	Email   string
	Phone   string
	Address string
}
