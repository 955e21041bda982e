package roster

import (
	"time"

	"github.com/google/uuid"
)

// Role-scoped staff bookkeeping records. Each is owned exclusively by the
// workflow of the role that creates it; admins and receptionists only read.

type NurseShift struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	NurseID uuid.UUID `gorm:"column:nurse_id;type:uuid;not null;index"`
	Date    string    `gorm:"column:date;type:varchar(20);not null"`
	Time    string    `gorm:"column:time;type:varchar(20);not null"`
}

func (NurseShift) TableName() string {
	return "nurse_schedule"
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

type LeaveRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	HolderID uuid.UUID   `gorm:"column:holder_id;type:uuid;not null;index"`
	Date     string      `gorm:"column:date;type:varchar(20);not null"`
	Reason   string      `gorm:"column:reason;type:text;not null"`
	Status   LeaveStatus `gorm:"column:status;type:varchar(20);not null;default:'Pending'"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type NurseAssignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	NurseID uuid.UUID `gorm:"column:nurse_id;type:uuid;not null;index"`
	Ward    string    `gorm:"column:ward;type:varchar(100);not null"`
	Task    string    `gorm:"column:task;type:text"`
}

func (NurseAssignment) TableName() string {
	return "nurse_assignments"
}

type SalaryPayment struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Amount int64     `gorm:"column:amount;not null"`
	PaidAt time.Time `gorm:"column:paid_at;not null;index"`
	Note   string    `gorm:"column:note;type:text"`
}

func (SalaryPayment) TableName() string {
	return "salaries"
}

// FrontDeskSchedule is the receptionist's appointment ledger. Doctor and
// patient are stored as display labels, not references.
type FrontDeskSchedule struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	Doctor  string `gorm:"column:doctor;type:varchar(255);not null"`
	Patient string `gorm:"column:patient;type:varchar(255);not null"`
	Date    string `gorm:"column:date;type:varchar(20);not null"`
	Time    string `gorm:"column:time;type:varchar(20);not null"`
	Status  string `gorm:"column:status;type:varchar(30);not null"`
}

func (FrontDeskSchedule) TableName() string {
	return "schedules"
}

type CallLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoggedAt time.Time `gorm:"autoCreateTime;index"`

	ReceptionistID uuid.UUID `gorm:"column:receptionist_id;type:uuid;not null;index"`
	CallerName     string    `gorm:"column:caller_name;type:varchar(255);not null"`
	Phone          string    `gorm:"column:phone;type:varchar(20)"`
	Note           string    `gorm:"column:note;type:text"`
}

func (CallLog) TableName() string {
	return "call_logs"
}
