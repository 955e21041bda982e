package repository

import (
	"context"

	"github.com/aegiscare/hms/internal/domain/roster"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

var _ roster.Repository = (*RosterRepository)(nil)

func (r *RosterRepository) AddNurseShift(ctx context.Context, s *roster.NurseShift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *RosterRepository) ListNurseShifts(ctx context.Context, nurseID uuid.UUID) ([]*roster.NurseShift, error) {
	var shifts []*roster.NurseShift
	err := r.db.WithContext(ctx).Where("nurse_id = ?", nurseID).Order("date, time").Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *RosterRepository) AddLeaveRequest(ctx context.Context, l *roster.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *RosterRepository) ListLeaveRequests(ctx context.Context, holderID uuid.UUID) ([]*roster.LeaveRequest, error) {
	var reqs []*roster.LeaveRequest
	err := r.db.WithContext(ctx).Where("holder_id = ?", holderID).Order("created_at DESC").Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *RosterRepository) ListAssignments(ctx context.Context, nurseID uuid.UUID) ([]*roster.NurseAssignment, error) {
	var assignments []*roster.NurseAssignment
	err := r.db.WithContext(ctx).Where("nurse_id = ?", nurseID).Order("created_at DESC").Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *RosterRepository) ListSalaryPayments(ctx context.Context, userID uuid.UUID) ([]*roster.SalaryPayment, error) {
	var payments []*roster.SalaryPayment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("paid_at DESC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *RosterRepository) AddFrontDeskSchedule(ctx context.Context, s *roster.FrontDeskSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *RosterRepository) ListFrontDeskSchedules(ctx context.Context) ([]*roster.FrontDeskSchedule, error) {
	var schedules []*roster.FrontDeskSchedule
	err := r.db.WithContext(ctx).Order("date, time").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *RosterRepository) AddCallLog(ctx context.Context, c *roster.CallLog) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *RosterRepository) ListCallLogs(ctx context.Context) ([]*roster.CallLog, error) {
	var logs []*roster.CallLog
	err := r.db.WithContext(ctx).Order("logged_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
