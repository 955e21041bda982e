package roster

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	AddNurseShift(ctx context.Context, s *NurseShift) error
	ListNurseShifts(ctx context.Context, nurseID uuid.UUID) ([]*NurseShift, error)

	AddLeaveRequest(ctx context.Context, l *LeaveRequest) error
	ListLeaveRequests(ctx context.Context, holderID uuid.UUID) ([]*LeaveRequest, error)

	ListAssignments(ctx context.Context, nurseID uuid.UUID) ([]*NurseAssignment, error)

	ListSalaryPayments(ctx context.Context, userID uuid.UUID) ([]*SalaryPayment, error)

	AddFrontDeskSchedule(ctx context.Context, s *FrontDeskSchedule) error
	ListFrontDeskSchedules(ctx context.Context) ([]*FrontDeskSchedule, error)

	AddCallLog(ctx context.Context, c *CallLog) error
	ListCallLogs(ctx context.Context) ([]*CallLog, error)
}
