package service

import (
	"context"
	"sync/atomic"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/appointment"
	"github.com/aegiscare/hms/internal/domain/billing"
	"github.com/aegiscare/hms/internal/domain/prescription"
	"github.com/aegiscare/hms/internal/domain/profile"
	"github.com/aegiscare/hms/internal/domain/roster"
	"github.com/aegiscare/hms/internal/domain/rulebook"
	"github.com/aegiscare/hms/pkg/metrics"
	"github.com/google/uuid"
)

// One collector per test binary: promauto registers into the default
// registry and duplicate registration panics.
var testCollector = metrics.NewCollector("test")

var _ UserRepository = (*MockUserRepository)(nil)

type MockUserRepository struct {
	CreateFunc            func(ctx context.Context, u *domain.User) error
	CreateWithProfileFunc func(ctx context.Context, u *domain.User) error
	GetByUsernameFunc     func(ctx context.Context, username string) (*domain.User, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateFunc            func(ctx context.Context, u *domain.User) error
	UpdateProfileFunc     func(ctx context.Context, id uuid.UUID, p domain.Profile, email string) error
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	ListFunc              func(ctx context.Context) ([]*domain.User, error)
	ListByRoleFunc        func(ctx context.Context, role domain.Role) ([]*domain.User, error)
	CountByRoleFunc       func(ctx context.Context, role domain.Role) (int64, error)
	GetManyByIDsFunc      func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error)

	CreateWithProfileCallCount int32
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepository) CreateWithProfile(ctx context.Context, u *domain.User) error {
	atomic.AddInt32(&m.CreateWithProfileCallCount, 1)
	if m.CreateWithProfileFunc != nil {
		return m.CreateWithProfileFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p domain.Profile, email string) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, p, email)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if m.ListByRoleFunc != nil {
		return m.ListByRoleFunc(ctx, role)
	}
	return nil, nil
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role)
	}
	return 0, nil
}

func (m *MockUserRepository) GetManyByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error) {
	if m.GetManyByIDsFunc != nil {
		return m.GetManyByIDsFunc(ctx, ids)
	}
	return map[uuid.UUID]*domain.User{}, nil
}

var _ appointment.Repository = (*MockAppointmentRepository)(nil)

type MockAppointmentRepository struct {
	BookWithBillFunc  func(ctx context.Context, a *appointment.Appointment, b *billing.Bill) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	UpdateStatusFunc  func(ctx context.Context, a *appointment.Appointment) error
	ListByPatientFunc func(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error)
	ListByDoctorFunc  func(ctx context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error)
	HasAcceptedFunc   func(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error)
	CountAllFunc      func(ctx context.Context) (int64, error)

	BookWithBillCallCount int32
}

func (m *MockAppointmentRepository) BookWithBill(ctx context.Context, a *appointment.Appointment, b *billing.Bill) error {
	atomic.AddInt32(&m.BookWithBillCallCount, 1)
	if m.BookWithBillFunc != nil {
		return m.BookWithBillFunc(ctx, a, b)
	}
	return nil
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, a *appointment.Appointment) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, a)
	}
	return nil
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *MockAppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error) {
	if m.ListByDoctorFunc != nil {
		return m.ListByDoctorFunc(ctx, doctorID)
	}
	return nil, nil
}

func (m *MockAppointmentRepository) HasAccepted(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	if m.HasAcceptedFunc != nil {
		return m.HasAcceptedFunc(ctx, doctorID, patientID)
	}
	return false, nil
}

func (m *MockAppointmentRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

var _ billing.Repository = (*MockBillingRepository)(nil)

type MockBillingRepository struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*billing.Bill, error)
	UpdateStatusFunc   func(ctx context.Context, b *billing.Bill) error
	ListByPatientFunc  func(ctx context.Context, patientID uuid.UUID) ([]*billing.Bill, error)
	MonthlyRevenueFunc func(ctx context.Context) ([]billing.RevenuePoint, error)

	UpdateStatusCallCount int32
}

func (m *MockBillingRepository) GetByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, billing.ErrBillNotFound
}

func (m *MockBillingRepository) UpdateStatus(ctx context.Context, b *billing.Bill) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, b)
	}
	return nil
}

func (m *MockBillingRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*billing.Bill, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *MockBillingRepository) MonthlyRevenue(ctx context.Context) ([]billing.RevenuePoint, error) {
	if m.MonthlyRevenueFunc != nil {
		return m.MonthlyRevenueFunc(ctx)
	}
	return nil, nil
}

var _ prescription.Repository = (*MockPrescriptionRepository)(nil)

type MockPrescriptionRepository struct {
	CreateFunc        func(ctx context.Context, rx *prescription.Prescription) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*prescription.Prescription, error)
	ListByPatientFunc func(ctx context.Context, patientID uuid.UUID) ([]*prescription.Prescription, error)
	ListByDoctorFunc  func(ctx context.Context, doctorID uuid.UUID) ([]*prescription.Prescription, error)
}

func (m *MockPrescriptionRepository) Create(ctx context.Context, rx *prescription.Prescription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rx)
	}
	return nil
}

func (m *MockPrescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*prescription.Prescription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, prescription.ErrPrescriptionNotFound
}

func (m *MockPrescriptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*prescription.Prescription, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *MockPrescriptionRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*prescription.Prescription, error) {
	if m.ListByDoctorFunc != nil {
		return m.ListByDoctorFunc(ctx, doctorID)
	}
	return nil, nil
}

var _ rulebook.Repository = (*MockRulebookRepository)(nil)

type MockRulebookRepository struct {
	GetFunc    func(ctx context.Context) (*rulebook.Rulebook, error)
	UpsertFunc func(ctx context.Context, content string) (*rulebook.Rulebook, error)
}

func (m *MockRulebookRepository) Get(ctx context.Context) (*rulebook.Rulebook, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return &rulebook.Rulebook{}, nil
}

func (m *MockRulebookRepository) Upsert(ctx context.Context, content string) (*rulebook.Rulebook, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, content)
	}
	return &rulebook.Rulebook{Content: content}, nil
}

var _ roster.Repository = (*MockRosterRepository)(nil)

type MockRosterRepository struct {
	AddNurseShiftFunc          func(ctx context.Context, s *roster.NurseShift) error
	ListNurseShiftsFunc        func(ctx context.Context, nurseID uuid.UUID) ([]*roster.NurseShift, error)
	AddLeaveRequestFunc        func(ctx context.Context, l *roster.LeaveRequest) error
	ListLeaveRequestsFunc      func(ctx context.Context, holderID uuid.UUID) ([]*roster.LeaveRequest, error)
	ListAssignmentsFunc        func(ctx context.Context, nurseID uuid.UUID) ([]*roster.NurseAssignment, error)
	ListSalaryPaymentsFunc     func(ctx context.Context, userID uuid.UUID) ([]*roster.SalaryPayment, error)
	AddFrontDeskScheduleFunc   func(ctx context.Context, s *roster.FrontDeskSchedule) error
	ListFrontDeskSchedulesFunc func(ctx context.Context) ([]*roster.FrontDeskSchedule, error)
	AddCallLogFunc             func(ctx context.Context, c *roster.CallLog) error
	ListCallLogsFunc           func(ctx context.Context) ([]*roster.CallLog, error)
}

func (m *MockRosterRepository) AddNurseShift(ctx context.Context, s *roster.NurseShift) error {
	if m.AddNurseShiftFunc != nil {
		return m.AddNurseShiftFunc(ctx, s)
	}
	return nil
}

func (m *MockRosterRepository) ListNurseShifts(ctx context.Context, nurseID uuid.UUID) ([]*roster.NurseShift, error) {
	if m.ListNurseShiftsFunc != nil {
		return m.ListNurseShiftsFunc(ctx, nurseID)
	}
	return nil, nil
}

func (m *MockRosterRepository) AddLeaveRequest(ctx context.Context, l *roster.LeaveRequest) error {
	if m.AddLeaveRequestFunc != nil {
		return m.AddLeaveRequestFunc(ctx, l)
	}
	return nil
}

func (m *MockRosterRepository) ListLeaveRequests(ctx context.Context, holderID uuid.UUID) ([]*roster.LeaveRequest, error) {
	if m.ListLeaveRequestsFunc != nil {
		return m.ListLeaveRequestsFunc(ctx, holderID)
	}
	return nil, nil
}

func (m *MockRosterRepository) ListAssignments(ctx context.Context, nurseID uuid.UUID) ([]*roster.NurseAssignment, error) {
	if m.ListAssignmentsFunc != nil {
		return m.ListAssignmentsFunc(ctx, nurseID)
	}
	return nil, nil
}

func (m *MockRosterRepository) ListSalaryPayments(ctx context.Context, userID uuid.UUID) ([]*roster.SalaryPayment, error) {
	if m.ListSalaryPaymentsFunc != nil {
		return m.ListSalaryPaymentsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRosterRepository) AddFrontDeskSchedule(ctx context.Context, s *roster.FrontDeskSchedule) error {
	if m.AddFrontDeskScheduleFunc != nil {
		return m.AddFrontDeskScheduleFunc(ctx, s)
	}
	return nil
}

func (m *MockRosterRepository) ListFrontDeskSchedules(ctx context.Context) ([]*roster.FrontDeskSchedule, error) {
	if m.ListFrontDeskSchedulesFunc != nil {
		return m.ListFrontDeskSchedulesFunc(ctx)
	}
	return nil, nil
}

func (m *MockRosterRepository) AddCallLog(ctx context.Context, c *roster.CallLog) error {
	if m.AddCallLogFunc != nil {
		return m.AddCallLogFunc(ctx, c)
	}
	return nil
}

func (m *MockRosterRepository) ListCallLogs(ctx context.Context) ([]*roster.CallLog, error) {
	if m.ListCallLogsFunc != nil {
		return m.ListCallLogsFunc(ctx)
	}
	return nil, nil
}

var _ profile.Repository = (*MockProfileRepository)(nil)

type MockProfileRepository struct {
	EnsureForUserFunc func(ctx context.Context, u *domain.User) error
	GetPatientFunc    func(ctx context.Context, userID uuid.UUID) (*profile.PatientProfile, error)
	UpsertPatientFunc func(ctx context.Context, userID uuid.UUID, cmd *profile.UpdatePatientProfileCommand) error

	EnsureForUserCallCount int32
}

func (m *MockProfileRepository) EnsureForUser(ctx context.Context, u *domain.User) error {
	atomic.AddInt32(&m.EnsureForUserCallCount, 1)
	if m.EnsureForUserFunc != nil {
		return m.EnsureForUserFunc(ctx, u)
	}
	return nil
}

func (m *MockProfileRepository) GetPatient(ctx context.Context, userID uuid.UUID) (*profile.PatientProfile, error) {
	if m.GetPatientFunc != nil {
		return m.GetPatientFunc(ctx, userID)
	}
	return nil, profile.ErrProfileNotFound
}

func (m *MockProfileRepository) UpsertPatient(ctx context.Context, userID uuid.UUID, cmd *profile.UpdatePatientProfileCommand) error {
	if m.UpsertPatientFunc != nil {
		return m.UpsertPatientFunc(ctx, userID, cmd)
	}
	return nil
}

var _ EntryLogRepository = (*MockEntryLogRepository)(nil)

type MockEntryLogRepository struct {
	CreateFunc     func(ctx context.Context, e *domain.EntryLog) error
	ListRecentFunc func(ctx context.Context, limit int) ([]*domain.EntryLog, error)
}

func (m *MockEntryLogRepository) Create(ctx context.Context, e *domain.EntryLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *MockEntryLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.EntryLog, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}
