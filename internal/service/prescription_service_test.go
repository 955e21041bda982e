package service

import (
	"context"
	"testing"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/prescription"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func doctorPrincipal() *domain.Principal {
	return &domain.Principal{
		UserID:   uuid.New(),
		Username: "drsmith",
		Role:     domain.RoleDoctor,
		Profile:  domain.Profile{FirstName: "John", LastName: "Smith", Specialization: "Cardiology"},
	}
}

func TestIssue_RequiresAcceptedAppointment(t *testing.T) {
	apptRepo := &MockAppointmentRepository{
		HasAcceptedFunc: func(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := NewPrescriptionService(&MockPrescriptionRepository{}, apptRepo, &MockUserRepository{}, zap.NewNop())

	_, err := svc.Issue(context.Background(), doctorPrincipal(), &prescription.IssuePrescriptionCommand{
		PatientID: uuid.New(),
		Diagnosis: "Hypertension",
		Medicines: "Amlodipine 5mg",
	})
	assert.ErrorIs(t, err, prescription.ErrNoAcceptedContext)
}

func TestIssue_SnapshotsDoctorIdentity(t *testing.T) {
	doctor := doctorPrincipal()
	patientID := uuid.New()

	var created *prescription.Prescription
	rxRepo := &MockPrescriptionRepository{
		CreateFunc: func(ctx context.Context, rx *prescription.Prescription) error {
			created = rx
			return nil
		},
	}
	apptRepo := &MockAppointmentRepository{
		HasAcceptedFunc: func(ctx context.Context, doctorID, pid uuid.UUID) (bool, error) {
			assert.Equal(t, doctor.UserID, doctorID)
			assert.Equal(t, patientID, pid)
			return true, nil
		},
	}
	svc := NewPrescriptionService(rxRepo, apptRepo, &MockUserRepository{}, zap.NewNop())

	rx, err := svc.Issue(context.Background(), doctor, &prescription.IssuePrescriptionCommand{
		PatientID:    patientID,
		Diagnosis:    "Hypertension",
		Medicines:    "Amlodipine 5mg",
		Instructions: "Once daily",
	})
	require.NoError(t, err)
	assert.Equal(t, "John Smith", created.DoctorName)
	assert.Equal(t, "Cardiology", created.Specialization)
	assert.Equal(t, doctor.UserID, rx.DoctorID)
}

func TestIssue_MissingFieldsRejected(t *testing.T) {
	svc := NewPrescriptionService(&MockPrescriptionRepository{}, &MockAppointmentRepository{}, &MockUserRepository{}, zap.NewNop())

	_, err := svc.Issue(context.Background(), doctorPrincipal(), &prescription.IssuePrescriptionCommand{
		PatientID: uuid.New(),
	})
	var validErr *ValidationError
	require.ErrorAs(t, err, &validErr)
	assert.Len(t, validErr.Fields, 2)
}

func TestIssue_PatientForbidden(t *testing.T) {
	svc := NewPrescriptionService(&MockPrescriptionRepository{}, &MockAppointmentRepository{}, &MockUserRepository{}, zap.NewNop())

	_, err := svc.Issue(context.Background(), patientPrincipal(), &prescription.IssuePrescriptionCommand{
		PatientID: uuid.New(),
		Diagnosis: "Hypertension",
		Medicines: "Amlodipine 5mg",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListForDoctor_DanglingPatientShowsUnknown(t *testing.T) {
	doctor := doctorPrincipal()
	rxRepo := &MockPrescriptionRepository{
		ListByDoctorFunc: func(ctx context.Context, doctorID uuid.UUID) ([]*prescription.Prescription, error) {
			return []*prescription.Prescription{
				{ID: uuid.New(), DoctorID: doctorID, PatientID: uuid.New(), Diagnosis: "Flu"},
			}, nil
		},
	}
	svc := NewPrescriptionService(rxRepo, &MockAppointmentRepository{}, &MockUserRepository{}, zap.NewNop())

	views, err := svc.ListForDoctor(context.Background(), doctor)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Unknown", views[0].PatientName)
}
