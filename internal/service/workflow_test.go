package service

import (
	"context"
	"testing"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/appointment"
	"github.com/aegiscare/hms/internal/domain/billing"
	"github.com/aegiscare/hms/internal/domain/prescription"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// workflowStore keeps booked records in memory so the full patient journey
// can run against one consistent state: book, accept, prescribe, pay.
type workflowStore struct {
	appts map[uuid.UUID]*appointment.Appointment
	bills map[uuid.UUID]*billing.Bill
}

func newWorkflowStore() *workflowStore {
	return &workflowStore{
		appts: map[uuid.UUID]*appointment.Appointment{},
		bills: map[uuid.UUID]*billing.Bill{},
	}
}

func (st *workflowStore) appointmentRepo() *MockAppointmentRepository {
	return &MockAppointmentRepository{
		BookWithBillFunc: func(ctx context.Context, a *appointment.Appointment, b *billing.Bill) error {
			a.ID = uuid.New()
			b.ID = uuid.New()
			st.appts[a.ID] = a
			st.bills[b.ID] = b
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
			a, ok := st.appts[id]
			if !ok {
				return nil, appointment.ErrAppointmentNotFound
			}
			return a, nil
		},
		UpdateStatusFunc: func(ctx context.Context, a *appointment.Appointment) error {
			st.appts[a.ID] = a
			return nil
		},
		HasAcceptedFunc: func(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
			for _, a := range st.appts {
				if a.DoctorID == doctorID && a.PatientID == patientID && a.Status == appointment.StatusAccepted {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

func (st *workflowStore) billingRepo() *MockBillingRepository {
	return &MockBillingRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
			b, ok := st.bills[id]
			if !ok {
				return nil, billing.ErrBillNotFound
			}
			return b, nil
		},
		UpdateStatusFunc: func(ctx context.Context, b *billing.Bill) error {
			st.bills[b.ID] = b
			return nil
		},
	}
}

// TestPatientJourney walks the whole consultation flow: the patient books
// (which raises an unpaid bill), the doctor accepts, issues a prescription,
// and the patient settles the bill.
func TestPatientJourney(t *testing.T) {
	ctx := context.Background()
	store := newWorkflowStore()

	doctor := doctorUser()
	patient := patientPrincipal()
	doctorP := &domain.Principal{
		UserID:   doctor.ID,
		Username: doctor.Username,
		Role:     domain.RoleDoctor,
		Profile:  doctor.Profile,
	}

	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if id == doctor.ID {
				return doctor, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}

	apptRepo := store.appointmentRepo()
	apptSvc := NewAppointmentService(apptRepo, userRepo, testFee, zap.NewNop())
	billSvc := NewBillingService(store.billingRepo(), zap.NewNop())
	rxRepo := &MockPrescriptionRepository{}
	rxSvc := NewPrescriptionService(rxRepo, apptRepo, userRepo, zap.NewNop())

	// Patient books; the unpaid consultation bill rides along.
	booked, err := apptSvc.Book(ctx, patient, &appointment.BookAppointmentCommand{
		DoctorID: doctor.ID,
		Problem:  "Chest Pain",
		Date:     "2026-09-15",
		Time:     "10:30",
	})
	require.NoError(t, err)
	require.Equal(t, appointment.StatusPending, booked.Appointment.Status)
	require.Equal(t, billing.StatusUnpaid, booked.Bill.Status)

	// No accepted appointment yet, so prescribing is premature.
	_, err = rxSvc.Issue(ctx, doctorP, &prescription.IssuePrescriptionCommand{
		PatientID: patient.UserID,
		Diagnosis: "Angina",
		Medicines: "Nitroglycerin 0.4mg",
	})
	require.ErrorIs(t, err, prescription.ErrNoAcceptedContext)

	// Doctor accepts the pending appointment.
	accepted, err := apptSvc.Decide(ctx, doctorP, booked.Appointment.ID, appointment.StatusAccepted)
	require.NoError(t, err)
	require.Equal(t, appointment.StatusAccepted, accepted.Status)

	// Now the prescription goes through with the doctor's identity snapshotted.
	rx, err := rxSvc.Issue(ctx, doctorP, &prescription.IssuePrescriptionCommand{
		PatientID:    patient.UserID,
		Diagnosis:    "Angina",
		Medicines:    "Nitroglycerin 0.4mg",
		Instructions: "Under the tongue at onset of pain",
	})
	require.NoError(t, err)
	assert.Equal(t, "John Smith", rx.DoctorName)
	assert.Equal(t, "Cardiology", rx.Specialization)

	// Patient pays the consultation bill.
	paid, err := billSvc.Pay(ctx, patient, booked.Bill.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	// And a second submit of the same payment form stays settled.
	again, err := billSvc.Pay(ctx, patient, booked.Bill.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPaid, again.Status)
}
