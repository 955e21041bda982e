package repository

import (
	"context"
	"errors"

	"github.com/aegiscare/hms/internal/domain/appointment"
	"github.com/aegiscare/hms/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

func (r *AppointmentRepository) BookWithBill(ctx context.Context, a *appointment.Appointment, b *billing.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return tx.Create(b).Error
	})
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *appointment.Appointment) error {
	return r.db.WithContext(ctx).Model(&appointment.Appointment{}).Where("id = ?", a.ID).Updates(map[string]any{
		"status":       a.Status,
		"cancelled_at": a.CancelledAt,
		"decided_at":   a.DecidedAt,
	}).Error
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	var appts []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("scheduled_at").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error) {
	var appts []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("scheduled_at").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentRepository) HasAccepted(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).
		Where("doctor_id = ? AND patient_id = ? AND status = ?", doctorID, patientID, appointment.StatusAccepted).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AppointmentRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
