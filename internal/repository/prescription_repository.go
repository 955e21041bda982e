package repository

import (
	"context"
	"errors"

	"github.com/aegiscare/hms/internal/domain/prescription"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

var _ prescription.Repository = (*PrescriptionRepository)(nil)

func (r *PrescriptionRepository) Create(ctx context.Context, p *prescription.Prescription) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PrescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*prescription.Prescription, error) {
	var p prescription.Prescription
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, prescription.ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PrescriptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*prescription.Prescription, error) {
	var ps []*prescription.Prescription
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *PrescriptionRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*prescription.Prescription, error) {
	var ps []*prescription.Prescription
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}
