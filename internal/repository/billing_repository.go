package repository

import (
	"context"
	"errors"

	"github.com/aegiscare/hms/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

var _ billing.Repository = (*BillingRepository)(nil)

func (r *BillingRepository) GetByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var b billing.Bill
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billing.ErrBillNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BillingRepository) UpdateStatus(ctx context.Context, b *billing.Bill) error {
	return r.db.WithContext(ctx).Model(&billing.Bill{}).Where("id = ?", b.ID).Updates(map[string]any{
		"status":  b.Status,
		"paid_at": b.PaidAt,
	}).Error
}

func (r *BillingRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*billing.Bill, error) {
	var bills []*billing.Bill
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *BillingRepository) MonthlyRevenue(ctx context.Context) ([]billing.RevenuePoint, error) {
	var points []billing.RevenuePoint
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(YEAR FROM date)::int AS year,
		       EXTRACT(MONTH FROM date)::int AS month,
		       COALESCE(SUM(amount), 0)::bigint AS total
		FROM billing
		GROUP BY 1, 2
		ORDER BY 1, 2`).Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}
