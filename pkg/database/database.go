package database

import (
	"fmt"
	"time"

	"github.com/aegiscare/hms/internal/config"
	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/domain/appointment"
	"github.com/aegiscare/hms/internal/domain/billing"
	"github.com/aegiscare/hms/internal/domain/prescription"
	"github.com/aegiscare/hms/internal/domain/profile"
	"github.com/aegiscare/hms/internal/domain/roster"
	"github.com/aegiscare/hms/internal/domain/rulebook"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:          true,
		DisableAutomaticPing: false,
		// Repositories match on gorm.ErrDuplicatedKey; without translation
		// the driver surfaces raw pgconn errors instead.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	models := []any{
		&domain.User{},
		&domain.EntryLog{},
		&appointment.Appointment{},
		&billing.Bill{},
		&prescription.Prescription{},
		&profile.PatientProfile{},
		&profile.DoctorProfile{},
		&profile.NurseProfile{},
		&profile.ReceptionistProfile{},
		&roster.NurseShift{},
		&roster.LeaveRequest{},
		&roster.NurseAssignment{},
		&roster.SalaryPayment{},
		&roster.FrontDeskSchedule{},
		&roster.CallLog{},
		&rulebook.Rulebook{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{
			name:  "idx_appointments_doctor_status",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_doctor_status ON appointments (doctor_id, status, scheduled_at)`,
		},
		{
			name:  "idx_billing_patient_status",
			query: `CREATE INDEX IF NOT EXISTS idx_billing_patient_status ON billing (patient_id, status)`,
		},
		{
			name:  "idx_billing_revenue",
			query: `CREATE INDEX IF NOT EXISTS idx_billing_revenue ON billing (date, amount)`,
		},
		{
			name:  "idx_entries_recent",
			query: `CREATE INDEX IF NOT EXISTS idx_entries_recent ON entries (occurred_at DESC)`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
