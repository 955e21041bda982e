package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aegiscare/hms/internal/config"
	v1 "github.com/aegiscare/hms/internal/handler/v1"
	"github.com/aegiscare/hms/internal/repository"
	"github.com/aegiscare/hms/internal/seed"
	"github.com/aegiscare/hms/internal/service"
	"github.com/aegiscare/hms/pkg/auth"
	"github.com/aegiscare/hms/pkg/database"
	"github.com/aegiscare/hms/pkg/logger"
	"github.com/aegiscare/hms/pkg/metrics"
	"github.com/aegiscare/hms/pkg/tracer"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	collector := metrics.NewCollector("hms")

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}
	go func() {
		for range time.Tick(15 * time.Second) {
			collector.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
		}
	}()

	userRepo := repository.NewUserRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	billRepo := repository.NewBillingRepository(db)
	rxRepo := repository.NewPrescriptionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	entryRepo := repository.NewEntryLogRepository(db)
	rulebookRepo := repository.NewRulebookRepository(db)

	if err := seed.Run(context.Background(), userRepo, log); err != nil {
		return fmt.Errorf("seeding starter accounts: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWT)
	entrySvc := service.NewEntryLogService(entryRepo, log, collector)

	svcs := v1.Services{
		Auth:         service.NewAuthService(userRepo, jwtManager, entrySvc, log),
		Admin:        service.NewAdminService(userRepo, apptRepo, billRepo, rulebookRepo, log),
		Appointment:  service.NewAppointmentService(apptRepo, userRepo, cfg.Hospital.ConsultationFee, log),
		Billing:      service.NewBillingService(billRepo, log),
		Prescription: service.NewPrescriptionService(rxRepo, apptRepo, userRepo, log),
		Profile:      service.NewProfileService(profileRepo, userRepo, log),
		Roster:       service.NewRosterService(rosterRepo, userRepo, log),
		EntryLog:     entrySvc,
	}

	router := v1.NewRouter(cfg, svcs, collector, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	entrySvc.Shutdown()

	log.Info("server stopped")
	return nil
}
