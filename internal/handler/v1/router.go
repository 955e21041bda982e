package v1

import (
	"net/http"

	"github.com/aegiscare/hms/internal/config"
	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/service"
	"github.com/aegiscare/hms/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles everything the router needs.
type Services struct {
	Auth         *service.AuthService
	Admin        *service.AdminService
	Appointment  *service.AppointmentService
	Billing      *service.BillingService
	Prescription *service.PrescriptionService
	Profile      *service.ProfileService
	Roster       *service.RosterService
	EntryLog     *service.EntryLogService
}

// NewRouter builds the full HTTP surface: the public landing and auth
// endpoints plus one role-guarded group per dashboard.
func NewRouter(cfg *config.Config, svcs Services, collector *metrics.Collector, log *zap.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(Observe(collector, cfg.App.Name))
	r.Use(Authenticate(svcs.Auth))
	r.Use(RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	// Public landing: facility details for the portal front page.
	r.GET("/", func(c *gin.Context) {
		respondOK(c, gin.H{
			"name":    cfg.Hospital.Name,
			"email":   cfg.Hospital.Email,
			"phone":   cfg.Hospital.Phone,
			"address": cfg.Hospital.Address,
		})
	})

	api := r.Group("/api/v1")

	authHandler := NewAuthHandler(svcs.Auth, collector)
	authHandler.RegisterRoutes(api)

	adminHandler := NewAdminHandler(svcs.Admin, svcs.EntryLog)
	api.GET("/rulebook",
		RequireRoles(collector, domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist, domain.RolePatient),
		adminHandler.Rulebook)

	anyRole := api.Group("", RequireRoles(collector, domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist, domain.RolePatient))
	NewProfileHandler(svcs.Profile).RegisterRoutes(anyRole)

	adminGroup := api.Group("", RequireRoles(collector, domain.RoleAdmin))
	adminHandler.RegisterRoutes(adminGroup)

	patientGroup := api.Group("", RequireRoles(collector, domain.RolePatient))
	NewPatientHandler(svcs.Appointment, svcs.Billing, svcs.Prescription, svcs.Profile, collector).
		RegisterRoutes(patientGroup)

	doctorGroup := api.Group("", RequireRoles(collector, domain.RoleDoctor))
	NewDoctorHandler(svcs.Appointment, svcs.Prescription, svcs.Roster, collector).
		RegisterRoutes(doctorGroup)

	nurseGroup := api.Group("", RequireRoles(collector, domain.RoleNurse))
	NewNurseHandler(svcs.Roster).RegisterRoutes(nurseGroup)

	receptionGroup := api.Group("", RequireRoles(collector, domain.RoleReceptionist))
	NewReceptionistHandler(svcs.Roster).RegisterRoutes(receptionGroup)

	return r
}
