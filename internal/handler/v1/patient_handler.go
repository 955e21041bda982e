package v1

import (
	"github.com/aegiscare/hms/internal/domain/appointment"
	"github.com/aegiscare/hms/internal/service"
	"github.com/aegiscare/hms/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PatientHandler struct {
	apptSvc    *service.AppointmentService
	billSvc    *service.BillingService
	rxSvc      *service.PrescriptionService
	profileSvc *service.ProfileService
	collector  *metrics.Collector
}

func NewPatientHandler(
	apptSvc *service.AppointmentService,
	billSvc *service.BillingService,
	rxSvc *service.PrescriptionService,
	profileSvc *service.ProfileService,
	collector *metrics.Collector,
) *PatientHandler {
	return &PatientHandler{
		apptSvc:    apptSvc,
		billSvc:    billSvc,
		rxSvc:      rxSvc,
		profileSvc: profileSvc,
		collector:  collector,
	}
}

func (h *PatientHandler) RegisterRoutes(r *gin.RouterGroup) {
	patient := r.Group("/patient")
	{
		patient.GET("/dashboard", h.dashboard)
		patient.GET("/appointments", h.listAppointments)
		patient.GET("/appointments/options", h.bookingOptions)
		patient.POST("/appointments", h.bookAppointment)
		patient.POST("/appointments/:id/cancel", h.cancelAppointment)
		patient.GET("/prescriptions", h.listPrescriptions)
		patient.GET("/bills", h.listBills)
		patient.POST("/bills/:id/pay", h.payBill)
		patient.GET("/profile", h.getProfile)
		patient.PUT("/profile", h.updateProfile)
	}
}

func (h *PatientHandler) dashboard(c *gin.Context) {
	p := principalFrom(c)

	appts, err := h.apptSvc.ListForPatient(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{
		"username":     p.Username,
		"profile":      p.Profile,
		"appointments": appts,
	})
}

func (h *PatientHandler) bookingOptions(c *gin.Context) {
	opts, err := h.apptSvc.Options(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, opts)
}

type bookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
	Problem  string    `json:"problem" binding:"required"`
	Date     string    `json:"date" binding:"required"`
	Time     string    `json:"time" binding:"required"`
}

func (h *PatientHandler) bookAppointment(c *gin.Context) {
	var req bookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.apptSvc.Book(c.Request.Context(), principalFrom(c), &appointment.BookAppointmentCommand{
		DoctorID: req.DoctorID,
		Problem:  req.Problem,
		Date:     req.Date,
		Time:     req.Time,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(appointment.StatusPending)).Inc()

	respondCreated(c, gin.H{
		"appointment":          result.Appointment,
		"bill":                 result.Bill,
		"suggested_specialist": result.SuggestedSpecialist,
	})
}

func (h *PatientHandler) cancelAppointment(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	appt, err := h.apptSvc.Cancel(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(appointment.StatusCancelled)).Inc()
	respondOK(c, appt)
}

func (h *PatientHandler) listAppointments(c *gin.Context) {
	appts, err := h.apptSvc.ListForPatient(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appts)
}

func (h *PatientHandler) listPrescriptions(c *gin.Context) {
	rxs, err := h.rxSvc.ListForPatient(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rxs)
}

func (h *PatientHandler) listBills(c *gin.Context) {
	bills, err := h.billSvc.ListForPatient(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, bills)
}

func (h *PatientHandler) payBill(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	bill, err := h.billSvc.Pay(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.BillsPaidTotal.Inc()
	respondOK(c, bill)
}

func (h *PatientHandler) getProfile(c *gin.Context) {
	rec, err := h.profileSvc.GetPatientRecord(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rec)
}

type updateProfileRequest struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Qualifications string `json:"qualifications"`
}

func (h *PatientHandler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.profileSvc.UpdateOwn(c.Request.Context(), principalFrom(c), &service.UpdateOwnCommand{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Address:        req.Address,
		Qualifications: req.Qualifications,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, user)
}
