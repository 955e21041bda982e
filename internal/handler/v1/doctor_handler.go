package v1

import (
	"github.com/aegiscare/hms/internal/domain/appointment"
	"github.com/aegiscare/hms/internal/domain/prescription"
	"github.com/aegiscare/hms/internal/service"
	"github.com/aegiscare/hms/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DoctorHandler struct {
	apptSvc   *service.AppointmentService
	rxSvc     *service.PrescriptionService
	rosterSvc *service.RosterService
	collector *metrics.Collector
}

func NewDoctorHandler(
	apptSvc *service.AppointmentService,
	rxSvc *service.PrescriptionService,
	rosterSvc *service.RosterService,
	collector *metrics.Collector,
) *DoctorHandler {
	return &DoctorHandler{apptSvc: apptSvc, rxSvc: rxSvc, rosterSvc: rosterSvc, collector: collector}
}

func (h *DoctorHandler) RegisterRoutes(r *gin.RouterGroup) {
	doctor := r.Group("/doctor")
	{
		doctor.GET("/dashboard", h.dashboard)
		doctor.GET("/appointments", h.listAppointments)
		doctor.POST("/appointments/:id/decide", h.decideAppointment)
		doctor.GET("/patients", h.acceptedPatients)
		doctor.GET("/prescriptions", h.listPrescriptions)
		doctor.POST("/prescriptions", h.issuePrescription)
		doctor.GET("/leaves", h.listLeaves)
		doctor.POST("/leaves", h.requestLeave)
		doctor.GET("/salary", h.salary)
	}
}

func (h *DoctorHandler) dashboard(c *gin.Context) {
	p := principalFrom(c)

	appts, err := h.apptSvc.ListForDoctor(c.Request.Context(), p)
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

func (h *DoctorHandler) listAppointments(c *gin.Context) {
	appts, err := h.apptSvc.ListForDoctor(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appts)
}

type decideAppointmentRequest struct {
	// Status must be "accepted" or "rejected".
	Status string `json:"status" binding:"required"`
}

func (h *DoctorHandler) decideAppointment(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req decideAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	appt, err := h.apptSvc.Decide(c.Request.Context(), principalFrom(c), id, appointment.Status(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(appt.Status)).Inc()
	respondOK(c, appt)
}

func (h *DoctorHandler) acceptedPatients(c *gin.Context) {
	patients, err := h.apptSvc.AcceptedPatients(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}

func (h *DoctorHandler) listPrescriptions(c *gin.Context) {
	rxs, err := h.rxSvc.ListForDoctor(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rxs)
}

type issuePrescriptionRequest struct {
	PatientID    uuid.UUID `json:"patient_id" binding:"required"`
	Diagnosis    string    `json:"diagnosis" binding:"required"`
	Medicines    string    `json:"medicines" binding:"required"`
	Instructions string    `json:"instructions"`
}

func (h *DoctorHandler) issuePrescription(c *gin.Context) {
	var req issuePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	rx, err := h.rxSvc.Issue(c.Request.Context(), principalFrom(c), &prescription.IssuePrescriptionCommand{
		PatientID:    req.PatientID,
		Diagnosis:    req.Diagnosis,
		Medicines:    req.Medicines,
		Instructions: req.Instructions,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.PrescriptionsIssued.Inc()
	respondCreated(c, rx)
}

type leaveRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

func (h *DoctorHandler) requestLeave(c *gin.Context) {
	var req leaveRequest
	if !bindJSON(c, &req) {
		return
	}

	lr, err := h.rosterSvc.RequestLeave(c.Request.Context(), principalFrom(c), req.Date, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, lr)
}

func (h *DoctorHandler) listLeaves(c *gin.Context) {
	leaves, err := h.rosterSvc.ListLeaveRequests(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, leaves)
}

func (h *DoctorHandler) salary(c *gin.Context) {
	view, err := h.rosterSvc.Salary(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, view)
}
