package v1

import (
	"github.com/aegiscare/hms/internal/domain/roster"
	"github.com/aegiscare/hms/internal/service"
	"github.com/gin-gonic/gin"
)

type ReceptionistHandler struct {
	rosterSvc *service.RosterService
}

func NewReceptionistHandler(rosterSvc *service.RosterService) *ReceptionistHandler {
	return &ReceptionistHandler{rosterSvc: rosterSvc}
}

func (h *ReceptionistHandler) RegisterRoutes(r *gin.RouterGroup) {
	reception := r.Group("/receptionist")
	{
		reception.GET("/dashboard", h.dashboard)
		reception.GET("/schedules", h.listSchedules)
		reception.POST("/schedules", h.addSchedule)
		reception.GET("/calls", h.listCalls)
		reception.POST("/calls", h.logCall)
		reception.GET("/leaves", h.listLeaves)
		reception.POST("/leaves", h.requestLeave)
		reception.GET("/salary", h.salary)
	}
}

func (h *ReceptionistHandler) dashboard(c *gin.Context) {
	p := principalFrom(c)

	schedules, err := h.rosterSvc.ListFrontDeskSchedules(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{
		"username":  p.Username,
		"profile":   p.Profile,
		"schedules": schedules,
	})
}

type addScheduleRequest struct {
	Doctor  string `json:"doctor" binding:"required"`
	Patient string `json:"patient" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	Status  string `json:"status"`
}

func (h *ReceptionistHandler) addSchedule(c *gin.Context) {
	var req addScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.rosterSvc.AddFrontDeskSchedule(c.Request.Context(), principalFrom(c), &roster.FrontDeskSchedule{
		Doctor:  req.Doctor,
		Patient: req.Patient,
		Date:    req.Date,
		Time:    req.Time,
		Status:  req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, entry)
}

func (h *ReceptionistHandler) listSchedules(c *gin.Context) {
	schedules, err := h.rosterSvc.ListFrontDeskSchedules(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, schedules)
}

type logCallRequest struct {
	CallerName string `json:"caller_name" binding:"required"`
	Phone      string `json:"phone"`
	Note       string `json:"note"`
}

func (h *ReceptionistHandler) logCall(c *gin.Context) {
	var req logCallRequest
	if !bindJSON(c, &req) {
		return
	}

	cl, err := h.rosterSvc.LogCall(c.Request.Context(), principalFrom(c), req.CallerName, req.Phone, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, cl)
}

func (h *ReceptionistHandler) listCalls(c *gin.Context) {
	calls, err := h.rosterSvc.ListCallLogs(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, calls)
}

func (h *ReceptionistHandler) requestLeave(c *gin.Context) {
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

func (h *ReceptionistHandler) listLeaves(c *gin.Context) {
	leaves, err := h.rosterSvc.ListLeaveRequests(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, leaves)
}

func (h *ReceptionistHandler) salary(c *gin.Context) {
	view, err := h.rosterSvc.Salary(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, view)
}
