package v1

import (
	"github.com/aegiscare/hms/internal/service"
	"github.com/gin-gonic/gin"
)

type NurseHandler struct {
	rosterSvc *service.RosterService
}

func NewNurseHandler(rosterSvc *service.RosterService) *NurseHandler {
	return &NurseHandler{rosterSvc: rosterSvc}
}

func (h *NurseHandler) RegisterRoutes(r *gin.RouterGroup) {
	nurse := r.Group("/nurse")
	{
		nurse.GET("/dashboard", h.dashboard)
		nurse.GET("/shifts", h.listShifts)
		nurse.POST("/shifts", h.addShift)
		nurse.GET("/assignments", h.listAssignments)
		nurse.GET("/leaves", h.listLeaves)
		nurse.POST("/leaves", h.requestLeave)
		nurse.GET("/salary", h.salary)
	}
}

func (h *NurseHandler) dashboard(c *gin.Context) {
	p := principalFrom(c)

	shifts, err := h.rosterSvc.ListNurseShifts(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{
		"username": p.Username,
		"profile":  p.Profile,
		"shifts":   shifts,
	})
}

type addShiftRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

func (h *NurseHandler) addShift(c *gin.Context) {
	var req addShiftRequest
	if !bindJSON(c, &req) {
		return
	}

	shift, err := h.rosterSvc.AddNurseShift(c.Request.Context(), principalFrom(c), req.Date, req.Time)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, shift)
}

func (h *NurseHandler) listShifts(c *gin.Context) {
	shifts, err := h.rosterSvc.ListNurseShifts(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, shifts)
}

func (h *NurseHandler) listAssignments(c *gin.Context) {
	assignments, err := h.rosterSvc.ListAssignments(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, assignments)
}

func (h *NurseHandler) requestLeave(c *gin.Context) {
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

func (h *NurseHandler) listLeaves(c *gin.Context) {
	leaves, err := h.rosterSvc.ListLeaveRequests(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, leaves)
}

func (h *NurseHandler) salary(c *gin.Context) {
	view, err := h.rosterSvc.Salary(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, view)
}
