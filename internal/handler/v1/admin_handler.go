package v1

import (
	"github.com/aegiscare/hms/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminSvc *service.AdminService
	entrySvc *service.EntryLogService
}

func NewAdminHandler(adminSvc *service.AdminService, entrySvc *service.EntryLogService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, entrySvc: entrySvc}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/dashboard", h.dashboard)
		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.createUser)
		admin.PUT("/users/:id", h.updateUser)
		admin.DELETE("/users/:id", h.deleteUser)
		admin.GET("/entries", h.entries)
		admin.PUT("/rulebook", h.updateRulebook)
	}
}

func (h *AdminHandler) dashboard(c *gin.Context) {
	stats, err := h.adminSvc.Dashboard(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, stats)
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.adminSvc.ListUsers(c.Request.Context(), principalFrom(c), c.Query("role"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, users)
}

type createUserRequest struct {
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email"`
	Password       string `json:"password" binding:"required"`
	Role           string `json:"role" binding:"required"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Specialization string `json:"specialization"`
	Qualifications string `json:"qualifications"`
	Salary         int64  `json:"salary"`
}

func (h *AdminHandler) createUser(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminSvc.CreateUser(c.Request.Context(), principalFrom(c), &service.CreateStaffCommand{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Address:        req.Address,
		Specialization: req.Specialization,
		Qualifications: req.Qualifications,
		Salary:         req.Salary,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, user)
}

type updateUserRequest struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Specialization string `json:"specialization"`
	Qualifications string `json:"qualifications"`
	Salary         int64  `json:"salary"`
}

func (h *AdminHandler) updateUser(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminSvc.UpdateUser(c.Request.Context(), principalFrom(c), id, &service.UpdateStaffCommand{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Address:        req.Address,
		Specialization: req.Specialization,
		Qualifications: req.Qualifications,
		Salary:         req.Salary,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, user)
}

func (h *AdminHandler) deleteUser(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.adminSvc.DeleteUser(c.Request.Context(), principalFrom(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": id})
}

func (h *AdminHandler) entries(c *gin.Context) {
	limit := parseQueryInt(c, "limit", 200)
	entries, err := h.entrySvc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}

type rulebookRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *AdminHandler) updateRulebook(c *gin.Context) {
	var req rulebookRequest
	if !bindJSON(c, &req) {
		return
	}

	rb, err := h.adminSvc.UpdateRulebook(c.Request.Context(), principalFrom(c), req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rb)
}

// Rulebook is readable by any authenticated user; only admins may edit.
func (h *AdminHandler) Rulebook(c *gin.Context) {
	rb, err := h.adminSvc.Rulebook(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rb)
}
