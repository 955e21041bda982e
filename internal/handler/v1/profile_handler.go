package v1

import (
	"github.com/aegiscare/hms/internal/service"
	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the self-service account endpoints shared by every
// role. The patient-record variant lives under /patient.
type ProfileHandler struct {
	profileSvc *service.ProfileService
}

func NewProfileHandler(profileSvc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profile", h.get)
	r.PUT("/profile", h.update)
}

func (h *ProfileHandler) get(c *gin.Context) {
	user, err := h.profileSvc.Get(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, user)
}

func (h *ProfileHandler) update(c *gin.Context) {
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
