package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/internal/service"
	"github.com/aegiscare/hms/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc   *service.AuthService
	collector *metrics.Collector
}

func NewAuthHandler(authSvc *service.AuthService, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, collector: collector}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
		auth.GET("/me", h.me)
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	// Role is the portal the user is logging in through. When set, the
	// account's actual role must match it.
	Role string `json:"role"`
}

type loginResponse struct {
	*domain.TokenPair
	Username   string         `json:"username"`
	Role       domain.Role    `json:"role"`
	Profile    domain.Profile `json:"profile"`
	RedirectTo string         `json:"redirect_to"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, principal, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password, req.Role, c.ClientIP())
	if err != nil {
		var mismatch *service.RoleMismatchError
		if errors.As(err, &mismatch) {
			h.collector.LoginsTotal.WithLabelValues("role_mismatch").Inc()
		} else {
			h.collector.LoginsTotal.WithLabelValues("invalid").Inc()
		}
		respondServiceError(c, err)
		return
	}

	h.collector.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie("access_token", pair.AccessToken, int(time.Until(pair.ExpiresAt).Seconds()), "/", "", false, true)

	respondOK(c, loginResponse{
		TokenPair:  pair,
		Username:   principal.Username,
		Role:       principal.Role,
		Profile:    principal.Profile,
		RedirectTo: principal.Role.DashboardPath(),
	})
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &service.RegisterCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()

	respondCreated(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, pair)
}

func (h *AuthHandler) logout(c *gin.Context) {
	if p := principalFrom(c); p != nil {
		h.authSvc.Logout(p, c.ClientIP())
	}
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	respondOK(c, gin.H{"redirect_to": "/auth/login"})
}

func (h *AuthHandler) me(c *gin.Context) {
	p := principalFrom(c)
	if p == nil {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	respondOK(c, p)
}
