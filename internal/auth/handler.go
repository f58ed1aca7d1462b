package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/metrics"
	"docvault-backend/internal/shared/server/respond"
	"docvault-backend/internal/users"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public auth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/signin", h.signin)
}

func (h *Handler) signup(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username (4-20 chars) and password (8-25 chars) are required", nil)
		return
	}

	if err := h.Svc.Signup(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, users.ErrConflict) {
			respond.Error(c, http.StatusConflict, "conflict", "username already exists", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		return
	}

	metrics.SignupsTotal.Inc()
	c.Status(http.StatusCreated)
}

func (h *Handler) signin(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username and password are required", nil)
		return
	}

	token, err := h.Svc.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			metrics.SigninsTotal.WithLabelValues("not_found").Inc()
			respond.Error(c, http.StatusNotFound, "not_found", "user not found, please sign up first", nil)
		case errors.Is(err, ErrInvalidCredentials):
			metrics.SigninsTotal.WithLabelValues("unauthorized").Inc()
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "please check your login credentials", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
		}
		return
	}

	metrics.SigninsTotal.WithLabelValues("success").Inc()
	respond.JSON(c, http.StatusOK, gin.H{"accessToken": token})
}
