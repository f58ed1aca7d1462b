package users

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/server/middleware"
	"docvault-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/profile", h.profile)
	rg.GET("/users/:id/user", middleware.RequireRoles(RoleAdmin), h.get)
	rg.GET("/users", middleware.RequireRoles(RoleAdmin), h.list)
	rg.PATCH("/users/:id/role", middleware.RequireRoles(RoleAdmin), h.updateRole)
	rg.DELETE("/users/:id", middleware.RequireRoles(RoleAdmin), h.remove)
}

func (h *Handler) profile(c *gin.Context) {
	username := middleware.UsernameFromContext(c)
	user, err := h.Svc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

func (h *Handler) get(c *gin.Context) {
	user, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}
	resp := make([]UserResponse, 0, len(all))
	for _, user := range all {
		resp = append(resp, toResponse(user))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) updateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "role is required", nil)
		return
	}

	user, err := h.Svc.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			respond.Error(c, http.StatusBadRequest, "validation_error", "role must be one of Admin, Editor, Viewer", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update role", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": fmt.Sprintf("user %s deleted", id)})
}
