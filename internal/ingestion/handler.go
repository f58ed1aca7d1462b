package ingestion

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/server/middleware"
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

// RegisterRoutes attaches ingestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	editors := middleware.RequireRoles(users.RoleEditor, users.RoleAdmin)
	admins := middleware.RequireRoles(users.RoleAdmin)

	rg.POST("/ingestion/trigger/:documentId", editors, h.trigger)
	rg.GET("/ingestion/all", admins, h.listAll)
	rg.GET("/ingestion/:id/status", h.status)
	rg.PATCH("/ingestion/:id/complete", admins, h.complete)
	rg.PATCH("/ingestion/:id/fail", admins, h.fail)
}

func (h *Handler) trigger(c *gin.Context) {
	ing, err := h.Svc.Trigger(c.Request.Context(), c.Param("documentId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to trigger ingestion", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"ingestionId": ing.ID})
}

func (h *Handler) status(c *gin.Context) {
	ing, err := h.Svc.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "ingestion not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch ingestion", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(ing))
}

func (h *Handler) listAll(c *gin.Context) {
	ings, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list ingestions", nil)
		return
	}
	resp := make([]IngestionResponse, 0, len(ings))
	for _, ing := range ings {
		resp = append(resp, toResponse(ing))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) complete(c *gin.Context) {
	h.finalize(c, h.Svc.Complete)
}

func (h *Handler) fail(c *gin.Context) {
	h.finalize(c, h.Svc.Fail)
}

func (h *Handler) finalize(c *gin.Context, fn func(ctx context.Context, id string) error) {
	if err := fn(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "ingestion not found", nil)
		case errors.Is(err, ErrAlreadyFinalized):
			respond.Error(c, http.StatusConflict, "conflict", "ingestion already finalized", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update ingestion", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
