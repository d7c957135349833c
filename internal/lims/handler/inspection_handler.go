package handler

import (
	"errors"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type InspectionHandler struct {
	svc *service.InspectionService
}

func NewInspectionHandler(svc *service.InspectionService) *InspectionHandler {
	return &InspectionHandler{svc: svc}
}

// GetLog GET /api/v1/assignments/:id/inspection
// Returns the assignment's inspection log, creating a draft from the
// template catalog the first time it is opened.
func (h *InspectionHandler) GetLog(c *gin.Context) {
	view, err := h.svc.GetOrCreateLog(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "assignment not found")
			return
		}
		InternalError(c, "load inspection log failed: "+err.Error())
		return
	}
	Success(c, view)
}

// SaveLog PUT /api/v1/inspection-logs/:id
func (h *InspectionHandler) SaveLog(c *gin.Context) {
	var req service.SaveLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	view, err := h.svc.SaveLog(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "inspection log not found")
		case errors.Is(err, service.ErrLogCompleted):
			Conflict(c, "inspection log is completed and read-only")
		default:
			InternalError(c, "save inspection log failed: "+err.Error())
		}
		return
	}
	Success(c, view)
}
