package handler

import (
	"errors"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct {
	svc *service.EquipmentService
}

func NewEquipmentHandler(svc *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{svc: svc}
}

// List GET /api/v1/equipment
func (h *EquipmentHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		InternalError(c, "list equipment failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// Get GET /api/v1/equipment/:id
func (h *EquipmentHandler) Get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "equipment not found")
			return
		}
		InternalError(c, "get equipment failed: "+err.Error())
		return
	}
	Success(c, e)
}
