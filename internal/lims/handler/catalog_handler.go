package handler

import (
	"strings"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/service"
	"github.com/gin-gonic/gin"
)

// CatalogHandler previews the criteria sections a sample configuration
// produces, without touching any assignment.
type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Sections GET /api/v1/catalog/sections?sample_type=&sub_type=&requirements=a,b
func (h *CatalogHandler) Sections(c *gin.Context) {
	sampleType := c.Query("sample_type")
	if sampleType == "" {
		BadRequest(c, "sample_type is required")
		return
	}

	var requirements []string
	if raw := c.Query("requirements"); raw != "" {
		for _, r := range strings.Split(raw, ",") {
			if r = strings.TrimSpace(r); r != "" {
				requirements = append(requirements, r)
			}
		}
	}

	sections := h.svc.Sections(c.Request.Context(), sampleType, c.Query("sub_type"), requirements)
	Success(c, gin.H{
		"sections": sections,
		"verdicts": service.Verdicts(sections),
	})
}
