package handler

import (
	"errors"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/access"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	svc    *service.AssignmentService
	report *service.ReportService
}

func NewAssignmentHandler(svc *service.AssignmentService, report *service.ReportService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc, report: report}
}

// List GET /api/v1/assignments
// Testers see their own team's queue; managers see everything.
func (h *AssignmentHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]string{
		"status":      c.Query("status"),
		"sample_type": c.Query("sample_type"),
		"team":        c.Query("team"),
	}
	if GetUserRole(c) == access.RoleTester {
		filters["team"] = GetUserTeam(c)
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, "list assignments failed: "+err.Error())
		return
	}

	Success(c, gin.H{
		"items": items,
		"pagination": Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages(total, pageSize),
		},
	})
}

// Get GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	a, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "assignment not found")
			return
		}
		InternalError(c, "get assignment failed: "+err.Error())
		return
	}
	Success(c, a)
}

// Create POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	a, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		InternalError(c, "create assignment failed: "+err.Error())
		return
	}
	Created(c, a)
}

// Update PATCH /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req service.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	a, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "assignment not found")
		case errors.Is(err, service.ErrInvalidTransition):
			Conflict(c, "assignment status does not allow this change")
		default:
			InternalError(c, "update assignment failed: "+err.Error())
		}
		return
	}
	Success(c, a)
}

// GenerateReport POST /api/v1/assignments/:id/report
// Closes the assignment; afterwards its inspection log is read-only.
func (h *AssignmentHandler) GenerateReport(c *gin.Context) {
	result, err := h.report.GenerateReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "assignment not found")
		case errors.Is(err, service.ErrNoInspectionLog):
			Conflict(c, "no inspection data recorded for this assignment")
		case errors.Is(err, service.ErrLogCompleted):
			Conflict(c, "report already generated")
		case errors.Is(err, service.ErrInvalidTransition):
			Conflict(c, "assignment status does not allow report generation")
		default:
			InternalError(c, "generate report failed: "+err.Error())
		}
		return
	}
	Success(c, result)
}

// DownloadReport GET /api/v1/assignments/:id/report
func (h *AssignmentHandler) DownloadReport(c *gin.Context) {
	url, err := h.report.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "report not found")
			return
		}
		InternalError(c, "report link failed: "+err.Error())
		return
	}
	Success(c, gin.H{"url": url})
}
