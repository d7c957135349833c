package handler

import (
	"errors"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Upload POST /api/v1/documents
// Multipart form: file + owner_type + owner_id.
func (h *DocumentHandler) Upload(c *gin.Context) {
	ownerType := c.PostForm("owner_type")
	ownerID := c.PostForm("owner_id")
	if (ownerType != entity.DocOwnerAssignment && ownerType != entity.DocOwnerOrder) || ownerID == "" {
		BadRequest(c, "owner_type must be assignment or order with an owner_id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "read upload failed: "+err.Error())
		return
	}
	defer file.Close()

	doc, err := h.svc.Upload(
		c.Request.Context(),
		ownerType,
		ownerID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
		GetUserID(c),
	)
	if err != nil {
		InternalError(c, "upload document failed: "+err.Error())
		return
	}
	Created(c, doc)
}

// List GET /api/v1/documents?owner_type=assignment&owner_id=xxx
func (h *DocumentHandler) List(c *gin.Context) {
	ownerType := c.Query("owner_type")
	ownerID := c.Query("owner_id")
	if ownerType == "" || ownerID == "" {
		BadRequest(c, "owner_type and owner_id are required")
		return
	}

	docs, err := h.svc.ListByOwner(c.Request.Context(), ownerType, ownerID)
	if err != nil {
		InternalError(c, "list documents failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": docs})
}

// Download GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	url, err := h.svc.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "document not found")
			return
		}
		InternalError(c, "document link failed: "+err.Error())
		return
	}
	Success(c, gin.H{"url": url})
}
