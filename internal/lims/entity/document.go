package entity

import (
	"strings"
	"time"
)

// TechnicalDocument is an uploaded datasheet/manual attached to an
// assignment or order. ObjectKey is the storage locator in the bucket.
type TechnicalDocument struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	OwnerType   string    `json:"owner_type" gorm:"size:20;index:idx_doc_owner"` // assignment/order
	OwnerID     string    `json:"owner_id" gorm:"size:32;index:idx_doc_owner"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Kind        string    `json:"kind" gorm:"size:20"`
	MimeType    string    `json:"mime_type" gorm:"size:100"`
	Size        int64     `json:"size"`
	ObjectKey   string    `json:"-" gorm:"size:500"`
	UploadedBy  string    `json:"uploaded_by" gorm:"size:32"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (TechnicalDocument) TableName() string {
	return "lims_technical_documents"
}

const (
	DocOwnerAssignment = "assignment"
	DocOwnerOrder      = "order"
)

// DocumentKindFromMime derives the display kind from a mime type.
func DocumentKindFromMime(mime string) string {
	switch {
	case strings.Contains(mime, "pdf"):
		return "pdf"
	case strings.Contains(mime, "wordprocessingml"):
		return "docx"
	case strings.Contains(mime, "msword"):
		return "doc"
	case strings.Contains(mime, "spreadsheetml"):
		return "xlsx"
	case strings.HasPrefix(mime, "image/"):
		return "image"
	default:
		return "file"
	}
}
