package repository

import (
	"context"
	"errors"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"gorm.io/gorm"
)

// DocumentRepository persists technical document records.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// FindByOwner lists documents attached to one assignment or order.
func (r *DocumentRepository) FindByOwner(ctx context.Context, ownerType, ownerID string) ([]entity.TechnicalDocument, error) {
	var docs []entity.TechnicalDocument
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	return docs, err
}

// FindByID loads one document record.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*entity.TechnicalDocument, error) {
	var doc entity.TechnicalDocument
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Create inserts a new document record.
func (r *DocumentRepository) Create(ctx context.Context, doc *entity.TechnicalDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}
