package repository

import (
	"context"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"gorm.io/gorm"
)

// TemplateRepository reads the testing template catalog.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// FindByLookup loads active templates for a (sample type, requirement)
// pair with their sections and rows. An empty result is not an error; the
// caller falls back to the generic schema.
func (r *TemplateRepository) FindByLookup(ctx context.Context, sampleType, requirement string) ([]entity.TestTemplate, error) {
	var templates []entity.TestTemplate
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("level, order_index")
		}).
		Preload("Sections.Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index")
		}).
		Where("sample_type = ? AND requirement = ? AND is_active = ?", sampleType, requirement, true).
		Find(&templates).Error
	return templates, err
}
