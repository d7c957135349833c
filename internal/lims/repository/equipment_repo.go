package repository

import (
	"context"
	"errors"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"gorm.io/gorm"
)

// EquipmentRepository persists the instrument registry.
type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// FindAll lists instruments, optionally by status.
func (r *EquipmentRepository) FindAll(ctx context.Context, status string) ([]entity.Equipment, error) {
	var items []entity.Equipment
	query := r.db.WithContext(ctx).Model(&entity.Equipment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("name").Find(&items).Error
	return items, err
}

// FindByID loads one instrument.
func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*entity.Equipment, error) {
	var e entity.Equipment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
