package repository

import (
	"context"
	"errors"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"gorm.io/gorm"
)

// InspectionLogRepository persists inspection logs, one per assignment.
type InspectionLogRepository struct {
	db *gorm.DB
}

func NewInspectionLogRepository(db *gorm.DB) *InspectionLogRepository {
	return &InspectionLogRepository{db: db}
}

// FindByID loads one log.
func (r *InspectionLogRepository) FindByID(ctx context.Context, id string) (*entity.InspectionLog, error) {
	var log entity.InspectionLog
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindByAssignmentID loads the active log for an assignment.
func (r *InspectionLogRepository) FindByAssignmentID(ctx context.Context, assignmentID string) (*entity.InspectionLog, error) {
	var log entity.InspectionLog
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// Create inserts a new log.
func (r *InspectionLogRepository) Create(ctx context.Context, log *entity.InspectionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// Update saves a log. Saves for one log are sequenced by the single-editor
// workflow; last write wins.
func (r *InspectionLogRepository) Update(ctx context.Context, log *entity.InspectionLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}
