package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"gorm.io/gorm"
)

// AssignmentRepository persists testing assignments.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// FindAll lists assignments with optional team/status filters.
func (r *AssignmentRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Assignment, int64, error) {
	var items []entity.Assignment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Assignment{})

	if team := filters["team"]; team != "" {
		query = query.Where("assigned_team = ?", team)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if sampleType := filters["sample_type"]; sampleType != "" {
		query = query.Where("sample_type = ?", sampleType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID loads one assignment.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*entity.Assignment, error) {
	var a entity.Assignment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *entity.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// Update saves an assignment.
func (r *AssignmentRepository) Update(ctx context.Context, a *entity.Assignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// GenerateCode produces a sample code TA-{year}-{4 digits}.
func (r *AssignmentRepository) GenerateCode(ctx context.Context) (string, error) {
	year := time.Now().Format("2006")
	prefix := fmt.Sprintf("TA-%s-", year)

	var maxCode string
	err := r.db.WithContext(ctx).
		Model(&entity.Assignment{}).
		Select("COALESCE(MAX(sample_code), '')").
		Where("sample_code LIKE ?", prefix+"%").
		Scan(&maxCode).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxCode != "" {
		fmt.Sscanf(maxCode, "TA-"+year+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("TA-%s-%04d", year, seq), nil
}
