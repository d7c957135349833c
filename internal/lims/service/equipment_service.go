package service

import (
	"context"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
)

// EquipmentService exposes the calibrated instrument registry.
type EquipmentService struct {
	repo *repository.EquipmentRepository
}

func NewEquipmentService(repo *repository.EquipmentRepository) *EquipmentService {
	return &EquipmentService{repo: repo}
}

func (s *EquipmentService) List(ctx context.Context, status string) ([]entity.Equipment, error) {
	return s.repo.FindAll(ctx, status)
}

func (s *EquipmentService) Get(ctx context.Context, id string) (*entity.Equipment, error) {
	return s.repo.FindByID(ctx, id)
}
