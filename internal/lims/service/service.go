package service

import (
	"github.com/ducsssanh/testflow-lab-nexus/internal/config"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/ducsssanh/testflow-lab-nexus/internal/shared/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services is the LIMS service collection.
type Services struct {
	Auth       *AuthService
	Catalog    *CatalogService
	Assignment *AssignmentService
	Inspection *InspectionService
	Report     *ReportService
	Order      *OrderService
	Document   *DocumentService
	Equipment  *EquipmentService
}

// NewServices wires the service graph.
func NewServices(repos *repository.Repositories, rdb *redis.Client, store *storage.Client, cfg *config.Config, logger *zap.Logger) *Services {
	catalog := NewCatalogService(repos.Template, rdb, cfg.Catalog.CacheTTL, logger)
	inspection := NewInspectionService(repos.InspectionLog, repos.Assignment, catalog, logger)
	report := NewReportService(repos.Assignment, repos.InspectionLog, store, logger)

	return &Services{
		Auth:       NewAuthService(repos.User, rdb, cfg),
		Catalog:    catalog,
		Assignment: NewAssignmentService(repos.Assignment),
		Inspection: inspection,
		Report:     report,
		Order:      NewOrderService(repos.Order),
		Document:   NewDocumentService(repos.Document, store),
		Equipment:  NewEquipmentService(repos.Equipment),
	}
}
