package service

import (
	"context"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/google/uuid"
)

// OrderService manages reception-side intake orders. Role projection of
// the returned records is the handler's job.
type OrderService struct {
	repo *repository.OrderRepository
}

func NewOrderService(repo *repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// CreateOrderRequest registers a new intake record. SampleID is generated
// when absent so samples stay coded.
type CreateOrderRequest struct {
	SampleID      string   `json:"sample_id"`
	SampleName    string   `json:"sample_name" binding:"required"`
	SampleType    string   `json:"sample_type" binding:"required"`
	Manufacturer  string   `json:"manufacturer"`
	DateReceived  string   `json:"date_received"`
	Quantity      int      `json:"quantity"`
	Notes         string   `json:"notes"`
	AssignedTests []string `json:"assigned_tests"`
	TotalCost     *float64 `json:"total_cost"`
	CustomerID    *string  `json:"customer_id"`
}

// UpdateOrderRequest patches order fields. Nil means unchanged.
type UpdateOrderRequest struct {
	SampleName    *string   `json:"sample_name"`
	Manufacturer  *string   `json:"manufacturer"`
	Quantity      *int      `json:"quantity"`
	Notes         *string   `json:"notes"`
	AssignedTests *[]string `json:"assigned_tests"`
	TotalCost     *float64  `json:"total_cost"`
	Status        *string   `json:"status"`
}

func (s *OrderService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Order, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *OrderService) Get(ctx context.Context, id string) (*entity.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest, userID string) (*entity.Order, error) {
	sampleID := req.SampleID
	if sampleID == "" {
		generated, err := s.repo.GenerateCode(ctx)
		if err != nil {
			return nil, err
		}
		sampleID = generated
	}

	dateReceived := req.DateReceived
	if dateReceived == "" {
		dateReceived = time.Now().Format("2006-01-02")
	}

	now := time.Now()
	o := &entity.Order{
		ID:            uuid.New().String()[:32],
		SampleID:      sampleID,
		SampleName:    req.SampleName,
		SampleType:    req.SampleType,
		Manufacturer:  req.Manufacturer,
		DateReceived:  dateReceived,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
		Status:        entity.OrderStatusPending,
		AssignedTests: req.AssignedTests,
		TotalCost:     req.TotalCost,
		CustomerID:    req.CustomerID,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Update patches an order. Status moves go through the lifecycle check.
func (s *OrderService) Update(ctx context.Context, id string, req *UpdateOrderRequest) (*entity.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SampleName != nil {
		o.SampleName = *req.SampleName
	}
	if req.Manufacturer != nil {
		o.Manufacturer = *req.Manufacturer
	}
	if req.Quantity != nil {
		o.Quantity = *req.Quantity
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}
	if req.AssignedTests != nil {
		o.AssignedTests = *req.AssignedTests
	}
	if req.TotalCost != nil {
		o.TotalCost = req.TotalCost
	}
	if req.Status != nil && *req.Status != o.Status {
		if !entity.CanTransitionOrder(o.Status, *req.Status) {
			return nil, ErrInvalidTransition
		}
		o.Status = *req.Status
	}

	o.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
