package service

import (
	"context"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/criteria"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/google/uuid"
)

// AssignmentService manages testing assignments and their lifecycle.
type AssignmentService struct {
	repo *repository.AssignmentRepository
}

func NewAssignmentService(repo *repository.AssignmentRepository) *AssignmentService {
	return &AssignmentService{repo: repo}
}

// CreateAssignmentRequest registers a received sample for testing.
// Requirements may be listed explicitly or derived from the free-text
// TestStandards string.
type CreateAssignmentRequest struct {
	SampleCode    string   `json:"sample_code"`
	SampleType    string   `json:"sample_type" binding:"required"`
	SampleSubType *string  `json:"sample_sub_type"`
	Quantity      int      `json:"quantity"`
	Requirements  []string `json:"requirements"`
	TestStandards string   `json:"test_standards"`
	AssignedTeam  string   `json:"assigned_team" binding:"required"`
	TestSample    string   `json:"test_sample"`
}

// UpdateAssignmentRequest patches assignment fields. Nil means unchanged.
type UpdateAssignmentRequest struct {
	SampleSubType *string   `json:"sample_sub_type"`
	Quantity      *int      `json:"quantity"`
	Requirements  *[]string `json:"requirements"`
	AssignedTeam  *string   `json:"assigned_team"`
	TestSample    *string   `json:"test_sample"`
	Status        *string   `json:"status"`
}

func (s *AssignmentService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Assignment, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *AssignmentService) Get(ctx context.Context, id string) (*entity.Assignment, error) {
	return s.repo.FindByID(ctx, id)
}

// Create registers a new assignment in Pending. A sample code is generated
// when the caller does not provide one.
func (s *AssignmentService) Create(ctx context.Context, req *CreateAssignmentRequest, userID string) (*entity.Assignment, error) {
	code := req.SampleCode
	if code == "" {
		generated, err := s.repo.GenerateCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	}

	requirements := req.Requirements
	if len(requirements) == 0 {
		requirements = criteria.ParseRequirements(req.TestStandards)
	}

	now := time.Now()
	a := &entity.Assignment{
		ID:            uuid.New().String()[:32],
		SampleCode:    code,
		SampleType:    req.SampleType,
		SampleSubType: req.SampleSubType,
		Quantity:      req.Quantity,
		Requirements:  requirements,
		ReceivedAt:    now,
		Status:        entity.AssignmentStatusPending,
		AssignedTeam:  req.AssignedTeam,
		AssignedBy:    userID,
		TestSample:    req.TestSample,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update patches an assignment. Status moves go through the lifecycle
// check; a Done assignment accepts no changes at all.
func (s *AssignmentService) Update(ctx context.Context, id string, req *UpdateAssignmentRequest) (*entity.Assignment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == entity.AssignmentStatusDone {
		return nil, ErrInvalidTransition
	}

	if req.SampleSubType != nil {
		a.SampleSubType = req.SampleSubType
	}
	if req.Quantity != nil {
		a.Quantity = *req.Quantity
	}
	if req.Requirements != nil {
		a.Requirements = *req.Requirements
	}
	if req.AssignedTeam != nil {
		a.AssignedTeam = *req.AssignedTeam
	}
	if req.TestSample != nil {
		a.TestSample = *req.TestSample
	}
	if req.Status != nil && *req.Status != a.Status {
		if !entity.CanTransitionAssignment(a.Status, *req.Status) {
			return nil, ErrInvalidTransition
		}
		a.Status = *req.Status
	}

	a.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
