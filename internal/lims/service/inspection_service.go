package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/criteria"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InspectionService owns the inspection log lifecycle: lazy creation on
// first visit, sequenced saves, and the assignment status transitions they
// trigger.
type InspectionService struct {
	logRepo        *repository.InspectionLogRepository
	assignmentRepo *repository.AssignmentRepository
	catalog        *CatalogService
	logger         *zap.Logger
}

func NewInspectionService(logRepo *repository.InspectionLogRepository, assignmentRepo *repository.AssignmentRepository, catalog *CatalogService, logger *zap.Logger) *InspectionService {
	return &InspectionService{
		logRepo:        logRepo,
		assignmentRepo: assignmentRepo,
		catalog:        catalog,
		logger:         logger,
	}
}

// LogView is an inspection log with its decoded sections and the verdicts
// computed on read.
type LogView struct {
	Log      *entity.InspectionLog          `json:"log"`
	Sections []*criteria.RequirementSection `json:"sections"`
	Verdicts map[string]criteria.Verdict    `json:"verdicts"`
}

// GetOrCreateLog returns the active log for an assignment, creating a
// Draft one from the template catalog on first visit.
func (s *InspectionService) GetOrCreateLog(ctx context.Context, assignmentID, userID string) (*LogView, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	log, err := s.logRepo.FindByAssignmentID(ctx, assignmentID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		log, err = s.createLog(ctx, assignment, userID)
		if err != nil {
			return nil, err
		}
	}

	return s.view(log)
}

func (s *InspectionService) createLog(ctx context.Context, assignment *entity.Assignment, userID string) (*entity.InspectionLog, error) {
	subType := ""
	if assignment.SampleSubType != nil {
		subType = *assignment.SampleSubType
	}
	sections := s.catalog.Sections(ctx, assignment.SampleType, subType, assignment.Requirements)

	payload, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("encode sections: %w", err)
	}

	now := time.Now()
	log := &entity.InspectionLog{
		ID:           uuid.New().String()[:32],
		AssignmentID: assignment.ID,
		SampleSymbol: assignment.SampleCode,
		Requirements: assignment.Requirements,
		TestSample:   assignment.TestSample,
		TestingDate:  now.Format("2006-01-02"),
		SampleInfo:   entity.KVMap{},
		Sections:     payload,
		Status:       entity.LogStatusDraft,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create inspection log: %w", err)
	}
	return log, nil
}

// CellEdit is one table write addressed by the stable four-part key.
type CellEdit struct {
	SectionID   string `json:"section_id" binding:"required"`
	CriterionID string `json:"criterion_id" binding:"required"`
	RowID       string `json:"row_id" binding:"required"`
	ColumnID    string `json:"column_id" binding:"required"`
	Value       string `json:"value"`
}

// SupplementaryEdit updates one criterion's metadata block.
type SupplementaryEdit struct {
	CriterionID string                     `json:"criterion_id" binding:"required"`
	Info        criteria.SupplementaryInfo `json:"info"`
}

// SaveLogRequest is one save of the tester's working state.
type SaveLogRequest struct {
	SampleInfo    entity.KVMap        `json:"sample_info"`
	TestingDate   string              `json:"testing_date"`
	Edits         []CellEdit          `json:"edits"`
	Supplementary []SupplementaryEdit `json:"supplementary"`
}

// SaveLog applies cell edits to a Draft log and persists it. The first
// save while the assignment is Pending moves it to In Progress. Saving a
// Completed log is rejected: the assignment is Done and its inspect
// action is disabled.
func (s *InspectionService) SaveLog(ctx context.Context, logID, userID string, req *SaveLogRequest) (*LogView, error) {
	log, err := s.logRepo.FindByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log.Status == entity.LogStatusCompleted {
		return nil, ErrLogCompleted
	}

	sections, err := DecodeSections(log.Sections)
	if err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}

	tree := criteria.NewTree(sections)
	for _, edit := range req.Edits {
		// Unknown coordinates are ignored, not errors: stored payloads
		// stay robust against template evolution.
		if !tree.SetCell(edit.SectionID, edit.CriterionID, edit.RowID, edit.ColumnID, edit.Value) {
			s.logger.Debug("ignored edit at unknown coordinate",
				zap.String("log_id", logID),
				zap.String("criterion_id", edit.CriterionID),
				zap.String("row_id", edit.RowID),
			)
		}
	}
	for _, supp := range req.Supplementary {
		if c := tree.Criterion(supp.CriterionID); c != nil {
			c.Supplementary = supp.Info
		}
	}

	payload, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("encode sections: %w", err)
	}
	log.Sections = payload
	if req.SampleInfo != nil {
		log.SampleInfo = req.SampleInfo
	}
	if req.TestingDate != "" {
		log.TestingDate = req.TestingDate
	}
	log.UpdatedAt = time.Now()

	if err := s.logRepo.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("save inspection log: %w", err)
	}

	if err := s.markInProgress(ctx, log.AssignmentID); err != nil {
		// The log itself is saved; the assignment status catches up on a
		// later save. Surfaced as a warning, never a blocked save.
		s.logger.Warn("assignment status update failed after save",
			zap.String("assignment_id", log.AssignmentID),
			zap.Error(err),
		)
	}

	return s.view(log)
}

func (s *InspectionService) markInProgress(ctx context.Context, assignmentID string) error {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment.Status != entity.AssignmentStatusPending {
		return nil
	}
	assignment.Status = entity.AssignmentStatusInProgress
	assignment.UpdatedAt = time.Now()
	return s.assignmentRepo.Update(ctx, assignment)
}

func (s *InspectionService) view(log *entity.InspectionLog) (*LogView, error) {
	sections, err := DecodeSections(log.Sections)
	if err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	return &LogView{
		Log:      log,
		Sections: sections,
		Verdicts: Verdicts(sections),
	}, nil
}

// DecodeSections unmarshals the stored section payload.
func DecodeSections(payload json.RawMessage) ([]*criteria.RequirementSection, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var sections []*criteria.RequirementSection
	if err := json.Unmarshal(payload, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// Verdicts evaluates every criterion in the tree. Computed on every read,
// never stored.
func Verdicts(sections []*criteria.RequirementSection) map[string]criteria.Verdict {
	verdicts := map[string]criteria.Verdict{}
	tree := criteria.NewTree(sections)
	tree.VisitAll(func(_ string, c *criteria.Criterion) {
		verdicts[c.ID] = criteria.Evaluate(c)
	})
	return verdicts
}
