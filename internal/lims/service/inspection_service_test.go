package service

import (
	"context"
	"testing"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/criteria"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupInspectionTest(t *testing.T) (*gorm.DB, *InspectionService, *entity.Assignment) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	logger := zap.NewNop()
	catalog := NewCatalogService(repository.NewTemplateRepository(db), nil, time.Minute, logger)
	svc := NewInspectionService(
		repository.NewInspectionLogRepository(db),
		repository.NewAssignmentRepository(db),
		catalog,
		logger,
	)

	assignment := testutil.SeedTestAssignment(t, db, "asg-insp-001", "TA-2026-0001", "team-battery")
	return db, svc, assignment
}

func TestGetOrCreateLogCreatesDraft(t *testing.T) {
	db, svc, assignment := setupInspectionTest(t)
	ctx := context.Background()

	view, err := svc.GetOrCreateLog(ctx, assignment.ID, "test-tester-001")
	if err != nil {
		t.Fatalf("GetOrCreateLog: %v", err)
	}
	if view.Log.Status != entity.LogStatusDraft {
		t.Errorf("status = %q, want draft", view.Log.Status)
	}
	if view.Log.SampleSymbol != assignment.SampleCode {
		t.Errorf("sample symbol = %q, want %q", view.Log.SampleSymbol, assignment.SampleCode)
	}
	if len(view.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(view.Sections))
	}
	if view.Sections[0].RequirementName != "QCVN101:2020+IEC" {
		t.Errorf("requirement = %q", view.Sections[0].RequirementName)
	}
	// Untouched tables evaluate to N/A.
	for id, verdict := range view.Verdicts {
		if verdict != criteria.VerdictNA {
			t.Errorf("verdict[%s] = %q, want N/A", id, verdict)
		}
	}

	// A second visit returns the same log, not a new one.
	again, err := svc.GetOrCreateLog(ctx, assignment.ID, "test-tester-001")
	if err != nil {
		t.Fatalf("GetOrCreateLog again: %v", err)
	}
	if again.Log.ID != view.Log.ID {
		t.Errorf("second visit created a new log: %s != %s", again.Log.ID, view.Log.ID)
	}

	var count int64
	db.Model(&entity.InspectionLog{}).Where("assignment_id = ?", assignment.ID).Count(&count)
	if count != 1 {
		t.Errorf("log count = %d, want 1", count)
	}
}

func TestSaveLogMovesAssignmentInProgress(t *testing.T) {
	db, svc, assignment := setupInspectionTest(t)
	ctx := context.Background()

	view, err := svc.GetOrCreateLog(ctx, assignment.ID, "test-tester-001")
	if err != nil {
		t.Fatalf("GetOrCreateLog: %v", err)
	}

	section := view.Sections[0]
	criterion := section.Criteria[0]
	row := criterion.Data.Rows[0]

	saved, err := svc.SaveLog(ctx, view.Log.ID, "test-tester-001", &SaveLogRequest{
		Edits: []CellEdit{
			{SectionID: section.ID, CriterionID: criterion.ID, RowID: row.ID, ColumnID: "results", Value: "Pass"},
		},
	})
	if err != nil {
		t.Fatalf("SaveLog: %v", err)
	}

	got := saved.Sections[0].Criteria[0].Data.Rows[0].Values["results"]
	if got != "Pass" {
		t.Errorf("saved value = %q, want Pass", got)
	}
	if saved.Verdicts[criterion.ID] != criteria.VerdictPass {
		t.Errorf("verdict = %q, want Pass", saved.Verdicts[criterion.ID])
	}

	var reloaded entity.Assignment
	if err := db.First(&reloaded, "id = ?", assignment.ID).Error; err != nil {
		t.Fatalf("reload assignment: %v", err)
	}
	if reloaded.Status != entity.AssignmentStatusInProgress {
		t.Errorf("assignment status = %q, want in_progress", reloaded.Status)
	}

	// A later save keeps the assignment in progress.
	if _, err := svc.SaveLog(ctx, view.Log.ID, "test-tester-001", &SaveLogRequest{
		Edits: []CellEdit{
			{SectionID: section.ID, CriterionID: criterion.ID, RowID: row.ID, ColumnID: "results", Value: "Fail"},
		},
	}); err != nil {
		t.Fatalf("second SaveLog: %v", err)
	}
	db.First(&reloaded, "id = ?", assignment.ID)
	if reloaded.Status != entity.AssignmentStatusInProgress {
		t.Errorf("assignment status after second save = %q", reloaded.Status)
	}
}

func TestSaveLogIgnoresUnknownCoordinates(t *testing.T) {
	_, svc, assignment := setupInspectionTest(t)
	ctx := context.Background()

	view, err := svc.GetOrCreateLog(ctx, assignment.ID, "test-tester-001")
	if err != nil {
		t.Fatalf("GetOrCreateLog: %v", err)
	}

	saved, err := svc.SaveLog(ctx, view.Log.ID, "test-tester-001", &SaveLogRequest{
		Edits: []CellEdit{
			{SectionID: "nope", CriterionID: "nope", RowID: "X#99", ColumnID: "ghost", Value: "zzz"},
		},
	})
	if err != nil {
		t.Fatalf("SaveLog with unknown coordinates: %v", err)
	}
	for _, row := range saved.Sections[0].Criteria[0].Data.Rows {
		if row.Values["ghost"] != "" {
			t.Errorf("unknown column leaked into row %s", row.ID)
		}
	}
}

func TestSaveLogRejectsCompleted(t *testing.T) {
	db, svc, assignment := setupInspectionTest(t)
	ctx := context.Background()

	view, err := svc.GetOrCreateLog(ctx, assignment.ID, "test-tester-001")
	if err != nil {
		t.Fatalf("GetOrCreateLog: %v", err)
	}

	db.Model(&entity.InspectionLog{}).
		Where("id = ?", view.Log.ID).
		Update("status", entity.LogStatusCompleted)

	_, err = svc.SaveLog(ctx, view.Log.ID, "test-tester-001", &SaveLogRequest{
		Edits: []CellEdit{{SectionID: "s", CriterionID: "c", RowID: "r", ColumnID: "v", Value: "x"}},
	})
	if err != ErrLogCompleted {
		t.Errorf("err = %v, want ErrLogCompleted", err)
	}
}
