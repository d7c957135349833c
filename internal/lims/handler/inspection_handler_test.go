package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/service"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/testutil"
	"github.com/ducsssanh/testflow-lab-nexus/internal/middleware"
	"go.uber.org/zap"
)

func setupInspectionHandlerTest(t *testing.T) (*testutil.TestEnv, *entity.Assignment) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	logger := zap.NewNop()
	assignmentRepo := repository.NewAssignmentRepository(db)
	logRepo := repository.NewInspectionLogRepository(db)
	catalog := service.NewCatalogService(repository.NewTemplateRepository(db), nil, time.Minute, logger)
	inspectionSvc := service.NewInspectionService(logRepo, assignmentRepo, catalog, logger)

	h := NewInspectionHandler(inspectionSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/assignments/:id/inspection", h.GetLog)
	api.PUT("/inspection-logs/:id", middleware.RequireRole("tester"), h.SaveLog)

	assignment := testutil.SeedTestAssignment(t, db, "asg-http-001", "TA-2026-0201", "team-battery")
	return &testutil.TestEnv{DB: db, Router: router, T: t}, assignment
}

func TestInspectionLifecycle(t *testing.T) {
	env, assignment := setupInspectionHandlerTest(t)
	token := testutil.TesterToken("team-battery")

	// First visit creates the draft log.
	w := testutil.DoRequest(env.Router, "GET", "/api/v1/assignments/"+assignment.ID+"/inspection", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("GET inspection status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	logData := data["log"].(map[string]interface{})
	logID := logData["id"].(string)
	if logData["status"] != "draft" {
		t.Errorf("log status = %v, want draft", logData["status"])
	}

	sections := data["sections"].([]interface{})
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	section := sections[0].(map[string]interface{})
	criterion := section["criteria"].([]interface{})[0].(map[string]interface{})
	row := criterion["data"].(map[string]interface{})["rows"].([]interface{})[0].(map[string]interface{})

	// Save one result through the API.
	body := map[string]interface{}{
		"edits": []map[string]string{{
			"section_id":   section["id"].(string),
			"criterion_id": criterion["id"].(string),
			"row_id":       row["id"].(string),
			"column_id":    "results",
			"value":        "Fail",
		}},
	}
	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/inspection-logs/"+logID, body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT save status = %d, body = %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	verdicts := data["verdicts"].(map[string]interface{})
	if verdicts[criterion["id"].(string)] != "Fail" {
		t.Errorf("verdict = %v, want Fail", verdicts[criterion["id"].(string)])
	}

	// First save moved the assignment to in_progress.
	var reloaded entity.Assignment
	if err := env.DB.First(&reloaded, "id = ?", assignment.ID).Error; err != nil {
		t.Fatalf("reload assignment: %v", err)
	}
	if reloaded.Status != entity.AssignmentStatusInProgress {
		t.Errorf("assignment status = %q, want in_progress", reloaded.Status)
	}

	// A completed log rejects further saves.
	env.DB.Model(&entity.InspectionLog{}).
		Where("id = ?", logID).
		Update("status", entity.LogStatusCompleted)
	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/inspection-logs/"+logID, body, token)
	if w.Code != http.StatusConflict {
		t.Errorf("save after completion status = %d, want 409", w.Code)
	}
}

func TestInspectionRequiresTesterRole(t *testing.T) {
	env, assignment := setupInspectionHandlerTest(t)

	// Reception can look but not save.
	token := testutil.ReceptionToken()
	w := testutil.DoRequest(env.Router, "GET", "/api/v1/assignments/"+assignment.ID+"/inspection", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("GET inspection as reception = %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/inspection-logs/any", map[string]interface{}{}, token)
	if w.Code != http.StatusForbidden {
		t.Errorf("PUT as reception status = %d, want 403", w.Code)
	}

	// Managers pass every role gate.
	resp := testutil.DoRequest(env.Router, "GET", "/api/v1/assignments/"+assignment.ID+"/inspection", nil, testutil.ManagerToken())
	if resp.Code != http.StatusOK {
		t.Errorf("GET inspection as manager = %d", resp.Code)
	}
}

func TestInspectionUnknownAssignment(t *testing.T) {
	env, _ := setupInspectionHandlerTest(t)

	w := testutil.DoRequest(env.Router, "GET", fmt.Sprintf("/api/v1/assignments/%s/inspection", "missing"), nil, testutil.TesterToken("team-battery"))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
