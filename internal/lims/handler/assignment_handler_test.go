package handler

import (
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

func setupAssignmentHandlerTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	assignmentRepo := repository.NewAssignmentRepository(db)
	svc := service.NewAssignmentService(assignmentRepo)
	reportSvc := service.NewReportService(assignmentRepo, repository.NewInspectionLogRepository(db), nil, zap.NewNop())
	h := NewAssignmentHandler(svc, reportSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/assignments", h.List)
	api.GET("/assignments/:id", h.Get)
	api.POST("/assignments", middleware.RequireRole("reception"), h.Create)
	api.PATCH("/assignments/:id", h.Update)
	api.POST("/assignments/:id/report", middleware.RequireRole("tester"), h.GenerateReport)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestCreateAssignmentGeneratesCode(t *testing.T) {
	env := setupAssignmentHandlerTest(t)

	body := map[string]interface{}{
		"sample_type":   "Lithium Battery",
		"requirements":  []string{"QCVN101:2020+IEC"},
		"assigned_team": "team-battery",
		"quantity":      5,
	}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/assignments", body, testutil.ReceptionToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	code := data["sample_code"].(string)
	wantPrefix := "TA-" + time.Now().Format("2006") + "-"
	if len(code) != len(wantPrefix)+4 || code[:len(wantPrefix)] != wantPrefix {
		t.Errorf("sample_code = %q, want %s0001 shape", code, wantPrefix)
	}
	if data["status"] != "pending" {
		t.Errorf("status = %v, want pending", data["status"])
	}
}

func TestCreateAssignmentParsesTestStandards(t *testing.T) {
	env := setupAssignmentHandlerTest(t)

	body := map[string]interface{}{
		"sample_type":    "Lithium Battery",
		"test_standards": "QCVN101:2020+IEC; IEC 62133-2:2017",
		"assigned_team":  "team-battery",
	}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/assignments", body, testutil.ReceptionToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	reqs := data["requirements"].([]interface{})
	if len(reqs) != 2 {
		t.Fatalf("requirements = %v, want 2 entries", reqs)
	}
	if reqs[0] != "QCVN101:2020+IEC" {
		t.Errorf("first requirement = %v, '+' must not split", reqs[0])
	}
}

func TestAssignmentListScopedToTesterTeam(t *testing.T) {
	env := setupAssignmentHandlerTest(t)
	testutil.SeedTestAssignment(t, env.DB, "asg-a", "TA-2026-0301", "team-battery")
	testutil.SeedTestAssignment(t, env.DB, "asg-b", "TA-2026-0302", "team-adapter")

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/assignments", nil, testutil.TesterToken("team-battery"))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("tester sees %d assignments, want 1", len(items))
	}
	if items[0].(map[string]interface{})["assigned_team"] != "team-battery" {
		t.Error("tester sees another team's assignment")
	}

	// Managers see both teams.
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/assignments", nil, testutil.ManagerToken())
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if got := len(data["items"].([]interface{})); got != 2 {
		t.Errorf("manager sees %d assignments, want 2", got)
	}
}

func TestAssignmentDoneIsTerminal(t *testing.T) {
	env := setupAssignmentHandlerTest(t)
	a := testutil.SeedTestAssignment(t, env.DB, "asg-done", "TA-2026-0303", "team-battery")
	env.DB.Model(&entity.Assignment{}).Where("id = ?", a.ID).Update("status", entity.AssignmentStatusDone)

	w := testutil.DoRequest(env.Router, "PATCH", "/api/v1/assignments/"+a.ID,
		map[string]interface{}{"status": "in_progress"}, testutil.ManagerToken())
	if w.Code != http.StatusConflict {
		t.Errorf("patch done assignment status = %d, want 409", w.Code)
	}
}

func TestGenerateReportWithoutLog(t *testing.T) {
	env := setupAssignmentHandlerTest(t)
	a := testutil.SeedTestAssignment(t, env.DB, "asg-norep", "TA-2026-0304", "team-battery")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/assignments/"+a.ID+"/report", nil, testutil.TesterToken("team-battery"))
	if w.Code != http.StatusConflict {
		t.Errorf("report without log status = %d, want 409", w.Code)
	}

	var reloaded entity.Assignment
	env.DB.First(&reloaded, "id = ?", a.ID)
	if reloaded.Status != entity.AssignmentStatusPending {
		t.Errorf("assignment status = %q, want pending", reloaded.Status)
	}
}
