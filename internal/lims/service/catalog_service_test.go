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

func seedBatteryTemplate(t *testing.T, db *gorm.DB) {
	t.Helper()
	tpl := &entity.TestTemplate{
		ID:          "tpl-battery-001",
		SampleType:  "Lithium Battery",
		Requirement: "QCVN101:2020+IEC",
		Name:        "Battery safety testing",
		Code:        "TPL-BAT-001",
		Description: "Safety requirements for lithium batteries",
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(tpl).Error; err != nil {
		t.Fatalf("seed template: %v", err)
	}

	sec := &entity.TemplateSection{
		ID:         "sec-cc-001",
		TemplateID: tpl.ID,
		Name:       "Continuous charging at constant voltage",
		Kind:       string(criteria.KindContinuousCharge),
		Level:      1,
		OrderIndex: 2,
		IsActive:   true,
	}
	if err := db.Create(sec).Error; err != nil {
		t.Fatalf("seed section: %v", err)
	}

	rows := []entity.TemplateRow{
		// OrderIndex 1 is the header row and never becomes a data row.
		{ID: "row-h", SectionID: sec.ID, OrderIndex: 1, Values: entity.KVMap{"model": "Model"}},
		{ID: "row-sub", SectionID: sec.ID, OrderIndex: 2, SubHeader: "Samples charged at 20 C"},
		{ID: "row-1", SectionID: sec.ID, OrderIndex: 3, Values: entity.KVMap{"charging_voltage": "4.2"}},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed row: %v", err)
		}
	}
}

func TestCatalogSectionsFromTemplate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedBatteryTemplate(t, db)

	svc := NewCatalogService(repository.NewTemplateRepository(db), nil, time.Minute, zap.NewNop())
	sections := svc.Sections(context.Background(), "Lithium Battery", "Cell", []string{"QCVN101:2020+IEC"})

	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	sec := sections[0]
	if sec.ID != "req-01" {
		t.Errorf("section id = %q, want req-01", sec.ID)
	}
	if len(sec.Criteria) != 1 {
		t.Fatalf("criteria = %d, want 1", len(sec.Criteria))
	}

	c := sec.Criteria[0]
	if c.Name != "Continuous charging at constant voltage" {
		t.Errorf("criterion name = %q", c.Name)
	}
	// Values land on the schema rows by position, C#01 first.
	if c.Data.Rows[0].ID != "C#01" {
		t.Errorf("first row id = %q, want C#01", c.Data.Rows[0].ID)
	}
	if got := c.Data.Rows[0].Values["charging_voltage"]; got != "4.2" {
		t.Errorf("charging_voltage = %q, want 4.2", got)
	}
}

func TestCatalogFallsBackToGenericSection(t *testing.T) {
	db := testutil.SetupTestDB(t)

	svc := NewCatalogService(repository.NewTemplateRepository(db), nil, time.Minute, zap.NewNop())
	sections := svc.Sections(context.Background(), "ITAV Adapter", "", []string{"Unregistered Requirement"})

	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	sec := sections[0]
	if sec.RequirementName != "Unregistered Requirement" {
		t.Errorf("requirement = %q", sec.RequirementName)
	}
	if len(sec.Criteria) != 1 {
		t.Fatalf("generic criteria = %d, want 1", len(sec.Criteria))
	}
	if sec.Criteria[0].Data == nil || len(sec.Criteria[0].Data.Rows) == 0 {
		t.Error("generic criterion has no data rows")
	}
}

func TestCatalogSectionsPerRequirement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedBatteryTemplate(t, db)

	svc := NewCatalogService(repository.NewTemplateRepository(db), nil, time.Minute, zap.NewNop())
	sections := svc.Sections(context.Background(), "Lithium Battery", "Cell",
		[]string{"QCVN101:2020+IEC", "IEC 62133-2:2017"})

	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	if sections[0].ID != "req-01" || sections[1].ID != "req-02" {
		t.Errorf("section ids = %q, %q", sections[0].ID, sections[1].ID)
	}
}
