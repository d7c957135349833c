package access

import (
	"testing"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
)

func sampleOrder() *entity.Order {
	cost := 1500000.0
	customer := "cus-001"
	return &entity.Order{
		ID:            "ord-001",
		SampleID:      "PSI-2026-0042",
		SampleName:    "18650 lithium cell",
		SampleType:    "Lithium Battery",
		Manufacturer:  "Acme Cells Ltd",
		DateReceived:  "2026-03-02",
		Quantity:      10,
		Notes:         "handle with care",
		Status:        entity.OrderStatusPending,
		AssignedTests: entity.StringList{"QCVN101:2020+IEC"},
		TotalCost:     &cost,
		CustomerID:    &customer,
		CreatedBy:     "reception-01",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func TestFilterNeverLeaksOutsideWhitelist(t *testing.T) {
	order := sampleOrder()
	for _, role := range []string{RoleReception, RoleTester, RoleManager, "auditor", ""} {
		allowed := map[string]bool{}
		for _, f := range OrderFields(role) {
			allowed[f] = true
		}
		for field := range FilterOrder(order, role) {
			if !allowed[field] {
				t.Fatalf("role %q: field %q not in whitelist", role, field)
			}
		}
	}
}

func TestTesterCannotSeeIntakeFields(t *testing.T) {
	got := FilterOrder(sampleOrder(), RoleTester)
	for _, hidden := range []string{"sample_name", "manufacturer", "date_received", "total_cost"} {
		if _, ok := got[hidden]; ok {
			t.Fatalf("tester must not see %q", hidden)
		}
	}
	for _, visible := range []string{"id", "sample_id", "sample_type", "assigned_tests", "status"} {
		if _, ok := got[visible]; !ok {
			t.Fatalf("tester should see %q", visible)
		}
	}
}

func TestUnknownRoleFailsSafe(t *testing.T) {
	order := sampleOrder()
	unknown := FilterOrder(order, "superuser")
	tester := FilterOrder(order, RoleTester)

	if len(unknown) != len(tester) {
		t.Fatalf("unknown role should match tester projection, got %d vs %d fields", len(unknown), len(tester))
	}
	for field := range unknown {
		if _, ok := tester[field]; !ok {
			t.Fatalf("unknown role leaked field %q beyond tester access", field)
		}
	}
}

func TestManagerSeesIntakeFields(t *testing.T) {
	got := FilterOrder(sampleOrder(), RoleManager)
	if got["manufacturer"] != "Acme Cells Ltd" {
		t.Fatalf("manager projection lost manufacturer: %v", got["manufacturer"])
	}
	if got["sample_name"] != "18650 lithium cell" {
		t.Fatalf("manager projection lost sample name")
	}
}

func TestFilterOrdersMapsList(t *testing.T) {
	orders := []entity.Order{*sampleOrder(), *sampleOrder()}
	got := FilterOrders(orders, RoleTester)
	if len(got) != 2 {
		t.Fatalf("expected 2 projections, got %d", len(got))
	}
}

func TestCanAccessField(t *testing.T) {
	if CanAccessField("manufacturer", RoleTester) {
		t.Fatalf("tester must not access manufacturer")
	}
	if !CanAccessField("manufacturer", RoleReception) {
		t.Fatalf("reception must access manufacturer")
	}
}
