// Package access restricts which entity fields each role may read.
package access

import "github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"

// Roles understood by the field filter. Unknown roles are treated as
// tester, the most restrictive level.
const (
	RoleReception = "reception"
	RoleTester    = "tester"
	RoleManager   = "manager"
)

// orderFields is the static permission table: role -> attribute whitelist
// over Order. Sample name, manufacturer and date received are
// reception/manager-only.
var orderFields = map[string][]string{
	RoleReception: {
		"id", "sample_id", "sample_name", "sample_type", "manufacturer",
		"date_received", "quantity", "notes", "status", "assigned_tests",
		"total_cost", "customer_id", "created_by", "created_at", "updated_at",
	},
	RoleTester: {
		"id", "sample_id", "sample_type", "assigned_tests", "status",
	},
	RoleManager: {
		"id", "sample_id", "sample_name", "sample_type", "manufacturer",
		"date_received", "quantity", "notes", "status", "assigned_tests",
		"total_cost", "customer_id", "created_by", "created_at", "updated_at",
	},
}

// OrderFields returns the attribute whitelist for a role.
func OrderFields(role string) []string {
	fields, ok := orderFields[role]
	if !ok {
		fields = orderFields[RoleTester]
	}
	return fields
}

// FilterOrder projects an order down to the attributes its role may read.
// It only ever removes fields, never adds or transforms them.
func FilterOrder(o *entity.Order, role string) map[string]interface{} {
	full := map[string]interface{}{
		"id":             o.ID,
		"sample_id":      o.SampleID,
		"sample_name":    o.SampleName,
		"sample_type":    o.SampleType,
		"manufacturer":   o.Manufacturer,
		"date_received":  o.DateReceived,
		"quantity":       o.Quantity,
		"notes":          o.Notes,
		"status":         o.Status,
		"assigned_tests": o.AssignedTests,
		"total_cost":     o.TotalCost,
		"customer_id":    o.CustomerID,
		"created_by":     o.CreatedBy,
		"created_at":     o.CreatedAt,
		"updated_at":     o.UpdatedAt,
	}

	out := make(map[string]interface{})
	for _, field := range OrderFields(role) {
		if v, ok := full[field]; ok {
			out[field] = v
		}
	}
	return out
}

// FilterOrders applies FilterOrder over a list.
func FilterOrders(orders []entity.Order, role string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(orders))
	for i := range orders {
		out = append(out, FilterOrder(&orders[i], role))
	}
	return out
}

// CanAccessField reports whether a role may read one attribute.
func CanAccessField(field, role string) bool {
	for _, f := range OrderFields(role) {
		if f == field {
			return true
		}
	}
	return false
}
