package entity

import "time"

// Order is the reception-side sample intake record. Several fields are
// visible to reception and managers only; responses go through the access
// package filter before leaving the service.
type Order struct {
	ID            string     `json:"id" gorm:"primaryKey;size:32"`
	SampleID      string     `json:"sample_id" gorm:"size:50;uniqueIndex;not null"` // coded symbol for objectivity
	SampleName    string     `json:"sample_name" gorm:"size:200"`
	SampleType    string     `json:"sample_type" gorm:"size:50"`
	Manufacturer  string     `json:"manufacturer" gorm:"size:200"`
	DateReceived  string     `json:"date_received" gorm:"size:20"`
	Quantity      int        `json:"quantity"`
	Notes         string     `json:"notes" gorm:"type:text"`
	Status        string     `json:"status" gorm:"size:20;default:pending;index"`
	AssignedTests StringList `json:"assigned_tests" gorm:"type:jsonb"`
	TotalCost     *float64   `json:"total_cost" gorm:"type:decimal(12,2)"`
	CustomerID    *string    `json:"customer_id" gorm:"size:32"`
	CreatedBy     string     `json:"created_by" gorm:"size:32"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Order) TableName() string {
	return "lims_orders"
}

// Order lifecycle
const (
	OrderStatusPending          = "pending"
	OrderStatusInProgress       = "in-progress"
	OrderStatusAwaitingApproval = "awaiting-approval"
	OrderStatusCompleted        = "completed"
)

// ValidOrderTransitions holds the legal forward moves.
var ValidOrderTransitions = map[string][]string{
	OrderStatusPending:          {OrderStatusInProgress},
	OrderStatusInProgress:       {OrderStatusAwaitingApproval},
	OrderStatusAwaitingApproval: {OrderStatusCompleted},
}

// CanTransitionOrder reports whether from -> to is a legal move.
func CanTransitionOrder(from, to string) bool {
	for _, s := range ValidOrderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
