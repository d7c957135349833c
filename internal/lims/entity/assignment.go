package entity

import "time"

// Assignment is one unit of testing work routed to a team.
type Assignment struct {
	ID            string     `json:"id" gorm:"primaryKey;size:32"`
	SampleCode    string     `json:"sample_code" gorm:"size:50;uniqueIndex;not null"`
	SampleType    string     `json:"sample_type" gorm:"size:50;not null"`
	SampleSubType *string    `json:"sample_sub_type" gorm:"size:20"`
	Quantity      int        `json:"quantity"`
	Requirements  StringList `json:"requirements" gorm:"type:jsonb"`
	ReceivedAt    time.Time  `json:"received_at"`
	Status        string     `json:"status" gorm:"size:20;default:pending;index"`
	AssignedTeam  string     `json:"assigned_team" gorm:"size:32;index"`
	AssignedBy    string     `json:"assigned_by" gorm:"size:32"`
	TestSample    string     `json:"test_sample" gorm:"size:200"` // model name
	ReportRef     string     `json:"report_ref" gorm:"size:500"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Assignment) TableName() string {
	return "lims_assignments"
}

// Assignment lifecycle: strictly forward, Done is terminal.
const (
	AssignmentStatusPending    = "pending"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusDone       = "done"
)

// ValidAssignmentTransitions holds the legal forward moves.
var ValidAssignmentTransitions = map[string][]string{
	AssignmentStatusPending:    {AssignmentStatusInProgress, AssignmentStatusDone},
	AssignmentStatusInProgress: {AssignmentStatusDone},
}

// CanTransitionAssignment reports whether from -> to is a legal move.
func CanTransitionAssignment(from, to string) bool {
	for _, s := range ValidAssignmentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
