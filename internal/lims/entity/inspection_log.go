package entity

import (
	"encoding/json"
	"time"
)

// InspectionLog is the working record a tester fills in for one assignment.
// Exactly one log is active per assignment; it is created lazily on first
// inspection visit and never deleted. Sections holds the requirement
// sections with their criteria and entered table data as jsonb.
type InspectionLog struct {
	ID           string          `json:"id" gorm:"primaryKey;size:32"`
	AssignmentID string          `json:"assignment_id" gorm:"size:32;uniqueIndex;not null"`
	SampleSymbol string          `json:"sample_symbol" gorm:"size:50"`
	Requirements StringList      `json:"requirements" gorm:"type:jsonb"`
	TestSample   string          `json:"test_sample" gorm:"size:200"`
	TestingDate  string          `json:"testing_date" gorm:"size:20"`
	SampleInfo   KVMap           `json:"sample_info" gorm:"type:jsonb"`
	Sections     json.RawMessage `json:"sections" gorm:"type:jsonb"`
	Status       string          `json:"status" gorm:"size:20;default:draft"`
	CreatedBy    string          `json:"created_by" gorm:"size:32"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (InspectionLog) TableName() string {
	return "lims_inspection_logs"
}

// Log lifecycle: Draft until report generation succeeds.
const (
	LogStatusDraft     = "draft"
	LogStatusCompleted = "completed"
)
