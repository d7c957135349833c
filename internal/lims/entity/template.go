package entity

import "time"

// TestTemplate is one catalog entry: the testing template for a
// (sample type, requirement) pair.
type TestTemplate struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	SampleType  string    `json:"sample_type" gorm:"size:50;index:idx_tpl_lookup"`
	Requirement string    `json:"requirement" gorm:"size:100;index:idx_tpl_lookup"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Code        string    `json:"code" gorm:"size:50;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Sections []TemplateSection `json:"sections" gorm:"foreignKey:TemplateID"`
}

func (TestTemplate) TableName() string {
	return "lims_test_templates"
}

// TemplateSection is one criterion-shaped block inside a template.
// Kind selects the schema through the criteria lookup table.
type TemplateSection struct {
	ID            string  `json:"id" gorm:"primaryKey;size:32"`
	TemplateID    string  `json:"template_id" gorm:"size:32;index;not null"`
	ParentID      *string `json:"parent_id" gorm:"size:32"`
	Name          string  `json:"name" gorm:"size:255"`
	Kind          string  `json:"kind" gorm:"size:50"`
	Level         int     `json:"level"`
	OrderIndex    int     `json:"order_index"`
	RefCode       string  `json:"ref_code" gorm:"size:100"` // e.g. "2.6.1.1/7.2.1"
	Supplementary string  `json:"supplementary" gorm:"type:text"`
	IsActive      bool    `json:"is_active" gorm:"default:true"`

	Rows []TemplateRow `json:"rows" gorm:"foreignKey:SectionID"`
}

func (TemplateSection) TableName() string {
	return "lims_template_sections"
}

// TemplateRow is one catalog row; Values maps column id to cell value.
// OrderIndex 1 is the header row.
type TemplateRow struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	SectionID  string `json:"section_id" gorm:"size:32;index;not null"`
	SubHeader  string `json:"sub_header" gorm:"size:255"`
	OrderIndex int    `json:"order_index"`
	Values     KVMap  `json:"values" gorm:"type:jsonb"`
}

func (TemplateRow) TableName() string {
	return "lims_template_rows"
}
