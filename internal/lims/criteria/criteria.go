// Package criteria implements the testing-criteria hierarchy and result
// evaluation engine: dynamically shaped criterion tables, per-sample
// measurement rows, and verdict aggregation.
package criteria

// Verdict is the tri-state outcome of a criterion.
type Verdict string

const (
	VerdictPass Verdict = "Pass"
	VerdictFail Verdict = "Fail"
	VerdictNA   Verdict = "N/A"
)

// Sample categories (closed set)
const (
	SampleTypeLithiumBattery = "Lithium Battery"
	SampleTypeITAVAdapter    = "ITAV Adapter"
	SampleTypeITAVDesktop    = "ITAV Desktop"
	SampleTypeITAVLaptop     = "ITAV Laptop+Tablet"
	SampleTypeITAVTV         = "ITAV TV"
)

// Battery sub-types
const (
	SubTypeCell     = "Cell"
	SubTypePack     = "Pack"
	SubTypeCellPack = "Cell+Pack"
)

// ColumnKind is the input field kind of a table column.
type ColumnKind string

const (
	ColumnReadonly ColumnKind = "readonly"
	ColumnText     ColumnKind = "text"
	ColumnNumber   ColumnKind = "number"
	ColumnSelect   ColumnKind = "select"
	ColumnDate     ColumnKind = "date"
	ColumnTextarea ColumnKind = "textarea"
)

// ColumnDefinition describes one typed column of a criterion table.
type ColumnDefinition struct {
	ID      string     `json:"id"`
	Header  string     `json:"header"`
	Kind    ColumnKind `json:"kind"`
	Unit    string     `json:"unit,omitempty"`
	Options []string   `json:"options,omitempty"`
	Default string     `json:"default,omitempty"`
	Min     *float64   `json:"min,omitempty"`
	Max     *float64   `json:"max,omitempty"`
}

// RowTemplate defines how data rows are produced: either explicit labels,
// or prefix + zero-padded sequence (e.g. "C#" x 5 -> C#01..C#05).
type RowTemplate struct {
	Prefix       string   `json:"prefix"`
	Count        int      `json:"count"`
	CustomLabels []string `json:"custom_labels,omitempty"`
}

// TableStructure is the schema of a criterion table, fixed at instantiation.
type TableStructure struct {
	Columns     []ColumnDefinition `json:"columns"`
	RowTemplate RowTemplate        `json:"row_template"`
}

// TableRow holds one sample's entered values, keyed by column id.
// Absent entries read as empty string.
type TableRow struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// TableData is the mutable payload of a criterion. The row set is defined
// once from the RowTemplate; only cell values change during testing.
type TableData struct {
	Rows []TableRow `json:"rows"`
}

// SupplementaryInfo is per-criterion metadata, never evaluated.
type SupplementaryInfo struct {
	Notes       []string `json:"notes"`
	TestingTime string   `json:"testing_time"`
	Tester      string   `json:"tester"`
	Equipment   string   `json:"equipment"`
}

// Criterion is a single test procedure node. The verdict is computed on
// read and never stored.
type Criterion struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	SectionNumber string            `json:"section_number"`
	Structure     TableStructure    `json:"structure"`
	Data          *TableData        `json:"data,omitempty"`
	Children      []*Criterion      `json:"children,omitempty"`
	Supplementary SupplementaryInfo `json:"supplementary"`
}

// RequirementSection groups criteria under one regulatory requirement.
type RequirementSection struct {
	ID              string       `json:"id"`
	RequirementName string       `json:"requirement_name"`
	SectionTitle    string       `json:"section_title"`
	Criteria        []*Criterion `json:"criteria"`
}
