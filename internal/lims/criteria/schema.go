package criteria

import "fmt"

// CriterionKind is the enumerated schema selector for a criterion. Schema
// shapes are keyed on (sample type, requirement, kind) through an explicit
// lookup table rather than substring matching on section names.
type CriterionKind string

const (
	KindContinuousCharge     CriterionKind = "continuous_charge"
	KindExternalShortCircuit CriterionKind = "external_short_circuit"
	KindThermalAbuse         CriterionKind = "thermal_abuse"
	KindGeneric              CriterionKind = "generic"
)

// Requirement catalogs known to the built-in schema table.
const (
	RequirementQCVN101IEC = "QCVN101:2020+IEC"
	RequirementQCVN101    = "QCVN101:2020"
)

type schemaKey struct {
	sampleType  string
	subType     string
	requirement string
	kind        CriterionKind
}

// schemaTable maps (sampleType, subType, requirement, kind) to a fixed
// table shape. Determinism is the contract: the same key always yields the
// same columns and row count so entered values stay addressable.
var schemaTable = map[schemaKey]TableStructure{
	{SampleTypeLithiumBattery, SubTypeCell, RequirementQCVN101IEC, KindContinuousCharge}: {
		Columns: []ColumnDefinition{
			{ID: "model", Header: "Model", Kind: ColumnReadonly},
			{ID: "charging_voltage", Header: "Recommended charging voltage Vc", Kind: ColumnText, Unit: "Vdc"},
			{ID: "charging_current", Header: "Recommended charging current Irec", Kind: ColumnText, Unit: "mA"},
			{ID: "ocv_start", Header: "OCV at start of test", Kind: ColumnText, Unit: "Vdc"},
			{ID: "results", Header: "Results", Kind: ColumnSelect, Options: []string{"Pass", "Fail", "N/A"}},
		},
		RowTemplate: RowTemplate{Prefix: "C#", Count: 5},
	},
	{SampleTypeLithiumBattery, SubTypeCell, RequirementQCVN101IEC, KindExternalShortCircuit}: {
		Columns: []ColumnDefinition{
			{ID: "model", Header: "Sample", Kind: ColumnReadonly},
			{ID: "ambient_temp", Header: "Ambient temperature", Kind: ColumnNumber, Unit: "°C"},
			{ID: "ocv_before", Header: "OCV before test", Kind: ColumnText, Unit: "V"},
			{ID: "ext_resistance", Header: "Resistance of external circuit", Kind: ColumnText, Unit: "mΩ"},
			{ID: "max_case_temp", Header: "Maximum case temperature", Kind: ColumnNumber, Unit: "°C"},
			{ID: "results", Header: "Results", Kind: ColumnSelect, Options: []string{"Pass", "Fail", "N/A"}},
		},
		RowTemplate: RowTemplate{Prefix: "S#", Count: 5},
	},
	{SampleTypeLithiumBattery, SubTypeCell, RequirementQCVN101IEC, KindThermalAbuse}: {
		Columns: []ColumnDefinition{
			{ID: "model", Header: "Model", Kind: ColumnReadonly},
			{ID: "results", Header: "Results", Kind: ColumnSelect, Options: []string{"Pass", "Fail", "N/A"}},
		},
		RowTemplate: RowTemplate{Prefix: "T#", Count: 5},
	},
	{SampleTypeLithiumBattery, SubTypePack, RequirementQCVN101IEC, KindContinuousCharge}: {
		Columns: []ColumnDefinition{
			{ID: "model", Header: "Model", Kind: ColumnReadonly},
			{ID: "charging_voltage", Header: "Recommended charging voltage Vc", Kind: ColumnText, Unit: "Vdc"},
			{ID: "charging_current", Header: "Recommended charging current Irec", Kind: ColumnText, Unit: "mA"},
			{ID: "ocv_start", Header: "OCV at start of test", Kind: ColumnText, Unit: "Vdc"},
			{ID: "results", Header: "Results", Kind: ColumnSelect, Options: []string{"Pass", "Fail", "N/A"}},
		},
		RowTemplate: RowTemplate{Prefix: "P#", Count: 3},
	},
}

// rowPrefixByKind is the fallback row labeling when no exact schema entry
// exists for a key.
var rowPrefixByKind = map[CriterionKind]string{
	KindContinuousCharge:     "C#",
	KindExternalShortCircuit: "S#",
	KindThermalAbuse:         "T#",
	KindGeneric:              "R#",
}

// BuildStructure resolves the table schema for one criterion. Pure lookup:
// unknown sub-types fall back to the sample-type default (Cell for
// batteries), unknown requirements or kinds fall back to the generic
// single-value schema. It never fails.
func BuildStructure(sampleType, subType, requirement string, kind CriterionKind) TableStructure {
	if subType == "" || subType == SubTypeCellPack {
		subType = defaultSubType(sampleType)
	}

	if s, ok := schemaTable[schemaKey{sampleType, subType, requirement, kind}]; ok {
		return s
	}
	// Unrecognized sub-type: retry at the sample-type default.
	if def := defaultSubType(sampleType); subType != def {
		if s, ok := schemaTable[schemaKey{sampleType, def, requirement, kind}]; ok {
			return s
		}
	}
	return GenericStructure(kind)
}

// GenericStructure is the single-value fallback schema used when a
// requirement or kind is not in the catalog.
func GenericStructure(kind CriterionKind) TableStructure {
	prefix := rowPrefixByKind[kind]
	if prefix == "" {
		prefix = "R#"
	}
	return TableStructure{
		Columns: []ColumnDefinition{
			{ID: "model", Header: "Model", Kind: ColumnReadonly},
			{ID: "results", Header: "Results", Kind: ColumnText},
		},
		RowTemplate: RowTemplate{Prefix: prefix, Count: 1},
	}
}

func defaultSubType(sampleType string) string {
	if sampleType == SampleTypeLithiumBattery {
		return SubTypeCell
	}
	return ""
}

// MaterializeRows produces the data rows for a structure. Labels come from
// the explicit list when present, otherwise prefix + two-digit sequence
// starting at 01. Row ids equal labels; they are the stable half of every
// cell address.
func MaterializeRows(tpl RowTemplate) []TableRow {
	labels := tpl.CustomLabels
	if len(labels) == 0 {
		labels = make([]string, 0, tpl.Count)
		for i := 1; i <= tpl.Count; i++ {
			labels = append(labels, fmt.Sprintf("%s%02d", tpl.Prefix, i))
		}
	}

	rows := make([]TableRow, 0, len(labels))
	for _, label := range labels {
		row := TableRow{ID: label, Label: label, Values: map[string]string{}}
		rows = append(rows, row)
	}
	return rows
}

// NewTableData instantiates the payload for a structure with every cell
// empty and readonly model columns pre-filled with the row label.
func NewTableData(s TableStructure) *TableData {
	rows := MaterializeRows(s.RowTemplate)
	for i := range rows {
		for _, col := range s.Columns {
			if col.Kind == ColumnReadonly {
				rows[i].Values[col.ID] = rows[i].Label
			} else if col.Default != "" {
				rows[i].Values[col.ID] = col.Default
			}
		}
	}
	return &TableData{Rows: rows}
}

// DefaultSupplementary is the pre-filled metadata block for a new criterion.
func DefaultSupplementary() SupplementaryInfo {
	return SupplementaryInfo{
		Notes:     []string{"No fire, no explosion, no leakage."},
		Equipment: "PSI.TB-",
	}
}
