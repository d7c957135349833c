package criteria

import (
	"errors"
	"fmt"
	"strings"
)

// RawSection is the catalog-side shape of one template section: a header
// row, optional sub-header rows, then data rows whose values are keyed by
// column id.
type RawSection struct {
	ID            string
	Name          string
	Kind          CriterionKind
	ParentID      string
	Level         int
	OrderIndex    int
	RefCode       string // free-text standard reference, e.g. "2.6.1.1/7.2.1"
	Supplementary string
	Headers       []string
	Rows          []RawRow
}

// RawRow is one catalog row. OrderIndex 1 is the header row and is skipped
// when materializing data rows.
type RawRow struct {
	ID         string
	SubHeader  string
	OrderIndex int
	Values     map[string]string
}

var errNoName = errors.New("section has no name")

// subheaderMarkers identify rows that are visual group separators, not
// sample rows.
var subheaderMarkers = []string{
	"Samples charged at",
	"Test conditions",
	"Temperature",
	"Procedure",
}

func isSubheader(v string) bool {
	for _, marker := range subheaderMarkers {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}

// TransformSection adapts one catalog section into a criterion node. The
// schema comes from the explicit (sampleType, subType, requirement, kind)
// lookup; entered values from the catalog rows are re-addressed onto it.
// A section without a name is malformed and rejected; callers drop it from
// the rendered tree instead of aborting the whole view.
func TransformSection(sampleType, subType, requirement string, sec RawSection) (*Criterion, error) {
	if strings.TrimSpace(sec.Name) == "" {
		return nil, errNoName
	}
	kind := sec.Kind
	if kind == "" {
		kind = KindGeneric
	}

	structure := BuildStructure(sampleType, subType, requirement, kind)
	data := NewTableData(structure)

	prefix := structure.RowTemplate.Prefix
	seq := 0
	for _, raw := range sec.Rows {
		if raw.OrderIndex <= 1 {
			continue // header row
		}
		if isSubheader(raw.SubHeader) || (len(raw.Values) == 1 && isSubheader(firstValue(raw.Values))) {
			continue
		}
		seq++
		rowID := fmt.Sprintf("%s%02d", prefix, seq)
		for colID, v := range raw.Values {
			data.Set(structure, rowID, colID, v)
		}
	}

	supp := DefaultSupplementary()
	if sec.Supplementary != "" {
		supp.Notes = []string{sec.Supplementary}
	}

	// The reference code is free text from the standard ("2.6.1.1/7.2.1"),
	// carried through from the catalog. Synthesized only when absent.
	sectionNumber := sec.RefCode
	if sectionNumber == "" {
		sectionNumber = fmt.Sprintf("Ref: %d.%d", sec.Level, sec.OrderIndex)
	}

	return &Criterion{
		ID:            sec.ID,
		Name:          sec.Name,
		SectionNumber: sectionNumber,
		Structure:     structure,
		Data:          data,
		Supplementary: supp,
	}, nil
}

func firstValue(m map[string]string) string {
	for _, v := range m {
		return v
	}
	return ""
}

// BuildSection assembles a requirement section from catalog sections,
// nesting children under parents and dropping sections that fail to
// transform. The dropped ids are reported so callers can log them.
func BuildSection(sectionID, requirement, title, sampleType, subType string, raw []RawSection) (*RequirementSection, []string) {
	var dropped []string
	byID := make(map[string]*Criterion, len(raw))

	for _, sec := range raw {
		c, err := TransformSection(sampleType, subType, requirement, sec)
		if err != nil {
			dropped = append(dropped, sec.ID)
			continue
		}
		byID[sec.ID] = c
	}

	out := &RequirementSection{
		ID:              sectionID,
		RequirementName: requirement,
		SectionTitle:    title,
	}
	for _, sec := range raw {
		c, ok := byID[sec.ID]
		if !ok {
			continue
		}
		if parent, ok := byID[sec.ParentID]; ok {
			parent.Children = append(parent.Children, c)
		} else {
			out.Criteria = append(out.Criteria, c)
		}
	}
	return out, dropped
}

// ParseRequirements splits a free-text standards string into requirement
// names, e.g. "QCVN101:2020+IEC 62133" style compound strings. An empty
// input yields the generic fallback requirement.
func ParseRequirements(testStandards string) []string {
	if strings.TrimSpace(testStandards) == "" {
		return []string{"General Testing Standards"}
	}
	parts := strings.FieldsFunc(testStandards, func(r rune) bool {
		return r == ',' || r == '&' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"General Testing Standards"}
	}
	return out
}
