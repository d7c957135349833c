package criteria

import "testing"

func TestSetValueIdempotent(t *testing.T) {
	s := BuildStructure(SampleTypeLithiumBattery, SubTypeCell, RequirementQCVN101IEC, KindContinuousCharge)
	d := NewTableData(s)

	d.Set(s, "C#02", "ocv_start", "4.18")
	d.Set(s, "C#02", "ocv_start", "4.18")

	if got := d.Value("C#02", "ocv_start"); got != "4.18" {
		t.Fatalf("expected 4.18, got %q", got)
	}
}

func TestSetValueUnknownCellIsNoop(t *testing.T) {
	s := BuildStructure(SampleTypeLithiumBattery, SubTypeCell, RequirementQCVN101IEC, KindContinuousCharge)
	d := NewTableData(s)

	d.Set(s, "C#99", "ocv_start", "4.18")
	d.Set(s, "C#01", "no_such_column", "4.18")

	if got := d.Value("C#99", "ocv_start"); got != "" {
		t.Fatalf("write to unknown row leaked: %q", got)
	}
	if got := d.Value("C#01", "no_such_column"); got != "" {
		t.Fatalf("write to unknown column leaked: %q", got)
	}
}

func TestValueMissingReadsEmpty(t *testing.T) {
	s := GenericStructure(KindGeneric)
	d := NewTableData(s)

	if got := d.Value("R#01", "results"); got != "" {
		t.Fatalf("untouched cell should read empty, got %q", got)
	}
	if got := d.Value("nope", "results"); got != "" {
		t.Fatalf("missing row should read empty, got %q", got)
	}

	var nilData *TableData
	if got := nilData.Value("R#01", "results"); got != "" {
		t.Fatalf("nil data should read empty, got %q", got)
	}
}

func TestSetValueOverwrite(t *testing.T) {
	s := GenericStructure(KindGeneric)
	d := NewTableData(s)

	d.Set(s, "R#01", "results", "Pass")
	d.Set(s, "R#01", "results", "Fail")

	if got := d.Value("R#01", "results"); got != "Fail" {
		t.Fatalf("last write should win, got %q", got)
	}
}
