package criteria

import "testing"

func TestTransformSectionReaddressesValues(t *testing.T) {
	raw := RawSection{
		ID:         "sec-1",
		Name:       "Continuous charge at constant voltage",
		Kind:       KindContinuousCharge,
		Level:      2,
		OrderIndex: 3,
		Rows: []RawRow{
			{ID: "r1", OrderIndex: 1, Values: map[string]string{"model": "Model"}},
			{ID: "r2", OrderIndex: 2, Values: map[string]string{"ocv_start": "4.15", "results": "Pass"}},
			{ID: "r3", OrderIndex: 3, Values: map[string]string{"ocv_start": "4.17", "results": "Fail"}},
		},
	}

	c, err := TransformSection(SampleTypeLithiumBattery, SubTypeCell, RequirementQCVN101IEC, raw)
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}

	if c.SectionNumber != "Ref: 2.3" {
		t.Fatalf("expected synthesized section number Ref: 2.3, got %s", c.SectionNumber)
	}
	if got := c.Data.Value("C#01", "ocv_start"); got != "4.15" {
		t.Fatalf("first data row misaddressed: %q", got)
	}
	if got := c.Data.Value("C#02", "results"); got != "Fail" {
		t.Fatalf("second data row misaddressed: %q", got)
	}
	if got := Evaluate(c); got != VerdictFail {
		t.Fatalf("expected Fail verdict from transformed data, got %s", got)
	}
}

func TestTransformSectionCarriesRefCode(t *testing.T) {
	raw := RawSection{
		ID:      "sec-ref",
		Name:    "Continuous charge at constant voltage",
		Kind:    KindContinuousCharge,
		Level:   2,
		RefCode: "2.6.1.1/7.2.1",
	}

	c, err := TransformSection(SampleTypeLithiumBattery, SubTypeCell, RequirementQCVN101IEC, raw)
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if c.SectionNumber != "2.6.1.1/7.2.1" {
		t.Fatalf("catalog reference code must pass through verbatim, got %q", c.SectionNumber)
	}
}

func TestTransformSectionSkipsSubheaders(t *testing.T) {
	raw := RawSection{
		ID:   "sec-2",
		Name: "External short circuit",
		Kind: KindExternalShortCircuit,
		Rows: []RawRow{
			{ID: "r1", OrderIndex: 1, Values: map[string]string{"model": "Sample"}},
			{ID: "r2", OrderIndex: 2, SubHeader: "Samples charged at 20 °C"},
			{ID: "r3", OrderIndex: 3, Values: map[string]string{"results": "Pass"}},
		},
	}

	c, err := TransformSection(SampleTypeLithiumBattery, SubTypeCell, RequirementQCVN101IEC, raw)
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if got := c.Data.Value("S#01", "results"); got != "Pass" {
		t.Fatalf("sub-header row must not consume a sample slot, got %q", got)
	}
}

func TestTransformSectionRejectsNameless(t *testing.T) {
	if _, err := TransformSection(SampleTypeLithiumBattery, "", RequirementQCVN101, RawSection{ID: "x"}); err == nil {
		t.Fatalf("nameless section should be rejected")
	}
}

func TestBuildSectionDropsMalformed(t *testing.T) {
	raw := []RawSection{
		{ID: "ok-1", Name: "Insulation resistance", Kind: KindGeneric, Level: 1, OrderIndex: 1},
		{ID: "bad-1", Name: "   "},
		{ID: "ok-2", Name: "Leakage current", Kind: KindGeneric, ParentID: "ok-1", Level: 1, OrderIndex: 2},
	}

	sec, dropped := BuildSection("req-1", RequirementQCVN101, "Electrical Safety Tests", SampleTypeITAVAdapter, "", raw)

	if len(dropped) != 1 || dropped[0] != "bad-1" {
		t.Fatalf("expected bad-1 dropped, got %v", dropped)
	}
	if len(sec.Criteria) != 1 {
		t.Fatalf("expected 1 top-level criterion, got %d", len(sec.Criteria))
	}
	if len(sec.Criteria[0].Children) != 1 || sec.Criteria[0].Children[0].ID != "ok-2" {
		t.Fatalf("child nesting broken: %+v", sec.Criteria[0].Children)
	}
}

func TestParseRequirements(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"QCVN101:2020+IEC", []string{"QCVN101:2020+IEC"}},
		{"QCVN101:2020, QCVN132:2022", []string{"QCVN101:2020", "QCVN132:2022"}},
		{"QCVN101:2020 & TCVN 7189", []string{"QCVN101:2020", "TCVN 7189"}},
		{"  ", []string{"General Testing Standards"}},
		{";;", []string{"General Testing Standards"}},
	}

	for _, tc := range cases {
		got := ParseRequirements(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
			}
		}
	}
}
