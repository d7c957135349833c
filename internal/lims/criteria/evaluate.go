package criteria

import "strings"

// resultsColumnID locates the designated results column: header containing
// "result" (case-insensitive) or id literally "results".
func resultsColumnID(s TableStructure) (string, bool) {
	for _, col := range s.Columns {
		if col.ID == "results" || strings.Contains(strings.ToLower(col.Header), "result") {
			return col.ID, true
		}
	}
	return "", false
}

// Evaluate reduces a criterion's table data to its verdict. Idempotent and
// side-effect-free; runs on every read.
//
// Rules, in order:
//  1. no results column           -> N/A
//  2. no non-empty, non-N/A value -> N/A (nothing evaluated yet)
//  3. any value exactly "Fail"    -> Fail (one failing sample fails all)
//  4. every value in {Pass, "", N/A} -> Pass
//  5. anything else               -> N/A (ambiguous never reads as Pass/Fail)
func Evaluate(c *Criterion) Verdict {
	if c == nil || c.Data == nil {
		return VerdictNA
	}
	colID, ok := resultsColumnID(c.Structure)
	if !ok {
		return VerdictNA
	}

	hasValues := false
	for _, row := range c.Data.Rows {
		v := row.Values[colID]
		if strings.TrimSpace(v) != "" && v != string(VerdictNA) {
			hasValues = true
			break
		}
	}
	if !hasValues {
		return VerdictNA
	}

	for _, row := range c.Data.Rows {
		if row.Values[colID] == string(VerdictFail) {
			return VerdictFail
		}
	}

	for _, row := range c.Data.Rows {
		switch row.Values[colID] {
		case string(VerdictPass), "", string(VerdictNA):
		default:
			return VerdictNA
		}
	}
	return VerdictPass
}
