package criteria

// Set writes one cell value. Writes addressed at a (row, column) pair that
// does not exist in the structure are ignored, which keeps stored payloads
// robust against schema evolution. Rewriting the same cell is idempotent.
func (d *TableData) Set(s TableStructure, rowID, columnID, value string) {
	if d == nil || !s.hasColumn(columnID) {
		return
	}
	for i := range d.Rows {
		if d.Rows[i].ID == rowID {
			if d.Rows[i].Values == nil {
				d.Rows[i].Values = map[string]string{}
			}
			d.Rows[i].Values[columnID] = value
			return
		}
	}
}

// Value reads one cell. Missing rows, columns or entries read as empty
// string, never as an error, so callers do not branch on absence.
func (d *TableData) Value(rowID, columnID string) string {
	if d == nil {
		return ""
	}
	for i := range d.Rows {
		if d.Rows[i].ID == rowID {
			return d.Rows[i].Values[columnID]
		}
	}
	return ""
}

func (s TableStructure) hasColumn(id string) bool {
	for _, col := range s.Columns {
		if col.ID == id {
			return true
		}
	}
	return false
}
