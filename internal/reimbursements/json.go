package reimbursements

import (
	"encoding/json"
	"fmt"
	"time"
)

// MarshalJSON renders the flat wire shape: every *_excel and *_user column is
// present, with null for unset values.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ColumnValues())
}

// UnmarshalJSON accepts the flat wire shape produced by MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range []string{ColumnCreatedAt, ColumnUpdatedAt} {
		s, ok := raw[key].(string)
		if !ok {
			delete(raw, key)
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		raw[key] = t
	}
	rec, err := RecordFromColumns(raw)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}
