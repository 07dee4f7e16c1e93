package reimbursements

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Patch is a sparse set of editable column values: the *_user columns and
// supporting_document_bills. A column present with a nil value is cleared;
// absent columns are left untouched.
type Patch struct {
	values map[string]any
}

// NewPatch returns an empty patch.
func NewPatch() Patch {
	return Patch{values: map[string]any{}}
}

// Set records a value for an editable column. v may be nil, a string, an int
// or a float64 matching the column's type.
func (p *Patch) Set(name string, v any) error {
	if !isEditable(name) {
		return fmt.Errorf("%w: %s is not editable", ErrInvalidInput, name)
	}
	k := kindText
	if c, ok := fieldColumns[name]; ok {
		k = c.field.kind()
	}
	norm, err := normalize(k, v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
	}
	if p.values == nil {
		p.values = map[string]any{}
	}
	p.values[name] = norm
	return nil
}

// Len is the number of columns present in the patch.
func (p Patch) Len() int {
	return len(p.values)
}

// Columns returns the present column names, sorted.
func (p Patch) Columns() []string {
	out := make([]string, 0, len(p.values))
	for name := range p.values {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Value returns the value for a column and whether it is present.
func (p Patch) Value(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// ApplyTo writes every present column into r.
func (p Patch) ApplyTo(r *Record) {
	for name, v := range p.values {
		if name == ColumnDocument {
			if s, ok := v.(string); ok {
				r.SupportingDocumentBills = &s
			} else {
				r.SupportingDocumentBills = nil
			}
			continue
		}
		c := fieldColumns[name]
		c.field.set(c.of(r), v)
	}
}

// ParsePatch decodes a JSON object into a Patch, coercing values to each
// column's type. Keys that are not editable columns (including every *_excel
// column) are skipped and returned in ignored. An empty body yields an empty patch.
func ParsePatch(body []byte) (patch Patch, ignored []string, err error) {
	patch = NewPatch()
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return patch, nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Patch{}, nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidInput)
	}

	for key, v := range raw {
		if !isEditable(key) {
			ignored = append(ignored, key)
			continue
		}
		k := kindText
		if c, ok := fieldColumns[key]; ok {
			k = c.field.kind()
		}
		coerced, err := coerce(k, v)
		if err != nil {
			return Patch{}, nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, key, err)
		}
		patch.values[key] = coerced
	}
	sort.Strings(ignored)
	return patch, ignored, nil
}

// coerce converts a decoded JSON value (decoded with UseNumber) to k.
func coerce(k kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch k {
	case kindText:
		switch t := v.(type) {
		case string:
			return t, nil
		case json.Number:
			return t.String(), nil
		}
		return nil, fmt.Errorf("expected a string")
	case kindCount:
		var s string
		switch t := v.(type) {
		case json.Number:
			s = t.String()
		case string:
			s = strings.TrimSpace(t)
		default:
			return nil, fmt.Errorf("expected an integer")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("expected an integer")
		}
		n, ok := toCount(f)
		if !ok {
			return nil, fmt.Errorf("expected an integer between %d and %d", minCount, maxCount)
		}
		return n, nil
	case kindAmount:
		var s string
		switch t := v.(type) {
		case json.Number:
			s = t.String()
		case string:
			s = strings.TrimSpace(t)
		default:
			return nil, fmt.Errorf("expected a number")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("expected a number")
		}
		return f, nil
	}
	return nil, fmt.Errorf("unsupported column type")
}
