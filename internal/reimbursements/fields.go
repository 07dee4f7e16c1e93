package reimbursements

import (
	"fmt"
	"math"
	"time"
)

// Column name suffixes for the two sides of a logical field.
const (
	ReferenceSuffix = "_excel"
	SubmittedSuffix = "_user"
)

// Non-field columns shared by every store.
const (
	ColumnID        = "id"
	ColumnSNo       = "sno"
	ColumnDocument  = "supporting_document_bills"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
)

type kind int

const (
	kindText kind = iota
	kindCount
	kindAmount
)

// field describes one logical attribute. ref returns a **string, **int or
// **float64 pointing into the given Fields.
type field struct {
	name string
	ref  func(f *Fields) any
}

var fieldDefs = []field{
	{"city_code", func(f *Fields) any { return &f.Basic.CityCode }},
	{"name", func(f *Fields) any { return &f.Basic.Name }},
	{"state", func(f *Fields) any { return &f.Basic.State }},
	{"city_assigned", func(f *Fields) any { return &f.Basic.CityAssigned }},
	{"mobile", func(f *Fields) any { return &f.Basic.Mobile }},
	{"email", func(f *Fields) any { return &f.Basic.Email }},
	{"num_exam_centres", func(f *Fields) any { return &f.Basic.NumExamCentres }},

	{"bank_name", func(f *Fields) any { return &f.Bank.BankName }},
	{"ifsc", func(f *Fields) any { return &f.Bank.IFSC }},
	{"beneficiary_name", func(f *Fields) any { return &f.Bank.BeneficiaryName }},
	{"bank_account_number", func(f *Fields) any { return &f.Bank.BankAccountNumber }},

	{"city_coordinator_claim", func(f *Fields) any { return &f.Claims.CityCoordinatorClaim }},
	{"admin_staff_claim", func(f *Fields) any { return &f.Claims.AdminStaffClaim }},
	{"support_staff_claim", func(f *Fields) any { return &f.Claims.SupportStaffClaim }},
	{"refreshment_claim", func(f *Fields) any { return &f.Claims.RefreshmentClaim }},
	{"observer_claim", func(f *Fields) any { return &f.Claims.ObserverClaim }},
	{"num_observers", func(f *Fields) any { return &f.Claims.NumObservers }},
	{"claim_district_personnel", func(f *Fields) any { return &f.Claims.ClaimDistrictPersonnel }},
	{"assistant_staff_district", func(f *Fields) any { return &f.Claims.AssistantStaffDistrict }},
	{"support_staff_district", func(f *Fields) any { return &f.Claims.SupportStaffDistrict }},
	{"claim_police_personnel", func(f *Fields) any { return &f.Claims.ClaimPolicePersonnel }},
	{"support_staff_police", func(f *Fields) any { return &f.Claims.SupportStaffPolice }},
	{"duty_magistrate_claim", func(f *Fields) any { return &f.Claims.DutyMagistrateClaim }},
	{"num_duty_magistrates", func(f *Fields) any { return &f.Claims.NumDutyMagistrates }},
	{"team_leader_claim", func(f *Fields) any { return &f.Claims.TeamLeaderClaim }},
	{"num_team_leaders", func(f *Fields) any { return &f.Claims.NumTeamLeaders }},
	{"police_escort_claim", func(f *Fields) any { return &f.Claims.PoliceEscortClaim }},
	{"num_police_escort", func(f *Fields) any { return &f.Claims.NumPoliceEscort }},
	{"police_frisking_claim", func(f *Fields) any { return &f.Claims.PoliceFriskingClaim }},
	{"num_police_frisking", func(f *Fields) any { return &f.Claims.NumPoliceFrisking }},
	{"security_personnel_claim", func(f *Fields) any { return &f.Claims.SecurityPersonnelClaim }},
	{"num_security_personnel", func(f *Fields) any { return &f.Claims.NumSecurityPersonnel }},
	{"bank_custodian_claim", func(f *Fields) any { return &f.Claims.BankCustodianClaim }},
	{"district_education_officer_claim", func(f *Fields) any { return &f.Claims.DistrictEducationOfficerClaim }},
	{"support_staff_deo_claim", func(f *Fields) any { return &f.Claims.SupportStaffDEOClaim }},
}

func (d field) kind() kind {
	switch d.ref(&Fields{}).(type) {
	case **int:
		return kindCount
	case **float64:
		return kindAmount
	default:
		return kindText
	}
}

// get returns nil or the concrete string, int or float64 value.
func (d field) get(f *Fields) any {
	switch p := d.ref(f).(type) {
	case **string:
		if *p != nil {
			return **p
		}
	case **int:
		if *p != nil {
			return **p
		}
	case **float64:
		if *p != nil {
			return **p
		}
	}
	return nil
}

// set stores v, which must be nil or already normalized for the field's kind.
func (d field) set(f *Fields, v any) {
	switch p := d.ref(f).(type) {
	case **string:
		if s, ok := v.(string); ok {
			*p = &s
		} else {
			*p = nil
		}
	case **int:
		if n, ok := v.(int); ok {
			*p = &n
		} else {
			*p = nil
		}
	case **float64:
		if x, ok := v.(float64); ok {
			*p = &x
		} else {
			*p = nil
		}
	}
}

type side int

const (
	sideReference side = iota
	sideSubmitted
)

// column is a storage/wire column backed by one side of a logical field.
type column struct {
	name  string
	field field
	side  side
}

func (c column) of(r *Record) *Fields {
	if c.side == sideReference {
		return &r.Reference
	}
	return &r.Submitted
}

var (
	referenceColumns = buildColumns(sideReference, ReferenceSuffix)
	submittedColumns = buildColumns(sideSubmitted, SubmittedSuffix)
	fieldColumns     = indexColumns(referenceColumns, submittedColumns)

	// Columns lists every record column in storage order.
	Columns = allColumns()
)

func buildColumns(s side, suffix string) []column {
	out := make([]column, 0, len(fieldDefs))
	for _, f := range fieldDefs {
		out = append(out, column{name: f.name + suffix, field: f, side: s})
	}
	return out
}

func indexColumns(groups ...[]column) map[string]column {
	out := make(map[string]column)
	for _, g := range groups {
		for _, c := range g {
			out[c.name] = c
		}
	}
	return out
}

func allColumns() []string {
	out := []string{ColumnID, ColumnSNo}
	for _, c := range referenceColumns {
		out = append(out, c.name)
	}
	for _, c := range submittedColumns {
		out = append(out, c.name)
	}
	return append(out, ColumnDocument, ColumnCreatedAt, ColumnUpdatedAt)
}

// isEditable reports whether a column may be written by Create or Update.
func isEditable(name string) bool {
	if name == ColumnDocument {
		return true
	}
	c, ok := fieldColumns[name]
	return ok && c.side == sideSubmitted
}

// ColumnValues flattens r into column name -> value. Unset values are nil.
func (r Record) ColumnValues() map[string]any {
	out := make(map[string]any, len(Columns))
	out[ColumnID] = r.ID
	out[ColumnSNo] = derefAny(r.SNo)
	for _, c := range referenceColumns {
		out[c.name] = c.field.get(&r.Reference)
	}
	for _, c := range submittedColumns {
		out[c.name] = c.field.get(&r.Submitted)
	}
	out[ColumnDocument] = derefAny(r.SupportingDocumentBills)
	out[ColumnCreatedAt] = r.CreatedAt
	out[ColumnUpdatedAt] = r.UpdatedAt
	return out
}

// ReferenceValues returns only the *_excel columns of f, including unset ones.
func ReferenceValues(f Fields) map[string]any {
	out := make(map[string]any, len(referenceColumns))
	for _, c := range referenceColumns {
		out[c.name] = c.field.get(&f)
	}
	return out
}

// RecordFromColumns rebuilds a record from column values as decoded by a store.
// Numeric values are accepted in any Go numeric type; times must be time.Time.
// Unknown columns are ignored.
func RecordFromColumns(cols map[string]any) (Record, error) {
	var r Record
	for name, raw := range cols {
		switch name {
		case ColumnID:
			id, ok := raw.(string)
			if !ok {
				return Record{}, fmt.Errorf("column %s: unexpected type %T", name, raw)
			}
			r.ID = id
		case ColumnSNo:
			v, err := normalize(kindCount, raw)
			if err != nil {
				return Record{}, fmt.Errorf("column %s: %w", name, err)
			}
			if n, ok := v.(int); ok {
				r.SNo = &n
			}
		case ColumnDocument:
			v, err := normalize(kindText, raw)
			if err != nil {
				return Record{}, fmt.Errorf("column %s: %w", name, err)
			}
			if s, ok := v.(string); ok {
				r.SupportingDocumentBills = &s
			}
		case ColumnCreatedAt, ColumnUpdatedAt:
			t, ok := raw.(time.Time)
			if !ok && raw != nil {
				return Record{}, fmt.Errorf("column %s: unexpected type %T", name, raw)
			}
			if name == ColumnCreatedAt {
				r.CreatedAt = t.UTC()
			} else {
				r.UpdatedAt = t.UTC()
			}
		default:
			c, ok := fieldColumns[name]
			if !ok {
				continue
			}
			v, err := normalize(c.field.kind(), raw)
			if err != nil {
				return Record{}, fmt.Errorf("column %s: %w", name, err)
			}
			c.field.set(c.of(&r), v)
		}
	}
	return r, nil
}

// normalize converts a store-decoded value to the canonical Go type of k.
func normalize(k kind, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch k {
	case kindText:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case kindCount:
		switch v := raw.(type) {
		case int:
			if v >= minCount && v <= maxCount {
				return v, nil
			}
		case int32:
			return int(v), nil
		case int64:
			if v >= minCount && v <= maxCount {
				return int(v), nil
			}
		case float64:
			if n, ok := toCount(v); ok {
				return n, nil
			}
		}
	case kindAmount:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int32:
			return float64(v), nil
		case int64:
			return float64(v), nil
		}
	}
	return nil, fmt.Errorf("unexpected value %v (%T)", raw, raw)
}

// Count columns are INTEGER in Postgres and int32 in Mongo.
const (
	minCount = math.MinInt32
	maxCount = math.MaxInt32
)

// toCount reports whether f is a whole number that fits a count column.
func toCount(f float64) (int, bool) {
	if math.IsNaN(f) || f != math.Trunc(f) || f < minCount || f > maxCount {
		return 0, false
	}
	return int(f), true
}

func derefAny[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
