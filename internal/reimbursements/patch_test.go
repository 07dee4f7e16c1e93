package reimbursements

import (
	"errors"
	"reflect"
	"testing"
)

func TestParsePatchCoercesAndReportsIgnored(t *testing.T) {
	body := []byte(`{
		"name_user": "Asha Verma",
		"mobile_user": 9876543210,
		"num_observers_user": "3",
		"observer_claim_user": "1500.50",
		"admin_staff_claim_user": 2000,
		"supporting_document_bills": "a1b2.pdf",
		"observer_claim_excel": 99,
		"observer_claim": 42
	}`)

	patch, ignored, err := ParsePatch(body)
	if err != nil {
		t.Fatalf("ParsePatch: %v", err)
	}
	if want := []string{"observer_claim", "observer_claim_excel"}; !reflect.DeepEqual(ignored, want) {
		t.Fatalf("ignored = %v, want %v", ignored, want)
	}
	if patch.Len() != 6 {
		t.Fatalf("expected 6 columns, got %d (%v)", patch.Len(), patch.Columns())
	}

	checks := map[string]any{
		"name_user":                 "Asha Verma",
		"mobile_user":               "9876543210",
		"num_observers_user":        3,
		"observer_claim_user":       1500.5,
		"admin_staff_claim_user":    2000.0,
		"supporting_document_bills": "a1b2.pdf",
	}
	for name, want := range checks {
		got, ok := patch.Value(name)
		if !ok {
			t.Fatalf("%s missing from patch", name)
		}
		if got != want {
			t.Fatalf("%s = %#v, want %#v", name, got, want)
		}
	}
}

func TestParsePatchNullClears(t *testing.T) {
	patch, _, err := ParsePatch([]byte(`{"bank_name_user": null}`))
	if err != nil {
		t.Fatalf("ParsePatch: %v", err)
	}
	v, ok := patch.Value("bank_name_user")
	if !ok || v != nil {
		t.Fatalf("expected present nil value, got %v (present=%v)", v, ok)
	}

	rec := Record{Submitted: Fields{Bank: BankDetails{BankName: Ptr("SBI")}}}
	patch.ApplyTo(&rec)
	if rec.Submitted.Bank.BankName != nil {
		t.Fatalf("expected bank name cleared")
	}
}

func TestParsePatchRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"not json":            `{"name_user":`,
		"array body":          `[1, 2]`,
		"fractional count":    `{"num_observers_user": 2.5}`,
		"count from bool":     `{"num_team_leaders_user": true}`,
		"amount from text":    `{"observer_claim_user": "lots"}`,
		"text from object":    `{"name_user": {"first": "A"}}`,
		"document from list":  `{"supporting_document_bills": ["a"]}`,
		"count exponent":      `{"num_observers_user": 1e19}`,
		"count exponent text": `{"num_observers_user": "1e19"}`,
		"count past int32":    `{"num_observers_user": 2147483648}`,
		"count below int32":   `{"num_team_leaders_user": -2147483649}`,
		"count huge literal":  `{"num_observers_user": 3000000000}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParsePatch([]byte(body))
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParsePatchAcceptsCountBounds(t *testing.T) {
	patch, _, err := ParsePatch([]byte(`{"num_observers_user": 2147483647, "num_team_leaders_user": "-2147483648"}`))
	if err != nil {
		t.Fatalf("ParsePatch: %v", err)
	}
	if v, _ := patch.Value("num_observers_user"); v != 2147483647 {
		t.Fatalf("expected max count, got %v (%T)", v, v)
	}
	if v, _ := patch.Value("num_team_leaders_user"); v != -2147483648 {
		t.Fatalf("expected min count, got %v (%T)", v, v)
	}
}

func TestParsePatchEmptyBody(t *testing.T) {
	for _, body := range []string{"", "  ", "null", "{}"} {
		patch, ignored, err := ParsePatch([]byte(body))
		if err != nil {
			t.Fatalf("ParsePatch(%q): %v", body, err)
		}
		if patch.Len() != 0 || len(ignored) != 0 {
			t.Fatalf("ParsePatch(%q): expected empty patch", body)
		}
	}
}

func TestPatchSetRejectsReferenceColumns(t *testing.T) {
	p := NewPatch()
	if err := p.Set("name_excel", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for reference column, got %v", err)
	}
	if err := p.Set("num_observers_user", 2.5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for fractional count, got %v", err)
	}
	if err := p.Set("num_observers_user", 3000000000); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out of range count, got %v", err)
	}
	if err := p.Set("num_observers_user", 1e19); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for float overflow, got %v", err)
	}
	if err := p.Set("num_observers_user", 4); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if p.Len() != 1 {
		t.Fatalf("expected 1 column, got %d", p.Len())
	}
}
