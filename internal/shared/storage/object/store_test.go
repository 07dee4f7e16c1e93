package object

import "testing"

func TestValidKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key  string
		want bool
	}{
		{"3f2c.pdf", true},
		{"3f2c", true},
		{"", false},
		{"..", false},
		{"a/../b", false},
		{`a\b`, false},
		{".upload-123", false},
	}
	for _, tt := range tests {
		if got := ValidKey(tt.key); got != tt.want {
			t.Fatalf("ValidKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
