package errors

import (
	"strings"
	"testing"
)

func TestValidateDiagramName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "farmed-animals", false},
		{"valid with underscore", "my_diagram", false},
		{"valid with dot", "v1.2", false},
		{"valid digits", "2025", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"path traversal ..", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"leading dot", ".hidden", true},
		{"leading dash", "-flag", true},
		{"space", "my diagram", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDiagramName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDiagramName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateDiagramName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("svg", "svg", "dot"); err != nil {
		t.Errorf("ValidateFormat(svg) error = %v", err)
	}
	err := ValidateFormat("pdf", "svg", "dot")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(pdf) error = %v, want %v", err, ErrCodeInvalidFormat)
	}
	if !strings.Contains(UserMessage(err), "svg, dot") {
		t.Errorf("message should list allowed formats: %q", UserMessage(err))
	}
}
