package errors

import (
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantCode Code
	}{
		{"png", "out.png", false, ""},
		{"jpg", "/tmp/collage.jpg", false, ""},
		{"jpeg upper", "collage.JPEG", false, ""},
		{"gif", "anim.gif", false, ""},

		{"empty", "", true, ErrCodeInvalidPath},
		{"null byte", "out\x00.png", true, ErrCodeInvalidPath},
		{"newline", "out\n.png", true, ErrCodeInvalidPath},
		{"no extension", "collage", true, ErrCodeInvalidFormat},
		{"svg", "collage.svg", true, ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !Is(err, tt.wantCode) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestValidateLayoutSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"columns", "3/2B/3", false},
		{"prefixed", "rows:1B/2/3/2B", false},
		{"grid", "grid:3x4", false},
		{"preset name", "Grid 3x3", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 100)), true},
		{"script", "<script>", true},
		{"dots", "../etc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayoutSpec(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayoutSpec(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
