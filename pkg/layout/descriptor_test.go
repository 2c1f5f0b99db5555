package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/collage/pkg/errors"
)

func TestParseTokens(t *testing.T) {
	tests := []struct {
		in      string
		want    []Token
		wantErr bool
	}{
		{"3/2B/3", []Token{{3, false}, {2, true}, {3, false}}, false},
		{"1B/3", []Token{{1, true}, {3, false}}, false},
		{" 2 / 2B ", []Token{{2, false}, {2, true}}, false},
		{"4", []Token{{4, false}}, false},

		{"0B/2", nil, true},
		{"2/0", nil, true},
		{"", nil, true},
		{"2//3", nil, true},
		{"B", nil, true},
		{"-1/2", nil, true},
		{"x/2", nil, true},
		{"2b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTokens(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidLayout) {
					t.Errorf("ParseTokens(%q) error = %v, want INVALID_LAYOUT", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTokens(%q): %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTokens(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"grid:3x4", "grid:3x4", false},
		{"3x4", "grid:3x4", false},
		{"Grid 5x5", "grid:5x5", false},
		{"columns:3/2B/3", "columns:3/2B/3", false},
		{"cols:1B/3", "columns:1B/3", false},
		{"Columns 2/2B/2", "columns:2/2B/2", false},
		{"3/1B/3", "columns:3/1B/3", false},
		{"rows:1B/2/3/2B", "rows:1B/2/3/2B", false},
		{"Rows 1B/2/3/2B", "rows:1B/2/3/2B", false},

		{"", "", true},
		{"grid:0x3", "", true},
		{"grid:3", "", true},
		{"spiral:3/3", "", true},
		{"columns:0B/2", "", true},
		{"grid:32x32", "grid:32x32", false},
		{"grid:33x32", "", true},
		{"grid:1x1025", "", true},
		{"grid:3037000500x3037000500", "", true},
		{"columns:1000000000", "", true},
		{"rows:512/512B/1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidLayout) {
					t.Errorf("Parse(%q) error = %v, want INVALID_LAYOUT", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	for _, p := range Presets {
		got, err := Parse(p.Descriptor.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", p.Descriptor, err)
		}
		if !reflect.DeepEqual(got, p.Descriptor) {
			t.Errorf("round trip %q = %+v, want %+v", p.Name, got, p.Descriptor)
		}
	}
}

func TestDescriptorCount(t *testing.T) {
	tests := []struct {
		d    Descriptor
		want int
	}{
		{GridOf(3, 4), 12},
		{MustParse("3/2B/3"), 8},
		{MustParse("rows:1B/2/3/2B"), 8},
	}
	for _, tt := range tests {
		if got := tt.d.Count(); got != tt.want {
			t.Errorf("%s.Count() = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestPresets(t *testing.T) {
	if Presets[DefaultPreset].Name != "Grid 3x3" {
		t.Errorf("default preset = %q, want Grid 3x3", Presets[DefaultPreset].Name)
	}
	for i, p := range Presets {
		if err := p.Descriptor.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", p.Name, err)
		}
		if got := FindPreset(p.Name); got != i {
			t.Errorf("FindPreset(%q) = %d, want %d", p.Name, got, i)
		}
		if got := PresetIndex(p.Descriptor); got != i {
			t.Errorf("PresetIndex(%s) = %d, want %d", p.Descriptor, got, i)
		}
	}
	if FindPreset("grid 9x9") != -1 {
		t.Error("FindPreset should not match unknown layouts")
	}
}

func TestKindString(t *testing.T) {
	if Columns.String() != "columns" || Kind(7).String() != "Kind(7)" {
		t.Errorf("Kind.String() = %q, %q", Columns.String(), Kind(7).String())
	}
}
