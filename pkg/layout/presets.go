package layout

import "strings"

// Preset is a named layout offered in the editor's layout selector.
type Preset struct {
	Name       string
	Descriptor Descriptor
}

// Presets lists the built-in layouts in selector order.
var Presets = []Preset{
	{"Grid 2x2", GridOf(2, 2)},
	{"Grid 3x3", GridOf(3, 3)},
	{"Grid 3x4", GridOf(3, 4)},
	{"Grid 4x4", GridOf(4, 4)},
	{"Grid 5x5", GridOf(5, 5)},
	{"Columns 1B/3", MustParse("columns:1B/3")},
	{"Columns 2/2B/2", MustParse("columns:2/2B/2")},
	{"Columns 3/1B/3", MustParse("columns:3/1B/3")},
	{"Columns 3/2B/3", MustParse("columns:3/2B/3")},
	{"Rows 1B/2/3/2B", MustParse("rows:1B/2/3/2B")},
}

// DefaultPreset is the index of the layout selected at startup (Grid 3x3).
const DefaultPreset = 1

// FindPreset returns the index of the preset whose name or descriptor matches
// s, ignoring case, or -1.
func FindPreset(s string) int {
	for i, p := range Presets {
		if strings.EqualFold(p.Name, s) || strings.EqualFold(p.Descriptor.String(), s) {
			return i
		}
	}
	return -1
}

// PresetIndex returns the index of the preset equal to d, or -1 for custom
// layouts.
func PresetIndex(d Descriptor) int {
	return FindPreset(d.String())
}
