package editor

import (
	"fmt"
	"strings"
)

// Binding is one row of the keybinding table.
type Binding struct {
	Keys        string
	Description string
}

// HelpCommands lists every editor binding in display order. The help
// overlay and the command-line usage both print it.
var HelpCommands = []Binding{
	{"+ / -", "grow / shrink frame radius (0 to max)"},
	{"h", "show or hide this help"},
	{"s", "save to the current output path"},
	{"S", "save as (asks for a path)"},
	{"w", "write the project file"},
	{"f", "reset photo and fill the frame"},
	{"F", "reset photo and fit it inside the frame"},
	{"/", "reset photo"},
	{"l / L", "next / previous layout preset"},
	{"a", "next aspect ratio (1:1, 2:3, 3:4)"},
	{"tab, arrows", "move focus between frames"},
	{"o, enter", "replace the focused photo (asks for a path)"},
	{"drag", "move the photo inside its frame"},
	{"right drag", "swap photos with the frame dropped on"},
	{"wheel", "zoom"},
	{"shift+wheel", "rotate"},
	{"shift+ctrl+wheel", "zoom and rotate"},
	{"double click", "replace the photo (asks for a path)"},
	{"paste path", "replace the focused photo"},
	{"q, ctrl+c", "quit"},
}

// HelpText formats [HelpCommands] as an aligned two-column table.
func HelpText() string {
	width := 0
	for _, b := range HelpCommands {
		width = max(width, len(b.Keys))
	}
	var sb strings.Builder
	for _, b := range HelpCommands {
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, b.Keys, b.Description)
	}
	return sb.String()
}
