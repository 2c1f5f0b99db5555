package cli

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/collage/pkg/editor"
	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/geom"
	"github.com/matzehuels/collage/pkg/render"
)

// statusLines is the number of terminal rows below the canvas preview.
const statusLines = 2

var (
	statusBarStyle = lipgloss.NewStyle().Foreground(colorGray)
	promptStyle    = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	helpBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// EditorModel - interactive collage editor
// =============================================================================

// EditorModel is the bubbletea model for the collage editor. It renders the
// scene as half-block characters and maps mouse cells back to canvas
// coordinates, so pointer input reaches the editor the same way a
// windowed front end would deliver it.
type EditorModel struct {
	ctx context.Context
	ed  *editor.Editor

	width, height int

	// grid is the pixel size of the last preview; it maps cells to canvas
	// points.
	grid    image.Point
	preview string
	dirty   bool

	prompt editor.Prompt
	input  string
	status string
	isErr  bool
}

// NewEditorModel wraps ed for bubbletea. ctx bounds photo loading and
// export triggered from the UI.
func NewEditorModel(ctx context.Context, ed *editor.Editor) *EditorModel {
	return &EditorModel{ctx: ctx, ed: ed, width: 80, height: 24, dirty: true}
}

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.dirty = true
	case tea.KeyMsg:
		if m.prompt != editor.PromptNone {
			return m, m.promptKey(msg)
		}
		if msg.Paste {
			return m, m.apply(m.ed.Paste(m.ctx, string(msg.Runes)))
		}
		return m, m.apply(m.ed.Key(m.ctx, msg.String(), keyModifiers(msg)))
	case tea.MouseMsg:
		if m.prompt != editor.PromptNone {
			return m, nil
		}
		return m, m.mouse(msg)
	}
	return m, nil
}

// mouse forwards a pointer event in canvas coordinates.
func (m *EditorModel) mouse(msg tea.MouseMsg) tea.Cmd {
	p, ok := m.canvasPoint(msg.X, msg.Y)
	mods := mouseModifiers(msg)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if ok {
				return m.apply(m.ed.Wheel(p, 1, mods), nil)
			}
		case tea.MouseButtonWheelDown:
			if ok {
				return m.apply(m.ed.Wheel(p, -1, mods), nil)
			}
		case tea.MouseButtonLeft:
			if ok {
				return m.apply(m.ed.Press(p, editor.ButtonPrimary), nil)
			}
		case tea.MouseButtonRight:
			if ok {
				return m.apply(m.ed.Press(p, editor.ButtonSecondary), nil)
			}
		}
	case tea.MouseActionMotion:
		if ok {
			return m.apply(m.ed.Move(p), nil)
		}
	case tea.MouseActionRelease:
		if !ok {
			return m.apply(m.ed.CancelDrag(), nil)
		}
		return m.apply(m.ed.Release(m.ctx, p))
	}
	return nil
}

// canvasPoint maps terminal cell (x, y) to the canvas point under the
// centre of its upper half-block. ok is false outside the preview.
func (m *EditorModel) canvasPoint(x, y int) (geom.Point, bool) {
	if m.grid.X == 0 || m.grid.Y == 0 {
		return geom.Point{}, false
	}
	px, py := float64(x)+0.5, float64(2*y)+0.5
	if px >= float64(m.grid.X) || py >= float64(m.grid.Y) {
		return geom.Point{}, false
	}
	c := m.ed.Scene().Canvas()
	return geom.Pt(px*c.Width/float64(m.grid.X), py*c.Height/float64(m.grid.Y)), true
}

// promptKey edits the path prompt line.
func (m *EditorModel) promptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.closePrompt()
		m.ed.CancelPrompt()
		return nil
	case tea.KeyEnter:
		path, prompt := expandHome(strings.TrimSpace(m.input)), m.prompt
		m.closePrompt()
		if path == "" {
			m.ed.CancelPrompt()
			return nil
		}
		if prompt == editor.PromptSaveAs {
			return m.apply(m.ed.SaveAs(m.ctx, path))
		}
		return m.apply(m.ed.Open(m.ctx, path))
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
	}
	return nil
}

func (m *EditorModel) openPrompt(p editor.Prompt) {
	m.prompt = p
	m.input = ""
	if dir := m.ed.Config().LastDirectory; dir != "" {
		m.input = dir + string(filepath.Separator)
	}
	if p == editor.PromptSaveAs && m.ed.Config().OutputPath != "" {
		m.input = m.ed.Config().OutputPath
	}
}

func (m *EditorModel) closePrompt() {
	m.prompt = editor.PromptNone
	m.input = ""
}

// apply folds an editor result into the model. Errors become the status
// line; the editor has already left the scene consistent.
func (m *EditorModel) apply(res editor.Result, err error) tea.Cmd {
	if err != nil {
		m.status, m.isErr = errors.UserMessage(err), true
		return nil
	}
	if res.Redraw {
		m.dirty = true
	}
	if res.Message != "" {
		m.status, m.isErr = res.Message, false
	}
	if res.Prompt != editor.PromptNone {
		m.openPrompt(res.Prompt)
	}
	if res.Quit {
		return tea.Quit
	}
	return nil
}

func (m *EditorModel) View() string {
	if m.dirty {
		m.repaint()
	}
	if m.ed.HelpVisible() {
		return helpBoxStyle.Render(StyleTitle.Render("Keys") + "\n" + strings.TrimRight(editor.HelpText(), "\n"))
	}

	var b strings.Builder
	b.WriteString(m.preview)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	switch {
	case m.prompt == editor.PromptSaveAs:
		b.WriteString(promptStyle.Render("save as: ") + m.input + "█")
	case m.prompt == editor.PromptOpen:
		b.WriteString(promptStyle.Render("open photo: ") + m.input + "█")
	case m.isErr:
		b.WriteString(StyleError.Render(m.status))
	default:
		b.WriteString(StyleDim.Render(m.status))
	}
	return b.String()
}

func (m *EditorModel) statusLine() string {
	sc := m.ed.Scene()
	parts := []string{
		sc.Layout().String(),
		m.ed.AspectRatio().String(),
		fmt.Sprintf("radius %g", m.ed.Config().FrameRadius),
	}
	if f := m.ed.Focus(); f != nil {
		focus := fmt.Sprintf("frame %d/%d", f.Index+1, len(sc.Frames()))
		if ph := f.Photo(); ph != nil {
			focus += fmt.Sprintf(" %s ×%.2f %g°", filepath.Base(ph.Path), ph.Scale, ph.Rotation)
		}
		parts = append(parts, focus)
	}
	parts = append(parts, "h help")
	return statusBarStyle.Render(strings.Join(parts, " · "))
}

// repaint paints the scene, with its selection outline, at the preview
// resolution.
func (m *EditorModel) repaint() {
	m.dirty = false
	cols, rows := m.width, m.height-statusLines
	if cols <= 0 || rows <= 0 {
		m.preview, m.grid = "", image.Point{}
		return
	}
	sc := m.ed.Scene()
	cw, ch := sc.Canvas().PixelSize()
	gw, gh := render.TerminalSize(cw, ch, cols, rows)

	img, err := render.Paint(gw, gh, color.Black, func(s *render.Surface) error {
		s.Scale(float64(gw) / float64(cw))
		sc.Draw(s, m.ed.Style())
		return nil
	})
	if err != nil {
		m.status, m.isErr = errors.UserMessage(err), true
		return
	}
	m.grid = image.Pt(gw, gh)
	m.preview = render.Terminal(img, cols, rows)
}

func keyModifiers(msg tea.KeyMsg) editor.Modifiers {
	var mods editor.Modifiers
	if msg.Alt {
		mods |= editor.ModAlt
	}
	return mods
}

func mouseModifiers(msg tea.MouseMsg) editor.Modifiers {
	var mods editor.Modifiers
	if msg.Shift {
		mods |= editor.ModShift
	}
	if msg.Ctrl {
		mods |= editor.ModCtrl
	}
	if msg.Alt {
		mods |= editor.ModAlt
	}
	return mods
}
