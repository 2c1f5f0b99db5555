package editor

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/geom"
	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/project"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scene"
	"github.com/matzehuels/collage/pkg/source"
)

// DoubleClickInterval is the longest gap between two primary presses that
// still counts as a double click.
const DoubleClickInterval = 400 * time.Millisecond

// doubleClickSlop is how far (Manhattan) the pointer may move between the
// two presses of a double click.
const doubleClickSlop = 4

// Prompt asks the front end for a path.
type Prompt int

const (
	PromptNone Prompt = iota
	// PromptSaveAs asks for an output path; answer with [Editor.SaveAs].
	PromptSaveAs
	// PromptOpen asks for a photo to place in the target frame; answer
	// with [Editor.Open].
	PromptOpen
)

// Result tells the front end what an input event changed.
type Result struct {
	// Redraw is set when the scene or overlay changed.
	Redraw bool
	// Quit is set when the user asked to leave.
	Quit bool
	// Prompt requests a path from the user.
	Prompt Prompt
	// Message is a one-line status for the user.
	Message string
}

// Editor ties a scene to its configuration and input controller. It is not
// safe for concurrent use: one goroutine (the UI loop) owns it.
type Editor struct {
	cfg    *Config
	scene  *scene.Scene
	ctrl   *Controller
	logger *log.Logger

	preset int
	aspect scene.AspectRatio
	help   bool

	projectPath string

	promptFrame *scene.Frame
	lastClick   time.Time
	lastClickAt geom.Point

	now func() time.Time
}

// New builds an editor over sources using cfg's layout and aspect ratio.
// An empty source list shows the placeholder photo. A nil loader reads
// files from disk and a nil logger logs to [log.Default].
func New(ctx context.Context, cfg *Config, sources []string, loader source.Loader, logger *log.Logger) (*Editor, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	desc, err := layout.Parse(cfg.LayoutSpec())
	if err != nil {
		return nil, err
	}
	aspect, err := scene.ParseAspectRatio(cfg.Aspect)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		logger.Warn("no photos given, using placeholder")
		sources = source.OrPlaceholder(sources)
	}

	e := &Editor{
		cfg:    cfg,
		scene:  scene.New(loader),
		ctrl:   NewController(cfg),
		logger: logger,
		preset: layout.PresetIndex(desc),
		aspect: aspect,
		now:    time.Now,
	}
	if err := e.scene.Rebuild(ctx, desc, scene.NewCanvas(scene.DefaultCanvasWidth, aspect), sources); err != nil {
		return nil, err
	}
	e.focusIndex(0)
	return e, nil
}

// Scene returns the edited scene.
func (e *Editor) Scene() *scene.Scene { return e.scene }

// Config returns the live configuration.
func (e *Editor) Config() *Config { return e.cfg }

// Controller returns the pointer controller.
func (e *Editor) Controller() *Controller { return e.ctrl }

// HelpVisible reports whether the help overlay is shown.
func (e *Editor) HelpVisible() bool { return e.help }

// Focus returns the focused frame, or nil for an empty scene.
func (e *Editor) Focus() *scene.Frame { return e.scene.Selected() }

// AspectRatio returns the canvas aspect ratio.
func (e *Editor) AspectRatio() scene.AspectRatio { return e.aspect }

// Style returns the painting style for the current settings.
func (e *Editor) Style() scene.Style { return e.cfg.Style() }

func (e *Editor) focusIndex(i int) {
	frames := e.scene.Frames()
	if len(frames) == 0 {
		e.scene.ClearSelection()
		return
	}
	i = ((i % len(frames)) + len(frames)) % len(frames)
	e.scene.Select(frames[i])
}

func (e *Editor) focusedIndex() int {
	if f := e.Focus(); f != nil {
		return e.scene.FrameIndex(f)
	}
	return 0
}

// Key handles a key press. Keys use bubbletea naming ("a", "A", "+",
// "tab", "shift+tab", "left", "ctrl+c").
func (e *Editor) Key(ctx context.Context, key string, mods Modifiers) (Result, error) {
	switch key {
	case "q", "ctrl+c":
		return Result{Quit: true}, nil
	case "esc":
		e.ctrl.Cancel()
		e.help = false
		return Result{Redraw: true}, nil
	case "h", "H", "?":
		e.help = !e.help
		return Result{Redraw: true}, nil
	case "+", "=":
		return e.setRadius(e.cfg.FrameRadius + 1), nil
	case "-", "_":
		return e.setRadius(e.cfg.FrameRadius - 1), nil
	case "s":
		if e.cfg.OutputPath == "" {
			return Result{Prompt: PromptSaveAs}, nil
		}
		return e.SaveAs(ctx, e.cfg.OutputPath)
	case "S":
		return Result{Prompt: PromptSaveAs}, nil
	case "w":
		return e.SaveProject()
	case "o", "enter":
		if e.Focus() == nil {
			return Result{}, nil
		}
		e.promptFrame = e.Focus()
		return Result{Prompt: PromptOpen}, nil
	case "l":
		return e.cyclePreset(ctx, 1)
	case "L":
		return e.cyclePreset(ctx, -1)
	case "a":
		return e.NextAspectRatio(ctx)
	case "tab":
		e.focusIndex(e.focusedIndex() + 1)
		return Result{Redraw: true}, nil
	case "shift+tab":
		e.focusIndex(e.focusedIndex() - 1)
		return Result{Redraw: true}, nil
	case "left":
		return e.moveFocus(geom.Pt(-1, 0)), nil
	case "right":
		return e.moveFocus(geom.Pt(1, 0)), nil
	case "up":
		return e.moveFocus(geom.Pt(0, -1)), nil
	case "down":
		return e.moveFocus(geom.Pt(0, 1)), nil
	}
	if e.ctrl.Key(e.Focus(), key, mods) {
		return Result{Redraw: true}, nil
	}
	return Result{}, nil
}

func (e *Editor) setRadius(r float64) Result {
	r = math.Max(0, math.Min(e.cfg.MaxFrameRadius, r))
	if r == e.cfg.FrameRadius {
		return Result{}
	}
	e.cfg.FrameRadius = r
	return Result{Redraw: true, Message: fmt.Sprintf("radius %g", r)}
}

// moveFocus focuses the nearest frame whose center lies in direction dir
// from the focused frame's center. Focus stays put at the edge.
func (e *Editor) moveFocus(dir geom.Point) Result {
	cur := e.Focus()
	if cur == nil {
		e.focusIndex(0)
		return Result{Redraw: true}
	}
	from := cur.Rect.Center()
	var best *scene.Frame
	bestDist := math.Inf(1)
	for _, f := range e.scene.Frames() {
		d := f.Rect.Center().Sub(from)
		along := d.X*dir.X + d.Y*dir.Y
		if f == cur || along <= 0 {
			continue
		}
		across := math.Abs(d.X*dir.Y - d.Y*dir.X)
		if dist := along + 2*across; dist < bestDist {
			best, bestDist = f, dist
		}
	}
	if best == nil {
		return Result{}
	}
	e.scene.Select(best)
	return Result{Redraw: true}
}

func (e *Editor) cyclePreset(ctx context.Context, step int) (Result, error) {
	n := len(layout.Presets)
	i := e.preset
	if i < 0 {
		i = layout.DefaultPreset
		step = 0
	}
	i = ((i+step)%n + n) % n
	p := layout.Presets[i]
	if err := e.SetLayout(ctx, p.Descriptor); err != nil {
		return Result{}, err
	}
	return Result{Redraw: true, Message: p.Name}, nil
}

// SetLayout rebuilds the scene with desc. On failure the scene is left as
// it was.
func (e *Editor) SetLayout(ctx context.Context, desc layout.Descriptor) error {
	if err := e.scene.SetLayout(ctx, desc); err != nil {
		e.logger.Warn("layout unchanged", "layout", desc.String(), "err", err)
		return err
	}
	e.preset = layout.PresetIndex(desc)
	e.cfg.Layout = desc.String()
	e.focusIndex(0)
	return nil
}

// NextAspectRatio switches to the next canvas aspect ratio and rebuilds.
func (e *Editor) NextAspectRatio(ctx context.Context) (Result, error) {
	next := e.aspect.Next()
	if err := e.scene.SetAspectRatio(ctx, next); err != nil {
		return Result{}, err
	}
	e.aspect = next
	e.cfg.Aspect = next.String()
	e.focusIndex(0)
	return Result{Redraw: true, Message: "aspect " + next.String()}, nil
}

// Press handles a pointer press at canvas point p. A second primary press
// within [DoubleClickInterval] on the same spot asks for a replacement
// photo instead.
func (e *Editor) Press(p geom.Point, b Button) Result {
	f := e.scene.FrameAt(p)
	if f == nil {
		return Result{}
	}
	e.scene.Select(f)

	if b == ButtonPrimary {
		now := e.now()
		double := now.Sub(e.lastClick) <= DoubleClickInterval && p.Sub(e.lastClickAt).Manhattan() <= doubleClickSlop
		e.lastClick, e.lastClickAt = now, p
		if double {
			e.lastClick = time.Time{}
			e.ctrl.Cancel()
			e.promptFrame = f
			return Result{Redraw: true, Prompt: PromptOpen}
		}
	}
	e.ctrl.Press(f, p, b)
	return Result{Redraw: true}
}

// Move handles pointer motion to canvas point p.
func (e *Editor) Move(p geom.Point) Result {
	before := e.ctrl.State()
	if _, started := e.ctrl.Move(p); started {
		e.logger.Debug("swap drag started", "from", e.ctrl.Frame().Index)
	}
	return Result{Redraw: before == DraggingMove}
}

// Release ends a pointer interaction at p. A swap drag is delivered as a
// drop on the frame under p; drops that hit nothing are logged and ignored.
func (e *Editor) Release(ctx context.Context, p geom.Point) (Result, error) {
	payload, ok := e.ctrl.Release()
	if !ok {
		return Result{}, nil
	}
	return e.drop(ctx, e.scene.FrameAt(p), payload.DropData())
}

// DragState returns the pointer interaction state.
func (e *Editor) DragState() State { return e.ctrl.State() }

// CancelDrag ends a pointer interaction that left the canvas. Nothing is
// dropped; a photo being moved keeps its current offset.
func (e *Editor) CancelDrag() Result {
	before := e.ctrl.State()
	e.ctrl.Cancel()
	return Result{Redraw: before != Idle}
}

func (e *Editor) drop(ctx context.Context, target *scene.Frame, d scene.DropData) (Result, error) {
	res, err := e.scene.Drop(ctx, target, d)
	switch {
	case errors.Is(err, errors.ErrCodeSwapTargetNotFound):
		e.logger.Debug("drop ignored", "err", err)
		return Result{}, nil
	case err != nil:
		return Result{}, err
	}
	if target != nil && res != scene.DropIgnored {
		e.scene.Select(target)
	}
	return Result{Redraw: res != scene.DropIgnored}, nil
}

// Wheel applies one wheel tick to the photo under p.
func (e *Editor) Wheel(p geom.Point, delta int, mods Modifiers) Result {
	return Result{Redraw: e.ctrl.Wheel(e.scene.PhotoAt(p), delta, mods)}
}

// Paste treats pasted text as a file drop on the focused frame. The text
// may be a plain path or a file:// URL.
func (e *Editor) Paste(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, nil
	}
	d := scene.DropData{Action: scene.DropCopy, URLs: []string{text}}
	r, err := e.drop(ctx, e.Focus(), d)
	if err != nil {
		return r, err
	}
	e.rememberDir(scene.FileURLPath(text))
	return r, nil
}

// Open answers a [PromptOpen]: the photo at path replaces the one in the
// frame the prompt was raised for. The new photo is reset and filled.
func (e *Editor) Open(ctx context.Context, path string) (Result, error) {
	f := e.promptFrame
	if f == nil {
		f = e.Focus()
	}
	e.promptFrame = nil
	if err := e.scene.ReplacePhoto(ctx, f, path); err != nil {
		e.logger.Warn("photo unchanged", "path", path, "err", err)
		return Result{}, err
	}
	e.rememberDir(path)
	return Result{Redraw: true, Message: "opened " + filepath.Base(path)}, nil
}

// CancelPrompt forgets a pending prompt.
func (e *Editor) CancelPrompt() { e.promptFrame = nil }

// SaveAs exports the collage to path and makes it the default output.
// The focused frame is restored after export.
func (e *Editor) SaveAs(ctx context.Context, path string) (Result, error) {
	focus := e.Focus()
	err := render.ExportFile(ctx, e.scene, path, render.WithStyle(e.cfg.Style()))
	if focus != nil {
		e.scene.Select(focus)
	}
	if err != nil {
		e.logger.Error("save failed", "path", path, "err", err)
		return Result{}, err
	}
	e.cfg.OutputPath = path
	e.rememberDir(path)
	e.logger.Info("saved", "path", path)
	return Result{Message: "saved " + path}, nil
}

func (e *Editor) rememberDir(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		e.cfg.LastDirectory = filepath.Dir(abs)
	}
}

// OpenProject restores a saved composition and remembers path for
// [Editor.SaveProject]. Photos that fail to load are reported in the error
// but the rest of the project is applied.
func (e *Editor) OpenProject(ctx context.Context, path string) error {
	p, err := project.Load(path)
	if err != nil {
		return err
	}
	aspect, err := p.AspectRatio()
	if err != nil {
		return err
	}
	applyErr := p.Apply(ctx, e.scene)
	if applyErr != nil && !errors.Is(applyErr, errors.ErrCodeImageLoad) {
		return applyErr
	}
	e.projectPath = path
	e.aspect = aspect
	e.preset = layout.PresetIndex(e.scene.Layout())
	e.cfg.Layout = e.scene.Layout().String()
	e.cfg.Aspect = aspect.String()
	if p.Radius >= 0 && p.Radius <= e.cfg.MaxFrameRadius {
		e.cfg.FrameRadius = p.Radius
	}
	e.focusIndex(0)
	return applyErr
}

// SetProjectPath sets where [Editor.SaveProject] writes.
func (e *Editor) SetProjectPath(path string) { e.projectPath = path }

// ProjectPath returns the project file in use, or "".
func (e *Editor) ProjectPath() string { return e.projectPath }

// SaveProject writes the composition to the project path.
func (e *Editor) SaveProject() (Result, error) {
	if e.projectPath == "" {
		return Result{Message: "no project file (start with --project)"}, nil
	}
	p := project.Capture(e.scene, e.aspect, e.cfg.FrameRadius)
	if err := p.Save(e.projectPath); err != nil {
		return Result{}, err
	}
	e.logger.Info("project saved", "path", e.projectPath)
	return Result{Message: "project saved to " + e.projectPath}, nil
}
