package scene

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/geom"
	"github.com/matzehuels/collage/pkg/observability"
)

// DropAction is the operation a drag proposes to its drop target.
type DropAction int

const (
	// DropCopy loads a dragged file into the target frame.
	DropCopy DropAction = iota
	// DropMove swaps photos between the source and target frames.
	DropMove
)

// DropData is what survives a drag: plain text and/or URLs, plus the
// proposed action. No object references cross this boundary.
type DropData struct {
	Action DropAction
	Text   string
	URLs   []string
}

// AcceptsDrop reports whether d can be handled by a frame: exactly one URL,
// or some text.
func AcceptsDrop(d DropData) bool {
	return len(d.URLs) == 1 || d.Text != ""
}

// SwapPayload identifies the frame a swap drag started from by a canvas
// point, re-resolved with a hit test at drop time.
type SwapPayload struct {
	Pos geom.Point `json:"pos"`
}

// Encode renders the wire form: {"pos":{"x":..,"y":..}}.
func (p SwapPayload) Encode() string {
	b, _ := json.Marshal(p)
	return string(b)
}

// DropData wraps the payload for a move drop.
func (p SwapPayload) DropData() DropData {
	return DropData{Action: DropMove, Text: p.Encode()}
}

// DecodeSwapPayload parses the wire form. Both coordinates are required.
func DecodeSwapPayload(text string) (SwapPayload, error) {
	var raw struct {
		Pos *struct {
			X *float64 `json:"x"`
			Y *float64 `json:"y"`
		} `json:"pos"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return SwapPayload{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "not a swap payload")
	}
	if raw.Pos == nil || raw.Pos.X == nil || raw.Pos.Y == nil {
		return SwapPayload{}, errors.New(errors.ErrCodeInvalidInput, "swap payload needs pos.x and pos.y")
	}
	return SwapPayload{Pos: geom.Pt(*raw.Pos.X, *raw.Pos.Y)}, nil
}

// FileURLPath converts a file:// URL to a local path. Anything else is
// returned unchanged, so plain paths pasted by a terminal also work.
func FileURLPath(s string) string {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Scheme != "file" {
		return s
	}
	return u.Path
}

// Swap exchanges the photos of a and b without resetting them: each photo
// keeps its position, scale and rotation relative to its new frame. Both
// frames must own a photo; otherwise nothing changes.
func Swap(a, b *Frame) error {
	if a == nil || b == nil || a.photo == nil || b.photo == nil {
		return errors.New(errors.ErrCodeSwapTargetNotFound, "swap needs two frames with photos")
	}
	pa, pb := a.photo, b.photo
	a.SetPhoto(pb, false)
	b.SetPhoto(pa, false)
	return nil
}

// DropResult says what a drop did.
type DropResult int

const (
	DropIgnored DropResult = iota
	DropSwapped
	DropReplaced
)

// String returns a short description for logs.
func (r DropResult) String() string {
	switch r {
	case DropSwapped:
		return "swapped"
	case DropReplaced:
		return "replaced"
	default:
		return "ignored"
	}
}

// Drop handles a drop on target.
//
// A move drop carrying a swap payload hit-tests the payload position and
// swaps photos with the first frame found there. A copy drop carrying one
// URL loads that file into target.
//
// Drops that change nothing return DropIgnored. When the cause is worth
// reporting (no frame under the payload, unparsable payload) the error is
// SWAP_TARGET_NOT_FOUND, which callers treat as recoverable and may ignore.
// A failed load returns IMAGE_LOAD with the previous photo still in place.
func (sc *Scene) Drop(ctx context.Context, target *Frame, d DropData) (DropResult, error) {
	hooks := observability.Scene()
	if target == nil {
		hooks.OnDropIgnored(ctx, "no target frame")
		return DropIgnored, errors.New(errors.ErrCodeSwapTargetNotFound, "drop outside any frame")
	}

	switch {
	case d.Action == DropCopy && len(d.URLs) > 0:
		if err := sc.ReplacePhoto(ctx, target, FileURLPath(d.URLs[0])); err != nil {
			return DropIgnored, err
		}
		return DropReplaced, nil

	case d.Action == DropMove && d.Text != "":
		payload, err := DecodeSwapPayload(d.Text)
		if err != nil {
			hooks.OnDropIgnored(ctx, "not a swap payload")
			return DropIgnored, errors.Wrap(errors.ErrCodeSwapTargetNotFound, err, "ignore drop")
		}
		src := sc.FrameAt(payload.Pos)
		if src == nil {
			hooks.OnDropIgnored(ctx, "no frame at swap origin")
			return DropIgnored, errors.New(errors.ErrCodeSwapTargetNotFound, "no frame at (%.1f, %.1f)", payload.Pos.X, payload.Pos.Y)
		}
		if src == target {
			hooks.OnDropIgnored(ctx, "dropped on its own frame")
			return DropIgnored, nil
		}
		if err := Swap(src, target); err != nil {
			hooks.OnDropIgnored(ctx, "frame without photo")
			return DropIgnored, err
		}
		hooks.OnSwap(ctx, src.Index, target.Index)
		return DropSwapped, nil
	}

	hooks.OnDropIgnored(ctx, "unsupported drop")
	return DropIgnored, nil
}
