package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/collage/pkg/errors"
)

// Kind selects one of the three layout families.
type Kind int

const (
	// Grid is a uniform cols×rows grid.
	Grid Kind = iota
	// Columns is a left-to-right sequence of columns, each split vertically.
	Columns
	// Rows is a top-to-bottom sequence of rows, each split horizontally.
	Rows
)

var kindNames = map[Kind]string{
	Grid:    "grid",
	Columns: "columns",
	Rows:    "rows",
}

// String returns the lowercase family name used in descriptors.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one column (or row) of a column/row layout.
type Token struct {
	// Count is the number of photos stacked in this column or row.
	Count int
	// Big doubles the column width (or row height).
	Big bool
}

// String renders the token in descriptor grammar, e.g. "2B".
func (t Token) String() string {
	if t.Big {
		return strconv.Itoa(t.Count) + "B"
	}
	return strconv.Itoa(t.Count)
}

// MaxFrames bounds the number of frames a descriptor may produce.
const MaxFrames = 1024

// Descriptor fully describes a layout independent of canvas size.
type Descriptor struct {
	Kind Kind

	// Cols and Rows are set for Grid.
	Cols, Rows int

	// Tokens are set for Columns and Rows.
	Tokens []Token
}

// GridOf returns a Grid descriptor.
func GridOf(cols, rows int) Descriptor {
	return Descriptor{Kind: Grid, Cols: cols, Rows: rows}
}

// String renders the descriptor in the form accepted by [Parse].
func (d Descriptor) String() string {
	switch d.Kind {
	case Grid:
		return fmt.Sprintf("grid:%dx%d", d.Cols, d.Rows)
	default:
		return d.Kind.String() + ":" + JoinTokens(d.Tokens)
	}
}

// Count returns the number of frames the layout produces.
func (d Descriptor) Count() int {
	if d.Kind == Grid {
		return d.Cols * d.Rows
	}
	n := 0
	for _, t := range d.Tokens {
		n += t.Count
	}
	return n
}

// Validate checks that the descriptor can be laid out.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case Grid:
		if d.Cols < 1 || d.Rows < 1 {
			return errors.New(errors.ErrCodeInvalidLayout, "grid needs at least one column and row, got %dx%d", d.Cols, d.Rows)
		}
		if d.Cols > MaxFrames || d.Rows > MaxFrames || d.Cols*d.Rows > MaxFrames {
			return errors.New(errors.ErrCodeInvalidLayout, "grid %dx%d exceeds %d frames", d.Cols, d.Rows, MaxFrames)
		}
	case Columns, Rows:
		if len(d.Tokens) == 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "%s layout has no tokens", d.Kind)
		}
		n := 0
		for i, t := range d.Tokens {
			if t.Count < 1 {
				return errors.New(errors.ErrCodeInvalidLayout, "token %d (%s) must hold at least one photo", i+1, t)
			}
			// Each count is checked before summing so n cannot overflow.
			if t.Count > MaxFrames {
				return errors.New(errors.ErrCodeInvalidLayout, "token %d (%s) exceeds %d frames", i+1, t, MaxFrames)
			}
			if n += t.Count; n > MaxFrames {
				return errors.New(errors.ErrCodeInvalidLayout, "%s layout exceeds %d frames", d.Kind, MaxFrames)
			}
		}
	default:
		return errors.New(errors.ErrCodeInvalidLayout, "unknown layout kind %d", int(d.Kind))
	}
	return nil
}

// ParseTokens parses the compact column/row grammar: tokens separated by
// "/", each a positive photo count with an optional trailing "B".
//
//	ParseTokens("3/2B/3") // [{3 false} {2 true} {3 false}]
func ParseTokens(s string) ([]Token, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "empty layout")
	}

	parts := strings.Split(s, "/")
	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		tok := Token{}
		if num, ok := strings.CutSuffix(p, "B"); ok {
			tok.Big = true
			p = num
		}
		if p == "" || strings.ContainsAny(p, "+-") {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "malformed token %q in %q", p, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "malformed token %q in %q", p, s)
		}
		tok.Count = n
		if n < 1 {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "token %q in %q must hold at least one photo", tok, s)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// JoinTokens renders tokens back into "/"-separated form.
func JoinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, "/")
}

// Parse reads a layout descriptor. Accepted forms:
//
//	grid:3x4       3x4          Grid 3x4
//	columns:3/2B/3 cols:3/2B/3  Columns 3/2B/3   3/2B/3
//	rows:1B/2/3/2B              Rows 1B/2/3/2B
//
// A bare token list means columns. Family names are case-insensitive.
func Parse(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Descriptor{}, errors.New(errors.ErrCodeInvalidLayout, "empty layout")
	}

	family, body := "", s
	if i := strings.IndexAny(s, ": "); i >= 0 {
		family, body = strings.ToLower(s[:i]), strings.TrimSpace(s[i+1:])
	} else if strings.ContainsAny(s, "xX") {
		family = "grid"
	}

	switch family {
	case "grid":
		return parseGrid(body)
	case "", "columns", "cols", "column":
		return parseStrips(Columns, body)
	case "rows", "row":
		return parseStrips(Rows, body)
	default:
		return Descriptor{}, errors.New(errors.ErrCodeInvalidLayout, "unknown layout family %q", family)
	}
}

func parseStrips(kind Kind, s string) (Descriptor, error) {
	tokens, err := ParseTokens(s)
	if err != nil {
		return Descriptor{}, err
	}
	d := Descriptor{Kind: kind, Tokens: tokens}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

func parseGrid(s string) (Descriptor, error) {
	c, r, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return Descriptor{}, errors.New(errors.ErrCodeInvalidLayout, "grid must be COLSxROWS, got %q", s)
	}
	cols, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return Descriptor{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "grid columns %q", c)
	}
	rows, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return Descriptor{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "grid rows %q", r)
	}
	d := GridOf(cols, rows)
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// MustParse is like [Parse] but panics on error. Intended for presets and tests.
func MustParse(s string) Descriptor {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
