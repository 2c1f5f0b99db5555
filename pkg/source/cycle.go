package source

import "github.com/matzehuels/collage/pkg/errors"

// Cycle hands out photo sources in order and wraps around to the first one
// after the last. It never runs dry, so a layout with more cells than photos
// repeats the sequence.
//
// A Cycle is not safe for concurrent use.
type Cycle struct {
	items  []string
	cursor int
}

// NewCycle returns a Cycle over a copy of items. It fails with EMPTY_INPUT
// when items is empty.
func NewCycle(items []string) (*Cycle, error) {
	if len(items) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no photo sources")
	}
	return &Cycle{items: append([]string(nil), items...)}, nil
}

// Next returns the item under the cursor and advances it.
func (c *Cycle) Next() string {
	item := c.items[c.cursor]
	c.cursor = (c.cursor + 1) % len(c.items)
	return item
}

// Reset moves the cursor back to the first item.
func (c *Cycle) Reset() { c.cursor = 0 }

// Len returns the number of distinct items.
func (c *Cycle) Len() int { return len(c.items) }

// Items returns a copy of the underlying sequence.
func (c *Cycle) Items() []string { return append([]string(nil), c.items...) }
