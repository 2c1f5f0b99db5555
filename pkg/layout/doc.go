// Package layout partitions a collage canvas into frame cells.
//
// # Families
//
// Three layout families are supported, selected by [Kind]:
//
//   - [Grid]: cols×rows equal cells, emitted column-major.
//   - [Columns]: a left-to-right list of columns. Each column holds a number
//     of equally tall cells. A "big" column is twice as wide as a normal one.
//   - [Rows]: the transpose of Columns.
//
// # Descriptor Grammar
//
// Column and row layouts are written as tokens separated by "/". The integer
// part of a token is the number of photos in that column (or row); a trailing
// "B" marks it big:
//
//	3/2B/3      three columns: 3 photos, 2 photos (double width), 3 photos
//
// On a 1024×1024 canvas that yields four base units of 256: the outer
// columns are 256 wide with cells 341.33 tall, the middle column is 512 wide
// with cells 512 tall.
//
// [Parse] accepts a family prefix ("grid:3x4", "columns:3/2B/3",
// "rows:1B/2/3/2B") as well as the preset names shown in the editor.
//
// # Invariants
//
// Every layout tiles the canvas exactly: the cells do not overlap and their
// areas sum to the canvas area. Zero counts are rejected with INVALID_LAYOUT
// before any division happens.
//
// # Visualization
//
// [ToDOT] turns a computed layout into a Graphviz tree for debugging and
// documentation, renderable with [RenderSVG] or [RenderPNG].
package layout
