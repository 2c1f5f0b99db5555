// Package scene models a collage as frames that each own one photo.
//
// # Model
//
// A [Scene] holds a [Canvas], a background rectangle and one [Frame] per
// layout cell. Every frame owns exactly one [Photo]; photos carry their own
// [Transform] (position relative to the frame corner, scale and rotation
// around the pixmap center).
//
// # Building
//
// [Scene.Rebuild] lays out a [layout.Descriptor] on a canvas, cycling through
// the photo sources, and replaces the scene in one step: the new frames are
// built before the old ones are dropped, so an invalid layout leaves the
// previous scene in place. New photos are centered and fitted with
// [FitFill].
//
// # Fitting
//
// [Frame.Fit] only ever shrinks:
//
//   - FitFill scales so the photo covers the frame, overflowing on one axis.
//     It only acts when the photo is larger than the frame on both axes.
//   - FitBoth scales so neither dimension overflows.
//
// # Swapping
//
// A swap drag carries nothing but a [SwapPayload], the canvas point where it
// started. [Scene.Drop] hit-tests that point at drop time and exchanges the
// two frames' photos without resetting them. Swapping twice restores the
// original assignment.
//
// # Painting
//
// Frames and photos implement [Drawable] against a minimal [Surface]
// interface (matrix stack, rounded-rect clip, image blit). The render
// package provides the raster implementation.
package scene
