// Package placement decides where a new conversation node goes on the canvas.
//
// # Overview
//
// Three entry points cover the ways a node is created:
//
//   - [ComputeNewPromptPosition] places a new prompt according to a global
//     [Strategy] (center, top, right, bottom, left).
//   - [ComputeBranchPosition] places a prompt branched off an existing
//     response node on a given handle side.
//   - [FindNonOverlappingPosition] nudges a seed point along a spiral until
//     it no longer collides with existing nodes.
//
// # Collision model
//
// A node occupies its measured size (or the nominal 300×120 when it has not
// been measured yet) plus [Padding] on each axis. The candidate node always
// uses the nominal size. Boxes that merely touch do not collide, so a node
// placed exactly Padding pixels to the right of another is accepted.
//
// # Search bound
//
// The spiral search gives up after [MaxAttempts] candidates and returns the
// last one even if it still overlaps. Overlap is a visual nuisance, not a
// correctness problem, so callers get a best-effort position rather than an
// error. [Search] reports whether that happened.
//
// All functions are pure: node slices are read, never modified, and the same
// input always yields the same output.
package placement
