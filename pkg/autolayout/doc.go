// Package autolayout arranges a whole canvas with a layered graph layout.
//
// [Compute] turns canvas nodes and edges into engine [Vertex] and [Arc]
// values, hands them to an [Engine] together with the [Config] derived from
// the user's [Settings], and writes the resulting positions back as
// top-left corners. Engines work in center coordinates.
//
// The production engine is [GraphvizEngine], which runs dot through
// go-graphviz. Tests and callers with their own layout code can supply any
// [Engine], for example via [EngineFunc].
//
// # Settings
//
// Numeric settings are clamped rather than rejected:
//
//	node_sep  10..300  (default 50)
//	rank_sep  10..500  (default 100)
//	edge_sep   0..100  (default 10)
//	margin     0..200  (default 20)
//
// Unknown direction, ranker or align names are rejected by
// [Settings.Validate] and replaced with defaults by [Settings.Normalize].
package autolayout
