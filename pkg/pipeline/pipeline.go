// Package pipeline runs the canvas operations behind the CLI and the HTTP
// service: placing a new prompt, placing a branch, and auto-laying out a
// whole canvas.
//
// Placement is pure and fast, so the Runner only validates, assigns IDs,
// logs and reports hooks around it. Auto layout goes through the layout
// engine and is cached by canvas shape and settings.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, autolayout.NewGraphvizEngine(), logger)
//	defer runner.Close()
//
//	placed, err := runner.PlacePrompt(ctx, nodes, placement.Right)
//	laid, hit, err := runner.AutoLayoutWithCacheInfo(ctx, nodes, edges, settings)
package pipeline

import (
	"time"

	"github.com/matzehuels/astrolabe/pkg/autolayout"
	"github.com/matzehuels/astrolabe/pkg/cache"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// EngineGraphviz names the default layout engine in cache keys and logs.
const EngineGraphviz = "graphviz"

// PromptResult is a placed prompt node.
type PromptResult struct {
	ID          string         `json:"id"`
	Position    geometry.Point `json:"position"`
	Attempts    int            `json:"attempts"`
	Overlapping bool           `json:"overlapping"`
}

// BranchResult is a placed branch node and the handles of its connecting
// edge.
type BranchResult struct {
	ID           string         `json:"id"`
	Position     geometry.Point `json:"position"`
	SourceHandle string         `json:"source_handle"`
	TargetHandle string         `json:"target_handle"`
}

// LayoutResult is a laid-out canvas plus run statistics.
type LayoutResult struct {
	autolayout.Result
	Cached   bool          `json:"cached"`
	Duration time.Duration `json:"-"`
}

// layoutKeyOpts captures the normalized settings and engine in a cache key.
func layoutKeyOpts(engine string, s autolayout.Settings) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Engine:    engine,
		Direction: string(s.Direction),
		NodeSep:   s.NodeSep,
		RankSep:   s.RankSep,
		EdgeSep:   s.EdgeSep,
		Margin:    s.Margin,
		Ranker:    string(s.Ranker),
		Align:     string(s.Align),
	}
}

// layoutInput is what the engine sees. Positions and content do not affect
// the layout, so they are left out of the cache key.
type layoutInput struct {
	Vertices []autolayout.Vertex `json:"vertices"`
	Arcs     []autolayout.Arc    `json:"arcs"`
}
