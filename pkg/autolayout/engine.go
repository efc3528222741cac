package autolayout

import (
	"context"

	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// Vertex is a node as the layout engine sees it.
type Vertex struct {
	ID     string
	Width  float64
	Height float64
}

// Arc is a directed, unweighted connection between two vertices.
type Arc struct {
	Source string
	Target string
}

// Config is the engine-level configuration derived from [Settings].
type Config struct {
	Direction Direction
	RankSep   float64
	NodeSep   float64
	EdgeSep   float64
	MarginX   float64
	MarginY   float64
	Ranker    Ranker
	Align     Align
}

// Engine computes a layered layout. It returns the center point of every
// vertex it positioned, keyed by vertex ID.
type Engine interface {
	Layout(ctx context.Context, vertices []Vertex, arcs []Arc, cfg Config) (map[string]geometry.Point, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, vertices []Vertex, arcs []Arc, cfg Config) (map[string]geometry.Point, error)

// Layout calls f.
func (f EngineFunc) Layout(ctx context.Context, vertices []Vertex, arcs []Arc, cfg Config) (map[string]geometry.Point, error) {
	return f(ctx, vertices, arcs, cfg)
}
