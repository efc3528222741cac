package autolayout

import (
	"context"

	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/errors"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// Nominal vertex size for nodes the renderer has not measured yet.
const (
	DefaultNodeWidth  = 250.0
	DefaultNodeHeight = 100.0
)

// DefaultNodeSize is DefaultNodeWidth × DefaultNodeHeight.
var DefaultNodeSize = geometry.Size{Width: DefaultNodeWidth, Height: DefaultNodeHeight}

// Result is a laid-out canvas.
type Result struct {
	Nodes []canvas.Node `json:"nodes"`
	Edges []canvas.Edge `json:"edges"`
}

// ConfigFor translates user settings into engine configuration. Settings are
// normalized first, and Margin applies to both axes.
func ConfigFor(s Settings) Config {
	s = s.Normalize()
	return Config{
		Direction: s.Direction,
		RankSep:   s.RankSep,
		NodeSep:   s.NodeSep,
		EdgeSep:   s.EdgeSep,
		MarginX:   s.Margin,
		MarginY:   s.Margin,
		Ranker:    s.Ranker,
		Align:     s.Align,
	}
}

// Compute lays out nodes and edges with engine.
//
// Every node becomes a vertex of its measured size (DefaultNodeSize when
// unmeasured) and every edge whose endpoints are both present becomes an
// arc. The engine's center points are converted back to top-left corners.
// Nodes the engine did not position keep their original position. Edges
// are returned unchanged. The inputs are not modified.
func Compute(ctx context.Context, engine Engine, nodes []canvas.Node, edges []canvas.Edge, settings Settings) (Result, error) {
	out := canvas.Canvas{Nodes: nodes, Edges: edges}.Clone()
	if len(nodes) == 0 {
		return Result{Nodes: out.Nodes, Edges: out.Edges}, nil
	}

	vertices := make([]Vertex, len(nodes))
	sizes := make(map[string]geometry.Size, len(nodes))
	for i, n := range nodes {
		s := n.SizeOr(DefaultNodeSize)
		vertices[i] = Vertex{ID: n.ID, Width: s.Width, Height: s.Height}
		sizes[n.ID] = s
	}

	arcs := make([]Arc, 0, len(edges))
	for _, e := range edges {
		_, okSrc := sizes[e.Source]
		_, okDst := sizes[e.Target]
		if !okSrc || !okDst {
			continue
		}
		arcs = append(arcs, Arc{Source: e.Source, Target: e.Target})
	}

	centers, err := engine.Layout(ctx, vertices, arcs, ConfigFor(settings))
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeLayoutFailed, err, "compute layout for %d nodes", len(nodes))
	}

	for i := range out.Nodes {
		n := &out.Nodes[i]
		c, ok := centers[n.ID]
		if !ok {
			continue
		}
		n.Position = geometry.TopLeftFromCenter(c, sizes[n.ID])
	}

	return Result{Nodes: out.Nodes, Edges: out.Edges}, nil
}
