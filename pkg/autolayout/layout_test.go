package autolayout

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/errors"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// rowEngine places vertices in input order along the rank axis, one rank per
// vertex, and records what it was called with.
type rowEngine struct {
	calls    int
	vertices []Vertex
	arcs     []Arc
	cfg      Config
}

func (e *rowEngine) Layout(_ context.Context, vertices []Vertex, arcs []Arc, cfg Config) (map[string]geometry.Point, error) {
	e.calls++
	e.vertices = vertices
	e.arcs = arcs
	e.cfg = cfg

	out := make(map[string]geometry.Point, len(vertices))
	offset := 0.0
	for _, v := range vertices {
		switch cfg.Direction {
		case LeftToRight:
			out[v.ID] = geometry.Pt(cfg.MarginX+offset+v.Width/2, cfg.MarginY+v.Height/2)
			offset += v.Width + cfg.RankSep
		default:
			out[v.ID] = geometry.Pt(cfg.MarginX+v.Width/2, cfg.MarginY+offset+v.Height/2)
			offset += v.Height + cfg.RankSep
		}
	}
	return out, nil
}

func promptNode(id string, x, y float64) canvas.Node {
	return canvas.Node{ID: id, Type: canvas.TypePrompt, Position: geometry.Pt(x, y)}
}

func TestComputeLeftToRight(t *testing.T) {
	nodes := []canvas.Node{promptNode("a", 0, 0), promptNode("b", 0, 0)}
	edges := []canvas.Edge{{ID: "e1", Source: "a", Target: "b"}}

	s := DefaultSettings()
	s.Direction = LeftToRight
	eng := &rowEngine{}

	res, err := Compute(context.Background(), eng, nodes, edges, s)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(res.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(res.Nodes))
	}
	for _, n := range res.Nodes {
		if !n.Position.IsFinite() {
			t.Errorf("node %s position %v is not finite", n.ID, n.Position)
		}
	}

	// a: center (20+125, 20+50) -> top-left (20, 20)
	// b: center (20+350+125, 70) -> top-left (370, 20)
	if got, want := res.Nodes[0].Position, geometry.Pt(20, 20); got != want {
		t.Errorf("a position = %v, want %v", got, want)
	}
	if got, want := res.Nodes[1].Position, geometry.Pt(370, 20); got != want {
		t.Errorf("b position = %v, want %v", got, want)
	}

	if len(res.Edges) != 1 || res.Edges[0].Source != "a" || res.Edges[0].Target != "b" {
		t.Errorf("Edges = %+v, want a -> b unchanged", res.Edges)
	}
	if eng.cfg.Direction != LeftToRight {
		t.Errorf("engine direction = %s, want LR", eng.cfg.Direction)
	}
}

func TestComputeLowercaseDirection(t *testing.T) {
	nodes := []canvas.Node{promptNode("a", 0, 0), promptNode("b", 0, 0)}
	edges := []canvas.Edge{{ID: "e1", Source: "a", Target: "b"}}
	s := DefaultSettings()
	s.Direction = "lr"
	s.Ranker = "Longest-Path"
	eng := &rowEngine{}

	res, err := Compute(context.Background(), eng, nodes, edges, s)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if eng.cfg.Direction != LeftToRight || eng.cfg.Ranker != LongestPath {
		t.Errorf("engine config = %s/%s, want LR/longest-path", eng.cfg.Direction, eng.cfg.Ranker)
	}
	if got, want := res.Nodes[1].Position, geometry.Pt(370, 20); got != want {
		t.Errorf("b position = %v, want %v", got, want)
	}
}

func TestComputeVertexSizes(t *testing.T) {
	nodes := []canvas.Node{
		promptNode("a", 0, 0).Measured(320, 140),
		promptNode("b", 0, 0),
	}
	eng := &rowEngine{}

	if _, err := Compute(context.Background(), eng, nodes, nil, DefaultSettings()); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	want := []Vertex{
		{ID: "a", Width: 320, Height: 140},
		{ID: "b", Width: DefaultNodeWidth, Height: DefaultNodeHeight},
	}
	if len(eng.vertices) != len(want) {
		t.Fatalf("vertices = %+v, want %+v", eng.vertices, want)
	}
	for i := range want {
		if eng.vertices[i] != want[i] {
			t.Errorf("vertex[%d] = %+v, want %+v", i, eng.vertices[i], want[i])
		}
	}
}

func TestComputeSkipsDanglingEdges(t *testing.T) {
	nodes := []canvas.Node{promptNode("a", 0, 0), promptNode("b", 0, 0)}
	edges := []canvas.Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "a", Target: "ghost"},
		{ID: "e3", Source: "ghost", Target: "b"},
	}
	eng := &rowEngine{}

	res, err := Compute(context.Background(), eng, nodes, edges, DefaultSettings())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(eng.arcs) != 1 || eng.arcs[0] != (Arc{Source: "a", Target: "b"}) {
		t.Errorf("arcs = %+v, want only a -> b", eng.arcs)
	}
	if len(res.Edges) != 3 {
		t.Errorf("len(Edges) = %d, want all 3 edges passed through", len(res.Edges))
	}
}

func TestComputeEmpty(t *testing.T) {
	eng := &rowEngine{}
	res, err := Compute(context.Background(), eng, nil, nil, DefaultSettings())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(res.Nodes) != 0 || len(res.Edges) != 0 {
		t.Errorf("Result = %+v, want empty", res)
	}
	if eng.calls != 0 {
		t.Errorf("engine called %d times for an empty canvas", eng.calls)
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	nodes := []canvas.Node{promptNode("a", 7, 9).Measured(100, 50)}
	edges := []canvas.Edge{{ID: "e", Source: "a", Target: "a"}}

	res, err := Compute(context.Background(), &rowEngine{}, nodes, edges, DefaultSettings())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if nodes[0].Position != geometry.Pt(7, 9) {
		t.Errorf("input position changed to %v", nodes[0].Position)
	}
	*res.Nodes[0].Width = 999
	if *nodes[0].Width != 100 {
		t.Errorf("result shares Width pointer with input")
	}
}

func TestComputeKeepsUnpositionedNodes(t *testing.T) {
	eng := EngineFunc(func(_ context.Context, vs []Vertex, _ []Arc, _ Config) (map[string]geometry.Point, error) {
		return map[string]geometry.Point{"a": geometry.Pt(125, 50)}, nil
	})
	nodes := []canvas.Node{promptNode("a", 500, 500), promptNode("b", 42, 43)}

	res, err := Compute(context.Background(), eng, nodes, nil, DefaultSettings())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Nodes[0].Position != geometry.Pt(0, 0) {
		t.Errorf("a position = %v, want (0,0)", res.Nodes[0].Position)
	}
	if res.Nodes[1].Position != geometry.Pt(42, 43) {
		t.Errorf("b position = %v, want original (42,43)", res.Nodes[1].Position)
	}
}

func TestComputeEngineError(t *testing.T) {
	eng := EngineFunc(func(context.Context, []Vertex, []Arc, Config) (map[string]geometry.Point, error) {
		return nil, fmt.Errorf("boom")
	})

	_, err := Compute(context.Background(), eng, []canvas.Node{promptNode("a", 0, 0)}, nil, DefaultSettings())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeLayoutFailed) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeLayoutFailed)
	}
}

func TestConfigFor(t *testing.T) {
	s := Settings{
		Direction: RightToLeft,
		NodeSep:   1000,
		RankSep:   1,
		EdgeSep:   5,
		Margin:    30,
		Ranker:    "bogus",
		Align:     AlignDR,
	}
	got := ConfigFor(s)
	want := Config{
		Direction: RightToLeft,
		RankSep:   RankSepRange.Min,
		NodeSep:   NodeSepRange.Max,
		EdgeSep:   5,
		MarginX:   30,
		MarginY:   30,
		Ranker:    NetworkSimplex,
		Align:     AlignDR,
	}
	if got != want {
		t.Errorf("ConfigFor() = %+v, want %+v", got, want)
	}
}
