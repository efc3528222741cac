package autolayout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/astrolabe/pkg/errors"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// pointsPerInch converts between canvas pixels and Graphviz inches. Graphviz
// reports positions in points, so a pixel maps to exactly one point.
const pointsPerInch = 72.0

// GraphvizEngine lays out graphs with the Graphviz dot algorithm, running the
// WebAssembly build bundled with go-graphviz.
//
// dot has no equivalent of Config.EdgeSep or Config.Align, so both are
// ignored. Rankers map onto the nslimit1 bound on network-simplex iterations:
// longest-path stops at the initial feasible ranking and tight-tree allows a
// single pass per node.
type GraphvizEngine struct{}

// NewGraphvizEngine returns a dot-backed Engine.
func NewGraphvizEngine() *GraphvizEngine {
	return &GraphvizEngine{}
}

// Layout implements Engine.
func (e *GraphvizEngine) Layout(ctx context.Context, vertices []Vertex, arcs []Arc, cfg Config) (map[string]geometry.Point, error) {
	if len(vertices) == 0 {
		return map[string]geometry.Point{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dot, names := BuildDOT(vertices, arcs, cfg)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return ParseDOTLayout(buf.Bytes(), names, cfg)
}

// BuildDOT writes the DOT source for a layout request. Vertices are renamed
// v0..vN so arbitrary IDs never need escaping; the returned map resolves
// those names back to vertex IDs. Arcs referencing unknown vertices are
// dropped.
func BuildDOT(vertices []Vertex, arcs []Arc, cfg Config) (string, map[string]string) {
	names := make(map[string]string, len(vertices))
	byID := make(map[string]string, len(vertices))

	var buf bytes.Buffer
	buf.WriteString("digraph astrolabe {\n")
	fmt.Fprintf(&buf, "  graph [rankdir=%s, ranksep=%s, nodesep=%s", rankdir(cfg.Direction), inches(cfg.RankSep), inches(cfg.NodeSep))
	if limit, ok := nslimit(cfg.Ranker); ok {
		fmt.Fprintf(&buf, ", nslimit1=%d", limit)
	}
	buf.WriteString("];\n")
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	for i, v := range vertices {
		name := "v" + strconv.Itoa(i)
		if _, dup := byID[v.ID]; dup {
			continue
		}
		names[name] = v.ID
		byID[v.ID] = name
		fmt.Fprintf(&buf, "  %s [width=%s, height=%s];\n", name, inches(v.Width), inches(v.Height))
	}

	buf.WriteString("\n")
	for _, a := range arcs {
		src, ok1 := byID[a.Source]
		dst, ok2 := byID[a.Target]
		if !ok1 || !ok2 {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", src, dst)
	}

	buf.WriteString("}\n")
	return buf.String(), names
}

func rankdir(d Direction) Direction {
	switch d {
	case TopToBottom, BottomToTop, LeftToRight, RightToLeft:
		return d
	}
	return TopToBottom
}

func nslimit(r Ranker) (int, bool) {
	switch r {
	case LongestPath:
		return 0, true
	case TightTree:
		return 1, true
	}
	return 0, false
}

func inches(px float64) string {
	return strconv.FormatFloat(px/pointsPerInch, 'f', 4, 64)
}

var (
	bbRe       = regexp.MustCompile(`bb="([^"]+)"`)
	nodeStmtRe = regexp.MustCompile(`(?m)^\s*"?(v\d+)"?\s*\[([^\]]*)\]`)
	posRe      = regexp.MustCompile(`pos="([^"]+)"`)
)

// ParseDOTLayout reads node centers from laid-out DOT output. Graphviz puts
// the origin at the bottom left, so y is flipped against the bounding box
// and both axes are shifted by the configured margins. names maps DOT node
// names back to vertex IDs; nodes not in names are ignored.
func ParseDOTLayout(out []byte, names map[string]string, cfg Config) (map[string]geometry.Point, error) {
	m := bbRe.FindSubmatch(out)
	if m == nil {
		return nil, errors.New(errors.ErrCodeLayoutFailed, "graphviz output has no bounding box")
	}
	bb, err := parseFloats(string(m[1]), 4)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "parse bounding box")
	}
	minX, maxY := bb[0], bb[3]

	centers := make(map[string]geometry.Point, len(names))
	for _, stmt := range nodeStmtRe.FindAllSubmatch(out, -1) {
		id, ok := names[string(stmt[1])]
		if !ok {
			continue
		}
		pm := posRe.FindSubmatch(stmt[2])
		if pm == nil {
			continue
		}
		xy, err := parseFloats(strings.TrimSuffix(string(pm[1]), "!"), 2)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "parse position of %s", id)
		}
		p := geometry.Pt(xy[0]-minX+cfg.MarginX, maxY-xy[1]+cfg.MarginY)
		if !p.IsFinite() {
			return nil, errors.New(errors.ErrCodeLayoutFailed, "non-finite position for %s", id)
		}
		centers[id] = p
	}
	return centers, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
