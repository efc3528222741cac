package placement

import (
	"strings"

	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/errors"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// Strategy selects where new prompts go relative to the existing nodes.
type Strategy string

// Placement strategies.
const (
	Center Strategy = "center"
	Top    Strategy = "top"
	Right  Strategy = "right"
	Bottom Strategy = "bottom"
	Left   Strategy = "left"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = Center

// Strategies lists every strategy in display order.
var Strategies = []Strategy{Center, Top, Right, Bottom, Left}

// Valid reports whether s is one of the enumerated strategies.
func (s Strategy) Valid() bool {
	switch s {
	case Center, Top, Right, Bottom, Left:
		return true
	}
	return false
}

// Describe returns a one-line description for pickers and help text.
func (s Strategy) Describe() string {
	switch s {
	case Center:
		return "near the middle of the conversation"
	case Top:
		return "above the topmost node"
	case Right:
		return "right of the rightmost node"
	case Bottom:
		return "below the bottommost node"
	case Left:
		return "left of the leftmost node"
	}
	return "unknown strategy"
}

// ParseStrategy parses a strategy name, case-insensitively. An empty name
// yields DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultStrategy, nil
	}
	s := Strategy(name)
	if !s.Valid() {
		return "", errors.New(errors.ErrCodeInvalidStrategy, "unknown placement strategy %q (want center, top, right, bottom or left)", name)
	}
	return s, nil
}

// ComputeNewPromptPosition returns the top-left corner for a new prompt.
// See [Resolve] for the rules.
func ComputeNewPromptPosition(nodes []canvas.Node, s Strategy) geometry.Point {
	return Resolve(nodes, s).Position
}

// Resolve picks an anchor for strategy s and searches for a free spot near it.
//
// With no nodes the origin is returned without searching. The center
// strategy seeds the search at the mean node position. The directional
// strategies seed it one nominal node plus Padding beyond the most extreme
// node on that side, centered on that node along the other axis. Ties
// between equally extreme nodes go to the lowest ID. Unknown strategies
// behave like center.
func Resolve(nodes []canvas.Node, s Strategy) Result {
	if len(nodes) == 0 {
		return Result{Position: geometry.Pt(0, 0)}
	}

	anchor := meanPosition(nodes)

	switch s {
	case Right:
		e, ok := extreme(nodes, byX, true)
		if !ok {
			return Result{Position: anchor}
		}
		return Search(nodes, geometry.Pt(
			e.Position.X+e.WidthOr(NodeWidth)+Padding,
			verticalCenter(e)-NodeHeight/2,
		))

	case Left:
		e, ok := extreme(nodes, byX, false)
		if !ok {
			return Result{Position: geometry.Pt(0, anchor.Y)}
		}
		return Search(nodes, geometry.Pt(
			e.Position.X-(NodeWidth+Padding),
			verticalCenter(e)-NodeHeight/2,
		))

	case Bottom:
		e, ok := extreme(nodes, byY, true)
		if !ok {
			return Result{Position: anchor}
		}
		return Search(nodes, geometry.Pt(
			horizontalCenter(e)-NodeWidth/2,
			e.Position.Y+e.HeightOr(NodeHeight)+Padding,
		))

	case Top:
		e, ok := extreme(nodes, byY, false)
		if !ok {
			return Result{Position: geometry.Pt(anchor.X, 0)}
		}
		return Search(nodes, geometry.Pt(
			horizontalCenter(e)-NodeWidth/2,
			e.Position.Y-(NodeHeight+Padding),
		))
	}

	return Search(nodes, anchor)
}

func meanPosition(nodes []canvas.Node) geometry.Point {
	var sx, sy float64
	for _, n := range nodes {
		sx += n.Position.X
		sy += n.Position.Y
	}
	count := float64(len(nodes))
	return geometry.Pt(sx/count, sy/count)
}

func byX(n canvas.Node) float64 { return n.Position.X }
func byY(n canvas.Node) float64 { return n.Position.Y }

// extreme returns the node with the largest (or, if !largest, smallest) key.
// Equal keys resolve to the lowest ID so the result does not depend on
// the order of nodes.
func extreme(nodes []canvas.Node, key func(canvas.Node) float64, largest bool) (canvas.Node, bool) {
	var best canvas.Node
	found := false
	for _, n := range nodes {
		if !found {
			best, found = n, true
			continue
		}
		k, bk := key(n), key(best)
		better := k < bk
		if largest {
			better = k > bk
		}
		if better || (k == bk && n.ID < best.ID) {
			best = n
		}
	}
	return best, found
}

func verticalCenter(n canvas.Node) float64 {
	return n.Position.Y + n.HeightOr(NodeHeight)/2
}

func horizontalCenter(n canvas.Node) float64 {
	return n.Position.X + n.WidthOr(NodeWidth)/2
}
