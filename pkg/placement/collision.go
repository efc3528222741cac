package placement

import (
	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

const (
	// NodeWidth is the nominal width of a conversation node in pixels.
	NodeWidth = 300.0

	// NodeHeight is the nominal height of a conversation node in pixels.
	NodeHeight = 120.0

	// Padding is the clearance added to every box on each axis.
	Padding = 40.0
)

// NominalSize is the size assumed for new and unmeasured nodes.
var NominalSize = geometry.Size{Width: NodeWidth, Height: NodeHeight}

// candidateBox is the padded box a new node at (x, y) would occupy.
func candidateBox(x, y float64) geometry.Box {
	return geometry.NewBox(geometry.Pt(x, y), NominalSize.Grow(Padding))
}

// nodeBox is the padded box an existing node occupies.
func nodeBox(n canvas.Node) geometry.Box {
	return geometry.NewBox(n.Position, n.SizeOr(NominalSize).Grow(Padding))
}

// IsOverlapping reports whether a nominal-size node with its top-left corner
// at (x, y) would collide with any of nodes.
func IsOverlapping(nodes []canvas.Node, x, y float64) bool {
	c := candidateBox(x, y)
	for _, n := range nodes {
		if nodeBox(n).Overlaps(c) {
			return true
		}
	}
	return false
}
