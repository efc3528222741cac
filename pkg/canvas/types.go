package canvas

import (
	"github.com/matzehuels/astrolabe/pkg/errors"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// Node types.
const (
	TypePrompt   = "prompt"
	TypeResponse = "response"
)

// =============================================================================
// Canvas - Render-side Graph
// =============================================================================

// Canvas is the serialization format for a graph-chat canvas: the nodes the
// front-end renders and the edges connecting them.
type Canvas struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Node - Positioned Conversation Node
// =============================================================================

// Node is a positioned conversation node.
//
// Width and Height are the sizes measured by the renderer. They are nil until
// the node has been rendered once; callers fall back to a nominal size.
type Node struct {
	ID       string         `json:"id"`
	Type     string         `json:"type,omitempty"`
	Position geometry.Point `json:"position"`
	Width    *float64       `json:"width,omitempty"`
	Height   *float64       `json:"height,omitempty"`
	Data     NodeData       `json:"data"`
}

// NodeData is the free-form payload carried by a node.
type NodeData struct {
	Content string `json:"content,omitempty"`
}

// SizeOr returns the measured size of n, substituting fallback for each
// dimension that has not been measured.
func (n Node) SizeOr(fallback geometry.Size) geometry.Size {
	s := fallback
	if n.Width != nil {
		s.Width = *n.Width
	}
	if n.Height != nil {
		s.Height = *n.Height
	}
	return s
}

// WidthOr returns the measured width or fallback.
func (n Node) WidthOr(fallback float64) float64 {
	if n.Width != nil {
		return *n.Width
	}
	return fallback
}

// HeightOr returns the measured height or fallback.
func (n Node) HeightOr(fallback float64) float64 {
	if n.Height != nil {
		return *n.Height
	}
	return fallback
}

// Measured returns a copy of n with the given measured size.
func (n Node) Measured(width, height float64) Node {
	n.Width = &width
	n.Height = &height
	return n
}

// Validate checks the node for values the placement code cannot work with.
func (n Node) Validate() error {
	if err := errors.ValidateNodeID(n.ID); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("position.x", n.Position.X); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("position.y", n.Position.Y); err != nil {
		return err
	}
	if n.Width != nil {
		if err := errors.ValidateDimension("width", *n.Width); err != nil {
			return err
		}
	}
	if n.Height != nil {
		if err := errors.ValidateDimension("height", *n.Height); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Edge - Directed Connection
// =============================================================================

// Edge connects two nodes. Handles name the attachment points on each end
// (see geometry.HandleID).
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// =============================================================================
// Canvas helpers
// =============================================================================

// Node returns the node with the given id.
func (c Canvas) Node(id string) (Node, bool) {
	for _, n := range c.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Validate checks every node and that edge endpoints are non-empty.
// Edges may reference nodes outside the canvas; layout ignores them.
func (c Canvas) Validate() error {
	seen := make(map[string]struct{}, len(c.Nodes))
	for _, n := range c.Nodes {
		if err := n.Validate(); err != nil {
			return err
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidNode, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	for _, e := range c.Edges {
		if err := errors.ValidateNodeID(e.Source); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %q source", e.ID)
		}
		if err := errors.ValidateNodeID(e.Target); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %q target", e.ID)
		}
	}
	return nil
}

// Clone returns a deep copy of c.
func (c Canvas) Clone() Canvas {
	out := Canvas{
		Nodes: make([]Node, len(c.Nodes)),
		Edges: make([]Edge, len(c.Edges)),
	}
	for i, n := range c.Nodes {
		if n.Width != nil {
			w := *n.Width
			n.Width = &w
		}
		if n.Height != nil {
			h := *n.Height
			n.Height = &h
		}
		out.Nodes[i] = n
	}
	copy(out.Edges, c.Edges)
	return out
}
