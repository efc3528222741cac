// Package chat holds the conversation-side model of a graph chat and maps it
// onto canvas shapes.
//
// A [Conversation] is what the chat backend stores: messages with their last
// known coordinates, and links recording which message answered or branched
// from which. The canvas only knows nodes and edges; [ToCanvas] bridges the two.
package chat

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// Message roles.
const (
	RolePrompt   = "prompt"
	RoleResponse = "response"
)

// Default handle sides for links that do not record one.
const (
	DefaultFromSide = geometry.Bottom
	DefaultToSide   = geometry.Top
)

// Message is a single prompt or response in a conversation.
type Message struct {
	ID      string  `json:"id"`
	Role    string  `json:"role"`
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Link connects two messages. FromSide and ToSide are optional.
type Link struct {
	ID       string        `json:"id"`
	From     string        `json:"from"`
	To       string        `json:"to"`
	FromSide geometry.Side `json:"from_side,omitempty"`
	ToSide   geometry.Side `json:"to_side,omitempty"`
}

// Conversation is a graph of messages.
type Conversation struct {
	ID       string    `json:"id,omitempty"`
	Title    string    `json:"title,omitempty"`
	Messages []Message `json:"messages"`
	Links    []Link    `json:"links"`
}

// ToNode converts a message to a canvas node, copying id, role, content and
// coordinates. The node is unmeasured.
func ToNode(m Message) canvas.Node {
	typ := m.Role
	if typ == "" {
		typ = canvas.TypePrompt
	}
	return canvas.Node{
		ID:       m.ID,
		Type:     typ,
		Position: geometry.Pt(m.X, m.Y),
		Data:     canvas.NodeData{Content: m.Content},
	}
}

// ToEdge converts a link to a canvas edge. Unset sides default to
// DefaultFromSide and DefaultToSide.
func ToEdge(l Link) canvas.Edge {
	from, to := l.FromSide, l.ToSide
	if from == "" {
		from = DefaultFromSide
	}
	if to == "" {
		to = DefaultToSide
	}
	id := l.ID
	if id == "" {
		id = fmt.Sprintf("%s->%s", l.From, l.To)
	}
	return canvas.Edge{
		ID:           id,
		Source:       l.From,
		Target:       l.To,
		SourceHandle: geometry.HandleID(from, geometry.Source),
		TargetHandle: geometry.HandleID(to, geometry.Target),
	}
}

// ToCanvas converts a whole conversation, preserving message and link order.
func ToCanvas(c Conversation) canvas.Canvas {
	out := canvas.Canvas{
		Nodes: make([]canvas.Node, len(c.Messages)),
		Edges: make([]canvas.Edge, len(c.Links)),
	}
	for i, m := range c.Messages {
		out.Nodes[i] = ToNode(m)
	}
	for i, l := range c.Links {
		out.Edges[i] = ToEdge(l)
	}
	return out
}

// ApplyPositions copies node positions from a laid-out canvas back onto the
// conversation's messages. Messages without a matching node are unchanged.
func ApplyPositions(c Conversation, laid canvas.Canvas) Conversation {
	pos := make(map[string]geometry.Point, len(laid.Nodes))
	for _, n := range laid.Nodes {
		pos[n.ID] = n.Position
	}
	out := c
	out.Messages = make([]Message, len(c.Messages))
	for i, m := range c.Messages {
		if p, ok := pos[m.ID]; ok {
			m.X, m.Y = p.X, p.Y
		}
		out.Messages[i] = m
	}
	return out
}

// ReadFile reads a conversation from a JSON file and checks the resulting
// canvas is well formed.
func ReadFile(path string) (Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conversation{}, fmt.Errorf("read %s: %w", path, err)
	}
	var c Conversation
	if err := json.Unmarshal(data, &c); err != nil {
		return Conversation{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := ToCanvas(c).Validate(); err != nil {
		return Conversation{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return c, nil
}

// WriteFile writes a conversation as indented JSON.
func WriteFile(c Conversation, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
