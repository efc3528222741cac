package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/errors"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

const canvasJSON = `{
  "nodes": [
    {"id": "a", "type": "prompt", "position": {"x": 0, "y": 0}, "data": {"content": "hi"}},
    {"id": "b", "type": "response", "position": {"x": 0, "y": 0}, "data": {}}
  ],
  "edges": [{"id": "e1", "source": "a", "target": "b"}]
}`

const conversationJSON = `{
  "id": "c1",
  "title": "Trip",
  "messages": [
    {"id": "m1", "role": "prompt", "content": "Where to?", "x": 5, "y": 5},
    {"id": "m2", "role": "response", "content": "Lisbon", "x": 5, "y": 5}
  ],
  "links": [{"id": "l1", "from": "m1", "to": "m2"}]
}`

func writeTemp(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadInputCanvas(t *testing.T) {
	in, err := loadInput(writeTemp(t, "canvas.json", canvasJSON), nil)
	if err != nil {
		t.Fatalf("loadInput: %v", err)
	}
	if in.Conversation != nil {
		t.Error("canvas detected as conversation")
	}
	if len(in.Canvas.Nodes) != 2 || len(in.Canvas.Edges) != 1 {
		t.Errorf("canvas = %+v", in.Canvas)
	}
}

func TestLoadInputConversation(t *testing.T) {
	in, err := loadInput(writeTemp(t, "conv.json", conversationJSON), nil)
	if err != nil {
		t.Fatalf("loadInput: %v", err)
	}
	if in.Conversation == nil {
		t.Fatal("conversation not detected")
	}
	if in.Conversation.Title != "Trip" {
		t.Errorf("Title = %q", in.Conversation.Title)
	}
	if len(in.Canvas.Nodes) != 2 || in.Canvas.Nodes[0].Position != geometry.Pt(5, 5) {
		t.Errorf("canvas nodes = %+v", in.Canvas.Nodes)
	}
	if len(in.Canvas.Edges) != 1 || in.Canvas.Edges[0].Source != "m1" || in.Canvas.Edges[0].Target != "m2" {
		t.Errorf("canvas edges = %+v", in.Canvas.Edges)
	}
}

func TestLoadInputStdin(t *testing.T) {
	in, err := loadInput("-", strings.NewReader(canvasJSON))
	if err != nil {
		t.Fatalf("loadInput: %v", err)
	}
	if len(in.Canvas.Nodes) != 2 {
		t.Errorf("len(Nodes) = %d, want 2", len(in.Canvas.Nodes))
	}
}

func TestLoadInputErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"not json", "{", errors.ErrCodeInvalidInput},
		{"not an object", "[1, 2]", errors.ErrCodeInvalidInput},
		{"duplicate ids", `{"nodes": [{"id": "a", "position": {"x": 0, "y": 0}, "data": {}}, {"id": "a", "position": {"x": 0, "y": 0}, "data": {}}], "edges": []}`, errors.ErrCodeInvalidNode},
		{"bad message", `{"messages": [{"id": "", "role": "prompt"}], "links": []}`, errors.ErrCodeInvalidNode},
		{"bad messages type", `{"messages": 3}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadInput(writeTemp(t, "in.json", tt.data), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadInputMissingFile(t *testing.T) {
	_, err := loadInput(filepath.Join(t.TempDir(), "nope.json"), nil)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestEncodeKeepsShape(t *testing.T) {
	conv, err := parseInput([]byte(conversationJSON))
	if err != nil {
		t.Fatal(err)
	}
	laid := conv.Canvas.Clone()
	laid.Nodes[1].Position = geometry.Pt(20, 220)

	data, err := conv.encode(laid)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out struct {
		Title    string `json:"title"`
		Messages []struct {
			ID string  `json:"id"`
			X  float64 `json:"x"`
			Y  float64 `json:"y"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not a conversation: %v", err)
	}
	if out.Title != "Trip" || out.Messages[1].X != 20 || out.Messages[1].Y != 220 {
		t.Errorf("conversation = %+v", out)
	}

	plain, err := parseInput([]byte(canvasJSON))
	if err != nil {
		t.Fatal(err)
	}
	data, err = plain.encode(plain.Canvas)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := canvas.Unmarshal(data); err != nil {
		t.Errorf("output is not a canvas: %v", err)
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOutput([]byte(`{}`), "", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{}\n" {
		t.Errorf("stdout = %q, want %q", buf.String(), "{}\n")
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := writeOutput([]byte("{}\n\n"), path, nil); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "{}\n" {
		t.Errorf("file = %q, want %q", got, "{}\n")
	}
}
