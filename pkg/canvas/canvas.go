// Package canvas defines the render-side shapes of a graph-chat canvas and
// their JSON serialization.
//
// A [Canvas] holds positioned [Node] values and the [Edge] values between
// them. Positions are top-left corners in pixels. The same format is read
// and written by the CLI and accepted by the HTTP service.
package canvas

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal serializes a canvas to indented JSON.
func Marshal(c Canvas) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Unmarshal parses a canvas from JSON and validates it.
func Unmarshal(data []byte) (Canvas, error) {
	var c Canvas
	if err := json.Unmarshal(data, &c); err != nil {
		return Canvas{}, fmt.Errorf("decode canvas: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Canvas{}, err
	}
	return c, nil
}

// Write encodes a canvas as JSON to w.
func Write(c Canvas, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes and validates a canvas from r.
func Read(r io.Reader) (Canvas, error) {
	var c Canvas
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Canvas{}, fmt.Errorf("decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Canvas{}, err
	}
	return c, nil
}

// WriteFile writes a canvas as JSON to path.
func WriteFile(c Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(c, f)
}

// ReadFile reads a canvas from a JSON file.
func ReadFile(path string) (Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return Canvas{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
