package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/chat"
	"github.com/matzehuels/astrolabe/pkg/errors"
)

// input is a canvas read from disk, remembering whether it was written as a
// conversation so results can be saved back in the same shape.
type input struct {
	Canvas       canvas.Canvas
	Conversation *chat.Conversation
}

// loadInput reads a canvas or conversation file. "-" reads stdin. The
// format is detected from the top-level keys: a "messages" key means a
// conversation, anything else is parsed as a canvas.
func loadInput(path string, stdin io.Reader) (input, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return parseInput(data)
}

func parseInput(data []byte) (input, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return input{}, errors.New(errors.ErrCodeInvalidInput, "decode input: %v", err)
	}

	if _, ok := probe["messages"]; ok {
		var conv chat.Conversation
		if err := json.Unmarshal(data, &conv); err != nil {
			return input{}, errors.New(errors.ErrCodeInvalidInput, "decode conversation: %v", err)
		}
		c := chat.ToCanvas(conv)
		if err := c.Validate(); err != nil {
			return input{}, err
		}
		return input{Canvas: c, Conversation: &conv}, nil
	}

	c, err := canvas.Unmarshal(data)
	if err != nil {
		if errors.GetCode(err) == "" {
			return input{}, errors.New(errors.ErrCodeInvalidInput, "%v", err)
		}
		return input{}, err
	}
	return input{Canvas: c}, nil
}

// encode serializes laid back in the input's original shape.
func (in input) encode(laid canvas.Canvas) ([]byte, error) {
	if in.Conversation != nil {
		return json.MarshalIndent(chat.ApplyPositions(*in.Conversation, laid), "", "  ")
	}
	return canvas.Marshal(laid)
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(data []byte, path string, w io.Writer) error {
	data = append(bytes.TrimRight(data, "\n"), '\n')
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
