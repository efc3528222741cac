package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/matzehuels/astrolabe/pkg/buildinfo"
	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/errors"
	"github.com/matzehuels/astrolabe/pkg/geometry"
	"github.com/matzehuels/astrolabe/pkg/placement"
)

type promptRequest struct {
	Nodes    []canvas.Node `json:"nodes"`
	Strategy string        `json:"strategy"`
}

type branchRequest struct {
	Origin *canvas.Node `json:"origin"`
	Side   string       `json:"side"`
}

type layoutRequest struct {
	Nodes    []canvas.Node   `json:"nodes"`
	Edges    []canvas.Edge   `json:"edges"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	strategy := s.opts.Strategy
	if req.Strategy != "" {
		parsed, err := placement.ParseStrategy(req.Strategy)
		if err != nil {
			writeError(w, err)
			return
		}
		strategy = parsed
	}

	res, err := s.runner.PlacePrompt(r.Context(), req.Nodes, strategy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBranch(w http.ResponseWriter, r *http.Request) {
	var req branchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Origin == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "origin is required"))
		return
	}
	side, err := geometry.ParseSide(req.Side)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.PlaceBranch(r.Context(), *req.Origin, side)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	settings := s.opts.Layout
	if len(req.Settings) > 0 && string(req.Settings) != "null" {
		if err := json.Unmarshal(req.Settings, &settings); err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidSettings, "decode settings: %v", err))
			return
		}
	}
	if err := settings.Validate(); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.AutoLayout(r.Context(), req.Nodes, req.Edges, settings)
	if err != nil {
		writeError(w, err)
		return
	}
	if res.Nodes == nil {
		res.Nodes = []canvas.Node{}
	}
	if res.Edges == nil {
		res.Edges = []canvas.Edge{}
	}
	writeJSON(w, http.StatusOK, res)
}

// decode reads a JSON request body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if stderrors.Is(err, io.EOF) {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return errors.New(errors.ErrCodeInvalidInput, "decode request: %v", err)
	}
	return nil
}
