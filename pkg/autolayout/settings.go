package autolayout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/astrolabe/pkg/errors"
)

// Direction is the flow direction of the layered layout.
type Direction string

// Flow directions.
const (
	TopToBottom Direction = "TB"
	BottomToTop Direction = "BT"
	LeftToRight Direction = "LR"
	RightToLeft Direction = "RL"
)

// Ranker selects the algorithm that assigns nodes to layers.
type Ranker string

// Ranking algorithms.
const (
	NetworkSimplex Ranker = "network-simplex"
	TightTree      Ranker = "tight-tree"
	LongestPath    Ranker = "longest-path"
)

// Align pins nodes within their layer to a corner. AlignAuto lets the
// engine center them.
type Align string

// Alignments.
const (
	AlignAuto Align = ""
	AlignUL   Align = "UL"
	AlignUR   Align = "UR"
	AlignDL   Align = "DL"
	AlignDR   Align = "DR"
)

// Range bounds a numeric setting.
type Range struct {
	Min     float64
	Max     float64
	Default float64
}

// Clamp limits v to [r.Min, r.Max].
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Numeric setting ranges, in pixels.
var (
	NodeSepRange = Range{Min: 10, Max: 300, Default: 50}
	RankSepRange = Range{Min: 10, Max: 500, Default: 100}
	EdgeSepRange = Range{Min: 0, Max: 100, Default: 10}
	MarginRange  = Range{Min: 0, Max: 200, Default: 20}
)

// Settings are the user-facing auto-layout options.
type Settings struct {
	Direction Direction `json:"direction" toml:"direction"`
	NodeSep   float64   `json:"node_sep" toml:"node_sep"`
	RankSep   float64   `json:"rank_sep" toml:"rank_sep"`
	EdgeSep   float64   `json:"edge_sep" toml:"edge_sep"`
	Margin    float64   `json:"margin" toml:"margin"`
	Ranker    Ranker    `json:"ranker" toml:"ranker"`
	Align     Align     `json:"align,omitempty" toml:"align"`
}

// DefaultSettings returns top-to-bottom network-simplex layout with default
// spacing and automatic alignment.
func DefaultSettings() Settings {
	return Settings{
		Direction: TopToBottom,
		NodeSep:   NodeSepRange.Default,
		RankSep:   RankSepRange.Default,
		EdgeSep:   EdgeSepRange.Default,
		Margin:    MarginRange.Default,
		Ranker:    NetworkSimplex,
		Align:     AlignAuto,
	}
}

// Normalize clamps numeric settings into their ranges, canonicalizes the
// spelling of enum values and replaces unknown ones with their defaults.
func (s Settings) Normalize() Settings {
	s.NodeSep = NodeSepRange.Clamp(s.NodeSep)
	s.RankSep = RankSepRange.Clamp(s.RankSep)
	s.EdgeSep = EdgeSepRange.Clamp(s.EdgeSep)
	s.Margin = MarginRange.Clamp(s.Margin)
	if d, err := ParseDirection(string(s.Direction)); err == nil {
		s.Direction = d
	} else {
		s.Direction = TopToBottom
	}
	if r, err := ParseRanker(string(s.Ranker)); err == nil {
		s.Ranker = r
	} else {
		s.Ranker = NetworkSimplex
	}
	if a, err := ParseAlign(string(s.Align)); err == nil {
		s.Align = a
	} else {
		s.Align = AlignAuto
	}
	return s
}

// Validate reports the first enum value Normalize would have to replace.
// Out-of-range numbers are not errors; they are clamped.
func (s Settings) Validate() error {
	if _, err := ParseDirection(string(s.Direction)); err != nil {
		return err
	}
	if _, err := ParseRanker(string(s.Ranker)); err != nil {
		return err
	}
	if _, err := ParseAlign(string(s.Align)); err != nil {
		return err
	}
	return nil
}

// String renders the settings compactly for logs.
func (s Settings) String() string {
	align := string(s.Align)
	if align == "" {
		align = "auto"
	}
	return fmt.Sprintf("%s nodesep=%g ranksep=%g edgesep=%g margin=%g ranker=%s align=%s",
		s.Direction, s.NodeSep, s.RankSep, s.EdgeSep, s.Margin, s.Ranker, align)
}

// ParseDirection parses TB, BT, LR or RL, case-insensitively.
func ParseDirection(name string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(name)))
	switch d {
	case TopToBottom, BottomToTop, LeftToRight, RightToLeft:
		return d, nil
	}
	return "", errors.New(errors.ErrCodeInvalidSettings, "unknown layout direction %q (want TB, BT, LR or RL)", name)
}

// ParseRanker parses a ranking algorithm name.
func ParseRanker(name string) (Ranker, error) {
	r := Ranker(strings.ToLower(strings.TrimSpace(name)))
	switch r {
	case NetworkSimplex, TightTree, LongestPath:
		return r, nil
	}
	return "", errors.New(errors.ErrCodeInvalidSettings, "unknown ranker %q (want network-simplex, tight-tree or longest-path)", name)
}

// ParseAlign parses UL, UR, DL, DR, or "" / "auto" for automatic alignment.
func ParseAlign(name string) (Align, error) {
	a := Align(strings.ToUpper(strings.TrimSpace(name)))
	switch a {
	case "AUTO":
		return AlignAuto, nil
	case AlignAuto, AlignUL, AlignUR, AlignDL, AlignDR:
		return a, nil
	}
	return "", errors.New(errors.ErrCodeInvalidSettings, "unknown alignment %q (want UL, UR, DL, DR or auto)", name)
}
