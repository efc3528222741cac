package placement

import (
	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// Branch offsets relative to the origin node's top-left corner.
const (
	branchGapX       = 400.0
	branchOffsetY    = 75.0
	branchGapTop     = 350.0
	branchGapBottom  = 250.0
	charsPerPixelRow = 1.1
)

// BranchResult is the position of a branched prompt and the handles of the
// edge linking it to its origin.
type BranchResult struct {
	Position     geometry.Point `json:"position"`
	SourceHandle string         `json:"source_handle"`
	TargetHandle string         `json:"target_handle"`
}

// ComputeBranchPosition places a prompt branched off origin on the given side.
//
// Offsets are fixed and no collision search is done, so the result may
// overlap other nodes. Below the origin the gap grows with the length of the
// origin's content, which stands in for its rendered height. An unknown side
// returns the origin's own position.
func ComputeBranchPosition(origin canvas.Node, side geometry.Side) geometry.Point {
	p := origin.Position
	switch side {
	case geometry.Left:
		return geometry.Pt(p.X-branchGapX, p.Y+branchOffsetY)
	case geometry.Right:
		return geometry.Pt(p.X+origin.WidthOr(0)+branchGapX, p.Y+branchOffsetY)
	case geometry.Top:
		return geometry.Pt(p.X, p.Y-branchGapTop)
	case geometry.Bottom:
		return geometry.Pt(p.X, p.Y+branchGapBottom+float64(utf16Len(origin.Data.Content))/charsPerPixelRow)
	}
	return p
}

// Branch computes the branch position together with the handles of the new
// edge: it leaves origin on side and enters the new node on the opposite side.
// Unlike ComputeBranchPosition an unknown side is an error, since no handle
// can be named for it.
func Branch(origin canvas.Node, side geometry.Side) (BranchResult, error) {
	opposite, err := geometry.Opposite(side)
	if err != nil {
		return BranchResult{}, err
	}
	return BranchResult{
		Position:     ComputeBranchPosition(origin, side),
		SourceHandle: geometry.HandleID(side, geometry.Source),
		TargetHandle: geometry.HandleID(opposite, geometry.Target),
	}, nil
}

// utf16Len counts UTF-16 code units, the unit the front-end measures
// content length in.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
