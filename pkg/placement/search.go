package placement

import (
	"math"

	"github.com/matzehuels/astrolabe/pkg/canvas"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

const (
	// MaxAttempts bounds the spiral search.
	MaxAttempts = 50

	// spiralStepDegrees is the angle added per attempt.
	spiralStepDegrees = 45.0

	// spiralBaseRadius and spiralRadiusStep give radius = base + k*step.
	spiralBaseRadius = 100.0
	spiralRadiusStep = 30.0
)

// Result describes the outcome of a placement search.
type Result struct {
	// Position is the chosen top-left corner.
	Position geometry.Point `json:"position"`

	// Attempts is the number of spiral candidates tried; 0 means the seed
	// itself was free or no search was needed.
	Attempts int `json:"attempts"`

	// Overlapping is true when the search ran out of attempts and Position
	// still collides with an existing node.
	Overlapping bool `json:"overlapping"`
}

// spiralPoint returns the k-th spiral candidate around seed.
func spiralPoint(seed geometry.Point, k int) geometry.Point {
	angle := float64(k) * spiralStepDegrees * math.Pi / 180
	radius := spiralBaseRadius + float64(k)*spiralRadiusStep
	return seed.Add(radius*math.Cos(angle), radius*math.Sin(angle))
}

// Search looks for a collision-free position starting at seed.
//
// If seed is free it is returned unchanged. Otherwise candidates are taken
// on an outward spiral, one every 45 degrees with the radius growing by 30
// pixels per step, and the first free one wins. After MaxAttempts the last
// candidate is returned with Overlapping set.
func Search(nodes []canvas.Node, seed geometry.Point) Result {
	if !IsOverlapping(nodes, seed.X, seed.Y) {
		return Result{Position: seed}
	}

	var p geometry.Point
	for k := 1; k <= MaxAttempts; k++ {
		p = spiralPoint(seed, k)
		if !IsOverlapping(nodes, p.X, p.Y) {
			return Result{Position: p, Attempts: k}
		}
	}
	return Result{Position: p, Attempts: MaxAttempts, Overlapping: true}
}

// FindNonOverlappingPosition returns the position chosen by [Search].
func FindNonOverlappingPosition(nodes []canvas.Node, x, y float64) geometry.Point {
	return Search(nodes, geometry.Pt(x, y)).Position
}
