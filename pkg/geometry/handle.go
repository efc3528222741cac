package geometry

import (
	"strings"

	"github.com/matzehuels/astrolabe/pkg/errors"
)

// Side identifies which edge of a node a connection attaches to.
type Side string

// Handle sides.
const (
	Top    Side = "top"
	Bottom Side = "bottom"
	Left   Side = "left"
	Right  Side = "right"
)

// Sides lists every valid side in a stable order.
var Sides = []Side{Top, Right, Bottom, Left}

// Valid reports whether s is one of the four enumerated sides.
func (s Side) Valid() bool {
	switch s {
	case Top, Bottom, Left, Right:
		return true
	}
	return false
}

// ParseSide parses a side name, case-insensitively.
func ParseSide(name string) (Side, error) {
	s := Side(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", errors.New(errors.ErrCodeInvalidHandleSide, "unknown handle side %q (want top, right, bottom or left)", name)
	}
	return s, nil
}

// Opposite returns the side facing s: top and bottom swap, left and right swap.
// Any other value is a contract violation and returns an INVALID_HANDLE_SIDE error.
func Opposite(s Side) (Side, error) {
	switch s {
	case Top:
		return Bottom, nil
	case Bottom:
		return Top, nil
	case Left:
		return Right, nil
	case Right:
		return Left, nil
	}
	return "", errors.New(errors.ErrCodeInvalidHandleSide, "no opposite for handle side %q", string(s))
}

// MustOpposite is like Opposite but panics on an unknown side.
// Use it only where s has already been validated.
func MustOpposite(s Side) Side {
	o, err := Opposite(s)
	if err != nil {
		panic(err)
	}
	return o
}

// HandleKind distinguishes the outgoing and incoming end of a connection.
type HandleKind string

// Handle kinds.
const (
	Source HandleKind = "source"
	Target HandleKind = "target"
)

// HandleID builds the identifier of a handle on a node, e.g. "right-source".
func HandleID(s Side, k HandleKind) string {
	return string(s) + "-" + string(k)
}

// ParseHandleID splits an identifier built by HandleID.
func ParseHandleID(id string) (Side, HandleKind, error) {
	side, kind, ok := strings.Cut(id, "-")
	if !ok {
		return "", "", errors.New(errors.ErrCodeInvalidHandleSide, "malformed handle id %q", id)
	}
	s := Side(side)
	if !s.Valid() {
		return "", "", errors.New(errors.ErrCodeInvalidHandleSide, "malformed handle id %q: unknown side", id)
	}
	switch k := HandleKind(kind); k {
	case Source, Target:
		return s, k, nil
	}
	return "", "", errors.New(errors.ErrCodeInvalidHandleSide, "malformed handle id %q: unknown kind", id)
}
