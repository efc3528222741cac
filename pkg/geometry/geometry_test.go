package geometry

import (
	"math"
	"testing"

	"github.com/matzehuels/astrolabe/pkg/errors"
)

func TestBoxOverlaps(t *testing.T) {
	base := NewBox(Pt(0, 0), Size{Width: 340, Height: 160})

	tests := []struct {
		name  string
		other Box
		want  bool
	}{
		{"identical", base, true},
		{"inside", NewBox(Pt(10, 10), Size{Width: 10, Height: 10}), true},
		{"partial", NewBox(Pt(300, 100), Size{Width: 100, Height: 100}), true},
		{"touching right edge", NewBox(Pt(340, 0), Size{Width: 340, Height: 160}), false},
		{"touching bottom edge", NewBox(Pt(0, 160), Size{Width: 340, Height: 160}), false},
		{"far away", NewBox(Pt(1000, 1000), Size{Width: 10, Height: 10}), false},
		{"overlaps x only", NewBox(Pt(10, 500), Size{Width: 10, Height: 10}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopLeftFromCenter(t *testing.T) {
	got := TopLeftFromCenter(Pt(125, 50), Size{Width: 250, Height: 100})
	if got != Pt(0, 0) {
		t.Errorf("TopLeftFromCenter() = %v, want (0,0)", got)
	}
}

func TestPointIsFinite(t *testing.T) {
	if !Pt(1, -1).IsFinite() {
		t.Error("Pt(1,-1) should be finite")
	}
	if Pt(math.NaN(), 0).IsFinite() {
		t.Error("NaN x should not be finite")
	}
	if Pt(0, math.Inf(1)).IsFinite() {
		t.Error("Inf y should not be finite")
	}
}

func TestOppositeIsInvolution(t *testing.T) {
	for _, s := range Sides {
		o, err := Opposite(s)
		if err != nil {
			t.Fatalf("Opposite(%s) error: %v", s, err)
		}
		if o == s {
			t.Errorf("Opposite(%s) = %s, want a different side", s, o)
		}
		back, err := Opposite(o)
		if err != nil {
			t.Fatalf("Opposite(%s) error: %v", o, err)
		}
		if back != s {
			t.Errorf("Opposite(Opposite(%s)) = %s", s, back)
		}
	}
}

func TestOppositeUnknownSide(t *testing.T) {
	for _, s := range []Side{"", "middle", "TOP"} {
		_, err := Opposite(s)
		if err == nil {
			t.Errorf("Opposite(%q) should fail", s)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidHandleSide) {
			t.Errorf("Opposite(%q) code = %v, want %v", s, errors.GetCode(err), errors.ErrCodeInvalidHandleSide)
		}
	}
}

func TestMustOppositePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustOpposite should panic on unknown side")
		}
	}()
	MustOpposite("diagonal")
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		input   string
		want    Side
		wantErr bool
	}{
		{"top", Top, false},
		{"Bottom", Bottom, false},
		{" left ", Left, false},
		{"RIGHT", Right, false},
		{"centre", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSide(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSide(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSide(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHandleID(t *testing.T) {
	if got := HandleID(Right, Source); got != "right-source" {
		t.Errorf("HandleID() = %q, want %q", got, "right-source")
	}

	for _, s := range Sides {
		for _, k := range []HandleKind{Source, Target} {
			id := HandleID(s, k)
			gotSide, gotKind, err := ParseHandleID(id)
			if err != nil {
				t.Fatalf("ParseHandleID(%q) error: %v", id, err)
			}
			if gotSide != s || gotKind != k {
				t.Errorf("ParseHandleID(%q) = (%s, %s), want (%s, %s)", id, gotSide, gotKind, s, k)
			}
		}
	}
}

func TestParseHandleIDMalformed(t *testing.T) {
	for _, id := range []string{"", "right", "middle-source", "top-inbound"} {
		if _, _, err := ParseHandleID(id); err == nil {
			t.Errorf("ParseHandleID(%q) should fail", id)
		}
	}
}
