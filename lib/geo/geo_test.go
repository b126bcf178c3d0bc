package geo

import (
	"testing"
)

func TestIntersectionPoint(t *testing.T) {
	p := IntersectionPoint(NewPoint(0, 0), NewPoint(10, 10), NewPoint(0, 10), NewPoint(10, 0))
	if p == nil || p.X != 5 || p.Y != 5 {
		t.Fatalf("expected (5, 5), got %v", p)
	}

	p = IntersectionPoint(NewPoint(0, 0), NewPoint(1, 1), NewPoint(5, 5), NewPoint(6, 6))
	if p != nil {
		t.Fatalf("parallel segments should not intersect, got %v", p)
	}
}

func TestBoxIntersections(t *testing.T) {
	b := NewBox(NewPoint(0, 0), 10, 10)
	// segment from the center going straight down
	pts := b.Intersections(Segment{NewPoint(5, 5), NewPoint(5, 20)})
	if len(pts) != 1 {
		t.Fatalf("expected 1 intersection, got %d", len(pts))
	}
	if pts[0].X != 5 || pts[0].Y != 10 {
		t.Fatalf("expected (5, 10), got %s", pts[0].ToString())
	}
}

func TestBoxFromCenter(t *testing.T) {
	b := NewBoxFromCenter(NewPoint(50, 50), 20, 10)
	if b.TopLeft.X != 40 || b.TopLeft.Y != 45 {
		t.Fatalf("unexpected top left %s", b.TopLeft.ToString())
	}
	if !b.Center().Equals(NewPoint(50, 50)) {
		t.Fatalf("center did not round-trip: %s", b.Center().ToString())
	}
}

func TestBoxExpand(t *testing.T) {
	b := NewBox(NewPoint(0, 0), 10, 10)
	b.Expand(NewBox(NewPoint(5, -5), 20, 10))
	if b.TopLeft.X != 0 || b.TopLeft.Y != -5 {
		t.Fatalf("unexpected top left %s", b.TopLeft.ToString())
	}
	if b.Width != 25 || b.Height != 15 {
		t.Fatalf("unexpected size %.0f x %.0f", b.Width, b.Height)
	}
}

func TestTruncateDecimals(t *testing.T) {
	if got := TruncateDecimals(1.23456); got != 1.234 {
		t.Fatalf("expected 1.234, got %v", got)
	}
	if got := TruncateDecimals(-2.0009); got != -2.0 {
		t.Fatalf("expected -2, got %v", got)
	}
}
