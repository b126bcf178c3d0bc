package geo

import "fmt"

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

// NewBoxFromCenter builds a box centered on c, matching how layout engines
// report node positions.
func NewBoxFromCenter(c *Point, width, height float64) *Box {
	return &Box{
		TopLeft: NewPoint(c.X-width/2, c.Y-height/2),
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

// Expand grows b just enough to also cover other.
func (b *Box) Expand(other *Box) {
	x2 := b.TopLeft.X + b.Width
	y2 := b.TopLeft.Y + b.Height
	if other.TopLeft.X < b.TopLeft.X {
		b.TopLeft.X = other.TopLeft.X
	}
	if other.TopLeft.Y < b.TopLeft.Y {
		b.TopLeft.Y = other.TopLeft.Y
	}
	if other.TopLeft.X+other.Width > x2 {
		x2 = other.TopLeft.X + other.Width
	}
	if other.TopLeft.Y+other.Height > y2 {
		y2 = other.TopLeft.Y + other.Height
	}
	b.Width = x2 - b.TopLeft.X
	b.Height = y2 - b.TopLeft.Y
}

func (b *Box) Contains(p *Point) bool {
	return b.TopLeft.X <= p.X && p.X <= b.TopLeft.X+b.Width &&
		b.TopLeft.Y <= p.Y && p.Y <= b.TopLeft.Y+b.Height
}

// Intersections returns the points where s crosses b's sides.
func (b *Box) Intersections(s Segment) []*Point {
	pts := []*Point{}

	tl := b.TopLeft
	tr := NewPoint(tl.X+b.Width, tl.Y)
	br := NewPoint(tr.X, tr.Y+b.Height)
	bl := NewPoint(tl.X, br.Y)

	if p := IntersectionPoint(s.Start, s.End, tl, tr); p != nil {
		pts = append(pts, p)
	}
	if p := IntersectionPoint(s.Start, s.End, tr, br); p != nil {
		pts = append(pts, p)
	}
	if p := IntersectionPoint(s.Start, s.End, br, bl); p != nil {
		pts = append(pts, p)
	}
	if p := IntersectionPoint(s.Start, s.End, bl, tl); p != nil {
		pts = append(pts, p)
	}
	return pts
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
