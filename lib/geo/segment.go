package geo

type Segment struct {
	Start *Point
	End   *Point
}

func NewSegment(from, to *Point) *Segment {
	return &Segment{from, to}
}

func (s Segment) Intersects(otherS Segment) bool {
	return IntersectionPoint(s.Start, s.End, otherS.Start, otherS.End) != nil
}
