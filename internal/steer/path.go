package steer

import (
	"math"

	"github.com/san-kum/steersim/internal/vec"
)

// PathParam is a follower's cursor on a path, measured as arc length.
type PathParam interface {
	Distance() float64
	SetDistance(distance float64)
}

// Path is a route parameterized by arc length. Paths are immutable once built
// and may be shared by any number of followers; all per-follower state lives
// in P.
type Path[V Vector[V], P PathParam] interface {
	CreateParam() P
	IsOpen() bool
	Length() float64
	StartPoint() V
	EndPoint() V

	// CalculateDistance projects position onto the path, stores the result in
	// param and returns the arc length of the projection.
	CalculateDistance(position V, param P) float64
	// CalculateTargetPosition writes the point at targetDistance into out.
	CalculateTargetPosition(out V, param P, targetDistance float64) V
}

// Segment is one straight piece of a LinePath.
type Segment[V Vector[V]] struct {
	Begin, End V
	Length     float64
	// CumulativeLength is the arc length from the path start to End.
	CumulativeLength float64
}

// LinePath is a polyline through a list of waypoints. A closed path has an
// extra segment from the last waypoint back to the first.
type LinePath[V Vector[V]] struct {
	segments []Segment[V]
	open     bool
	length   float64
}

// LinePathParam is the cursor used with a LinePath.
type LinePathParam[V Vector[V]] struct {
	distance     float64
	segmentIndex int

	nearest V
	point   V
	tmp     V
}

func (p *LinePathParam[V]) Distance() float64         { return p.distance }
func (p *LinePathParam[V]) SetDistance(d float64)     { p.distance = d }
func (p *LinePathParam[V]) SegmentIndex() int         { return p.segmentIndex }
func (p *LinePathParam[V]) SetSegmentIndex(index int) { p.segmentIndex = index }

// NewLinePath copies waypoints into a new path.
func NewLinePath[V Vector[V]](waypoints []V, open bool) (*LinePath[V], error) {
	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	p := &LinePath[V]{open: open, segments: make([]Segment[V], 0, len(waypoints))}
	curr := waypoints[0]
	for i := 1; i <= len(waypoints); i++ {
		prev := curr
		if i < len(waypoints) {
			curr = waypoints[i]
		} else if open {
			break
		} else {
			curr = waypoints[0]
		}

		seg := Segment[V]{Begin: prev.Clone(), End: curr.Clone(), Length: prev.Dst(curr)}
		p.length += seg.Length
		seg.CumulativeLength = p.length
		p.segments = append(p.segments, seg)
	}
	return p, nil
}

func (p *LinePath[V]) IsOpen() bool           { return p.open }
func (p *LinePath[V]) Length() float64        { return p.length }
func (p *LinePath[V]) StartPoint() V          { return p.segments[0].Begin }
func (p *LinePath[V]) EndPoint() V            { return p.segments[len(p.segments)-1].End }
func (p *LinePath[V]) Segments() []Segment[V] { return p.segments }

func (p *LinePath[V]) CreateParam() *LinePathParam[V] {
	zero := func() V { return p.segments[0].Begin.Clone().SetZero() }
	return &LinePathParam[V]{nearest: zero(), point: zero(), tmp: zero()}
}

func (p *LinePath[V]) CalculateDistance(position V, param *LinePathParam[V]) float64 {
	best := math.Inf(1)
	var nearest *Segment[V]
	for i := range p.segments {
		seg := &p.segments[i]
		d2 := projectOnSegment(param.point, param.tmp, seg, position)
		if d2 < best {
			param.nearest.Set(param.point)
			best = d2
			nearest = seg
			param.segmentIndex = i
		}
	}

	distance := nearest.CumulativeLength - param.nearest.Dst(nearest.End)
	param.distance = distance
	return distance
}

func (p *LinePath[V]) CalculateTargetPosition(out V, param *LinePathParam[V], targetDistance float64) V {
	if p.open {
		targetDistance = math.Max(0, math.Min(targetDistance, p.length))
	} else if p.length == 0 {
		return out.Set(p.segments[0].Begin)
	} else if targetDistance < 0 {
		targetDistance = p.length + math.Mod(targetDistance, p.length)
	} else if targetDistance > p.length {
		targetDistance = math.Mod(targetDistance, p.length)
	}

	seg := &p.segments[len(p.segments)-1]
	for i := range p.segments {
		if p.segments[i].CumulativeLength >= targetDistance {
			seg = &p.segments[i]
			break
		}
	}

	if seg.Length == 0 {
		return out.Set(seg.End)
	}
	remaining := seg.CumulativeLength - targetDistance
	return out.Set(seg.Begin).Sub(seg.End).Scale(remaining / seg.Length).Add(seg.End)
}

// projectOnSegment writes the point of seg nearest to c into out and returns
// its squared distance to c. tmp is scratch.
func projectOnSegment[V Vector[V]](out, tmp V, seg *Segment[V], c V) float64 {
	out.Set(seg.Begin)
	ab := tmp.Set(seg.End).Sub(seg.Begin)
	if abLen2 := ab.Len2(); abLen2 != 0 {
		t := (c.Dot(ab) - seg.Begin.Dot(ab)) / abLen2
		out.MulAdd(ab, math.Max(0, math.Min(t, 1)))
	}
	return out.Dst2(c)
}

var _ Path[*vec.Vec2, *LinePathParam[*vec.Vec2]] = (*LinePath[*vec.Vec2])(nil)
