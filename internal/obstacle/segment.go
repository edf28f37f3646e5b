package obstacle

import (
	"errors"
	"math"

	"github.com/san-kum/billiards/internal/geom"
	"github.com/san-kum/billiards/internal/physics"
)

// LineSegment is a finite segment with rounded end caps, hit from
// either side.
type LineSegment struct {
	start, end geom.Vec
	covector   geom.Vec // (end-start) / |end-start|^2
	normal     geom.Vec // unit normal of the carrying line
}

// NewLineSegment builds a two-sided segment between p1 and p2.
func NewLineSegment(p1, p2 geom.Vec) (*LineSegment, error) {
	if !p1.IsFinite() || !p2.IsFinite() {
		return nil, errors.New("obstacle: segment endpoints must be finite")
	}
	dir := p2.Sub(p1)
	lenSq := dir.NormSq()
	if lenSq == 0 {
		return nil, errors.New("obstacle: segment endpoints coincide")
	}

	return &LineSegment{
		start:    p1,
		end:      p2,
		covector: dir.Scale(1 / lenSq),
		normal:   dir.Perp().Scale(1 / math.Sqrt(lenSq)),
	}, nil
}

func (l *LineSegment) Start() geom.Vec { return l.start }
func (l *LineSegment) End() geom.Vec   { return l.end }

func (l *LineSegment) TimeOfImpact(pos, vel geom.Vec, radius float64) (float64, Hint) {
	t, param := physics.TimeOfImpactSegment(pos, vel, radius, l.start, l.covector, l.normal)
	if math.IsInf(t, 1) {
		// The interior is out of reach; an end cap may still be hit.
		switch param {
		case physics.SegmentStart:
			return physics.TimeOfImpactStatic(pos, vel, radius, l.start, 0), param
		case physics.SegmentEnd:
			return physics.TimeOfImpactStatic(pos, vel, radius, l.end, 0), param
		}
	}
	return t, param
}

func (l *LineSegment) Collide(pos, vel geom.Vec, radius float64, hint Hint) geom.Vec {
	param, _ := hint.(physics.SegmentParam)
	switch param {
	case physics.SegmentStart:
		return reflectAboutPoint(pos, vel, l.start)
	case physics.SegmentEnd:
		return reflectAboutPoint(pos, vel, l.end)
	default:
		return vel.Sub(l.normal.Scale(2 * l.normal.Dot(vel)))
	}
}

// reflectAboutPoint bounces a ball off a fixed point: the velocity
// component along the line of centers flips.
func reflectAboutPoint(pos, vel, point geom.Vec) geom.Vec {
	n := pos.Sub(point).Unit()
	return vel.Sub(n.Scale(2 * vel.Dot(n)))
}
