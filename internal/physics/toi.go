// Package physics holds the closed-form collision algebra: times of
// impact for the moving-ball pairings the engine schedules, and the
// perfectly elastic response applied when an impact is resolved.
package physics

import (
	"math"

	"github.com/san-kum/billiards/internal/geom"
)

// tEps guards against rounding-induced misses: an impact time slightly
// below zero can still be a real grazing collision that floating point
// pushed into the past.
const tEps = -1e-10

// TimeOfImpact returns the time until two moving balls first touch,
// relative to now, or +Inf if they never will.
//
// Balls that already overlap while still closing collide immediately
// (time 0); separating or parallel-moving pairs never collide. The
// root is evaluated in the cancellation-free form c / (-b + sqrt(D)).
func TimeOfImpact(pos1, vel1 geom.Vec, radius1 float64, pos2, vel2 geom.Vec, radius2 float64) float64 {
	dpos := pos2.Sub(pos1)
	dvel := vel2.Sub(vel1)

	// b >= 0 covers both separating pairs and identical velocities.
	b := dpos.Dot(dvel)
	if b >= 0 {
		return math.Inf(1)
	}

	sum := radius1 + radius2
	c := dpos.NormSq() - sum*sum
	if c < 0 {
		return 0
	}

	a := dvel.NormSq()
	disc := b*b - a*c
	if disc <= 0 {
		// the balls miss or slide past each other
		return math.Inf(1)
	}

	return c / (-b + math.Sqrt(disc))
}

// TimeOfImpactStatic returns the time until a moving ball touches a
// static circle of radius centerRadius (a point when zero), or +Inf.
//
// Unlike the ball-ball case, a ball already penetrating the circle is
// not colliding: static geometry is one-sided, and an inside start
// means the impact lies in the past. Times down to tEps are accepted
// so grazing contacts are not lost to rounding.
func TimeOfImpactStatic(pos, vel geom.Vec, radius float64, center geom.Vec, centerRadius float64) float64 {
	dpos := pos.Sub(center)

	b := dpos.Dot(vel)
	if b >= 0 {
		return math.Inf(1)
	}

	sum := radius + centerRadius
	c := dpos.NormSq() - sum*sum
	a := vel.NormSq()
	disc := b*b - a*c
	if disc <= 0 {
		return math.Inf(1)
	}

	t := c / (-b + math.Sqrt(disc))
	if t < tEps {
		return math.Inf(1)
	}
	return t
}

// SegmentParam classifies where along a segment an impact test landed.
type SegmentParam int

const (
	// SegmentNone: no impact with the segment or its end caps.
	SegmentNone SegmentParam = iota
	// SegmentBody: the ball hits the open interior of the segment.
	SegmentBody
	// SegmentStart / SegmentEnd: the interior is missed but the named
	// end cap is still a candidate; test it with TimeOfImpactStatic.
	SegmentStart
	SegmentEnd
)

// TimeOfImpactSegment returns the time until a moving ball touches the
// open interior of a line segment, together with a SegmentParam.
//
// The segment is given in its precomputed line frame: start point,
// covector = (end-start)/|end-start|^2 and unit normal. When the
// interior cannot be hit the returned time is +Inf and the parameter
// tells the caller which end cap, if any, remains a candidate.
func TimeOfImpactSegment(pos, vel geom.Vec, radius float64, start, covector, normal geom.Vec) (float64, SegmentParam) {
	// Work in line coordinates, shifted tEps into the past so borderline
	// contacts register. Interior points satisfy 0 <= along <= 1.
	dpos := pos.Sub(start).Add(vel.Scale(tEps))
	along := covector.Dot(dpos)
	dist := normal.Dot(dpos)

	if math.Abs(dist) <= radius {
		// Too close to the line for a face-on hit; only the end caps
		// can produce an impact, and only if the ball is beyond one.
		switch {
		case along < 0:
			return math.Inf(1), SegmentStart
		case along > 1:
			return math.Inf(1), SegmentEnd
		default:
			return math.Inf(1), SegmentNone
		}
	}

	approach := normal.Dot(vel)
	if approach == 0 {
		return math.Inf(1), SegmentNone
	}

	surface := dist - radius
	if dist < 0 {
		surface = dist + radius
	}
	t := -surface / approach
	if t < 0 {
		return math.Inf(1), SegmentNone
	}

	u := along + t*covector.Dot(vel)
	switch {
	case u >= 0 && u <= 1:
		return t + tEps, SegmentBody
	case u < 0:
		return math.Inf(1), SegmentStart
	default:
		return math.Inf(1), SegmentEnd
	}
}
