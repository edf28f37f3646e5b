package obstacle

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/billiards/internal/geom"
)

// Exterior names the side of an infinite wall that balls bounce off.
// The side is judged walking from the wall's first point to its second.
type Exterior string

const (
	ExteriorLeft  Exterior = "left"
	ExteriorRight Exterior = "right"
)

// InfiniteWall is the infinite line through two points. Balls collide
// only when approaching from the exterior half-plane; crossing from the
// interior side passes through.
type InfiniteWall struct {
	start, end geom.Vec
	normal     geom.Vec // unit normal pointing into the exterior
}

// NewInfiniteWall builds a one-sided wall through p1 and p2.
func NewInfiniteWall(p1, p2 geom.Vec, exterior Exterior) (*InfiniteWall, error) {
	if !p1.IsFinite() || !p2.IsFinite() {
		return nil, errors.New("obstacle: wall endpoints must be finite")
	}
	dir := p2.Sub(p1)
	if dir.NormSq() == 0 {
		return nil, errors.New("obstacle: wall endpoints coincide")
	}

	normal := dir.Perp().Unit() // exterior on the left
	switch exterior {
	case ExteriorLeft:
	case ExteriorRight:
		normal = normal.Scale(-1)
	default:
		return nil, fmt.Errorf("obstacle: exterior must be %q or %q, got %q", ExteriorLeft, ExteriorRight, exterior)
	}

	return &InfiniteWall{start: p1, end: p2, normal: normal}, nil
}

func (w *InfiniteWall) Start() geom.Vec  { return w.start }
func (w *InfiniteWall) End() geom.Vec    { return w.end }
func (w *InfiniteWall) Normal() geom.Vec { return w.normal }

// wallHint carries the precomputed closing speed from TimeOfImpact to
// Collide.
type wallHint struct {
	headway float64
}

func (w *InfiniteWall) TimeOfImpact(pos, vel geom.Vec, radius float64) (float64, Hint) {
	// headway: closing speed towards the wall, positive on a collision
	// course from the exterior side.
	headway := -vel.Dot(w.normal)
	if headway <= 0 {
		return math.Inf(1), nil
	}

	// gap between the ball's perimeter and the wall; negative when the
	// ball already sticks through, which is not an impact.
	gap := pos.Sub(w.start).Dot(w.normal) - radius
	t := gap / headway
	if t < -1e-10 {
		return math.Inf(1), nil
	}
	return t, wallHint{headway: headway}
}

func (w *InfiniteWall) Collide(pos, vel geom.Vec, radius float64, hint Hint) geom.Vec {
	headway := -vel.Dot(w.normal)
	if h, ok := hint.(wallHint); ok {
		headway = h.headway
	}
	return vel.Add(w.normal.Scale(2 * headway))
}
