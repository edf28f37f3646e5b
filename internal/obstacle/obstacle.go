// Package obstacle provides the static geometry balls bounce off:
// disks, one-sided infinite walls and two-sided line segments.
//
// Obstacles are one-sided. Collisions register only for balls
// approaching the outside surface from the outside; a ball that starts
// strictly inside an obstacle never collides with it. Placing a Disk
// around a ball therefore does not confine it.
package obstacle

import (
	"github.com/san-kum/billiards/internal/geom"
)

// Hint is an opaque value an obstacle returns from TimeOfImpact and
// receives back in Collide, so the impact geometry (which face, which
// end cap) is not solved twice. Each obstacle defines its own concrete
// hint type; callers pass it through untouched.
type Hint any

// Obstacle is an immutable body with a time-of-impact query and an
// impact response. Implementations must preserve one-sidedness.
type Obstacle interface {
	// TimeOfImpact returns the time until a ball of the given radius,
	// starting at pos with velocity vel, first touches the obstacle's
	// outside surface, or +Inf if it never does. The time is relative
	// to the ball's current state, not an absolute simulation time.
	TimeOfImpact(pos, vel geom.Vec, radius float64) (float64, Hint)

	// Collide returns the ball's velocity after the impact. pos is the
	// contact position: the caller advances the ball to the impact
	// before resolving it. hint is the value TimeOfImpact returned for
	// this impact.
	Collide(pos, vel geom.Vec, radius float64, hint Hint) geom.Vec
}
