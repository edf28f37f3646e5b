package billiard

import (
	"github.com/san-kum/billiards/internal/geom"
	"github.com/san-kum/billiards/internal/obstacle"
)

// Event is a scheduled collision. For a ball-ball event Partner is the
// higher-indexed ball and Obstacle is nil; for a ball-obstacle event
// Partner is -1 and Obstacle is the body hit. When nothing is
// scheduled, Time is +Inf and Ball is -1.
type Event struct {
	Time     float64
	Ball     int
	Partner  int
	Obstacle obstacle.Obstacle
}

// TimeCallback is invoked once per resolved collision with the event
// time, before any ball callbacks.
type TimeCallback func(t float64)

// BallCallback is invoked after a collision involving the ball it is
// registered for. pos is the contact position, before and after the
// velocities around the impact. For a ball-ball event partner is the
// other ball's index and obs is nil; for a ball-obstacle event partner
// is -1 and obs is the obstacle.
//
// Callbacks run inline on the evolving goroutine. They may read the
// simulation and may edit it through the documented mutators, in which
// case they must call RecomputeTOI before returning.
type BallCallback func(t float64, pos, before, after geom.Vec, partner int, obs obstacle.Obstacle)
