package billiard

import (
	"fmt"
	"math"

	"github.com/san-kum/billiards/internal/physics"
)

// Evolve advances the simulation until endTime, resolving every
// collision scheduled before it, and returns the number of ball-ball
// and ball-obstacle collisions resolved by this call.
//
// timeCallback, if non-nil, fires once per resolved collision, before
// any ball callbacks. ballCallbacks maps ball indices to callbacks;
// for a ball-ball event both participants' callbacks fire in ascending
// index order. A nil map registers nothing.
//
// When the next event lies beyond endTime only the clock moves: no
// ball's stored state is rewritten, so repeated Evolve calls replay
// identically to a single call.
func (s *Simulation) Evolve(endTime float64, timeCallback TimeCallback, ballCallbacks map[int]BallCallback) (int, int, error) {
	if math.IsNaN(endTime) {
		return 0, 0, fmt.Errorf("billiard: evolve: %w", ErrNotFinite)
	}
	if endTime < s.time {
		return 0, 0, fmt.Errorf("billiard: evolve to %g at time %g: %w", endTime, s.time, ErrTimeReversal)
	}

	nBB, nBO := 0, 0
	for {
		ev := s.NextCollision()
		if ev.Time > endTime { // +Inf included
			break
		}
		if ev.Obstacle == nil {
			s.resolveBallBall(ev, timeCallback, ballCallbacks)
			nBB++
		} else {
			s.resolveBallObstacle(ev, timeCallback, ballCallbacks)
			nBO++
		}
	}

	s.time = endTime
	return nBB, nBO, nil
}

// resolveBallBall advances both participants to the impact, applies
// the elastic response, fires callbacks and repairs the schedule.
func (s *Simulation) resolveBallBall(ev Event, timeCallback TimeCallback, ballCallbacks map[int]BallCallback) {
	i, j := ev.Ball, ev.Partner

	// Impact times down to the rounding tolerance may sit a hair in
	// the past; the clock never moves backwards.
	t := ev.Time
	if t < s.time {
		t = s.time
	}
	s.time = t
	s.advance(i)
	s.advance(j)

	before1, before2 := s.vel[i], s.vel[j]
	after1, after2 := physics.ElasticCollision(
		s.initialPos[i], before1, s.mass[i],
		s.initialPos[j], before2, s.mass[j],
	)
	s.vel[i], s.vel[j] = after1, after2
	s.bbCount++

	if timeCallback != nil {
		timeCallback(t)
	}
	if cb := ballCallbacks[i]; cb != nil {
		cb(t, s.initialPos[i], before1, after1, j, nil)
	}
	if cb := ballCallbacks[j]; cb != nil {
		cb(t, s.initialPos[j], before2, after2, i, nil)
	}

	s.recomputeRows([]int{i, j})

	// The pair just collided. Pin its entry to +Inf so a contact that
	// did not separate (infinite masses, zero-time chains) cannot
	// reschedule the same event forever.
	if !math.IsInf(s.bbTime[i][j], 1) {
		s.bbTime[i][j] = math.Inf(1)
		s.bbTime[j][i] = math.Inf(1)
		s.refreshBBRow(i)
		s.refreshBBRow(j)
	}
}

// resolveBallObstacle advances the ball to the impact, asks the
// obstacle for the response, fires callbacks and repairs the schedule.
func (s *Simulation) resolveBallObstacle(ev Event, timeCallback TimeCallback, ballCallbacks map[int]BallCallback) {
	i := ev.Ball
	hint := s.boHint[i][s.boWith[i]]

	t := ev.Time
	if t < s.time {
		t = s.time
	}
	s.time = t
	s.advance(i)

	before := s.vel[i]
	after := ev.Obstacle.Collide(s.initialPos[i], before, s.radius[i], hint)
	s.vel[i] = after
	s.boCount++

	if timeCallback != nil {
		timeCallback(t)
	}
	if cb := ballCallbacks[i]; cb != nil {
		cb(t, s.initialPos[i], before, after, -1, ev.Obstacle)
	}

	s.recomputeRows([]int{i})
}
