package billiard

import (
	"math"

	"github.com/san-kum/billiards/internal/obstacle"
	"github.com/san-kum/billiards/internal/physics"
)

// pairTime returns the absolute impact time of balls i and j, both
// materialized at the current simulation time.
func (s *Simulation) pairTime(i, j int) float64 {
	return s.time + physics.TimeOfImpact(
		s.Position(i), s.vel[i], s.radius[i],
		s.Position(j), s.vel[j], s.radius[j],
	)
}

// recomputeObstacleRow refreshes ball i's impact time and hint against
// every obstacle.
func (s *Simulation) recomputeObstacleRow(i int) {
	pos := s.Position(i)
	for k, obs := range s.obstacles {
		t, hint := obs.TimeOfImpact(pos, s.vel[i], s.radius[i])
		s.boTime[i][k] = s.time + t
		s.boHint[i][k] = hint
	}
}

// refreshBBRow rescans row i for its minimum. On equal times the
// smallest partner index wins, which keeps event selection
// deterministic.
func (s *Simulation) refreshBBRow(i int) {
	best, with := math.Inf(1), -1
	for j, t := range s.bbTime[i] {
		if j != i && t < best {
			best, with = t, j
		}
	}
	s.bbBest[i], s.bbWith[i] = best, with
}

// refreshBORow rescans ball i's obstacle row for its minimum; on equal
// times the earliest-registered obstacle wins.
func (s *Simulation) refreshBORow(i int) {
	best, with := math.Inf(1), -1
	for k, t := range s.boTime[i] {
		if t < best {
			best, with = t, k
		}
	}
	s.boBest[i], s.boWith[i] = best, with
}

// recomputeRows repairs the impact tables for the given set of balls:
// every entry in their rows is recomputed (mirrored into the partner
// rows), their obstacle rows are refreshed, and the cached minima of
// all affected rows are brought back in sync.
func (s *Simulation) recomputeRows(indices []int) {
	n := len(s.vel)
	touched := make([]bool, n)
	for _, i := range indices {
		touched[i] = true
	}

	for i := 0; i < n; i++ {
		if !touched[i] {
			continue
		}
		for j := 0; j < n; j++ {
			if j == i || (touched[j] && j < i) {
				continue // pair handled from the smaller index
			}
			t := s.pairTime(i, j)
			s.bbTime[i][j] = t
			s.bbTime[j][i] = t
		}
		s.recomputeObstacleRow(i)
		s.refreshBORow(i)
	}

	for j := 0; j < n; j++ {
		if touched[j] || (s.bbWith[j] >= 0 && touched[s.bbWith[j]]) {
			// Either the whole row changed, or its cached minimum
			// referred to a recomputed entry.
			s.refreshBBRow(j)
			continue
		}
		// An untouched row with an untouched minimum can only improve
		// through one of the recomputed columns.
		for i := 0; i < n; i++ {
			if !touched[i] {
				continue
			}
			t := s.bbTime[j][i]
			if t < s.bbBest[j] || (t == s.bbBest[j] && i < s.bbWith[j]) {
				s.bbBest[j], s.bbWith[j] = t, i
			}
		}
	}
}

// NextBallBallCollision returns the earliest scheduled ball-ball
// collision as (time, i, j) with i < j, or (+Inf, -1, 0) when none is
// scheduled.
func (s *Simulation) NextBallBallCollision() (float64, int, int) {
	best, bi := math.Inf(1), -1
	for i, t := range s.bbBest {
		if t < best {
			best, bi = t, i
		}
	}
	if bi < 0 {
		return math.Inf(1), -1, 0
	}
	j := s.bbWith[bi]
	if j < bi {
		return best, j, bi
	}
	return best, bi, j
}

// NextBallObstacleCollision returns the earliest scheduled
// ball-obstacle collision as (time, i, obstacle), or (+Inf, -1, nil)
// when none is scheduled.
func (s *Simulation) NextBallObstacleCollision() (float64, int, obstacle.Obstacle) {
	best, bi := math.Inf(1), -1
	for i, t := range s.boBest {
		if t < best {
			best, bi = t, i
		}
	}
	if bi < 0 {
		return math.Inf(1), -1, nil
	}
	return best, bi, s.obstacles[s.boWith[bi]]
}

// NextCollision returns the next event of either kind. On equal times
// a ball-ball collision precedes a ball-obstacle collision.
func (s *Simulation) NextCollision() Event {
	bt, bi, bj := s.NextBallBallCollision()
	ot, oi, obs := s.NextBallObstacleCollision()
	if bt <= ot {
		return Event{Time: bt, Ball: bi, Partner: bj, Obstacle: nil}
	}
	return Event{Time: ot, Ball: oi, Partner: -1, Obstacle: obs}
}
