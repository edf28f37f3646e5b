// Package billiard implements a deterministic event-driven simulation
// of hard disks: balls fly on straight lines and the engine jumps from
// collision to collision, resolving each one in closed form. There is
// no timestep, so fast balls cannot tunnel, and collision-free
// stretches cost nothing.
//
// Ball state is stored in the initial-time representation: each ball
// keeps the position it had when its velocity last changed, and the
// current position is materialized on demand. Stored state is untouched
// while no collision happens, which makes evolving to T in one call and
// in many calls bitwise identical.
//
// The engine is single-threaded and synchronous; nothing in this
// package is safe for concurrent use.
package billiard

import (
	"fmt"
	"math"

	"github.com/san-kum/billiards/internal/geom"
	"github.com/san-kum/billiards/internal/obstacle"
)

// Simulation is a billiard table: a set of static obstacles and a
// growing set of moving balls, advanced by Evolve.
type Simulation struct {
	time float64

	// Ball store, index-aligned dense arrays.
	initialTime []float64
	initialPos  []geom.Vec
	vel         []geom.Vec
	mass        []float64
	radius      []float64

	obstacles []obstacle.Obstacle

	// Ball-ball impact times, absolute, symmetric, +Inf on the
	// diagonal, with the cached minimum of each row.
	bbTime [][]float64
	bbBest []float64
	bbWith []int

	// Ball-obstacle impact times and the hints that go with them.
	boTime [][]float64
	boHint [][]obstacle.Hint
	boBest []float64
	boWith []int

	bbCount int
	boCount int
}

// New creates an empty table populated with the given obstacles.
// Obstacles are shared with the caller and must not be mutated.
func New(obstacles ...obstacle.Obstacle) *Simulation {
	s := &Simulation{
		obstacles: make([]obstacle.Obstacle, len(obstacles)),
	}
	copy(s.obstacles, obstacles)
	return s
}

// Time returns the current simulation time.
func (s *Simulation) Time() float64 { return s.time }

// Len returns the number of balls.
func (s *Simulation) Len() int { return len(s.vel) }

// BallBallCollisions returns the number of ball-ball collisions
// resolved since creation.
func (s *Simulation) BallBallCollisions() int { return s.bbCount }

// BallObstacleCollisions returns the number of ball-obstacle
// collisions resolved since creation.
func (s *Simulation) BallObstacleCollisions() int { return s.boCount }

// Obstacles returns the registered obstacles in registration order.
// The returned slice is a view; treat it as read-only.
func (s *Simulation) Obstacles() []obstacle.Obstacle { return s.obstacles }

// Position materializes ball i's position at the current time.
// Out-of-range indices panic, like slice indexing.
func (s *Simulation) Position(i int) geom.Vec {
	return s.initialPos[i].Add(s.vel[i].Scale(s.time - s.initialTime[i]))
}

// Velocity returns ball i's velocity.
func (s *Simulation) Velocity(i int) geom.Vec { return s.vel[i] }

// Mass returns ball i's mass.
func (s *Simulation) Mass(i int) float64 { return s.mass[i] }

// Radius returns ball i's radius.
func (s *Simulation) Radius(i int) float64 { return s.radius[i] }

// InitialTime returns the last time ball i's velocity changed.
func (s *Simulation) InitialTime(i int) float64 { return s.initialTime[i] }

// InitialPosition returns ball i's position at its initial time.
func (s *Simulation) InitialPosition(i int) geom.Vec { return s.initialPos[i] }

// The slice accessors below expose the underlying index-aligned
// arrays. They are views, not copies: treat them as read-only and use
// the Set mutators plus RecomputeTOI for edits.

func (s *Simulation) InitialTimes() []float64      { return s.initialTime }
func (s *Simulation) InitialPositions() []geom.Vec { return s.initialPos }
func (s *Simulation) Velocities() []geom.Vec       { return s.vel }
func (s *Simulation) Masses() []float64            { return s.mass }
func (s *Simulation) Radii() []float64             { return s.radius }

// AddBall appends a ball at the given position and velocity and
// returns its index. The ball's initial time is the current simulation
// time. A radius of 0 is a point particle; mass may be +Inf for an
// immovable ball. The impact tables grow and repair incrementally.
func (s *Simulation) AddBall(pos, vel geom.Vec, radius, mass float64) (int, error) {
	if !pos.IsFinite() || !vel.IsFinite() {
		return 0, fmt.Errorf("billiard: add ball: %w", ErrNotFinite)
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return 0, fmt.Errorf("billiard: add ball: %w", ErrRadius)
	}
	if math.IsNaN(mass) || mass <= 0 {
		return 0, fmt.Errorf("billiard: add ball: %w", ErrMass)
	}

	i := len(s.vel)
	s.initialTime = append(s.initialTime, s.time)
	s.initialPos = append(s.initialPos, pos)
	s.vel = append(s.vel, vel)
	s.mass = append(s.mass, mass)
	s.radius = append(s.radius, radius)

	// Grow the ball-ball table by one row and one column, mirroring
	// the new pair times into the existing rows.
	row := make([]float64, i+1)
	row[i] = math.Inf(1)
	for j := 0; j < i; j++ {
		t := s.pairTime(i, j)
		row[j] = t
		s.bbTime[j] = append(s.bbTime[j], t)
	}
	s.bbTime = append(s.bbTime, row)
	s.bbBest = append(s.bbBest, math.Inf(1))
	s.bbWith = append(s.bbWith, -1)
	s.refreshBBRow(i)

	// An existing row's minimum can only improve through the new
	// column; on a tie the incumbent (smaller index) wins.
	for j := 0; j < i; j++ {
		if row[j] < s.bbBest[j] {
			s.bbBest[j], s.bbWith[j] = row[j], i
		}
	}

	s.boTime = append(s.boTime, make([]float64, len(s.obstacles)))
	s.boHint = append(s.boHint, make([]obstacle.Hint, len(s.obstacles)))
	s.boBest = append(s.boBest, math.Inf(1))
	s.boWith = append(s.boWith, -1)
	s.recomputeObstacleRow(i)
	s.refreshBORow(i)

	return i, nil
}

// SetPosition moves ball i to pos at the current time. The caller must
// follow edits with RecomputeTOI for the schedule to stay consistent.
func (s *Simulation) SetPosition(i int, pos geom.Vec) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if !pos.IsFinite() {
		return fmt.Errorf("billiard: set position: %w", ErrNotFinite)
	}
	s.initialPos[i] = pos
	s.initialTime[i] = s.time
	return nil
}

// SetVelocity changes ball i's velocity at the current time. The
// ball's stored state is advanced first so its past trajectory is
// unaffected. The caller must follow edits with RecomputeTOI.
func (s *Simulation) SetVelocity(i int, vel geom.Vec) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if !vel.IsFinite() {
		return fmt.Errorf("billiard: set velocity: %w", ErrNotFinite)
	}
	s.advance(i)
	s.vel[i] = vel
	return nil
}

// SetRadius changes ball i's radius. The caller must follow edits with
// RecomputeTOI.
func (s *Simulation) SetRadius(i int, radius float64) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return fmt.Errorf("billiard: set radius: %w", ErrRadius)
	}
	s.radius[i] = radius
	return nil
}

// SetMass changes ball i's mass. Mass does not enter the impact
// schedule, but RecomputeTOI after the edit is still the documented
// contract and is harmless.
func (s *Simulation) SetMass(i int, mass float64) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if math.IsNaN(mass) || mass <= 0 {
		return fmt.Errorf("billiard: set mass: %w", ErrMass)
	}
	s.mass[i] = mass
	return nil
}

// RecomputeTOI repairs the impact tables for the given balls after
// direct edits. With no indices every row is recomputed.
func (s *Simulation) RecomputeTOI(indices ...int) error {
	if len(indices) == 0 {
		indices = make([]int, len(s.vel))
		for i := range indices {
			indices[i] = i
		}
	}
	for _, i := range indices {
		if err := s.checkIndex(i); err != nil {
			return err
		}
	}
	s.recomputeRows(indices)
	return nil
}

func (s *Simulation) checkIndex(i int) error {
	if i < 0 || i >= len(s.vel) {
		return fmt.Errorf("billiard: ball %d of %d: %w", i, len(s.vel), ErrBallIndex)
	}
	return nil
}

// advance rewrites ball i's stored state to the current time. Called
// only when the ball's velocity is about to change.
func (s *Simulation) advance(i int) {
	s.initialPos[i] = s.Position(i)
	s.initialTime[i] = s.time
}
