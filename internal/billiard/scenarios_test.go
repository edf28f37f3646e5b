package billiard_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/billiards/internal/billiard"
	"github.com/san-kum/billiards/internal/geom"
	"github.com/san-kum/billiards/internal/metrics"
	"github.com/san-kum/billiards/internal/obstacle"
)

func addBall(s *billiard.Simulation, pos, vel geom.Vec, radius, mass float64) int {
	i, err := s.AddBall(pos, vel, radius, mass)
	Expect(err).NotTo(HaveOccurred())
	return i
}

func evolve(s *billiard.Simulation, endTime float64, timeCB billiard.TimeCallback, ballCBs map[int]billiard.BallCallback) (int, int) {
	nBB, nBO, err := s.Evolve(endTime, timeCB, ballCBs)
	Expect(err).NotTo(HaveOccurred())
	return nBB, nBO
}

// ballState captures the stored representation of one ball for
// bitwise comparisons.
type ballState struct {
	t0  float64
	p0  geom.Vec
	vel geom.Vec
}

func snapshot(s *billiard.Simulation) []ballState {
	states := make([]ballState, s.Len())
	for i := range states {
		states[i] = ballState{s.InitialTime(i), s.InitialPosition(i), s.Velocity(i)}
	}
	return states
}

var _ = Describe("free flight", func() {
	It("moves a lone ball in a straight line", func() {
		sim := billiard.New()
		addBall(sim, geom.Vec{X: 2}, geom.Vec{X: 4}, 1, 1)

		nBB, nBO := evolve(sim, 10, nil, nil)
		Expect(nBB).To(BeZero())
		Expect(nBO).To(BeZero())
		Expect(sim.Position(0)).To(Equal(geom.Vec{X: 42}))
		Expect(sim.Velocity(0)).To(Equal(geom.Vec{X: 4}))
	})
})

var _ = Describe("two-body impact", func() {
	var sim *billiard.Simulation

	BeforeEach(func() {
		sim = billiard.New()
		addBall(sim, geom.Vec{X: 2}, geom.Vec{X: 4}, 1, 1)
		evolve(sim, 10, nil, nil)
		addBall(sim, geom.Vec{X: 50, Y: 18}, geom.Vec{Y: -9}, 1, 2)
	})

	It("schedules the oblique collision", func() {
		t, i, j := sim.NextBallBallCollision()
		Expect(t).To(BeNumerically("~", 11.79693, 1e-5))
		Expect(i).To(Equal(0))
		Expect(j).To(Equal(1))

		ev := sim.NextCollision()
		Expect(ev.Obstacle).To(BeNil())
		Expect(ev.Time).To(Equal(t))
	})

	It("resolves it with the elastic response", func() {
		nBB, nBO := evolve(sim, 14, nil, nil)
		Expect(nBB).To(Equal(1))
		Expect(nBO).To(BeZero())

		posA, posB := sim.Position(0), sim.Position(1)
		Expect(posA.X).To(BeNumerically("~", 46.25029742, 1e-6))
		Expect(posA.Y).To(BeNumerically("~", -26.4368308, 1e-6))
		Expect(posB.X).To(BeNumerically("~", 55.87485129, 1e-6))
		Expect(posB.Y).To(BeNumerically("~", -4.7815846, 1e-6))

		velA, velB := sim.Velocity(0), sim.Velocity(1)
		Expect(velA.X).To(BeNumerically("~", -4.0/3, 1e-5))
		Expect(velA.Y).To(BeNumerically("~", -12.0, 1e-5))
		Expect(velB.X).To(BeNumerically("~", 8.0/3, 1e-5))
		Expect(velB.Y).To(BeNumerically("~", -3.0, 1e-5))
	})

	It("conserves energy and momentum", func() {
		energy := metrics.KineticEnergy(sim)
		momentum := metrics.Momentum(sim)

		evolve(sim, 14, nil, nil)

		Expect(metrics.KineticEnergy(sim)).To(BeNumerically("~", energy, 1e-9*energy))
		Expect(metrics.Momentum(sim).Sub(momentum).Norm()).To(BeNumerically("<", 1e-9))
	})
})

var _ = Describe("Newton's cradle", func() {
	newCradle := func() *billiard.Simulation {
		sim := billiard.New()
		addBall(sim, geom.Vec{X: 0}, geom.Vec{X: 2}, 1, 1)
		for _, x := range []float64{3, 5.1, 7.2, 9.3} {
			addBall(sim, geom.Vec{X: x}, geom.Vec{}, 1, 1)
		}
		return sim
	}

	It("relays the impulse through the row", func() {
		sim := newCradle()

		var times []float64
		nBB, nBO := evolve(sim, 5, func(t float64) { times = append(times, t) }, nil)
		Expect(nBO).To(BeZero())
		Expect(nBB).To(Equal(4))

		Expect(times).To(HaveLen(4))
		for k, want := range []float64{0.5, 0.55, 0.6, 0.65} {
			Expect(times[k]).To(BeNumerically("~", want, 1e-9))
		}

		// Only the last ball is still moving.
		for i := 0; i < 4; i++ {
			Expect(sim.Velocity(i).Norm()).To(BeNumerically("<", 1e-12), "ball %d", i)
		}
		Expect(sim.Velocity(4)).To(Equal(geom.Vec{X: 2}))
	})

	It("hands the velocity to exactly one ball after each collision", func() {
		sim := newCradle()

		moving := func() []int {
			var idx []int
			for i := 0; i < sim.Len(); i++ {
				if sim.Velocity(i).Norm() > 1e-12 {
					idx = append(idx, i)
				}
			}
			return idx
		}

		expected := 0
		timeCB := func(t float64) {
			expected++
			Expect(moving()).To(Equal([]int{expected}))
		}
		evolve(sim, 5, timeCB, nil)
		Expect(expected).To(Equal(4))
	})

	It("survives a tiny edit plus recompute mid-run", func() {
		sim := newCradle()

		energy := metrics.KineticEnergy(sim)
		momentum := metrics.Momentum(sim)

		// Run past the first collision, nudge a ball off-axis, repair.
		evolve(sim, 0.52, nil, nil)
		pos := sim.Position(2)
		Expect(sim.SetPosition(2, geom.Vec{X: pos.X, Y: pos.Y + 1e-10})).To(Succeed())
		Expect(sim.RecomputeTOI(2)).To(Succeed())

		lastTime := math.Inf(-1)
		timeCB := func(t float64) {
			Expect(t).To(BeNumerically(">=", lastTime))
			lastTime = t
		}
		contact := func(t float64, pos, before, after geom.Vec, partner int, obs obstacle.Obstacle) {
			if partner >= 0 {
				dist := pos.Sub(sim.Position(partner)).Norm()
				Expect(dist).To(BeNumerically("~", sim.Radius(partner)+sim.Radius(2), 1e-9))
			}
		}
		ballCBs := map[int]billiard.BallCallback{2: contact}

		evolve(sim, 5, timeCB, ballCBs)

		Expect(metrics.KineticEnergy(sim)).To(BeNumerically("~", energy, 1e-9*energy))
		Expect(metrics.Momentum(sim).Sub(momentum).Norm()).To(BeNumerically("<", 1e-9))
	})
})

var _ = Describe("Galperin's billiard", func() {
	newGalperin := func() *billiard.Simulation {
		wall, err := obstacle.NewInfiniteWall(geom.Vec{Y: -1}, geom.Vec{Y: 1}, obstacle.ExteriorRight)
		Expect(err).NotTo(HaveOccurred())
		sim := billiard.New(wall)
		addBall(sim, geom.Vec{X: 3}, geom.Vec{}, 0.2, 1)
		addBall(sim, geom.Vec{X: 6}, geom.Vec{X: -1}, 1, 1e10)
		return sim
	}

	It("counts the digits of pi", func() {
		sim := newGalperin()
		initialEnergy := metrics.KineticEnergy(sim)

		nBB, nBO := evolve(sim, 16, nil, nil)
		Expect(nBB + nBO).To(Equal(314159))

		Expect(sim.Velocity(0).X).To(BeNumerically("~", 0.73463055, 1e-6))
		Expect(sim.Velocity(0).Y).To(BeZero())
		Expect(sim.Velocity(1).X).To(BeNumerically("~", 1.0, 1e-8))
		Expect(sim.Velocity(1).Y).To(BeZero())

		// No more collisions ever.
		Expect(math.IsInf(sim.NextCollision().Time, 1)).To(BeTrue())

		finalEnergy := metrics.KineticEnergy(sim)
		Expect(math.Abs(finalEnergy-initialEnergy) / initialEnergy).
			To(BeNumerically("<", 1e-10))
	})

	It("replays identically when resumed", func() {
		oneShot := newGalperin()
		evolve(oneShot, 16, nil, nil)

		resumed := newGalperin()
		for i := 1; i <= 16; i++ {
			evolve(resumed, float64(i), nil, nil)
		}

		// Bitwise identical stored state, not merely close.
		Expect(snapshot(resumed)).To(Equal(snapshot(oneShot)))
		Expect(resumed.BallBallCollisions()).To(Equal(oneShot.BallBallCollisions()))
		Expect(resumed.BallObstacleCollisions()).To(Equal(oneShot.BallObstacleCollisions()))
	})
})

var _ = Describe("infinite mass", func() {
	It("never changes velocity in ball-ball collisions", func() {
		sim := billiard.New()
		anchor := addBall(sim, geom.Vec{}, geom.Vec{}, 1, math.Inf(1))
		addBall(sim, geom.Vec{X: 10}, geom.Vec{X: -1}, 1, 1)
		addBall(sim, geom.Vec{X: -10}, geom.Vec{X: 1}, 1, 1)

		nBB, _ := evolve(sim, 30, nil, nil)
		Expect(nBB).To(BeNumerically(">", 0))
		Expect(sim.Velocity(anchor)).To(Equal(geom.Vec{}))

		// The finite balls reflected off it.
		Expect(sim.Velocity(1).X).To(Equal(1.0))
		Expect(sim.Velocity(2).X).To(Equal(-1.0))
	})
})

var _ = Describe("Sinai billiard", func() {
	newSinai := func() *billiard.Simulation {
		disk, err := obstacle.NewDisk(geom.Vec{}, 1)
		Expect(err).NotTo(HaveOccurred())
		walls := []struct {
			p1, p2   geom.Vec
			exterior obstacle.Exterior
		}{
			{geom.Vec{X: -3, Y: -3}, geom.Vec{X: 3, Y: -3}, obstacle.ExteriorLeft},
			{geom.Vec{X: 3, Y: -3}, geom.Vec{X: 3, Y: 3}, obstacle.ExteriorLeft},
			{geom.Vec{X: 3, Y: 3}, geom.Vec{X: -3, Y: 3}, obstacle.ExteriorLeft},
			{geom.Vec{X: -3, Y: 3}, geom.Vec{X: -3, Y: -3}, obstacle.ExteriorLeft},
		}
		obstacles := []obstacle.Obstacle{disk}
		for _, w := range walls {
			wall, err := obstacle.NewInfiniteWall(w.p1, w.p2, w.exterior)
			Expect(err).NotTo(HaveOccurred())
			obstacles = append(obstacles, wall)
		}
		sim := billiard.New(obstacles...)
		addBall(sim, geom.Vec{X: 2, Y: 1.1}, geom.Vec{X: -1.3, Y: 0.7}, 0.1, 1)
		return sim
	}

	It("stays inside the box and conserves speed", func() {
		sim := newSinai()
		speed := sim.Velocity(0).Norm()

		lastTime := math.Inf(-1)
		timeCB := func(t float64) {
			Expect(t).To(BeNumerically(">=", lastTime))
			lastTime = t
		}

		_, nBO := evolve(sim, 100, timeCB, nil)
		Expect(nBO).To(BeNumerically(">", 10))

		pos := sim.Position(0)
		Expect(math.Abs(pos.X)).To(BeNumerically("<=", 3.0))
		Expect(math.Abs(pos.Y)).To(BeNumerically("<=", 3.0))
		Expect(sim.Velocity(0).Norm()).To(BeNumerically("~", speed, 1e-9))
	})
})
