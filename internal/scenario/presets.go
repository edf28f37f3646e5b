package scenario

import (
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/billiards/internal/geom"
)

// presets are the compiled-in scenarios, each mirroring one of the
// classic billiard setups. Generated ball clouds use a fixed seed so
// every build of a preset is identical.
var presets = map[string]func() *Scenario{
	"newtons-cradle": newtonsCradle,
	"galperin-pi":    galperinPi,
	"sinai":          sinai,
	"ideal-gas":      idealGas,
	"collapse":       collapse,
}

// Get returns a freshly built preset scenario, or nil if the name is
// unknown.
func Get(name string) *Scenario {
	build, ok := presets[name]
	if !ok {
		return nil
	}
	return build()
}

// List returns the preset names in sorted order.
func List() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// boxWalls returns four one-sided walls enclosing a centered square of
// the given half-width, exteriors facing inward.
func boxWalls(half float64) []Obstacle {
	corners := []geom.Vec{
		{X: -half, Y: -half},
		{X: half, Y: -half},
		{X: half, Y: half},
		{X: -half, Y: half},
	}
	walls := make([]Obstacle, 4)
	for i := range corners {
		walls[i] = Obstacle{Type: "wall", Start: corners[i], End: corners[(i+1)%4]}
	}
	return walls
}

// newtonsCradle: a row of resting balls between two walls; the first
// ball strikes the row and only the far ball leaves it.
func newtonsCradle() *Scenario {
	sc := &Scenario{
		Name:     "newtons-cradle",
		Duration: 12,
		Obstacles: []Obstacle{
			{Type: "wall", Start: geom.Vec{X: -4, Y: -2}, End: geom.Vec{X: -4, Y: 2}, Exterior: "right"},
			{Type: "wall", Start: geom.Vec{X: 12, Y: -2}, End: geom.Vec{X: 12, Y: 2}},
		},
		Balls: []Ball{
			{Pos: geom.Vec{X: -3}, Vel: geom.Vec{X: 3}, Radius: 1},
		},
	}
	for i := 1; i < 5; i++ {
		sc.Balls = append(sc.Balls, Ball{Pos: geom.Vec{X: float64(2 * i)}, Radius: 1})
	}
	return sc
}

// galperinPi: a light ball trapped between a wall and a heavy ball;
// the total number of collisions spells out the digits of pi.
func galperinPi() *Scenario {
	return &Scenario{
		Name:     "galperin-pi",
		Duration: 16,
		Obstacles: []Obstacle{
			{Type: "wall", Start: geom.Vec{Y: -1}, End: geom.Vec{Y: 1}, Exterior: "right"},
		},
		Balls: []Ball{
			{Pos: geom.Vec{X: 3}, Radius: 0.2, Mass: 1},
			{Pos: geom.Vec{X: 6}, Vel: geom.Vec{X: -1}, Radius: 1, Mass: 1e10},
		},
	}
}

// sinai: a chaotic billiard, one ball in a box with a dispersing disk
// at the center.
func sinai() *Scenario {
	return &Scenario{
		Name:      "sinai",
		Duration:  100,
		Obstacles: append([]Obstacle{{Type: "disk", Center: geom.Vec{}, Radius: 1}}, boxWalls(3)...),
		Balls: []Ball{
			{Pos: geom.Vec{X: 2, Y: 1.1}, Vel: geom.Vec{X: -1.3, Y: 0.7}, Radius: 0.1},
		},
	}
}

// idealGas: many small balls with equal speeds in a box; repeated
// collisions relax the speeds towards the Maxwell-Boltzmann
// distribution. One heavier ball shows Brownian motion.
func idealGas() *Scenario {
	rng := rand.New(rand.NewSource(0))
	sc := &Scenario{
		Name:      "ideal-gas",
		Duration:  50,
		Obstacles: boxWalls(1),
	}
	for i := 0; i < 50; i++ {
		pos := geom.Vec{
			X: rng.Float64()*1.98 - 0.99,
			Y: rng.Float64()*1.98 - 0.99,
		}
		angle := rng.Float64() * 2 * math.Pi
		vel := geom.Vec{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(0.2)
		sc.Balls = append(sc.Balls, Ball{Pos: pos, Vel: vel, Radius: 0.01})
	}
	sc.Balls = append(sc.Balls, Ball{Pos: geom.Vec{}, Radius: 0.1, Mass: 10})
	return sc
}

// collapse: a cloud of balls converging on the origin, run backwards
// from their meeting point so the collapse happens mid-simulation.
func collapse() *Scenario {
	rng := rand.New(rand.NewSource(0))
	sc := &Scenario{
		Name:     "collapse",
		Duration: 15,
	}
	for i := 0; i < 40; i++ {
		pos := geom.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64()}
		vel := geom.Vec{X: rng.NormFloat64() * 5, Y: rng.NormFloat64() * 5}
		pos = pos.Sub(vel.Scale(10))
		sc.Balls = append(sc.Balls, Ball{Pos: pos, Vel: vel, Radius: 1})
	}
	return sc
}
