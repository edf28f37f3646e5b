// Package metrics computes conserved observables of a billiard
// simulation. The engine itself never looks at these; they exist for
// callers that want to watch energy or momentum across collisions,
// and for tests of the conservation invariants.
package metrics

import (
	"math"

	"github.com/san-kum/billiards/internal/billiard"
	"github.com/san-kum/billiards/internal/geom"
)

// KineticEnergy returns the summed kinetic energy m*|v|^2 / 2 of all
// balls with finite mass. Infinite masses are skipped: an immovable
// ball has no meaningful kinetic energy.
func KineticEnergy(s *billiard.Simulation) float64 {
	total := 0.0
	for i := 0; i < s.Len(); i++ {
		m := s.Mass(i)
		if math.IsInf(m, 1) {
			continue
		}
		total += 0.5 * m * s.Velocity(i).NormSq()
	}
	return total
}

// Momentum returns the summed momentum of all balls with finite mass.
func Momentum(s *billiard.Simulation) geom.Vec {
	var total geom.Vec
	for i := 0; i < s.Len(); i++ {
		m := s.Mass(i)
		if math.IsInf(m, 1) {
			continue
		}
		total = total.Add(s.Velocity(i).Scale(m))
	}
	return total
}

// Drift tracks the worst relative kinetic-energy deviation from the
// first observed value. Feed Observe to the evolution time callback.
type Drift struct {
	sim      *billiard.Simulation
	initial  float64
	maxDrift float64
	samples  int
}

func NewDrift(sim *billiard.Simulation) *Drift {
	return &Drift{sim: sim}
}

func (d *Drift) Name() string { return "energy_drift" }

// Observe samples the kinetic energy. The time argument is unused but
// matches the engine's time-callback signature.
func (d *Drift) Observe(t float64) {
	energy := KineticEnergy(d.sim)
	if d.samples == 0 {
		d.initial = energy
	}
	d.samples++

	if d.initial != 0 {
		drift := math.Abs(energy-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

// Value returns the maximum relative drift seen so far.
func (d *Drift) Value() float64 { return d.maxDrift }

func (d *Drift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
