package physics

import (
	"math"

	"github.com/san-kum/billiards/internal/geom"
)

// ElasticCollision returns the velocities of two touching balls after a
// perfectly elastic collision, exchanging momentum along the line of
// centers only.
//
// An infinite mass absorbs no momentum: the other ball reflects off it
// as off a wall. Two infinite masses pass through the event unchanged.
// A zero mass is the mirror limit: it is reflected but does not perturb
// its partner.
func ElasticCollision(pos1, vel1 geom.Vec, mass1 float64, pos2, vel2 geom.Vec, mass2 float64) (geom.Vec, geom.Vec) {
	inf1 := math.IsInf(mass1, 1)
	inf2 := math.IsInf(mass2, 1)
	switch {
	case inf1 && inf2:
		return vel1, vel2
	case inf1:
		mass1, mass2 = 1, 0
	case inf2:
		mass1, mass2 = 0, 1
	}

	dpos := pos2.Sub(pos1)
	dvel := vel2.Sub(vel1)

	f := 2 * dpos.Dot(dvel) / ((mass1 + mass2) * dpos.NormSq())
	impulse := dpos.Scale(f)
	return vel1.Add(impulse.Scale(mass2)), vel2.Sub(impulse.Scale(mass1))
}
