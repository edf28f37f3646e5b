package obstacle

import (
	"errors"
	"math"

	"github.com/san-kum/billiards/internal/geom"
	"github.com/san-kum/billiards/internal/physics"
)

// Disk is a circular obstacle; the outside is everything at distance
// >= Radius from the center.
type Disk struct {
	center geom.Vec
	radius float64
}

// NewDisk builds a circular obstacle. The radius must be positive and
// the geometry finite; a zero-radius disk would be a degenerate point.
func NewDisk(center geom.Vec, radius float64) (*Disk, error) {
	if !center.IsFinite() || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, errors.New("obstacle: disk geometry must be finite")
	}
	if radius <= 0 {
		return nil, errors.New("obstacle: disk radius must be positive")
	}
	return &Disk{center: center, radius: radius}, nil
}

func (d *Disk) Center() geom.Vec { return d.center }
func (d *Disk) Radius() float64  { return d.radius }

func (d *Disk) TimeOfImpact(pos, vel geom.Vec, radius float64) (float64, Hint) {
	return physics.TimeOfImpactStatic(pos, vel, radius, d.center, d.radius), nil
}

// Collide reflects the velocity about the tangent plane at the contact
// point.
func (d *Disk) Collide(pos, vel geom.Vec, radius float64, hint Hint) geom.Vec {
	n := pos.Sub(d.center).Unit()
	return vel.Sub(n.Scale(2 * vel.Dot(n)))
}
