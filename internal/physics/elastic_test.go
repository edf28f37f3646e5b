package physics

import (
	"math"
	"testing"

	"github.com/san-kum/billiards/internal/geom"
)

func TestElasticCollisionEqualMasses(t *testing.T) {
	// Equal masses exchange velocities in a head-on collision.
	v1, v2 := ElasticCollision(geom.Vec{}, geom.Vec{X: 1}, 1, geom.Vec{X: 2}, geom.Vec{}, 1)
	if v1 != (geom.Vec{}) {
		t.Errorf("v1 = %v, want zero", v1)
	}
	if v2 != (geom.Vec{X: 1}) {
		t.Errorf("v2 = %v, want (1,0)", v2)
	}
}

func TestElasticCollisionConservation(t *testing.T) {
	p1, u1, m1 := geom.Vec{X: 0, Y: 0}, geom.Vec{X: 3, Y: 1}, 2.0
	p2, u2, m2 := geom.Vec{X: 1.8, Y: 0.9}, geom.Vec{X: -2, Y: 0.5}, 5.0

	v1, v2 := ElasticCollision(p1, u1, m1, p2, u2, m2)

	pBefore := u1.Scale(m1).Add(u2.Scale(m2))
	pAfter := v1.Scale(m1).Add(v2.Scale(m2))
	if pBefore.Sub(pAfter).Norm() > 1e-12 {
		t.Errorf("momentum changed: %v -> %v", pBefore, pAfter)
	}

	eBefore := m1*u1.NormSq() + m2*u2.NormSq()
	eAfter := m1*v1.NormSq() + m2*v2.NormSq()
	if math.Abs(eBefore-eAfter) > 1e-9*math.Abs(eBefore) {
		t.Errorf("energy changed: %v -> %v", eBefore, eAfter)
	}

	// The tangential component must be untouched.
	n := p2.Sub(p1).Unit()
	tang := n.Perp()
	if math.Abs(u1.Dot(tang)-v1.Dot(tang)) > 1e-12 {
		t.Error("tangential velocity of ball 1 changed")
	}
	if math.Abs(u2.Dot(tang)-v2.Dot(tang)) > 1e-12 {
		t.Error("tangential velocity of ball 2 changed")
	}
}

func TestElasticCollisionInfiniteMass(t *testing.T) {
	inf := math.Inf(1)

	// The infinite ball keeps its velocity; the finite ball reflects.
	v1, v2 := ElasticCollision(geom.Vec{}, geom.Vec{}, inf, geom.Vec{X: 2}, geom.Vec{X: -1}, 1)
	if v1 != (geom.Vec{}) {
		t.Errorf("infinite mass moved: %v", v1)
	}
	if v2 != (geom.Vec{X: 1}) {
		t.Errorf("reflection = %v, want (1,0)", v2)
	}

	// Mirror case.
	v1, v2 = ElasticCollision(geom.Vec{}, geom.Vec{X: 1}, 1, geom.Vec{X: 2}, geom.Vec{}, inf)
	if v2 != (geom.Vec{}) {
		t.Errorf("infinite mass moved: %v", v2)
	}
	if v1 != (geom.Vec{X: -1}) {
		t.Errorf("reflection = %v, want (-1,0)", v1)
	}
}

func TestElasticCollisionBothInfinite(t *testing.T) {
	inf := math.Inf(1)
	v1, v2 := ElasticCollision(geom.Vec{}, geom.Vec{X: 1}, inf, geom.Vec{X: 2}, geom.Vec{X: -1}, inf)
	if v1 != (geom.Vec{X: 1}) || v2 != (geom.Vec{X: -1}) {
		t.Errorf("velocities changed: %v, %v", v1, v2)
	}
}

func TestElasticCollisionMasslessTracer(t *testing.T) {
	// A zero-mass ball reflects without disturbing its partner.
	v1, v2 := ElasticCollision(geom.Vec{}, geom.Vec{X: 1}, 0, geom.Vec{X: 2}, geom.Vec{}, 1)
	if v2 != (geom.Vec{}) {
		t.Errorf("partner of tracer moved: %v", v2)
	}
	if v1 != (geom.Vec{X: -1}) {
		t.Errorf("tracer reflection = %v, want (-1,0)", v1)
	}
}

func TestElasticCollisionObliqueImpact(t *testing.T) {
	// The two-body scenario's post-impact velocities: advance both
	// balls to the impact, then collide with masses 1 and 2.
	u1, u2 := geom.Vec{X: 4}, geom.Vec{Y: -9}
	toi := TimeOfImpact(geom.Vec{X: 42}, u1, 1, geom.Vec{X: 50, Y: 18}, u2, 1)
	p1 := geom.Vec{X: 42}.Add(u1.Scale(toi))
	p2 := geom.Vec{X: 50, Y: 18}.Add(u2.Scale(toi))
	v1, v2 := ElasticCollision(p1, u1, 1, p2, u2, 2)

	if math.Abs(v1.X-(-4.0/3)) > 1e-4 || math.Abs(v1.Y-(-12)) > 1e-4 {
		t.Errorf("v1 = %v, want ~(-1.3333, -12)", v1)
	}
	if math.Abs(v2.X-(8.0/3)) > 1e-4 || math.Abs(v2.Y-(-3)) > 1e-4 {
		t.Errorf("v2 = %v, want ~(2.6667, -3)", v2)
	}
}
