package geom

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Vec is a point or direction in the plane.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }

func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// NormSq is the squared euclidean length.
func (v Vec) NormSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec) Norm() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Unit returns v scaled to length 1, or the zero vector if v is zero.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n == 0 {
		return Vec{}
	}
	return Vec{v.X / n, v.Y / n}
}

// Perp returns v rotated 90 degrees counterclockwise.
func (v Vec) Perp() Vec { return Vec{-v.Y, v.X} }

func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// UnmarshalYAML decodes a vector from a two-element sequence [x, y],
// the form scenario files use for positions and velocities.
func (v *Vec) UnmarshalYAML(value *yaml.Node) error {
	var pair []float64
	if err := value.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("geom: vector needs exactly 2 components, got %d", len(pair))
	}
	v.X, v.Y = pair[0], pair[1]
	return nil
}

// MarshalYAML emits the same [x, y] sequence form.
func (v Vec) MarshalYAML() (interface{}, error) {
	return []float64{v.X, v.Y}, nil
}
