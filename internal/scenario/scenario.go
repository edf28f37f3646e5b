// Package scenario describes billiard setups as data: balls, obstacles
// and a run duration, loadable from YAML files or taken from the
// compiled-in presets.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/billiards/internal/billiard"
	"github.com/san-kum/billiards/internal/geom"
	"github.com/san-kum/billiards/internal/obstacle"
)

type Scenario struct {
	Name      string     `yaml:"name"`
	Duration  float64    `yaml:"duration"`
	Balls     []Ball     `yaml:"balls"`
	Obstacles []Obstacle `yaml:"obstacles"`
}

type Ball struct {
	Pos    geom.Vec `yaml:"pos"`
	Vel    geom.Vec `yaml:"vel"`
	Radius float64  `yaml:"radius"`
	Mass   float64  `yaml:"mass"` // 0 or omitted means the default mass 1
}

// Obstacle is the on-disk form of one obstacle. Type selects the
// variant: "disk" uses center/radius, "wall" uses start/end/exterior,
// "segment" uses start/end.
type Obstacle struct {
	Type     string   `yaml:"type"`
	Center   geom.Vec `yaml:"center,omitempty"`
	Radius   float64  `yaml:"radius,omitempty"`
	Start    geom.Vec `yaml:"start,omitempty"`
	End      geom.Vec `yaml:"end,omitempty"`
	Exterior string   `yaml:"exterior,omitempty"`
}

const DefaultDuration = 10.0

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := &Scenario{Duration: DefaultDuration}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// Save writes a scenario to a YAML file.
func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs the simulation the scenario describes: obstacles in
// declaration order, then balls in declaration order, so ball indices
// match the scenario's ball list.
func (sc *Scenario) Build() (*billiard.Simulation, error) {
	obstacles := make([]obstacle.Obstacle, 0, len(sc.Obstacles))
	for i, oc := range sc.Obstacles {
		obs, err := oc.build()
		if err != nil {
			return nil, fmt.Errorf("scenario %q obstacle %d: %w", sc.Name, i, err)
		}
		obstacles = append(obstacles, obs)
	}

	sim := billiard.New(obstacles...)
	for i, b := range sc.Balls {
		mass := b.Mass
		if mass == 0 {
			mass = 1
		}
		if _, err := sim.AddBall(b.Pos, b.Vel, b.Radius, mass); err != nil {
			return nil, fmt.Errorf("scenario %q ball %d: %w", sc.Name, i, err)
		}
	}
	return sim, nil
}

func (oc Obstacle) build() (obstacle.Obstacle, error) {
	switch oc.Type {
	case "disk":
		return obstacle.NewDisk(oc.Center, oc.Radius)
	case "wall":
		exterior := obstacle.Exterior(oc.Exterior)
		if oc.Exterior == "" {
			exterior = obstacle.ExteriorLeft
		}
		return obstacle.NewInfiniteWall(oc.Start, oc.End, exterior)
	case "segment":
		return obstacle.NewLineSegment(oc.Start, oc.End)
	default:
		return nil, fmt.Errorf("unknown obstacle type %q", oc.Type)
	}
}
