// Package storage persists simulation runs under a data directory:
// one subdirectory per run holding metadata (JSON) and the resolved
// collision log (CSV). The simulation kernel knows nothing about this;
// records are captured through the engine's callback hook.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/billiards/internal/billiard"
	"github.com/san-kum/billiards/internal/geom"
	"github.com/san-kum/billiards/internal/obstacle"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Scenario     string             `json:"scenario"`
	Timestamp    time.Time          `json:"timestamp"`
	Duration     float64            `json:"duration"`
	Balls        int                `json:"balls"`
	Obstacles    int                `json:"obstacles"`
	BallBall     int                `json:"ball_ball_collisions"`
	BallObstacle int                `json:"ball_obstacle_collisions"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Record is one resolved collision.
type Record struct {
	Time    float64
	Kind    string // "ball-ball" or "ball-obstacle"
	Ball    int
	Partner int // other ball index, -1 for obstacle collisions
}

// Recorder captures collision records through ball callbacks. For a
// ball-ball event only the lower-indexed participant records, so each
// collision appears once.
type Recorder struct {
	events []Record
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Events() []Record { return r.events }

// Callbacks returns a callback map covering every ball currently in
// the simulation. Register it with Evolve; balls added afterwards are
// not covered.
func (r *Recorder) Callbacks(sim *billiard.Simulation) map[int]billiard.BallCallback {
	cbs := make(map[int]billiard.BallCallback, sim.Len())
	for i := 0; i < sim.Len(); i++ {
		cbs[i] = func(t float64, pos, before, after geom.Vec, partner int, obs obstacle.Obstacle) {
			if partner >= 0 && partner < i {
				return // the lower-indexed participant records the event
			}
			kind := "ball-ball"
			if obs != nil {
				kind = "ball-obstacle"
			}
			r.events = append(r.events, Record{Time: t, Kind: kind, Ball: i, Partner: partner})
		}
	}
	return cbs
}

// Save writes a run directory and returns the run ID.
func (s *Store) Save(meta RunMetadata, events []Record) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "events.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	if err := w.Write([]string{"time", "kind", "ball", "partner"}); err != nil {
		return "", err
	}
	for _, ev := range events {
		row := []string{
			strconv.FormatFloat(ev.Time, 'g', -1, 64),
			ev.Kind,
			strconv.Itoa(ev.Ball),
			strconv.Itoa(ev.Partner),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()

	return runID, w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadEvents(runID string) ([]Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "events.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Record{}, nil
	}

	events := make([]Record, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) != 4 {
			continue
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			continue
		}
		ball, err := strconv.Atoi(row[2])
		if err != nil {
			continue
		}
		partner, err := strconv.Atoi(row[3])
		if err != nil {
			continue
		}
		events = append(events, Record{Time: t, Kind: row[1], Ball: ball, Partner: partner})
	}
	return events, nil
}
