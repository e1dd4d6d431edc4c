package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/sim"
	"github.com/san-kum/swarm/internal/swarm"
)

const (
	metadataFile  = "metadata.json"
	seriesFile    = "series.csv"
	particlesFile = "particles.csv"
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
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Timestamp     time.Time          `json:"timestamp"`
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	Color         string             `json:"color"`
	PointSize     int                `json:"point_size"`
	Seed          int64              `json:"seed"`
	ParticleCount int                `json:"particle_count"`
	Friction      float64            `json:"friction"`
	Strength      float64            `json:"strength"`
	Integrator    string             `json:"integrator"`
	TickRate      float64            `json:"tick_rate"`
	Path          string             `json:"path"`
	Ticks         int                `json:"ticks"`
	Target        swarm.Point        `json:"target"`
	Metrics       map[string]float64 `json:"metrics"`
}

func newMetadata(id, name string, cfg *config.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		ID:            id,
		Name:          name,
		Timestamp:     time.Now(),
		Width:         cfg.Width,
		Height:        cfg.Height,
		Color:         cfg.Color,
		PointSize:     cfg.PointSize,
		Seed:          cfg.Seed,
		ParticleCount: cfg.ParticleCount,
		Friction:      cfg.Friction,
		Strength:      cfg.Strength,
		Integrator:    cfg.Integrator,
		TickRate:      cfg.TickRate,
		Path:          cfg.Run.Path,
		Ticks:         result.StepsTaken,
		Target:        result.Target,
		Metrics:       result.Metrics,
	}
}

// Save writes a run directory holding metadata.json, series.csv and
// particles.csv, and returns the run id.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), newMetadata(runID, name, cfg, result)); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}
	if err := writeParticles(filepath.Join(runDir, particlesFile), result.Final); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SortedKeys returns the metric names in column order.
func SortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeSeries(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	names := SortedKeys(result.Series)
	if err := w.Write(append([]string{"tick"}, names...)); err != nil {
		return err
	}

	for i, tick := range result.Ticks {
		row := []string{strconv.Itoa(tick)}
		for _, name := range names {
			val := 0.0
			if i < len(result.Series[name]) {
				val = result.Series[name][i]
			}
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeParticles(path string, ps []swarm.Particle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "vx", "vy"}); err != nil {
		return err
	}
	for _, p := range ps {
		row := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
			strconv.FormatFloat(p.VX, 'g', -1, 64),
			strconv.FormatFloat(p.VY, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// LoadSeries reads the sampled metric series of a run.
func (s *Store) LoadSeries(runID string) ([]int, map[string][]float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, err
	}

	series := make(map[string][]float64)
	if len(records) < 1 {
		return []int{}, series, nil
	}

	header := records[0]
	ticks := make([]int, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		tick, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, nil, fmt.Errorf("series row %d: %w", i, err)
		}
		ticks = append(ticks, tick)

		for j := 1; j < len(record) && j < len(header); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("series row %d, column %s: %w", i, header[j], err)
			}
			series[header[j]] = append(series[header[j]], val)
		}
	}

	return ticks, series, nil
}

// LoadParticles reads the final particle state of a run.
func (s *Store) LoadParticles(runID string) ([]swarm.Particle, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, particlesFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []swarm.Particle{}, nil
	}

	ps := make([]swarm.Particle, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 4 {
			return nil, fmt.Errorf("particles row %d: expected 4 fields, got %d", i, len(record))
		}

		var vals [4]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("particles row %d: %w", i, err)
			}
			vals[j] = v
		}
		ps = append(ps, swarm.Particle{X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3]})
	}

	return ps, nil
}
