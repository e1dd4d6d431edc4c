package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/sim"
	"github.com/san-kum/swarm/internal/swarm"
)

type ExportData struct {
	Name          string               `json:"name"`
	Integrator    string               `json:"integrator"`
	Seed          int64                `json:"seed"`
	ParticleCount int                  `json:"particle_count"`
	Friction      float64              `json:"friction"`
	Strength      float64              `json:"strength"`
	Path          string               `json:"path"`
	Steps         int                  `json:"steps"`
	Ticks         []int                `json:"ticks"`
	Series        map[string][]float64 `json:"series"`
	Metrics       map[string]float64   `json:"metrics"`
	Target        swarm.Point          `json:"target"`
	Final         []swarm.Particle     `json:"final"`
}

// ExportJSON writes a whole run, final particles included, as indented JSON.
func ExportJSON(w io.Writer, name string, cfg *config.Config, result *sim.Result) error {
	data := ExportData{
		Name:          name,
		Integrator:    cfg.Integrator,
		Seed:          cfg.Seed,
		ParticleCount: cfg.ParticleCount,
		Friction:      cfg.Friction,
		Strength:      cfg.Strength,
		Path:          cfg.Run.Path,
		Steps:         result.StepsTaken,
		Ticks:         result.Ticks,
		Series:        result.Series,
		Metrics:       result.Metrics,
		Target:        result.Target,
		Final:         result.Final,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
