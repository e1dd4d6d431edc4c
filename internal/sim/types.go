package sim

import (
	"fmt"

	"github.com/san-kum/swarm/internal/swarm"
)

type Metric interface {
	Name() string
	Observe(ps []swarm.Particle, target swarm.Point, tick int)
	Value() float64
	Reset()
}

// Sampler is implemented by metrics that can report the value at the most
// recently observed tick. Only samplers end up in Result.Series.
type Sampler interface {
	Current() float64
}

type Observer interface {
	OnTick(ps []swarm.Particle, target swarm.Point, tick int)
}

type Config struct {
	Ticks         int
	Dt            float64
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:         600,
		Dt:            1 / swarm.DefaultTickRate,
		SampleEvery:   1,
		ValidateState: true,
	}
}

type Result struct {
	Ticks      []int
	Series     map[string][]float64
	Metrics    map[string]float64
	Final      []swarm.Particle
	Target     swarm.Point
	Frames     [][]swarm.Point
	StepsTaken int
	Errors     []error
}

type SimError struct {
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}
