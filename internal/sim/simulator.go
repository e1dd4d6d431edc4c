package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/swarm/internal/swarm"
)

// Simulator runs a swarm.Driver without a window, moving the pointer along a
// scripted Path.
type Simulator struct {
	driver    *swarm.Driver
	path      Path
	recorder  *Recorder
	metrics   []Metric
	observers []Observer
}

// New wraps driver. A nil path leaves the attractor where it is.
func New(driver *swarm.Driver, path Path) *Simulator {
	return &Simulator{
		driver:    driver,
		path:      path,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetRecorder makes r the driver's presenter so frames are captured.
func (s *Simulator) SetRecorder(r *Recorder) {
	s.recorder = r
	s.driver.SetPresenter(r)
}

func (s *Simulator) Driver() *swarm.Driver { return s.driver }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	samples := cfg.Ticks/cfg.SampleEvery + 1
	result := &Result{
		Ticks:   make([]int, 0, samples),
		Series:  make(map[string][]float64),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	store := s.driver.Store()
	start := s.driver.Ticks()

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		tick := start + i
		if s.path != nil {
			p := s.path.At(tick)
			if err := s.driver.PointerMoved(p.X, p.Y); err != nil {
				result.Errors = append(result.Errors, SimError{Tick: tick, Message: err.Error()})
			}
		}

		s.driver.Tick(cfg.Dt)
		result.StepsTaken++

		ps := store.Particles()
		target := s.driver.Attractor().Position()
		for _, m := range s.metrics {
			m.Observe(ps, target, tick+1)
		}
		for _, obs := range s.observers {
			obs.OnTick(ps, target, tick+1)
		}

		if (i+1)%cfg.SampleEvery == 0 {
			s.sample(result, tick+1)
		}

		if cfg.ValidateState && !store.IsValid() {
			result.Errors = append(result.Errors, SimError{Tick: tick + 1, Message: "invalid state (NaN/Inf)"})
			break
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) sample(result *Result, tick int) {
	result.Ticks = append(result.Ticks, tick)
	for _, m := range s.metrics {
		if sm, ok := m.(Sampler); ok {
			result.Series[m.Name()] = append(result.Series[m.Name()], sm.Current())
		}
	}
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = s.driver.Store().Clone()
	result.Target = s.driver.Attractor().Position()
	if s.recorder != nil {
		result.Frames = s.recorder.Frames()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.SampleEvery < 1 {
		return fmt.Errorf("sample interval must be at least 1, got %d", cfg.SampleEvery)
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	return nil
}
