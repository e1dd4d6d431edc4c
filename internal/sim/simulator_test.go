package sim

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/swarm"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.ParticleCount = 50
	cfg.Seed = 7
	cfg.Run.Ticks = 20
	return cfg
}

func TestSimulatorRun(t *testing.T) {
	cfg := testConfig()
	s, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	result, err := s.Run(context.Background(), ConfigFrom(cfg))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 20 {
		t.Errorf("expected 20 steps, got %d", result.StepsTaken)
	}
	if len(result.Ticks) != 20 {
		t.Errorf("expected 20 samples, got %d", len(result.Ticks))
	}
	if len(result.Final) != 50 {
		t.Errorf("expected 50 particles, got %d", len(result.Final))
	}
	for _, name := range []string{"kinetic_energy", "spread", "max_speed"} {
		if len(result.Series[name]) != 20 {
			t.Errorf("expected 20 %s samples, got %d", name, len(result.Series[name]))
		}
	}
	if result.Metrics["stability"] != 1 {
		t.Errorf("expected stability 1, got %f", result.Metrics["stability"])
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestSimulatorSampleEvery(t *testing.T) {
	cfg := testConfig()
	cfg.Run.SampleEvery = 5
	s, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	result, err := s.Run(context.Background(), ConfigFrom(cfg))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []int{5, 10, 15, 20}
	if len(result.Ticks) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(result.Ticks))
	}
	for i, tick := range want {
		if result.Ticks[i] != tick {
			t.Errorf("sample %d: expected tick %d, got %d", i, tick, result.Ticks[i])
		}
	}
}

func TestSimulatorDeterministic(t *testing.T) {
	cfg := testConfig()

	run := func() *Result {
		s, err := Build(cfg)
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		r, err := s.Run(context.Background(), ConfigFrom(cfg))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return r
	}

	a, b := run(), run()
	for i := range a.Final {
		if a.Final[i] != b.Final[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a.Final[i], b.Final[i])
		}
	}
}

func TestSimulatorFollowsPath(t *testing.T) {
	cfg := testConfig()
	s, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	result, err := s.Run(context.Background(), ConfigFrom(cfg))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	path, _ := NewPath(cfg.Run.Path, cfg.Viewport(), cfg.Run.Radius)
	want := path.At(cfg.Run.Ticks - 1)
	if result.Target != want {
		t.Errorf("expected target %+v, got %+v", want, result.Target)
	}
}

func TestSimulatorNilPath(t *testing.T) {
	cfg := testConfig()
	driver, err := cfg.NewDriver(nil)
	if err != nil {
		t.Fatalf("driver failed: %v", err)
	}
	start := driver.Attractor().Position()

	s := New(driver, nil)
	result, err := s.Run(context.Background(), ConfigFrom(cfg))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Target != start {
		t.Errorf("expected attractor to stay at %+v, got %+v", start, result.Target)
	}
}

func TestSimulatorCancel(t *testing.T) {
	cfg := testConfig()
	s, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, ConfigFrom(cfg))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.StepsTaken != 0 {
		t.Errorf("expected a partial result with no steps, got %+v", result)
	}
	if len(result.Final) != cfg.ParticleCount {
		t.Errorf("expected final state of %d particles, got %d", cfg.ParticleCount, len(result.Final))
	}
}

type nanPath struct{}

func (nanPath) At(int) swarm.Point { return swarm.Point{X: math.NaN(), Y: 1} }

func TestSimulatorRejectsInvalidPointer(t *testing.T) {
	cfg := testConfig()
	driver, err := cfg.NewDriver(nil)
	if err != nil {
		t.Fatalf("driver failed: %v", err)
	}
	start := driver.Attractor().Position()

	s := New(driver, nanPath{})
	result, err := s.Run(context.Background(), Config{Ticks: 3, Dt: 1, SampleEvery: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 pointer errors, got %d", len(result.Errors))
	}
	if result.Target != start {
		t.Errorf("attractor moved to %+v", result.Target)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s, err := Build(testConfig())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero ticks", Config{Ticks: 0, Dt: 1, SampleEvery: 1}},
		{"zero sample", Config{Ticks: 1, Dt: 1, SampleEvery: 0}},
		{"zero dt", Config{Ticks: 1, Dt: 0, SampleEvery: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

type countingObserver struct{ ticks []int }

func (c *countingObserver) OnTick(_ []swarm.Particle, _ swarm.Point, tick int) {
	c.ticks = append(c.ticks, tick)
}

func TestSimulatorObserver(t *testing.T) {
	cfg := testConfig()
	s, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	obs := &countingObserver{}
	s.AddObserver(obs)

	if _, err := s.Run(context.Background(), Config{Ticks: 4, Dt: 1, SampleEvery: 1}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := []int{1, 2, 3, 4}
	for i := range want {
		if obs.ticks[i] != want[i] {
			t.Errorf("expected tick %d, got %d", want[i], obs.ticks[i])
		}
	}
}

func TestSimulatorRecorder(t *testing.T) {
	cfg := testConfig()
	s, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	s.SetRecorder(NewRecorder(cfg.ParticleCount, 5, 3))

	result, err := s.Run(context.Background(), ConfigFrom(cfg))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(result.Frames))
	}

	last := result.Frames[len(result.Frames)-1]
	for i, p := range result.Final {
		if last[i].X != p.X || last[i].Y != p.Y {
			t.Fatalf("last frame point %d = %+v, want (%f, %f)", i, last[i], p.X, p.Y)
		}
	}
}

func TestBuildUnknownPath(t *testing.T) {
	cfg := testConfig()
	cfg.Run.Path = "spiral"
	if _, err := Build(cfg); err == nil {
		t.Error("expected error for unknown path")
	}
}

func TestEnsemble(t *testing.T) {
	cfg := testConfig()
	e := NewEnsemble(SeededFactory(cfg), 4, 1)

	results, err := e.Run(context.Background(), ConfigFrom(cfg))
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	single, err := SeededFactory(cfg)(3)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	ref, err := single.Run(context.Background(), ConfigFrom(cfg))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i := range ref.Final {
		if ref.Final[i] != results[2].Final[i] {
			t.Fatalf("seed 3 result differs at particle %d", i)
		}
	}
}

func TestEnsembleSkipsZeroSeed(t *testing.T) {
	cfg := testConfig()
	build := SeededFactory(cfg)

	var mu sync.Mutex
	used := map[int64]bool{}
	factory := func(seed int64) (*Simulator, error) {
		mu.Lock()
		used[seed] = true
		mu.Unlock()
		return build(seed)
	}

	e := NewEnsemble(factory, 3, -1)
	want := []int64{-1, 1, 2}
	seeds := e.Seeds()
	if len(seeds) != len(want) {
		t.Fatalf("expected %d seeds, got %v", len(want), seeds)
	}
	for i := range want {
		if seeds[i] != want[i] {
			t.Errorf("seed %d: expected %d, got %d", i, want[i], seeds[i])
		}
	}

	if _, err := e.Run(context.Background(), ConfigFrom(cfg)); err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if used[0] {
		t.Error("seed 0 handed to the factory")
	}
	if len(used) != 3 {
		t.Errorf("expected 3 distinct seeds, got %v", used)
	}
}

func TestEnsembleFactoryError(t *testing.T) {
	cfg := testConfig()
	cfg.ParticleCount = 0
	e := NewEnsemble(SeededFactory(cfg), 2, 1)

	if _, err := e.Run(context.Background(), ConfigFrom(testConfig())); err == nil {
		t.Error("expected error from invalid factory config")
	}
}
