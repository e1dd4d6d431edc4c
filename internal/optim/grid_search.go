package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/sim"
)

// setters name the config fields a search may vary.
var setters = map[string]func(c *config.Config, v float64){
	"friction":       func(c *config.Config, v float64) { c.Friction = v },
	"strength":       func(c *config.Config, v float64) { c.Strength = v },
	"particle_count": func(c *config.Config, v float64) { c.ParticleCount = int(v) },
	"tick_rate":      func(c *config.Config, v float64) { c.TickRate = v },
	"radius":         func(c *config.Config, v float64) { c.Run.Radius = v },
}

func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns a copy of base with params set.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range params {
		set, ok := setters[name]
		if !ok {
			return nil, fmt.Errorf("unknown parameter: %s (available: %v)", name, ParamNames())
		}
		set(cfg, v)
	}
	return cfg, nil
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// GridSearch evaluates every combination of the given parameter values
// with a headless run and keeps the one minimising a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	trials     []Trial
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs the grid on top of base. Invalid combinations are recorded
// as failed trials and skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("got %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	for _, name := range g.paramNames {
		if _, ok := setters[name]; !ok {
			return nil, 0, fmt.Errorf("unknown parameter: %s (available: %v)", name, ParamNames())
		}
	}

	g.trials = g.trials[:0]
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, &best, &bestParams); err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("no valid grid point for metric %s", metricName)
	}

	return bestParams, best, nil
}

// Trials returns every evaluated point of the last search, in grid order.
func (g *GridSearch) Trials() []Trial {
	return g.trials
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := g.evaluate(ctx, current, base, metricName)
		g.trials = append(g.trials, Trial{Params: current, Value: val, Err: err})
		if err != nil {
			return nil
		}

		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, params map[string]float64, base *config.Config, metricName string) (float64, error) {
	cfg, err := Apply(base, params)
	if err != nil {
		return 0, err
	}
	s, err := sim.Build(cfg)
	if err != nil {
		return 0, err
	}
	result, err := s.Run(ctx, sim.ConfigFrom(cfg))
	if err != nil {
		return 0, err
	}
	val, ok := result.Metrics[metricName]
	if !ok {
		return 0, fmt.Errorf("unknown metric: %s", metricName)
	}
	return val, nil
}
