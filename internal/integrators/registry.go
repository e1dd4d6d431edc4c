package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/swarm/internal/swarm"
)

const Default = "euler"

var registry = map[string]func() swarm.Integrator{
	"euler":  func() swarm.Integrator { return NewEuler() },
	"scaled": func() swarm.Integrator { return NewScaledEuler() },
}

// Lookup returns a fresh integrator by name.
func Lookup(name string) (swarm.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the registered integrators in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
