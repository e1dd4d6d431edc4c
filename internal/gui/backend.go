package gui

import (
	"fmt"
	"sort"

	"github.com/san-kum/swarm/internal/config"
)

const DefaultBackend = "raylib"

var backends = map[string]func(cfg *config.Config) error{
	"raylib": RunRaylib,
	"ebiten": RunEbiten,
}

// Run opens a window with the named backend.
func Run(backend string, cfg *config.Config) error {
	run, ok := backends[backend]
	if !ok {
		return fmt.Errorf("unknown backend: %s (available: %v)", backend, Backends())
	}
	return run(cfg)
}

func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
