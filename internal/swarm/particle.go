package swarm

import (
	"math"
	"math/rand"
	"time"
)

// Particle is a point with a velocity. It has no identity beyond its index.
type Particle struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// IsValid reports whether every field is finite.
func (p Particle) IsValid() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.VX) && isFinite(p.VY)
}

// Speed returns the velocity magnitude.
func (p Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// Point is a position in simulation space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned spawn area. Left < Right and Bottom < Top.
type Rect struct {
	Left   float64 `yaml:"left" json:"left"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Top    float64 `yaml:"top" json:"top"`
}

// Viewport returns the rectangle covering a w×h screen anchored at the origin.
func Viewport(w, h float64) Rect {
	return Rect{Left: 0, Right: w, Bottom: 0, Top: h}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// IsZero reports whether the rectangle was left unset.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Empty reports whether the rectangle has no area or non-finite edges.
func (r Rect) Empty() bool {
	if !isFinite(r.Left) || !isFinite(r.Right) || !isFinite(r.Bottom) || !isFinite(r.Top) {
		return true
	}
	return r.Right <= r.Left || r.Top <= r.Bottom
}

// Contains reports whether (x, y) lies in the half-open rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right && y >= r.Bottom && y < r.Top
}

// Center returns the middle of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Bottom + r.Top) / 2}
}

// Spawn returns n particles placed uniformly in bounds with zero velocity.
func Spawn(n int, bounds Rect, rng *rand.Rand) []Particle {
	if n < 0 {
		n = 0
	}
	ps := make([]Particle, n)
	for i := range ps {
		ps[i].X = uniform(rng, bounds.Left, bounds.Right)
		ps[i].Y = uniform(rng, bounds.Bottom, bounds.Top)
	}
	return ps
}

// uniform draws from [lo, hi). Rounding in lo+f*(hi-lo) can land on hi, so the
// result is clamped below it.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	v := lo + rng.Float64()*(hi-lo)
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	return v
}

// NewRand returns a source for seed, or a time-seeded one when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Store owns the particle population. Its length never changes after
// construction and particles are never reordered.
type Store struct {
	particles []Particle
	bounds    Rect
}

// NewStore spawns n particles inside bounds.
func NewStore(n int, bounds Rect, rng *rand.Rand) *Store {
	return &Store{
		particles: Spawn(n, bounds, rng),
		bounds:    bounds,
	}
}

// StoreFrom wraps an existing slice. The store takes ownership of ps.
func StoreFrom(ps []Particle) *Store {
	return &Store{particles: ps}
}

func (s *Store) Len() int { return len(s.particles) }

// Bounds returns the spawn rectangle, zero for stores built with StoreFrom.
func (s *Store) Bounds() Rect { return s.bounds }

// Particles exposes the backing slice for in-place integration.
func (s *Store) Particles() []Particle { return s.particles }

// At returns a copy of the i-th particle.
func (s *Store) At(i int) Particle { return s.particles[i] }

// Positions writes every position into dst, reusing its capacity, and
// returns it. Order matches the store.
func (s *Store) Positions(dst []Point) []Point {
	if cap(dst) < len(s.particles) {
		dst = make([]Point, len(s.particles))
	}
	dst = dst[:len(s.particles)]
	for i, p := range s.particles {
		dst[i] = Point{X: p.X, Y: p.Y}
	}
	return dst
}

// Clone returns a deep copy of the particle slice.
func (s *Store) Clone() []Particle {
	c := make([]Particle, len(s.particles))
	copy(c, s.particles)
	return c
}

// Respawn refills the store in place from rng, keeping its length.
func (s *Store) Respawn(rng *rand.Rand) {
	for i := range s.particles {
		s.particles[i] = Particle{
			X: uniform(rng, s.bounds.Left, s.bounds.Right),
			Y: uniform(rng, s.bounds.Bottom, s.bounds.Top),
		}
	}
}

// IsValid reports whether every particle is finite.
func (s *Store) IsValid() bool {
	for _, p := range s.particles {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
