package metrics

import "github.com/san-kum/swarm/internal/swarm"

// KineticEnergy tracks the mean per-particle kinetic energy ½|v|² (unit mass).
type KineticEnergy struct {
	name    string
	current float64
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(ps []swarm.Particle, target swarm.Point, tick int) {
	if len(ps) == 0 {
		return
	}
	sum := 0.0
	for _, p := range ps {
		sum += 0.5 * (p.VX*p.VX + p.VY*p.VY)
	}
	k.current = sum / float64(len(ps))
	k.total += k.current
	k.samples++
}

func (k *KineticEnergy) Current() float64 { return k.current }

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.current = 0
	k.total = 0
	k.samples = 0
}
