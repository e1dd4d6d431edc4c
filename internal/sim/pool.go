package sim

import (
	"sync"

	"github.com/san-kum/swarm/internal/swarm"
)

// PointPool recycles snapshot buffers of a fixed length.
type PointPool struct {
	pool sync.Pool
	size int
}

func NewPointPool(n int) *PointPool {
	return &PointPool{
		size: n,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]swarm.Point, n)
			},
		},
	}
}

func (p *PointPool) Get() []swarm.Point {
	return p.pool.Get().([]swarm.Point)
}

func (p *PointPool) Put(pts []swarm.Point) {
	if len(pts) == p.size {
		for i := range pts {
			pts[i] = swarm.Point{}
		}
		p.pool.Put(pts)
	}
}

func (p *PointPool) GetAndCopy(src []swarm.Point) []swarm.Point {
	dst := p.Get()
	copy(dst, src)
	return dst
}
