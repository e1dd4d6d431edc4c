package sim

import "github.com/san-kum/swarm/internal/swarm"

// Recorder is a presenter that keeps copies of the last Capacity frames,
// capturing one frame every Every ticks.
type Recorder struct {
	pool     *PointPool
	every    int
	capacity int
	seen     int
	frames   [][]swarm.Point
}

func NewRecorder(n, every, capacity int) *Recorder {
	if every < 1 {
		every = 1
	}
	if capacity < 1 {
		capacity = 1
	}
	return &Recorder{
		pool:     NewPointPool(n),
		every:    every,
		capacity: capacity,
		frames:   make([][]swarm.Point, 0, capacity),
	}
}

func (r *Recorder) DrawPoints(req swarm.DrawRequest) {
	r.seen++
	if r.seen%r.every != 0 {
		return
	}
	if len(r.frames) == r.capacity {
		r.pool.Put(r.frames[0])
		copy(r.frames, r.frames[1:])
		r.frames = r.frames[:len(r.frames)-1]
	}
	r.frames = append(r.frames, r.pool.GetAndCopy(req.Points))
}

// Frames returns the captured frames, oldest first.
func (r *Recorder) Frames() [][]swarm.Point {
	return r.frames
}

// Reset returns every frame to the pool.
func (r *Recorder) Reset() {
	for _, f := range r.frames {
		r.pool.Put(f)
	}
	r.frames = r.frames[:0]
	r.seen = 0
}
