package sim

import "sync"

// FramePool recycles position buffers of a fixed population size.
type FramePool struct {
	pool sync.Pool
	size int
}

func NewFramePool(entities int) *FramePool {
	size := entities * 2
	return &FramePool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float64, 0, size)
			},
		},
	}
}

// Get returns an empty buffer with room for one frame.
func (p *FramePool) Get() []float64 {
	return p.pool.Get().([]float64)[:0]
}

func (p *FramePool) Put(f []float64) {
	if cap(f) == p.size {
		p.pool.Put(f[:0])
	}
}
