package buffer

import "sync"

// Scratch is a reusable float64 work area handed out by Pool.
type Scratch struct {
	samples []float64
}

// Samples returns the scratch slice.
func (s *Scratch) Samples() []float64 {
	return s.samples
}

// Pool provides sync.Pool-based scratch reuse for frame-by-frame analysis.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Scratch{}
			},
		},
	}
}

// Get returns zeroed scratch space of the requested length.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) *Scratch {
	if length < 0 {
		length = 0
	}

	s := p.pool.Get().(*Scratch)
	if cap(s.samples) >= length {
		s.samples = s.samples[:length]
	} else {
		s.samples = make([]float64, length)
	}

	for i := range s.samples {
		s.samples[i] = 0
	}

	return s
}

// Put returns scratch space to the pool.
// The caller must not use it after calling Put.
func (p *Pool) Put(s *Scratch) {
	if s == nil {
		return
	}

	p.pool.Put(s)
}
