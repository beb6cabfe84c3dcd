// Package memory provides the typed object pool the order book draws
// its Order allocations from, so steady-state add/cancel churn does not
// allocate.
package memory

import "sync"

// Pool is a typed object pool.
type Pool[T any] struct {
	p *sync.Pool
}

func NewPool[T any](ctor func() *T) *Pool[T] {
	return &Pool[T]{
		p: &sync.Pool{
			New: func() any { return ctor() },
		},
	}
}

func (p *Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

// Put returns an object to the pool. The caller must not retain v.
func (p *Pool[T]) Put(v *T) {
	p.p.Put(v)
}
