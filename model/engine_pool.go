package model

import "sync"

// EngineToPool returns an engine to the pool for reuse, or releases its
// buffers when pooling is off
func EngineToPool(e *Engine, pool *EnginePool) {
	if e == nil {
		return
	}
	if pool == nil {
		e.Close()
		return
	}

	pool.Put(e)
}

// EnginePool recycles engine buffers across restarts
type EnginePool struct {
	pool sync.Pool
}

func NewEnginePool() *EnginePool {
	return &EnginePool{}
}

// Get retrieves a cleared engine with the given dimensions, allocating one if
// the pool has nothing of that size
func (p *EnginePool) Get(width, height int) (*Engine, error) {
	if e, ok := p.pool.Get().(*Engine); ok && e.width == width && e.height == height {
		return e, nil
	}
	return NewEngine(width, height)
}

// Put returns an engine to the pool, clearing its state
func (p *EnginePool) Put(e *Engine) {
	e.Clear()
	p.pool.Put(e)
}
