package main

import (
	"runtime"
	"sync"
)

// Worker bounds for batch rendering.
const (
	MinWorkers = 1
	MaxWorkers = 32
)

// ConverterPool hands out converters for parallel rendering.
// Converters are created lazily on first acquire and reused afterwards.
type ConverterPool struct {
	size    int
	factory func() (CLIConverter, error)
	sem     chan CLIConverter
	mu      sync.Mutex
	created int
	closed  bool
}

// Compile-time check that ConverterPool implements Pool.
var _ Pool = (*ConverterPool)(nil)

// NewConverterPool creates a pool with capacity for n converters built by
// factory.
func NewConverterPool(n int, factory func() (CLIConverter, error)) *ConverterPool {
	if n < MinWorkers {
		n = MinWorkers
	}
	return &ConverterPool{
		size:    n,
		factory: factory,
		sem:     make(chan CLIConverter, n),
	}
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use. Returns nil when creation fails.
func (p *ConverterPool) Acquire() CLIConverter {
	select {
	case c := <-p.sem:
		return c
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		c, err := p.factory()
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil
		}
		return c
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a converter to the pool.
func (p *ConverterPool) Release(c CLIConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed && c != nil {
		p.sem <- c
	}
}

// Close stops the pool from taking converters back.
func (p *ConverterPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.sem)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// resolvePoolSize determines the pool size.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / 2

	if n < MinWorkers {
		return MinWorkers
	}
	if n > 8 {
		return 8
	}
	return n
}
