package main

import (
	"errors"
	"sync"

	pbexport "github.com/alnah/go-playbook-export"
)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() pbexport.DocumentConverter
	Release(pbexport.DocumentConverter)
	Size() int
}

// converterPool manages a pool of document converters for parallel
// processing. Each converter has its own browser instance, enabling
// true parallelism. Converters are created lazily on first acquire to
// avoid startup delay.
type converterPool struct {
	size       int
	factory    func() pbexport.DocumentConverter
	converters []pbexport.DocumentConverter
	sem        chan pbexport.DocumentConverter
	mu         sync.Mutex
	created    int
	closed     bool
}

// newConverterPool creates a pool with capacity for n converters.
func newConverterPool(n int, factory func() pbexport.DocumentConverter) *converterPool {
	if n < 1 {
		n = 1
	}

	return &converterPool{
		size:       n,
		factory:    factory,
		converters: make([]pbexport.DocumentConverter, 0, n),
		sem:        make(chan pbexport.DocumentConverter, n),
	}
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use.
func (p *converterPool) Acquire() pbexport.DocumentConverter {
	// Try to get an existing converter (non-blocking)
	select {
	case conv := <-p.sem:
		return conv
	default:
	}

	// Check if we can create a new converter
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new converter outside the lock
		conv := p.factory()

		p.mu.Lock()
		p.converters = append(p.converters, conv)
		p.mu.Unlock()

		return conv
	}
	p.mu.Unlock()

	// All converters created, wait for one to be released
	return <-p.sem
}

// Release returns a converter to the pool.
// The lock is released before sending to avoid deadlock when channel is full.
func (p *converterPool) Release(conv pbexport.DocumentConverter) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- conv
}

// Close releases all browser resources.
// Returns an aggregated error if multiple converters fail to close.
func (p *converterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	converters := p.converters
	p.mu.Unlock()

	var errs []error
	for _, conv := range converters {
		if err := conv.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *converterPool) Size() int {
	return p.size
}
