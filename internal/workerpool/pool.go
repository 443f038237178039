// Package workerpool implements the fixed-size background worker pool
// of section 4.8, which the Renderer creates per call for its row
// bands, and the pass barrier used by the multithreaded renderer
// (section 4.2).
package workerpool

import (
	"runtime"
	"sync"
)

// job is a single unit of queued work.
type job struct {
	fn   func(arg interface{})
	arg  interface{}
	done func()
}

// Pool is a fixed-size FIFO worker pool. Jobs never cancel once queued;
// the pool has no cancellation support, matching section 4.8.
type Pool struct {
	jobs    chan job
	wg      sync.WaitGroup
	workers int
}

// New starts a pool with n workers. n <= 0 is coerced to
// max(1, runtime.NumCPU()-1), the default sizing rule of section 4.8.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU() - 1
		if n < 1 {
			n = 1
		}
	}
	p := &Pool{
		jobs:    make(chan job, 64),
		workers: n,
	}
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

func (p *Pool) loop() {
	for j := range p.jobs {
		j.fn(j.arg)
		if j.done != nil {
			j.done()
		}
		p.wg.Done()
	}
}

// Add enqueues fn(arg) to run on a worker goroutine. Jobs run in FIFO
// order relative to other queued jobs.
func (p *Pool) Add(fn func(arg interface{}), arg interface{}) {
	p.wg.Add(1)
	p.jobs <- job{fn: fn, arg: arg}
}

// WaitAll blocks until every job enqueued so far has completed.
func (p *Pool) WaitAll() {
	p.wg.Wait()
}

// Threads returns the number of worker goroutines in the pool.
func (p *Pool) Threads() int {
	return p.workers
}

// Close shuts the pool down. Queued jobs that have not yet started are
// still run; Close does not cancel in-flight work.
func (p *Pool) Close() {
	close(p.jobs)
}
