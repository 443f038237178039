package workerpool

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllJobs(t *testing.T) {
	p := New(4)
	defer p.Close()

	var count int64
	const n = 200
	for i := 0; i < n; i++ {
		p.Add(func(arg interface{}) {
			atomic.AddInt64(&count, 1)
		}, nil)
	}
	p.WaitAll()

	if got := atomic.LoadInt64(&count); got != n {
		t.Fatalf("ran %d jobs, want %d", got, n)
	}
}

func TestPoolThreadsDefaultsToAtLeastOne(t *testing.T) {
	p := New(0)
	defer p.Close()
	if p.Threads() < 1 {
		t.Fatalf("Threads() = %d, want >= 1", p.Threads())
	}
}

func TestPoolPassesArg(t *testing.T) {
	p := New(2)
	defer p.Close()

	results := make(chan int, 1)
	p.Add(func(arg interface{}) {
		results <- arg.(int) * 2
	}, 21)
	p.WaitAll()
	if got := <-results; got != 42 {
		t.Fatalf("arg not passed through: got %d, want 42", got)
	}
}
