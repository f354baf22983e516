package rr

import (
	"sync"
	"sync/atomic"
)

// RoundRobin rotates over a hot-swappable target list (webhook egress proxies).
type RoundRobin interface {
	Next() (string, bool)
	Len() int
}

type rr struct {
	targets *atomic.Pointer[[]string]
	mu      *sync.Mutex
	index   *atomic.Uint32
}

func New(targets *atomic.Pointer[[]string]) *rr {
	return &rr{
		targets: targets,
		mu:      &sync.Mutex{},
		index:   new(atomic.Uint32),
	}
}

func (rr *rr) Next() (string, bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	targets := *rr.targets.Load()

	if len(targets) == 0 {
		return "", false
	}

	n := rr.index.Add(1)
	return targets[(int(n)-1)%len(targets)], true
}

func (rr *rr) Len() int {
	return len(*rr.targets.Load())
}
