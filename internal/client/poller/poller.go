// Package poller refreshes a view on a fixed interval without ever having
// two fetches in flight at once.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/tabz/internal/logging"
)

// Poller runs Fetch on every tick. A tick that arrives while the previous
// fetch is still outstanding is skipped. Once the poller is stopped or its
// Run context is done, results that arrive late are dropped instead of being
// delivered; the fetch itself is left to finish.
type Poller[T any] struct {
	interval time.Duration
	fetch    func(ctx context.Context) (T, error)
	deliver  func(T, error)
	log      logging.Logger

	inFlight atomic.Bool
	stopped  atomic.Bool
	wg       sync.WaitGroup
}

func New[T any](interval time.Duration, fetch func(ctx context.Context) (T, error), deliver func(T, error), log logging.Logger) *Poller[T] {
	if log == nil {
		log = logging.Nop()
	}
	return &Poller[T]{
		interval: interval,
		fetch:    fetch,
		deliver:  deliver,
		log:      log.With("component", "poller"),
	}
}

// Trigger runs one fetch unless another is already in flight, and reports
// whether it ran. It blocks until the fetch returns.
func (p *Poller[T]) Trigger(ctx context.Context) bool {
	if p.stopped.Load() || ctx.Err() != nil {
		return false
	}
	if !p.inFlight.CompareAndSwap(false, true) {
		p.log.Debug(ctx, "fetch already in flight; skipping")
		return false
	}
	p.wg.Add(1)
	defer func() {
		p.inFlight.Store(false)
		p.wg.Done()
	}()

	v, err := p.fetch(context.WithoutCancel(ctx))

	if p.stopped.Load() || ctx.Err() != nil {
		p.log.Debug(ctx, "dropping stale poll result")
		return true
	}
	if p.deliver != nil {
		p.deliver(v, err)
	}
	return true
}

// Run triggers once immediately and then on every tick until ctx is done.
// Ticks never block on a slow fetch.
func (p *Poller[T]) Run(ctx context.Context) {
	go p.Trigger(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			go p.Trigger(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Stop makes the poller drop any result still to come and ignore further
// triggers.
func (p *Poller[T]) Stop() {
	p.stopped.Store(true)
}

func (p *Poller[T]) InFlight() bool {
	return p.inFlight.Load()
}

// Wait blocks until no fetch is running.
func (p *Poller[T]) Wait() {
	p.wg.Wait()
}
