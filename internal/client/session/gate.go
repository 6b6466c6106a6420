package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// GateState is the lifecycle of a hydration Gate.
type GateState int32

const (
	GatePending GateState = iota
	GateReleasedByHydration
	GateReleasedByTimeout
)

func (s GateState) String() string {
	switch s {
	case GatePending:
		return "pending"
	case GateReleasedByHydration:
		return "hydrated"
	case GateReleasedByTimeout:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Gate is a one-shot barrier. It starts pending and is released exactly once
// by whichever producer calls Release first; every waiter, present or
// future, then proceeds.
type Gate struct {
	once  sync.Once
	done  chan struct{}
	state atomic.Int32
}

func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Release moves the gate out of the pending state. It reports whether this
// call was the one that released it.
func (g *Gate) Release(state GateState) bool {
	if state == GatePending {
		return false
	}
	released := false
	g.once.Do(func() {
		g.state.Store(int32(state))
		close(g.done)
		released = true
	})
	return released
}

// Done is closed once the gate is released.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

func (g *Gate) State() GateState {
	return GateState(g.state.Load())
}

// Wait blocks until the gate is released or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ArmTimeout races a timer against the other producers: if the gate is
// still pending after d it is released with GateReleasedByTimeout. A
// non-positive d arms nothing, leaving waiters blocked until Release.
func (g *Gate) ArmTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			g.Release(GateReleasedByTimeout)
		case <-g.done:
		}
	}()
}
