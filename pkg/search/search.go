// Package search implements the parallel brute-force engine for Solana
// vanity addresses. A fixed pool of workers generates candidate keypairs
// until one matches the requested prefix or the caller cancels; exactly one
// result is ever produced per search.
package search

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/solvanity/pkg/keygen"
)

// Workers flush their local iteration count into the shared counter at this
// interval to keep contention on the atomic low.
const flushInterval = 256

// Engine states.
const (
	stateIdle int32 = iota
	stateRunning
	stateSucceeded
	stateCancelled
)

// ErrSearchDone is returned when Run is called on an engine that already
// ran. A finished search is not reusable; create a new Engine instead.
var ErrSearchDone = errors.New("search already run")

// Request describes one vanity search. It is immutable once Run starts.
type Request struct {
	Prefix  string      // desired Base58 address prefix, case-sensitive
	Mode    keygen.Mode // candidate generation strategy
	Workers int         // worker goroutines; defaults to runtime.NumCPU()
}

// Outcome is the terminal state of a search: either exactly one winning
// candidate, or a cancellation with the statistics accumulated so far.
type Outcome struct {
	Candidate *keygen.Candidate // nil when cancelled
	Stats     Stats             // snapshot taken at the moment of the claim
	Cancelled bool
}

// result pairs the winning candidate with the stats at claim time, so both
// become visible to other workers in a single atomic publication.
type result struct {
	cand  keygen.Candidate
	stats Stats
}

// resultSlot holds at most one winning result plus the cooperative stop
// flag. The compare-and-swap on the pointer is the single claim primitive:
// whichever worker wins the CAS owns the search result, and it sets the stop
// flag as part of the same claim. The flag is never unset.
type resultSlot struct {
	res  atomic.Pointer[result]
	stop atomic.Bool
}

// tryClaim installs r as the final result. Exactly one caller among all
// concurrent callers receives true; everyone else must discard their
// candidate. Ties between simultaneous matches resolve to whichever CAS the
// hardware orders first.
func (s *resultSlot) tryClaim(r *result) bool {
	if !s.res.CompareAndSwap(nil, r) {
		return false
	}
	s.stop.Store(true)
	return true
}

// stopped reports whether a result was claimed or cancellation was relayed.
func (s *resultSlot) stopped() bool {
	return s.stop.Load()
}

// Engine runs a single vanity search. All shared mutable state (iteration
// counter, stop flag, result slot) lives on the engine, so independent
// searches never interfere.
type Engine struct {
	req     Request
	gen     keygen.Generator
	matcher *Matcher

	state atomic.Int32
	iters atomic.Uint64
	start atomic.Int64 // unix nanos; 0 until Run begins
	slot  resultSlot
}

// NewEngine validates the request and prepares an engine. The prefix is
// checked once, before any worker starts.
func NewEngine(req Request) (*Engine, error) {
	if err := ValidatePrefix(req.Prefix); err != nil {
		return nil, err
	}
	if req.Workers <= 0 {
		req.Workers = runtime.NumCPU()
	}
	return &Engine{
		req:     req,
		gen:     keygen.New(req.Mode),
		matcher: NewMatcher(req.Prefix),
	}, nil
}

// Request returns the search request, with defaults applied.
func (e *Engine) Request() Request {
	return e.req
}

// Stats returns a consistent snapshot of the shared counters. Safe to call
// concurrently with running workers; the count never decreases across
// successive snapshots.
func (e *Engine) Stats() Stats {
	started := e.start.Load()
	if started == 0 {
		return Stats{}
	}
	return Stats{
		Iterations: e.iters.Load(),
		Elapsed:    time.Since(time.Unix(0, started)),
	}
}

// Run performs the search, blocking until a candidate is claimed or ctx is
// cancelled. All workers are joined before Run returns. The engine is
// single-use: a second call returns ErrSearchDone.
func (e *Engine) Run(ctx context.Context) (*Outcome, error) {
	if !e.state.CompareAndSwap(stateIdle, stateRunning) {
		return nil, ErrSearchDone
	}

	// Probe the entropy source once up front; a broken source fails the
	// whole request rather than every iteration.
	if err := keygen.SelfCheck(); err != nil {
		return nil, err
	}

	e.start.Store(time.Now().UnixNano())

	var pool errgroup.Group
	for i := 0; i < e.req.Workers; i++ {
		pool.Go(func() error {
			e.worker(ctx)
			return nil
		})
	}
	// The only blocking point: wait for every worker to observe termination.
	_ = pool.Wait()

	res := e.slot.res.Load()
	if res == nil {
		e.state.Store(stateCancelled)
		return &Outcome{Cancelled: true, Stats: e.Stats()}, nil
	}
	e.state.Store(stateSucceeded)
	return &Outcome{Candidate: &res.cand, Stats: res.stats}, nil
}

// worker is the hot loop: generate, count, match, claim. It exits once a
// result is claimed (by itself or a peer) or the context is cancelled.
func (e *Engine) worker(ctx context.Context) {
	var local uint64
	defer func() {
		if local > 0 {
			e.iters.Add(local)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if e.slot.stopped() {
			return
		}

		cand := e.gen.Generate()
		local++
		if local >= flushInterval {
			e.iters.Add(local)
			local = 0
		}

		if !e.matcher.Matches(cand.Address) {
			continue
		}

		// Flush before snapshotting so the final count includes this
		// worker's batch.
		e.iters.Add(local)
		local = 0
		e.slot.tryClaim(&result{cand: cand, stats: e.Stats()})
		return
	}
}
