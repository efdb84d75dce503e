package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/solvanity/pkg/keygen"
)

func TestNewEngineValidation(t *testing.T) {
	_, err := NewEngine(Request{Prefix: "0"})
	if !errors.Is(err, ErrInvalidPrefix) {
		t.Errorf("NewEngine with prefix \"0\" = %v, want ErrInvalidPrefix", err)
	}

	_, err = NewEngine(Request{Prefix: ""})
	if !errors.Is(err, ErrInvalidPrefix) {
		t.Errorf("NewEngine with empty prefix = %v, want ErrInvalidPrefix", err)
	}

	e, err := NewEngine(Request{Prefix: "Sol"})
	if err != nil {
		t.Fatalf("NewEngine with prefix \"Sol\" = %v, want nil", err)
	}
	if got := e.Request().Workers; got != runtime.NumCPU() {
		t.Errorf("default Workers = %d, want %d", got, runtime.NumCPU())
	}
}

func TestSearchFindsMatch(t *testing.T) {
	// A one-character prefix takes ~29 candidates on average, so every
	// worker count finishes near-instantly in fast mode.
	for _, workers := range []int{1, 2, 8, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			engine, err := NewEngine(Request{
				Prefix:  "a",
				Mode:    keygen.ModeFast,
				Workers: workers,
			})
			if err != nil {
				t.Fatal(err)
			}

			outcome, err := engine.Run(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if outcome.Cancelled {
				t.Fatal("search reported cancelled without cancellation")
			}
			if outcome.Candidate == nil {
				t.Fatal("search succeeded but candidate is nil")
			}
			if !strings.HasPrefix(outcome.Candidate.Address, "a") {
				t.Errorf("address %q does not start with prefix", outcome.Candidate.Address)
			}

			stats := outcome.Stats
			if stats.Iterations < 1 {
				t.Errorf("iterations = %d, want >= 1", stats.Iterations)
			}
			if stats.Elapsed <= 0 {
				t.Errorf("elapsed = %v, want > 0", stats.Elapsed)
			}
			rate := stats.Rate()
			if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
				t.Errorf("rate = %v, want finite and positive", rate)
			}
		})
	}
}

func TestSearchMnemonicMode(t *testing.T) {
	engine, err := NewEngine(Request{
		Prefix:  "1",
		Mode:    keygen.ModeMnemonic,
		Workers: 4,
	})
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	cand := outcome.Candidate
	if cand == nil {
		t.Fatal("no candidate returned")
	}
	if !strings.HasPrefix(cand.Address, "1") {
		t.Errorf("address %q does not start with prefix", cand.Address)
	}
	if words := strings.Fields(cand.Mnemonic); len(words) != 12 {
		t.Errorf("mnemonic has %d words, want 12", len(words))
	}
}

func TestTryClaimExactlyOnce(t *testing.T) {
	var slot resultSlot
	var wins atomic.Int32

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if slot.tryClaim(&result{}) {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := wins.Load(); got != 1 {
		t.Errorf("%d claims succeeded, want exactly 1", got)
	}
	if !slot.stopped() {
		t.Error("stop flag not set after successful claim")
	}
	if slot.res.Load() == nil {
		t.Error("result slot empty after successful claim")
	}
}

func TestSnapshotsMonotonic(t *testing.T) {
	// Prefix long enough that the search cannot plausibly finish while we
	// sample.
	engine, err := NewEngine(Request{
		Prefix:  "zzzzzzzz",
		Mode:    keygen.ModeFast,
		Workers: 4,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan *Outcome, 1)
	go func() {
		o, _ := engine.Run(ctx)
		done <- o
	}()

	var prev Stats
	for i := 0; i < 50; i++ {
		s := engine.Stats()
		if s.Iterations < prev.Iterations {
			t.Errorf("iterations went backwards: %d -> %d", prev.Iterations, s.Iterations)
		}
		if s.Elapsed < prev.Elapsed {
			t.Errorf("elapsed went backwards: %v -> %v", prev.Elapsed, s.Elapsed)
		}
		prev = s
		time.Sleep(time.Millisecond)
	}

	cancel()
	outcome := <-done
	if !outcome.Cancelled {
		t.Error("expected cancelled outcome")
	}
}

func TestCancellation(t *testing.T) {
	engine, err := NewEngine(Request{
		Prefix:  "zzzzzzzz",
		Mode:    keygen.ModeFast,
		Workers: 8,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan *Outcome, 1)
	go func() {
		o, _ := engine.Run(ctx)
		done <- o
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	var outcome *Outcome
	select {
	case outcome = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not observe cancellation in time")
	}

	if !outcome.Cancelled {
		t.Fatal("expected cancelled outcome")
	}
	if outcome.Candidate != nil {
		t.Error("cancelled outcome carries a candidate")
	}

	// Run has joined all workers, so the counter must be frozen.
	before := engine.Stats().Iterations
	time.Sleep(50 * time.Millisecond)
	if after := engine.Stats().Iterations; after != before {
		t.Errorf("counter still moving after cancellation: %d -> %d", before, after)
	}
}

func TestEngineSingleUse(t *testing.T) {
	engine, err := NewEngine(Request{
		Prefix:  "1",
		Mode:    keygen.ModeFast,
		Workers: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := engine.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Run(context.Background()); !errors.Is(err, ErrSearchDone) {
		t.Errorf("second Run = %v, want ErrSearchDone", err)
	}
}
