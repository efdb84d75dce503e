package search

import (
	"math"
	"time"
)

// Stats is a point-in-time view of search progress. Iterations may slightly
// undercount in-flight work (workers flush local batches), but successive
// snapshots never go backwards.
type Stats struct {
	Iterations uint64
	Elapsed    time.Duration
}

// Rate returns iterations per second, or 0 before any time has elapsed.
func (s Stats) Rate() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Iterations) / secs
}

// Difficulty returns 58^len(prefix), the size of the search space per prefix
// character. Saturates at MaxUint64 for prefixes too long to represent.
func Difficulty(prefix string) uint64 {
	difficulty := uint64(1)
	for range prefix {
		if difficulty > math.MaxUint64/58 {
			return math.MaxUint64
		}
		difficulty *= 58
	}
	return difficulty
}

// ExpectedIterations returns the average number of candidates needed to hit
// the prefix: half the difficulty.
func ExpectedIterations(prefix string) uint64 {
	d := Difficulty(prefix)
	if d == math.MaxUint64 {
		return d
	}
	return d / 2
}

// LuckFactor compares expected work against actual work at success time.
// Values above 1 mean the search finished sooner than expected.
func LuckFactor(expected, actual uint64) float64 {
	if actual == 0 {
		return 0
	}
	return float64(expected) / float64(actual)
}
