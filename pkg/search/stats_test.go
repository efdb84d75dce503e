package search

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestExpectedIterations(t *testing.T) {
	tests := []struct {
		prefix string
		want   uint64
	}{
		{"A", 29},      // 58/2
		{"AB", 1682},   // 58^2/2
		{"ABC", 97556}, // 58^3/2
	}

	for _, tt := range tests {
		if got := ExpectedIterations(tt.prefix); got != tt.want {
			t.Errorf("ExpectedIterations(%q) = %d, want %d", tt.prefix, got, tt.want)
		}
	}
}

func TestDifficulty(t *testing.T) {
	if got := Difficulty(""); got != 1 {
		t.Errorf("Difficulty(\"\") = %d, want 1", got)
	}
	if got := Difficulty("A"); got != 58 {
		t.Errorf("Difficulty(\"A\") = %d, want 58", got)
	}

	// 58^11 overflows uint64; long prefixes must saturate, not wrap.
	long := strings.Repeat("A", 40)
	if got := Difficulty(long); got != math.MaxUint64 {
		t.Errorf("Difficulty(long prefix) = %d, want MaxUint64", got)
	}
	if got := ExpectedIterations(long); got != math.MaxUint64 {
		t.Errorf("ExpectedIterations(long prefix) = %d, want MaxUint64", got)
	}
}

func TestStatsRate(t *testing.T) {
	s := Stats{Iterations: 100, Elapsed: 2 * time.Second}
	if got := s.Rate(); got != 50 {
		t.Errorf("Rate() = %v, want 50", got)
	}

	zero := Stats{Iterations: 100}
	if got := zero.Rate(); got != 0 {
		t.Errorf("Rate() with zero elapsed = %v, want 0", got)
	}
}

func TestLuckFactor(t *testing.T) {
	if got := LuckFactor(100, 50); got != 2 {
		t.Errorf("LuckFactor(100, 50) = %v, want 2", got)
	}
	if got := LuckFactor(100, 200); got != 0.5 {
		t.Errorf("LuckFactor(100, 200) = %v, want 0.5", got)
	}
	if got := LuckFactor(100, 0); got != 0 {
		t.Errorf("LuckFactor(100, 0) = %v, want 0", got)
	}
}
