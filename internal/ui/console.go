// Package ui renders search progress and results on the terminal. The
// search core never prints; everything user-facing funnels through here.
package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/solvanity/pkg/search"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	label   = color.New(color.FgMagenta, color.Bold)
	value   = color.New(color.FgYellow)
	good    = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	bad     = color.New(color.FgRed, color.Bold)
	dim     = color.New(color.Faint)
)

// PrintBanner shows the program header.
func PrintBanner() {
	fmt.Println()
	heading.Println("🚀 Solana Vanity Wallet Generator")
	heading.Println("==================================")
}

// PrintSearchInfo displays the search parameters before workers start.
func PrintSearchInfo(prefix string, mode string, workers int, expected uint64) {
	fmt.Printf("Prefix: %s\n", value.Sprint(prefix))
	fmt.Printf("Mode: %s\n", mode)
	fmt.Printf("Threads: %d\n", workers)
	fmt.Printf("Expected iterations: %s\n", FormatNumber(expected))
	fmt.Printf("Estimated difficulty: 1 in %s\n", FormatNumber(saturatingDouble(expected)))
	fmt.Println()
}

// Progress renders the periodic one-line status update. It keeps the
// previous sample so each line can show the instantaneous rate alongside
// the overall one.
type Progress struct {
	expected  uint64
	lastCount uint64
	lastAt    time.Time
}

// NewProgress creates a progress reporter for a search with the given
// expected iteration count.
func NewProgress(expected uint64) *Progress {
	return &Progress{expected: expected, lastAt: time.Now()}
}

// Print overwrites the current line with the latest throughput figures.
func (p *Progress) Print(s search.Stats) {
	now := time.Now()
	window := now.Sub(p.lastAt).Seconds()

	instant := 0.0
	if window > 0 && s.Iterations >= p.lastCount {
		instant = float64(s.Iterations-p.lastCount) / window
	}

	progress := 0.0
	if p.expected > 0 {
		progress = float64(s.Iterations) / float64(p.expected) * 100
		if progress > 100 {
			progress = 100
		}
	}

	eta := 0.0
	if rate := s.Rate(); rate > 0 && s.Iterations < p.expected {
		eta = float64(p.expected-s.Iterations) / rate
	}

	fmt.Printf("\r🔍 Iterations: %s | Rate: %s | Progress: %.2f%% | ETA: %s | Elapsed: %s",
		FormatNumber(s.Iterations),
		FormatRate(instant),
		progress,
		FormatDuration(time.Duration(eta*float64(time.Second))),
		FormatDuration(s.Elapsed))

	p.lastCount = s.Iterations
	p.lastAt = now
}

// PrintSuccess shows the winning wallet and its statistics.
func PrintSuccess(mnemonic, address, secret string, stats search.Stats, expected uint64, savedTo string) {
	fmt.Print("\n\n")
	good.Println("🎉 SUCCESS! Vanity wallet generated!")
	good.Println("====================================")
	fmt.Printf("Total iterations: %s\n", FormatNumber(stats.Iterations))
	fmt.Printf("Time elapsed: %s\n", FormatDuration(stats.Elapsed))
	fmt.Printf("Average rate: %s\n", FormatRate(stats.Rate()))
	luck := search.LuckFactor(expected, stats.Iterations)
	fmt.Printf("Luck factor: %.2fx %s than expected\n", luck, luckWord(luck))
	fmt.Println()

	if mnemonic != "" {
		label.Println("📜 MNEMONIC")
		value.Printf("   %s\n\n", mnemonic)
	}
	label.Println("◎ PUBLIC KEY")
	good.Printf("   %s\n\n", address)
	label.Println("🔑 SECRET KEY")
	value.Printf("   %s\n\n", secret)

	if savedTo != "" {
		dim.Printf("Saved to %s\n", savedTo)
	}
	bad.Println("⚠  KEEP YOUR SECRET KEY AND MNEMONIC SECRET!")
}

// PrintCancelled reports an interrupted search.
func PrintCancelled(stats search.Stats) {
	fmt.Print("\n\n")
	warn.Printf("⚠ Cancelled")
	fmt.Printf(" │ %s iterations │ %s\n",
		FormatNumber(stats.Iterations), FormatDuration(stats.Elapsed))
}

// ClearLine clears the progress line before printing results.
func ClearLine() {
	fmt.Print("\r                                                                                              \r")
}

func luckWord(luck float64) string {
	if luck >= 1 {
		return "better"
	}
	return "worse"
}

// saturatingDouble doubles n without wrapping for very long prefixes.
func saturatingDouble(n uint64) uint64 {
	if n > 1<<63-1 {
		return ^uint64(0)
	}
	return n * 2
}
