// Package output assembles and persists the wallet report for a finished
// search, in plain-text or JSON form.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/solvanity/internal/ui"
	"github.com/solvanity/pkg/search"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Record is everything worth persisting about a generated wallet.
type Record struct {
	Mnemonic  string
	PublicKey string
	SecretKey string
	Keypair   []byte
	Stats     search.Stats
	Expected  uint64
}

// jsonRecord is the wire layout of the JSON report.
type jsonRecord struct {
	Mnemonic   string    `json:"mnemonic"`
	PublicKey  string    `json:"public_key"`
	SecretKey  string    `json:"secret_key"`
	Keypair    []int     `json:"keypair_json"`
	Statistics jsonStats `json:"statistics"`
}

type jsonStats struct {
	Iterations          uint64  `json:"iterations"`
	ElapsedSeconds      float64 `json:"elapsed_seconds"`
	IterationsPerSecond float64 `json:"iterations_per_second"`
	ExpectedIterations  uint64  `json:"expected_iterations"`
	LuckFactor          float64 `json:"luck_factor"`
}

// keypairArrayRe matches the indented keypair byte array so it can be
// collapsed onto one line; a 64-element array pretty-printed one byte per
// line is unreadable.
var keypairArrayRe = regexp.MustCompile(`(?s)"keypair_json": \[\s*([0-9,\s]+)\]`)

// JSON renders the record as indented JSON with the keypair array compacted
// onto a single line.
func (r *Record) JSON() ([]byte, error) {
	rec := jsonRecord{
		Mnemonic:  r.Mnemonic,
		PublicKey: r.PublicKey,
		SecretKey: r.SecretKey,
		Keypair:   bytesToInts(r.Keypair),
		Statistics: jsonStats{
			Iterations:          r.Stats.Iterations,
			ElapsedSeconds:      r.Stats.Elapsed.Seconds(),
			IterationsPerSecond: r.Stats.Rate(),
			ExpectedIterations:  r.Expected,
			LuckFactor:          search.LuckFactor(r.Expected, r.Stats.Iterations),
		},
	}

	pretty, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("output: marshal record: %w", err)
	}
	return compactKeypairArray(pretty), nil
}

// Text renders the record as the human-readable report.
func (r *Record) Text() string {
	var b strings.Builder
	b.WriteString("Solana Vanity Wallet Generated\n")
	b.WriteString("==============================\n")
	if r.Mnemonic != "" {
		fmt.Fprintf(&b, "Mnemonic: %s\n", r.Mnemonic)
	}
	fmt.Fprintf(&b, "Public Key: %s\n", r.PublicKey)
	fmt.Fprintf(&b, "Secret Key: %s\n", r.SecretKey)
	fmt.Fprintf(&b, "Keypair JSON: %s\n", formatByteArray(r.Keypair))
	b.WriteString("\nStatistics:\n")
	b.WriteString("-----------\n")
	fmt.Fprintf(&b, "Total iterations: %s\n", ui.FormatNumber(r.Stats.Iterations))
	fmt.Fprintf(&b, "Time elapsed: %s\n", ui.FormatDuration(r.Stats.Elapsed))
	fmt.Fprintf(&b, "Average rate: %s\n", ui.FormatRate(r.Stats.Rate()))
	fmt.Fprintf(&b, "Expected iterations: %s\n", ui.FormatNumber(r.Expected))
	luck := search.LuckFactor(r.Expected, r.Stats.Iterations)
	word := "worse"
	if luck >= 1 {
		word = "better"
	}
	fmt.Fprintf(&b, "Luck factor: %.2fx %s than expected\n", luck, word)
	return b.String()
}

// Write saves the record under dir, named after the first characters of the
// address (e.g. output/So1abcdefg_output.json). Returns the written path.
func (r *Record) Write(dir string, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("output: create directory: %w", err)
	}

	stem := r.PublicKey
	if len(stem) > 10 {
		stem = stem[:10]
	}

	var name string
	var data []byte
	switch format {
	case FormatJSON:
		name = stem + "_output.json"
		var err error
		if data, err = r.JSON(); err != nil {
			return "", err
		}
	default:
		name = stem + "_output.txt"
		data = []byte(r.Text())
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}
	return path, nil
}

func compactKeypairArray(pretty []byte) []byte {
	return keypairArrayRe.ReplaceAllFunc(pretty, func(m []byte) []byte {
		fields := strings.Split(string(keypairArrayRe.FindSubmatch(m)[1]), ",")
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
		}
		return []byte(`"keypair_json": [` + strings.Join(fields, ", ") + `]`)
	})
}

func formatByteArray(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func bytesToInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}
