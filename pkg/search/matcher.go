package search

import (
	"errors"
	"fmt"
	"strings"
)

// Base58 alphabet (Bitcoin/Solana style - excludes 0, O, I, l)
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ErrInvalidPrefix is returned when a requested prefix is empty or contains
// characters outside the Base58 alphabet.
var ErrInvalidPrefix = errors.New("invalid Base58 prefix")

// Matcher tests whether a candidate address carries the target prefix.
// Solana addresses are Base58-encoded and case-sensitive.
type Matcher struct {
	prefix string
}

// NewMatcher creates a matcher for the given prefix. The prefix must already
// be validated; matching itself never fails.
func NewMatcher(prefix string) *Matcher {
	return &Matcher{prefix: prefix}
}

// Matches reports whether the address starts with the target prefix.
// This is a literal, case-sensitive byte comparison with no side effects.
func (m *Matcher) Matches(address string) bool {
	return strings.HasPrefix(address, m.prefix)
}

// ValidatePrefix checks that a prefix is non-empty and contains only valid
// Base58 characters. Invalid characters are listed in the error to help the
// user correct their input.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("%w: prefix is empty", ErrInvalidPrefix)
	}
	if invalid := InvalidBase58Chars(prefix); len(invalid) > 0 {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidPrefix, prefix, string(invalid))
	}
	return nil
}

// InvalidBase58Chars returns any characters of s outside the Base58 alphabet.
// Base58 excludes: 0 (zero), O (uppercase o), I (uppercase i), l (lowercase L)
func InvalidBase58Chars(s string) []rune {
	var invalid []rune
	for _, c := range s {
		if !strings.ContainsRune(base58Alphabet, c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}
