package search

import (
	"errors"
	"testing"
)

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		prefix string
		valid  bool
	}{
		{"A", true},
		{"1", true},
		{"ABC", true},
		{"Sol", true},
		{"123", true},
		{"JAZZ", true},
		{"MyWavvet", true},
		{"", false},
		{"0", false},
		{"O", false},
		{"I", false},
		{"l", false},
		{"_", false},
		{"Test0", false},
		{"ABC_", false},
		{"Sol+", false},
		{" ", false},
		{"A B", false},
		{"A\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			err := ValidatePrefix(tt.prefix)
			if tt.valid && err != nil {
				t.Errorf("ValidatePrefix(%q) = %v, want nil", tt.prefix, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("ValidatePrefix(%q) = nil, want error", tt.prefix)
				}
				if !errors.Is(err, ErrInvalidPrefix) {
					t.Errorf("ValidatePrefix(%q) = %v, want ErrInvalidPrefix", tt.prefix, err)
				}
			}
		})
	}
}

func TestBase58AlphabetCompleteness(t *testing.T) {
	for _, c := range base58Alphabet {
		if err := ValidatePrefix(string(c)); err != nil {
			t.Errorf("character %q should be valid: %v", c, err)
		}
	}
}

func TestInvalidBase58Chars(t *testing.T) {
	got := InvalidBase58Chars("S0l_")
	want := []rune{'0', 'l', '_'}
	if len(got) != len(want) {
		t.Fatalf("InvalidBase58Chars(\"S0l_\") = %q, want %q", string(got), string(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("invalid char %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMatcherMatches(t *testing.T) {
	const address = "So1anaVanityAddre55Examp1e"

	tests := []struct {
		name   string
		prefix string
		want   bool
	}{
		{"single char", "S", true},
		{"multi char", "So1", true},
		{"full address", address, true},
		{"case mismatch", "so1", false},
		{"not a prefix", "anaV", false},
		{"longer than address", address + "XYZ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(tt.prefix)
			if got := m.Matches(address); got != tt.want {
				t.Errorf("Matches(%q) with prefix %q = %v, want %v", address, tt.prefix, got, tt.want)
			}
		})
	}
}
