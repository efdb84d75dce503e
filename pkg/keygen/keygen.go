// Package keygen produces Solana keypair candidates for the vanity search.
// Two generation strategies are supported: direct random seeds (fast) and
// BIP-39 mnemonic phrases with SLIP-10 derivation (wallet-compatible).
package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
)

// ErrEntropy reports a failing secure random source. This is fatal for the
// process: it signals a broken execution environment, not a transient
// condition worth retrying.
var ErrEntropy = errors.New("entropy source unavailable")

// Mode selects the candidate generation strategy.
type Mode int

const (
	// ModeFast draws the ed25519 seed directly from the system's secure
	// random source. Fastest, but there is no phrase to back up.
	ModeFast Mode = iota

	// ModeMnemonic generates a 12-word BIP-39 phrase and derives the
	// keypair at m/44'/501'/0'/0', so the result can be imported into
	// Phantom, Solflare and other standard wallets.
	ModeMnemonic
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFast:
		return "fast"
	case ModeMnemonic:
		return "mnemonic"
	default:
		return "unknown"
	}
}

// Entropy size for 12-word mnemonics (128 bits + 4 checksum bits = 12 words).
const mnemonicEntropyBytes = 16

// Candidate is a freshly generated keypair and its Base58-encoded address.
// Candidates are created once per search iteration and dropped immediately
// unless they win; secret material must never be written to logs.
type Candidate struct {
	Mnemonic string // empty in fast mode
	Address  string // Base58-encoded public key
	Public   ed25519.PublicKey
	Private  ed25519.PrivateKey
}

// SecretBase58 returns the Base58 encoding of the full 64-byte keypair
// (seed || public key), the format Solana wallets expect.
func (c *Candidate) SecretBase58() string {
	return base58.Encode(c.Private)
}

// KeypairBytes returns the raw 64-byte keypair, matching the JSON array
// layout of Solana CLI keyfiles.
func (c *Candidate) KeypairBytes() []byte {
	out := make([]byte, len(c.Private))
	copy(out, c.Private)
	return out
}

// Generator produces one keypair candidate per call. Implementations never
// fail: entropy exhaustion is treated as a broken environment and panics.
// Generators are stateless and safe for concurrent use from many workers.
type Generator interface {
	Generate() Candidate
}

// New returns the generator for the given mode.
func New(mode Mode) Generator {
	if mode == ModeMnemonic {
		return mnemonicGenerator{}
	}
	return fastGenerator{}
}

// fastGenerator draws 32 random bytes as the ed25519 seed.
type fastGenerator struct{}

func (fastGenerator) Generate() Candidate {
	var seed [ed25519.SeedSize]byte
	mustRead(seed[:])

	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := priv.Public().(ed25519.PublicKey)

	return Candidate{
		Address: base58.Encode(pub),
		Public:  pub,
		Private: priv,
	}
}

// mnemonicGenerator generates a random 12-word phrase and derives the
// keypair through the standard Solana path.
type mnemonicGenerator struct{}

func (mnemonicGenerator) Generate() Candidate {
	entropy := make([]byte, mnemonicEntropyBytes)
	mustRead(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		// Only possible with a malformed entropy length.
		panic(fmt.Sprintf("keygen: mnemonic from entropy: %v", err))
	}

	seed := SeedFromMnemonic(mnemonic, "")
	priv := KeypairFromSeed(DeriveSeed(seed))
	pub := priv.Public().(ed25519.PublicKey)

	return Candidate{
		Mnemonic: mnemonic,
		Address:  base58.Encode(pub),
		Public:   pub,
		Private:  priv,
	}
}

// KeypairFromSeed expands a 32-byte seed into an ed25519 keypair.
func KeypairFromSeed(seed []byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(seed)
}

// SelfCheck verifies the secure random source once, before any workers
// start. A failing source indicates a broken execution environment and is
// not retried.
func SelfCheck() error {
	var probe [ed25519.SeedSize]byte
	if _, err := rand.Read(probe[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return nil
}

// mustRead fills b from the secure random source. Failure mid-search means
// the environment broke underneath us; there is nothing sensible to retry.
func mustRead(b []byte) {
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("keygen: entropy source failed: %v", err))
	}
}
