package keygen

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"golang.org/x/crypto/pbkdf2"
)

// DerivationPath is the BIP-44 path used for Solana wallets. Every index is
// hardened; 501 is Solana's registered coin type.
const DerivationPath = "m/44'/501'/0'/0'"

const (
	hardenedOffset = 0x80000000

	// PBKDF2 parameters from BIP-39: HMAC-SHA512, 2048 rounds, 64-byte seed.
	seedIterations = 2048
	seedBytes      = 64
)

// slip10Key is the HMAC key for the ed25519 curve, per SLIP-0010.
var slip10Key = []byte("ed25519 seed")

// pathIndexes are the (pre-hardening) indexes of DerivationPath.
var pathIndexes = []uint32{44, 501, 0, 0}

// SeedFromMnemonic stretches a mnemonic phrase into a 64-byte binary seed
// using PBKDF2-HMAC-SHA512 as specified by BIP-39. The passphrase is empty
// for standard Solana wallets.
func SeedFromMnemonic(mnemonic, passphrase string) []byte {
	salt := append([]byte("mnemonic"), passphrase...)
	return pbkdf2.Key([]byte(mnemonic), salt, seedIterations, seedBytes, sha512.New)
}

// DeriveSeed walks DerivationPath over the given master seed using SLIP-0010
// ed25519 derivation and returns the 32-byte child key, which is the ed25519
// seed for the wallet keypair.
func DeriveSeed(seed []byte) []byte {
	key, chain := masterKey(seed)
	for _, idx := range pathIndexes {
		key, chain = childKey(key, chain, idx+hardenedOffset)
	}
	return key
}

// masterKey computes the SLIP-0010 master key and chain code from a seed.
func masterKey(seed []byte) (key, chain []byte) {
	mac := hmac.New(sha512.New, slip10Key)
	mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

// childKey derives one hardened child. Ed25519 SLIP-0010 only supports
// hardened derivation, so the data block is always 0x00 || key || index.
func childKey(key, chain []byte, index uint32) (childK, childC []byte) {
	var data [1 + 32 + 4]byte
	copy(data[1:], key)
	binary.BigEndian.PutUint32(data[33:], index)

	mac := hmac.New(sha512.New, chain)
	mac.Write(data[:])
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}
