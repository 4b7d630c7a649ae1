package engine

import (
	"crypto/hmac"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// keySize is the length of the one-time commitment key in bytes.
const keySize = 32

// FairRandom runs one round of the commit-reveal fair number protocol.
//
// At construction it fixes a fresh random key and a uniform secret number
// in [0, max], and publishes a keyed hash of the secret. The counterpart
// contributes their number only after seeing the commitment; the round
// result is the modular sum of both numbers. Because the secret was fixed
// and committed first, and modular addition of a uniform operand yields a
// uniform sum, neither side can bias the result.
//
// An instance is single-use: ComputeResult may be called once, and the key
// and secret may be read only after it has been called.
type FairRandom struct {
	max        int
	key        []byte
	secret     int
	commitment string
	computed   bool
}

// NewFairRandom creates a protocol round for results in [0, max]. A nil
// src falls back to crypto/rand.Reader.
func NewFairRandom(src io.Reader, max int) (*FairRandom, error) {
	if max < 0 {
		return nil, fmt.Errorf("fair random: max must be non-negative, got %d", max)
	}
	sampler := NewSampler(src)

	key := make([]byte, keySize)
	if _, err := io.ReadFull(sampler.src, key); err != nil {
		return nil, fmt.Errorf("fair random: generate key: %w", err)
	}
	secret, err := sampler.Sample(max)
	if err != nil {
		return nil, fmt.Errorf("fair random: sample secret: %w", err)
	}

	return &FairRandom{
		max:        max,
		key:        key,
		secret:     secret,
		commitment: Commit(key, secret),
	}, nil
}

// Max returns the inclusive upper bound of the round result.
func (f *FairRandom) Max() int {
	return f.max
}

// Commitment returns the hex keyed hash of the secret number. It is
// available from construction and must be disclosed to the counterpart
// before their number is solicited.
func (f *FairRandom) Commitment() string {
	return f.commitment
}

// ComputeResult combines the counterpart's number with the secret:
// (secret + n) mod (max + 1). It spends the round and may be called at
// most once per instance.
func (f *FairRandom) ComputeResult(n int) (int, error) {
	if f.computed {
		panic("engine: fair random round already spent")
	}
	if n < 0 || n > f.max {
		return 0, fmt.Errorf("fair random: counterpart number %d outside [0, %d]", n, f.max)
	}
	f.computed = true
	return (f.secret + n) % (f.max + 1), nil
}

// Key returns the hex commitment key. It must only be disclosed after the
// round result has been computed.
func (f *FairRandom) Key() string {
	if !f.computed {
		panic("engine: key revealed before result was computed")
	}
	return hex.EncodeToString(f.key)
}

// SecretNumber returns the committed secret. It must only be disclosed
// after the round result has been computed.
func (f *FairRandom) SecretNumber() int {
	if !f.computed {
		panic("engine: secret revealed before result was computed")
	}
	return f.secret
}

// Commit computes the hex HMAC-SHA3-256 commitment binding key to the
// decimal string of secret.
func Commit(key []byte, secret int) string {
	mac := hmac.New(sha3.New256, key)
	mac.Write([]byte(strconv.Itoa(secret)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyReveal recomputes the commitment from a revealed hex key and
// secret number and compares it against the originally disclosed one.
// The comparison is constant-time.
func VerifyReveal(keyHex string, secret int, commitment string) (bool, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, fmt.Errorf("verify reveal: decode key: %w", err)
	}
	want, err := hex.DecodeString(commitment)
	if err != nil {
		return false, fmt.Errorf("verify reveal: decode commitment: %w", err)
	}
	mac := hmac.New(sha3.New256, key)
	mac.Write([]byte(strconv.Itoa(secret)))
	return hmac.Equal(mac.Sum(nil), want), nil
}
