package engine

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/bits"
)

// Sampler draws uniform integers from a cryptographically secure byte
// source using rejection sampling.
type Sampler struct {
	src io.Reader
}

// NewSampler creates a sampler reading from src. A nil src falls back to
// crypto/rand.Reader.
func NewSampler(src io.Reader) *Sampler {
	if src == nil {
		src = rand.Reader
	}
	return &Sampler{src: src}
}

// Sample returns a uniformly distributed integer in [0, max] inclusive.
//
// It draws the minimum number of whole bytes able to represent max,
// interprets them as a big-endian unsigned integer and redraws while the
// value falls above the largest multiple of max+1 that fits in those
// bytes. Without the rejection step, values near the top of the byte
// range would be overrepresented after the final modulo.
func (s *Sampler) Sample(max int) (int, error) {
	if max < 0 {
		return 0, fmt.Errorf("sample: max must be non-negative, got %d", max)
	}
	// max = 0 needs zero bytes; a zero-length draw would make the
	// rejection loop spin forever, so answer immediately.
	if max == 0 {
		return 0, nil
	}

	span := uint64(max) + 1
	nbytes := (bits.Len64(uint64(max)) + 7) / 8

	// Largest multiple of span representable in nbytes bytes. Draws at
	// or above it are rejected. limit == 0 means span divides the full
	// byte range exactly and every draw is acceptable.
	var limit uint64
	if nbytes == 8 {
		limit = 0 - ((^uint64(0)%span + 1) % span)
	} else {
		total := uint64(1) << (8 * nbytes)
		limit = total - total%span
	}

	buf := make([]byte, nbytes)
	for {
		if _, err := io.ReadFull(s.src, buf); err != nil {
			return 0, fmt.Errorf("sample: read random bytes: %w", err)
		}
		var v uint64
		for _, b := range buf {
			v = v<<8 | uint64(b)
		}
		if limit == 0 || v < limit {
			return int(v % span), nil
		}
	}
}
