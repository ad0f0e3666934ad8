package sample

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

// ErrInvalidRange is returned by InRange when min >= max.
var ErrInvalidRange = errors.New("sample: invalid range: min >= max")

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// Bits samples a non-negative integer with bit length exactly bits.
//
// ⌈bits/8⌉ random bytes are drawn and interpreted as a big-endian integer,
// excess high bits are masked off, and the top bit is forced to 1, so the
// result always has the announced size. Primes and secret exponents derive
// their security-parameter size from this contract.
func Bits(rand io.Reader, bits int) *saferith.Nat {
	if bits < 1 {
		panic("sample.Bits: bits must be positive")
	}
	buf := make([]byte, (bits+7)/8)
	mustReadBits(rand, buf)
	normalize(buf, bits)
	out := new(saferith.Nat).SetBytes(buf)
	out.Resize(bits)
	return out
}

// normalize masks buf down to bits bits and sets the top bit.
func normalize(buf []byte, bits int) {
	lastBits := uint(bits % 8)
	if lastBits == 0 {
		lastBits = 8
	}
	buf[0] &= uint8(int(1<<lastBits) - 1)
	buf[0] |= 1 << (lastBits - 1)
}

// InRange samples an integer uniformly from [min, max).
//
// Drawing bytes produces a value uniform over a byte-aligned span that
// generally exceeds the target range, which would bias the result toward the
// low end; out-of-range draws are therefore rejected and redrawn. The
// byte-aligned span is at most twice the target range, so the expected
// number of draws stays below 2.
func InRange(rand io.Reader, min, max *saferith.Nat) (*saferith.Nat, error) {
	if _, _, lt := min.Cmp(max); lt != 1 {
		return nil, ErrInvalidRange
	}
	one := new(saferith.Nat).SetUint64(1)
	span := new(saferith.Nat).Sub(max, min, -1)
	span.Sub(span, one, -1)
	spanBits := span.TrueLen()
	topBits := uint(spanBits % 8)
	if topBits == 0 {
		topBits = 8
	}
	buf := make([]byte, (spanBits+7)/8)
	out := new(saferith.Nat)
	for {
		mustReadBits(rand, buf)
		if len(buf) > 0 {
			buf[0] &= uint8(int(1<<topBits) - 1)
		}
		out.SetBytes(buf)
		out.Add(out, min, -1)
		if _, _, lt := out.Cmp(max); lt == 1 {
			return out, nil
		}
	}
}
