package sample

import (
	"fmt"
	"io"
	"math/big"
	"sync/atomic"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/elgamal/internal/params"
	"github.com/taurusgroup/elgamal/pkg/pool"
)

// trialPrimes contains the first 128 odd prime numbers, used to cheaply
// discard candidates before running Miller-Rabin.
var trialPrimes = []uint64{
	3, 5, 7, 11, 13, 17, 19, 23,
	29, 31, 37, 41, 43, 47, 53, 59,
	61, 67, 71, 73, 79, 83, 89, 97,
	101, 103, 107, 109, 113, 127, 131, 137,
	139, 149, 151, 157, 163, 167, 173, 179,
	181, 191, 193, 197, 199, 211, 223, 227,
	229, 233, 239, 241, 251, 257, 263, 269,
	271, 277, 281, 283, 293, 307, 311, 313,
	317, 331, 337, 347, 349, 353, 359, 367,
	373, 379, 383, 389, 397, 401, 409, 419,
	421, 431, 433, 439, 443, 449, 457, 461,
	463, 467, 479, 487, 491, 499, 503, 509,
	521, 523, 541, 547, 557, 563, 569, 571,
	577, 587, 593, 599, 601, 607, 613, 617,
	619, 631, 641, 643, 647, 653, 659, 661,
	673, 677, 683, 691, 701, 709, 719, 727,
	733, 739, 743, 751, 757, 761, 769, 773,
}

// maxPrimeIterations is the number of fresh candidates to try before giving
// up on generating a prime.
//
// This is substantially larger than maxIterations because of the sparsity of
// safe primes. Exceeding it indicates a broken randomness source, not normal
// operation.
const maxPrimeIterations = 100_000

// ErrPrimeGenFailed is returned when prime generation exceeds its iteration
// bound.
var ErrPrimeGenFailed = fmt.Errorf("sample: failed to generate prime after %d iterations", maxPrimeIterations)

// The number of sieve entries to check after an initial candidate draw.
const sieveSize = 1 << 17

// minSafePrimeBits is the smallest supported safe prime size.
//
// The sieve in trySafePrime marks q = base + 2i off whenever a trial prime
// divides it, which is only correct when every candidate in the window is
// larger than the trial prime itself. With bits >= 12, q has at least 11
// bits, so its window starts above the largest trial prime (773).
const minSafePrimeBits = 12

// Prime samples a probable prime with bit length exactly bits.
//
// A random candidate of the right size is forced odd and then stepped by 2
// until it passes trial division and Miller-Rabin. Stepping can carry the
// candidate past bits bits; truncating it back would change the value after
// it was tested, so the search restarts from a fresh draw instead. The
// returned value has always been tested in its final, normalized form.
func Prime(rand io.Reader, bits int) *saferith.Nat {
	if bits < 2 {
		panic("sample.Prime: prime size must be at least 2 bits")
	}
	for i := 0; i < maxPrimeIterations; i++ {
		p := tryPrime(rand, bits)
		if p == nil {
			continue
		}
		return new(saferith.Nat).SetBig(p, bits)
	}
	panic(ErrPrimeGenFailed)
}

// tryPrime draws one candidate and walks upwards from it, returning nil when
// the walk leaves the bit range.
func tryPrime(rand io.Reader, bits int) *big.Int {
	buf := make([]byte, (bits+7)/8)
	mustReadBits(rand, buf)
	normalize(buf, bits)
	buf[len(buf)-1] |= 1

	p := new(big.Int).SetBytes(buf)
	two := big.NewInt(2)
	for {
		if p.BitLen() != bits {
			return nil
		}
		if !hasSmallFactor(p) && p.ProbablyPrime(params.PrimalityIterations) {
			return p
		}
		p.Add(p, two)
	}
}

// hasSmallFactor reports whether one of the trial primes properly divides p.
func hasSmallFactor(p *big.Int) bool {
	scratch := new(big.Int)
	for _, q := range trialPrimes {
		scratch.SetUint64(q)
		if scratch.Cmp(p) >= 0 {
			return false
		}
		scratch.Mod(p, scratch)
		if scratch.Sign() == 0 {
			return true
		}
	}
	return false
}

// SafePrime generates a safe prime p with bit length exactly bits, so that
// q = (p-1)/2 is also a probable prime. bits must be at least
// minSafePrimeBits.
//
// Each attempt draws a random candidate q of bits-1 bits and examines a
// window of candidates above it, testing p = 2q+1 for the survivors of a
// trial-division sieve. Safe primes are sparse, so attempts run on the pool;
// a nil pool searches on the calling goroutine.
func SafePrime(rand io.Reader, pl *pool.Pool, bits int) (*saferith.Nat, error) {
	if bits < minSafePrimeBits {
		return nil, fmt.Errorf("sample: safe prime size must be at least %d bits", minSafePrimeBits)
	}
	reader := pool.NewLockedReader(rand)
	var attempts int64
	results := pl.Search(1, func() interface{} {
		if atomic.AddInt64(&attempts, 1) > maxPrimeIterations {
			return ErrPrimeGenFailed
		}
		p := trySafePrime(reader, bits)
		// You have to do this, because of how Go handles nil.
		if p == nil {
			return nil
		}
		return p
	})
	if err, ok := results[0].(error); ok {
		return nil, err
	}
	return results[0].(*saferith.Nat), nil
}

// trySafePrime examines one sieve window of candidates, returning nil when
// none of them yields a safe prime.
func trySafePrime(rand io.Reader, bits int) *saferith.Nat {
	qBits := bits - 1
	buf := make([]byte, (qBits+7)/8)
	mustReadBits(rand, buf)
	normalize(buf, qBits)
	buf[len(buf)-1] |= 1
	base := new(big.Int).SetBytes(buf)

	// sieve[i] stands for the candidate q = base + 2i. An entry is cleared
	// when a trial prime r divides q or p = 2q+1: q ≡ 0 (mod r) rules out q
	// itself, and 2q+1 ≡ 0 (mod r) rules out p.
	sieve := make([]bool, sieveSize)
	for i := range sieve {
		sieve[i] = true
	}
	remainder := new(big.Int)
	for _, r := range trialPrimes {
		remainder.SetUint64(r)
		remainder.Mod(base, remainder)
		rem := remainder.Uint64()
		// base + 2i ≡ 0 (mod r) at i ≡ -base ⋅ 2⁻¹, with 2⁻¹ = (r+1)/2.
		inv2 := (r + 1) / 2
		inv4 := inv2 * inv2 % r
		for i := (r - rem) % r * inv2 % r; i < sieveSize; i += r {
			sieve[i] = false
		}
		// 2(base + 2i) + 1 ≡ 0 (mod r) at i ≡ -(2⋅base + 1) ⋅ 4⁻¹.
		for i := (r - (2*rem+1)%r) % r * inv4 % r; i < sieveSize; i += r {
			sieve[i] = false
		}
	}

	one := big.NewInt(1)
	q := new(big.Int)
	p := new(big.Int)
	for delta := uint64(0); delta < sieveSize; delta++ {
		if !sieve[delta] {
			continue
		}
		q.SetUint64(2 * delta)
		q.Add(q, base)
		if q.BitLen() != qBits {
			// The walk crossed a power of two; every further candidate would
			// need truncating after the fact, so redraw instead.
			return nil
		}
		p.Lsh(q, 1)
		p.Add(p, one)
		// q is half the size of p, so its Miller-Rabin rounds are cheaper;
		// test it first.
		if !q.ProbablyPrime(params.PrimalityIterations) {
			continue
		}
		if !p.ProbablyPrime(params.PrimalityIterations) {
			continue
		}
		return new(saferith.Nat).SetBig(p, bits)
	}
	return nil
}
