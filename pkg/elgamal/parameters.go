package elgamal

import (
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/elgamal/internal/params"
	"github.com/taurusgroup/elgamal/pkg/math/arith"
	"github.com/taurusgroup/elgamal/pkg/math/sample"
	"github.com/taurusgroup/elgamal/pkg/pool"
)

var (
	ErrParamsNil        = errors.New("domain parameters are nil")
	ErrNotSafePrime     = errors.New("modulus is not a safe prime")
	ErrInvalidGenerator = errors.New("generator fails the subgroup checks")
)

// maxGeneratorIterations bounds the generator search. The rejection
// probability per draw is small, so hitting the bound indicates a broken
// randomness source rather than bad luck.
const maxGeneratorIterations = 255

// ErrGeneratorGenFailed is returned when the generator search exceeds its
// iteration bound.
var ErrGeneratorGenFailed = fmt.Errorf("elgamal: failed to find a generator after %d iterations", maxGeneratorIterations)

// Parameters are the public domain parameters of the scheme: a safe prime
// modulus p = 2q+1 and a generator g of its multiplicative group.
//
// Parameters are immutable once constructed, and shared by every key pair
// and ciphertext produced under them.
type Parameters struct {
	p *arith.Modulus
	g *saferith.Nat
}

// NewParameters validates p and g and builds Parameters from them, returning
// a fully formed value or an error, never a partially initialized one.
func NewParameters(p, g *saferith.Nat) (*Parameters, error) {
	if p == nil || g == nil {
		return nil, ErrParamsNil
	}
	out := &Parameters{p: arith.FromSafePrime(p), g: g}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateParameters samples a fresh safe prime p with the given bit length,
// and a generator for the group mod p. params.BitsSafePrime is the intended
// default for bits.
func GenerateParameters(rand io.Reader, pl *pool.Pool, bits int) (*Parameters, error) {
	p, err := sample.SafePrime(rand, pl, bits)
	if err != nil {
		return nil, err
	}
	mod := arith.FromSafePrime(p)
	g, err := sampleGenerator(rand, mod)
	if err != nil {
		return nil, err
	}
	return &Parameters{p: mod, g: g}, nil
}

// sampleGenerator draws g from [3, p) until it passes the checks below.
//
// 2 is excluded outright, since a small binary-biased generator is known to
// weaken the scheme. The remaining rejections keep g out of the subgroups of
// order 1 and 2 (g² ≠ 1, g^q ≠ 1) and reject any g where g or g⁻¹ evenly
// divides p-1, closing two specific attacks against weak generators.
func sampleGenerator(rand io.Reader, p *arith.Modulus) (*saferith.Nat, error) {
	three := new(saferith.Nat).SetUint64(3)
	pNat := p.Nat()
	for i := 0; i < maxGeneratorIterations; i++ {
		g, err := sample.InRange(rand, three, pNat)
		if err != nil {
			return nil, err
		}
		if isValidGenerator(p, g) {
			return g, nil
		}
	}
	return nil, ErrGeneratorGenFailed
}

func isValidGenerator(p *arith.Modulus, g *saferith.Nat) bool {
	one := new(saferith.Nat).SetUint64(1)
	two := new(saferith.Nat).SetUint64(2)
	if p.Exp(g, two).Eq(one) == 1 {
		return false
	}
	if p.Exp(g, p.OrderNat()).Eq(one) == 1 {
		return false
	}
	if divides(g, p.PMinus1()) {
		return false
	}
	if divides(p.Inv(g), p.PMinus1()) {
		return false
	}
	return true
}

// divides reports whether d evenly divides n.
func divides(d, n *saferith.Nat) bool {
	rem := new(saferith.Nat).Mod(n, saferith.ModulusFromNat(d))
	return rem.EqZero() == 1
}

// Validate checks the domain parameter invariants:
// - p is an odd probable prime and (p-1)/2 is a probable prime,
// - g ∈ [2, p) and passes the generator checks.
// It is meant for parameters crossing a serialization boundary.
func (p *Parameters) Validate() error {
	if p == nil || p.p == nil || p.g == nil {
		return ErrParamsNil
	}
	pBig := p.p.Big()
	if pBig.Bit(0) != 1 || !pBig.ProbablyPrime(params.PrimalityIterations) {
		return ErrNotSafePrime
	}
	if !p.p.OrderNat().Big().ProbablyPrime(params.PrimalityIterations) {
		return ErrNotSafePrime
	}
	one := new(saferith.Nat).SetUint64(1)
	if p.g.EqZero() == 1 || p.g.Eq(one) == 1 {
		return ErrInvalidGenerator
	}
	if _, _, lt := p.g.CmpMod(p.p.Modulus); lt != 1 {
		return ErrInvalidGenerator
	}
	if !isValidGenerator(p.p, p.g) {
		return ErrInvalidGenerator
	}
	return nil
}

// P returns the group modulus.
// For efficiency, the returned value points to the cached modulus.
// WARNING: Do not modify the returned value.
func (p *Parameters) P() *arith.Modulus {
	return p.p
}

// G returns the generator.
// WARNING: Do not modify the returned value.
func (p *Parameters) G() *saferith.Nat {
	return p.g
}

// Equal returns true if both sets of parameters share the same p and g.
func (p *Parameters) Equal(other *Parameters) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.p.Nat().Eq(other.p.Nat()) == 1 && p.g.Eq(other.g) == 1
}
