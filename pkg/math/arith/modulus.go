package arith

import (
	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus for a safe prime p = 2q+1, caching the
// values derived from p that group operations need over and over: the
// subgroup order q and p-1.
//
// All arithmetic on secret operands goes through saferith, which provides
// constant-time modular exponentiation, multiplication and inversion.
type Modulus struct {
	// represents the safe prime p
	*saferith.Modulus
	// q = (p-1)/2, the order of the quadratic-residue subgroup
	q    *saferith.Modulus
	qNat *saferith.Nat
	// pMinus1 = p-1
	pMinus1 *saferith.Nat
}

// FromSafePrime creates the cached values for the group mod p.
// It assumes p is a safe prime; Validate on the consuming type is
// responsible for checking that.
func FromSafePrime(p *saferith.Nat) *Modulus {
	qNat := new(saferith.Nat).Rsh(p, 1, -1)
	one := new(saferith.Nat).SetUint64(1)
	pMinus1 := new(saferith.Nat).Sub(p, one, -1)
	return &Modulus{
		Modulus: saferith.ModulusFromNat(p),
		q:       saferith.ModulusFromNat(qNat),
		qNat:    qNat,
		pMinus1: pMinus1,
	}
}

// Exp returns xᵉ (mod p).
func (m *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).Exp(x, e, m.Modulus)
}

// Inv returns x⁻¹ (mod p).
func (m *Modulus) Inv(x *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModInverse(x, m.Modulus)
}

// Order returns the subgroup order q = (p-1)/2 as a modulus.
func (m *Modulus) Order() *saferith.Modulus {
	return m.q
}

// OrderNat returns q = (p-1)/2.
// For efficiency, the returned value points to the cached q.
// WARNING: Do not modify the returned value.
func (m *Modulus) OrderNat() *saferith.Nat {
	return m.qNat
}

// PMinus1 returns p-1.
// For efficiency, the returned value points to the cached p-1.
// WARNING: Do not modify the returned value.
func (m *Modulus) PMinus1() *saferith.Nat {
	return m.pMinus1
}
