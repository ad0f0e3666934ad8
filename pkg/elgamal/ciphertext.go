package elgamal

import (
	"io"

	"github.com/cronokirby/saferith"
)

// Ciphertext is an ElGamal pair (a, b) = (gᵏ, yᵏ⋅m) under a specific set of
// domain parameters. A ciphertext has no meaning outside the parameters it
// was produced with.
type Ciphertext struct {
	a, b *saferith.Nat
}

// Mul returns the homomorphic product of ct and other:
//
//	(a₁⋅a₂ mod p, b₁⋅b₂ mod p)
//
// Decrypting the result yields the product of the two plaintexts mod p.
// Both inputs must have been produced under pk's parameters; combining
// ciphertexts from different parameters is a precondition violation.
//
// Both components are reduced mod p, so repeated products don't grow
// without bound.
func (ct *Ciphertext) Mul(pk *PublicKey, other *Ciphertext) *Ciphertext {
	a := new(saferith.Nat).ModMul(ct.a, other.a, pk.p.Modulus)
	b := new(saferith.Nat).ModMul(ct.b, other.b, pk.p.Modulus)
	return &Ciphertext{a: a, b: b}
}

// Equal checks whether ct = other componentwise.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	if ct == nil || other == nil {
		return ct == other
	}
	return ct.a.Eq(other.a) == 1 && ct.b.Eq(other.b) == 1
}

// Clone returns a deep copy of ct.
func (ct *Ciphertext) Clone() *Ciphertext {
	return &Ciphertext{
		a: new(saferith.Nat).SetNat(ct.a),
		b: new(saferith.Nat).SetNat(ct.b),
	}
}

// A returns the first ciphertext component gᵏ (mod p).
// WARNING: Do not modify the returned value.
func (ct *Ciphertext) A() *saferith.Nat {
	return ct.a
}

// B returns the second ciphertext component yᵏ⋅m (mod p).
// WARNING: Do not modify the returned value.
func (ct *Ciphertext) B() *saferith.Nat {
	return ct.b
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, n := range []*saferith.Nat{ct.a, ct.b} {
		written, err := w.Write(n.Bytes())
		total += int64(written)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Ciphertext) Domain() string {
	return "ElGamal Ciphertext"
}
