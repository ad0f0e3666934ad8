package elgamal

import (
	"crypto/rand"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/elgamal/internal/hash"
	"github.com/taurusgroup/elgamal/pkg/math/sample"
)

// PublicKey is an ElGamal public key: domain parameters together with
// y = gˣ (mod p).
type PublicKey struct {
	*Parameters
	y *saferith.Nat
}

// Y returns the public key element y = gˣ (mod p).
// WARNING: Do not modify the returned value.
func (pk *PublicKey) Y() *saferith.Nat {
	return pk.y
}

// Enc encrypts m under pk:
//
//	a = gᵏ (mod p), b = yᵏ⋅m (mod p)
//
// If nonce = nil, a fresh ephemeral key k is sampled from [1, p-1). The
// nonce used is always returned. Reusing a nonce across two encryptions
// under the same key breaks the scheme, so never pass in one that has been
// used before; with fresh nonces, encrypting the same message twice yields
// unlinkable ciphertexts.
//
// The caller is responsible for m < p. A larger message is not detected here
// and will not survive the round trip; the Encode helpers do check.
func (pk *PublicKey) Enc(m, nonce *saferith.Nat) (*Ciphertext, *saferith.Nat) {
	if nonce == nil {
		nonce = pk.Nonce()
	}
	a := pk.p.Exp(pk.g, nonce)
	b := pk.p.Exp(pk.y, nonce)
	b.ModMul(b, m, pk.p.Modulus)
	return &Ciphertext{a: a, b: b}, nonce
}

// Nonce returns a fresh ephemeral key k ∈ [1, p-1).
func (pk *PublicKey) Nonce() *saferith.Nat {
	one := new(saferith.Nat).SetUint64(1)
	nonce, err := sample.InRange(rand.Reader, one, pk.p.PMinus1())
	if err != nil {
		// p-1 > 1 holds for any validated set of parameters
		panic(err)
	}
	return nonce
}

// Equal returns true if pk = other.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.Parameters.Equal(other.Parameters) && pk.y.Eq(other.y) == 1
}

// ValidateCiphertexts checks that the given ciphertexts could have been
// produced under pk's parameters, as far as that is detectable:
// a ∈ [1, p) and b ∈ [0, p).
//
// A ciphertext produced under a different modulus of the same size cannot be
// told apart from a valid one; not mixing parameters remains a caller
// precondition.
func (pk *PublicKey) ValidateCiphertexts(cts ...*Ciphertext) bool {
	for _, ct := range cts {
		if ct == nil || ct.a == nil || ct.b == nil {
			return false
		}
		if ct.a.EqZero() == 1 {
			return false
		}
		if _, _, lt := ct.a.CmpMod(pk.p.Modulus); lt != 1 {
			return false
		}
		if _, _, lt := ct.b.CmpMod(pk.p.Modulus); lt != 1 {
			return false
		}
	}
	return true
}

// Fingerprint returns a stable identifier for the public key, derived by
// hashing p, g and y with domain separation.
func (pk *PublicKey) Fingerprint() []byte {
	h := hash.New()
	_ = h.WriteAny(pk)
	return h.Sum()
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (pk *PublicKey) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, n := range []*saferith.Nat{pk.p.Nat(), pk.g, pk.y} {
		written, err := w.Write(n.Bytes())
		total += int64(written)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*PublicKey) Domain() string {
	return "ElGamal PublicKey"
}
