package elgamal

import (
	"crypto/rand"
	"errors"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/elgamal/pkg/math/sample"
)

var (
	// ErrMissingPrivateKey is returned when decryption is attempted on a key
	// pair lacking the private exponent.
	ErrMissingPrivateKey = errors.New("elgamal: key pair is missing the private key")
	// ErrInvalidCiphertext is returned when a ciphertext component lies
	// outside the group.
	ErrInvalidCiphertext = errors.New("elgamal: invalid ciphertext")
)

// SecretKey is the secret key corresponding to an ElGamal public key.
//
// A SecretKey decoded from a public-only serialization carries no private
// exponent; Dec reports ErrMissingPrivateKey for it before touching the
// ciphertext.
type SecretKey struct {
	*PublicKey
	// x such that y = gˣ (mod p)
	x *saferith.Nat
}

// X returns the private exponent, or nil for a public-only key pair.
// WARNING: Do not modify the returned value.
func (sk *SecretKey) X() *saferith.Nat {
	return sk.x
}

// Dec decrypts ct and returns the plaintext m ∈ [0, p).
//
// Decryption is blinded: rather than computing b⋅(aˣ)⁻¹ directly, a fresh
// mask r is drawn from [2, p-1) and folded into the exponentiations, so the
// pattern observable through timing or power is not tied directly to x. The
// result is identical; the cost is two extra exponentiations per call.
func (sk *SecretKey) Dec(ct *Ciphertext) (*saferith.Nat, error) {
	if sk == nil || sk.x == nil {
		return nil, ErrMissingPrivateKey
	}
	if !sk.PublicKey.ValidateCiphertexts(ct) {
		return nil, ErrInvalidCiphertext
	}
	p := sk.p

	two := new(saferith.Nat).SetUint64(2)
	r, err := sample.InRange(rand.Reader, two, p.PMinus1())
	if err != nil {
		return nil, err
	}

	// aBlind = gʳ⋅a (mod p)
	aBlind := p.Exp(sk.g, r)
	aBlind.ModMul(aBlind, ct.a, p.Modulus)
	// ax = aBlindˣ = gʳˣ⋅aˣ (mod p)
	ax := p.Exp(aBlind, sk.x)
	// m = yʳ⋅(ax)⁻¹⋅b = gˣʳ⋅g⁻ʳˣ⋅(aˣ)⁻¹⋅b (mod p)
	m := p.Exp(sk.y, r)
	m.ModMul(m, p.Inv(ax), p.Modulus)
	m.ModMul(m, ct.b, p.Modulus)
	return m, nil
}

// DecBytes decrypts ct and decodes the plaintext back into the byte string
// it was encoded from, the inverse of EncBytes.
func (sk *SecretKey) DecBytes(ct *Ciphertext) ([]byte, error) {
	m, err := sk.Dec(ct)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(m), nil
}
