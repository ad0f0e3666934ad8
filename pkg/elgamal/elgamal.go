// Package elgamal implements the ElGamal public-key cryptosystem over the
// multiplicative group modulo a safe prime, with multiplicatively
// homomorphic ciphertexts.
//
// All values are immutable once constructed: generation, encryption and
// decryption are pure functions of their inputs plus randomness, so
// concurrent calls are safe without locking.
package elgamal

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/elgamal/pkg/math/sample"
	"github.com/taurusgroup/elgamal/pkg/pool"
)

// KeyGen generates fresh domain parameters with a modulus of the given bit
// length, and a key pair under them. The pool parallelizes the safe prime
// search and may be nil.
func KeyGen(rand io.Reader, pl *pool.Pool, bits int) (*PublicKey, *SecretKey, error) {
	domain, err := GenerateParameters(rand, pl, bits)
	if err != nil {
		return nil, nil, err
	}
	return NewKeyPair(rand, domain)
}

// NewKeyPair generates a key pair under existing domain parameters:
// x is drawn uniformly from [2, p-1), and y = gˣ (mod p).
func NewKeyPair(rand io.Reader, domain *Parameters) (*PublicKey, *SecretKey, error) {
	if domain == nil {
		return nil, nil, ErrParamsNil
	}
	two := new(saferith.Nat).SetUint64(2)
	x, err := sample.InRange(rand, two, domain.p.PMinus1())
	if err != nil {
		return nil, nil, err
	}
	pk := &PublicKey{
		Parameters: domain,
		y:          domain.p.Exp(domain.g, x),
	}
	sk := &SecretKey{PublicKey: pk, x: x}
	return pk, sk, nil
}
