package elgamal

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

// ErrMessageTooLarge is returned when a message encoding would not be
// smaller than the modulus. Such a message cannot survive the decryption
// round trip.
var ErrMessageTooLarge = errors.New("elgamal: message does not fit in the group")

// EncodeBytes encodes msg as the big-endian integer of its raw bytes,
// failing with ErrMessageTooLarge when the result would be ≥ p.
//
// The encoding is the plain integer value of the bytes, so a message with
// leading zero bytes does not round-trip; DecodeBytes returns the minimal
// representation.
func (pk *PublicKey) EncodeBytes(msg []byte) (*saferith.Nat, error) {
	m := new(saferith.Nat).SetBytes(msg)
	if _, _, lt := m.CmpMod(pk.p.Modulus); lt != 1 {
		return nil, ErrMessageTooLarge
	}
	return m, nil
}

// DecodeBytes is the inverse of EncodeBytes.
func DecodeBytes(m *saferith.Nat) []byte {
	return m.Big().Bytes()
}

// EncodeUint64 encodes a small numeric message.
func EncodeUint64(v uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(v)
}

// EncodeDecimalString parses a non-negative base-10 numeric message, failing
// with ErrMessageTooLarge when the value would be ≥ p.
func (pk *PublicKey) EncodeDecimalString(s string) (*saferith.Nat, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("elgamal: %q is not a valid decimal message", s)
	}
	m := new(saferith.Nat).SetBig(v, v.BitLen())
	if _, _, lt := m.CmpMod(pk.p.Modulus); lt != 1 {
		return nil, ErrMessageTooLarge
	}
	return m, nil
}

// EncBytes encodes msg and encrypts it in one step. The nonce used to
// encrypt is returned alongside the ciphertext.
func (pk *PublicKey) EncBytes(msg []byte) (*Ciphertext, *saferith.Nat, error) {
	m, err := pk.EncodeBytes(msg)
	if err != nil {
		return nil, nil, err
	}
	ct, nonce := pk.Enc(m, nil)
	return ct, nonce, nil
}
