package elgamal

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/elgamal/pkg/math/arith"
)

var (
	_ encoding.BinaryMarshaler   = (*Parameters)(nil)
	_ encoding.BinaryUnmarshaler = (*Parameters)(nil)
	_ encoding.BinaryMarshaler   = (*PublicKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.BinaryMarshaler   = (*SecretKey)(nil)
	_ encoding.BinaryUnmarshaler = (*SecretKey)(nil)
	_ encoding.BinaryMarshaler   = (*Ciphertext)(nil)
	_ encoding.BinaryUnmarshaler = (*Ciphertext)(nil)
	_ json.Marshaler             = (*PublicKey)(nil)
	_ json.Unmarshaler           = (*PublicKey)(nil)
	_ json.Marshaler             = (*SecretKey)(nil)
	_ json.Unmarshaler           = (*SecretKey)(nil)
)

// ErrKeyMismatch is returned when a decoded key pair fails the y = gˣ check.
var ErrKeyMismatch = errors.New("elgamal: public key does not match private exponent")

type parametersMarshal struct {
	P, G *saferith.Nat
}

type publicKeyMarshal struct {
	P, G, Y *saferith.Nat
}

type secretKeyMarshal struct {
	P, G, Y *saferith.Nat
	// X is nil for a public-only key pair.
	X *saferith.Nat
}

type ciphertextMarshal struct {
	A, B *saferith.Nat
}

func (p *Parameters) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&parametersMarshal{P: p.p.Nat(), G: p.g})
}

func (p *Parameters) UnmarshalBinary(data []byte) error {
	var pm parametersMarshal
	if err := cbor.Unmarshal(data, &pm); err != nil {
		return fmt.Errorf("elgamal: parameters: %w", err)
	}
	parsed, err := NewParameters(pm.P, pm.G)
	if err != nil {
		return fmt.Errorf("elgamal: parameters: %w", err)
	}
	*p = *parsed
	return nil
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&publicKeyMarshal{P: pk.p.Nat(), G: pk.g, Y: pk.y})
}

func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var pm publicKeyMarshal
	if err := cbor.Unmarshal(data, &pm); err != nil {
		return fmt.Errorf("elgamal: public key: %w", err)
	}
	parsed, err := newPublicKey(pm.P, pm.G, pm.Y)
	if err != nil {
		return err
	}
	*pk = *parsed
	return nil
}

func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&secretKeyMarshal{P: sk.p.Nat(), G: sk.g, Y: sk.y, X: sk.x})
}

func (sk *SecretKey) UnmarshalBinary(data []byte) error {
	var sm secretKeyMarshal
	if err := cbor.Unmarshal(data, &sm); err != nil {
		return fmt.Errorf("elgamal: secret key: %w", err)
	}
	parsed, err := newSecretKey(sm.P, sm.G, sm.Y, sm.X)
	if err != nil {
		return err
	}
	*sk = *parsed
	return nil
}

func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&ciphertextMarshal{A: ct.a, B: ct.b})
}

func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	var cm ciphertextMarshal
	if err := cbor.Unmarshal(data, &cm); err != nil {
		return fmt.Errorf("elgamal: ciphertext: %w", err)
	}
	if cm.A == nil || cm.B == nil {
		return ErrInvalidCiphertext
	}
	// Membership in [0, p) can only be checked against a public key;
	// ValidateCiphertexts does that before the ciphertext is used.
	ct.a, ct.b = cm.A, cm.B
	return nil
}

type jsonPublicKey struct {
	P *big.Int `json:"p"`
	G *big.Int `json:"g"`
	Y *big.Int `json:"y"`
}

type jsonSecretKey struct {
	P *big.Int `json:"p"`
	G *big.Int `json:"g"`
	Y *big.Int `json:"y"`
	X *big.Int `json:"x,omitempty"`
}

func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPublicKey{P: pk.p.Big(), G: pk.g.Big(), Y: pk.y.Big()})
}

func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var jm jsonPublicKey
	if err := json.Unmarshal(data, &jm); err != nil {
		return fmt.Errorf("elgamal: public key: %w", err)
	}
	parsed, err := newPublicKey(natFromBig(jm.P), natFromBig(jm.G), natFromBig(jm.Y))
	if err != nil {
		return err
	}
	*pk = *parsed
	return nil
}

func (sk SecretKey) MarshalJSON() ([]byte, error) {
	jm := jsonSecretKey{P: sk.p.Big(), G: sk.g.Big(), Y: sk.y.Big()}
	if sk.x != nil {
		jm.X = sk.x.Big()
	}
	return json.Marshal(jm)
}

func (sk *SecretKey) UnmarshalJSON(data []byte) error {
	var jm jsonSecretKey
	if err := json.Unmarshal(data, &jm); err != nil {
		return fmt.Errorf("elgamal: secret key: %w", err)
	}
	parsed, err := newSecretKey(natFromBig(jm.P), natFromBig(jm.G), natFromBig(jm.Y), natFromBig(jm.X))
	if err != nil {
		return err
	}
	*sk = *parsed
	return nil
}

func natFromBig(v *big.Int) *saferith.Nat {
	if v == nil || v.Sign() < 0 {
		return nil
	}
	return new(saferith.Nat).SetBig(v, v.BitLen())
}

// newPublicKey validates parameters and y before building the key.
func newPublicKey(p, g, y *saferith.Nat) (*PublicKey, error) {
	parsedParams, err := NewParameters(p, g)
	if err != nil {
		return nil, fmt.Errorf("elgamal: public key: %w", err)
	}
	if err := validateElement(parsedParams.p, y); err != nil {
		return nil, fmt.Errorf("elgamal: public key: %w", err)
	}
	return &PublicKey{Parameters: parsedParams, y: y}, nil
}

// newSecretKey builds a key pair from decoded components. x may be nil,
// yielding a public-only key pair; when present, y = gˣ is verified.
func newSecretKey(p, g, y, x *saferith.Nat) (*SecretKey, error) {
	pk, err := newPublicKey(p, g, y)
	if err != nil {
		return nil, err
	}
	if x != nil {
		if pk.p.Exp(pk.g, x).Eq(y) != 1 {
			return nil, ErrKeyMismatch
		}
	}
	return &SecretKey{PublicKey: pk, x: x}, nil
}

// validateElement checks that y is a group element in [1, p).
func validateElement(p *arith.Modulus, y *saferith.Nat) error {
	if y == nil || y.EqZero() == 1 {
		return errors.New("element is not in the group")
	}
	if _, _, lt := y.CmpMod(p.Modulus); lt != 1 {
		return errors.New("element is not reduced mod p")
	}
	return nil
}
