package elgamal

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/require"
)

func TestNewParametersToyGroup(t *testing.T) {
	// 23 is a safe prime and 5 passes the generator checks.
	p := new(saferith.Nat).SetUint64(23)
	g := new(saferith.Nat).SetUint64(5)
	domain, err := NewParameters(p, g)
	require.NoError(t, err)
	require.NoError(t, domain.Validate())
}

func TestNewParametersRejectsNonSafePrime(t *testing.T) {
	// 17 is prime but (17-1)/2 = 8 is not.
	p := new(saferith.Nat).SetUint64(17)
	g := new(saferith.Nat).SetUint64(3)
	_, err := NewParameters(p, g)
	require.ErrorIs(t, err, ErrNotSafePrime)

	// 21 = 3⋅7 is not prime at all.
	p.SetUint64(21)
	_, err = NewParameters(p, g)
	require.ErrorIs(t, err, ErrNotSafePrime)
}

func TestNewParametersRejectsWeakGenerator(t *testing.T) {
	p := new(saferith.Nat).SetUint64(23)

	// g = 1 sits in the trivial subgroup.
	g := new(saferith.Nat).SetUint64(1)
	_, err := NewParameters(p, g)
	require.ErrorIs(t, err, ErrInvalidGenerator)

	// g = p-1 has order 2.
	g.SetUint64(22)
	_, err = NewParameters(p, g)
	require.ErrorIs(t, err, ErrInvalidGenerator)

	// g = 2 divides p-1 = 22.
	g.SetUint64(2)
	_, err = NewParameters(p, g)
	require.ErrorIs(t, err, ErrInvalidGenerator)

	// g ≥ p is not a group element.
	g.SetUint64(25)
	_, err = NewParameters(p, g)
	require.ErrorIs(t, err, ErrInvalidGenerator)
}

func TestGeneratedParameters(t *testing.T) {
	pk, _ := testKeyPair(t)
	domain := pk.Parameters

	require.NoError(t, domain.Validate())
	require.Equal(t, testBits, domain.P().BitLen())

	// p = 2q+1 must hold for the cached order.
	two := new(saferith.Nat).SetUint64(2)
	reconstructed := new(saferith.Nat).Mul(domain.P().OrderNat(), two, -1)
	one := new(saferith.Nat).SetUint64(1)
	reconstructed.Add(reconstructed, one, -1)
	require.Equal(t, saferith.Choice(1), reconstructed.Eq(domain.P().Nat()))
}

func TestParametersEqual(t *testing.T) {
	p := new(saferith.Nat).SetUint64(23)
	g := new(saferith.Nat).SetUint64(5)
	d1, err := NewParameters(p, g)
	require.NoError(t, err)
	d2, err := NewParameters(p, g)
	require.NoError(t, err)
	require.True(t, d1.Equal(d2))

	pk, _ := testKeyPair(t)
	require.False(t, d1.Equal(pk.Parameters))
}
