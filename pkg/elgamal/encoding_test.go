package elgamal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeBytes(t *testing.T) {
	pk, _ := testKeyPair(t)
	for _, msg := range [][]byte{
		[]byte("a"),
		[]byte("hello world"),
		[]byte("The quick brown fox jumps over the lazy dog"),
		{0xff, 0x00, 0x01},
	} {
		m, err := pk.EncodeBytes(msg)
		require.NoError(t, err)
		require.True(t, bytes.Equal(msg, DecodeBytes(m)), "encoding round trip failed for %v", msg)
	}
}

func TestEncodeBytesTooLarge(t *testing.T) {
	pk, _ := testKeyPair(t)
	// one byte more than the modulus can hold
	msg := make([]byte, testBits/8+1)
	for i := range msg {
		msg[i] = 0xff
	}
	_, err := pk.EncodeBytes(msg)
	require.ErrorIs(t, err, ErrMessageTooLarge)

	_, _, err = pk.EncBytes(msg)
	require.ErrorIs(t, err, ErrMessageTooLarge)
}

func TestEncodeDecimalString(t *testing.T) {
	pk, sk := testKeyPair(t)

	m, err := pk.EncodeDecimalString("123456789012345678901234567890")
	require.NoError(t, err)
	ct, _ := pk.Enc(m, nil)
	decrypted, err := sk.Dec(ct)
	require.NoError(t, err)
	require.Equal(t, "123456789012345678901234567890", decrypted.Big().String())

	_, err = pk.EncodeDecimalString("not a number")
	require.Error(t, err)
	_, err = pk.EncodeDecimalString("-5")
	require.Error(t, err)
}

func TestEncDecBytes(t *testing.T) {
	pk, sk := testKeyPair(t)
	msg := []byte("The quick brown fox jumps over the lazy dog")

	ct, _, err := pk.EncBytes(msg)
	require.NoError(t, err)
	decrypted, err := sk.DecBytes(ct)
	require.NoError(t, err)
	require.Equal(t, msg, decrypted)
}

func TestFingerprint(t *testing.T) {
	pk, _ := testKeyPair(t)
	require.Equal(t, pk.Fingerprint(), pk.Fingerprint())

	other := &PublicKey{Parameters: pk.Parameters, y: pk.P().Exp(pk.g, EncodeUint64(99))}
	require.NotEqual(t, pk.Fingerprint(), other.Fingerprint())
}
