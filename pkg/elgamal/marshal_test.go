package elgamal

import (
	"encoding/json"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func TestMarshalParameters(t *testing.T) {
	pk, _ := testKeyPair(t)

	data, err := pk.Parameters.MarshalBinary()
	require.NoError(t, err)

	decoded := &Parameters{}
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.True(t, decoded.Equal(pk.Parameters))
}

func TestMarshalPublicKey(t *testing.T) {
	pk, _ := testKeyPair(t)

	data, err := pk.MarshalBinary()
	require.NoError(t, err)
	decoded := &PublicKey{}
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.True(t, decoded.Equal(pk))

	jsonData, err := json.Marshal(pk)
	require.NoError(t, err)
	decoded = &PublicKey{}
	require.NoError(t, json.Unmarshal(jsonData, decoded))
	require.True(t, decoded.Equal(pk))
}

func TestMarshalSecretKeyRoundTrip(t *testing.T) {
	pk, sk := testKeyPair(t)
	m := randomMessage(t, pk)
	ct, _ := pk.Enc(m, nil)

	data, err := sk.MarshalBinary()
	require.NoError(t, err)
	decoded := &SecretKey{}
	require.NoError(t, decoded.UnmarshalBinary(data))

	// the decoded key must actually decrypt
	decrypted, err := decoded.Dec(ct)
	require.NoError(t, err)
	require.Equal(t, saferith.Choice(1), decrypted.Eq(m))
}

func TestMarshalPublicOnlySecretKey(t *testing.T) {
	pk, _ := testKeyPair(t)
	m := randomMessage(t, pk)
	ct, _ := pk.Enc(m, nil)

	publicOnly := &SecretKey{PublicKey: pk}
	data, err := json.Marshal(publicOnly)
	require.NoError(t, err)

	decoded := &SecretKey{}
	require.NoError(t, json.Unmarshal(data, decoded))
	require.Nil(t, decoded.X())
	_, err = decoded.Dec(ct)
	require.ErrorIs(t, err, ErrMissingPrivateKey)

	// the binary encoding must preserve the absent exponent as well
	binData, err := publicOnly.MarshalBinary()
	require.NoError(t, err)
	decoded = &SecretKey{}
	require.NoError(t, decoded.UnmarshalBinary(binData))
	require.Nil(t, decoded.X())
	_, err = decoded.Dec(ct)
	require.ErrorIs(t, err, ErrMissingPrivateKey)
}

func TestUnmarshalRejectsTamperedKey(t *testing.T) {
	_, sk := testKeyPair(t)

	data, err := sk.MarshalBinary()
	require.NoError(t, err)
	var sm secretKeyMarshal
	require.NoError(t, cbor.Unmarshal(data, &sm))

	// a private exponent that doesn't match y must be rejected
	sm.X = new(saferith.Nat).SetUint64(12345)
	tampered, err := cbor.Marshal(&sm)
	require.NoError(t, err)
	decoded := &SecretKey{}
	require.ErrorIs(t, decoded.UnmarshalBinary(tampered), ErrKeyMismatch)
}

func TestMarshalCiphertext(t *testing.T) {
	pk, sk := testKeyPair(t)
	m := randomMessage(t, pk)
	ct, _ := pk.Enc(m, nil)

	data, err := ct.MarshalBinary()
	require.NoError(t, err)
	decoded := &Ciphertext{}
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.True(t, decoded.Equal(ct))
	require.True(t, pk.ValidateCiphertexts(decoded))

	decrypted, err := sk.Dec(decoded)
	require.NoError(t, err)
	require.Equal(t, saferith.Choice(1), decrypted.Eq(m))
}
