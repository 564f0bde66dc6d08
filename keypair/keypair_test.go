package keypair

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyswap/stellar-sdk-go/strkey"
)

func seedFromHex(t *testing.T, s string) (out [32]byte) {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 32)
	copy(out[:], b)
	return out
}

func TestRandom(t *testing.T) {
	kp1, err := Random()
	require.NoError(t, err)
	kp2, err := Random()
	require.NoError(t, err)

	assert.True(t, kp1.CanSign())
	assert.NotEqual(t, kp1.Address(), kp2.Address())
	assert.True(t, strkey.IsValidAccountID(kp1.Address()))

	seed, err := kp1.Seed()
	require.NoError(t, err)
	assert.True(t, strkey.IsValidSeed(seed))
}

func TestSeedRoundTrip(t *testing.T) {
	kp, err := Random()
	require.NoError(t, err)
	seed, err := kp.Seed()
	require.NoError(t, err)

	again, err := FromSecretSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), again.Address())
	assert.Equal(t, kp.PublicKey(), again.PublicKey())
}

func TestWellKnownPair(t *testing.T) {
	kp, err := FromSecretSeed("SBGWSG6BTNCKCOB3DIFBGCVMUPQFYPA2G4O34RMTB343OYPXU5DJDVMN")
	require.NoError(t, err)
	assert.Equal(t, "GDRXE2BQUC3AZNPVFSCEZ76NJ3WWL25FYFK6RGZGIEKWE4SOOHSUJUJ6", kp.Address())

	seed, err := kp.Seed()
	require.NoError(t, err)
	assert.Equal(t, "SBGWSG6BTNCKCOB3DIFBGCVMUPQFYPA2G4O34RMTB343OYPXU5DJDVMN", seed)
}

// RFC 8032 test vector 1 pins the signature scheme itself.
func TestSignKnownVector(t *testing.T) {
	kp := FromRawSeed(seedFromHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"))

	pub := kp.PublicKey()
	assert.Equal(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
		hex.EncodeToString(pub[:]))

	sig, err := kp.Sign(nil)
	require.NoError(t, err)
	assert.Equal(t,
		"e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e06522490155"+
			"5fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
		hex.EncodeToString(sig))

	assert.NoError(t, kp.Verify(nil, sig))
}

func TestSignAndVerify(t *testing.T) {
	kp, err := Random()
	require.NoError(t, err)

	msg := []byte("hello world")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig, 64)

	assert.NoError(t, kp.Verify(msg, sig))
	assert.ErrorIs(t, kp.Verify([]byte("other message"), sig), ErrInvalidSignature)

	bad := append([]byte(nil), sig...)
	bad[0] ^= 0xff
	assert.ErrorIs(t, kp.Verify(msg, bad), ErrInvalidSignature)

	// wrong sized signatures must error, not panic
	assert.ErrorIs(t, kp.Verify(msg, sig[:63]), ErrInvalidSignature)
	assert.ErrorIs(t, kp.Verify(msg, nil), ErrInvalidSignature)
}

func TestVerifyOnlyPair(t *testing.T) {
	full, err := Random()
	require.NoError(t, err)

	watch, err := FromAddress(full.Address())
	require.NoError(t, err)
	assert.False(t, watch.CanSign())
	assert.Equal(t, full.Address(), watch.Address())
	assert.Equal(t, full.Hint(), watch.Hint())

	_, err = watch.Sign([]byte("message"))
	assert.ErrorIs(t, err, ErrNoPrivateKey)

	_, err = watch.Seed()
	assert.ErrorIs(t, err, ErrNoPrivateKey)

	sig, err := full.Sign([]byte("message"))
	require.NoError(t, err)
	assert.NoError(t, watch.Verify([]byte("message"), sig))
}

func TestParse(t *testing.T) {
	full, err := Random()
	require.NoError(t, err)
	seed, err := full.Seed()
	require.NoError(t, err)

	kp, err := Parse(seed)
	require.NoError(t, err)
	assert.True(t, kp.CanSign())

	kp, err = Parse(full.Address())
	require.NoError(t, err)
	assert.False(t, kp.CanSign())

	_, err = Parse("garbage")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParse("garbage") })
}

func TestHint(t *testing.T) {
	kp, err := Random()
	require.NoError(t, err)
	pub := kp.PublicKey()
	hint := kp.Hint()
	assert.Equal(t, pub[28:], hint[:])
}

func TestFromPublicKey(t *testing.T) {
	full, err := Random()
	require.NoError(t, err)

	watch := FromPublicKey(full.PublicKey())
	assert.Equal(t, full.Address(), watch.Address())
	assert.False(t, watch.CanSign())
}
