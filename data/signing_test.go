package data

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyswap/stellar-sdk-go/keypair"
)

func testKeyPair(fill byte) *keypair.KeyPair {
	var seed [32]byte
	for i := range seed {
		seed[i] = fill
	}
	return keypair.FromRawSeed(seed)
}

func testEnvelope(t *testing.T, kp *keypair.KeyPair) *TransactionEnvelope {
	t.Helper()
	source := MuxedAccountFromAccountID(AccountID(kp.PublicKey()))
	b := NewTransactionBuilder(source, 1)
	require.NoError(t, b.AddOperation(testPayment(t, 0x22, 1)))
	env, err := b.BuildEnvelope()
	require.NoError(t, err)
	return env
}

func TestSignAndVerify(t *testing.T) {
	kp := testKeyPair(0x01)
	env := testEnvelope(t, kp)
	require.NoError(t, env.Sign(TestNetwork, kp))

	sigs := env.Signatures()
	require.Len(t, sigs, 1)
	assert.Equal(t, kp.Hint(), sigs[0].Hint)

	hash, err := env.Hash(TestNetwork)
	require.NoError(t, err)
	assert.NoError(t, kp.Verify(hash[:], sigs[0].Signature))

	// a second signer stacks another signature
	kp2 := testKeyPair(0x02)
	require.NoError(t, env.Sign(TestNetwork, kp2))
	sigs = env.Signatures()
	require.Len(t, sigs, 2)
	assert.NoError(t, kp2.Verify(hash[:], sigs[1].Signature))
}

func TestNetworkSeparatesHashes(t *testing.T) {
	kp := testKeyPair(0x01)
	env := testEnvelope(t, kp)

	testHash, err := env.Hash(TestNetwork)
	require.NoError(t, err)
	pubHash, err := env.Hash(PublicNetwork)
	require.NoError(t, err)
	assert.NotEqual(t, testHash, pubHash)

	// a testnet signature does not verify against the pubnet hash
	require.NoError(t, env.Sign(TestNetwork, kp))
	sig := env.Signatures()[0].Signature
	assert.NoError(t, kp.Verify(testHash[:], sig))
	assert.Error(t, kp.Verify(pubHash[:], sig))
}

func TestFeeBumpSigning(t *testing.T) {
	inner := testKeyPair(0x01)
	env := testEnvelope(t, inner)
	require.NoError(t, env.Sign(TestNetwork, inner))

	sponsor := testKeyPair(0x03)
	feeSource := MuxedAccountFromAccountID(AccountID(sponsor.PublicKey()))
	bump, err := BuildFeeBump(env, feeSource, 400)
	require.NoError(t, err)

	innerHash, err := env.Hash(TestNetwork)
	require.NoError(t, err)
	bumpHash, err := bump.Hash(TestNetwork)
	require.NoError(t, err)
	assert.NotEqual(t, innerHash, bumpHash)

	require.NoError(t, bump.Sign(TestNetwork, sponsor))
	sigs := bump.Signatures()
	require.Len(t, sigs, 1)
	assert.NoError(t, sponsor.Verify(bumpHash[:], sigs[0].Signature))

	// the inner signature set rides along untouched
	assert.Len(t, bump.FeeBump.Tx.Inner.Signatures, 1)
	assert.NoError(t, inner.Verify(innerHash[:], bump.FeeBump.Tx.Inner.Signatures[0].Signature))
}

func TestSignPayloadHint(t *testing.T) {
	kp := testKeyPair(0x01)
	env := testEnvelope(t, kp)

	payload := []byte{1, 2, 3, 4, 5, 6}
	require.NoError(t, env.SignPayload(kp, payload))

	sig := env.Signatures()[0]
	want := kp.Hint()
	for i := 0; i < 4; i++ {
		want[i] ^= payload[len(payload)-4+i]
	}
	assert.Equal(t, want, sig.Hint)
	assert.NoError(t, kp.Verify(payload, sig.Signature))
}

func TestSignPayloadShortHint(t *testing.T) {
	kp := testKeyPair(0x01)
	sig, err := NewDecoratedSignatureForPayload(kp, []byte{0xaa, 0xbb})
	require.NoError(t, err)

	// short payloads pad on the right, so only the leading bytes flip
	want := kp.Hint()
	want[0] ^= 0xaa
	want[1] ^= 0xbb
	assert.Equal(t, want, sig.Hint)
}

func TestSignHashX(t *testing.T) {
	kp := testKeyPair(0x01)
	env := testEnvelope(t, kp)

	preimage := []byte("open sesame")
	require.NoError(t, env.SignHashX(preimage))

	sig := env.Signatures()[0]
	assert.Equal(t, preimage, sig.Signature)

	h := sha256.Sum256(preimage)
	var hint [4]byte
	copy(hint[:], h[28:])
	assert.Equal(t, hint, sig.Hint)

	_, err := NewHashXSignature(make([]byte, 65))
	assert.ErrorIs(t, err, ErrPreimageTooLong)
	_, err = NewHashXSignature(make([]byte, 64))
	assert.NoError(t, err)
}

func TestSignatureCap(t *testing.T) {
	kp := testKeyPair(0x01)
	env := testEnvelope(t, kp)
	for i := 0; i < maxSignatures; i++ {
		require.NoError(t, env.SignHashX([]byte{byte(i)}))
	}
	err := env.Sign(TestNetwork, kp)
	assert.ErrorIs(t, err, ErrTooManySignatures)
	assert.Len(t, env.Signatures(), maxSignatures)
}

func TestSignV0Envelope(t *testing.T) {
	kp := testKeyPair(0x04)
	v0 := TransactionV0{
		SourceEd25519: kp.PublicKey(),
		Fee:           100,
		SeqNum:        9,
		Memo:          MemoNone(),
		Operations:    []Operation{NewBumpSequence(10)},
	}
	env := &TransactionEnvelope{Type: EnvelopeTypeTxV0, V0: &TransactionV0Envelope{Tx: v0}}
	require.NoError(t, env.Sign(TestNetwork, kp))

	// the v0 signature payload is the lifted v1 body
	hash, err := v0.V1().Hash(TestNetwork)
	require.NoError(t, err)
	assert.NoError(t, kp.Verify(hash[:], env.Signatures()[0].Signature))
}

func TestSignaturesSurviveWire(t *testing.T) {
	kp := testKeyPair(0x01)
	env := testEnvelope(t, kp)
	require.NoError(t, env.Sign(TestNetwork, kp))

	s64, err := env.Base64()
	require.NoError(t, err)
	back, err := EnvelopeFromBase64(s64)
	require.NoError(t, err)

	hash, err := back.Hash(TestNetwork)
	require.NoError(t, err)
	sigs := back.Signatures()
	require.Len(t, sigs, 1)
	assert.NoError(t, kp.Verify(hash[:], sigs[0].Signature))
}
