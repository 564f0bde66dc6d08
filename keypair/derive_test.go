package keypair

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "illness spike retreat truth genius clock brain pass fit cave bargain toe"

func TestNewMnemonicSeed(t *testing.T) {
	seed := NewMnemonicSeed(testMnemonic, "")
	assert.Equal(t,
		"e4a5a632e70943ae7f07659df1332160937fad82587216a4c64315a0fb39497e"+
			"e4a01f76ddab4cba68147977f3a147b6ad584c41808e8238a07f6cc4b582f186",
		hex.EncodeToString(seed))

	// a passphrase changes the seed
	assert.NotEqual(t, seed, NewMnemonicSeed(testMnemonic, "p4ssphr4se"))

	// whitespace between words does not matter
	assert.Equal(t, seed, NewMnemonicSeed("  illness  spike retreat truth genius clock brain pass fit cave bargain toe ", ""))
}

func TestFromBip39Seed(t *testing.T) {
	seed := NewMnemonicSeed(testMnemonic, "")

	kp, err := FromBip39Seed(seed, 0)
	require.NoError(t, err)
	assert.Equal(t, "GDRXE2BQUC3AZNPVFSCEZ76NJ3WWL25FYFK6RGZGIEKWE4SOOHSUJUJ6", kp.Address())

	s, err := kp.Seed()
	require.NoError(t, err)
	assert.Equal(t, "SBGWSG6BTNCKCOB3DIFBGCVMUPQFYPA2G4O34RMTB343OYPXU5DJDVMN", s)
}

func TestFromBip39SeedAccounts(t *testing.T) {
	seed := NewMnemonicSeed(testMnemonic, "")

	kp0, err := FromBip39Seed(seed, 0)
	require.NoError(t, err)
	kp1, err := FromBip39Seed(seed, 1)
	require.NoError(t, err)
	assert.NotEqual(t, kp0.Address(), kp1.Address())

	// derivation is deterministic
	again, err := FromBip39Seed(seed, 1)
	require.NoError(t, err)
	assert.Equal(t, kp1.Address(), again.Address())
}

func TestFromBip39SeedRejectsBadSeed(t *testing.T) {
	_, err := FromBip39Seed(make([]byte, 8), 0)
	assert.Error(t, err)

	_, err = FromBip39Seed(make([]byte, 80), 0)
	assert.Error(t, err)
}

func TestDeriveRejectsHardenedIndex(t *testing.T) {
	seed := NewMnemonicSeed(testMnemonic, "")
	_, err := FromBip39Seed(seed, hardenedOffset)
	assert.Error(t, err)
}
