package strkey

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumXModem(t *testing.T) {
	// standard CRC16/XMODEM check value
	assert.Equal(t, uint16(0x31C3), checksum([]byte("123456789")))
	assert.Equal(t, uint16(0), checksum(nil))
}

func seqBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i + 1)
	}
	return b
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		version VersionByte
		prefix  string
		payload []byte
	}{
		{"account", VersionAccountID, "G", seqBytes(32)},
		{"seed", VersionSeed, "S", seqBytes(32)},
		{"preAuthTx", VersionPreAuthTx, "T", seqBytes(32)},
		{"hashX", VersionHashX, "X", seqBytes(32)},
		{"contract", VersionContract, "C", seqBytes(32)},
		{"muxed", VersionMuxedAccount, "M", seqBytes(40)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Encode(tc.version, tc.payload)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(s, tc.prefix), "encoded %q should start with %q", s, tc.prefix)

			got, err := Decode(tc.version, s)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tc.payload, got))

			v, err := Version(s)
			require.NoError(t, err)
			assert.Equal(t, tc.version, v)
		})
	}
}

func TestEncodedLengths(t *testing.T) {
	g, err := Encode(VersionAccountID, seqBytes(32))
	require.NoError(t, err)
	assert.Len(t, g, 56)

	m, err := Encode(VersionMuxedAccount, seqBytes(40))
	require.NoError(t, err)
	assert.Len(t, m, 69)
}

func TestEncodeRejectsBadPayloadSize(t *testing.T) {
	_, err := Encode(VersionAccountID, seqBytes(31))
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Encode(VersionMuxedAccount, seqBytes(32))
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Encode(VersionByte(1), seqBytes(32))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestDecodeRejectsCorruption(t *testing.T) {
	s, err := Encode(VersionAccountID, seqBytes(32))
	require.NoError(t, err)

	// flip the final character to a different alphabet character
	last := s[len(s)-1]
	repl := byte('A')
	if last == repl {
		repl = 'B'
	}
	_, err = Decode(VersionAccountID, s[:len(s)-1]+string(repl))
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	// lowercase is not part of the alphabet
	_, err = Decode(VersionAccountID, strings.ToLower(s))
	assert.Error(t, err)

	// truncation breaks the checksum or the length
	_, err = Decode(VersionAccountID, s[:len(s)-8])
	assert.Error(t, err)

	_, err = Decode(VersionAccountID, "")
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	s, err := Encode(VersionSeed, seqBytes(32))
	require.NoError(t, err)

	_, err = Decode(VersionAccountID, s)
	assert.ErrorIs(t, err, ErrInvalidVersionByte)
}

func TestWellKnownAccount(t *testing.T) {
	addr := "GDRXE2BQUC3AZNPVFSCEZ76NJ3WWL25FYFK6RGZGIEKWE4SOOHSUJUJ6"
	seed := "SBGWSG6BTNCKCOB3DIFBGCVMUPQFYPA2G4O34RMTB343OYPXU5DJDVMN"

	assert.True(t, IsValidAccountID(addr))
	assert.False(t, IsValidAccountID(seed))
	assert.True(t, IsValidSeed(seed))
	assert.False(t, IsValidSeed(addr))

	payload, err := Decode(VersionAccountID, addr)
	require.NoError(t, err)
	assert.Len(t, payload, 32)
	assert.Equal(t, addr, MustEncode(VersionAccountID, payload))
}

func TestSignedPayload(t *testing.T) {
	key := seqBytes(32)

	for _, n := range []int{1, 3, 4, 29, 32, 64} {
		payload := seqBytes(n)
		s, err := EncodeSignedPayload(key, payload)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(s, "P"))

		gotKey, gotPayload, err := DecodeSignedPayload(s)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(key, gotKey))
		assert.True(t, bytes.Equal(payload, gotPayload))
	}

	_, err := EncodeSignedPayload(key, nil)
	assert.ErrorIs(t, err, ErrInvalidSignedPayload)

	_, err = EncodeSignedPayload(key, seqBytes(65))
	assert.ErrorIs(t, err, ErrInvalidSignedPayload)

	_, err = EncodeSignedPayload(seqBytes(16), seqBytes(8))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestSignedPayloadRejectsBadPadding(t *testing.T) {
	// length says 2 bytes but the padding area carries data
	raw := make([]byte, 40)
	copy(raw, seqBytes(32))
	raw[35] = 2 // big-endian length 2
	raw[36], raw[37] = 0xaa, 0xbb
	raw[38] = 0x01 // must be zero
	s, err := Encode(VersionSignedPayload, raw)
	require.NoError(t, err)

	_, _, err = DecodeSignedPayload(s)
	assert.ErrorIs(t, err, ErrInvalidSignedPayload)
}

func TestMuxedHelpers(t *testing.T) {
	m, err := Encode(VersionMuxedAccount, seqBytes(40))
	require.NoError(t, err)
	assert.True(t, IsValidMuxedAccountID(m))
	assert.False(t, IsValidMuxedAccountID("M"))

	c, err := Encode(VersionContract, seqBytes(32))
	require.NoError(t, err)
	assert.True(t, IsValidContractID(c))
}
