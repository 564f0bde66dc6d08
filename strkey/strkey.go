// Package strkey implements the checksummed base32 text encoding for
// ledger keys. An encoded key is one version byte naming the key kind,
// the raw payload, and a two byte little-endian CRC16 checksum, all run
// through unpadded standard base32. The version bytes are chosen so the
// first character of the output names the kind: G for account ids, S
// for seeds, M for multiplexed accounts, T for pre-auth transaction
// hashes, X for hash-x preimages, P for signed payloads and C for
// contracts.
package strkey

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
)

// VersionByte identifies the kind of key carried by an encoded string.
type VersionByte byte

const (
	VersionAccountID     VersionByte = 6 << 3  // 'G'
	VersionContract      VersionByte = 2 << 3  // 'C'
	VersionMuxedAccount  VersionByte = 12 << 3 // 'M'
	VersionSignedPayload VersionByte = 15 << 3 // 'P'
	VersionSeed          VersionByte = 18 << 3 // 'S'
	VersionPreAuthTx     VersionByte = 19 << 3 // 'T'
	VersionHashX         VersionByte = 23 << 3 // 'X'
)

var (
	ErrInvalidVersionByte   = errors.New("invalid version byte")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrInvalidLength        = errors.New("invalid encoded length")
	ErrNonCanonical         = errors.New("non canonical base32 encoding")
	ErrInvalidSignedPayload = errors.New("invalid signed payload")
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

func payloadSizeValid(v VersionByte, n int) bool {
	switch v {
	case VersionAccountID, VersionSeed, VersionPreAuthTx, VersionHashX, VersionContract:
		return n == 32
	case VersionMuxedAccount:
		// ed25519 key plus 8 byte id
		return n == 40
	case VersionSignedPayload:
		// ed25519 key, 4 byte length, payload padded to 4 bytes
		return n >= 40 && n <= 100 && n%4 == 0
	}
	return false
}

// Encode wraps payload with the version byte and checksum.
func Encode(version VersionByte, payload []byte) (string, error) {
	if !payloadSizeValid(version, len(payload)) {
		return "", ErrInvalidLength
	}
	raw := make([]byte, 0, len(payload)+3)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)
	crc := checksum(raw)
	raw = append(raw, byte(crc), byte(crc>>8))
	return b32.EncodeToString(raw), nil
}

// MustEncode is Encode for payloads known to be well formed.
func MustEncode(version VersionByte, payload []byte) string {
	s, err := Encode(version, payload)
	if err != nil {
		panic(err)
	}
	return s
}

// Decode parses s, verifies checksum and canonical form, and returns
// the payload when the version byte matches expected.
func Decode(expected VersionByte, s string) ([]byte, error) {
	raw, err := decodeRaw(s)
	if err != nil {
		return nil, err
	}
	if VersionByte(raw[0]) != expected {
		return nil, ErrInvalidVersionByte
	}
	payload := raw[1 : len(raw)-2]
	if !payloadSizeValid(expected, len(payload)) {
		return nil, ErrInvalidLength
	}
	return payload, nil
}

// Version reports the version byte of an encoded key without the
// caller knowing the kind in advance.
func Version(s string) (VersionByte, error) {
	raw, err := decodeRaw(s)
	if err != nil {
		return 0, err
	}
	v := VersionByte(raw[0])
	switch v {
	case VersionAccountID, VersionSeed, VersionMuxedAccount,
		VersionPreAuthTx, VersionHashX, VersionSignedPayload, VersionContract:
	default:
		return 0, ErrInvalidVersionByte
	}
	if !payloadSizeValid(v, len(raw)-3) {
		return 0, ErrInvalidLength
	}
	return v, nil
}

// decodeRaw unwraps base32, insists the encoding is the canonical one
// for the decoded bytes, and verifies the trailing checksum.
func decodeRaw(s string) ([]byte, error) {
	if len(s) < 5 {
		return nil, ErrInvalidLength
	}
	raw, err := b32.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if b32.EncodeToString(raw) != s {
		return nil, ErrNonCanonical
	}
	if len(raw) < 3 {
		return nil, ErrInvalidLength
	}
	want := checksum(raw[:len(raw)-2])
	got := binary.LittleEndian.Uint16(raw[len(raw)-2:])
	if got != want {
		return nil, ErrChecksumMismatch
	}
	return raw, nil
}

// EncodeSignedPayload builds a P key from an ed25519 key and a payload
// of 1 to 64 bytes. The payload travels length prefixed and zero padded
// to four bytes inside the strkey payload.
func EncodeSignedPayload(ed25519Key, payload []byte) (string, error) {
	if len(ed25519Key) != 32 {
		return "", ErrInvalidLength
	}
	if len(payload) == 0 || len(payload) > 64 {
		return "", ErrInvalidSignedPayload
	}
	padded := (len(payload) + 3) &^ 3
	raw := make([]byte, 36+padded)
	copy(raw, ed25519Key)
	binary.BigEndian.PutUint32(raw[32:36], uint32(len(payload)))
	copy(raw[36:], payload)
	return Encode(VersionSignedPayload, raw)
}

// DecodeSignedPayload splits a P key into its inner ed25519 key and
// payload, rejecting bad inner lengths and non zero padding.
func DecodeSignedPayload(s string) (ed25519Key, payload []byte, err error) {
	raw, err := Decode(VersionSignedPayload, s)
	if err != nil {
		return nil, nil, err
	}
	n := binary.BigEndian.Uint32(raw[32:36])
	if n == 0 || n > 64 {
		return nil, nil, ErrInvalidSignedPayload
	}
	padded := raw[36:]
	if len(padded) != (int(n)+3)&^3 {
		return nil, nil, ErrInvalidSignedPayload
	}
	for _, c := range padded[n:] {
		if c != 0 {
			return nil, nil, ErrInvalidSignedPayload
		}
	}
	return raw[:32], padded[:n], nil
}

// IsValidAccountID reports whether s is a well formed G key.
func IsValidAccountID(s string) bool {
	_, err := Decode(VersionAccountID, s)
	return err == nil
}

// IsValidSeed reports whether s is a well formed S key.
func IsValidSeed(s string) bool {
	_, err := Decode(VersionSeed, s)
	return err == nil
}

// IsValidMuxedAccountID reports whether s is a well formed M key.
func IsValidMuxedAccountID(s string) bool {
	_, err := Decode(VersionMuxedAccount, s)
	return err == nil
}

// IsValidContractID reports whether s is a well formed C key.
func IsValidContractID(s string) bool {
	_, err := Decode(VersionContract, s)
	return err == nil
}
