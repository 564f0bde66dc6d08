package keypair

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Hardened derivation offset. SLIP-10 ed25519 keys only exist on the
// hardened side of the tree.
const hardenedOffset = 0x80000000

const mnemonicSeedRounds = 2048

// NewMnemonicSeed stretches a BIP39 mnemonic sentence and passphrase
// into the 64 byte wallet seed. Extra whitespace between words is
// collapsed, no other normalization is applied.
func NewMnemonicSeed(mnemonic, passphrase string) []byte {
	sentence := strings.Join(strings.Fields(mnemonic), " ")
	return pbkdf2.Key([]byte(sentence), []byte("mnemonic"+passphrase), mnemonicSeedRounds, 64, sha512.New)
}

// FromBip39Seed derives the signing pair for the given account index at
// the wallet path m/44'/148'/account'.
func FromBip39Seed(seed []byte, account uint32) (*KeyPair, error) {
	key, err := deriveForPath(seed, 44, 148, account)
	if err != nil {
		return nil, err
	}
	var raw [32]byte
	copy(raw[:], key)
	return FromRawSeed(raw), nil
}

// deriveForPath walks a SLIP-10 ed25519 derivation path. Every index
// is forced hardened.
func deriveForPath(seed []byte, path ...uint32) ([]byte, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, errors.New("wallet seed length must be between 16 and 64 bytes")
	}
	key, chain := masterKey(seed)
	for _, index := range path {
		if index >= hardenedOffset {
			return nil, errors.New("derivation index out of range")
		}
		key, chain = childKey(key, chain, index+hardenedOffset)
	}
	return key, nil
}

func masterKey(seed []byte) (key, chain []byte) {
	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

func childKey(key, chain []byte, index uint32) ([]byte, []byte) {
	data := make([]byte, 0, 37)
	data = append(data, 0)
	data = append(data, key...)
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)
	data = append(data, idx[:]...)

	mac := hmac.New(sha512.New, chain)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}
