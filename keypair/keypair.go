// Package keypair manages ed25519 signing keys addressed by their
// strkey text form: G account ids for the public half, S seeds for the
// private half.
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"

	"github.com/anyswap/stellar-sdk-go/strkey"
)

var (
	ErrNoPrivateKey     = errors.New("keypair has no private key")
	ErrInvalidSignature = errors.New("signature verification failed")
)

// KeyPair holds an ed25519 public key and, when built from a seed, the
// matching private key. A verify-only pair signs nothing but still
// verifies signatures and renders its address.
type KeyPair struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// Random makes a pair from a fresh random seed.
func Random() (*KeyPair, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	return FromRawSeed(seed), nil
}

// FromRawSeed derives the pair deterministically from seed bytes.
func FromRawSeed(seed [32]byte) *KeyPair {
	priv := ed25519.NewKeyFromSeed(seed[:])
	return &KeyPair{
		pub:  priv.Public().(ed25519.PublicKey),
		priv: priv,
	}
}

// FromSecretSeed parses an S seed string into a signing pair.
func FromSecretSeed(seed string) (*KeyPair, error) {
	raw, err := strkey.Decode(strkey.VersionSeed, seed)
	if err != nil {
		return nil, err
	}
	var s [32]byte
	copy(s[:], raw)
	return FromRawSeed(s), nil
}

// FromAddress builds a verify-only pair from a G account id.
func FromAddress(address string) (*KeyPair, error) {
	raw, err := strkey.Decode(strkey.VersionAccountID, address)
	if err != nil {
		return nil, err
	}
	return &KeyPair{pub: ed25519.PublicKey(raw)}, nil
}

// FromPublicKey builds a verify-only pair from raw key bytes.
func FromPublicKey(pub [32]byte) *KeyPair {
	return &KeyPair{pub: ed25519.PublicKey(pub[:])}
}

// Parse accepts either an S seed or a G address.
func Parse(addressOrSeed string) (*KeyPair, error) {
	if kp, err := FromSecretSeed(addressOrSeed); err == nil {
		return kp, nil
	}
	return FromAddress(addressOrSeed)
}

// MustParse is Parse for keys known to be well formed.
func MustParse(addressOrSeed string) *KeyPair {
	kp, err := Parse(addressOrSeed)
	if err != nil {
		panic(err)
	}
	return kp
}

// Address renders the public half as a G string.
func (kp *KeyPair) Address() string {
	return strkey.MustEncode(strkey.VersionAccountID, kp.pub)
}

// Seed renders the private half as an S string.
func (kp *KeyPair) Seed() (string, error) {
	if kp.priv == nil {
		return "", ErrNoPrivateKey
	}
	return strkey.MustEncode(strkey.VersionSeed, kp.priv.Seed()), nil
}

// PublicKey returns the raw 32 byte public key.
func (kp *KeyPair) PublicKey() [32]byte {
	var out [32]byte
	copy(out[:], kp.pub)
	return out
}

// Hint is the last four bytes of the public key, the short identifier
// carried next to signatures on the wire.
func (kp *KeyPair) Hint() [4]byte {
	var h [4]byte
	copy(h[:], kp.pub[28:])
	return h
}

// CanSign reports whether the pair carries a private key.
func (kp *KeyPair) CanSign() bool {
	return kp.priv != nil
}

// Sign signs input with the private key.
func (kp *KeyPair) Sign(input []byte) ([]byte, error) {
	if kp.priv == nil {
		return nil, ErrNoPrivateKey
	}
	return ed25519.Sign(kp.priv, input), nil
}

// Verify checks sig over input. Malformed signatures are reported as
// ErrInvalidSignature, never as a panic.
func (kp *KeyPair) Verify(input, sig []byte) error {
	if len(kp.pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}
	if !ed25519.Verify(kp.pub, input, sig) {
		return ErrInvalidSignature
	}
	return nil
}
