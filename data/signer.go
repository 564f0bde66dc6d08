package data

import (
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/strkey"
	"github.com/anyswap/stellar-sdk-go/xdr"
)

// SignerKeyType tags the signer key union.
type SignerKeyType int32

const (
	SignerKeyTypeEd25519              SignerKeyType = 0
	SignerKeyTypePreAuthTx            SignerKeyType = 1
	SignerKeyTypeHashX                SignerKeyType = 2
	SignerKeyTypeEd25519SignedPayload SignerKeyType = 3
)

// SignerKey is one of the key kinds an account can admit as a signer.
// Key carries the 32 byte material of every kind, the signed payload
// kind additionally carries Payload.
type SignerKey struct {
	Type    SignerKeyType
	Key     [32]byte
	Payload []byte
}

// SignerKeyEd25519 makes a plain public key signer.
func SignerKeyEd25519(account AccountID) SignerKey {
	return SignerKey{Type: SignerKeyTypeEd25519, Key: account}
}

// SignerKeyPreAuthTx makes a signer satisfied by the transaction whose
// hash it names.
func SignerKeyPreAuthTx(h Hash) SignerKey {
	return SignerKey{Type: SignerKeyTypePreAuthTx, Key: h}
}

// SignerKeyHashX makes a signer satisfied by revealing the preimage of
// the hash it names.
func SignerKeyHashX(h Hash) SignerKey {
	return SignerKey{Type: SignerKeyTypeHashX, Key: h}
}

// SignerKeySignedPayload makes a signer satisfied by a signature of
// the given payload under the given account key.
func SignerKeySignedPayload(account AccountID, payload []byte) (SignerKey, error) {
	if len(payload) == 0 || len(payload) > 64 {
		return SignerKey{}, ErrInvalidSignerPayload
	}
	p := make([]byte, len(payload))
	copy(p, payload)
	return SignerKey{Type: SignerKeyTypeEd25519SignedPayload, Key: account, Payload: p}, nil
}

// SignerKeyFromAddress parses any of the G, T, X and P text forms.
func SignerKeyFromAddress(address string) (SignerKey, error) {
	var k SignerKey
	v, err := strkey.Version(address)
	if err != nil {
		return k, err
	}
	switch v {
	case strkey.VersionAccountID:
		k.Type = SignerKeyTypeEd25519
	case strkey.VersionPreAuthTx:
		k.Type = SignerKeyTypePreAuthTx
	case strkey.VersionHashX:
		k.Type = SignerKeyTypeHashX
	case strkey.VersionSignedPayload:
		key, payload, err := strkey.DecodeSignedPayload(address)
		if err != nil {
			return k, err
		}
		k.Type = SignerKeyTypeEd25519SignedPayload
		copy(k.Key[:], key)
		k.Payload = payload
		return k, nil
	default:
		return k, strkey.ErrInvalidVersionByte
	}
	raw, err := strkey.Decode(v, address)
	if err != nil {
		return k, err
	}
	copy(k.Key[:], raw)
	return k, nil
}

// Address renders the signer key in its text form.
func (k SignerKey) Address() (string, error) {
	switch k.Type {
	case SignerKeyTypeEd25519:
		return strkey.Encode(strkey.VersionAccountID, k.Key[:])
	case SignerKeyTypePreAuthTx:
		return strkey.Encode(strkey.VersionPreAuthTx, k.Key[:])
	case SignerKeyTypeHashX:
		return strkey.Encode(strkey.VersionHashX, k.Key[:])
	case SignerKeyTypeEd25519SignedPayload:
		return strkey.EncodeSignedPayload(k.Key[:], k.Payload)
	default:
		return "", fmt.Errorf("signer key type %d: %w", k.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (k *SignerKey) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(k.Type)); err != nil {
		return err
	}
	switch k.Type {
	case SignerKeyTypeEd25519, SignerKeyTypePreAuthTx, SignerKeyTypeHashX:
		return xdr.WriteOpaque(w, k.Key[:])
	case SignerKeyTypeEd25519SignedPayload:
		if len(k.Payload) == 0 || len(k.Payload) > 64 {
			return ErrInvalidSignerPayload
		}
		if err := xdr.WriteOpaque(w, k.Key[:]); err != nil {
			return err
		}
		return xdr.WriteVarOpaque(w, 64, k.Payload)
	default:
		return fmt.Errorf("signer key type %d: %w", k.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (k *SignerKey) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	switch SignerKeyType(t) {
	case SignerKeyTypeEd25519, SignerKeyTypePreAuthTx, SignerKeyTypeHashX:
		k.Type = SignerKeyType(t)
		k.Payload = nil
	case SignerKeyTypeEd25519SignedPayload:
		k.Type = SignerKeyTypeEd25519SignedPayload
	default:
		return fmt.Errorf("signer key type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
	b, err := xdr.ReadOpaque(r, 32)
	if err != nil {
		return err
	}
	copy(k.Key[:], b)
	if k.Type == SignerKeyTypeEd25519SignedPayload {
		if k.Payload, err = xdr.ReadVarOpaque(r, 64); err != nil {
			return err
		}
		if len(k.Payload) == 0 {
			return ErrInvalidSignerPayload
		}
	}
	return nil
}

// Signer pairs a signer key with its voting weight.
type Signer struct {
	Key    SignerKey
	Weight uint32
}

func (s *Signer) Marshal(w io.Writer) error {
	if err := s.Key.Marshal(w); err != nil {
		return err
	}
	return xdr.WriteUint32(w, s.Weight)
}

func (s *Signer) Unmarshal(r *xdr.Reader) error {
	if err := s.Key.Unmarshal(r); err != nil {
		return err
	}
	var err error
	s.Weight, err = xdr.ReadUint32(r)
	return err
}

// DecoratedSignature attaches the four byte hint of the signing key to
// the raw signature bytes.
type DecoratedSignature struct {
	Hint      [4]byte
	Signature []byte
}

func (d *DecoratedSignature) Marshal(w io.Writer) error {
	if err := xdr.WriteOpaque(w, d.Hint[:]); err != nil {
		return err
	}
	return xdr.WriteVarOpaque(w, 64, d.Signature)
}

func (d *DecoratedSignature) Unmarshal(r *xdr.Reader) error {
	b, err := xdr.ReadOpaque(r, 4)
	if err != nil {
		return err
	}
	copy(d.Hint[:], b)
	d.Signature, err = xdr.ReadVarOpaque(r, 64)
	return err
}
