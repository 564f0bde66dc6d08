package data

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/strkey"
	"github.com/anyswap/stellar-sdk-go/xdr"
)

// CryptoKeyType tags the arms of the muxed account union.
type CryptoKeyType int32

const (
	KeyTypeEd25519      CryptoKeyType = 0
	KeyTypeMuxedEd25519 CryptoKeyType = 0x100
)

// AccountID is the ed25519 public key of a ledger account.
type AccountID [32]byte

// AccountIDFromAddress parses a G strkey address.
func AccountIDFromAddress(address string) (AccountID, error) {
	var id AccountID
	raw, err := strkey.Decode(strkey.VersionAccountID, address)
	if err != nil {
		return id, err
	}
	copy(id[:], raw)
	return id, nil
}

// MustAccountIDFromAddress is AccountIDFromAddress for addresses known
// to be well formed.
func MustAccountIDFromAddress(address string) AccountID {
	id, err := AccountIDFromAddress(address)
	if err != nil {
		panic(err)
	}
	return id
}

// Address renders the account id as a G strkey.
func (a AccountID) Address() string {
	return strkey.MustEncode(strkey.VersionAccountID, a[:])
}

func (a *AccountID) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(KeyTypeEd25519)); err != nil {
		return err
	}
	return xdr.WriteOpaque(w, a[:])
}

func (a *AccountID) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if t != int32(KeyTypeEd25519) {
		return fmt.Errorf("public key type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
	b, err := xdr.ReadOpaque(r, 32)
	if err != nil {
		return err
	}
	copy(a[:], b)
	return nil
}

// MuxedAccount addresses either a bare ed25519 account or one of its
// payment-multiplexed virtual accounts. Note the asymmetry: on the
// wire the multiplexed arm carries the id before the key, the text
// form appends the id after it.
type MuxedAccount struct {
	KeyType CryptoKeyType
	Ed25519 [32]byte
	ID      uint64
}

// NewMuxedAccount attaches a mux id to an account.
func NewMuxedAccount(account AccountID, id uint64) MuxedAccount {
	return MuxedAccount{KeyType: KeyTypeMuxedEd25519, Ed25519: account, ID: id}
}

// MuxedAccountFromAccountID wraps a bare account id.
func MuxedAccountFromAccountID(account AccountID) MuxedAccount {
	return MuxedAccount{KeyType: KeyTypeEd25519, Ed25519: account}
}

// MuxedAccountFromAddress parses either a G or an M address.
func MuxedAccountFromAddress(address string) (MuxedAccount, error) {
	var m MuxedAccount
	if len(address) > 0 && address[0] == 'M' {
		raw, err := strkey.Decode(strkey.VersionMuxedAccount, address)
		if err != nil {
			return m, err
		}
		m.KeyType = KeyTypeMuxedEd25519
		copy(m.Ed25519[:], raw[:32])
		m.ID = binary.BigEndian.Uint64(raw[32:])
		return m, nil
	}
	id, err := AccountIDFromAddress(address)
	if err != nil {
		return m, err
	}
	return MuxedAccountFromAccountID(id), nil
}

// MustMuxedAccountFromAddress is MuxedAccountFromAddress for addresses
// known to be well formed.
func MustMuxedAccountFromAddress(address string) MuxedAccount {
	m, err := MuxedAccountFromAddress(address)
	if err != nil {
		panic(err)
	}
	return m
}

// Address renders the text form, G or M depending on the arm.
func (m MuxedAccount) Address() string {
	if m.KeyType == KeyTypeMuxedEd25519 {
		raw := make([]byte, 40)
		copy(raw, m.Ed25519[:])
		binary.BigEndian.PutUint64(raw[32:], m.ID)
		return strkey.MustEncode(strkey.VersionMuxedAccount, raw)
	}
	return strkey.MustEncode(strkey.VersionAccountID, m.Ed25519[:])
}

// AccountID returns the underlying account, discarding any mux id.
func (m MuxedAccount) AccountID() AccountID {
	return AccountID(m.Ed25519)
}

// Muxed reports whether the account carries a mux id.
func (m MuxedAccount) Muxed() bool {
	return m.KeyType == KeyTypeMuxedEd25519
}

func (m *MuxedAccount) Marshal(w io.Writer) error {
	switch m.KeyType {
	case KeyTypeEd25519:
		if err := xdr.WriteInt32(w, int32(KeyTypeEd25519)); err != nil {
			return err
		}
		return xdr.WriteOpaque(w, m.Ed25519[:])
	case KeyTypeMuxedEd25519:
		if err := xdr.WriteInt32(w, int32(KeyTypeMuxedEd25519)); err != nil {
			return err
		}
		if err := xdr.WriteUint64(w, m.ID); err != nil {
			return err
		}
		return xdr.WriteOpaque(w, m.Ed25519[:])
	default:
		return fmt.Errorf("muxed account key type %d: %w", m.KeyType, xdr.ErrInvalidDiscriminant)
	}
}

func (m *MuxedAccount) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	switch CryptoKeyType(t) {
	case KeyTypeEd25519:
		m.KeyType = KeyTypeEd25519
		m.ID = 0
	case KeyTypeMuxedEd25519:
		m.KeyType = KeyTypeMuxedEd25519
		if m.ID, err = xdr.ReadUint64(r); err != nil {
			return err
		}
	default:
		return fmt.Errorf("muxed account key type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
	b, err := xdr.ReadOpaque(r, 32)
	if err != nil {
		return err
	}
	copy(m.Ed25519[:], b)
	return nil
}
