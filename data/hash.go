// Package data defines the ledger wire model: accounts, assets,
// operations, transactions and envelopes, each knowing how to marshal
// itself to and from the XDR byte form.
package data

import (
	"errors"
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/common"
	"github.com/anyswap/stellar-sdk-go/xdr"
)

// Hash is a 32 byte SHA-256 digest as used across the protocol.
type Hash [32]byte

func (h *Hash) Marshal(w io.Writer) error {
	return xdr.WriteOpaque(w, h[:])
}

func (h *Hash) Unmarshal(r *xdr.Reader) error {
	b, err := xdr.ReadOpaque(r, 32)
	if err != nil {
		return err
	}
	copy(h[:], b)
	return nil
}

func (h Hash) String() string {
	return common.ToHex(h[:])
}

// HashFromHex parses a 64 character hex digest.
func HashFromHex(s string) (Hash, error) {
	var h Hash
	b, err := common.FromHex(s)
	if err != nil {
		return h, err
	}
	if len(b) != 32 {
		return h, errors.New("hash must be 32 bytes")
	}
	copy(h[:], b)
	return h, nil
}

// PoolID identifies a liquidity pool ledger entry.
type PoolID Hash

func (p *PoolID) Marshal(w io.Writer) error {
	return (*Hash)(p).Marshal(w)
}

func (p *PoolID) Unmarshal(r *xdr.Reader) error {
	return (*Hash)(p).Unmarshal(r)
}

func (p PoolID) String() string {
	return Hash(p).String()
}

// ClaimableBalanceID names a claimable balance entry. Only the v0
// form exists, a tagged SHA-256.
type ClaimableBalanceID struct {
	V0 Hash
}

func (b *ClaimableBalanceID) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, 0); err != nil {
		return err
	}
	return b.V0.Marshal(w)
}

func (b *ClaimableBalanceID) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if t != 0 {
		return fmt.Errorf("claimable balance id type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
	return b.V0.Unmarshal(r)
}

// String renders the hex of the full wire form, the shape gateway APIs
// hand out.
func (b ClaimableBalanceID) String() string {
	raw, err := xdr.Marshal(&b)
	if err != nil {
		return ""
	}
	return common.ToHex(raw)
}

// ClaimableBalanceIDFromHex parses the 72 character hex form.
func ClaimableBalanceIDFromHex(s string) (ClaimableBalanceID, error) {
	var id ClaimableBalanceID
	raw, err := common.FromHex(s)
	if err != nil {
		return id, err
	}
	if err := xdr.Unmarshal(raw, &id); err != nil {
		return id, err
	}
	return id, nil
}
