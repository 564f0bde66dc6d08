package data

import (
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// BeginSponsoringFutureReserves starts paying reserves for entries the
// sponsored account creates, until the sponsored account ends the
// sandwich.
type BeginSponsoringFutureReserves struct {
	OpBase
	SponsoredID AccountID
}

func NewBeginSponsoringFutureReserves(sponsoredID AccountID) *BeginSponsoringFutureReserves {
	return &BeginSponsoringFutureReserves{SponsoredID: sponsoredID}
}

func (op *BeginSponsoringFutureReserves) Type() OperationType {
	return OperationTypeBeginSponsoringFutureReserves
}

func (op *BeginSponsoringFutureReserves) Validate() error { return nil }

func (op *BeginSponsoringFutureReserves) marshalBody(w io.Writer) error {
	return op.SponsoredID.Marshal(w)
}

func (op *BeginSponsoringFutureReserves) unmarshalBody(r *xdr.Reader) error {
	return op.SponsoredID.Unmarshal(r)
}

// EndSponsoringFutureReserves closes the sponsorship sandwich opened
// by the matching begin operation. The body is empty.
type EndSponsoringFutureReserves struct {
	OpBase
}

func NewEndSponsoringFutureReserves() *EndSponsoringFutureReserves {
	return new(EndSponsoringFutureReserves)
}

func (op *EndSponsoringFutureReserves) Type() OperationType {
	return OperationTypeEndSponsoringFutureReserves
}

func (op *EndSponsoringFutureReserves) Validate() error { return nil }

func (op *EndSponsoringFutureReserves) marshalBody(io.Writer) error { return nil }

func (op *EndSponsoringFutureReserves) unmarshalBody(*xdr.Reader) error { return nil }

// RevokeSponsorshipType tags the revoke sponsorship union.
type RevokeSponsorshipType int32

const (
	RevokeSponsorshipLedgerEntry RevokeSponsorshipType = 0
	RevokeSponsorshipSigner      RevokeSponsorshipType = 1
)

// RevokeSponsorshipSignerTarget names a signer on an account whose
// sponsorship is being revoked.
type RevokeSponsorshipSignerTarget struct {
	AccountID AccountID
	SignerKey SignerKey
}

// RevokeSponsorship withdraws sponsorship from exactly one target, a
// ledger entry or an account signer. Use the setters, they refuse a
// second target instead of silently replacing the first.
type RevokeSponsorship struct {
	OpBase
	LedgerKey *LedgerKey
	Signer    *RevokeSponsorshipSignerTarget
}

func NewRevokeSponsorship() *RevokeSponsorship { return new(RevokeSponsorship) }

// SetLedgerKeyTarget points the revocation at a ledger entry. Only
// entry types that can carry a sponsor are accepted.
func (op *RevokeSponsorship) SetLedgerKeyTarget(key LedgerKey) error {
	if op.LedgerKey != nil || op.Signer != nil {
		return ErrTargetAlreadySet
	}
	if key.Type > LedgerEntryTypeLiquidityPool {
		return ErrInvalidLedgerKey
	}
	if err := key.Validate(); err != nil {
		return err
	}
	op.LedgerKey = &key
	return nil
}

// SetSignerTarget points the revocation at a signer of an account.
func (op *RevokeSponsorship) SetSignerTarget(account AccountID, signer SignerKey) error {
	if op.LedgerKey != nil || op.Signer != nil {
		return ErrTargetAlreadySet
	}
	op.Signer = &RevokeSponsorshipSignerTarget{AccountID: account, SignerKey: signer}
	return nil
}

func (op *RevokeSponsorship) Type() OperationType { return OperationTypeRevokeSponsorship }

func (op *RevokeSponsorship) Validate() error {
	switch {
	case op.LedgerKey != nil && op.Signer != nil:
		return ErrTargetAlreadySet
	case op.LedgerKey != nil:
		if op.LedgerKey.Type > LedgerEntryTypeLiquidityPool {
			return ErrInvalidLedgerKey
		}
		return op.LedgerKey.Validate()
	case op.Signer != nil:
		return nil
	default:
		return ErrNoTarget
	}
}

func (op *RevokeSponsorship) marshalBody(w io.Writer) error {
	if err := op.Validate(); err != nil {
		return err
	}
	if op.LedgerKey != nil {
		if err := xdr.WriteInt32(w, int32(RevokeSponsorshipLedgerEntry)); err != nil {
			return err
		}
		return op.LedgerKey.Marshal(w)
	}
	if err := xdr.WriteInt32(w, int32(RevokeSponsorshipSigner)); err != nil {
		return err
	}
	if err := op.Signer.AccountID.Marshal(w); err != nil {
		return err
	}
	return op.Signer.SignerKey.Marshal(w)
}

func (op *RevokeSponsorship) unmarshalBody(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	switch RevokeSponsorshipType(t) {
	case RevokeSponsorshipLedgerEntry:
		op.LedgerKey = new(LedgerKey)
		if err := op.LedgerKey.Unmarshal(r); err != nil {
			return err
		}
		if op.LedgerKey.Type > LedgerEntryTypeLiquidityPool {
			return ErrInvalidLedgerKey
		}
		return nil
	case RevokeSponsorshipSigner:
		op.Signer = new(RevokeSponsorshipSignerTarget)
		if err := op.Signer.AccountID.Unmarshal(r); err != nil {
			return err
		}
		return op.Signer.SignerKey.Unmarshal(r)
	default:
		return fmt.Errorf("revoke sponsorship type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}
