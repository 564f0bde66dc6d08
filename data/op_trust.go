package data

import (
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// Trustline flag bits.
const (
	TrustLineAuthorized          uint32 = 1
	TrustLineMaintainLiabilities uint32 = 2
	TrustLineClawbackEnabled     uint32 = 4
)

// ChangeTrust opens, adjusts or closes a trustline. Limit zero closes
// it.
type ChangeTrust struct {
	OpBase
	Line  ChangeTrustAsset
	Limit int64
}

func NewChangeTrust(line ChangeTrustAsset, limit int64) *ChangeTrust {
	return &ChangeTrust{Line: line, Limit: limit}
}

func (op *ChangeTrust) Type() OperationType { return OperationTypeChangeTrust }

func (op *ChangeTrust) Validate() error {
	if err := op.Line.Validate(); err != nil {
		return err
	}
	if op.Line.Asset.Type == AssetTypeNative {
		return ErrNativeNotAllowed
	}
	return nonNegativeAmount(op.Limit)
}

func (op *ChangeTrust) marshalBody(w io.Writer) error {
	if err := op.Line.Marshal(w); err != nil {
		return err
	}
	return xdr.WriteInt64(w, op.Limit)
}

func (op *ChangeTrust) unmarshalBody(r *xdr.Reader) error {
	if err := op.Line.Unmarshal(r); err != nil {
		return err
	}
	var err error
	op.Limit, err = xdr.ReadInt64(r)
	return err
}

// AllowTrust is the legacy authorization switch. The issuer names the
// trustor and one of its own asset codes, Authorize is 0, 1
// (authorized) or 2 (maintain liabilities only).
type AllowTrust struct {
	OpBase
	Trustor   AccountID
	Code      string
	Authorize uint32
}

func NewAllowTrust(trustor AccountID, code string, authorize uint32) *AllowTrust {
	return &AllowTrust{Trustor: trustor, Code: code, Authorize: authorize}
}

func (op *AllowTrust) Type() OperationType { return OperationTypeAllowTrust }

func (op *AllowTrust) Validate() error {
	if err := validAssetCode(op.Code); err != nil {
		return err
	}
	if op.Authorize > TrustLineMaintainLiabilities {
		return ErrInvalidAuthorizeFlag
	}
	return nil
}

func (op *AllowTrust) marshalBody(w io.Writer) error {
	if err := validAssetCode(op.Code); err != nil {
		return err
	}
	if err := op.Trustor.Marshal(w); err != nil {
		return err
	}
	t, size := AssetTypeCreditAlphanum4, 4
	if len(op.Code) > 4 {
		t, size = AssetTypeCreditAlphanum12, 12
	}
	if err := xdr.WriteInt32(w, int32(t)); err != nil {
		return err
	}
	if err := marshalAssetCode(w, op.Code, size); err != nil {
		return err
	}
	return xdr.WriteUint32(w, op.Authorize)
}

func (op *AllowTrust) unmarshalBody(r *xdr.Reader) error {
	if err := op.Trustor.Unmarshal(r); err != nil {
		return err
	}
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	switch AssetType(t) {
	case AssetTypeCreditAlphanum4:
		op.Code, err = unmarshalAssetCode(r, 4)
	case AssetTypeCreditAlphanum12:
		op.Code, err = unmarshalAssetCode(r, 12)
	default:
		return fmt.Errorf("asset code type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
	if err != nil {
		return err
	}
	op.Authorize, err = xdr.ReadUint32(r)
	return err
}

// SetTrustLineFlags is the modern flag switch. Clawback can only be
// cleared, never set after the fact.
type SetTrustLineFlags struct {
	OpBase
	Trustor    AccountID
	Asset      Asset
	ClearFlags uint32
	SetFlags   uint32
}

func NewSetTrustLineFlags(trustor AccountID, asset Asset, clearFlags, setFlags uint32) *SetTrustLineFlags {
	return &SetTrustLineFlags{Trustor: trustor, Asset: asset, ClearFlags: clearFlags, SetFlags: setFlags}
}

func (op *SetTrustLineFlags) Type() OperationType { return OperationTypeSetTrustLineFlags }

func (op *SetTrustLineFlags) Validate() error {
	if err := op.Asset.Validate(); err != nil {
		return err
	}
	if op.Asset.Type == AssetTypeNative {
		return ErrNativeNotAllowed
	}
	known := TrustLineAuthorized | TrustLineMaintainLiabilities | TrustLineClawbackEnabled
	if op.ClearFlags&^known != 0 || op.SetFlags&^known != 0 {
		return ErrInvalidTrustFlags
	}
	if op.ClearFlags&op.SetFlags != 0 {
		return ErrInvalidTrustFlags
	}
	if op.SetFlags&TrustLineClawbackEnabled != 0 {
		return ErrInvalidTrustFlags
	}
	return nil
}

func (op *SetTrustLineFlags) marshalBody(w io.Writer) error {
	if err := op.Trustor.Marshal(w); err != nil {
		return err
	}
	if err := op.Asset.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteUint32(w, op.ClearFlags); err != nil {
		return err
	}
	return xdr.WriteUint32(w, op.SetFlags)
}

func (op *SetTrustLineFlags) unmarshalBody(r *xdr.Reader) error {
	if err := op.Trustor.Unmarshal(r); err != nil {
		return err
	}
	if err := op.Asset.Unmarshal(r); err != nil {
		return err
	}
	var err error
	if op.ClearFlags, err = xdr.ReadUint32(r); err != nil {
		return err
	}
	op.SetFlags, err = xdr.ReadUint32(r)
	return err
}

// Clawback burns an amount of the issuer's asset held by another
// account.
type Clawback struct {
	OpBase
	Asset  Asset
	From   MuxedAccount
	Amount int64
}

func NewClawback(asset Asset, from MuxedAccount, amount int64) *Clawback {
	return &Clawback{Asset: asset, From: from, Amount: amount}
}

func (op *Clawback) Type() OperationType { return OperationTypeClawback }

func (op *Clawback) Validate() error {
	if err := op.Asset.Validate(); err != nil {
		return err
	}
	if op.Asset.Type == AssetTypeNative {
		return ErrNativeNotAllowed
	}
	return positiveAmount(op.Amount)
}

func (op *Clawback) marshalBody(w io.Writer) error {
	if err := op.Asset.Marshal(w); err != nil {
		return err
	}
	if err := op.From.Marshal(w); err != nil {
		return err
	}
	return xdr.WriteInt64(w, op.Amount)
}

func (op *Clawback) unmarshalBody(r *xdr.Reader) error {
	if err := op.Asset.Unmarshal(r); err != nil {
		return err
	}
	if err := op.From.Unmarshal(r); err != nil {
		return err
	}
	var err error
	op.Amount, err = xdr.ReadInt64(r)
	return err
}

// ClawbackClaimableBalance burns an entire claimable balance created
// with the clawback enabled flag.
type ClawbackClaimableBalance struct {
	OpBase
	BalanceID ClaimableBalanceID
}

func NewClawbackClaimableBalance(balanceID ClaimableBalanceID) *ClawbackClaimableBalance {
	return &ClawbackClaimableBalance{BalanceID: balanceID}
}

func (op *ClawbackClaimableBalance) Type() OperationType {
	return OperationTypeClawbackClaimableBalance
}

func (op *ClawbackClaimableBalance) Validate() error { return nil }

func (op *ClawbackClaimableBalance) marshalBody(w io.Writer) error {
	return op.BalanceID.Marshal(w)
}

func (op *ClawbackClaimableBalance) unmarshalBody(r *xdr.Reader) error {
	return op.BalanceID.Unmarshal(r)
}
