package data

import (
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

const maxClaimants = 10

// CreateClaimableBalance escrows an amount claimable by 1 to 10
// claimants, each gated by a predicate.
type CreateClaimableBalance struct {
	OpBase
	Asset     Asset
	Amount    int64
	Claimants []Claimant
}

func NewCreateClaimableBalance(asset Asset, amount int64, claimants ...Claimant) *CreateClaimableBalance {
	return &CreateClaimableBalance{Asset: asset, Amount: amount, Claimants: claimants}
}

func (op *CreateClaimableBalance) Type() OperationType {
	return OperationTypeCreateClaimableBalance
}

func (op *CreateClaimableBalance) Validate() error {
	if err := op.Asset.Validate(); err != nil {
		return err
	}
	if err := positiveAmount(op.Amount); err != nil {
		return err
	}
	if len(op.Claimants) == 0 {
		return ErrNoClaimants
	}
	if len(op.Claimants) > maxClaimants {
		return ErrTooManyClaimants
	}
	for i := range op.Claimants {
		if err := op.Claimants[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (op *CreateClaimableBalance) marshalBody(w io.Writer) error {
	if err := op.Asset.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, op.Amount); err != nil {
		return err
	}
	if err := xdr.WriteCount(w, maxClaimants, len(op.Claimants)); err != nil {
		return err
	}
	for i := range op.Claimants {
		if err := op.Claimants[i].Marshal(w); err != nil {
			return err
		}
	}
	return nil
}

func (op *CreateClaimableBalance) unmarshalBody(r *xdr.Reader) error {
	if err := op.Asset.Unmarshal(r); err != nil {
		return err
	}
	var err error
	if op.Amount, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	n, err := xdr.ReadCount(r, maxClaimants)
	if err != nil {
		return err
	}
	op.Claimants = make([]Claimant, n)
	for i := range op.Claimants {
		if err := op.Claimants[i].Unmarshal(r); err != nil {
			return err
		}
	}
	return nil
}

// ClaimClaimableBalance claims a balance the source is a claimant of.
type ClaimClaimableBalance struct {
	OpBase
	BalanceID ClaimableBalanceID
}

func NewClaimClaimableBalance(balanceID ClaimableBalanceID) *ClaimClaimableBalance {
	return &ClaimClaimableBalance{BalanceID: balanceID}
}

func (op *ClaimClaimableBalance) Type() OperationType {
	return OperationTypeClaimClaimableBalance
}

func (op *ClaimClaimableBalance) Validate() error { return nil }

func (op *ClaimClaimableBalance) marshalBody(w io.Writer) error {
	return op.BalanceID.Marshal(w)
}

func (op *ClaimClaimableBalance) unmarshalBody(r *xdr.Reader) error {
	return op.BalanceID.Unmarshal(r)
}
