package data

import (
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

const maxPathLen = 5

// CreateAccount funds a new account with a starting balance in
// stroops.
type CreateAccount struct {
	OpBase
	Destination     AccountID
	StartingBalance int64
}

func NewCreateAccount(destination AccountID, startingBalance int64) *CreateAccount {
	return &CreateAccount{Destination: destination, StartingBalance: startingBalance}
}

func (op *CreateAccount) Type() OperationType { return OperationTypeCreateAccount }

func (op *CreateAccount) Validate() error {
	return nonNegativeAmount(op.StartingBalance)
}

func (op *CreateAccount) marshalBody(w io.Writer) error {
	if err := op.Destination.Marshal(w); err != nil {
		return err
	}
	return xdr.WriteInt64(w, op.StartingBalance)
}

func (op *CreateAccount) unmarshalBody(r *xdr.Reader) error {
	if err := op.Destination.Unmarshal(r); err != nil {
		return err
	}
	var err error
	op.StartingBalance, err = xdr.ReadInt64(r)
	return err
}

// Payment sends an amount of one asset to a destination.
type Payment struct {
	OpBase
	Destination MuxedAccount
	Asset       Asset
	Amount      int64
}

func NewPayment(destination MuxedAccount, asset Asset, amount int64) *Payment {
	return &Payment{Destination: destination, Asset: asset, Amount: amount}
}

func (op *Payment) Type() OperationType { return OperationTypePayment }

func (op *Payment) Validate() error {
	if err := op.Asset.Validate(); err != nil {
		return err
	}
	return positiveAmount(op.Amount)
}

func (op *Payment) marshalBody(w io.Writer) error {
	if err := op.Destination.Marshal(w); err != nil {
		return err
	}
	if err := op.Asset.Marshal(w); err != nil {
		return err
	}
	return xdr.WriteInt64(w, op.Amount)
}

func (op *Payment) unmarshalBody(r *xdr.Reader) error {
	if err := op.Destination.Unmarshal(r); err != nil {
		return err
	}
	if err := op.Asset.Unmarshal(r); err != nil {
		return err
	}
	var err error
	op.Amount, err = xdr.ReadInt64(r)
	return err
}

func validatePath(path []Asset) error {
	if len(path) > maxPathLen {
		return ErrPathTooLong
	}
	for i := range path {
		if err := path[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func marshalPath(w io.Writer, path []Asset) error {
	if err := xdr.WriteCount(w, maxPathLen, len(path)); err != nil {
		return err
	}
	for i := range path {
		if err := path[i].Marshal(w); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalPath(r *xdr.Reader) ([]Asset, error) {
	n, err := xdr.ReadCount(r, maxPathLen)
	if err != nil {
		return nil, err
	}
	path := make([]Asset, n)
	for i := range path {
		if err := path[i].Unmarshal(r); err != nil {
			return nil, err
		}
	}
	return path, nil
}

// PathPaymentStrictReceive delivers an exact destination amount,
// spending at most SendMax of the send asset along the given path of
// at most 5 hops.
type PathPaymentStrictReceive struct {
	OpBase
	SendAsset   Asset
	SendMax     int64
	Destination MuxedAccount
	DestAsset   Asset
	DestAmount  int64
	Path        []Asset
}

func NewPathPaymentStrictReceive(sendAsset Asset, sendMax int64, destination MuxedAccount, destAsset Asset, destAmount int64, path ...Asset) *PathPaymentStrictReceive {
	return &PathPaymentStrictReceive{
		SendAsset:   sendAsset,
		SendMax:     sendMax,
		Destination: destination,
		DestAsset:   destAsset,
		DestAmount:  destAmount,
		Path:        path,
	}
}

func (op *PathPaymentStrictReceive) Type() OperationType {
	return OperationTypePathPaymentStrictReceive
}

func (op *PathPaymentStrictReceive) Validate() error {
	if err := op.SendAsset.Validate(); err != nil {
		return err
	}
	if err := op.DestAsset.Validate(); err != nil {
		return err
	}
	if err := positiveAmount(op.SendMax); err != nil {
		return err
	}
	if err := positiveAmount(op.DestAmount); err != nil {
		return err
	}
	return validatePath(op.Path)
}

func (op *PathPaymentStrictReceive) marshalBody(w io.Writer) error {
	if err := op.SendAsset.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, op.SendMax); err != nil {
		return err
	}
	if err := op.Destination.Marshal(w); err != nil {
		return err
	}
	if err := op.DestAsset.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, op.DestAmount); err != nil {
		return err
	}
	return marshalPath(w, op.Path)
}

func (op *PathPaymentStrictReceive) unmarshalBody(r *xdr.Reader) error {
	var err error
	if err = op.SendAsset.Unmarshal(r); err != nil {
		return err
	}
	if op.SendMax, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	if err = op.Destination.Unmarshal(r); err != nil {
		return err
	}
	if err = op.DestAsset.Unmarshal(r); err != nil {
		return err
	}
	if op.DestAmount, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	op.Path, err = unmarshalPath(r)
	return err
}

// PathPaymentStrictSend spends an exact send amount and requires at
// least DestMin to arrive.
type PathPaymentStrictSend struct {
	OpBase
	SendAsset   Asset
	SendAmount  int64
	Destination MuxedAccount
	DestAsset   Asset
	DestMin     int64
	Path        []Asset
}

func NewPathPaymentStrictSend(sendAsset Asset, sendAmount int64, destination MuxedAccount, destAsset Asset, destMin int64, path ...Asset) *PathPaymentStrictSend {
	return &PathPaymentStrictSend{
		SendAsset:   sendAsset,
		SendAmount:  sendAmount,
		Destination: destination,
		DestAsset:   destAsset,
		DestMin:     destMin,
		Path:        path,
	}
}

func (op *PathPaymentStrictSend) Type() OperationType {
	return OperationTypePathPaymentStrictSend
}

func (op *PathPaymentStrictSend) Validate() error {
	if err := op.SendAsset.Validate(); err != nil {
		return err
	}
	if err := op.DestAsset.Validate(); err != nil {
		return err
	}
	if err := positiveAmount(op.SendAmount); err != nil {
		return err
	}
	if err := positiveAmount(op.DestMin); err != nil {
		return err
	}
	return validatePath(op.Path)
}

func (op *PathPaymentStrictSend) marshalBody(w io.Writer) error {
	if err := op.SendAsset.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, op.SendAmount); err != nil {
		return err
	}
	if err := op.Destination.Marshal(w); err != nil {
		return err
	}
	if err := op.DestAsset.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, op.DestMin); err != nil {
		return err
	}
	return marshalPath(w, op.Path)
}

func (op *PathPaymentStrictSend) unmarshalBody(r *xdr.Reader) error {
	var err error
	if err = op.SendAsset.Unmarshal(r); err != nil {
		return err
	}
	if op.SendAmount, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	if err = op.Destination.Unmarshal(r); err != nil {
		return err
	}
	if err = op.DestAsset.Unmarshal(r); err != nil {
		return err
	}
	if op.DestMin, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	op.Path, err = unmarshalPath(r)
	return err
}

// AccountMerge closes the source account and moves its remaining
// lumens to the destination.
type AccountMerge struct {
	OpBase
	Destination MuxedAccount
}

func NewAccountMerge(destination MuxedAccount) *AccountMerge {
	return &AccountMerge{Destination: destination}
}

func (op *AccountMerge) Type() OperationType { return OperationTypeAccountMerge }

func (op *AccountMerge) Validate() error { return nil }

func (op *AccountMerge) marshalBody(w io.Writer) error {
	return op.Destination.Marshal(w)
}

func (op *AccountMerge) unmarshalBody(r *xdr.Reader) error {
	return op.Destination.Unmarshal(r)
}

// Inflation is the retired weekly inflation run. The body is empty.
type Inflation struct {
	OpBase
}

func NewInflation() *Inflation { return new(Inflation) }

func (op *Inflation) Type() OperationType { return OperationTypeInflation }

func (op *Inflation) Validate() error { return nil }

func (op *Inflation) marshalBody(io.Writer) error { return nil }

func (op *Inflation) unmarshalBody(*xdr.Reader) error { return nil }
