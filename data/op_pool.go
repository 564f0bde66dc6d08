package data

import (
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// LiquidityPoolDeposit adds both reserves to a constant product pool,
// bounded by deposit maximums and an acceptable price range.
type LiquidityPoolDeposit struct {
	OpBase
	PoolID     PoolID
	MaxAmountA int64
	MaxAmountB int64
	MinPrice   Price
	MaxPrice   Price
}

func NewLiquidityPoolDeposit(poolID PoolID, maxAmountA, maxAmountB int64, minPrice, maxPrice Price) *LiquidityPoolDeposit {
	return &LiquidityPoolDeposit{
		PoolID:     poolID,
		MaxAmountA: maxAmountA,
		MaxAmountB: maxAmountB,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	}
}

func (op *LiquidityPoolDeposit) Type() OperationType {
	return OperationTypeLiquidityPoolDeposit
}

func (op *LiquidityPoolDeposit) Validate() error {
	if err := positiveAmount(op.MaxAmountA); err != nil {
		return err
	}
	if err := positiveAmount(op.MaxAmountB); err != nil {
		return err
	}
	if err := op.MinPrice.Validate(); err != nil {
		return err
	}
	if err := op.MaxPrice.Validate(); err != nil {
		return err
	}
	// compare min and max as fractions, terms fit in int64 products
	if int64(op.MinPrice.N)*int64(op.MaxPrice.D) > int64(op.MaxPrice.N)*int64(op.MinPrice.D) {
		return ErrInvalidPrice
	}
	return nil
}

func (op *LiquidityPoolDeposit) marshalBody(w io.Writer) error {
	if err := op.PoolID.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, op.MaxAmountA); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, op.MaxAmountB); err != nil {
		return err
	}
	if err := op.MinPrice.Marshal(w); err != nil {
		return err
	}
	return op.MaxPrice.Marshal(w)
}

func (op *LiquidityPoolDeposit) unmarshalBody(r *xdr.Reader) error {
	if err := op.PoolID.Unmarshal(r); err != nil {
		return err
	}
	var err error
	if op.MaxAmountA, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	if op.MaxAmountB, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	if err = op.MinPrice.Unmarshal(r); err != nil {
		return err
	}
	return op.MaxPrice.Unmarshal(r)
}

// LiquidityPoolWithdraw burns pool shares and takes back both
// reserves, with per asset minimums against price movement.
type LiquidityPoolWithdraw struct {
	OpBase
	PoolID     PoolID
	Amount     int64
	MinAmountA int64
	MinAmountB int64
}

func NewLiquidityPoolWithdraw(poolID PoolID, amount, minAmountA, minAmountB int64) *LiquidityPoolWithdraw {
	return &LiquidityPoolWithdraw{
		PoolID:     poolID,
		Amount:     amount,
		MinAmountA: minAmountA,
		MinAmountB: minAmountB,
	}
}

func (op *LiquidityPoolWithdraw) Type() OperationType {
	return OperationTypeLiquidityPoolWithdraw
}

func (op *LiquidityPoolWithdraw) Validate() error {
	if err := positiveAmount(op.Amount); err != nil {
		return err
	}
	if err := nonNegativeAmount(op.MinAmountA); err != nil {
		return err
	}
	return nonNegativeAmount(op.MinAmountB)
}

func (op *LiquidityPoolWithdraw) marshalBody(w io.Writer) error {
	if err := op.PoolID.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, op.Amount); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, op.MinAmountA); err != nil {
		return err
	}
	return xdr.WriteInt64(w, op.MinAmountB)
}

func (op *LiquidityPoolWithdraw) unmarshalBody(r *xdr.Reader) error {
	if err := op.PoolID.Unmarshal(r); err != nil {
		return err
	}
	var err error
	if op.Amount, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	if op.MinAmountA, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	op.MinAmountB, err = xdr.ReadInt64(r)
	return err
}
