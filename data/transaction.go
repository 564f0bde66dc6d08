package data

import (
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

const (
	// MaxOperations bounds the operation list of a single transaction.
	MaxOperations = 100

	// MinBaseFee is the network minimum fee per operation in stroops.
	MinBaseFee = 100

	maxExtraSigners = 2
)

// TimeBounds restricts validity to a unix time window, inclusive on
// both ends. MaxTime zero means no upper bound.
type TimeBounds struct {
	MinTime uint64
	MaxTime uint64
}

func NewTimeBounds(minTime, maxTime uint64) *TimeBounds {
	return &TimeBounds{MinTime: minTime, MaxTime: maxTime}
}

func (tb *TimeBounds) Validate() error {
	if tb.MaxTime != 0 && tb.MaxTime < tb.MinTime {
		return ErrInvalidTimeBounds
	}
	return nil
}

func (tb *TimeBounds) Marshal(w io.Writer) error {
	if err := xdr.WriteUint64(w, tb.MinTime); err != nil {
		return err
	}
	return xdr.WriteUint64(w, tb.MaxTime)
}

func (tb *TimeBounds) Unmarshal(r *xdr.Reader) error {
	var err error
	if tb.MinTime, err = xdr.ReadUint64(r); err != nil {
		return err
	}
	tb.MaxTime, err = xdr.ReadUint64(r)
	return err
}

// LedgerBounds restricts validity to a ledger sequence window.
// MaxLedger zero means no upper bound.
type LedgerBounds struct {
	MinLedger uint32
	MaxLedger uint32
}

func (lb *LedgerBounds) Validate() error {
	if lb.MaxLedger != 0 && lb.MaxLedger < lb.MinLedger {
		return ErrInvalidLedgerBounds
	}
	return nil
}

func (lb *LedgerBounds) Marshal(w io.Writer) error {
	if err := xdr.WriteUint32(w, lb.MinLedger); err != nil {
		return err
	}
	return xdr.WriteUint32(w, lb.MaxLedger)
}

func (lb *LedgerBounds) Unmarshal(r *xdr.Reader) error {
	var err error
	if lb.MinLedger, err = xdr.ReadUint32(r); err != nil {
		return err
	}
	lb.MaxLedger, err = xdr.ReadUint32(r)
	return err
}

// PreconditionType tags the precondition union.
type PreconditionType int32

const (
	PrecondNone PreconditionType = 0
	PrecondTime PreconditionType = 1
	PrecondV2   PreconditionType = 2
)

// Preconditions gate when a transaction may be included. The zero
// value encodes as the none arm, plain time bounds as the time arm,
// anything more as the v2 arm.
type Preconditions struct {
	TimeBounds      *TimeBounds
	LedgerBounds    *LedgerBounds
	MinSeqNum       *int64
	MinSeqAge       uint64
	MinSeqLedgerGap uint32
	ExtraSigners    []SignerKey
}

func (c *Preconditions) precondType() PreconditionType {
	if c.LedgerBounds != nil || c.MinSeqNum != nil || c.MinSeqAge != 0 ||
		c.MinSeqLedgerGap != 0 || len(c.ExtraSigners) != 0 {
		return PrecondV2
	}
	if c.TimeBounds != nil {
		return PrecondTime
	}
	return PrecondNone
}

func (c *Preconditions) Validate() error {
	if c.TimeBounds != nil {
		if err := c.TimeBounds.Validate(); err != nil {
			return err
		}
	}
	if c.LedgerBounds != nil {
		if err := c.LedgerBounds.Validate(); err != nil {
			return err
		}
	}
	if c.MinSeqNum != nil && *c.MinSeqNum < 0 {
		return ErrNegativeSequence
	}
	if len(c.ExtraSigners) > maxExtraSigners {
		return ErrTooManyExtraSigners
	}
	return nil
}

func (c *Preconditions) Marshal(w io.Writer) error {
	t := c.precondType()
	if err := xdr.WriteInt32(w, int32(t)); err != nil {
		return err
	}
	switch t {
	case PrecondNone:
		return nil
	case PrecondTime:
		return c.TimeBounds.Marshal(w)
	}
	if err := xdr.WriteBool(w, c.TimeBounds != nil); err != nil {
		return err
	}
	if c.TimeBounds != nil {
		if err := c.TimeBounds.Marshal(w); err != nil {
			return err
		}
	}
	if err := xdr.WriteBool(w, c.LedgerBounds != nil); err != nil {
		return err
	}
	if c.LedgerBounds != nil {
		if err := c.LedgerBounds.Marshal(w); err != nil {
			return err
		}
	}
	if err := xdr.WriteBool(w, c.MinSeqNum != nil); err != nil {
		return err
	}
	if c.MinSeqNum != nil {
		if err := xdr.WriteInt64(w, *c.MinSeqNum); err != nil {
			return err
		}
	}
	if err := xdr.WriteUint64(w, c.MinSeqAge); err != nil {
		return err
	}
	if err := xdr.WriteUint32(w, c.MinSeqLedgerGap); err != nil {
		return err
	}
	if err := xdr.WriteCount(w, maxExtraSigners, len(c.ExtraSigners)); err != nil {
		return err
	}
	for i := range c.ExtraSigners {
		if err := c.ExtraSigners[i].Marshal(w); err != nil {
			return err
		}
	}
	return nil
}

func (c *Preconditions) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*c = Preconditions{}
	switch PreconditionType(t) {
	case PrecondNone:
		return nil
	case PrecondTime:
		c.TimeBounds = new(TimeBounds)
		return c.TimeBounds.Unmarshal(r)
	case PrecondV2:
	default:
		return fmt.Errorf("precondition type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
	present, err := xdr.ReadOptional(r)
	if err != nil {
		return err
	}
	if present {
		c.TimeBounds = new(TimeBounds)
		if err := c.TimeBounds.Unmarshal(r); err != nil {
			return err
		}
	}
	if present, err = xdr.ReadOptional(r); err != nil {
		return err
	}
	if present {
		c.LedgerBounds = new(LedgerBounds)
		if err := c.LedgerBounds.Unmarshal(r); err != nil {
			return err
		}
	}
	if present, err = xdr.ReadOptional(r); err != nil {
		return err
	}
	if present {
		seq, err := xdr.ReadInt64(r)
		if err != nil {
			return err
		}
		c.MinSeqNum = &seq
	}
	if c.MinSeqAge, err = xdr.ReadUint64(r); err != nil {
		return err
	}
	if c.MinSeqLedgerGap, err = xdr.ReadUint32(r); err != nil {
		return err
	}
	n, err := xdr.ReadCount(r, maxExtraSigners)
	if err != nil {
		return err
	}
	c.ExtraSigners = make([]SignerKey, n)
	for i := range c.ExtraSigners {
		if err := c.ExtraSigners[i].Unmarshal(r); err != nil {
			return err
		}
	}
	return nil
}

func marshalOperations(w io.Writer, ops []Operation) error {
	if err := xdr.WriteCount(w, MaxOperations, len(ops)); err != nil {
		return err
	}
	for _, op := range ops {
		if err := marshalOperation(w, op); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalOperations(r *xdr.Reader) ([]Operation, error) {
	n, err := xdr.ReadCount(r, MaxOperations)
	if err != nil {
		return nil, err
	}
	ops := make([]Operation, n)
	for i := range ops {
		if ops[i], err = unmarshalOperation(r); err != nil {
			return nil, err
		}
	}
	return ops, nil
}

func validateOperations(ops []Operation) error {
	if len(ops) == 0 {
		return ErrNoOperations
	}
	if len(ops) > MaxOperations {
		return ErrTooManyOperations
	}
	for i, op := range ops {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Type(), err)
		}
	}
	return nil
}

// Transaction is the current generation transaction body. SorobanData
// rides in the extension when present.
type Transaction struct {
	SourceAccount MuxedAccount
	Fee           uint32
	SeqNum        int64
	Cond          Preconditions
	Memo          Memo
	Operations    []Operation
	SorobanData   *SorobanTransactionData
}

func (tx *Transaction) Validate() error {
	if tx.SeqNum < 0 {
		return ErrNegativeSequence
	}
	if err := tx.Cond.Validate(); err != nil {
		return err
	}
	if err := tx.Memo.Validate(); err != nil {
		return err
	}
	return validateOperations(tx.Operations)
}

func (tx *Transaction) Marshal(w io.Writer) error {
	if err := tx.SourceAccount.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteUint32(w, tx.Fee); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, tx.SeqNum); err != nil {
		return err
	}
	if err := tx.Cond.Marshal(w); err != nil {
		return err
	}
	if err := tx.Memo.Marshal(w); err != nil {
		return err
	}
	if err := marshalOperations(w, tx.Operations); err != nil {
		return err
	}
	if tx.SorobanData == nil {
		return xdr.WriteInt32(w, 0)
	}
	if err := xdr.WriteInt32(w, 1); err != nil {
		return err
	}
	return tx.SorobanData.Marshal(w)
}

func (tx *Transaction) Unmarshal(r *xdr.Reader) error {
	if err := tx.SourceAccount.Unmarshal(r); err != nil {
		return err
	}
	var err error
	if tx.Fee, err = xdr.ReadUint32(r); err != nil {
		return err
	}
	if tx.SeqNum, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	if err = tx.Cond.Unmarshal(r); err != nil {
		return err
	}
	if err = tx.Memo.Unmarshal(r); err != nil {
		return err
	}
	if tx.Operations, err = unmarshalOperations(r); err != nil {
		return err
	}
	ext, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	switch ext {
	case 0:
		tx.SorobanData = nil
		return nil
	case 1:
		tx.SorobanData = new(SorobanTransactionData)
		return tx.SorobanData.Unmarshal(r)
	default:
		return fmt.Errorf("transaction ext %d: %w", ext, xdr.ErrInvalidDiscriminant)
	}
}

// TransactionV0 is the legacy body whose source is a bare ed25519 key.
// Only decode support matters, new transactions are always v1.
type TransactionV0 struct {
	SourceEd25519 [32]byte
	Fee           uint32
	SeqNum        int64
	TimeBounds    *TimeBounds
	Memo          Memo
	Operations    []Operation
}

// V1 lifts the legacy body into the current form. Signature payloads
// for v0 envelopes are built over the lifted body.
func (tx *TransactionV0) V1() *Transaction {
	out := &Transaction{
		SourceAccount: MuxedAccount{KeyType: KeyTypeEd25519, Ed25519: tx.SourceEd25519},
		Fee:           tx.Fee,
		SeqNum:        tx.SeqNum,
		Memo:          tx.Memo,
		Operations:    tx.Operations,
	}
	if tx.TimeBounds != nil {
		tb := *tx.TimeBounds
		out.Cond.TimeBounds = &tb
	}
	return out
}

func (tx *TransactionV0) Marshal(w io.Writer) error {
	if err := xdr.WriteOpaque(w, tx.SourceEd25519[:]); err != nil {
		return err
	}
	if err := xdr.WriteUint32(w, tx.Fee); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, tx.SeqNum); err != nil {
		return err
	}
	if err := xdr.WriteBool(w, tx.TimeBounds != nil); err != nil {
		return err
	}
	if tx.TimeBounds != nil {
		if err := tx.TimeBounds.Marshal(w); err != nil {
			return err
		}
	}
	if err := tx.Memo.Marshal(w); err != nil {
		return err
	}
	if err := marshalOperations(w, tx.Operations); err != nil {
		return err
	}
	return xdr.WriteInt32(w, 0)
}

func (tx *TransactionV0) Unmarshal(r *xdr.Reader) error {
	src, err := xdr.ReadOpaque(r, 32)
	if err != nil {
		return err
	}
	copy(tx.SourceEd25519[:], src)
	if tx.Fee, err = xdr.ReadUint32(r); err != nil {
		return err
	}
	if tx.SeqNum, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	present, err := xdr.ReadOptional(r)
	if err != nil {
		return err
	}
	if present {
		tx.TimeBounds = new(TimeBounds)
		if err := tx.TimeBounds.Unmarshal(r); err != nil {
			return err
		}
	}
	if err := tx.Memo.Unmarshal(r); err != nil {
		return err
	}
	if tx.Operations, err = unmarshalOperations(r); err != nil {
		return err
	}
	ext, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if ext != 0 {
		return fmt.Errorf("transaction v0 ext %d: %w", ext, xdr.ErrInvalidDiscriminant)
	}
	return nil
}

// FeeBumpTransaction wraps a signed v1 envelope and replaces its fee.
// The outer fee is in stroops and covers the inner operations plus the
// bump itself.
type FeeBumpTransaction struct {
	FeeSource MuxedAccount
	Fee       int64
	Inner     TransactionV1Envelope
}

func (tx *FeeBumpTransaction) Validate() error {
	if err := nonNegativeAmount(tx.Fee); err != nil {
		return err
	}
	floor := int64(len(tx.Inner.Tx.Operations)+1) * MinBaseFee
	if tx.Fee < floor {
		return ErrInsufficientFee
	}
	return tx.Inner.Tx.Validate()
}

func (tx *FeeBumpTransaction) Marshal(w io.Writer) error {
	if err := tx.FeeSource.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, tx.Fee); err != nil {
		return err
	}
	if err := xdr.WriteInt32(w, int32(EnvelopeTypeTx)); err != nil {
		return err
	}
	if err := tx.Inner.Marshal(w); err != nil {
		return err
	}
	return xdr.WriteInt32(w, 0)
}

func (tx *FeeBumpTransaction) Unmarshal(r *xdr.Reader) error {
	if err := tx.FeeSource.Unmarshal(r); err != nil {
		return err
	}
	var err error
	if tx.Fee, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	inner, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if inner != int32(EnvelopeTypeTx) {
		return fmt.Errorf("fee bump inner type %d: %w", inner, xdr.ErrInvalidDiscriminant)
	}
	if err := tx.Inner.Unmarshal(r); err != nil {
		return err
	}
	ext, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if ext != 0 {
		return fmt.Errorf("fee bump ext %d: %w", ext, xdr.ErrInvalidDiscriminant)
	}
	return nil
}
