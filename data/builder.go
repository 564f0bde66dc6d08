package data

import (
	"math"
	"time"

	"github.com/anyswap/stellar-sdk-go/keypair"
)

// TransactionBuilder accumulates operations and settings, then
// assembles a transaction around the source account's next sequence
// number. Constraints are checked as data arrives where possible and
// again in Build.
type TransactionBuilder struct {
	source      MuxedAccount
	seqNum      int64
	baseFee     uint32
	memo        Memo
	cond        Preconditions
	ops         []Operation
	sorobanData *SorobanTransactionData
}

// NewTransactionBuilder starts a transaction for the source account.
// currentSeq is the account's sequence as the ledger reports it, the
// built transaction uses currentSeq plus one.
func NewTransactionBuilder(source MuxedAccount, currentSeq int64) *TransactionBuilder {
	return &TransactionBuilder{
		source:  source,
		seqNum:  currentSeq,
		baseFee: MinBaseFee,
		memo:    MemoNone(),
	}
}

// AddOperation validates and appends one operation.
func (b *TransactionBuilder) AddOperation(op Operation) error {
	if len(b.ops) >= MaxOperations {
		return ErrTooManyOperations
	}
	if err := op.Validate(); err != nil {
		return err
	}
	b.ops = append(b.ops, op)
	return nil
}

// SetBaseFee sets the per operation fee in stroops. Build rejects
// values below the network minimum.
func (b *TransactionBuilder) SetBaseFee(fee uint32) *TransactionBuilder {
	b.baseFee = fee
	return b
}

func (b *TransactionBuilder) SetMemo(memo Memo) *TransactionBuilder {
	b.memo = memo
	return b
}

func (b *TransactionBuilder) SetTimeBounds(minTime, maxTime uint64) *TransactionBuilder {
	b.cond.TimeBounds = &TimeBounds{MinTime: minTime, MaxTime: maxTime}
	return b
}

// SetTimeout bounds validity to the given duration from now.
func (b *TransactionBuilder) SetTimeout(timeout time.Duration) *TransactionBuilder {
	deadline := uint64(time.Now().Add(timeout).Unix())
	b.cond.TimeBounds = &TimeBounds{MaxTime: deadline}
	return b
}

func (b *TransactionBuilder) SetLedgerBounds(minLedger, maxLedger uint32) *TransactionBuilder {
	b.cond.LedgerBounds = &LedgerBounds{MinLedger: minLedger, MaxLedger: maxLedger}
	return b
}

func (b *TransactionBuilder) SetMinSeqNum(seq int64) *TransactionBuilder {
	b.cond.MinSeqNum = &seq
	return b
}

func (b *TransactionBuilder) SetMinSeqAge(seconds uint64) *TransactionBuilder {
	b.cond.MinSeqAge = seconds
	return b
}

func (b *TransactionBuilder) SetMinSeqLedgerGap(gap uint32) *TransactionBuilder {
	b.cond.MinSeqLedgerGap = gap
	return b
}

// AddExtraSigner requires an additional signature, at most two.
func (b *TransactionBuilder) AddExtraSigner(key SignerKey) error {
	if len(b.cond.ExtraSigners) >= maxExtraSigners {
		return ErrTooManyExtraSigners
	}
	b.cond.ExtraSigners = append(b.cond.ExtraSigners, key)
	return nil
}

// SetSorobanData attaches declared resources. The resource fee is
// added on top of the inclusion fee in Build.
func (b *TransactionBuilder) SetSorobanData(data SorobanTransactionData) *TransactionBuilder {
	b.sorobanData = &data
	return b
}

// Build assembles and validates the transaction.
func (b *TransactionBuilder) Build() (*Transaction, error) {
	if b.seqNum < 0 {
		return nil, ErrNegativeSequence
	}
	if b.seqNum == math.MaxInt64 {
		return nil, ErrSequenceOverflow
	}
	if b.baseFee < MinBaseFee {
		return nil, ErrInsufficientFee
	}
	fee := uint64(b.baseFee) * uint64(len(b.ops))
	if b.sorobanData != nil {
		if b.sorobanData.ResourceFee < 0 {
			return nil, ErrNegativeAmount
		}
		fee += uint64(b.sorobanData.ResourceFee)
	}
	if fee > math.MaxUint32 {
		return nil, ErrFeeOverflow
	}
	tx := &Transaction{
		SourceAccount: b.source,
		Fee:           uint32(fee),
		SeqNum:        b.seqNum + 1,
		Cond:          b.cond,
		Memo:          b.memo,
		Operations:    b.ops,
		SorobanData:   b.sorobanData,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// BuildEnvelope assembles the transaction and wraps it unsigned.
func (b *TransactionBuilder) BuildEnvelope() (*TransactionEnvelope, error) {
	tx, err := b.Build()
	if err != nil {
		return nil, err
	}
	return NewTransactionEnvelope(tx), nil
}

// BuildAndSign assembles, wraps and signs in one step.
func (b *TransactionBuilder) BuildAndSign(network Network, signers ...*keypair.KeyPair) (*TransactionEnvelope, error) {
	env, err := b.BuildEnvelope()
	if err != nil {
		return nil, err
	}
	if err := env.Sign(network, signers...); err != nil {
		return nil, err
	}
	return env, nil
}

// BuildFeeBump wraps an already signed v1 envelope in a fee bump. The
// fee is the total for the whole bundle in stroops.
func BuildFeeBump(inner *TransactionEnvelope, feeSource MuxedAccount, fee int64) (*TransactionEnvelope, error) {
	if inner.Type != EnvelopeTypeTx || inner.V1 == nil {
		return nil, ErrInnerNotV1
	}
	env := NewFeeBumpEnvelope(*inner.V1, feeSource, fee)
	if err := env.FeeBump.Tx.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}
