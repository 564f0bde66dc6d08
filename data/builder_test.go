package data

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyswap/stellar-sdk-go/amount"
	"github.com/anyswap/stellar-sdk-go/xdr"
)

func testSource(t *testing.T) MuxedAccount {
	t.Helper()
	return MustMuxedAccountFromAddress(testAddress)
}

func testPayment(t *testing.T, fill byte, amt int64) *Payment {
	t.Helper()
	return NewPayment(MuxedAccountFromAccountID(fillID(fill)), NativeAsset(), amt)
}

func TestBuildPayment(t *testing.T) {
	b := NewTransactionBuilder(testSource(t), 5)
	require.NoError(t, b.AddOperation(testPayment(t, 0x22, amount.MustParse("100.0000001"))))

	tx, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, int64(6), tx.SeqNum)
	assert.Equal(t, uint32(100), tx.Fee)
	assert.Equal(t, MemoTypeNone, tx.Memo.Type)

	env := NewTransactionEnvelope(tx)
	raw, err := xdr.Marshal(env)
	require.NoError(t, err)

	var out TransactionEnvelope
	require.NoError(t, xdr.Unmarshal(raw, &out))
	p := out.V1.Tx.Operations[0].(*Payment)
	assert.Equal(t, int64(1000000001), p.Amount)
	assert.Equal(t, "100.0000001", amount.String(p.Amount))
}

func TestBuildRequiresOperations(t *testing.T) {
	_, err := NewTransactionBuilder(testSource(t), 1).Build()
	assert.ErrorIs(t, err, ErrNoOperations)
}

func TestBuildOperationCap(t *testing.T) {
	b := NewTransactionBuilder(testSource(t), 1)
	for i := 0; i < MaxOperations; i++ {
		require.NoError(t, b.AddOperation(testPayment(t, 0x22, 1)))
	}
	err := b.AddOperation(testPayment(t, 0x22, 1))
	assert.ErrorIs(t, err, ErrTooManyOperations)

	tx, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, tx.Operations, MaxOperations)
}

func TestAddOperationValidates(t *testing.T) {
	b := NewTransactionBuilder(testSource(t), 1)
	err := b.AddOperation(testPayment(t, 0x22, -5))
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
	assert.Empty(t, b.ops)
}

func TestBuildFeeAccumulation(t *testing.T) {
	b := NewTransactionBuilder(testSource(t), 1).SetBaseFee(200)
	require.NoError(t, b.AddOperation(testPayment(t, 0x22, 1)))
	require.NoError(t, b.AddOperation(testPayment(t, 0x23, 1)))

	tx, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, uint32(400), tx.Fee)

	_, err = NewTransactionBuilder(testSource(t), 1).SetBaseFee(99).Build()
	assert.ErrorIs(t, err, ErrInsufficientFee)
}

func TestBuildFeeOverflow(t *testing.T) {
	b := NewTransactionBuilder(testSource(t), 1).SetBaseFee(math.MaxUint32)
	require.NoError(t, b.AddOperation(testPayment(t, 0x22, 1)))
	require.NoError(t, b.AddOperation(testPayment(t, 0x23, 1)))
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrFeeOverflow)
}

func TestBuildSequenceChecks(t *testing.T) {
	b := NewTransactionBuilder(testSource(t), -2)
	require.NoError(t, b.AddOperation(testPayment(t, 0x22, 1)))
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrNegativeSequence)

	b = NewTransactionBuilder(testSource(t), math.MaxInt64)
	require.NoError(t, b.AddOperation(testPayment(t, 0x22, 1)))
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrSequenceOverflow)
}

func TestBuildTimeout(t *testing.T) {
	before := uint64(time.Now().Add(5 * time.Minute).Unix())
	b := NewTransactionBuilder(testSource(t), 1).SetTimeout(5 * time.Minute)
	require.NoError(t, b.AddOperation(testPayment(t, 0x22, 1)))
	after := uint64(time.Now().Add(5 * time.Minute).Unix())

	tx, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, tx.Cond.TimeBounds)
	assert.Equal(t, uint64(0), tx.Cond.TimeBounds.MinTime)
	assert.GreaterOrEqual(t, tx.Cond.TimeBounds.MaxTime, before)
	assert.LessOrEqual(t, tx.Cond.TimeBounds.MaxTime, after)
	assert.Equal(t, PrecondTime, tx.Cond.precondType())
}

func TestBuildPreconditionsV2(t *testing.T) {
	b := NewTransactionBuilder(testSource(t), 1).
		SetTimeBounds(1, 100).
		SetLedgerBounds(10, 20).
		SetMinSeqNum(7).
		SetMinSeqAge(60).
		SetMinSeqLedgerGap(2)
	require.NoError(t, b.AddExtraSigner(SignerKeyHashX(Hash{0x01})))
	require.NoError(t, b.AddOperation(testPayment(t, 0x22, 1)))

	tx, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, PrecondV2, tx.Cond.precondType())
	require.NotNil(t, tx.Cond.MinSeqNum)
	assert.Equal(t, int64(7), *tx.Cond.MinSeqNum)

	require.NoError(t, b.AddExtraSigner(SignerKeyHashX(Hash{0x02})))
	err = b.AddExtraSigner(SignerKeyHashX(Hash{0x03}))
	assert.ErrorIs(t, err, ErrTooManyExtraSigners)
}

func TestBuildInvalidTimeBounds(t *testing.T) {
	b := NewTransactionBuilder(testSource(t), 1).SetTimeBounds(100, 50)
	require.NoError(t, b.AddOperation(testPayment(t, 0x22, 1)))
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrInvalidTimeBounds)
}

func TestBuildSorobanFee(t *testing.T) {
	fn, err := InvokeContractFn(SCAddressFromContractID(Hash{0x55}), "transfer")
	require.NoError(t, err)

	b := NewTransactionBuilder(testSource(t), 1).
		SetSorobanData(SorobanTransactionData{ResourceFee: 500})
	require.NoError(t, b.AddOperation(NewInvokeHostFunction(fn)))

	tx, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, uint32(600), tx.Fee)
	require.NotNil(t, tx.SorobanData)
	assert.Equal(t, int64(500), tx.SorobanData.ResourceFee)

	b = NewTransactionBuilder(testSource(t), 1).
		SetSorobanData(SorobanTransactionData{ResourceFee: -1})
	require.NoError(t, b.AddOperation(NewInvokeHostFunction(fn)))
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestBuildMergeToMuxedDestination(t *testing.T) {
	dest := NewMuxedAccount(fillID(0x22), 67890)
	b := NewTransactionBuilder(testSource(t), 3)
	require.NoError(t, b.AddOperation(NewAccountMerge(dest)))

	env, err := b.BuildEnvelope()
	require.NoError(t, err)
	raw, err := xdr.Marshal(env)
	require.NoError(t, err)

	var out TransactionEnvelope
	require.NoError(t, xdr.Unmarshal(raw, &out))
	merge := out.V1.Tx.Operations[0].(*AccountMerge)
	assert.Equal(t, uint64(67890), merge.Destination.ID)
	assert.Equal(t, dest.Address(), merge.Destination.Address())
}

func TestBuildRevokeSponsorshipTargets(t *testing.T) {
	op := NewRevokeSponsorship()
	require.NoError(t, op.SetLedgerKeyTarget(AccountKey(fillID(0x22))))
	err := op.SetSignerTarget(fillID(0x22), SignerKeyEd25519(fillID(0x23)))
	assert.ErrorIs(t, err, ErrTargetAlreadySet)

	bare := NewRevokeSponsorship()
	assert.ErrorIs(t, bare.Validate(), ErrNoTarget)

	b := NewTransactionBuilder(testSource(t), 1)
	assert.ErrorIs(t, b.AddOperation(bare), ErrNoTarget)
	require.NoError(t, b.AddOperation(op))
}

func TestValidateOperationsNamesOffender(t *testing.T) {
	ops := []Operation{
		testPayment(t, 0x22, 1),
		testPayment(t, 0x23, 0),
	}
	err := validateOperations(ops)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
	assert.Contains(t, err.Error(), "operation 1 (payment)")
}

func TestBuildFeeBumpFloor(t *testing.T) {
	inner := NewTransactionBuilder(testSource(t), 1)
	require.NoError(t, inner.AddOperation(testPayment(t, 0x22, 1)))
	env, err := inner.BuildEnvelope()
	require.NoError(t, err)

	// one inner operation pays for itself plus the wrapper
	_, err = BuildFeeBump(env, testSource(t), 199)
	assert.ErrorIs(t, err, ErrInsufficientFee)

	bump, err := BuildFeeBump(env, testSource(t), 200)
	require.NoError(t, err)
	assert.Equal(t, EnvelopeTypeTxFeeBump, bump.Type)
	assert.Equal(t, int64(200), bump.FeeBump.Tx.Fee)

	_, err = BuildFeeBump(bump, testSource(t), 400)
	assert.ErrorIs(t, err, ErrInnerNotV1)
}
