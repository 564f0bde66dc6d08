package terminal

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyswap/stellar-sdk-go/client"
	"github.com/anyswap/stellar-sdk-go/data"
)

const testAddress = "GDRXE2BQUC3AZNPVFSCEZ76NJ3WWL25FYFK6RGZGIEKWE4SOOHSUJUJ6"

func init() {
	color.NoColor = true
}

func TestBoolSymbol(t *testing.T) {
	assert.Equal(t, "✓", BoolSymbol(true))
	assert.Equal(t, "✗", BoolSymbol(false))

	memo, err := data.MemoText("hi")
	require.NoError(t, err)
	assert.Equal(t, "✓", MemoSymbol(memo))
	assert.Equal(t, "✗", MemoSymbol(data.MemoNone()))
}

func TestSprintPayment(t *testing.T) {
	dest := data.MustMuxedAccountFromAddress(testAddress)
	op := data.NewPayment(dest, data.NativeAsset(), 100000000)

	out := Sprint(op, Default)
	assert.Contains(t, out, "payment")
	assert.Contains(t, out, testAddress)
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "native")
}

func TestSprintOperationWithSource(t *testing.T) {
	dest := data.MustMuxedAccountFromAddress(testAddress)
	op := data.NewAccountMerge(dest)
	op.SetSource(dest)

	out := Sprint(op, Default)
	assert.Contains(t, out, "account_merge")
	assert.Contains(t, out, "[src "+testAddress+"]")
}

func TestSprintIndents(t *testing.T) {
	op := data.NewBumpSequence(7)
	assert.NotContains(t, Sprint(op, Default), "    bump")
	assert.Contains(t, Sprint(op, Indent), "    bump_sequence")
}

func TestSprintEnvelope(t *testing.T) {
	source := data.MustMuxedAccountFromAddress(testAddress)
	b := data.NewTransactionBuilder(source, 41)
	require.NoError(t, b.AddOperation(data.NewBumpSequence(99)))
	env, err := b.BuildEnvelope()
	require.NoError(t, err)

	out := Sprint(env, Default)
	assert.Contains(t, out, testAddress)
	assert.Contains(t, out, "seq=42")
	assert.Contains(t, out, "fee=100")
	assert.Contains(t, out, "ops=1")
}

func TestSprintFeeBump(t *testing.T) {
	source := data.MustMuxedAccountFromAddress(testAddress)
	b := data.NewTransactionBuilder(source, 1)
	require.NoError(t, b.AddOperation(data.NewBumpSequence(2)))
	env, err := b.BuildEnvelope()
	require.NoError(t, err)

	bump, err := data.BuildFeeBump(env, source, 300)
	require.NoError(t, err)
	out := Sprint(bump, Default)
	assert.Contains(t, out, "fee bump")
	assert.Contains(t, out, "fee=300")
}

func TestSprintAccount(t *testing.T) {
	account := &client.Account{
		AccountID:     testAddress,
		Sequence:      "5",
		SubentryCount: 2,
		Balances:      []client.Balance{{Balance: "7.5000000", AssetType: "native"}},
	}
	out := Sprint(account, Default)
	assert.Contains(t, out, testAddress)
	assert.Contains(t, out, "seq=5")
	assert.Contains(t, out, "native=7.5000000")
}

func TestSprintTransactionRecord(t *testing.T) {
	rec := client.TransactionRecord{Hash: "cafe", Ledger: 12, Successful: true}
	out := Sprint(rec, Default)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "cafe")
	assert.Contains(t, out, "ledger=12")
}
