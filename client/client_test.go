package client

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyswap/stellar-sdk-go/data"
	"github.com/anyswap/stellar-sdk-go/keypair"
)

const testAccount = "GDRXE2BQUC3AZNPVFSCEZ76NJ3WWL25FYFK6RGZGIEKWE4SOOHSUJUJ6"

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestNewRequiresURL(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrNoHorizonURL)

	c, err := New("https://horizon.example.org")
	require.NoError(t, err)
	assert.Equal(t, "https://horizon.example.org/", c.HorizonURL())

	c, err = New("https://horizon.example.org/")
	require.NoError(t, err)
	assert.Equal(t, "https://horizon.example.org/", c.HorizonURL())
}

func TestAccountDetail(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/"+testAccount, r.URL.Path)
		fmt.Fprint(w, `{
			"id": "`+testAccount+`",
			"account_id": "`+testAccount+`",
			"sequence": "103420918407103888",
			"subentry_count": 1,
			"home_domain": "example.com",
			"thresholds": {"low_threshold": 1, "med_threshold": 2, "high_threshold": 3},
			"flags": {"auth_required": true},
			"balances": [
				{"balance": "9.8000000", "asset_type": "credit_alphanum4", "asset_code": "USD", "asset_issuer": "`+testAccount+`"},
				{"balance": "100.5000000", "asset_type": "native"}
			],
			"signers": [{"key": "`+testAccount+`", "type": "ed25519_public_key", "weight": 1}],
			"data": {"config": "djE="}
		}`)
	})

	account, err := c.AccountDetail(testAccount)
	require.NoError(t, err)

	seq, err := account.SequenceNumber()
	require.NoError(t, err)
	assert.Equal(t, int64(103420918407103888), seq)
	assert.Equal(t, "example.com", account.HomeDomain)
	assert.Equal(t, uint8(2), account.Thresholds.MedThreshold)
	assert.True(t, account.Flags.AuthRequired)
	assert.Equal(t, "100.5000000", account.NativeBalance())

	v, ok, err := account.DataValue("config")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), v)

	_, ok, err = account.DataValue("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountDetailResolvesMuxed(t *testing.T) {
	muxed := data.NewMuxedAccount(data.MustAccountIDFromAddress(testAccount), 67890)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		// horizon keys state by the base account
		assert.Equal(t, "/accounts/"+testAccount, r.URL.Path)
		fmt.Fprint(w, `{"account_id": "`+testAccount+`", "sequence": "5"}`)
	})

	account, err := c.AccountDetail(muxed.Address())
	require.NoError(t, err)
	assert.Equal(t, testAccount, account.AccountID)

	seq, err := c.SequenceForAccount(muxed.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(5), seq)
}

func TestAccountDetailRejectsBadAddress(t *testing.T) {
	c, err := New("https://horizon.example.org")
	require.NoError(t, err)
	_, err = c.AccountDetail("not an address")
	assert.Error(t, err)
}

func TestAccountNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"type": "https://stellar.org/horizon-errors/not_found", "title": "Resource Missing", "status": 404}`)
	})
	_, err := c.AccountDetail(testAccount)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func testSignedEnvelope(t *testing.T) *data.TransactionEnvelope {
	t.Helper()
	kp := keypair.FromRawSeed([32]byte{0x01})
	source := data.MuxedAccountFromAccountID(data.AccountID(kp.PublicKey()))
	b := data.NewTransactionBuilder(source, 1)
	dest := data.MustAccountIDFromAddress(testAccount)
	require.NoError(t, b.AddOperation(data.NewPayment(data.MuxedAccountFromAccountID(dest), data.NativeAsset(), 100)))
	env, err := b.BuildAndSign(data.TestNetwork, kp)
	require.NoError(t, err)
	return env
}

func TestSubmitTransaction(t *testing.T) {
	env := testSignedEnvelope(t)
	wantB64, err := env.Base64()
	require.NoError(t, err)

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, wantB64, r.PostForm.Get("tx"))
		fmt.Fprint(w, `{"hash": "ab12", "ledger": 42, "envelope_xdr": "`+wantB64+`"}`)
	})

	success, err := c.SubmitTransaction(env)
	require.NoError(t, err)
	assert.Equal(t, "ab12", success.Hash)
	assert.Equal(t, int32(42), success.Ledger)
}

func TestSubmitRejected(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{
			"type": "https://stellar.org/horizon-errors/transaction_failed",
			"title": "Transaction Failed",
			"status": 400,
			"extras": {
				"result_codes": {"transaction": "tx_failed", "operations": ["op_underfunded"]}
			}
		}`)
	})

	_, err := c.SubmitTransaction(testSignedEnvelope(t))
	require.Error(t, err)

	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 400, herr.StatusCode)
	codes, ok := herr.ResultCodes()
	require.True(t, ok)
	assert.Equal(t, "tx_failed", codes.Transaction)
	assert.Equal(t, []string{"op_underfunded"}, codes.Operations)
	assert.Contains(t, herr.Error(), "tx_failed")
}

func TestTransactionsPaging(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/"+testAccount+"/transactions", r.URL.Path)
		assert.Equal(t, "now", r.URL.Query().Get("cursor"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		fmt.Fprint(w, `{"_embedded": {"records": [
			{"hash": "aa", "ledger": 7, "successful": true, "memo_type": "text", "memo": "hi"},
			{"hash": "bb", "ledger": 6, "successful": false}
		]}}`)
	})

	records, err := c.Transactions(testAccount, PageQuery{Cursor: "now", Limit: 2, Order: "desc"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "aa", records[0].Hash)
	assert.True(t, records[0].Successful)
	assert.Equal(t, "hi", records[0].Memo)
	assert.Equal(t, int32(6), records[1].Ledger)
}

func TestNetworkFromRoot(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		fmt.Fprint(w, `{"horizon_version": "2.0.0", "network_passphrase": "`+data.TestNetwork.Passphrase+`"}`)
	})

	network, err := c.Network()
	require.NoError(t, err)
	assert.Equal(t, data.TestNetwork, network)
}
