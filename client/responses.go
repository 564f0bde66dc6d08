package client

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// Root describes the horizon instance itself.
type Root struct {
	HorizonVersion      string `json:"horizon_version"`
	NetworkPassphrase   string `json:"network_passphrase"`
	HistoryLatestLedger int32  `json:"history_latest_ledger"`
	ProtocolVersion     int32  `json:"current_protocol_version"`
}

// Thresholds are the account's operation weight requirements.
type Thresholds struct {
	LowThreshold  uint8 `json:"low_threshold"`
	MedThreshold  uint8 `json:"med_threshold"`
	HighThreshold uint8 `json:"high_threshold"`
}

// AccountFlags mirrors the account's authorization flags.
type AccountFlags struct {
	AuthRequired        bool `json:"auth_required"`
	AuthRevocable       bool `json:"auth_revocable"`
	AuthImmutable       bool `json:"auth_immutable"`
	AuthClawbackEnabled bool `json:"auth_clawback_enabled"`
}

// Balance is one line of an account's holdings.
type Balance struct {
	Balance     string `json:"balance"`
	Limit       string `json:"limit,omitempty"`
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
}

// AccountSigner is one entry of the account's signer list.
type AccountSigner struct {
	Key    string `json:"key"`
	Type   string `json:"type"`
	Weight int32  `json:"weight"`
}

// Account is the horizon view of a ledger account.
type Account struct {
	ID            string            `json:"id"`
	AccountID     string            `json:"account_id"`
	Sequence      string            `json:"sequence"`
	SubentryCount int32             `json:"subentry_count"`
	HomeDomain    string            `json:"home_domain,omitempty"`
	Thresholds    Thresholds        `json:"thresholds"`
	Flags         AccountFlags      `json:"flags"`
	Balances      []Balance         `json:"balances"`
	Signers       []AccountSigner   `json:"signers"`
	Data          map[string]string `json:"data"`
}

// SequenceNumber parses the decimal sequence horizon reports.
func (a *Account) SequenceNumber() (int64, error) {
	seq, err := strconv.ParseInt(a.Sequence, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("account sequence %q: %w", a.Sequence, err)
	}
	return seq, nil
}

// NativeBalance returns the account's native holding, in its decimal
// string form, or an empty string when horizon omits it.
func (a *Account) NativeBalance() string {
	for _, b := range a.Balances {
		if b.AssetType == "native" {
			return b.Balance
		}
	}
	return ""
}

// DataValue decodes one managed data entry, which horizon serves
// base64 encoded.
func (a *Account) DataValue(key string) ([]byte, bool, error) {
	raw, ok := a.Data[key]
	if !ok {
		return nil, false, nil
	}
	v, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, true, fmt.Errorf("account data %q: %w", key, err)
	}
	return v, true, nil
}

// TxSuccess is horizon's acknowledgement of an accepted submission.
type TxSuccess struct {
	Hash        string `json:"hash"`
	Ledger      int32  `json:"ledger"`
	EnvelopeXDR string `json:"envelope_xdr"`
	ResultXDR   string `json:"result_xdr"`
	MetaXDR     string `json:"result_meta_xdr"`
}

// TransactionRecord is one history entry. Only the fields the tools
// surface are mapped, the rest of horizon's catalog stays untyped.
type TransactionRecord struct {
	ID            string `json:"id"`
	Hash          string `json:"hash"`
	Ledger        int32  `json:"ledger"`
	CreatedAt     string `json:"created_at"`
	Successful    bool   `json:"successful"`
	SourceAccount string `json:"source_account"`
	FeeCharged    string `json:"fee_charged"`
	MemoType      string `json:"memo_type"`
	Memo          string `json:"memo,omitempty"`
	EnvelopeXDR   string `json:"envelope_xdr"`
	ResultXDR     string `json:"result_xdr"`
}

// TransactionPage is one page of history entries.
type TransactionPage struct {
	Embedded struct {
		Records []TransactionRecord `json:"records"`
	} `json:"_embedded"`
}

// PageQuery narrows a history request. Zero values are omitted.
type PageQuery struct {
	Cursor string
	Limit  int
	Order  string
}
