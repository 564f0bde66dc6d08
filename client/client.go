// Package client talks to horizon, the gateway REST API in front of
// the ledger. It covers the account and submission calls the tools
// need and deliberately nothing more.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/anyswap/stellar-sdk-go/data"
	"github.com/anyswap/stellar-sdk-go/log"
)

const defaultTimeout = 30 * time.Second

// Client issues requests against one horizon instance. Gateway
// failures are returned as-is, there is no retry here.
type Client struct {
	horizonURL string
	rest       *resty.Client
}

// New builds a client for the given horizon base URL.
func New(horizonURL string) (*Client, error) {
	if horizonURL == "" {
		return nil, ErrNoHorizonURL
	}
	u, err := url.Parse(horizonURL)
	if err != nil {
		return nil, fmt.Errorf("horizon url %q: %w", horizonURL, err)
	}
	base := u.String()
	if base[len(base)-1] != '/' {
		base += "/"
	}
	return &Client{
		horizonURL: base,
		rest:       resty.New().SetTimeout(defaultTimeout),
	}, nil
}

// SetTimeout overrides the per request deadline.
func (c *Client) SetTimeout(timeout time.Duration) *Client {
	c.rest.SetTimeout(timeout)
	return c
}

// HorizonURL reports the base URL requests go to.
func (c *Client) HorizonURL() string {
	return c.horizonURL
}

func decodeResponse(resp *resty.Response, out interface{}) error {
	if resp.StatusCode()/100 != 2 {
		herr := &Error{StatusCode: resp.StatusCode()}
		if err := json.Unmarshal(resp.Body(), &herr.Problem); err != nil {
			log.Warn("horizon problem body unreadable", "status", resp.StatusCode(), "err", err)
		}
		return herr
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("horizon response: %w", err)
	}
	return nil
}

func (c *Client) get(path string, query map[string]string, out interface{}) error {
	req := c.rest.R()
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(c.horizonURL + path)
	if err != nil {
		log.Warn("horizon request error", "path", path, "err", err)
		return err
	}
	return decodeResponse(resp, out)
}

// Root fetches the horizon instance description, including the
// network passphrase it serves.
func (c *Client) Root() (*Root, error) {
	var root Root
	if err := c.get("", nil, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// Network resolves the gateway's network parameters into the form the
// signing layer needs.
func (c *Client) Network() (data.Network, error) {
	root, err := c.Root()
	if err != nil {
		return data.Network{}, err
	}
	return data.Network{Passphrase: root.NetworkPassphrase}, nil
}

// AccountDetail fetches one account. Muxed addresses resolve to their
// base account, horizon has no per mux state.
func (c *Client) AccountDetail(address string) (*Account, error) {
	m, err := data.MuxedAccountFromAddress(address)
	if err != nil {
		return nil, fmt.Errorf("account address %q: %w", address, err)
	}
	var account Account
	err = c.get("accounts/"+m.AccountID().Address(), nil, &account)
	var herr *Error
	if errors.As(err, &herr) && herr.StatusCode == 404 {
		return nil, fmt.Errorf("%q: %w", address, ErrAccountNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// SequenceForAccount returns the account's current sequence number,
// the value transaction building increments.
func (c *Client) SequenceForAccount(address string) (int64, error) {
	account, err := c.AccountDetail(address)
	if err != nil {
		return 0, err
	}
	return account.SequenceNumber()
}

// SubmitTransaction sends a signed envelope and blocks until horizon
// reports ingestion or rejection.
func (c *Client) SubmitTransaction(env *data.TransactionEnvelope) (*TxSuccess, error) {
	b64, err := env.Base64()
	if err != nil {
		return nil, err
	}
	return c.SubmitTransactionXDR(b64)
}

// SubmitTransactionXDR submits an already encoded envelope.
func (c *Client) SubmitTransactionXDR(b64 string) (*TxSuccess, error) {
	resp, err := c.rest.R().
		SetFormData(map[string]string{"tx": b64}).
		Post(c.horizonURL + "transactions")
	if err != nil {
		log.Warn("horizon submit error", "err", err)
		return nil, err
	}
	var success TxSuccess
	if err := decodeResponse(resp, &success); err != nil {
		return nil, err
	}
	log.Debug("transaction accepted", "hash", success.Hash, "ledger", success.Ledger)
	return &success, nil
}

// Transactions pages through an account's transaction history.
func (c *Client) Transactions(address string, q PageQuery) ([]TransactionRecord, error) {
	m, err := data.MuxedAccountFromAddress(address)
	if err != nil {
		return nil, fmt.Errorf("account address %q: %w", address, err)
	}
	query := map[string]string{}
	if q.Cursor != "" {
		query["cursor"] = q.Cursor
	}
	if q.Limit > 0 {
		query["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Order != "" {
		query["order"] = q.Order
	}
	var page TransactionPage
	if err := c.get("accounts/"+m.AccountID().Address()+"/transactions", query, &page); err != nil {
		return nil, err
	}
	return page.Embedded.Records, nil
}
