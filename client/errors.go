package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoHorizonURL    = errors.New("no horizon url configured")
	ErrAccountNotFound = errors.New("account not found")
)

// ResultCodes carries the ledger's verdict on a rejected submission.
type ResultCodes struct {
	Transaction string   `json:"transaction"`
	Operations  []string `json:"operations"`
}

// Problem is the problem+json body horizon attaches to failed requests.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Extras struct {
		EnvelopeXDR string      `json:"envelope_xdr"`
		ResultXDR   string      `json:"result_xdr"`
		ResultCodes ResultCodes `json:"result_codes"`
	} `json:"extras"`
}

// Error is a non 2xx gateway response, surfaced as-is.
type Error struct {
	StatusCode int
	Problem    Problem
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "horizon error %d", e.StatusCode)
	if e.Problem.Title != "" {
		fmt.Fprintf(&b, ": %s", e.Problem.Title)
	}
	if code := e.Problem.Extras.ResultCodes.Transaction; code != "" {
		fmt.Fprintf(&b, " (%s)", code)
	}
	return b.String()
}

// ResultCodes extracts the result codes from a submission error, if
// err is a horizon rejection that carries them.
func (e *Error) ResultCodes() (ResultCodes, bool) {
	codes := e.Problem.Extras.ResultCodes
	return codes, codes.Transaction != "" || len(codes.Operations) > 0
}
