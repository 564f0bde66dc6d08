// Package xdr implements the subset of RFC 4506 External Data
// Representation used by the ledger wire protocol: big-endian integers,
// length-prefixed opaque data padded to four byte alignment, optionals
// as a presence word, and discriminated unions.
package xdr

import (
	"bytes"
	"encoding/base64"
	"io"
)

// Value is implemented by every wire type that can marshal itself.
type Value interface {
	Marshal(w io.Writer) error
	Unmarshal(r *Reader) error
}

// Marshal encodes v into a byte slice.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.Marshal(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalBase64 encodes v and wraps the bytes in standard base64.
func MarshalBase64(v Value) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Unmarshal decodes v from b. A well formed stream is consumed exactly,
// trailing bytes are an error.
func Unmarshal(b []byte, v Value) error {
	r := NewReader(b)
	if err := v.Unmarshal(r); err != nil {
		return err
	}
	if r.Len() != 0 {
		return ErrTrailingBytes
	}
	return nil
}

// UnmarshalBase64 decodes v from a base64 wrapped byte stream.
func UnmarshalBase64(s string, v Value) error {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	return Unmarshal(b, v)
}
