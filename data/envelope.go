package data

import (
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// EnvelopeType tags the envelope union and doubles as the domain
// separator of signature payloads.
type EnvelopeType int32

const (
	EnvelopeTypeTxV0                 EnvelopeType = 0
	EnvelopeTypeSCP                  EnvelopeType = 1
	EnvelopeTypeTx                   EnvelopeType = 2
	EnvelopeTypeAuth                 EnvelopeType = 3
	EnvelopeTypeSCPValue             EnvelopeType = 4
	EnvelopeTypeTxFeeBump            EnvelopeType = 5
	EnvelopeTypeOpID                 EnvelopeType = 6
	EnvelopeTypePoolRevokeOpID       EnvelopeType = 7
	EnvelopeTypeContractID           EnvelopeType = 8
	EnvelopeTypeSorobanAuthorization EnvelopeType = 9
)

// maxSignatures bounds the decorated signature list of an envelope.
const maxSignatures = 20

func marshalSignatures(w io.Writer, sigs []DecoratedSignature) error {
	if err := xdr.WriteCount(w, maxSignatures, len(sigs)); err != nil {
		return err
	}
	for i := range sigs {
		if err := sigs[i].Marshal(w); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalSignatures(r *xdr.Reader) ([]DecoratedSignature, error) {
	n, err := xdr.ReadCount(r, maxSignatures)
	if err != nil {
		return nil, err
	}
	sigs := make([]DecoratedSignature, n)
	for i := range sigs {
		if err := sigs[i].Unmarshal(r); err != nil {
			return nil, err
		}
	}
	return sigs, nil
}

// TransactionV1Envelope is a current generation transaction with its
// signatures.
type TransactionV1Envelope struct {
	Tx         Transaction
	Signatures []DecoratedSignature
}

func (e *TransactionV1Envelope) Marshal(w io.Writer) error {
	if err := e.Tx.Marshal(w); err != nil {
		return err
	}
	return marshalSignatures(w, e.Signatures)
}

func (e *TransactionV1Envelope) Unmarshal(r *xdr.Reader) error {
	if err := e.Tx.Unmarshal(r); err != nil {
		return err
	}
	var err error
	e.Signatures, err = unmarshalSignatures(r)
	return err
}

// TransactionV0Envelope is a legacy envelope kept for decoding old
// traffic.
type TransactionV0Envelope struct {
	Tx         TransactionV0
	Signatures []DecoratedSignature
}

func (e *TransactionV0Envelope) Marshal(w io.Writer) error {
	if err := e.Tx.Marshal(w); err != nil {
		return err
	}
	return marshalSignatures(w, e.Signatures)
}

func (e *TransactionV0Envelope) Unmarshal(r *xdr.Reader) error {
	if err := e.Tx.Unmarshal(r); err != nil {
		return err
	}
	var err error
	e.Signatures, err = unmarshalSignatures(r)
	return err
}

// FeeBumpTransactionEnvelope is a fee bump with the outer signatures.
type FeeBumpTransactionEnvelope struct {
	Tx         FeeBumpTransaction
	Signatures []DecoratedSignature
}

func (e *FeeBumpTransactionEnvelope) Marshal(w io.Writer) error {
	if err := e.Tx.Marshal(w); err != nil {
		return err
	}
	return marshalSignatures(w, e.Signatures)
}

func (e *FeeBumpTransactionEnvelope) Unmarshal(r *xdr.Reader) error {
	if err := e.Tx.Unmarshal(r); err != nil {
		return err
	}
	var err error
	e.Signatures, err = unmarshalSignatures(r)
	return err
}

// TransactionEnvelope is the union submitted to the network. Exactly
// the arm matching Type is set.
type TransactionEnvelope struct {
	Type    EnvelopeType
	V0      *TransactionV0Envelope
	V1      *TransactionV1Envelope
	FeeBump *FeeBumpTransactionEnvelope
}

// NewTransactionEnvelope wraps an unsigned transaction in a v1
// envelope.
func NewTransactionEnvelope(tx *Transaction) *TransactionEnvelope {
	return &TransactionEnvelope{
		Type: EnvelopeTypeTx,
		V1:   &TransactionV1Envelope{Tx: *tx},
	}
}

// NewFeeBumpEnvelope wraps a signed v1 envelope in a fee bump paid by
// feeSource.
func NewFeeBumpEnvelope(inner TransactionV1Envelope, feeSource MuxedAccount, fee int64) *TransactionEnvelope {
	return &TransactionEnvelope{
		Type: EnvelopeTypeTxFeeBump,
		FeeBump: &FeeBumpTransactionEnvelope{
			Tx: FeeBumpTransaction{FeeSource: feeSource, Fee: fee, Inner: inner},
		},
	}
}

// SourceAccount returns the fee paying account of the outermost layer.
func (e *TransactionEnvelope) SourceAccount() MuxedAccount {
	switch e.Type {
	case EnvelopeTypeTxV0:
		return MuxedAccount{KeyType: KeyTypeEd25519, Ed25519: e.V0.Tx.SourceEd25519}
	case EnvelopeTypeTxFeeBump:
		return e.FeeBump.Tx.FeeSource
	default:
		return e.V1.Tx.SourceAccount
	}
}

// Signatures returns the signature list of the outermost layer.
func (e *TransactionEnvelope) Signatures() []DecoratedSignature {
	switch e.Type {
	case EnvelopeTypeTxV0:
		return e.V0.Signatures
	case EnvelopeTypeTxFeeBump:
		return e.FeeBump.Signatures
	default:
		return e.V1.Signatures
	}
}

func (e *TransactionEnvelope) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(e.Type)); err != nil {
		return err
	}
	switch e.Type {
	case EnvelopeTypeTxV0:
		if e.V0 == nil {
			return ErrMissingUnionBody
		}
		return e.V0.Marshal(w)
	case EnvelopeTypeTx:
		if e.V1 == nil {
			return ErrMissingUnionBody
		}
		return e.V1.Marshal(w)
	case EnvelopeTypeTxFeeBump:
		if e.FeeBump == nil {
			return ErrMissingUnionBody
		}
		return e.FeeBump.Marshal(w)
	default:
		return fmt.Errorf("envelope type %d: %w", e.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (e *TransactionEnvelope) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*e = TransactionEnvelope{Type: EnvelopeType(t)}
	switch e.Type {
	case EnvelopeTypeTxV0:
		e.V0 = new(TransactionV0Envelope)
		return e.V0.Unmarshal(r)
	case EnvelopeTypeTx:
		e.V1 = new(TransactionV1Envelope)
		return e.V1.Unmarshal(r)
	case EnvelopeTypeTxFeeBump:
		e.FeeBump = new(FeeBumpTransactionEnvelope)
		return e.FeeBump.Unmarshal(r)
	default:
		return fmt.Errorf("envelope type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// Base64 renders the envelope in the form the network API accepts.
func (e *TransactionEnvelope) Base64() (string, error) {
	return xdr.MarshalBase64(e)
}

// EnvelopeFromBase64 strictly decodes a base64 envelope.
func EnvelopeFromBase64(s string) (*TransactionEnvelope, error) {
	e := new(TransactionEnvelope)
	if err := xdr.UnmarshalBase64(s, e); err != nil {
		return nil, err
	}
	return e, nil
}
