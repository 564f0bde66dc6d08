package data

import (
	"bytes"
	"crypto/sha256"

	"github.com/anyswap/stellar-sdk-go/keypair"
	"github.com/anyswap/stellar-sdk-go/xdr"
)

// signaturePayload hashes network id, envelope type tag and body. That
// hash is what ed25519 keys actually sign.
func signaturePayload(network Network, envType EnvelopeType, body xdr.Value) (Hash, error) {
	var buf bytes.Buffer
	id := network.ID()
	buf.Write(id[:])
	if err := xdr.WriteInt32(&buf, int32(envType)); err != nil {
		return Hash{}, err
	}
	if err := body.Marshal(&buf); err != nil {
		return Hash{}, err
	}
	return sha256.Sum256(buf.Bytes()), nil
}

// Hash is the signature payload hash of the transaction on the given
// network, also its network transaction id.
func (tx *Transaction) Hash(network Network) (Hash, error) {
	return signaturePayload(network, EnvelopeTypeTx, tx)
}

// Hash is the outer signature payload hash of the fee bump.
func (tx *FeeBumpTransaction) Hash(network Network) (Hash, error) {
	return signaturePayload(network, EnvelopeTypeTxFeeBump, tx)
}

// Hash returns what signatures on this envelope must cover. Legacy v0
// bodies hash as if lifted to v1.
func (e *TransactionEnvelope) Hash(network Network) (Hash, error) {
	switch e.Type {
	case EnvelopeTypeTxV0:
		if e.V0 == nil {
			return Hash{}, ErrMissingUnionBody
		}
		return e.V0.Tx.V1().Hash(network)
	case EnvelopeTypeTx:
		if e.V1 == nil {
			return Hash{}, ErrMissingUnionBody
		}
		return e.V1.Tx.Hash(network)
	case EnvelopeTypeTxFeeBump:
		if e.FeeBump == nil {
			return Hash{}, ErrMissingUnionBody
		}
		return e.FeeBump.Tx.Hash(network)
	default:
		return Hash{}, ErrMissingUnionBody
	}
}

// NewDecoratedSignature signs the envelope hash with the key pair.
func NewDecoratedSignature(kp *keypair.KeyPair, hash Hash) (DecoratedSignature, error) {
	sig, err := kp.Sign(hash[:])
	if err != nil {
		return DecoratedSignature{}, err
	}
	return DecoratedSignature{Hint: kp.Hint(), Signature: sig}, nil
}

// NewDecoratedSignatureForPayload signs the raw payload of a signed
// payload signer. The hint is the key hint XORed with the last four
// payload bytes, short payloads are zero padded on the right.
func NewDecoratedSignatureForPayload(kp *keypair.KeyPair, payload []byte) (DecoratedSignature, error) {
	sig, err := kp.Sign(payload)
	if err != nil {
		return DecoratedSignature{}, err
	}
	hint := kp.Hint()
	if len(payload) >= 4 {
		for i := 0; i < 4; i++ {
			hint[i] ^= payload[len(payload)-4+i]
		}
	} else {
		for i := range payload {
			hint[i] ^= payload[i]
		}
	}
	return DecoratedSignature{Hint: hint, Signature: sig}, nil
}

// NewHashXSignature satisfies a hash-x signer by revealing the
// preimage. The hint is the tail of the signer key, which is the
// preimage hash.
func NewHashXSignature(preimage []byte) (DecoratedSignature, error) {
	if len(preimage) > 64 {
		return DecoratedSignature{}, ErrPreimageTooLong
	}
	h := sha256.Sum256(preimage)
	var hint [4]byte
	copy(hint[:], h[28:])
	return DecoratedSignature{Hint: hint, Signature: append([]byte(nil), preimage...)}, nil
}

func (e *TransactionEnvelope) appendSignature(sig DecoratedSignature) error {
	var sigs *[]DecoratedSignature
	switch e.Type {
	case EnvelopeTypeTxV0:
		sigs = &e.V0.Signatures
	case EnvelopeTypeTx:
		sigs = &e.V1.Signatures
	case EnvelopeTypeTxFeeBump:
		sigs = &e.FeeBump.Signatures
	default:
		return ErrMissingUnionBody
	}
	if len(*sigs) >= maxSignatures {
		return ErrTooManySignatures
	}
	*sigs = append(*sigs, sig)
	return nil
}

// Sign hashes the envelope for the network and appends one decorated
// signature per key pair.
func (e *TransactionEnvelope) Sign(network Network, signers ...*keypair.KeyPair) error {
	hash, err := e.Hash(network)
	if err != nil {
		return err
	}
	for _, kp := range signers {
		sig, err := NewDecoratedSignature(kp, hash)
		if err != nil {
			return err
		}
		if err := e.appendSignature(sig); err != nil {
			return err
		}
	}
	return nil
}

// SignPayload appends a signed payload signer signature to the
// envelope.
func (e *TransactionEnvelope) SignPayload(kp *keypair.KeyPair, payload []byte) error {
	sig, err := NewDecoratedSignatureForPayload(kp, payload)
	if err != nil {
		return err
	}
	return e.appendSignature(sig)
}

// SignHashX appends a preimage reveal signature to the envelope.
func (e *TransactionEnvelope) SignHashX(preimage []byte) error {
	sig, err := NewHashXSignature(preimage)
	if err != nil {
		return err
	}
	return e.appendSignature(sig)
}
