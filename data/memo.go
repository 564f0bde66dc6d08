package data

import (
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// MemoType tags the memo union.
type MemoType int32

const (
	MemoTypeNone   MemoType = 0
	MemoTypeText   MemoType = 1
	MemoTypeID     MemoType = 2
	MemoTypeHash   MemoType = 3
	MemoTypeReturn MemoType = 4
)

// MaxMemoTextBytes bounds the text memo variant.
const MaxMemoTextBytes = 28

// Memo is the optional note travelling with a transaction. The zero
// value is the none memo.
type Memo struct {
	Type MemoType
	Text string
	ID   uint64
	Hash Hash
}

func MemoNone() Memo {
	return Memo{Type: MemoTypeNone}
}

// MemoText builds a text memo of at most 28 bytes.
func MemoText(text string) (Memo, error) {
	if len(text) > MaxMemoTextBytes {
		return Memo{}, ErrMemoTextTooLong
	}
	return Memo{Type: MemoTypeText, Text: text}, nil
}

func MemoID(id uint64) Memo {
	return Memo{Type: MemoTypeID, ID: id}
}

func MemoHash(h Hash) Memo {
	return Memo{Type: MemoTypeHash, Hash: h}
}

// MemoReturn carries the hash of the transaction being refunded.
func MemoReturn(h Hash) Memo {
	return Memo{Type: MemoTypeReturn, Hash: h}
}

func (m Memo) Validate() error {
	switch m.Type {
	case MemoTypeNone, MemoTypeID, MemoTypeHash, MemoTypeReturn:
		return nil
	case MemoTypeText:
		if len(m.Text) > MaxMemoTextBytes {
			return ErrMemoTextTooLong
		}
		return nil
	default:
		return fmt.Errorf("memo type %d: %w", m.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (m *Memo) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(m.Type)); err != nil {
		return err
	}
	switch m.Type {
	case MemoTypeNone:
		return nil
	case MemoTypeText:
		return xdr.WriteString(w, MaxMemoTextBytes, m.Text)
	case MemoTypeID:
		return xdr.WriteUint64(w, m.ID)
	case MemoTypeHash, MemoTypeReturn:
		return m.Hash.Marshal(w)
	default:
		return fmt.Errorf("memo type %d: %w", m.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (m *Memo) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*m = Memo{Type: MemoType(t)}
	switch m.Type {
	case MemoTypeNone:
		return nil
	case MemoTypeText:
		m.Text, err = xdr.ReadString(r, MaxMemoTextBytes)
		return err
	case MemoTypeID:
		m.ID, err = xdr.ReadUint64(r)
		return err
	case MemoTypeHash, MemoTypeReturn:
		return m.Hash.Unmarshal(r)
	default:
		return fmt.Errorf("memo type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}
