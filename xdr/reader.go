package xdr

import (
	"encoding/binary"
	"unicode/utf8"
)

// Reader consumes XDR primitives from an in-memory buffer. It keeps a
// cursor so consecutive reads walk the stream without re-reading bytes.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, ErrTruncatedInput
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func readPadding(r *Reader, n int) error {
	pad := (4 - n%4) % 4
	if pad == 0 {
		return nil
	}
	b, err := r.next(pad)
	if err != nil {
		return err
	}
	for _, c := range b {
		if c != 0 {
			return ErrNonZeroPadding
		}
	}
	return nil
}

func ReadUint32(r *Reader) (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func ReadInt32(r *Reader) (int32, error) {
	v, err := ReadUint32(r)
	return int32(v), err
}

func ReadUint64(r *Reader) (uint64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func ReadInt64(r *Reader) (int64, error) {
	v, err := ReadUint64(r)
	return int64(v), err
}

func ReadBool(r *Reader) (bool, error) {
	v, err := ReadUint32(r)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBool
	}
}

// ReadOptional reads the presence flag of an XDR optional value.
func ReadOptional(r *Reader) (bool, error) {
	v, err := ReadUint32(r)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidOptional
	}
}

// ReadOpaque reads fixed-length opaque data plus alignment padding.
// The returned slice is a copy and safe to retain.
func ReadOpaque(r *Reader, n int) ([]byte, error) {
	b, err := r.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, readPadding(r, n)
}

// ReadVarOpaque reads length-prefixed opaque data, rejecting lengths
// beyond max before any allocation happens.
func ReadVarOpaque(r *Reader, max uint32) ([]byte, error) {
	n, err := ReadUint32(r)
	if err != nil {
		return nil, err
	}
	if n > max {
		return nil, ErrLengthExceedsMax
	}
	if int(n) > r.Len() {
		return nil, ErrTruncatedInput
	}
	return ReadOpaque(r, int(n))
}

func ReadString(r *Reader, max uint32) (string, error) {
	b, err := ReadVarOpaque(r, max)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// ReadCount reads a variable-length array counter. Besides the protocol
// maximum it is checked against the remaining input, every element needs
// at least four bytes, so absurd counts fail before allocation.
func ReadCount(r *Reader, max uint32) (int, error) {
	n, err := ReadUint32(r)
	if err != nil {
		return 0, err
	}
	if n > max {
		return 0, ErrLengthExceedsMax
	}
	if int64(n)*4 > int64(r.Len()) {
		return 0, ErrTruncatedInput
	}
	return int(n), nil
}
