package xdr

import (
	"encoding/binary"
	"io"
)

var zeroPad [4]byte

func writePadding(w io.Writer, n int) error {
	if pad := (4 - n%4) % 4; pad > 0 {
		_, err := w.Write(zeroPad[:pad])
		return err
	}
	return nil
}

func WriteUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func WriteInt32(w io.Writer, v int32) error {
	return WriteUint32(w, uint32(v))
}

func WriteUint64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func WriteInt64(w io.Writer, v int64) error {
	return WriteUint64(w, uint64(v))
}

func WriteBool(w io.Writer, v bool) error {
	if v {
		return WriteUint32(w, 1)
	}
	return WriteUint32(w, 0)
}

// WriteOpaque writes fixed-length opaque data. The length is implied by
// the type definition, so only the bytes and alignment padding go out.
func WriteOpaque(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return err
	}
	return writePadding(w, len(b))
}

// WriteVarOpaque writes length-prefixed opaque data padded to four bytes.
func WriteVarOpaque(w io.Writer, max uint32, b []byte) error {
	if uint64(len(b)) > uint64(max) {
		return ErrLengthExceedsMax
	}
	if err := WriteUint32(w, uint32(len(b))); err != nil {
		return err
	}
	return WriteOpaque(w, b)
}

func WriteString(w io.Writer, max uint32, s string) error {
	return WriteVarOpaque(w, max, []byte(s))
}

// WriteCount writes a variable-length array counter.
func WriteCount(w io.Writer, max uint32, n int) error {
	if n < 0 || uint64(n) > uint64(max) {
		return ErrLengthExceedsMax
	}
	return WriteUint32(w, uint32(n))
}
