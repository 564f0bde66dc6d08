package xdr

import (
	"bytes"
	"encoding/hex"
	"io"
	"testing"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type CodecSuite struct{}

var _ = Suite(&CodecSuite{})

func encodeHex(c *C, f func(w io.Writer) error) string {
	var buf bytes.Buffer
	c.Assert(f(&buf), IsNil)
	return hex.EncodeToString(buf.Bytes())
}

func readerFromHex(c *C, s string) *Reader {
	b, err := hex.DecodeString(s)
	c.Assert(err, IsNil)
	return NewReader(b)
}

func (s *CodecSuite) TestIntegers(c *C) {
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteUint32(w, 5) }), Equals, "00000005")
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteInt32(w, -2) }), Equals, "fffffffe")
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteUint64(w, 0x0102030405060708) }), Equals, "0102030405060708")
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteInt64(w, -1) }), Equals, "ffffffffffffffff")

	r := readerFromHex(c, "00000005fffffffe0102030405060708ffffffffffffffff")
	u32, err := ReadUint32(r)
	c.Assert(err, IsNil)
	c.Check(u32, Equals, uint32(5))
	i32, err := ReadInt32(r)
	c.Assert(err, IsNil)
	c.Check(i32, Equals, int32(-2))
	u64, err := ReadUint64(r)
	c.Assert(err, IsNil)
	c.Check(u64, Equals, uint64(0x0102030405060708))
	i64, err := ReadInt64(r)
	c.Assert(err, IsNil)
	c.Check(i64, Equals, int64(-1))
	c.Check(r.Len(), Equals, 0)
}

func (s *CodecSuite) TestBool(c *C) {
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteBool(w, true) }), Equals, "00000001")
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteBool(w, false) }), Equals, "00000000")

	v, err := ReadBool(readerFromHex(c, "00000001"))
	c.Assert(err, IsNil)
	c.Check(v, Equals, true)

	_, err = ReadBool(readerFromHex(c, "00000002"))
	c.Check(err, Equals, ErrInvalidBool)

	_, err = ReadOptional(readerFromHex(c, "00000002"))
	c.Check(err, Equals, ErrInvalidOptional)
}

func (s *CodecSuite) TestOpaque(c *C) {
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteOpaque(w, []byte{1, 2, 3, 4}) }), Equals, "01020304")
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteOpaque(w, []byte{1, 2, 3}) }), Equals, "01020300")

	b, err := ReadOpaque(readerFromHex(c, "01020300"), 3)
	c.Assert(err, IsNil)
	c.Check(b, DeepEquals, []byte{1, 2, 3})

	_, err = ReadOpaque(readerFromHex(c, "01020301"), 3)
	c.Check(err, Equals, ErrNonZeroPadding)
}

func (s *CodecSuite) TestVarOpaque(c *C) {
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteVarOpaque(w, 10, []byte{1, 2, 3}) }), Equals, "0000000301020300")

	err := WriteVarOpaque(io.Discard, 2, []byte{1, 2, 3})
	c.Check(err, Equals, ErrLengthExceedsMax)

	b, err := ReadVarOpaque(readerFromHex(c, "0000000301020300"), 10)
	c.Assert(err, IsNil)
	c.Check(b, DeepEquals, []byte{1, 2, 3})

	_, err = ReadVarOpaque(readerFromHex(c, "0000000301020300"), 2)
	c.Check(err, Equals, ErrLengthExceedsMax)

	_, err = ReadVarOpaque(readerFromHex(c, "000000050102030400"), 10)
	c.Check(err, Equals, ErrTruncatedInput)

	_, err = ReadVarOpaque(readerFromHex(c, "0000000301020301"), 10)
	c.Check(err, Equals, ErrNonZeroPadding)
}

func (s *CodecSuite) TestString(c *C) {
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteString(w, 32, "hello") }), Equals, "0000000568656c6c6f000000")

	v, err := ReadString(readerFromHex(c, "0000000568656c6c6f000000"), 32)
	c.Assert(err, IsNil)
	c.Check(v, Equals, "hello")

	_, err = ReadString(readerFromHex(c, "00000001ff000000"), 32)
	c.Check(err, Equals, ErrInvalidUTF8)
}

func (s *CodecSuite) TestTruncation(c *C) {
	_, err := ReadUint32(readerFromHex(c, "010203"))
	c.Check(err, Equals, ErrTruncatedInput)

	_, err = ReadUint64(readerFromHex(c, "01020304"))
	c.Check(err, Equals, ErrTruncatedInput)
}

func (s *CodecSuite) TestCount(c *C) {
	c.Check(encodeHex(c, func(w io.Writer) error { return WriteCount(w, 100, 3) }), Equals, "00000003")

	err := WriteCount(io.Discard, 2, 3)
	c.Check(err, Equals, ErrLengthExceedsMax)

	n, err := ReadCount(readerFromHex(c, "0000000200000000ffffffff"), 5)
	c.Assert(err, IsNil)
	c.Check(n, Equals, 2)

	_, err = ReadCount(readerFromHex(c, "00000006"), 5)
	c.Check(err, Equals, ErrLengthExceedsMax)

	// counts that cannot fit the remaining input fail before allocation
	_, err = ReadCount(readerFromHex(c, "7fffffff00000000"), 0xffffffff)
	c.Check(err, Equals, ErrTruncatedInput)
}

// testWord is a minimal Value used to exercise the top level helpers.
type testWord uint32

func (v *testWord) Marshal(w io.Writer) error {
	return WriteUint32(w, uint32(*v))
}

func (v *testWord) Unmarshal(r *Reader) error {
	u, err := ReadUint32(r)
	if err != nil {
		return err
	}
	*v = testWord(u)
	return nil
}

func (s *CodecSuite) TestValueHelpers(c *C) {
	v := testWord(5)
	b, err := Marshal(&v)
	c.Assert(err, IsNil)
	c.Check(hex.EncodeToString(b), Equals, "00000005")

	s64, err := MarshalBase64(&v)
	c.Assert(err, IsNil)
	c.Check(s64, Equals, "AAAABQ==")

	var out testWord
	c.Assert(Unmarshal(b, &out), IsNil)
	c.Check(out, Equals, testWord(5))

	c.Assert(UnmarshalBase64(s64, &out), IsNil)
	c.Check(out, Equals, testWord(5))

	err = Unmarshal(append(b, 0), &out)
	c.Check(err, Equals, ErrTrailingBytes)

	err = UnmarshalBase64("not base64!!", &out)
	c.Check(err, NotNil)
}
