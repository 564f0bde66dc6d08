package amount

import (
	"errors"
	"math"
	"testing"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type AmountSuite struct{}

var _ = Suite(&AmountSuite{})

var parseTests = []struct {
	in  string
	out int64
	err error
}{
	{"0", 0, nil},
	{"0.0000000", 0, nil},
	{"1", One, nil},
	{"100", 100 * One, nil},
	{"100.0000001", 1000000001, nil},
	{"123.456", 1234560000, nil},
	{"0.0000001", 1, nil},
	{"922337203685.4775807", math.MaxInt64, nil},
	{"922337203685", 9223372036850000000, nil},

	{"922337203685.4775808", 0, ErrAmountOutOfRange},
	{"922337203686", 0, ErrAmountOutOfRange},
	{"99999999999999999999", 0, ErrAmountOutOfRange},
	{"0.00000001", 0, ErrTooManyDecimals},
	{"1.12345678", 0, ErrTooManyDecimals},
	{"", 0, ErrInvalidAmount},
	{".5", 0, ErrInvalidAmount},
	{"1.", 0, ErrInvalidAmount},
	{"-1", 0, ErrInvalidAmount},
	{"+1", 0, ErrInvalidAmount},
	{"1,5", 0, ErrInvalidAmount},
	{"1e7", 0, ErrInvalidAmount},
	{" 1", 0, ErrInvalidAmount},
	{"1 ", 0, ErrInvalidAmount},
	{"1.2.3", 0, ErrInvalidAmount},
	{"0x10", 0, ErrInvalidAmount},
	{"1_000", 0, ErrInvalidAmount},
}

func (s *AmountSuite) TestParse(c *C) {
	for _, t := range parseTests {
		v, err := Parse(t.in)
		if t.err == nil {
			c.Assert(err, IsNil, Commentf("input: %q", t.in))
			c.Check(v, Equals, t.out, Commentf("input: %q", t.in))
		} else {
			c.Check(errors.Is(err, t.err), Equals, true, Commentf("input: %q got: %v", t.in, err))
		}
	}
}

var stringTests = []struct {
	in  int64
	out string
}{
	{0, "0"},
	{1, "0.0000001"},
	{One, "1"},
	{1000000001, "100.0000001"},
	{1234560000, "123.456"},
	{9223372036850000000, "922337203685"},
	{math.MaxInt64, "922337203685.4775807"},
	{-One, "-1"},
	{-5000000, "-0.5"},
	{math.MinInt64, "-922337203685.4775808"},
}

func (s *AmountSuite) TestString(c *C) {
	for _, t := range stringTests {
		c.Check(String(t.in), Equals, t.out, Commentf("input: %d", t.in))
	}
}

func (s *AmountSuite) TestRoundTrip(c *C) {
	for _, v := range []int64{0, 1, 99, One, One + 1, 42 * One, math.MaxInt64 - 1, math.MaxInt64} {
		got, err := Parse(String(v))
		c.Assert(err, IsNil)
		c.Check(got, Equals, v)
	}
}

func (s *AmountSuite) TestMustParse(c *C) {
	c.Check(MustParse("1.5"), Equals, int64(15000000))
	c.Check(func() { MustParse("bogus") }, PanicMatches, `parse amount .*`)
}
