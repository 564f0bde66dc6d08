// Package amount converts between the seven decimal fixed point string
// form of asset amounts and their int64 wire representation. One unit
// of any asset is 10^7 of its smallest indivisible part, so the full
// representable range is 0 through 922337203685.4775807. Conversion is
// exact integer arithmetic, floats never enter the picture.
package amount

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// One unit of an asset in its smallest indivisible parts.
const One = 10000000

const maxWhole = math.MaxInt64 / One

var (
	ErrInvalidAmount    = errors.New("invalid amount string")
	ErrTooManyDecimals  = errors.New("amount has more than 7 decimal places")
	ErrAmountOutOfRange = errors.New("amount outside representable range")
)

// Parse converts a plain non-negative decimal string into smallest
// parts. Signs, exponents and grouping are rejected, as is a fraction
// carrying more than seven digits.
func Parse(s string) (int64, error) {
	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if frac == "" {
			return 0, fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
		}
	}
	if whole == "" {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}
	if len(frac) > 7 {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrTooManyDecimals)
	}

	w, err := parseDigits(whole)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	f := uint64(0)
	if frac != "" {
		f, err = parseDigits(frac + strings.Repeat("0", 7-len(frac)))
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", s, err)
		}
	}
	if w > maxWhole {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrAmountOutOfRange)
	}
	v := w*One + f
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrAmountOutOfRange)
	}
	return int64(v), nil
}

// parseDigits accepts decimal digits only, a stricter gate than
// ParseUint which also knows about prefixes and underscores.
func parseDigits(s string) (uint64, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && ne.Err == strconv.ErrRange {
			return 0, ErrAmountOutOfRange
		}
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// MustParse is Parse for amounts known to be well formed.
func MustParse(s string) int64 {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders smallest parts as the shortest exact decimal form:
// no trailing fraction zeros and no fraction dot for whole values.
// Negative inputs only come from decoded foreign data and keep their
// sign.
func String(v int64) string {
	var u uint64
	neg := v < 0
	if neg {
		u = uint64(-(v + 1)) + 1
	} else {
		u = uint64(v)
	}
	whole, frac := u/One, u%One
	s := strconv.FormatUint(whole, 10)
	if frac != 0 {
		s += "." + strings.TrimRight(fmt.Sprintf("%07d", frac), "0")
	}
	if neg {
		s = "-" + s
	}
	return s
}
