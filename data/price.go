package data

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// Price is an exact rational price, numerator over denominator. Offers
// store it as-is, no decimal rounding happens on the wire.
type Price struct {
	N int32
	D int32
}

// NewPrice checks both terms are positive.
func NewPrice(n, d int32) (Price, error) {
	p := Price{N: n, D: d}
	return p, p.Validate()
}

func (p Price) Validate() error {
	if p.N <= 0 || p.D <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// String renders the exact rational form.
func (p Price) String() string {
	return strconv.FormatInt(int64(p.N), 10) + "/" + strconv.FormatInt(int64(p.D), 10)
}

// Float64 is a display helper only, exactness lives in the rational.
func (p Price) Float64() float64 {
	return float64(p.N) / float64(p.D)
}

func (p *Price) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, p.N); err != nil {
		return err
	}
	return xdr.WriteInt32(w, p.D)
}

func (p *Price) Unmarshal(r *xdr.Reader) error {
	var err error
	if p.N, err = xdr.ReadInt32(r); err != nil {
		return err
	}
	if p.D, err = xdr.ReadInt32(r); err != nil {
		return err
	}
	return p.Validate()
}

func plainDecimal(s string) bool {
	if s == "" || s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}
	dot := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.':
			if dot {
				return false
			}
			dot = true
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// ParsePrice converts a plain positive decimal string into the best
// rational approximation with both terms within int32, by walking the
// continued fraction convergents until one would overflow.
func ParsePrice(s string) (Price, error) {
	if !plainDecimal(s) {
		return Price{}, fmt.Errorf("parse price %q: %w", s, ErrInvalidPrice)
	}
	v, ok := new(big.Rat).SetString(s)
	if !ok || v.Sign() <= 0 {
		return Price{}, fmt.Errorf("parse price %q: %w", s, ErrInvalidPrice)
	}

	maxTerm := big.NewInt(math.MaxInt32)
	// convergent recurrence seeds: h(-1)/k(-1) and h(-2)/k(-2)
	h1, k1 := big.NewInt(1), big.NewInt(0)
	h2, k2 := big.NewInt(0), big.NewInt(1)
	var bestN, bestD *big.Int

	rest := new(big.Rat).Set(v)
	for {
		a := new(big.Int).Quo(rest.Num(), rest.Denom())
		h := new(big.Int).Add(new(big.Int).Mul(a, h1), h2)
		k := new(big.Int).Add(new(big.Int).Mul(a, k1), k2)
		if h.Cmp(maxTerm) > 0 || k.Cmp(maxTerm) > 0 {
			break
		}
		bestN, bestD = h, k
		h2, k2 = h1, k1
		h1, k1 = h, k
		frac := new(big.Rat).Sub(rest, new(big.Rat).SetInt(a))
		if frac.Sign() == 0 {
			break
		}
		rest = frac.Inv(frac)
	}
	if bestN == nil || bestN.Sign() == 0 || bestD.Sign() == 0 {
		return Price{}, fmt.Errorf("parse price %q: no int32 approximation", s)
	}
	return Price{N: int32(bestN.Int64()), D: int32(bestD.Int64())}, nil
}
