package data

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"strings"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// AssetType tags the asset union.
type AssetType int32

const (
	AssetTypeNative           AssetType = 0
	AssetTypeCreditAlphanum4  AssetType = 1
	AssetTypeCreditAlphanum12 AssetType = 2
	AssetTypePoolShare        AssetType = 3
)

// Asset names something holdable on the ledger: the native asset, an
// issued credit asset, or (in trustline context only) a liquidity pool
// share. Code is stored without the zero padding the wire form uses.
type Asset struct {
	Type   AssetType
	Code   string
	Issuer AccountID
	PoolID PoolID
}

// NativeAsset returns the network's built in asset.
func NativeAsset() Asset {
	return Asset{Type: AssetTypeNative}
}

// CreditAsset builds an issued asset, picking the 4 or 12 character
// arm from the code length.
func CreditAsset(code string, issuer AccountID) (Asset, error) {
	if err := validAssetCode(code); err != nil {
		return Asset{}, err
	}
	t := AssetTypeCreditAlphanum4
	if len(code) > 4 {
		t = AssetTypeCreditAlphanum12
	}
	return Asset{Type: t, Code: code, Issuer: issuer}, nil
}

// MustCreditAsset is CreditAsset for codes known to be well formed.
func MustCreditAsset(code string, issuer AccountID) Asset {
	a, err := CreditAsset(code, issuer)
	if err != nil {
		panic(err)
	}
	return a
}

// PoolShareAsset names a pool share by its pool id.
func PoolShareAsset(id PoolID) Asset {
	return Asset{Type: AssetTypePoolShare, PoolID: id}
}

func validAssetCode(code string) error {
	if len(code) < 1 || len(code) > 12 {
		return ErrInvalidAssetCode
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return ErrInvalidAssetCode
		}
	}
	return nil
}

// ParseAsset reads the canonical text form, "native" or CODE:ISSUER.
func ParseAsset(s string) (Asset, error) {
	if s == "native" {
		return NativeAsset(), nil
	}
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return Asset{}, fmt.Errorf("asset %q: %w", s, ErrInvalidAsset)
	}
	issuer, err := AccountIDFromAddress(s[i+1:])
	if err != nil {
		return Asset{}, err
	}
	return CreditAsset(s[:i], issuer)
}

// String renders the canonical text form.
func (a Asset) String() string {
	switch a.Type {
	case AssetTypeNative:
		return "native"
	case AssetTypePoolShare:
		return "pool:" + a.PoolID.String()
	default:
		return a.Code + ":" + a.Issuer.Address()
	}
}

// Equals is true when the variant and all its fields match.
func (a Asset) Equals(b Asset) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case AssetTypeNative:
		return true
	case AssetTypePoolShare:
		return a.PoolID == b.PoolID
	default:
		return a.Code == b.Code && a.Issuer == b.Issuer
	}
}

// Compare orders assets canonically: native before alphanum4 before
// alphanum12 before pool shares, then by code, then by issuer.
func (a Asset) Compare(b Asset) int {
	if a.Type != b.Type {
		if a.Type < b.Type {
			return -1
		}
		return 1
	}
	switch a.Type {
	case AssetTypeNative:
		return 0
	case AssetTypePoolShare:
		return bytes.Compare(a.PoolID[:], b.PoolID[:])
	}
	if c := strings.Compare(a.Code, b.Code); c != 0 {
		return c
	}
	return bytes.Compare(a.Issuer[:], b.Issuer[:])
}

func marshalAssetCode(w io.Writer, code string, size int) error {
	buf := make([]byte, size)
	copy(buf, code)
	return xdr.WriteOpaque(w, buf)
}

func unmarshalAssetCode(r *xdr.Reader, size int) (string, error) {
	b, err := xdr.ReadOpaque(r, size)
	if err != nil {
		return "", err
	}
	code := string(bytes.TrimRight(b, "\x00"))
	// the trim may only strip padding, interior zero bytes are invalid
	if strings.IndexByte(code, 0) >= 0 {
		return "", ErrInvalidAssetCode
	}
	if err := validAssetCode(code); err != nil {
		return "", err
	}
	return code, nil
}

func unmarshalCreditAsset(r *xdr.Reader, t AssetType) (Asset, error) {
	size := 4
	if t == AssetTypeCreditAlphanum12 {
		size = 12
	}
	code, err := unmarshalAssetCode(r, size)
	if err != nil {
		return Asset{}, err
	}
	var issuer AccountID
	if err := issuer.Unmarshal(r); err != nil {
		return Asset{}, err
	}
	return Asset{Type: t, Code: code, Issuer: issuer}, nil
}

// Marshal writes the plain asset union. Pool shares never appear in
// this context and are rejected.
func (a *Asset) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(a.Type)); err != nil {
		return err
	}
	switch a.Type {
	case AssetTypeNative:
		return nil
	case AssetTypeCreditAlphanum4:
		if err := marshalAssetCode(w, a.Code, 4); err != nil {
			return err
		}
		return a.Issuer.Marshal(w)
	case AssetTypeCreditAlphanum12:
		if err := marshalAssetCode(w, a.Code, 12); err != nil {
			return err
		}
		return a.Issuer.Marshal(w)
	case AssetTypePoolShare:
		return ErrPoolShareNotAllowed
	default:
		return fmt.Errorf("asset type %d: %w", a.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (a *Asset) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	switch AssetType(t) {
	case AssetTypeNative:
		*a = NativeAsset()
		return nil
	case AssetTypeCreditAlphanum4, AssetTypeCreditAlphanum12:
		*a, err = unmarshalCreditAsset(r, AssetType(t))
		return err
	default:
		return fmt.Errorf("asset type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// Validate rejects malformed credit assets and pool shares outside
// trustline context.
func (a Asset) Validate() error {
	switch a.Type {
	case AssetTypeNative:
		return nil
	case AssetTypeCreditAlphanum4:
		if err := validAssetCode(a.Code); err != nil {
			return err
		}
		if len(a.Code) > 4 {
			return ErrInvalidAssetCode
		}
		return nil
	case AssetTypeCreditAlphanum12:
		return validAssetCode(a.Code)
	case AssetTypePoolShare:
		return ErrPoolShareNotAllowed
	default:
		return ErrInvalidAsset
	}
}

// LiquidityPoolFeeV18 is the only admissible pool fee, 30 basis points.
const LiquidityPoolFeeV18 = 30

// LiquidityPoolParameters describes a constant product pool, the only
// pool kind defined.
type LiquidityPoolParameters struct {
	AssetA Asset
	AssetB Asset
	Fee    int32
}

// PoolParameters builds constant product parameters with the standard
// fee. The assets must be distinct and in canonical order.
func PoolParameters(assetA, assetB Asset) (LiquidityPoolParameters, error) {
	p := LiquidityPoolParameters{AssetA: assetA, AssetB: assetB, Fee: LiquidityPoolFeeV18}
	return p, p.Validate()
}

func (p LiquidityPoolParameters) Validate() error {
	if p.AssetA.Type == AssetTypePoolShare || p.AssetB.Type == AssetTypePoolShare {
		return ErrPoolShareNotAllowed
	}
	if err := p.AssetA.Validate(); err != nil {
		return err
	}
	if err := p.AssetB.Validate(); err != nil {
		return err
	}
	if p.AssetA.Compare(p.AssetB) >= 0 {
		return ErrAssetsNotOrdered
	}
	if p.Fee != LiquidityPoolFeeV18 {
		return ErrInvalidPoolFee
	}
	return nil
}

// ID derives the pool id, the SHA-256 of the parameter wire form.
func (p LiquidityPoolParameters) ID() (PoolID, error) {
	b, err := xdr.Marshal(&p)
	if err != nil {
		return PoolID{}, err
	}
	return PoolID(sha256.Sum256(b)), nil
}

func (p *LiquidityPoolParameters) Marshal(w io.Writer) error {
	// LIQUIDITY_POOL_CONSTANT_PRODUCT is the lone union arm
	if err := xdr.WriteInt32(w, 0); err != nil {
		return err
	}
	if err := p.AssetA.Marshal(w); err != nil {
		return err
	}
	if err := p.AssetB.Marshal(w); err != nil {
		return err
	}
	return xdr.WriteInt32(w, p.Fee)
}

func (p *LiquidityPoolParameters) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if t != 0 {
		return fmt.Errorf("liquidity pool type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
	if err := p.AssetA.Unmarshal(r); err != nil {
		return err
	}
	if err := p.AssetB.Unmarshal(r); err != nil {
		return err
	}
	p.Fee, err = xdr.ReadInt32(r)
	return err
}

// ChangeTrustAsset is the asset form accepted by change trust: a plain
// asset, or the parameters of the liquidity pool to trust.
type ChangeTrustAsset struct {
	Asset          Asset
	PoolParameters *LiquidityPoolParameters
}

// ChangeTrustAssetFromAsset wraps a credit asset.
func ChangeTrustAssetFromAsset(a Asset) ChangeTrustAsset {
	return ChangeTrustAsset{Asset: a}
}

// ChangeTrustAssetFromPool wraps pool parameters. The asset arm is
// filled with the derived pool share.
func ChangeTrustAssetFromPool(p LiquidityPoolParameters) (ChangeTrustAsset, error) {
	if err := p.Validate(); err != nil {
		return ChangeTrustAsset{}, err
	}
	id, err := p.ID()
	if err != nil {
		return ChangeTrustAsset{}, err
	}
	return ChangeTrustAsset{Asset: PoolShareAsset(id), PoolParameters: &p}, nil
}

// Validate accepts credit assets and pool shares with parameters.
func (c ChangeTrustAsset) Validate() error {
	if c.Asset.Type == AssetTypePoolShare {
		if c.PoolParameters == nil {
			return ErrInvalidAsset
		}
		return c.PoolParameters.Validate()
	}
	return c.Asset.Validate()
}

func (c *ChangeTrustAsset) Marshal(w io.Writer) error {
	if c.Asset.Type == AssetTypePoolShare {
		if c.PoolParameters == nil {
			return ErrInvalidAsset
		}
		if err := xdr.WriteInt32(w, int32(AssetTypePoolShare)); err != nil {
			return err
		}
		return c.PoolParameters.Marshal(w)
	}
	return c.Asset.Marshal(w)
}

func (c *ChangeTrustAsset) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	switch AssetType(t) {
	case AssetTypeNative:
		c.Asset = NativeAsset()
		c.PoolParameters = nil
		return nil
	case AssetTypeCreditAlphanum4, AssetTypeCreditAlphanum12:
		c.Asset, err = unmarshalCreditAsset(r, AssetType(t))
		c.PoolParameters = nil
		return err
	case AssetTypePoolShare:
		var p LiquidityPoolParameters
		if err := p.Unmarshal(r); err != nil {
			return err
		}
		id, err := p.ID()
		if err != nil {
			return err
		}
		c.Asset = PoolShareAsset(id)
		c.PoolParameters = &p
		return nil
	default:
		return fmt.Errorf("change trust asset type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// TrustLineAsset is the asset form used by trustline ledger keys,
// where pool shares appear by pool id.
type TrustLineAsset struct {
	Asset Asset
}

// Validate accepts credit assets and pool shares, which carry only
// the pool id here.
func (a TrustLineAsset) Validate() error {
	if a.Asset.Type == AssetTypePoolShare {
		return nil
	}
	return a.Asset.Validate()
}

func (a *TrustLineAsset) Marshal(w io.Writer) error {
	if a.Asset.Type == AssetTypePoolShare {
		if err := xdr.WriteInt32(w, int32(AssetTypePoolShare)); err != nil {
			return err
		}
		return a.Asset.PoolID.Marshal(w)
	}
	return a.Asset.Marshal(w)
}

func (a *TrustLineAsset) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	switch AssetType(t) {
	case AssetTypeNative:
		a.Asset = NativeAsset()
		return nil
	case AssetTypeCreditAlphanum4, AssetTypeCreditAlphanum12:
		a.Asset, err = unmarshalCreditAsset(r, AssetType(t))
		return err
	case AssetTypePoolShare:
		var id PoolID
		if err := id.Unmarshal(r); err != nil {
			return err
		}
		a.Asset = PoolShareAsset(id)
		return nil
	default:
		return fmt.Errorf("trustline asset type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}
