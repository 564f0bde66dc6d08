package data

import (
	"fmt"
	"io"
	"math"

	"github.com/anyswap/stellar-sdk-go/strkey"
	"github.com/anyswap/stellar-sdk-go/xdr"
)

// ScValType tags the smart contract value union.
type ScValType int32

const (
	ScValTypeBool                      ScValType = 0
	ScValTypeVoid                      ScValType = 1
	ScValTypeError                     ScValType = 2
	ScValTypeU32                       ScValType = 3
	ScValTypeI32                       ScValType = 4
	ScValTypeU64                       ScValType = 5
	ScValTypeI64                       ScValType = 6
	ScValTypeTimepoint                 ScValType = 7
	ScValTypeDuration                  ScValType = 8
	ScValTypeU128                      ScValType = 9
	ScValTypeI128                      ScValType = 10
	ScValTypeU256                      ScValType = 11
	ScValTypeI256                      ScValType = 12
	ScValTypeBytes                     ScValType = 13
	ScValTypeString                    ScValType = 14
	ScValTypeSymbol                    ScValType = 15
	ScValTypeVec                       ScValType = 16
	ScValTypeMap                       ScValType = 17
	ScValTypeAddress                   ScValType = 18
	ScValTypeContractInstance          ScValType = 19
	ScValTypeLedgerKeyContractInstance ScValType = 20
	ScValTypeLedgerKeyNonce            ScValType = 21
)

// maxScDepth bounds container nesting while decoding foreign values.
const maxScDepth = 500

// ScErrorType tags the contract error union.
type ScErrorType int32

const (
	ScErrorTypeContract ScErrorType = 0
	ScErrorTypeWasmVM   ScErrorType = 1
	ScErrorTypeContext  ScErrorType = 2
	ScErrorTypeStorage  ScErrorType = 3
	ScErrorTypeObject   ScErrorType = 4
	ScErrorTypeCrypto   ScErrorType = 5
	ScErrorTypeEvents   ScErrorType = 6
	ScErrorTypeBudget   ScErrorType = 7
	ScErrorTypeValue    ScErrorType = 8
	ScErrorTypeAuth     ScErrorType = 9
)

// ScError is a structured contract failure. The contract arm carries a
// contract defined code, every other arm a shared error code.
type ScError struct {
	Type         ScErrorType
	ContractCode uint32
	Code         int32
}

func (e *ScError) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(e.Type)); err != nil {
		return err
	}
	switch e.Type {
	case ScErrorTypeContract:
		return xdr.WriteUint32(w, e.ContractCode)
	case ScErrorTypeWasmVM, ScErrorTypeContext, ScErrorTypeStorage,
		ScErrorTypeObject, ScErrorTypeCrypto, ScErrorTypeEvents,
		ScErrorTypeBudget, ScErrorTypeValue, ScErrorTypeAuth:
		return xdr.WriteInt32(w, e.Code)
	default:
		return fmt.Errorf("sc error type %d: %w", e.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (e *ScError) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*e = ScError{Type: ScErrorType(t)}
	switch e.Type {
	case ScErrorTypeContract:
		e.ContractCode, err = xdr.ReadUint32(r)
		return err
	case ScErrorTypeWasmVM, ScErrorTypeContext, ScErrorTypeStorage,
		ScErrorTypeObject, ScErrorTypeCrypto, ScErrorTypeEvents,
		ScErrorTypeBudget, ScErrorTypeValue, ScErrorTypeAuth:
		e.Code, err = xdr.ReadInt32(r)
		return err
	default:
		return fmt.Errorf("sc error type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// SCAddressType tags the contract address union.
type SCAddressType int32

const (
	SCAddressTypeAccount  SCAddressType = 0
	SCAddressTypeContract SCAddressType = 1
)

// SCAddress is an address as smart contracts see it: a classic account
// or a contract.
type SCAddress struct {
	Type       SCAddressType
	AccountID  AccountID
	ContractID Hash
}

func SCAddressFromAccountID(id AccountID) SCAddress {
	return SCAddress{Type: SCAddressTypeAccount, AccountID: id}
}

func SCAddressFromContractID(id Hash) SCAddress {
	return SCAddress{Type: SCAddressTypeContract, ContractID: id}
}

// SCAddressFromAddress parses a G or C text address.
func SCAddressFromAddress(address string) (SCAddress, error) {
	var a SCAddress
	if len(address) > 0 && address[0] == 'C' {
		raw, err := strkey.Decode(strkey.VersionContract, address)
		if err != nil {
			return a, err
		}
		a.Type = SCAddressTypeContract
		copy(a.ContractID[:], raw)
		return a, nil
	}
	id, err := AccountIDFromAddress(address)
	if err != nil {
		return a, err
	}
	return SCAddressFromAccountID(id), nil
}

// Address renders the text form, G or C depending on the arm.
func (a SCAddress) Address() string {
	if a.Type == SCAddressTypeContract {
		return strkey.MustEncode(strkey.VersionContract, a.ContractID[:])
	}
	return a.AccountID.Address()
}

func (a *SCAddress) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(a.Type)); err != nil {
		return err
	}
	switch a.Type {
	case SCAddressTypeAccount:
		return a.AccountID.Marshal(w)
	case SCAddressTypeContract:
		return a.ContractID.Marshal(w)
	default:
		return fmt.Errorf("sc address type %d: %w", a.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (a *SCAddress) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*a = SCAddress{Type: SCAddressType(t)}
	switch a.Type {
	case SCAddressTypeAccount:
		return a.AccountID.Unmarshal(r)
	case SCAddressTypeContract:
		return a.ContractID.Unmarshal(r)
	default:
		return fmt.Errorf("sc address type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// 128 and 256 bit integers travel as big-endian limb structs.

type UInt128Parts struct {
	Hi uint64
	Lo uint64
}

func (v *UInt128Parts) Marshal(w io.Writer) error {
	if err := xdr.WriteUint64(w, v.Hi); err != nil {
		return err
	}
	return xdr.WriteUint64(w, v.Lo)
}

func (v *UInt128Parts) Unmarshal(r *xdr.Reader) error {
	var err error
	if v.Hi, err = xdr.ReadUint64(r); err != nil {
		return err
	}
	v.Lo, err = xdr.ReadUint64(r)
	return err
}

type Int128Parts struct {
	Hi int64
	Lo uint64
}

func (v *Int128Parts) Marshal(w io.Writer) error {
	if err := xdr.WriteInt64(w, v.Hi); err != nil {
		return err
	}
	return xdr.WriteUint64(w, v.Lo)
}

func (v *Int128Parts) Unmarshal(r *xdr.Reader) error {
	var err error
	if v.Hi, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	v.Lo, err = xdr.ReadUint64(r)
	return err
}

type UInt256Parts struct {
	HiHi uint64
	HiLo uint64
	LoHi uint64
	LoLo uint64
}

func (v *UInt256Parts) Marshal(w io.Writer) error {
	for _, limb := range [...]uint64{v.HiHi, v.HiLo, v.LoHi, v.LoLo} {
		if err := xdr.WriteUint64(w, limb); err != nil {
			return err
		}
	}
	return nil
}

func (v *UInt256Parts) Unmarshal(r *xdr.Reader) error {
	for _, limb := range [...]*uint64{&v.HiHi, &v.HiLo, &v.LoHi, &v.LoLo} {
		var err error
		if *limb, err = xdr.ReadUint64(r); err != nil {
			return err
		}
	}
	return nil
}

type Int256Parts struct {
	HiHi int64
	HiLo uint64
	LoHi uint64
	LoLo uint64
}

func (v *Int256Parts) Marshal(w io.Writer) error {
	if err := xdr.WriteInt64(w, v.HiHi); err != nil {
		return err
	}
	for _, limb := range [...]uint64{v.HiLo, v.LoHi, v.LoLo} {
		if err := xdr.WriteUint64(w, limb); err != nil {
			return err
		}
	}
	return nil
}

func (v *Int256Parts) Unmarshal(r *xdr.Reader) error {
	var err error
	if v.HiHi, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	for _, limb := range [...]*uint64{&v.HiLo, &v.LoHi, &v.LoLo} {
		if *limb, err = xdr.ReadUint64(r); err != nil {
			return err
		}
	}
	return nil
}

// ScMapEntry is one key/value pair of a contract map.
type ScMapEntry struct {
	Key ScVal
	Val ScVal
}

// ScContractInstance pairs the executable reference of a deployed
// contract with its instance storage.
type ScContractInstance struct {
	Executable ContractExecutable
	Storage    []ScMapEntry
	HasStorage bool
}

// ContractExecutableType tags the executable union.
type ContractExecutableType int32

const (
	ContractExecutableWasm         ContractExecutableType = 0
	ContractExecutableStellarAsset ContractExecutableType = 1
)

// ContractExecutable points at uploaded wasm by hash, or names the
// built in asset contract.
type ContractExecutable struct {
	Type     ContractExecutableType
	WasmHash Hash
}

func (e *ContractExecutable) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(e.Type)); err != nil {
		return err
	}
	switch e.Type {
	case ContractExecutableWasm:
		return e.WasmHash.Marshal(w)
	case ContractExecutableStellarAsset:
		return nil
	default:
		return fmt.Errorf("contract executable type %d: %w", e.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (e *ContractExecutable) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*e = ContractExecutable{Type: ContractExecutableType(t)}
	switch e.Type {
	case ContractExecutableWasm:
		return e.WasmHash.Unmarshal(r)
	case ContractExecutableStellarAsset:
		return nil
	default:
		return fmt.Errorf("contract executable type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// ScVal is the closed value union smart contracts compute with. Only
// the field named by Type is meaningful. Timepoints and durations
// share U64.
type ScVal struct {
	Type     ScValType
	Bool     bool
	Error    ScError
	U32      uint32
	I32      int32
	U64      uint64
	I64      int64
	U128     UInt128Parts
	I128     Int128Parts
	U256     UInt256Parts
	I256     Int256Parts
	Bytes    []byte
	Str      string
	Sym      string
	Vec      []ScVal
	HasVec   bool
	Map      []ScMapEntry
	HasMap   bool
	Address  SCAddress
	Instance ScContractInstance
	NonceKey int64
}

func ScValBool(v bool) ScVal  { return ScVal{Type: ScValTypeBool, Bool: v} }
func ScValVoid() ScVal        { return ScVal{Type: ScValTypeVoid} }
func ScValU32(v uint32) ScVal { return ScVal{Type: ScValTypeU32, U32: v} }
func ScValI32(v int32) ScVal  { return ScVal{Type: ScValTypeI32, I32: v} }
func ScValU64(v uint64) ScVal { return ScVal{Type: ScValTypeU64, U64: v} }
func ScValI64(v int64) ScVal  { return ScVal{Type: ScValTypeI64, I64: v} }

func ScValBytes(b []byte) ScVal {
	return ScVal{Type: ScValTypeBytes, Bytes: b}
}

func ScValString(s string) ScVal {
	return ScVal{Type: ScValTypeString, Str: s}
}

// ScValSymbol builds a symbol value of 1 to 32 characters drawn from
// [a-zA-Z0-9_].
func ScValSymbol(s string) (ScVal, error) {
	if err := validSymbol(s); err != nil {
		return ScVal{}, err
	}
	return ScVal{Type: ScValTypeSymbol, Sym: s}, nil
}

func ScValVec(vals ...ScVal) ScVal {
	return ScVal{Type: ScValTypeVec, Vec: vals, HasVec: true}
}

func ScValMap(entries ...ScMapEntry) ScVal {
	return ScVal{Type: ScValTypeMap, Map: entries, HasMap: true}
}

func ScValAddress(a SCAddress) ScVal {
	return ScVal{Type: ScValTypeAddress, Address: a}
}

func validSymbol(s string) error {
	if len(s) == 0 || len(s) > 32 {
		return ErrInvalidSymbol
	}
	return symbolCharset(s)
}

func symbolCharset(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return ErrInvalidSymbol
		}
	}
	return nil
}

func marshalScVec(w io.Writer, vec []ScVal) error {
	if err := xdr.WriteCount(w, math.MaxUint32, len(vec)); err != nil {
		return err
	}
	for i := range vec {
		if err := vec[i].Marshal(w); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalScVec(r *xdr.Reader, depth int) ([]ScVal, error) {
	n, err := xdr.ReadCount(r, math.MaxUint32)
	if err != nil {
		return nil, err
	}
	vec := make([]ScVal, n)
	for i := range vec {
		if err := vec[i].unmarshal(r, depth); err != nil {
			return nil, err
		}
	}
	return vec, nil
}

func marshalScMap(w io.Writer, m []ScMapEntry) error {
	if err := xdr.WriteCount(w, math.MaxUint32, len(m)); err != nil {
		return err
	}
	for i := range m {
		if err := m[i].Key.Marshal(w); err != nil {
			return err
		}
		if err := m[i].Val.Marshal(w); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalScMap(r *xdr.Reader, depth int) ([]ScMapEntry, error) {
	n, err := xdr.ReadCount(r, math.MaxUint32)
	if err != nil {
		return nil, err
	}
	m := make([]ScMapEntry, n)
	for i := range m {
		if err := m[i].Key.unmarshal(r, depth); err != nil {
			return nil, err
		}
		if err := m[i].Val.unmarshal(r, depth); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (v *ScVal) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(v.Type)); err != nil {
		return err
	}
	switch v.Type {
	case ScValTypeBool:
		return xdr.WriteBool(w, v.Bool)
	case ScValTypeVoid, ScValTypeLedgerKeyContractInstance:
		return nil
	case ScValTypeError:
		return v.Error.Marshal(w)
	case ScValTypeU32:
		return xdr.WriteUint32(w, v.U32)
	case ScValTypeI32:
		return xdr.WriteInt32(w, v.I32)
	case ScValTypeU64, ScValTypeTimepoint, ScValTypeDuration:
		return xdr.WriteUint64(w, v.U64)
	case ScValTypeI64:
		return xdr.WriteInt64(w, v.I64)
	case ScValTypeU128:
		return v.U128.Marshal(w)
	case ScValTypeI128:
		return v.I128.Marshal(w)
	case ScValTypeU256:
		return v.U256.Marshal(w)
	case ScValTypeI256:
		return v.I256.Marshal(w)
	case ScValTypeBytes:
		return xdr.WriteVarOpaque(w, math.MaxUint32, v.Bytes)
	case ScValTypeString:
		return xdr.WriteString(w, math.MaxUint32, v.Str)
	case ScValTypeSymbol:
		if err := symbolCharset(v.Sym); err != nil {
			return err
		}
		return xdr.WriteString(w, 32, v.Sym)
	case ScValTypeVec:
		if err := xdr.WriteBool(w, v.HasVec); err != nil {
			return err
		}
		if !v.HasVec {
			return nil
		}
		return marshalScVec(w, v.Vec)
	case ScValTypeMap:
		if err := xdr.WriteBool(w, v.HasMap); err != nil {
			return err
		}
		if !v.HasMap {
			return nil
		}
		return marshalScMap(w, v.Map)
	case ScValTypeAddress:
		return v.Address.Marshal(w)
	case ScValTypeContractInstance:
		if err := v.Instance.Executable.Marshal(w); err != nil {
			return err
		}
		if err := xdr.WriteBool(w, v.Instance.HasStorage); err != nil {
			return err
		}
		if !v.Instance.HasStorage {
			return nil
		}
		return marshalScMap(w, v.Instance.Storage)
	case ScValTypeLedgerKeyNonce:
		return xdr.WriteInt64(w, v.NonceKey)
	default:
		return fmt.Errorf("sc value type %d: %w", v.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (v *ScVal) Unmarshal(r *xdr.Reader) error {
	return v.unmarshal(r, 0)
}

func (v *ScVal) unmarshal(r *xdr.Reader, depth int) error {
	if depth > maxScDepth {
		return xdr.ErrLengthExceedsMax
	}
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*v = ScVal{Type: ScValType(t)}
	switch v.Type {
	case ScValTypeBool:
		v.Bool, err = xdr.ReadBool(r)
		return err
	case ScValTypeVoid, ScValTypeLedgerKeyContractInstance:
		return nil
	case ScValTypeError:
		return v.Error.Unmarshal(r)
	case ScValTypeU32:
		v.U32, err = xdr.ReadUint32(r)
		return err
	case ScValTypeI32:
		v.I32, err = xdr.ReadInt32(r)
		return err
	case ScValTypeU64, ScValTypeTimepoint, ScValTypeDuration:
		v.U64, err = xdr.ReadUint64(r)
		return err
	case ScValTypeI64:
		v.I64, err = xdr.ReadInt64(r)
		return err
	case ScValTypeU128:
		return v.U128.Unmarshal(r)
	case ScValTypeI128:
		return v.I128.Unmarshal(r)
	case ScValTypeU256:
		return v.U256.Unmarshal(r)
	case ScValTypeI256:
		return v.I256.Unmarshal(r)
	case ScValTypeBytes:
		v.Bytes, err = xdr.ReadVarOpaque(r, math.MaxUint32)
		return err
	case ScValTypeString:
		v.Str, err = xdr.ReadString(r, math.MaxUint32)
		return err
	case ScValTypeSymbol:
		if v.Sym, err = xdr.ReadString(r, 32); err != nil {
			return err
		}
		return symbolCharset(v.Sym)
	case ScValTypeVec:
		if v.HasVec, err = xdr.ReadOptional(r); err != nil {
			return err
		}
		if !v.HasVec {
			return nil
		}
		v.Vec, err = unmarshalScVec(r, depth+1)
		return err
	case ScValTypeMap:
		if v.HasMap, err = xdr.ReadOptional(r); err != nil {
			return err
		}
		if !v.HasMap {
			return nil
		}
		v.Map, err = unmarshalScMap(r, depth+1)
		return err
	case ScValTypeAddress:
		return v.Address.Unmarshal(r)
	case ScValTypeContractInstance:
		if err := v.Instance.Executable.Unmarshal(r); err != nil {
			return err
		}
		if v.Instance.HasStorage, err = xdr.ReadOptional(r); err != nil {
			return err
		}
		if !v.Instance.HasStorage {
			return nil
		}
		v.Instance.Storage, err = unmarshalScMap(r, depth+1)
		return err
	case ScValTypeLedgerKeyNonce:
		v.NonceKey, err = xdr.ReadInt64(r)
		return err
	default:
		return fmt.Errorf("sc value type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}
