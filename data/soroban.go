package data

import (
	"fmt"
	"io"
	"math"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// HostFunctionType tags the host function union of an invoke host
// function operation.
type HostFunctionType int32

const (
	HostFunctionTypeInvokeContract   HostFunctionType = 0
	HostFunctionTypeCreateContract   HostFunctionType = 1
	HostFunctionTypeUploadWasm       HostFunctionType = 2
	HostFunctionTypeCreateContractV2 HostFunctionType = 3
)

// ContractIDPreimageType tags the contract id preimage union.
type ContractIDPreimageType int32

const (
	ContractIDPreimageFromAddress ContractIDPreimageType = 0
	ContractIDPreimageFromAsset   ContractIDPreimageType = 1
)

// ContractIDPreimage seeds a deterministic contract id, either from a
// deployer address plus salt or from a classic asset.
type ContractIDPreimage struct {
	Type    ContractIDPreimageType
	Address SCAddress
	Salt    [32]byte
	Asset   Asset
}

func PreimageFromAddress(address SCAddress, salt [32]byte) ContractIDPreimage {
	return ContractIDPreimage{Type: ContractIDPreimageFromAddress, Address: address, Salt: salt}
}

func PreimageFromAsset(asset Asset) ContractIDPreimage {
	return ContractIDPreimage{Type: ContractIDPreimageFromAsset, Asset: asset}
}

func (p *ContractIDPreimage) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(p.Type)); err != nil {
		return err
	}
	switch p.Type {
	case ContractIDPreimageFromAddress:
		if err := p.Address.Marshal(w); err != nil {
			return err
		}
		return xdr.WriteOpaque(w, p.Salt[:])
	case ContractIDPreimageFromAsset:
		return p.Asset.Marshal(w)
	default:
		return fmt.Errorf("contract id preimage type %d: %w", p.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (p *ContractIDPreimage) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*p = ContractIDPreimage{Type: ContractIDPreimageType(t)}
	switch p.Type {
	case ContractIDPreimageFromAddress:
		if err := p.Address.Unmarshal(r); err != nil {
			return err
		}
		salt, err := xdr.ReadOpaque(r, 32)
		if err != nil {
			return err
		}
		copy(p.Salt[:], salt)
		return nil
	case ContractIDPreimageFromAsset:
		return p.Asset.Unmarshal(r)
	default:
		return fmt.Errorf("contract id preimage type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// InvokeContractArgs names a contract function and its arguments.
type InvokeContractArgs struct {
	ContractAddress SCAddress
	FunctionName    string
	Args            []ScVal
}

func (a *InvokeContractArgs) Marshal(w io.Writer) error {
	if err := validSymbol(a.FunctionName); err != nil {
		return err
	}
	if err := a.ContractAddress.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteString(w, 32, a.FunctionName); err != nil {
		return err
	}
	return marshalScVec(w, a.Args)
}

func (a *InvokeContractArgs) Unmarshal(r *xdr.Reader) error {
	if err := a.ContractAddress.Unmarshal(r); err != nil {
		return err
	}
	name, err := xdr.ReadString(r, 32)
	if err != nil {
		return err
	}
	if err := validSymbol(name); err != nil {
		return err
	}
	a.FunctionName = name
	a.Args, err = unmarshalScVec(r, 0)
	return err
}

// CreateContractArgs deploys an executable under a derived contract
// id.
type CreateContractArgs struct {
	Preimage   ContractIDPreimage
	Executable ContractExecutable
}

func (a *CreateContractArgs) Marshal(w io.Writer) error {
	if err := a.Preimage.Marshal(w); err != nil {
		return err
	}
	return a.Executable.Marshal(w)
}

func (a *CreateContractArgs) Unmarshal(r *xdr.Reader) error {
	if err := a.Preimage.Unmarshal(r); err != nil {
		return err
	}
	return a.Executable.Unmarshal(r)
}

// CreateContractArgsV2 additionally passes constructor arguments.
type CreateContractArgsV2 struct {
	Preimage        ContractIDPreimage
	Executable      ContractExecutable
	ConstructorArgs []ScVal
}

func (a *CreateContractArgsV2) Marshal(w io.Writer) error {
	if err := a.Preimage.Marshal(w); err != nil {
		return err
	}
	if err := a.Executable.Marshal(w); err != nil {
		return err
	}
	return marshalScVec(w, a.ConstructorArgs)
}

func (a *CreateContractArgsV2) Unmarshal(r *xdr.Reader) error {
	if err := a.Preimage.Unmarshal(r); err != nil {
		return err
	}
	if err := a.Executable.Unmarshal(r); err != nil {
		return err
	}
	var err error
	a.ConstructorArgs, err = unmarshalScVec(r, 0)
	return err
}

// HostFunction is the work an invoke host function operation asks the
// host to perform.
type HostFunction struct {
	Type             HostFunctionType
	InvokeContract   *InvokeContractArgs
	CreateContract   *CreateContractArgs
	Wasm             []byte
	CreateContractV2 *CreateContractArgsV2
}

// InvokeContractFn builds the invoke arm. The function name must be a
// valid symbol.
func InvokeContractFn(contract SCAddress, function string, args ...ScVal) (HostFunction, error) {
	if err := validSymbol(function); err != nil {
		return HostFunction{}, err
	}
	return HostFunction{
		Type: HostFunctionTypeInvokeContract,
		InvokeContract: &InvokeContractArgs{
			ContractAddress: contract,
			FunctionName:    function,
			Args:            args,
		},
	}, nil
}

func CreateContractFn(preimage ContractIDPreimage, executable ContractExecutable) HostFunction {
	return HostFunction{
		Type:           HostFunctionTypeCreateContract,
		CreateContract: &CreateContractArgs{Preimage: preimage, Executable: executable},
	}
}

func CreateContractV2Fn(preimage ContractIDPreimage, executable ContractExecutable, ctorArgs ...ScVal) HostFunction {
	return HostFunction{
		Type: HostFunctionTypeCreateContractV2,
		CreateContractV2: &CreateContractArgsV2{
			Preimage:        preimage,
			Executable:      executable,
			ConstructorArgs: ctorArgs,
		},
	}
}

func UploadWasmFn(wasm []byte) HostFunction {
	return HostFunction{Type: HostFunctionTypeUploadWasm, Wasm: wasm}
}

func (f *HostFunction) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(f.Type)); err != nil {
		return err
	}
	switch f.Type {
	case HostFunctionTypeInvokeContract:
		if f.InvokeContract == nil {
			return ErrMissingUnionBody
		}
		return f.InvokeContract.Marshal(w)
	case HostFunctionTypeCreateContract:
		if f.CreateContract == nil {
			return ErrMissingUnionBody
		}
		return f.CreateContract.Marshal(w)
	case HostFunctionTypeUploadWasm:
		return xdr.WriteVarOpaque(w, math.MaxUint32, f.Wasm)
	case HostFunctionTypeCreateContractV2:
		if f.CreateContractV2 == nil {
			return ErrMissingUnionBody
		}
		return f.CreateContractV2.Marshal(w)
	default:
		return fmt.Errorf("host function type %d: %w", f.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (f *HostFunction) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*f = HostFunction{Type: HostFunctionType(t)}
	switch f.Type {
	case HostFunctionTypeInvokeContract:
		f.InvokeContract = new(InvokeContractArgs)
		return f.InvokeContract.Unmarshal(r)
	case HostFunctionTypeCreateContract:
		f.CreateContract = new(CreateContractArgs)
		return f.CreateContract.Unmarshal(r)
	case HostFunctionTypeUploadWasm:
		f.Wasm, err = xdr.ReadVarOpaque(r, math.MaxUint32)
		return err
	case HostFunctionTypeCreateContractV2:
		f.CreateContractV2 = new(CreateContractArgsV2)
		return f.CreateContractV2.Unmarshal(r)
	default:
		return fmt.Errorf("host function type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// SorobanAuthorizedFunctionType tags the authorized function union.
type SorobanAuthorizedFunctionType int32

const (
	SorobanAuthorizedContractFn         SorobanAuthorizedFunctionType = 0
	SorobanAuthorizedCreateContractFn   SorobanAuthorizedFunctionType = 1
	SorobanAuthorizedCreateContractV2Fn SorobanAuthorizedFunctionType = 2
)

// SorobanAuthorizedFunction is one call a credential holder approves.
type SorobanAuthorizedFunction struct {
	Type             SorobanAuthorizedFunctionType
	ContractFn       *InvokeContractArgs
	CreateContract   *CreateContractArgs
	CreateContractV2 *CreateContractArgsV2
}

func (f *SorobanAuthorizedFunction) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(f.Type)); err != nil {
		return err
	}
	switch f.Type {
	case SorobanAuthorizedContractFn:
		if f.ContractFn == nil {
			return ErrMissingUnionBody
		}
		return f.ContractFn.Marshal(w)
	case SorobanAuthorizedCreateContractFn:
		if f.CreateContract == nil {
			return ErrMissingUnionBody
		}
		return f.CreateContract.Marshal(w)
	case SorobanAuthorizedCreateContractV2Fn:
		if f.CreateContractV2 == nil {
			return ErrMissingUnionBody
		}
		return f.CreateContractV2.Marshal(w)
	default:
		return fmt.Errorf("authorized function type %d: %w", f.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (f *SorobanAuthorizedFunction) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*f = SorobanAuthorizedFunction{Type: SorobanAuthorizedFunctionType(t)}
	switch f.Type {
	case SorobanAuthorizedContractFn:
		f.ContractFn = new(InvokeContractArgs)
		return f.ContractFn.Unmarshal(r)
	case SorobanAuthorizedCreateContractFn:
		f.CreateContract = new(CreateContractArgs)
		return f.CreateContract.Unmarshal(r)
	case SorobanAuthorizedCreateContractV2Fn:
		f.CreateContractV2 = new(CreateContractArgsV2)
		return f.CreateContractV2.Unmarshal(r)
	default:
		return fmt.Errorf("authorized function type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// SorobanAuthorizedInvocation is a call tree: the approved function
// and the nested calls it may make on the approver's behalf.
type SorobanAuthorizedInvocation struct {
	Function       SorobanAuthorizedFunction
	SubInvocations []SorobanAuthorizedInvocation
}

func (inv *SorobanAuthorizedInvocation) Marshal(w io.Writer) error {
	if err := inv.Function.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteCount(w, math.MaxUint32, len(inv.SubInvocations)); err != nil {
		return err
	}
	for i := range inv.SubInvocations {
		if err := inv.SubInvocations[i].Marshal(w); err != nil {
			return err
		}
	}
	return nil
}

func (inv *SorobanAuthorizedInvocation) Unmarshal(r *xdr.Reader) error {
	return inv.unmarshal(r, 0)
}

func (inv *SorobanAuthorizedInvocation) unmarshal(r *xdr.Reader, depth int) error {
	if depth > maxScDepth {
		return xdr.ErrLengthExceedsMax
	}
	if err := inv.Function.Unmarshal(r); err != nil {
		return err
	}
	n, err := xdr.ReadCount(r, math.MaxUint32)
	if err != nil {
		return err
	}
	inv.SubInvocations = make([]SorobanAuthorizedInvocation, n)
	for i := range inv.SubInvocations {
		if err := inv.SubInvocations[i].unmarshal(r, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// SorobanCredentialsType tags the credentials union.
type SorobanCredentialsType int32

const (
	SorobanCredentialsSourceAccount SorobanCredentialsType = 0
	SorobanCredentialsAddress       SorobanCredentialsType = 1
)

// SorobanAddressCredentials authorizes on behalf of an arbitrary
// address, carrying a replay nonce and a signature expressed as a
// contract value.
type SorobanAddressCredentials struct {
	Address                   SCAddress
	Nonce                     int64
	SignatureExpirationLedger uint32
	Signature                 ScVal
}

// SorobanCredentials says who approves an authorized invocation. The
// source account arm is empty, authorization rides on the transaction
// signatures.
type SorobanCredentials struct {
	Type    SorobanCredentialsType
	Address *SorobanAddressCredentials
}

func SourceAccountCredentials() SorobanCredentials {
	return SorobanCredentials{Type: SorobanCredentialsSourceAccount}
}

func AddressCredentials(c SorobanAddressCredentials) SorobanCredentials {
	return SorobanCredentials{Type: SorobanCredentialsAddress, Address: &c}
}

func (c *SorobanCredentials) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, int32(c.Type)); err != nil {
		return err
	}
	switch c.Type {
	case SorobanCredentialsSourceAccount:
		return nil
	case SorobanCredentialsAddress:
		if c.Address == nil {
			return ErrMissingUnionBody
		}
		if err := c.Address.Address.Marshal(w); err != nil {
			return err
		}
		if err := xdr.WriteInt64(w, c.Address.Nonce); err != nil {
			return err
		}
		if err := xdr.WriteUint32(w, c.Address.SignatureExpirationLedger); err != nil {
			return err
		}
		return c.Address.Signature.Marshal(w)
	default:
		return fmt.Errorf("soroban credentials type %d: %w", c.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (c *SorobanCredentials) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*c = SorobanCredentials{Type: SorobanCredentialsType(t)}
	switch c.Type {
	case SorobanCredentialsSourceAccount:
		return nil
	case SorobanCredentialsAddress:
		c.Address = new(SorobanAddressCredentials)
		if err := c.Address.Address.Unmarshal(r); err != nil {
			return err
		}
		if c.Address.Nonce, err = xdr.ReadInt64(r); err != nil {
			return err
		}
		if c.Address.SignatureExpirationLedger, err = xdr.ReadUint32(r); err != nil {
			return err
		}
		return c.Address.Signature.Unmarshal(r)
	default:
		return fmt.Errorf("soroban credentials type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// SorobanAuthorizationEntry pairs credentials with the call tree they
// approve.
type SorobanAuthorizationEntry struct {
	Credentials    SorobanCredentials
	RootInvocation SorobanAuthorizedInvocation
}

func (e *SorobanAuthorizationEntry) Marshal(w io.Writer) error {
	if err := e.Credentials.Marshal(w); err != nil {
		return err
	}
	return e.RootInvocation.Marshal(w)
}

func (e *SorobanAuthorizationEntry) Unmarshal(r *xdr.Reader) error {
	if err := e.Credentials.Unmarshal(r); err != nil {
		return err
	}
	return e.RootInvocation.Unmarshal(r)
}

// LedgerFootprint declares the ledger entries a host invocation may
// read and write.
type LedgerFootprint struct {
	ReadOnly  []LedgerKey
	ReadWrite []LedgerKey
}

func marshalKeys(w io.Writer, keys []LedgerKey) error {
	if err := xdr.WriteCount(w, math.MaxUint32, len(keys)); err != nil {
		return err
	}
	for i := range keys {
		if err := keys[i].Marshal(w); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalKeys(r *xdr.Reader) ([]LedgerKey, error) {
	n, err := xdr.ReadCount(r, math.MaxUint32)
	if err != nil {
		return nil, err
	}
	keys := make([]LedgerKey, n)
	for i := range keys {
		if err := keys[i].Unmarshal(r); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func (f *LedgerFootprint) Marshal(w io.Writer) error {
	if err := marshalKeys(w, f.ReadOnly); err != nil {
		return err
	}
	return marshalKeys(w, f.ReadWrite)
}

func (f *LedgerFootprint) Unmarshal(r *xdr.Reader) error {
	var err error
	if f.ReadOnly, err = unmarshalKeys(r); err != nil {
		return err
	}
	f.ReadWrite, err = unmarshalKeys(r)
	return err
}

// SorobanResources is the declared resource budget of a host
// invocation.
type SorobanResources struct {
	Footprint    LedgerFootprint
	Instructions uint32
	ReadBytes    uint32
	WriteBytes   uint32
}

func (res *SorobanResources) Marshal(w io.Writer) error {
	if err := res.Footprint.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteUint32(w, res.Instructions); err != nil {
		return err
	}
	if err := xdr.WriteUint32(w, res.ReadBytes); err != nil {
		return err
	}
	return xdr.WriteUint32(w, res.WriteBytes)
}

func (res *SorobanResources) Unmarshal(r *xdr.Reader) error {
	if err := res.Footprint.Unmarshal(r); err != nil {
		return err
	}
	var err error
	if res.Instructions, err = xdr.ReadUint32(r); err != nil {
		return err
	}
	if res.ReadBytes, err = xdr.ReadUint32(r); err != nil {
		return err
	}
	res.WriteBytes, err = xdr.ReadUint32(r)
	return err
}

// SorobanTransactionData rides in the transaction extension of a
// Soroban transaction: resources plus the flat resource fee in
// stroops.
type SorobanTransactionData struct {
	Resources   SorobanResources
	ResourceFee int64
}

func (d *SorobanTransactionData) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, 0); err != nil {
		return err
	}
	if err := d.Resources.Marshal(w); err != nil {
		return err
	}
	return xdr.WriteInt64(w, d.ResourceFee)
}

func (d *SorobanTransactionData) Unmarshal(r *xdr.Reader) error {
	ext, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if ext != 0 {
		return fmt.Errorf("soroban data ext %d: %w", ext, xdr.ErrInvalidDiscriminant)
	}
	if err := d.Resources.Unmarshal(r); err != nil {
		return err
	}
	d.ResourceFee, err = xdr.ReadInt64(r)
	return err
}
