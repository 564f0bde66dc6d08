package data

import (
	"fmt"
	"io"
	"math"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// InvokeHostFunction runs one host function with its authorization
// entries. Soroban transactions carry exactly one of these and no
// other operation.
type InvokeHostFunction struct {
	OpBase
	Function HostFunction
	Auth     []SorobanAuthorizationEntry
}

func NewInvokeHostFunction(fn HostFunction, auth ...SorobanAuthorizationEntry) *InvokeHostFunction {
	return &InvokeHostFunction{Function: fn, Auth: auth}
}

func (op *InvokeHostFunction) Type() OperationType {
	return OperationTypeInvokeHostFunction
}

func (op *InvokeHostFunction) Validate() error {
	switch op.Function.Type {
	case HostFunctionTypeInvokeContract:
		if op.Function.InvokeContract == nil {
			return ErrMissingUnionBody
		}
		return validSymbol(op.Function.InvokeContract.FunctionName)
	case HostFunctionTypeCreateContract:
		if op.Function.CreateContract == nil {
			return ErrMissingUnionBody
		}
	case HostFunctionTypeUploadWasm:
	case HostFunctionTypeCreateContractV2:
		if op.Function.CreateContractV2 == nil {
			return ErrMissingUnionBody
		}
	default:
		return fmt.Errorf("host function type %d: %w", op.Function.Type, xdr.ErrInvalidDiscriminant)
	}
	return nil
}

func (op *InvokeHostFunction) marshalBody(w io.Writer) error {
	if err := op.Function.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteCount(w, math.MaxUint32, len(op.Auth)); err != nil {
		return err
	}
	for i := range op.Auth {
		if err := op.Auth[i].Marshal(w); err != nil {
			return err
		}
	}
	return nil
}

func (op *InvokeHostFunction) unmarshalBody(r *xdr.Reader) error {
	if err := op.Function.Unmarshal(r); err != nil {
		return err
	}
	n, err := xdr.ReadCount(r, math.MaxUint32)
	if err != nil {
		return err
	}
	op.Auth = make([]SorobanAuthorizationEntry, n)
	for i := range op.Auth {
		if err := op.Auth[i].Unmarshal(r); err != nil {
			return err
		}
	}
	return nil
}

// ExtendFootprintTTL pushes the expiration of every entry in the read
// only footprint out to at least ExtendTo ledgers from now.
type ExtendFootprintTTL struct {
	OpBase
	ExtendTo uint32
}

func NewExtendFootprintTTL(extendTo uint32) *ExtendFootprintTTL {
	return &ExtendFootprintTTL{ExtendTo: extendTo}
}

func (op *ExtendFootprintTTL) Type() OperationType {
	return OperationTypeExtendFootprintTTL
}

func (op *ExtendFootprintTTL) Validate() error { return nil }

func (op *ExtendFootprintTTL) marshalBody(w io.Writer) error {
	if err := xdr.WriteInt32(w, 0); err != nil {
		return err
	}
	return xdr.WriteUint32(w, op.ExtendTo)
}

func (op *ExtendFootprintTTL) unmarshalBody(r *xdr.Reader) error {
	ext, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if ext != 0 {
		return fmt.Errorf("extend footprint ext %d: %w", ext, xdr.ErrInvalidDiscriminant)
	}
	op.ExtendTo, err = xdr.ReadUint32(r)
	return err
}

// RestoreFootprint brings archived entries in the read write footprint
// back to life. The body is an extension point only.
type RestoreFootprint struct {
	OpBase
}

func NewRestoreFootprint() *RestoreFootprint { return new(RestoreFootprint) }

func (op *RestoreFootprint) Type() OperationType {
	return OperationTypeRestoreFootprint
}

func (op *RestoreFootprint) Validate() error { return nil }

func (op *RestoreFootprint) marshalBody(w io.Writer) error {
	return xdr.WriteInt32(w, 0)
}

func (op *RestoreFootprint) unmarshalBody(r *xdr.Reader) error {
	ext, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if ext != 0 {
		return fmt.Errorf("restore footprint ext %d: %w", ext, xdr.ErrInvalidDiscriminant)
	}
	return nil
}
