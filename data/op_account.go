package data

import (
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// Account flag bits.
const (
	AccountAuthRequired        uint32 = 1
	AccountAuthRevocable       uint32 = 2
	AccountAuthImmutable       uint32 = 4
	AccountAuthClawbackEnabled uint32 = 8
)

const maxHomeDomainLen = 32

// SetOptions adjusts account settings. Every field is optional on the
// wire, a nil field means no change and is encoded as absent rather
// than zero.
type SetOptions struct {
	OpBase
	InflationDest *AccountID
	ClearFlags    *uint32
	SetFlags      *uint32
	MasterWeight  *uint32
	LowThreshold  *uint32
	MedThreshold  *uint32
	HighThreshold *uint32
	HomeDomain    *string
	Signer        *Signer
}

func NewSetOptions() *SetOptions { return new(SetOptions) }

func (op *SetOptions) SetInflationDest(id AccountID) *SetOptions {
	op.InflationDest = &id
	return op
}

func (op *SetOptions) SetClearFlags(flags uint32) *SetOptions {
	op.ClearFlags = &flags
	return op
}

func (op *SetOptions) SetSetFlags(flags uint32) *SetOptions {
	op.SetFlags = &flags
	return op
}

func (op *SetOptions) SetMasterWeight(weight uint32) *SetOptions {
	op.MasterWeight = &weight
	return op
}

func (op *SetOptions) SetThresholds(low, med, high uint32) *SetOptions {
	op.LowThreshold, op.MedThreshold, op.HighThreshold = &low, &med, &high
	return op
}

func (op *SetOptions) SetHomeDomain(domain string) *SetOptions {
	op.HomeDomain = &domain
	return op
}

func (op *SetOptions) SetSigner(signer Signer) *SetOptions {
	op.Signer = &signer
	return op
}

func (op *SetOptions) Type() OperationType { return OperationTypeSetOptions }

func (op *SetOptions) Validate() error {
	known := AccountAuthRequired | AccountAuthRevocable | AccountAuthImmutable | AccountAuthClawbackEnabled
	if op.ClearFlags != nil && *op.ClearFlags&^known != 0 {
		return ErrInvalidAccountFlags
	}
	if op.SetFlags != nil && *op.SetFlags&^known != 0 {
		return ErrInvalidAccountFlags
	}
	for _, weight := range []*uint32{op.MasterWeight, op.LowThreshold, op.MedThreshold, op.HighThreshold} {
		if weight != nil && *weight > 255 {
			return ErrWeightOutOfRange
		}
	}
	if op.HomeDomain != nil && len(*op.HomeDomain) > maxHomeDomainLen {
		return ErrHomeDomainTooLong
	}
	if op.Signer != nil && op.Signer.Weight > 255 {
		return ErrInvalidSignerWeight
	}
	return nil
}

func writeOptionalUint32(w io.Writer, v *uint32) error {
	if err := xdr.WriteBool(w, v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return xdr.WriteUint32(w, *v)
}

func readOptionalUint32(r *xdr.Reader) (*uint32, error) {
	present, err := xdr.ReadOptional(r)
	if err != nil || !present {
		return nil, err
	}
	v, err := xdr.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (op *SetOptions) marshalBody(w io.Writer) error {
	if err := xdr.WriteBool(w, op.InflationDest != nil); err != nil {
		return err
	}
	if op.InflationDest != nil {
		if err := op.InflationDest.Marshal(w); err != nil {
			return err
		}
	}
	for _, v := range []*uint32{op.ClearFlags, op.SetFlags, op.MasterWeight, op.LowThreshold, op.MedThreshold, op.HighThreshold} {
		if err := writeOptionalUint32(w, v); err != nil {
			return err
		}
	}
	if err := xdr.WriteBool(w, op.HomeDomain != nil); err != nil {
		return err
	}
	if op.HomeDomain != nil {
		if err := xdr.WriteString(w, maxHomeDomainLen, *op.HomeDomain); err != nil {
			return err
		}
	}
	if err := xdr.WriteBool(w, op.Signer != nil); err != nil {
		return err
	}
	if op.Signer != nil {
		return op.Signer.Marshal(w)
	}
	return nil
}

func (op *SetOptions) unmarshalBody(r *xdr.Reader) error {
	present, err := xdr.ReadOptional(r)
	if err != nil {
		return err
	}
	if present {
		op.InflationDest = new(AccountID)
		if err := op.InflationDest.Unmarshal(r); err != nil {
			return err
		}
	}
	for _, v := range []**uint32{&op.ClearFlags, &op.SetFlags, &op.MasterWeight, &op.LowThreshold, &op.MedThreshold, &op.HighThreshold} {
		if *v, err = readOptionalUint32(r); err != nil {
			return err
		}
	}
	if present, err = xdr.ReadOptional(r); err != nil {
		return err
	}
	if present {
		domain, err := xdr.ReadString(r, maxHomeDomainLen)
		if err != nil {
			return err
		}
		op.HomeDomain = &domain
	}
	if present, err = xdr.ReadOptional(r); err != nil {
		return err
	}
	if present {
		op.Signer = new(Signer)
		return op.Signer.Unmarshal(r)
	}
	return nil
}

// ManageData sets, updates or deletes a named data entry on the
// account. A nil value deletes the entry.
type ManageData struct {
	OpBase
	Name  string
	Value []byte
}

func NewManageData(name string, value []byte) *ManageData {
	return &ManageData{Name: name, Value: value}
}

func (op *ManageData) Type() OperationType { return OperationTypeManageData }

func (op *ManageData) Validate() error {
	if len(op.Name) == 0 || len(op.Name) > maxDataEntryLen {
		return ErrInvalidDataEntry
	}
	if len(op.Value) > maxDataEntryLen {
		return ErrInvalidDataEntry
	}
	return nil
}

func (op *ManageData) marshalBody(w io.Writer) error {
	if err := xdr.WriteString(w, maxDataEntryLen, op.Name); err != nil {
		return err
	}
	if err := xdr.WriteBool(w, op.Value != nil); err != nil {
		return err
	}
	if op.Value != nil {
		return xdr.WriteVarOpaque(w, maxDataEntryLen, op.Value)
	}
	return nil
}

func (op *ManageData) unmarshalBody(r *xdr.Reader) error {
	var err error
	if op.Name, err = xdr.ReadString(r, maxDataEntryLen); err != nil {
		return err
	}
	present, err := xdr.ReadOptional(r)
	if err != nil {
		return err
	}
	if present {
		op.Value, err = xdr.ReadVarOpaque(r, maxDataEntryLen)
		return err
	}
	op.Value = nil
	return nil
}

// BumpSequence jumps the account's sequence number forward.
type BumpSequence struct {
	OpBase
	BumpTo int64
}

func NewBumpSequence(bumpTo int64) *BumpSequence {
	return &BumpSequence{BumpTo: bumpTo}
}

func (op *BumpSequence) Type() OperationType { return OperationTypeBumpSequence }

func (op *BumpSequence) Validate() error {
	if op.BumpTo < 0 {
		return ErrNegativeSequence
	}
	return nil
}

func (op *BumpSequence) marshalBody(w io.Writer) error {
	return xdr.WriteInt64(w, op.BumpTo)
}

func (op *BumpSequence) unmarshalBody(r *xdr.Reader) error {
	var err error
	op.BumpTo, err = xdr.ReadInt64(r)
	return err
}
