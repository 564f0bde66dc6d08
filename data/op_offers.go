package data

import (
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// ManageSellOffer creates, updates or deletes a sell offer on the
// order book. OfferID zero creates, an existing id with amount zero
// deletes.
type ManageSellOffer struct {
	OpBase
	Selling Asset
	Buying  Asset
	Amount  int64
	Price   Price
	OfferID int64
}

func NewManageSellOffer(selling, buying Asset, amount int64, price Price, offerID int64) *ManageSellOffer {
	return &ManageSellOffer{Selling: selling, Buying: buying, Amount: amount, Price: price, OfferID: offerID}
}

func (op *ManageSellOffer) Type() OperationType { return OperationTypeManageSellOffer }

func (op *ManageSellOffer) Validate() error {
	return validateOffer(op.Selling, op.Buying, op.Amount, op.Price, op.OfferID)
}

func (op *ManageSellOffer) marshalBody(w io.Writer) error {
	return marshalOffer(w, op.Selling, op.Buying, op.Amount, op.Price, &op.OfferID)
}

func (op *ManageSellOffer) unmarshalBody(r *xdr.Reader) error {
	return unmarshalOffer(r, &op.Selling, &op.Buying, &op.Amount, &op.Price, &op.OfferID)
}

// ManageBuyOffer mirrors ManageSellOffer with the amount denominated
// in the buying asset. Price remains selling over buying.
type ManageBuyOffer struct {
	OpBase
	Selling   Asset
	Buying    Asset
	BuyAmount int64
	Price     Price
	OfferID   int64
}

func NewManageBuyOffer(selling, buying Asset, buyAmount int64, price Price, offerID int64) *ManageBuyOffer {
	return &ManageBuyOffer{Selling: selling, Buying: buying, BuyAmount: buyAmount, Price: price, OfferID: offerID}
}

func (op *ManageBuyOffer) Type() OperationType { return OperationTypeManageBuyOffer }

func (op *ManageBuyOffer) Validate() error {
	return validateOffer(op.Selling, op.Buying, op.BuyAmount, op.Price, op.OfferID)
}

func (op *ManageBuyOffer) marshalBody(w io.Writer) error {
	return marshalOffer(w, op.Selling, op.Buying, op.BuyAmount, op.Price, &op.OfferID)
}

func (op *ManageBuyOffer) unmarshalBody(r *xdr.Reader) error {
	return unmarshalOffer(r, &op.Selling, &op.Buying, &op.BuyAmount, &op.Price, &op.OfferID)
}

// CreatePassiveSellOffer places an offer that does not cross offers at
// the same price. There is no offer id, passive offers cannot be
// updated in place.
type CreatePassiveSellOffer struct {
	OpBase
	Selling Asset
	Buying  Asset
	Amount  int64
	Price   Price
}

func NewCreatePassiveSellOffer(selling, buying Asset, amount int64, price Price) *CreatePassiveSellOffer {
	return &CreatePassiveSellOffer{Selling: selling, Buying: buying, Amount: amount, Price: price}
}

func (op *CreatePassiveSellOffer) Type() OperationType {
	return OperationTypeCreatePassiveSellOffer
}

func (op *CreatePassiveSellOffer) Validate() error {
	if err := op.Selling.Validate(); err != nil {
		return err
	}
	if err := op.Buying.Validate(); err != nil {
		return err
	}
	if err := positiveAmount(op.Amount); err != nil {
		return err
	}
	return op.Price.Validate()
}

func (op *CreatePassiveSellOffer) marshalBody(w io.Writer) error {
	return marshalOffer(w, op.Selling, op.Buying, op.Amount, op.Price, nil)
}

func (op *CreatePassiveSellOffer) unmarshalBody(r *xdr.Reader) error {
	return unmarshalOffer(r, &op.Selling, &op.Buying, &op.Amount, &op.Price, nil)
}

// Amount zero is the delete form, so only negatives are rejected here.
func validateOffer(selling, buying Asset, amount int64, price Price, offerID int64) error {
	if err := selling.Validate(); err != nil {
		return err
	}
	if err := buying.Validate(); err != nil {
		return err
	}
	if err := nonNegativeAmount(amount); err != nil {
		return err
	}
	if err := price.Validate(); err != nil {
		return err
	}
	if offerID < 0 {
		return ErrInvalidOfferID
	}
	return nil
}

func marshalOffer(w io.Writer, selling, buying Asset, amount int64, price Price, offerID *int64) error {
	if err := selling.Marshal(w); err != nil {
		return err
	}
	if err := buying.Marshal(w); err != nil {
		return err
	}
	if err := xdr.WriteInt64(w, amount); err != nil {
		return err
	}
	if err := price.Marshal(w); err != nil {
		return err
	}
	if offerID != nil {
		return xdr.WriteInt64(w, *offerID)
	}
	return nil
}

func unmarshalOffer(r *xdr.Reader, selling, buying *Asset, amount *int64, price *Price, offerID *int64) error {
	var err error
	if err = selling.Unmarshal(r); err != nil {
		return err
	}
	if err = buying.Unmarshal(r); err != nil {
		return err
	}
	if *amount, err = xdr.ReadInt64(r); err != nil {
		return err
	}
	if err = price.Unmarshal(r); err != nil {
		return err
	}
	if offerID != nil {
		*offerID, err = xdr.ReadInt64(r)
	}
	return err
}
