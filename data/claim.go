package data

import (
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// ClaimPredicateType tags the claim predicate union.
type ClaimPredicateType int32

const (
	ClaimPredicateUnconditional      ClaimPredicateType = 0
	ClaimPredicateAnd                ClaimPredicateType = 1
	ClaimPredicateOr                 ClaimPredicateType = 2
	ClaimPredicateNot                ClaimPredicateType = 3
	ClaimPredicateBeforeAbsoluteTime ClaimPredicateType = 4
	ClaimPredicateBeforeRelativeTime ClaimPredicateType = 5
)

// maxPredicateDepth bounds predicate nesting, mirroring the network
// validation rule.
const maxPredicateDepth = 4

// ClaimPredicate gates when a claimant may claim a balance. And and Or
// carry exactly two children, Not exactly one.
type ClaimPredicate struct {
	Type      ClaimPredicateType
	And       []ClaimPredicate
	Or        []ClaimPredicate
	Not       *ClaimPredicate
	AbsBefore int64
	RelBefore int64
}

func PredicateUnconditional() ClaimPredicate {
	return ClaimPredicate{Type: ClaimPredicateUnconditional}
}

func PredicateAnd(a, b ClaimPredicate) ClaimPredicate {
	return ClaimPredicate{Type: ClaimPredicateAnd, And: []ClaimPredicate{a, b}}
}

func PredicateOr(a, b ClaimPredicate) ClaimPredicate {
	return ClaimPredicate{Type: ClaimPredicateOr, Or: []ClaimPredicate{a, b}}
}

func PredicateNot(p ClaimPredicate) ClaimPredicate {
	return ClaimPredicate{Type: ClaimPredicateNot, Not: &p}
}

// PredicateBeforeAbsoluteTime is satisfied strictly before the given
// unix time.
func PredicateBeforeAbsoluteTime(unixSeconds int64) ClaimPredicate {
	return ClaimPredicate{Type: ClaimPredicateBeforeAbsoluteTime, AbsBefore: unixSeconds}
}

// PredicateBeforeRelativeTime is satisfied for the given number of
// seconds after the balance entry is created.
func PredicateBeforeRelativeTime(seconds int64) ClaimPredicate {
	return ClaimPredicate{Type: ClaimPredicateBeforeRelativeTime, RelBefore: seconds}
}

func (p ClaimPredicate) Validate() error {
	return p.validate(1)
}

func (p ClaimPredicate) validate(depth int) error {
	if depth > maxPredicateDepth {
		return ErrPredicateTooDeep
	}
	switch p.Type {
	case ClaimPredicateUnconditional:
		return nil
	case ClaimPredicateAnd:
		if len(p.And) != 2 {
			return ErrInvalidPredicate
		}
		if err := p.And[0].validate(depth + 1); err != nil {
			return err
		}
		return p.And[1].validate(depth + 1)
	case ClaimPredicateOr:
		if len(p.Or) != 2 {
			return ErrInvalidPredicate
		}
		if err := p.Or[0].validate(depth + 1); err != nil {
			return err
		}
		return p.Or[1].validate(depth + 1)
	case ClaimPredicateNot:
		if p.Not == nil {
			return ErrInvalidPredicate
		}
		return p.Not.validate(depth + 1)
	case ClaimPredicateBeforeAbsoluteTime:
		return nil
	case ClaimPredicateBeforeRelativeTime:
		if p.RelBefore < 0 {
			return ErrInvalidPredicate
		}
		return nil
	default:
		return ErrInvalidPredicate
	}
}

func (p *ClaimPredicate) Marshal(w io.Writer) error {
	return p.marshal(w, 1)
}

func (p *ClaimPredicate) marshal(w io.Writer, depth int) error {
	if depth > maxPredicateDepth {
		return ErrPredicateTooDeep
	}
	if err := xdr.WriteInt32(w, int32(p.Type)); err != nil {
		return err
	}
	switch p.Type {
	case ClaimPredicateUnconditional:
		return nil
	case ClaimPredicateAnd, ClaimPredicateOr:
		children := p.And
		if p.Type == ClaimPredicateOr {
			children = p.Or
		}
		if len(children) != 2 {
			return ErrInvalidPredicate
		}
		if err := xdr.WriteCount(w, 2, 2); err != nil {
			return err
		}
		if err := children[0].marshal(w, depth+1); err != nil {
			return err
		}
		return children[1].marshal(w, depth+1)
	case ClaimPredicateNot:
		if p.Not == nil {
			return ErrInvalidPredicate
		}
		if err := xdr.WriteBool(w, true); err != nil {
			return err
		}
		return p.Not.marshal(w, depth+1)
	case ClaimPredicateBeforeAbsoluteTime:
		return xdr.WriteInt64(w, p.AbsBefore)
	case ClaimPredicateBeforeRelativeTime:
		return xdr.WriteInt64(w, p.RelBefore)
	default:
		return fmt.Errorf("claim predicate type %d: %w", p.Type, xdr.ErrInvalidDiscriminant)
	}
}

func (p *ClaimPredicate) Unmarshal(r *xdr.Reader) error {
	return p.unmarshal(r, 1)
}

func (p *ClaimPredicate) unmarshal(r *xdr.Reader, depth int) error {
	if depth > maxPredicateDepth {
		return ErrPredicateTooDeep
	}
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*p = ClaimPredicate{Type: ClaimPredicateType(t)}
	switch p.Type {
	case ClaimPredicateUnconditional:
		return nil
	case ClaimPredicateAnd, ClaimPredicateOr:
		n, err := xdr.ReadCount(r, 2)
		if err != nil {
			return err
		}
		if n != 2 {
			return ErrInvalidPredicate
		}
		children := make([]ClaimPredicate, 2)
		for i := range children {
			if err := children[i].unmarshal(r, depth+1); err != nil {
				return err
			}
		}
		if p.Type == ClaimPredicateAnd {
			p.And = children
		} else {
			p.Or = children
		}
		return nil
	case ClaimPredicateNot:
		present, err := xdr.ReadOptional(r)
		if err != nil {
			return err
		}
		if !present {
			return ErrInvalidPredicate
		}
		var sub ClaimPredicate
		if err := sub.unmarshal(r, depth+1); err != nil {
			return err
		}
		p.Not = &sub
		return nil
	case ClaimPredicateBeforeAbsoluteTime:
		p.AbsBefore, err = xdr.ReadInt64(r)
		return err
	case ClaimPredicateBeforeRelativeTime:
		p.RelBefore, err = xdr.ReadInt64(r)
		if err != nil {
			return err
		}
		if p.RelBefore < 0 {
			return ErrInvalidPredicate
		}
		return nil
	default:
		return fmt.Errorf("claim predicate type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}

// Claimant names an account allowed to claim a balance and the
// predicate gating the claim. Only the v0 arm exists.
type Claimant struct {
	Destination AccountID
	Predicate   ClaimPredicate
}

// NewClaimant defaults a nil predicate to unconditional.
func NewClaimant(destination AccountID, predicate *ClaimPredicate) Claimant {
	if predicate == nil {
		return Claimant{Destination: destination, Predicate: PredicateUnconditional()}
	}
	return Claimant{Destination: destination, Predicate: *predicate}
}

func (cl Claimant) Validate() error {
	return cl.Predicate.Validate()
}

func (cl *Claimant) Marshal(w io.Writer) error {
	if err := xdr.WriteInt32(w, 0); err != nil {
		return err
	}
	if err := cl.Destination.Marshal(w); err != nil {
		return err
	}
	return cl.Predicate.Marshal(w)
}

func (cl *Claimant) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	if t != 0 {
		return fmt.Errorf("claimant type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
	if err := cl.Destination.Unmarshal(r); err != nil {
		return err
	}
	return cl.Predicate.Unmarshal(r)
}
