package data

import (
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// OperationType is the discriminant of the operation union.
type OperationType int32

const (
	OperationTypeCreateAccount                 OperationType = 0
	OperationTypePayment                       OperationType = 1
	OperationTypePathPaymentStrictReceive      OperationType = 2
	OperationTypeManageSellOffer               OperationType = 3
	OperationTypeCreatePassiveSellOffer        OperationType = 4
	OperationTypeSetOptions                    OperationType = 5
	OperationTypeChangeTrust                   OperationType = 6
	OperationTypeAllowTrust                    OperationType = 7
	OperationTypeAccountMerge                  OperationType = 8
	OperationTypeInflation                     OperationType = 9
	OperationTypeManageData                    OperationType = 10
	OperationTypeBumpSequence                  OperationType = 11
	OperationTypeManageBuyOffer                OperationType = 12
	OperationTypePathPaymentStrictSend         OperationType = 13
	OperationTypeCreateClaimableBalance        OperationType = 14
	OperationTypeClaimClaimableBalance         OperationType = 15
	OperationTypeBeginSponsoringFutureReserves OperationType = 16
	OperationTypeEndSponsoringFutureReserves   OperationType = 17
	OperationTypeRevokeSponsorship             OperationType = 18
	OperationTypeClawback                      OperationType = 19
	OperationTypeClawbackClaimableBalance      OperationType = 20
	OperationTypeSetTrustLineFlags             OperationType = 21
	OperationTypeLiquidityPoolDeposit          OperationType = 22
	OperationTypeLiquidityPoolWithdraw         OperationType = 23
	OperationTypeInvokeHostFunction            OperationType = 24
	OperationTypeExtendFootprintTTL            OperationType = 25
	OperationTypeRestoreFootprint              OperationType = 26
)

var opNames = [...]string{
	"create_account",
	"payment",
	"path_payment_strict_receive",
	"manage_sell_offer",
	"create_passive_sell_offer",
	"set_options",
	"change_trust",
	"allow_trust",
	"account_merge",
	"inflation",
	"manage_data",
	"bump_sequence",
	"manage_buy_offer",
	"path_payment_strict_send",
	"create_claimable_balance",
	"claim_claimable_balance",
	"begin_sponsoring_future_reserves",
	"end_sponsoring_future_reserves",
	"revoke_sponsorship",
	"clawback",
	"clawback_claimable_balance",
	"set_trustline_flags",
	"liquidity_pool_deposit",
	"liquidity_pool_withdraw",
	"invoke_host_function",
	"extend_footprint_ttl",
	"restore_footprint",
}

func (t OperationType) String() string {
	if t >= 0 && int(t) < len(opNames) {
		return opNames[t]
	}
	return fmt.Sprintf("operation(%d)", int32(t))
}

// Operation is one entry of a transaction's operation list. The union
// is closed, only types in this package implement it.
type Operation interface {
	Type() OperationType
	GetBase() *OpBase
	Validate() error

	marshalBody(w io.Writer) error
	unmarshalBody(r *xdr.Reader) error
}

// OpBase carries the optional per operation source account. A nil
// source means the operation acts for the transaction source.
type OpBase struct {
	SourceAccount *MuxedAccount
}

func (b *OpBase) GetBase() *OpBase { return b }

// SetSource pins the operation to its own source account.
func (b *OpBase) SetSource(source MuxedAccount) {
	b.SourceAccount = &source
}

var opFactory = [...]func() Operation{
	OperationTypeCreateAccount:                 func() Operation { return new(CreateAccount) },
	OperationTypePayment:                       func() Operation { return new(Payment) },
	OperationTypePathPaymentStrictReceive:      func() Operation { return new(PathPaymentStrictReceive) },
	OperationTypeManageSellOffer:               func() Operation { return new(ManageSellOffer) },
	OperationTypeCreatePassiveSellOffer:        func() Operation { return new(CreatePassiveSellOffer) },
	OperationTypeSetOptions:                    func() Operation { return new(SetOptions) },
	OperationTypeChangeTrust:                   func() Operation { return new(ChangeTrust) },
	OperationTypeAllowTrust:                    func() Operation { return new(AllowTrust) },
	OperationTypeAccountMerge:                  func() Operation { return new(AccountMerge) },
	OperationTypeInflation:                     func() Operation { return new(Inflation) },
	OperationTypeManageData:                    func() Operation { return new(ManageData) },
	OperationTypeBumpSequence:                  func() Operation { return new(BumpSequence) },
	OperationTypeManageBuyOffer:                func() Operation { return new(ManageBuyOffer) },
	OperationTypePathPaymentStrictSend:         func() Operation { return new(PathPaymentStrictSend) },
	OperationTypeCreateClaimableBalance:        func() Operation { return new(CreateClaimableBalance) },
	OperationTypeClaimClaimableBalance:         func() Operation { return new(ClaimClaimableBalance) },
	OperationTypeBeginSponsoringFutureReserves: func() Operation { return new(BeginSponsoringFutureReserves) },
	OperationTypeEndSponsoringFutureReserves:   func() Operation { return new(EndSponsoringFutureReserves) },
	OperationTypeRevokeSponsorship:             func() Operation { return new(RevokeSponsorship) },
	OperationTypeClawback:                      func() Operation { return new(Clawback) },
	OperationTypeClawbackClaimableBalance:      func() Operation { return new(ClawbackClaimableBalance) },
	OperationTypeSetTrustLineFlags:             func() Operation { return new(SetTrustLineFlags) },
	OperationTypeLiquidityPoolDeposit:          func() Operation { return new(LiquidityPoolDeposit) },
	OperationTypeLiquidityPoolWithdraw:         func() Operation { return new(LiquidityPoolWithdraw) },
	OperationTypeInvokeHostFunction:            func() Operation { return new(InvokeHostFunction) },
	OperationTypeExtendFootprintTTL:            func() Operation { return new(ExtendFootprintTTL) },
	OperationTypeRestoreFootprint:              func() Operation { return new(RestoreFootprint) },
}

func newOperation(t OperationType) (Operation, error) {
	if t < 0 || int(t) >= len(opFactory) {
		return nil, fmt.Errorf("operation type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
	return opFactory[t](), nil
}

func marshalOperation(w io.Writer, op Operation) error {
	base := op.GetBase()
	if err := xdr.WriteBool(w, base.SourceAccount != nil); err != nil {
		return err
	}
	if base.SourceAccount != nil {
		if err := base.SourceAccount.Marshal(w); err != nil {
			return err
		}
	}
	if err := xdr.WriteInt32(w, int32(op.Type())); err != nil {
		return err
	}
	return op.marshalBody(w)
}

func unmarshalOperation(r *xdr.Reader) (Operation, error) {
	present, err := xdr.ReadOptional(r)
	if err != nil {
		return nil, err
	}
	var source *MuxedAccount
	if present {
		source = new(MuxedAccount)
		if err := source.Unmarshal(r); err != nil {
			return nil, err
		}
	}
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return nil, err
	}
	op, err := newOperation(OperationType(t))
	if err != nil {
		return nil, err
	}
	op.GetBase().SourceAccount = source
	if err := op.unmarshalBody(r); err != nil {
		return nil, err
	}
	return op, nil
}

func positiveAmount(v int64) error {
	if v <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

func nonNegativeAmount(v int64) error {
	if v < 0 {
		return ErrNegativeAmount
	}
	return nil
}
