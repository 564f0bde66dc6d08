// Utilities for formatting ledger data in a terminal
package terminal

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/anyswap/stellar-sdk-go/amount"
	"github.com/anyswap/stellar-sdk-go/client"
	"github.com/anyswap/stellar-sdk-go/data"
)

type Flag uint32

const (
	Indent Flag = 1 << iota
	DoubleIndent
	TripleIndent

	ShowOperations
	ShowSignatures
)

var Default Flag

var (
	txStyle      = color.New(color.FgGreen)
	feeBumpStyle = color.New(color.FgGreen, color.Bold)
	opStyle      = color.New(color.FgWhite)
	accountStyle = color.New(color.FgMagenta)
	balanceStyle = color.New(color.FgMagenta)
	recordStyle  = color.New(color.FgBlue)
	sigStyle     = color.New(color.FgYellow)
	infoStyle    = color.New(color.FgRed)
)

func BoolSymbol(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}

func MemoSymbol(m data.Memo) string {
	return BoolSymbol(m.Type != data.MemoTypeNone)
}

func optUint32(v *uint32) uint32 {
	if v != nil {
		return *v
	}
	return 0
}

type bundle struct {
	color  *color.Color
	format string
	values []interface{}
	flag   Flag
}

func newOpBundle(op data.Operation, flag Flag) *bundle {
	var (
		format = "%-27s "
		values = []interface{}{op.Type()}
	)
	switch o := op.(type) {
	case *data.CreateAccount:
		format += "=> %s %s"
		values = append(values, o.Destination.Address(), amount.String(o.StartingBalance))
	case *data.Payment:
		format += "=> %s %s %s"
		values = append(values, o.Destination.Address(), amount.String(o.Amount), o.Asset)
	case *data.PathPaymentStrictReceive:
		format += "=> %s send<=%s %s dest=%s %s hops=%d"
		values = append(values, o.Destination.Address(), amount.String(o.SendMax), o.SendAsset,
			amount.String(o.DestAmount), o.DestAsset, len(o.Path))
	case *data.PathPaymentStrictSend:
		format += "=> %s send=%s %s dest>=%s %s hops=%d"
		values = append(values, o.Destination.Address(), amount.String(o.SendAmount), o.SendAsset,
			amount.String(o.DestMin), o.DestAsset, len(o.Path))
	case *data.ManageSellOffer:
		format += "#%d sell %s %s for %s @ %s"
		values = append(values, o.OfferID, amount.String(o.Amount), o.Selling, o.Buying, o.Price)
	case *data.ManageBuyOffer:
		format += "#%d buy %s %s with %s @ %s"
		values = append(values, o.OfferID, amount.String(o.BuyAmount), o.Buying, o.Selling, o.Price)
	case *data.CreatePassiveSellOffer:
		format += "sell %s %s for %s @ %s"
		values = append(values, amount.String(o.Amount), o.Selling, o.Buying, o.Price)
	case *data.SetOptions:
		format += "master=%d low=%d med=%d high=%d domain=%q signer=%s"
		values = append(values, optUint32(o.MasterWeight), optUint32(o.LowThreshold),
			optUint32(o.MedThreshold), optUint32(o.HighThreshold), optString(o.HomeDomain),
			BoolSymbol(o.Signer != nil))
	case *data.ChangeTrust:
		format += "%s limit=%s"
		values = append(values, o.Line.Asset, amount.String(o.Limit))
	case *data.AllowTrust:
		format += "%s %s authorize=%d"
		values = append(values, o.Trustor.Address(), o.Code, o.Authorize)
	case *data.AccountMerge:
		format += "=> %s"
		values = append(values, o.Destination.Address())
	case *data.ManageData:
		format += "%q set=%s"
		values = append(values, o.Name, BoolSymbol(o.Value != nil))
	case *data.BumpSequence:
		format += "to %d"
		values = append(values, o.BumpTo)
	case *data.CreateClaimableBalance:
		format += "%s %s claimants=%d"
		values = append(values, amount.String(o.Amount), o.Asset, len(o.Claimants))
	case *data.ClaimClaimableBalance:
		format += "%s"
		values = append(values, o.BalanceID)
	case *data.BeginSponsoringFutureReserves:
		format += "for %s"
		values = append(values, o.SponsoredID.Address())
	case *data.RevokeSponsorship:
		format += "signer=%s"
		values = append(values, BoolSymbol(o.Signer != nil))
	case *data.Clawback:
		format += "%s %s from %s"
		values = append(values, amount.String(o.Amount), o.Asset, o.From.Address())
	case *data.ClawbackClaimableBalance:
		format += "%s"
		values = append(values, o.BalanceID)
	case *data.SetTrustLineFlags:
		format += "%s %s clear=%03b set=%03b"
		values = append(values, o.Trustor.Address(), o.Asset, o.ClearFlags, o.SetFlags)
	case *data.LiquidityPoolDeposit:
		format += "%s max=%s/%s price=%s..%s"
		values = append(values, o.PoolID, amount.String(o.MaxAmountA), amount.String(o.MaxAmountB),
			o.MinPrice, o.MaxPrice)
	case *data.LiquidityPoolWithdraw:
		format += "%s burn=%s min=%s/%s"
		values = append(values, o.PoolID, amount.String(o.Amount),
			amount.String(o.MinAmountA), amount.String(o.MinAmountB))
	case *data.InvokeHostFunction:
		format += "%s auth=%d"
		values = append(values, hostFunctionSummary(o.Function), len(o.Auth))
	case *data.ExtendFootprintTTL:
		format += "to ledger %d"
		values = append(values, o.ExtendTo)
	}
	if src := op.GetBase().SourceAccount; src != nil {
		format += " [src %s]"
		values = append(values, src.Address())
	}
	return &bundle{color: opStyle, format: format, values: values, flag: flag}
}

func optString(v *string) string {
	if v != nil {
		return *v
	}
	return ""
}

func hostFunctionSummary(fn data.HostFunction) string {
	switch fn.Type {
	case data.HostFunctionTypeInvokeContract:
		return fmt.Sprintf("invoke %s.%s/%d", fn.InvokeContract.ContractAddress.Address(),
			fn.InvokeContract.FunctionName, len(fn.InvokeContract.Args))
	case data.HostFunctionTypeUploadWasm:
		return fmt.Sprintf("upload wasm (%d bytes)", len(fn.Wasm))
	case data.HostFunctionTypeCreateContract, data.HostFunctionTypeCreateContractV2:
		return "create contract"
	default:
		return "unknown"
	}
}

func newTxBundle(tx *data.Transaction, style *color.Color, flag Flag) *bundle {
	return &bundle{
		color:  style,
		format: "%s seq=%d fee=%d %s ops=%d",
		values: []interface{}{tx.SourceAccount.Address(), tx.SeqNum, tx.Fee,
			MemoSymbol(tx.Memo), len(tx.Operations)},
		flag: flag,
	}
}

func newEnvelopeBundle(env *data.TransactionEnvelope, flag Flag) (*bundle, error) {
	switch env.Type {
	case data.EnvelopeTypeTxV0:
		if env.V0 == nil {
			return nil, fmt.Errorf("envelope carries no v0 body")
		}
		return newTxBundle(env.V0.Tx.V1(), txStyle, flag), nil
	case data.EnvelopeTypeTx:
		if env.V1 == nil {
			return nil, fmt.Errorf("envelope carries no v1 body")
		}
		return newTxBundle(&env.V1.Tx, txStyle, flag), nil
	case data.EnvelopeTypeTxFeeBump:
		if env.FeeBump == nil {
			return nil, fmt.Errorf("envelope carries no fee bump body")
		}
		return &bundle{
			color:  feeBumpStyle,
			format: "fee bump by %s fee=%d over %s",
			values: []interface{}{env.FeeBump.Tx.FeeSource.Address(), env.FeeBump.Tx.Fee,
				env.FeeBump.Tx.Inner.Tx.SourceAccount.Address()},
			flag: flag,
		}, nil
	default:
		return nil, fmt.Errorf("envelope type %d", env.Type)
	}
}

func newBundle(value interface{}, flag Flag) (*bundle, error) {
	switch v := value.(type) {
	case *data.TransactionEnvelope:
		return newEnvelopeBundle(v, flag)
	case *data.Transaction:
		return newTxBundle(v, txStyle, flag), nil
	case data.Operation:
		return newOpBundle(v, flag), nil
	case data.DecoratedSignature:
		return &bundle{
			color:  sigStyle,
			format: "sig %x (%d bytes)",
			values: []interface{}{v.Hint[:], len(v.Signature)},
			flag:   flag,
		}, nil
	case *client.Account:
		return &bundle{
			color:  accountStyle,
			format: "%s seq=%s subentries=%d native=%s signers=%d",
			values: []interface{}{v.AccountID, v.Sequence, v.SubentryCount, v.NativeBalance(), len(v.Signers)},
			flag:   flag,
		}, nil
	case client.Balance:
		code := v.AssetCode
		if v.AssetType == "native" {
			code = "native"
		}
		return &bundle{
			color:  balanceStyle,
			format: "%20s %s",
			values: []interface{}{v.Balance, code},
			flag:   flag,
		}, nil
	case client.TransactionRecord:
		return &bundle{
			color:  recordStyle,
			format: "%s %s ledger=%d %s",
			values: []interface{}{BoolSymbol(v.Successful), v.Hash, v.Ledger, v.CreatedAt},
			flag:   flag,
		}, nil
	default:
		return &bundle{
			color:  infoStyle,
			format: "%v",
			values: []interface{}{v},
			flag:   flag,
		}, nil
	}
}

func indent(flag Flag) string {
	switch {
	case flag&Indent > 0:
		return "    "
	case flag&DoubleIndent > 0:
		return "        "
	case flag&TripleIndent > 0:
		return "            "
	default:
		return ""
	}
}

func println(value interface{}, flag Flag) (int, error) {
	b, err := newBundle(value, flag)
	if err != nil {
		return 0, err
	}
	return b.color.Printf(indent(flag)+b.format+"\n", b.values...)
}

func Println(value interface{}, flag Flag) {
	if _, err := println(value, flag); err != nil {
		infoStyle.Println(err.Error())
	}
}

func Sprint(value interface{}, flag Flag) string {
	b, err := newBundle(value, flag)
	if err != nil {
		return fmt.Sprintf("Cannot format: %+v", value)
	}
	return b.color.SprintfFunc()(indent(flag)+b.format, b.values...)
}

// PrintEnvelope renders the envelope summary line plus, depending on
// flags, its operations and signatures.
func PrintEnvelope(env *data.TransactionEnvelope, flag Flag) {
	Println(env, flag)
	if flag&ShowOperations > 0 {
		var inner *data.Transaction
		switch env.Type {
		case data.EnvelopeTypeTxV0:
			inner = env.V0.Tx.V1()
		case data.EnvelopeTypeTx:
			inner = &env.V1.Tx
		case data.EnvelopeTypeTxFeeBump:
			inner = &env.FeeBump.Tx.Inner.Tx
		}
		if inner != nil {
			for _, op := range inner.Operations {
				Println(op, flag|Indent)
			}
		}
	}
	if flag&ShowSignatures > 0 {
		for _, sig := range env.Signatures() {
			Println(sig, flag|DoubleIndent)
		}
	}
}
