package data

import (
	"fmt"
	"io"

	"github.com/anyswap/stellar-sdk-go/xdr"
)

// LedgerEntryType tags the ledger key union.
type LedgerEntryType int32

const (
	LedgerEntryTypeAccount          LedgerEntryType = 0
	LedgerEntryTypeTrustLine        LedgerEntryType = 1
	LedgerEntryTypeOffer            LedgerEntryType = 2
	LedgerEntryTypeData             LedgerEntryType = 3
	LedgerEntryTypeClaimableBalance LedgerEntryType = 4
	LedgerEntryTypeLiquidityPool    LedgerEntryType = 5
	LedgerEntryTypeContractData     LedgerEntryType = 6
	LedgerEntryTypeContractCode     LedgerEntryType = 7
	LedgerEntryTypeConfigSetting    LedgerEntryType = 8
	LedgerEntryTypeTTL              LedgerEntryType = 9
)

// ContractDataDurability selects the storage class of a contract data
// entry.
type ContractDataDurability int32

const (
	ContractDataTemporary  ContractDataDurability = 0
	ContractDataPersistent ContractDataDurability = 1
)

const maxDataEntryLen = 64

type LedgerKeyAccount struct {
	AccountID AccountID
}

type LedgerKeyTrustLine struct {
	AccountID AccountID
	Asset     TrustLineAsset
}

type LedgerKeyOffer struct {
	SellerID AccountID
	OfferID  int64
}

type LedgerKeyData struct {
	AccountID AccountID
	Name      string
}

type LedgerKeyClaimableBalance struct {
	BalanceID ClaimableBalanceID
}

type LedgerKeyLiquidityPool struct {
	PoolID PoolID
}

type LedgerKeyContractData struct {
	Contract   SCAddress
	Key        ScVal
	Durability ContractDataDurability
}

type LedgerKeyContractCode struct {
	Hash Hash
}

type LedgerKeyConfigSetting struct {
	ID int32
}

type LedgerKeyTTL struct {
	KeyHash Hash
}

// LedgerKey names one ledger entry. Exactly the arm matching Type is
// set.
type LedgerKey struct {
	Type             LedgerEntryType
	Account          *LedgerKeyAccount
	TrustLine        *LedgerKeyTrustLine
	Offer            *LedgerKeyOffer
	Data             *LedgerKeyData
	ClaimableBalance *LedgerKeyClaimableBalance
	LiquidityPool    *LedgerKeyLiquidityPool
	ContractData     *LedgerKeyContractData
	ContractCode     *LedgerKeyContractCode
	ConfigSetting    *LedgerKeyConfigSetting
	TTL              *LedgerKeyTTL
}

func AccountKey(id AccountID) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeAccount, Account: &LedgerKeyAccount{AccountID: id}}
}

func TrustLineKey(id AccountID, asset TrustLineAsset) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeTrustLine, TrustLine: &LedgerKeyTrustLine{AccountID: id, Asset: asset}}
}

func OfferKey(seller AccountID, offerID int64) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeOffer, Offer: &LedgerKeyOffer{SellerID: seller, OfferID: offerID}}
}

func DataKey(id AccountID, name string) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeData, Data: &LedgerKeyData{AccountID: id, Name: name}}
}

func ClaimableBalanceKey(balanceID ClaimableBalanceID) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeClaimableBalance, ClaimableBalance: &LedgerKeyClaimableBalance{BalanceID: balanceID}}
}

func LiquidityPoolKey(poolID PoolID) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeLiquidityPool, LiquidityPool: &LedgerKeyLiquidityPool{PoolID: poolID}}
}

func ContractDataKey(contract SCAddress, key ScVal, durability ContractDataDurability) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeContractData, ContractData: &LedgerKeyContractData{
		Contract:   contract,
		Key:        key,
		Durability: durability,
	}}
}

func ContractCodeKey(hash Hash) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeContractCode, ContractCode: &LedgerKeyContractCode{Hash: hash}}
}

func ConfigSettingKey(id int32) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeConfigSetting, ConfigSetting: &LedgerKeyConfigSetting{ID: id}}
}

func TTLKey(keyHash Hash) LedgerKey {
	return LedgerKey{Type: LedgerEntryTypeTTL, TTL: &LedgerKeyTTL{KeyHash: keyHash}}
}

// Validate checks the arm matching Type is present and well formed.
func (k *LedgerKey) Validate() error {
	switch k.Type {
	case LedgerEntryTypeAccount:
		if k.Account == nil {
			return ErrInvalidLedgerKey
		}
	case LedgerEntryTypeTrustLine:
		if k.TrustLine == nil {
			return ErrInvalidLedgerKey
		}
		return k.TrustLine.Asset.Validate()
	case LedgerEntryTypeOffer:
		if k.Offer == nil {
			return ErrInvalidLedgerKey
		}
	case LedgerEntryTypeData:
		if k.Data == nil {
			return ErrInvalidLedgerKey
		}
		if len(k.Data.Name) == 0 || len(k.Data.Name) > maxDataEntryLen {
			return ErrInvalidDataEntry
		}
	case LedgerEntryTypeClaimableBalance:
		if k.ClaimableBalance == nil {
			return ErrInvalidLedgerKey
		}
	case LedgerEntryTypeLiquidityPool:
		if k.LiquidityPool == nil {
			return ErrInvalidLedgerKey
		}
	case LedgerEntryTypeContractData:
		if k.ContractData == nil {
			return ErrInvalidLedgerKey
		}
	case LedgerEntryTypeContractCode:
		if k.ContractCode == nil {
			return ErrInvalidLedgerKey
		}
	case LedgerEntryTypeConfigSetting:
		if k.ConfigSetting == nil {
			return ErrInvalidLedgerKey
		}
	case LedgerEntryTypeTTL:
		if k.TTL == nil {
			return ErrInvalidLedgerKey
		}
	default:
		return ErrInvalidLedgerKey
	}
	return nil
}

func (k *LedgerKey) Marshal(w io.Writer) error {
	if err := k.Validate(); err != nil {
		return err
	}
	if err := xdr.WriteInt32(w, int32(k.Type)); err != nil {
		return err
	}
	switch k.Type {
	case LedgerEntryTypeAccount:
		return k.Account.AccountID.Marshal(w)
	case LedgerEntryTypeTrustLine:
		if err := k.TrustLine.AccountID.Marshal(w); err != nil {
			return err
		}
		return k.TrustLine.Asset.Marshal(w)
	case LedgerEntryTypeOffer:
		if err := k.Offer.SellerID.Marshal(w); err != nil {
			return err
		}
		return xdr.WriteInt64(w, k.Offer.OfferID)
	case LedgerEntryTypeData:
		if err := k.Data.AccountID.Marshal(w); err != nil {
			return err
		}
		return xdr.WriteString(w, maxDataEntryLen, k.Data.Name)
	case LedgerEntryTypeClaimableBalance:
		return k.ClaimableBalance.BalanceID.Marshal(w)
	case LedgerEntryTypeLiquidityPool:
		return k.LiquidityPool.PoolID.Marshal(w)
	case LedgerEntryTypeContractData:
		if err := k.ContractData.Contract.Marshal(w); err != nil {
			return err
		}
		if err := k.ContractData.Key.Marshal(w); err != nil {
			return err
		}
		return xdr.WriteInt32(w, int32(k.ContractData.Durability))
	case LedgerEntryTypeContractCode:
		return k.ContractCode.Hash.Marshal(w)
	case LedgerEntryTypeConfigSetting:
		return xdr.WriteInt32(w, k.ConfigSetting.ID)
	case LedgerEntryTypeTTL:
		return k.TTL.KeyHash.Marshal(w)
	}
	return nil
}

func (k *LedgerKey) Unmarshal(r *xdr.Reader) error {
	t, err := xdr.ReadInt32(r)
	if err != nil {
		return err
	}
	*k = LedgerKey{Type: LedgerEntryType(t)}
	switch k.Type {
	case LedgerEntryTypeAccount:
		k.Account = new(LedgerKeyAccount)
		return k.Account.AccountID.Unmarshal(r)
	case LedgerEntryTypeTrustLine:
		k.TrustLine = new(LedgerKeyTrustLine)
		if err := k.TrustLine.AccountID.Unmarshal(r); err != nil {
			return err
		}
		return k.TrustLine.Asset.Unmarshal(r)
	case LedgerEntryTypeOffer:
		k.Offer = new(LedgerKeyOffer)
		if err := k.Offer.SellerID.Unmarshal(r); err != nil {
			return err
		}
		k.Offer.OfferID, err = xdr.ReadInt64(r)
		return err
	case LedgerEntryTypeData:
		k.Data = new(LedgerKeyData)
		if err := k.Data.AccountID.Unmarshal(r); err != nil {
			return err
		}
		if k.Data.Name, err = xdr.ReadString(r, maxDataEntryLen); err != nil {
			return err
		}
		if len(k.Data.Name) == 0 {
			return ErrInvalidDataEntry
		}
		return nil
	case LedgerEntryTypeClaimableBalance:
		k.ClaimableBalance = new(LedgerKeyClaimableBalance)
		return k.ClaimableBalance.BalanceID.Unmarshal(r)
	case LedgerEntryTypeLiquidityPool:
		k.LiquidityPool = new(LedgerKeyLiquidityPool)
		return k.LiquidityPool.PoolID.Unmarshal(r)
	case LedgerEntryTypeContractData:
		k.ContractData = new(LedgerKeyContractData)
		if err := k.ContractData.Contract.Unmarshal(r); err != nil {
			return err
		}
		if err := k.ContractData.Key.Unmarshal(r); err != nil {
			return err
		}
		d, err := xdr.ReadInt32(r)
		if err != nil {
			return err
		}
		if d != int32(ContractDataTemporary) && d != int32(ContractDataPersistent) {
			return fmt.Errorf("contract data durability %d: %w", d, xdr.ErrInvalidDiscriminant)
		}
		k.ContractData.Durability = ContractDataDurability(d)
		return nil
	case LedgerEntryTypeContractCode:
		k.ContractCode = new(LedgerKeyContractCode)
		return k.ContractCode.Hash.Unmarshal(r)
	case LedgerEntryTypeConfigSetting:
		k.ConfigSetting = new(LedgerKeyConfigSetting)
		k.ConfigSetting.ID, err = xdr.ReadInt32(r)
		return err
	case LedgerEntryTypeTTL:
		k.TTL = new(LedgerKeyTTL)
		return k.TTL.KeyHash.Unmarshal(r)
	default:
		return fmt.Errorf("ledger entry type %d: %w", t, xdr.ErrInvalidDiscriminant)
	}
}
