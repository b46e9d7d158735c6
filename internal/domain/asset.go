package domain

import (
	"github.com/shopspring/decimal"
)

// AssetType classifies an asset for withdrawal ordering and tax treatment.
type AssetType string

const (
	AssetCash         AssetType = "cash"
	AssetGeneral      AssetType = "general" // GIA: taxable investment account
	AssetISA          AssetType = "isa"
	AssetPension      AssetType = "pension"
	AssetProperty     AssetType = "property"
	AssetRSU          AssetType = "rsu"
	AssetPremiumBonds AssetType = "premium_bonds"
)

// Valid reports whether t is one of the known asset types.
func (t AssetType) Valid() bool {
	switch t {
	case AssetCash, AssetGeneral, AssetISA, AssetPension, AssetProperty, AssetRSU, AssetPremiumBonds:
		return true
	}
	return false
}

// Asset is a pot of money (or property) tracked over the projection.
type Asset struct {
	ID                 string          `yaml:"id" json:"id"`
	Name               string          `yaml:"name" json:"name"`
	Type               AssetType       `yaml:"type" json:"type"`
	Balance            decimal.Decimal `yaml:"balance" json:"balance"`
	AnnualGrowthRate   decimal.Decimal `yaml:"annual_growth_rate" json:"annual_growth_rate"` // percent
	AnnualContribution decimal.Decimal `yaml:"annual_contribution" json:"annual_contribution"`
	IsWithdrawable     bool            `yaml:"is_withdrawable" json:"is_withdrawable"`

	// MaxAnnualWithdrawal caps a single year's withdrawal from this asset
	// regardless of need (e.g. limiting RSU sales for CGT reasons).
	// Absent means no cap; zero freezes the asset for the year.
	MaxAnnualWithdrawal *decimal.Decimal `yaml:"max_annual_withdrawal,omitempty" json:"max_annual_withdrawal,omitempty"`

	// DividendYield, when set, pays yield% of the start-of-year balance as
	// dividend income to the owners each year (percent).
	DividendYield *decimal.Decimal `yaml:"dividend_yield,omitempty" json:"dividend_yield,omitempty"`

	Owners []AssetOwnership `yaml:"owners,omitempty" json:"owners,omitempty"`
}

// RealizesGains reports whether withdrawals from this asset count as realized
// capital gains. ISA and pension wrappers are tax-advantaged, premium bond
// prizes are tax free, and drawing down cash is not a disposal.
func (a *Asset) RealizesGains() bool {
	return a.Type == AssetGeneral || a.Type == AssetRSU
}
