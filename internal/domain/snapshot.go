package domain

import (
	"github.com/shopspring/decimal"
)

// PersonTax is one person's estimated tax position for a single year.
type PersonTax struct {
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	Dividends       decimal.Decimal `json:"dividends"`
	IncomeTax       decimal.Decimal `json:"income_tax"`
	DividendTax     decimal.Decimal `json:"dividend_tax"`
	CapitalGainsTax decimal.Decimal `json:"capital_gains_tax"`
	Total           decimal.Decimal `json:"total"`
}

// YearSnapshot is one simulated year's complete output record. Snapshots are
// immutable once produced; the ordered sequence of them is the engine's sole
// output artifact.
type YearSnapshot struct {
	Age int `json:"age"`

	// RequiredIncome is the inflation-adjusted desired income for this age.
	// Recorded every year for reference; only retired years need funding.
	RequiredIncome decimal.Decimal `json:"required_income"`

	// GeneratedIncome is income actually received, including withdrawals.
	GeneratedIncome decimal.Decimal `json:"generated_income"`

	TotalAssets   decimal.Decimal            `json:"total_assets"`
	AssetBalances map[string]decimal.Decimal `json:"asset_balances"`

	// IncomeBreakdown maps source labels to amounts received this year.
	// Withdrawals appear under synthetic "Withdrawal: <asset name>" keys;
	// inactive sources are recorded as zero.
	IncomeBreakdown map[string]decimal.Decimal `json:"income_breakdown"`

	// ShortfallRemaining is the portion of required income the waterfall
	// could not cover. Underfunding is a representable outcome, not a fault.
	ShortfallRemaining decimal.Decimal `json:"shortfall_remaining"`

	// TaxBreakdown maps person names to their estimated liability.
	TaxBreakdown map[string]PersonTax `json:"tax_breakdown"`
}

// IsUnderfunded reports whether this year's income plus withdrawals fell
// short of the required income.
func (ys *YearSnapshot) IsUnderfunded() bool {
	return ys.ShortfallRemaining.IsPositive()
}

// TotalTax sums every person's liability for the year.
func (ys *YearSnapshot) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, pt := range ys.TaxBreakdown {
		total = total.Add(pt.Total)
	}
	return total
}

// SimulationResult pairs the echoed input parameters with the generated
// timeline, matching the shape returned by the HTTP API.
type SimulationResult struct {
	Params   SimulationParams `json:"params"`
	Timeline []YearSnapshot   `json:"timeline"`
}
