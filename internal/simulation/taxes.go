package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/retirewise/retirement-planner/internal/domain"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Income tax: 2025/26-style UK bands held constant for all projection
//    years. Personal allowance £12,570, no taper for high incomes.
// 2. Dividends: £500 allowance then a single 8.75% rate (no higher/additional
//    dividend rates).
// 3. Capital gains: £3,000 annual exemption then a flat 20% rate; the whole
//    withdrawal from a taxable account is treated as gain (no cost basis).
// 4. Pension withdrawals: 25% tax free until the £268,275 lifetime tax-free
//    allowance is used up; the rest is taxed as income.
//
// These are simplified, illustrative schedules, not tax advice.

// TaxBand is one marginal band applied to income above the allowance.
type TaxBand struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// TaxRules holds the banded schedule and allowances for a single tax year.
type TaxRules struct {
	PersonalAllowance decimal.Decimal
	IncomeBands       []TaxBand

	DividendAllowance decimal.Decimal
	DividendRate      decimal.Decimal

	CGTAllowance decimal.Decimal
	CGTRate      decimal.Decimal

	PensionTaxFreeFraction decimal.Decimal
	PensionTaxFreeLifetime decimal.Decimal
}

// NewUKTaxRules2025 returns the illustrative 2025/26 schedule.
func NewUKTaxRules2025() TaxRules {
	return TaxRules{
		PersonalAllowance: decimal.NewFromInt(12570),
		IncomeBands: []TaxBand{
			{decimal.Zero, decimal.NewFromInt(37700), decimal.NewFromFloat(0.20)},
			{decimal.NewFromInt(37700), decimal.NewFromInt(112570), decimal.NewFromFloat(0.40)},
			{decimal.NewFromInt(112570), decimal.NewFromInt(999999999), decimal.NewFromFloat(0.45)},
		},
		DividendAllowance:      decimal.NewFromInt(500),
		DividendRate:           decimal.NewFromFloat(0.0875),
		CGTAllowance:           decimal.NewFromInt(3000),
		CGTRate:                decimal.NewFromFloat(0.20),
		PensionTaxFreeFraction: decimal.NewFromFloat(0.25),
		PensionTaxFreeLifetime: decimal.NewFromInt(268275),
	}
}

// TaxCalculator computes a person's yearly liability under banded rules.
type TaxCalculator struct {
	Rules TaxRules
}

// NewTaxCalculator creates a calculator with the default UK schedule.
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Rules: NewUKTaxRules2025()}
}

// NewTaxCalculatorWithRules creates a calculator with a custom schedule.
func NewTaxCalculatorWithRules(rules TaxRules) *TaxCalculator {
	return &TaxCalculator{Rules: rules}
}

// ComputeTax calculates one person's income tax, dividend tax and capital
// gains tax for a single year. No carry-forward, no allowance taper, no
// spousal transfer.
func (tc *TaxCalculator) ComputeTax(taxableIncome, realizedGains, dividends decimal.Decimal) domain.PersonTax {
	incomeTax := tc.incomeTax(taxableIncome)
	dividendTax := tc.dividendTax(dividends)
	cgt := tc.capitalGainsTax(realizedGains)

	return domain.PersonTax{
		TaxableIncome:   taxableIncome,
		Dividends:       dividends,
		IncomeTax:       incomeTax,
		DividendTax:     dividendTax,
		CapitalGainsTax: cgt,
		Total:           incomeTax.Add(dividendTax).Add(cgt),
	}
}

// incomeTax applies the personal allowance then the marginal bands. The
// schedule is monotonic and continuous across band boundaries: each band
// taxes only the slice of income that falls inside it.
func (tc *TaxCalculator) incomeTax(taxableIncome decimal.Decimal) decimal.Decimal {
	aboveAllowance := taxableIncome.Sub(tc.Rules.PersonalAllowance)
	if !aboveAllowance.IsPositive() {
		return decimal.Zero
	}

	tax := decimal.Zero
	for _, band := range tc.Rules.IncomeBands {
		if aboveAllowance.LessThanOrEqual(band.Min) {
			break
		}
		inBand := decimal.Min(aboveAllowance, band.Max).Sub(band.Min)
		if inBand.IsPositive() {
			tax = tax.Add(inBand.Mul(band.Rate))
		}
	}
	return tax
}

func (tc *TaxCalculator) dividendTax(dividends decimal.Decimal) decimal.Decimal {
	taxable := dividends.Sub(tc.Rules.DividendAllowance)
	if !taxable.IsPositive() {
		return decimal.Zero
	}
	return taxable.Mul(tc.Rules.DividendRate)
}

func (tc *TaxCalculator) capitalGainsTax(gains decimal.Decimal) decimal.Decimal {
	taxable := gains.Sub(tc.Rules.CGTAllowance)
	if !taxable.IsPositive() {
		return decimal.Zero
	}
	return taxable.Mul(tc.Rules.CGTRate)
}

// splitPensionWithdrawal divides a pension withdrawal into its tax-free and
// taxable portions. The tax-free part is 25% of the withdrawal, clamped to
// whatever remains of the lifetime tax-free allowance given the amount
// already used.
func (tc *TaxCalculator) splitPensionWithdrawal(amount, taxFreeUsed decimal.Decimal) (taxFree, taxable decimal.Decimal) {
	remainingAllowance := decimal.Max(tc.Rules.PensionTaxFreeLifetime.Sub(taxFreeUsed), decimal.Zero)
	taxFree = decimal.Min(amount.Mul(tc.Rules.PensionTaxFreeFraction), remainingAllowance)
	taxable = amount.Sub(taxFree)
	return taxFree, taxable
}
