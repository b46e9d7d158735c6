package simulation

import (
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// growBalance advances a balance by one year. Growth compounds the
// start-of-year balance once; the contribution (added pre-retirement only)
// does not compound in its first year.
func growBalance(balance, growthRatePct, contribution decimal.Decimal, preRetirement bool) decimal.Decimal {
	grown := balance.Mul(one.Add(growthRatePct.Div(hundred)))
	if preRetirement {
		grown = grown.Add(contribution)
	}
	return grown
}

// requiredIncomeAt inflates the desired annual income from today's money to
// the value needed after the given number of elapsed years.
func requiredIncomeAt(desired, inflationRatePct decimal.Decimal, yearsElapsed int) decimal.Decimal {
	if yearsElapsed == 0 {
		return desired
	}
	factor := one.Add(inflationRatePct.Div(hundred)).Pow(decimal.NewFromInt(int64(yearsElapsed)))
	return desired.Mul(factor)
}
