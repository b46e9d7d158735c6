package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/retirewise/retirement-planner/internal/domain"
)

// resolveIncome sums the income sources active at the given age and builds the
// per-source breakdown. Inactive sources are recorded as zero so every label
// appears in every year. Amounts are summed verbatim: incomes are nominal
// figures as entered, and only desired income is inflation adjusted.
func resolveIncome(incomes []domain.IncomeSource, age int) (decimal.Decimal, map[string]decimal.Decimal) {
	total := decimal.Zero
	breakdown := make(map[string]decimal.Decimal, len(incomes))
	for i := range incomes {
		source := &incomes[i]
		if source.ActiveAt(age) {
			total = total.Add(source.Amount)
			breakdown[source.Name] = source.Amount
		} else {
			breakdown[source.Name] = decimal.Zero
		}
	}
	return total, breakdown
}
