package output

import (
	"fmt"
	"io"

	"github.com/retirewise/retirement-planner/internal/domain"
	"github.com/retirewise/retirement-planner/pkg/money"
)

// writeConsole renders the timeline as an aligned plain-text table with a
// short underfunding summary at the end.
func writeConsole(w io.Writer, result *domain.SimulationResult) error {
	params := &result.Params

	fmt.Fprintf(w, "RETIREMENT DRAWDOWN PROJECTION\n")
	fmt.Fprintf(w, "==============================\n")
	fmt.Fprintf(w, "Ages %d-%d (retiring at %d), desired income %s, inflation %s%%\n\n",
		params.CurrentAge, params.LifeExpectancy, params.RetirementAge,
		money.FromDecimal(params.DesiredAnnualIncome).Format(),
		params.InflationRate.String())

	fmt.Fprintf(w, "%-5s %14s %14s %14s %16s %12s\n",
		"Age", "Required", "Income", "Shortfall", "Total Assets", "Tax")

	firstUnderfunded := 0
	underfundedYears := 0
	for i := range result.Timeline {
		ys := &result.Timeline[i]
		fmt.Fprintf(w, "%-5d %14s %14s %14s %16s %12s\n",
			ys.Age,
			money.FromDecimal(ys.RequiredIncome).Format(),
			money.FromDecimal(ys.GeneratedIncome).Format(),
			money.FromDecimal(ys.ShortfallRemaining).Format(),
			money.FromDecimal(ys.TotalAssets).Format(),
			money.FromDecimal(ys.TotalTax()).Format())
		if ys.IsUnderfunded() {
			if underfundedYears == 0 {
				firstUnderfunded = ys.Age
			}
			underfundedYears++
		}
	}

	fmt.Fprintln(w)
	if underfundedYears == 0 {
		fmt.Fprintf(w, "Fully funded: income and withdrawals cover the desired income in every year.\n")
	} else {
		fmt.Fprintf(w, "Underfunded in %d of %d years (first at age %d).\n",
			underfundedYears, len(result.Timeline), firstUnderfunded)
	}
	return nil
}
