package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/retirewise/retirement-planner/internal/domain"
)

// writeCSV renders one row per simulated year. Asset and person columns
// follow the input order so the layout is stable for a given plan.
func writeCSV(w io.Writer, result *domain.SimulationResult) error {
	cw := csv.NewWriter(w)

	header := []string{"age", "required_income", "generated_income", "shortfall_remaining", "total_assets"}
	for _, asset := range result.Params.Assets {
		header = append(header, "balance_"+asset.Name)
	}
	for _, person := range result.Params.People {
		header = append(header, "tax_"+person.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range result.Timeline {
		ys := &result.Timeline[i]
		row := []string{
			strconv.Itoa(ys.Age),
			ys.RequiredIncome.StringFixed(2),
			ys.GeneratedIncome.StringFixed(2),
			ys.ShortfallRemaining.StringFixed(2),
			ys.TotalAssets.StringFixed(2),
		}
		for _, asset := range result.Params.Assets {
			row = append(row, ys.AssetBalances[asset.Name].StringFixed(2))
		}
		for _, person := range result.Params.People {
			row = append(row, ys.TaxBreakdown[person.Name].Total.StringFixed(2))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for age %d: %w", ys.Age, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
