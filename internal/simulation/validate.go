package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retirewise/retirement-planner/internal/domain"
)

var minGrowthRate = decimal.NewFromInt(-100)

// ValidateParams checks a parameter set before any computation. A failure here
// aborts the whole run; the engine never returns a partial timeline.
func ValidateParams(params *domain.SimulationParams) error {
	if params == nil {
		return fmt.Errorf("simulation parameters are required")
	}
	if params.CurrentAge < 0 {
		return fmt.Errorf("current age cannot be negative")
	}
	if params.CurrentAge > params.RetirementAge {
		return fmt.Errorf("current age (%d) cannot be greater than retirement age (%d)", params.CurrentAge, params.RetirementAge)
	}
	if params.RetirementAge > params.LifeExpectancy {
		return fmt.Errorf("retirement age (%d) cannot be greater than life expectancy (%d)", params.RetirementAge, params.LifeExpectancy)
	}
	if params.InflationRate.IsNegative() {
		return fmt.Errorf("inflation rate cannot be negative")
	}
	if params.DesiredAnnualIncome.IsNegative() {
		return fmt.Errorf("desired annual income cannot be negative")
	}

	people := make(map[string]bool, len(params.People))
	for i, person := range params.People {
		if person.ID == "" {
			return fmt.Errorf("person %d: id is required", i)
		}
		if people[person.ID] {
			return fmt.Errorf("person %d: duplicate id %q", i, person.ID)
		}
		people[person.ID] = true
	}

	for i := range params.Assets {
		if err := validateAsset(&params.Assets[i], people); err != nil {
			return fmt.Errorf("asset %d (%s): %w", i, params.Assets[i].Name, err)
		}
	}

	for i := range params.Incomes {
		if err := validateIncome(&params.Incomes[i], people); err != nil {
			return fmt.Errorf("income source %d (%s): %w", i, params.Incomes[i].Name, err)
		}
	}

	for i, t := range params.WithdrawalPriority {
		if !t.Valid() {
			return fmt.Errorf("withdrawal priority entry %d: unknown asset type %q", i, t)
		}
	}

	return nil
}

func validateAsset(asset *domain.Asset, people map[string]bool) error {
	if !asset.Type.Valid() {
		return fmt.Errorf("unknown asset type %q", asset.Type)
	}
	if asset.Balance.IsNegative() {
		return fmt.Errorf("balance cannot be negative")
	}
	if asset.AnnualContribution.IsNegative() {
		return fmt.Errorf("annual contribution cannot be negative")
	}
	if asset.AnnualGrowthRate.LessThan(minGrowthRate) {
		return fmt.Errorf("annual growth rate cannot be less than -100%%")
	}
	if asset.Type == domain.AssetProperty && asset.IsWithdrawable {
		return fmt.Errorf("property assets cannot be withdrawable")
	}
	if asset.MaxAnnualWithdrawal != nil && asset.MaxAnnualWithdrawal.IsNegative() {
		return fmt.Errorf("max annual withdrawal cannot be negative")
	}
	if asset.DividendYield != nil && asset.DividendYield.IsNegative() {
		return fmt.Errorf("dividend yield cannot be negative")
	}

	for i, owner := range asset.Owners {
		if !people[owner.PersonID] {
			return fmt.Errorf("owner %d references unknown person %q", i, owner.PersonID)
		}
		if !owner.Share.IsPositive() || owner.Share.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("owner %d: share must be in (0, 1], got %s", i, owner.Share)
		}
	}
	return nil
}

func validateIncome(source *domain.IncomeSource, people map[string]bool) error {
	if !source.Type.Valid() {
		return fmt.Errorf("unknown income type %q", source.Type)
	}
	if source.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if source.StartAge > source.EndAge {
		return fmt.Errorf("start age (%d) cannot be greater than end age (%d)", source.StartAge, source.EndAge)
	}
	if source.PersonID != nil && !people[*source.PersonID] {
		return fmt.Errorf("references unknown person %q", *source.PersonID)
	}
	return nil
}
