package domain

import (
	"github.com/shopspring/decimal"
)

// SimulationParams is the complete, self-contained input to one simulation
// run. The engine never mutates it.
type SimulationParams struct {
	CurrentAge     int `yaml:"current_age" json:"current_age"`
	RetirementAge  int `yaml:"retirement_age" json:"retirement_age"`
	LifeExpectancy int `yaml:"life_expectancy" json:"life_expectancy"`

	InflationRate       decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"` // percent
	DesiredAnnualIncome decimal.Decimal `yaml:"desired_annual_income" json:"desired_annual_income"`

	People  []Person       `yaml:"people,omitempty" json:"people,omitempty"`
	Assets  []Asset        `yaml:"assets" json:"assets"`
	Incomes []IncomeSource `yaml:"incomes" json:"incomes"`

	// WithdrawalPriority orders asset types for the drawdown waterfall.
	// Types absent from the list are tried last, in input order.
	WithdrawalPriority []AssetType `yaml:"withdrawal_priority" json:"withdrawal_priority"`
}

// PersonByID returns the person with the given id, or nil.
func (p *SimulationParams) PersonByID(id string) *Person {
	for i := range p.People {
		if p.People[i].ID == id {
			return &p.People[i]
		}
	}
	return nil
}
