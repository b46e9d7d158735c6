package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/retirewise/retirement-planner/internal/domain"
	"github.com/retirewise/retirement-planner/internal/simulation"
)

// InputParser handles parsing of plan files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads simulation parameters from a YAML plan file and
// validates them before returning.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationParams, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var params domain.SimulationParams
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := simulation.ValidateParams(&params); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &params, nil
}

// WriteExampleFile writes a worked example plan to the given path.
func (ip *InputParser) WriteExampleFile(filename string) error {
	data, err := yaml.Marshal(CreateExampleParams())
	if err != nil {
		return fmt.Errorf("failed to marshal example plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// CreateExampleParams returns a complete two-person example household.
func CreateExampleParams() *domain.SimulationParams {
	rsuCap := decimal.NewFromInt(15000)
	giaYield := decimal.NewFromFloat(3.5)
	alice := "alice"
	bob := "bob"

	return &domain.SimulationParams{
		CurrentAge:          55,
		RetirementAge:       60,
		LifeExpectancy:      90,
		InflationRate:       decimal.NewFromFloat(2.5),
		DesiredAnnualIncome: decimal.NewFromInt(40000),
		People: []domain.Person{
			{ID: alice, Name: "Alice"},
			{ID: bob, Name: "Bob"},
		},
		Assets: []domain.Asset{
			{
				ID: "cash", Name: "Easy Access Savings", Type: domain.AssetCash,
				Balance:          decimal.NewFromInt(40000),
				AnnualGrowthRate: decimal.NewFromFloat(1.5),
				IsWithdrawable:   true,
				Owners: []domain.AssetOwnership{
					{PersonID: alice, Share: decimal.NewFromFloat(0.5)},
					{PersonID: bob, Share: decimal.NewFromFloat(0.5)},
				},
			},
			{
				ID: "gia", Name: "Joint GIA", Type: domain.AssetGeneral,
				Balance:            decimal.NewFromInt(120000),
				AnnualGrowthRate:   decimal.NewFromFloat(4.5),
				AnnualContribution: decimal.NewFromInt(6000),
				IsWithdrawable:     true,
				DividendYield:      &giaYield,
				Owners: []domain.AssetOwnership{
					{PersonID: alice, Share: decimal.NewFromFloat(0.5)},
					{PersonID: bob, Share: decimal.NewFromFloat(0.5)},
				},
			},
			{
				ID: "isa", Name: "Alice ISA", Type: domain.AssetISA,
				Balance:            decimal.NewFromInt(180000),
				AnnualGrowthRate:   decimal.NewFromFloat(5),
				AnnualContribution: decimal.NewFromInt(10000),
				IsWithdrawable:     true,
				Owners:             []domain.AssetOwnership{{PersonID: alice, Share: decimal.NewFromInt(1)}},
			},
			{
				ID: "sipp", Name: "Bob SIPP", Type: domain.AssetPension,
				Balance:            decimal.NewFromInt(350000),
				AnnualGrowthRate:   decimal.NewFromFloat(5),
				AnnualContribution: decimal.NewFromInt(12000),
				IsWithdrawable:     true,
				Owners:             []domain.AssetOwnership{{PersonID: bob, Share: decimal.NewFromInt(1)}},
			},
			{
				ID: "rsu", Name: "Vested RSUs", Type: domain.AssetRSU,
				Balance:             decimal.NewFromInt(60000),
				AnnualGrowthRate:    decimal.NewFromFloat(6),
				IsWithdrawable:      true,
				MaxAnnualWithdrawal: &rsuCap,
				Owners:              []domain.AssetOwnership{{PersonID: alice, Share: decimal.NewFromInt(1)}},
			},
			{
				ID: "home", Name: "Family Home", Type: domain.AssetProperty,
				Balance:          decimal.NewFromInt(450000),
				AnnualGrowthRate: decimal.NewFromFloat(3),
				IsWithdrawable:   false,
			},
		},
		Incomes: []domain.IncomeSource{
			{
				ID: "salary", Name: "Alice Salary", Type: domain.IncomeEmployment,
				Amount:   decimal.NewFromInt(55000),
				StartAge: 55, EndAge: 59,
				PersonID: &alice,
			},
			{
				ID: "db", Name: "Bob DB Pension", Type: domain.IncomeDBPension,
				Amount:   decimal.NewFromInt(9000),
				StartAge: 65, EndAge: 90,
				PersonID: &bob,
			},
			{
				ID: "sp-a", Name: "Alice State Pension", Type: domain.IncomeStatePension,
				Amount:   decimal.NewFromInt(11500),
				StartAge: 67, EndAge: 90,
				PersonID: &alice,
			},
			{
				ID: "sp-b", Name: "Bob State Pension", Type: domain.IncomeStatePension,
				Amount:   decimal.NewFromInt(11500),
				StartAge: 67, EndAge: 90,
				PersonID: &bob,
			},
		},
		WithdrawalPriority: []domain.AssetType{
			domain.AssetCash,
			domain.AssetGeneral,
			domain.AssetRSU,
			domain.AssetISA,
			domain.AssetPension,
		},
	}
}
