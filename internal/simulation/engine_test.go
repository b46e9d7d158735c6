package simulation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retirewise/retirement-planner/internal/domain"
)

// assertAmount compares a decimal against its expected value fixed to pence.
func assertAmount(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, expected, actual.StringFixed(2), msgAndArgs...)
}

func singleAssetParams(asset domain.Asset, desired int64) *domain.SimulationParams {
	return &domain.SimulationParams{
		CurrentAge:          60,
		RetirementAge:       60,
		LifeExpectancy:      61,
		InflationRate:       decimal.Zero,
		DesiredAnnualIncome: decimal.NewFromInt(desired),
		Assets:              []domain.Asset{asset},
		WithdrawalPriority:  []domain.AssetType{asset.Type},
	}
}

func TestSimulateInsufficientAssets(t *testing.T) {
	params := singleAssetParams(domain.Asset{
		ID: "cash", Name: "Cash", Type: domain.AssetCash,
		Balance:        decimal.NewFromInt(15000),
		IsWithdrawable: true,
	}, 20000)

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	// Age 60: the whole 15k is withdrawn, leaving 5k uncovered.
	assertAmount(t, "20000.00", timeline[0].RequiredIncome)
	assertAmount(t, "15000.00", timeline[0].IncomeBreakdown["Withdrawal: Cash"])
	assertAmount(t, "0.00", timeline[0].AssetBalances["Cash"])
	assertAmount(t, "5000.00", timeline[0].ShortfallRemaining)
	assert.True(t, timeline[0].IsUnderfunded())

	// Age 61: nothing left to draw.
	assertAmount(t, "20000.00", timeline[1].RequiredIncome)
	assertAmount(t, "0.00", timeline[1].GeneratedIncome)
	assertAmount(t, "20000.00", timeline[1].ShortfallRemaining)
	_, withdrew := timeline[1].IncomeBreakdown["Withdrawal: Cash"]
	assert.False(t, withdrew, "no withdrawal entry expected once the asset is empty")
}

func TestSimulateSameTypeDrainedInInputOrder(t *testing.T) {
	params := &domain.SimulationParams{
		CurrentAge:          60,
		RetirementAge:       60,
		LifeExpectancy:      60,
		InflationRate:       decimal.Zero,
		DesiredAnnualIncome: decimal.NewFromInt(15000),
		Assets: []domain.Asset{
			{ID: "a", Name: "ISA A", Type: domain.AssetISA, Balance: decimal.NewFromInt(10000), IsWithdrawable: true},
			{ID: "b", Name: "ISA B", Type: domain.AssetISA, Balance: decimal.NewFromInt(10000), IsWithdrawable: true},
		},
		WithdrawalPriority: []domain.AssetType{domain.AssetISA},
	}

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, timeline, 1)

	assertAmount(t, "10000.00", timeline[0].IncomeBreakdown["Withdrawal: ISA A"])
	assertAmount(t, "5000.00", timeline[0].IncomeBreakdown["Withdrawal: ISA B"])
	assertAmount(t, "0.00", timeline[0].AssetBalances["ISA A"])
	assertAmount(t, "5000.00", timeline[0].AssetBalances["ISA B"])
	assertAmount(t, "0.00", timeline[0].ShortfallRemaining)
}

func TestSimulateGrowthConservation(t *testing.T) {
	params := &domain.SimulationParams{
		CurrentAge:          40,
		RetirementAge:       60,
		LifeExpectancy:      60,
		InflationRate:       decimal.Zero,
		DesiredAnnualIncome: decimal.Zero,
		Assets: []domain.Asset{{
			ID: "isa", Name: "Test ISA", Type: domain.AssetISA,
			Balance:          decimal.NewFromInt(100000),
			AnnualGrowthRate: decimal.NewFromInt(5),
			IsWithdrawable:   true,
		}},
		WithdrawalPriority: []domain.AssetType{domain.AssetISA},
	}

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, timeline, 21)

	// No withdrawals: each year is exactly balance x 1.05.
	assertAmount(t, "105000.00", timeline[0].AssetBalances["Test ISA"])
	assertAmount(t, "110250.00", timeline[1].AssetBalances["Test ISA"])
	assertAmount(t, "115762.50", timeline[2].AssetBalances["Test ISA"])
}

func TestSimulateContributionsStopAtRetirement(t *testing.T) {
	params := &domain.SimulationParams{
		CurrentAge:          58,
		RetirementAge:       60,
		LifeExpectancy:      61,
		InflationRate:       decimal.Zero,
		DesiredAnnualIncome: decimal.Zero,
		Assets: []domain.Asset{{
			ID: "isa", Name: "ISA", Type: domain.AssetISA,
			Balance:            decimal.NewFromInt(10000),
			AnnualGrowthRate:   decimal.NewFromInt(10),
			AnnualContribution: decimal.NewFromInt(1000),
			IsWithdrawable:     true,
		}},
		WithdrawalPriority: []domain.AssetType{domain.AssetISA},
	}

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, timeline, 4)

	// Growth applies before the contribution; contributions do not
	// compound in their first year.
	assertAmount(t, "12000.00", timeline[0].AssetBalances["ISA"]) // 10000*1.1 + 1000
	assertAmount(t, "14200.00", timeline[1].AssetBalances["ISA"]) // 12000*1.1 + 1000
	assertAmount(t, "15620.00", timeline[2].AssetBalances["ISA"]) // retired: 14200*1.1
	assertAmount(t, "17182.00", timeline[3].AssetBalances["ISA"])
}

func TestSimulatePreRetirementRecordsRequiredIncome(t *testing.T) {
	params := &domain.SimulationParams{
		CurrentAge:          50,
		RetirementAge:       55,
		LifeExpectancy:      55,
		InflationRate:       decimal.NewFromInt(10),
		DesiredAnnualIncome: decimal.NewFromInt(10000),
		Assets: []domain.Asset{{
			ID: "cash", Name: "Cash", Type: domain.AssetCash,
			Balance:        decimal.NewFromInt(100000),
			IsWithdrawable: true,
		}},
		WithdrawalPriority: []domain.AssetType{domain.AssetCash},
	}

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, timeline, 6)

	// Pre-retirement years record the inflated figure but never withdraw.
	assertAmount(t, "10000.00", timeline[0].RequiredIncome)
	assertAmount(t, "11000.00", timeline[1].RequiredIncome)
	for _, ys := range timeline[:5] {
		assertAmount(t, "100000.00", ys.AssetBalances["Cash"], "age %d", ys.Age)
		assertAmount(t, "0.00", ys.ShortfallRemaining, "age %d", ys.Age)
	}

	// Inflation monotonicity across the whole timeline.
	for i := 1; i < len(timeline); i++ {
		assert.True(t, timeline[i].RequiredIncome.GreaterThanOrEqual(timeline[i-1].RequiredIncome))
	}

	// The single retired year draws 10000 * 1.1^5.
	assertAmount(t, "16105.10", timeline[5].RequiredIncome)
	assertAmount(t, "16105.10", timeline[5].IncomeBreakdown["Withdrawal: Cash"])
}

func TestSimulateIncomeReducesShortfall(t *testing.T) {
	db := "p1"
	params := &domain.SimulationParams{
		CurrentAge:          60,
		RetirementAge:       60,
		LifeExpectancy:      61,
		InflationRate:       decimal.Zero,
		DesiredAnnualIncome: decimal.NewFromInt(25000),
		People:              []domain.Person{{ID: db, Name: "Pat"}},
		Assets: []domain.Asset{
			{ID: "1", Name: "Cash", Type: domain.AssetCash, Balance: decimal.NewFromInt(50000), IsWithdrawable: true},
			{ID: "2", Name: "House", Type: domain.AssetProperty, Balance: decimal.NewFromInt(300000), AnnualGrowthRate: decimal.NewFromInt(2)},
		},
		Incomes: []domain.IncomeSource{{
			ID: "db", Name: "DB Pension", Type: domain.IncomeDBPension,
			Amount: decimal.NewFromInt(15000), StartAge: 60, EndAge: 100, PersonID: &db,
		}},
		WithdrawalPriority: []domain.AssetType{domain.AssetCash},
	}

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	// 15k DB pension leaves a 10k shortfall funded from cash; the house
	// keeps growing untouched.
	assertAmount(t, "25000.00", timeline[0].GeneratedIncome)
	assertAmount(t, "15000.00", timeline[0].IncomeBreakdown["DB Pension"])
	assertAmount(t, "10000.00", timeline[0].IncomeBreakdown["Withdrawal: Cash"])
	assertAmount(t, "40000.00", timeline[0].AssetBalances["Cash"])
	assertAmount(t, "306000.00", timeline[0].AssetBalances["House"])
	assertAmount(t, "346000.00", timeline[0].TotalAssets)

	assertAmount(t, "30000.00", timeline[1].AssetBalances["Cash"])
	assertAmount(t, "312120.00", timeline[1].AssetBalances["House"])

	// DB pension income is taxable to Pat: (15000-12570) * 20%.
	assertAmount(t, "486.00", timeline[0].TaxBreakdown["Pat"].IncomeTax)
}

func TestSimulateWithdrawalCapRespected(t *testing.T) {
	cap := decimal.NewFromInt(4000)
	asset := domain.Asset{
		ID: "rsu", Name: "RSUs", Type: domain.AssetRSU,
		Balance:             decimal.NewFromInt(100000),
		IsWithdrawable:      true,
		MaxAnnualWithdrawal: &cap,
	}
	params := singleAssetParams(asset, 50000)

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)

	for _, ys := range timeline {
		assertAmount(t, "4000.00", ys.IncomeBreakdown["Withdrawal: RSUs"], "age %d", ys.Age)
		assertAmount(t, "46000.00", ys.ShortfallRemaining, "age %d", ys.Age)
	}
	assertAmount(t, "92000.00", timeline[1].AssetBalances["RSUs"])
}

func TestSimulateIdempotent(t *testing.T) {
	alice := "alice"
	params := &domain.SimulationParams{
		CurrentAge:          55,
		RetirementAge:       60,
		LifeExpectancy:      85,
		InflationRate:       decimal.NewFromFloat(2.5),
		DesiredAnnualIncome: decimal.NewFromInt(30000),
		People:              []domain.Person{{ID: alice, Name: "Alice"}},
		Assets: []domain.Asset{
			{ID: "isa", Name: "ISA", Type: domain.AssetISA, Balance: decimal.NewFromInt(200000), AnnualGrowthRate: decimal.NewFromInt(4), AnnualContribution: decimal.NewFromInt(5000), IsWithdrawable: true,
				Owners: []domain.AssetOwnership{{PersonID: alice, Share: decimal.NewFromInt(1)}}},
			{ID: "pen", Name: "SIPP", Type: domain.AssetPension, Balance: decimal.NewFromInt(300000), AnnualGrowthRate: decimal.NewFromInt(4), IsWithdrawable: true,
				Owners: []domain.AssetOwnership{{PersonID: alice, Share: decimal.NewFromInt(1)}}},
		},
		Incomes: []domain.IncomeSource{{
			ID: "sp", Name: "State Pension", Type: domain.IncomeStatePension,
			Amount: decimal.NewFromInt(11500), StartAge: 67, EndAge: 85, PersonID: &alice,
		}},
		WithdrawalPriority: []domain.AssetType{domain.AssetISA, domain.AssetPension},
	}

	engine := NewEngine()
	first, err := engine.Simulate(context.Background(), params)
	require.NoError(t, err)
	second, err := engine.Simulate(context.Background(), params)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Age, second[i].Age)
		assertAmount(t, first[i].TotalAssets.StringFixed(2), second[i].TotalAssets)
		assertAmount(t, first[i].GeneratedIncome.StringFixed(2), second[i].GeneratedIncome)
		assertAmount(t, first[i].ShortfallRemaining.StringFixed(2), second[i].ShortfallRemaining)
		for name, bal := range first[i].AssetBalances {
			assertAmount(t, bal.StringFixed(2), second[i].AssetBalances[name])
		}
	}

	// Balances never go negative anywhere.
	for _, ys := range first {
		for name, bal := range ys.AssetBalances {
			assert.False(t, bal.IsNegative(), "age %d asset %s", ys.Age, name)
		}
	}
}

func TestSimulateDoesNotMutateInput(t *testing.T) {
	params := singleAssetParams(domain.Asset{
		ID: "cash", Name: "Cash", Type: domain.AssetCash,
		Balance:        decimal.NewFromInt(50000),
		IsWithdrawable: true,
	}, 20000)

	_, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	assertAmount(t, "50000.00", params.Assets[0].Balance)
}

func TestSimulateSingleYearTimeline(t *testing.T) {
	params := singleAssetParams(domain.Asset{
		ID: "cash", Name: "Cash", Type: domain.AssetCash,
		Balance:        decimal.NewFromInt(1000),
		IsWithdrawable: true,
	}, 0)
	params.LifeExpectancy = 60

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, timeline, 1)
	assert.Equal(t, 60, timeline[0].Age)
}

func TestSimulateInvalidParamsAbortsBeforeAnySnapshot(t *testing.T) {
	params := singleAssetParams(domain.Asset{
		ID: "cash", Name: "Cash", Type: domain.AssetCash,
		Balance:        decimal.NewFromInt(1000),
		IsWithdrawable: true,
	}, 1000)
	params.RetirementAge = 59 // current 60 > retirement 59

	timeline, err := NewEngine().Simulate(context.Background(), params)
	assert.Error(t, err)
	assert.Nil(t, timeline)
	assert.Contains(t, err.Error(), "current age")
}

func TestSimulatePensionWithdrawalTax(t *testing.T) {
	alice := "alice"
	params := &domain.SimulationParams{
		CurrentAge:          60,
		RetirementAge:       60,
		LifeExpectancy:      60,
		InflationRate:       decimal.Zero,
		DesiredAnnualIncome: decimal.NewFromInt(40000),
		People:              []domain.Person{{ID: alice, Name: "Alice"}},
		Assets: []domain.Asset{{
			ID: "sipp", Name: "SIPP", Type: domain.AssetPension,
			Balance:        decimal.NewFromInt(100000),
			IsWithdrawable: true,
			Owners:         []domain.AssetOwnership{{PersonID: alice, Share: decimal.NewFromInt(1)}},
		}},
		WithdrawalPriority: []domain.AssetType{domain.AssetPension},
	}

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, timeline, 1)

	// 40000 drawn: 10000 tax free, 30000 taxed as income.
	tax := timeline[0].TaxBreakdown["Alice"]
	assertAmount(t, "30000.00", tax.TaxableIncome)
	assertAmount(t, "3486.00", tax.IncomeTax)
	assertAmount(t, "3486.00", timeline[0].TotalTax())
}

func TestSimulateDividendTax(t *testing.T) {
	alice, bob := "alice", "bob"
	yield := decimal.NewFromInt(4)
	params := &domain.SimulationParams{
		CurrentAge:          60,
		RetirementAge:       60,
		LifeExpectancy:      60,
		InflationRate:       decimal.Zero,
		DesiredAnnualIncome: decimal.Zero,
		People: []domain.Person{
			{ID: alice, Name: "Alice"},
			{ID: bob, Name: "Bob"},
		},
		Assets: []domain.Asset{{
			ID: "gia", Name: "Joint GIA", Type: domain.AssetGeneral,
			Balance:        decimal.NewFromInt(150000),
			IsWithdrawable: true,
			DividendYield:  &yield,
			Owners: []domain.AssetOwnership{
				{PersonID: alice, Share: decimal.NewFromFloat(0.5)},
				{PersonID: bob, Share: decimal.NewFromFloat(0.5)},
			},
		}},
		WithdrawalPriority: []domain.AssetType{domain.AssetGeneral},
	}

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, timeline, 1)

	// 4% of 150k pays 3000 per head; 2500 over the allowance at 8.75%.
	for _, name := range []string{"Alice", "Bob"} {
		tax := timeline[0].TaxBreakdown[name]
		assertAmount(t, "3000.00", tax.Dividends, name)
		assertAmount(t, "218.75", tax.DividendTax, name)
	}
}

func TestSimulateLifetimeTaxFreeAllowance(t *testing.T) {
	alice := "alice"
	params := &domain.SimulationParams{
		CurrentAge:          60,
		RetirementAge:       60,
		LifeExpectancy:      61,
		InflationRate:       decimal.Zero,
		DesiredAnnualIncome: decimal.NewFromInt(1200000),
		People:              []domain.Person{{ID: alice, Name: "Alice"}},
		Assets: []domain.Asset{{
			ID: "sipp", Name: "SIPP", Type: domain.AssetPension,
			Balance:        decimal.NewFromInt(3000000),
			IsWithdrawable: true,
			Owners:         []domain.AssetOwnership{{PersonID: alice, Share: decimal.NewFromInt(1)}},
		}},
		WithdrawalPriority: []domain.AssetType{domain.AssetPension},
	}

	timeline, err := NewEngine().Simulate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	// Year one: 25% of 1.2M exceeds the lifetime tax-free allowance, so
	// only 268275 escapes tax. Year two: nothing left tax free.
	assertAmount(t, "931725.00", timeline[0].TaxBreakdown["Alice"].TaxableIncome)
	assertAmount(t, "1200000.00", timeline[1].TaxBreakdown["Alice"].TaxableIncome)
}

func TestSimulateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := singleAssetParams(domain.Asset{
		ID: "cash", Name: "Cash", Type: domain.AssetCash,
		Balance:        decimal.NewFromInt(1000),
		IsWithdrawable: true,
	}, 0)

	_, err := NewEngine().Simulate(ctx, params)
	assert.ErrorIs(t, err, context.Canceled)
}
