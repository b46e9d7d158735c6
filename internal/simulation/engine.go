package simulation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retirewise/retirement-planner/internal/domain"
)

// Engine runs deterministic year-by-year drawdown projections. It holds no
// per-run state: a single Engine may serve concurrent simulations.
type Engine struct {
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewEngine creates an engine with the default UK tax schedule.
func NewEngine() *Engine {
	return &Engine{
		TaxCalc: NewTaxCalculator(),
		Logger:  NopLogger{},
	}
}

// NewEngineWithRules creates an engine with a custom tax schedule.
func NewEngineWithRules(rules TaxRules) *Engine {
	return &Engine{
		TaxCalc: NewTaxCalculatorWithRules(rules),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the engine logger. A nil logger restores the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Simulate projects the household's finances for every integer age from
// current_age through life_expectancy inclusive. The input is validated up
// front and never mutated; for identical inputs the output is identical.
func (e *Engine) Simulate(ctx context.Context, params *domain.SimulationParams) ([]domain.YearSnapshot, error) {
	if err := ValidateParams(params); err != nil {
		return nil, fmt.Errorf("invalid simulation parameters: %w", err)
	}

	// Working copies: asset balances mutate per year, the caller's structs
	// never do.
	states := make([]*assetState, len(params.Assets))
	for i := range params.Assets {
		states[i] = &assetState{
			def:      &params.Assets[i],
			balance:  params.Assets[i].Balance,
			position: i,
		}
	}

	// Cumulative tax-free pension cash taken per person across the run.
	taxFreeUsed := make(map[string]decimal.Decimal, len(params.People))
	for _, person := range params.People {
		taxFreeUsed[person.ID] = decimal.Zero
	}

	years := params.LifeExpectancy - params.CurrentAge + 1
	timeline := make([]domain.YearSnapshot, 0, years)

	e.Logger.Debugf("simulating ages %d-%d across %d assets", params.CurrentAge, params.LifeExpectancy, len(states))

	for age := params.CurrentAge; age <= params.LifeExpectancy; age++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		timeline = append(timeline, e.simulateYear(params, states, taxFreeUsed, age))
	}

	return timeline, nil
}

// simulateYear advances every asset by one year and produces the snapshot.
func (e *Engine) simulateYear(params *domain.SimulationParams, states []*assetState, taxFreeUsed map[string]decimal.Decimal, age int) domain.YearSnapshot {
	preRetirement := age < params.RetirementAge

	// Dividends pay on the start-of-year balance, before growth.
	personDividends := make(map[string]decimal.Decimal)
	for _, st := range states {
		if st.def.DividendYield == nil || !st.balance.IsPositive() {
			continue
		}
		paid := st.balance.Mul(st.def.DividendYield.Div(hundred))
		for _, owner := range st.def.Owners {
			share := paid.Mul(owner.Share)
			personDividends[owner.PersonID] = personDividends[owner.PersonID].Add(share)
		}
	}

	// Growth compounds the start-of-year balance; contributions stop at
	// retirement.
	for _, st := range states {
		st.balance = growBalance(st.balance, st.def.AnnualGrowthRate, st.def.AnnualContribution, preRetirement)
	}

	required := requiredIncomeAt(params.DesiredAnnualIncome, params.InflationRate, age-params.CurrentAge)
	totalIncome, breakdown := resolveIncome(params.Incomes, age)

	// Only retired years need funding; withdrawals act on end-of-growth
	// balances.
	shortfallRemaining := decimal.Zero
	var withdrawals []withdrawal
	if !preRetirement {
		shortfall := required.Sub(totalIncome)
		if shortfall.IsPositive() {
			ordered := orderForDrawdown(states, params.WithdrawalPriority)
			withdrawals, shortfallRemaining = resolveShortfall(shortfall, ordered)
			for _, w := range withdrawals {
				breakdown["Withdrawal: "+w.state.def.Name] = w.amount
				totalIncome = totalIncome.Add(w.amount)
			}
			if shortfallRemaining.IsPositive() {
				e.Logger.Debugf("age %d: shortfall of %s left uncovered", age, shortfallRemaining.StringFixed(2))
			}
		}
	}

	taxBreakdown := e.computeTaxBreakdown(params, withdrawals, personDividends, taxFreeUsed, age)

	balances := make(map[string]decimal.Decimal, len(states))
	totalAssets := decimal.Zero
	for _, st := range states {
		balances[st.def.Name] = st.balance
		totalAssets = totalAssets.Add(st.balance)
	}

	return domain.YearSnapshot{
		Age:                age,
		RequiredIncome:     required,
		GeneratedIncome:    totalIncome,
		TotalAssets:        totalAssets,
		AssetBalances:      balances,
		IncomeBreakdown:    breakdown,
		ShortfallRemaining: shortfallRemaining,
		TaxBreakdown:       taxBreakdown,
	}
}

// computeTaxBreakdown attributes the year's income, withdrawals and dividends
// to people and runs the tax calculator for each of them.
func (e *Engine) computeTaxBreakdown(params *domain.SimulationParams, withdrawals []withdrawal, personDividends map[string]decimal.Decimal, taxFreeUsed map[string]decimal.Decimal, age int) map[string]domain.PersonTax {
	taxableIncome := make(map[string]decimal.Decimal, len(params.People))
	realizedGains := make(map[string]decimal.Decimal, len(params.People))

	// Attributed income sources are taxable in full.
	for i := range params.Incomes {
		source := &params.Incomes[i]
		if source.PersonID == nil || !source.ActiveAt(age) {
			continue
		}
		id := *source.PersonID
		taxableIncome[id] = taxableIncome[id].Add(source.Amount)
	}

	// Withdrawals are apportioned by ownership share. Pension withdrawals
	// are part tax free, taxable-account withdrawals realize gains; any
	// unowned share is attributed to nobody.
	for _, w := range withdrawals {
		for _, owner := range w.state.def.Owners {
			share := w.amount.Mul(owner.Share)
			switch {
			case w.state.def.Type == domain.AssetPension:
				taxFree, taxable := e.TaxCalc.splitPensionWithdrawal(share, taxFreeUsed[owner.PersonID])
				taxFreeUsed[owner.PersonID] = taxFreeUsed[owner.PersonID].Add(taxFree)
				taxableIncome[owner.PersonID] = taxableIncome[owner.PersonID].Add(taxable)
			case w.state.def.RealizesGains():
				realizedGains[owner.PersonID] = realizedGains[owner.PersonID].Add(share)
			}
		}
	}

	taxBreakdown := make(map[string]domain.PersonTax, len(params.People))
	for _, person := range params.People {
		taxBreakdown[person.Name] = e.TaxCalc.ComputeTax(
			taxableIncome[person.ID],
			realizedGains[person.ID],
			personDividends[person.ID],
		)
	}
	return taxBreakdown
}
