package simulation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retirewise/retirement-planner/internal/domain"
)

// assetState is the engine's per-run working copy of an asset. The caller's
// Asset is never mutated; only the state balance moves.
type assetState struct {
	def      *domain.Asset
	balance  decimal.Decimal
	position int // input order, used to break ties deterministically
}

// withdrawal records money taken from one asset during the waterfall.
type withdrawal struct {
	state  *assetState
	amount decimal.Decimal
}

// orderForDrawdown returns the withdrawable assets sorted by the position of
// their type in the priority list, then by input order. Types absent from the
// list sort after every listed type, keeping their input order.
func orderForDrawdown(states []*assetState, priority []domain.AssetType) []*assetState {
	rank := make(map[domain.AssetType]int, len(priority))
	for i, t := range priority {
		if _, seen := rank[t]; !seen {
			rank[t] = i
		}
	}
	unlisted := len(priority)

	var eligible []*assetState
	for _, st := range states {
		if st.def.IsWithdrawable {
			eligible = append(eligible, st)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		ri, ok := rank[eligible[i].def.Type]
		if !ok {
			ri = unlisted
		}
		rj, ok := rank[eligible[j].def.Type]
		if !ok {
			rj = unlisted
		}
		if ri != rj {
			return ri < rj
		}
		return eligible[i].position < eligible[j].position
	})
	return eligible
}

// resolveShortfall draws the shortfall from the ordered assets, clamping each
// withdrawal to the asset's balance and its annual cap. It returns the
// withdrawals made and the shortfall left uncovered; running out of assets is
// a representable outcome, not an error.
func resolveShortfall(shortfall decimal.Decimal, ordered []*assetState) ([]withdrawal, decimal.Decimal) {
	remaining := shortfall
	var withdrawals []withdrawal

	for _, st := range ordered {
		if !remaining.IsPositive() {
			break
		}
		if !st.balance.IsPositive() {
			continue
		}

		amount := decimal.Min(remaining, st.balance)
		if st.def.MaxAnnualWithdrawal != nil {
			amount = decimal.Min(amount, *st.def.MaxAnnualWithdrawal)
		}
		if !amount.IsPositive() {
			// A zero cap freezes the asset for the year.
			continue
		}

		st.balance = st.balance.Sub(amount)
		remaining = remaining.Sub(amount)
		withdrawals = append(withdrawals, withdrawal{state: st, amount: amount})
	}

	return withdrawals, decimal.Max(remaining, decimal.Zero)
}
