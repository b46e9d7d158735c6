package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeType classifies an income source for tax attribution.
type IncomeType string

const (
	IncomeStatePension IncomeType = "state_pension"
	IncomeDBPension    IncomeType = "db_pension"
	IncomeEmployment   IncomeType = "employment"
	IncomeOther        IncomeType = "other"
)

// Valid reports whether t is one of the known income source types.
func (t IncomeType) Valid() bool {
	switch t {
	case IncomeStatePension, IncomeDBPension, IncomeEmployment, IncomeOther:
		return true
	}
	return false
}

// IncomeSource is an annual income stream active over an inclusive age range.
// Amounts are taken verbatim for every active year: state and DB pensions are
// entered at the value they are expected to pay, so no inflation adjustment
// is applied to them (only desired income inflates).
type IncomeSource struct {
	ID       string          `yaml:"id" json:"id"`
	Name     string          `yaml:"name" json:"name"`
	Type     IncomeType      `yaml:"type" json:"type"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	StartAge int             `yaml:"start_age" json:"start_age"`
	EndAge   int             `yaml:"end_age" json:"end_age"`

	// PersonID attributes the income to a person for tax purposes.
	// Absent means unattributed: the income funds the household but is
	// taxed to nobody.
	PersonID *string `yaml:"person_id,omitempty" json:"person_id,omitempty"`
}

// ActiveAt reports whether the source pays out at the given age.
func (s *IncomeSource) ActiveAt(age int) bool {
	return s.StartAge <= age && age <= s.EndAge
}
