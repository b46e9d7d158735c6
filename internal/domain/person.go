package domain

import (
	"github.com/shopspring/decimal"
)

// Person is a household member that income and asset ownership can be
// attributed to for tax purposes.
type Person struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// AssetOwnership attributes a fractional share of an asset to a person.
// Shares across an asset need not sum to 1; any unassigned share has no
// attributable owner and generates no tax for anyone.
type AssetOwnership struct {
	PersonID string          `yaml:"person_id" json:"person_id"`
	Share    decimal.Decimal `yaml:"share" json:"share"`
}
