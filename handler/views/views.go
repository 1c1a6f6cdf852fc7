package views

import (
	"chrono/core"

	"github.com/shopspring/decimal"
)

// Vault vault view
type Vault struct {
	*core.VaultInfo
	BorrowAPY decimal.Decimal `json:"borrowAPY"`
	SupplyAPY decimal.Decimal `json:"supplyAPY"`
}

// Lending lending position view
type Lending struct {
	*core.LendingPosition
	// yield owed if withdrawn now
	AccruedYield decimal.Decimal `json:"accrued_yield"`
}

// CurvePoint collateral curves at one duration
type CurvePoint struct {
	DurationMinutes      uint64          `json:"duration_minutes"`
	LTV                  decimal.Decimal `json:"ltv"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
}

// Rates interest rates at one utilization
type Rates struct {
	Utilization decimal.Decimal `json:"utilization"`
	BorrowAPY   decimal.Decimal `json:"borrow_apy"`
	SupplyAPY   decimal.Decimal `json:"supply_apy"`
}

// Curves curve view
type Curves struct {
	Points []*CurvePoint `json:"points"`
	Rates  *Rates        `json:"rates,omitempty"`
}

// Memo encoded action memo
type Memo struct {
	Memo string `json:"memo"`
}
