package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// VaultInfo per token entry of the protocol snapshot.
// Field names are consumed by external dashboards.
type VaultInfo struct {
	TokenType                      TokenTag        `json:"tokenType"`
	TotalDeposited                 decimal.Decimal `json:"totalDeposited"`
	TotalBorrowed                  decimal.Decimal `json:"totalBorrowed"`
	AvailableLiquidity             decimal.Decimal `json:"availableLiquidity"`
	UtilizationRate                decimal.Decimal `json:"utilizationRate"`
	NumberOfActiveBorrowPositions  int64           `json:"numberOfActiveBorrowPositions"`
	NumberOfActiveLendingPositions int64           `json:"numberOfActiveLendingPositions"`
	Price                          decimal.Decimal `json:"price"`
	// unix seconds, 0 if never priced
	LastPriceUpdate int64 `json:"lastPriceUpdate"`

	TotalDepositedUSD     decimal.Decimal `json:"totalDepositedUSD"`
	TotalBorrowedUSD      decimal.Decimal `json:"totalBorrowedUSD"`
	AvailableLiquidityUSD decimal.Decimal `json:"availableLiquidityUSD"`
	Symbol                string          `json:"symbol"`
	Name                  string          `json:"name"`
}

// ProtocolStats protocol wide figures, usd values
type ProtocolStats struct {
	TotalValueLocked         decimal.Decimal `json:"totalValueLocked"`
	TotalBorrowed            decimal.Decimal `json:"totalBorrowed"`
	ActiveLendingPositions   int64           `json:"activeLendingPositions"`
	ActiveBorrowingPositions int64           `json:"activeBorrowingPositions"`
	UnhealthyPositions       int64           `json:"unhealthyPositions"`
	OverduePositions         int64           `json:"overduePositions"`
}

// ProtocolSnapshot derived snapshot of the whole ledger
type ProtocolSnapshot struct {
	Timestamp     time.Time     `json:"timestamp"`
	LastUpdate    int64         `json:"lastUpdate"`
	ProtocolStats ProtocolStats `json:"protocolStats"`
	Vaults        []*VaultInfo  `json:"vaults"`
}

// HealthStatus reporting classification of a health factor
type HealthStatus string

const (
	// HealthStatusSafe hf > 1.5
	HealthStatusSafe HealthStatus = "safe"
	// HealthStatusWarning 1.0 < hf <= 1.5
	HealthStatusWarning HealthStatus = "warning"
	// HealthStatusLiquidatable hf <= 1.0
	HealthStatusLiquidatable HealthStatus = "liquidatable"
	// HealthStatusUnknown a leg has no price
	HealthStatusUnknown HealthStatus = "unknown"
)

// BorrowingDetail borrowing position with its read time figures
type BorrowingDetail struct {
	*BorrowingPosition
	CalculatedLTV        decimal.Decimal `json:"calculated_ltv"`
	LTVCeiling           decimal.Decimal `json:"ltv_ceiling"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	// nil means infinite, no debt
	HealthFactor   *decimal.Decimal `json:"health_factor"`
	HealthStatus   HealthStatus     `json:"health_status"`
	Overdue        bool             `json:"overdue"`
	OwedInterest   decimal.Decimal  `json:"owed_interest"`
	TotalRepayment decimal.Decimal  `json:"total_repayment"`
}

// IReportService derived read models
type IReportService interface {
	Snapshot(ctx context.Context, now time.Time) (*ProtocolSnapshot, error)
	BorrowingDetail(ctx context.Context, position *BorrowingPosition, now time.Time) (*BorrowingDetail, error)
}
