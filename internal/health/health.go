package health

import (
	"chrono/core"
	"chrono/internal/curve"

	"github.com/shopspring/decimal"
)

var (
	// SafeAbove health factor above this is safe
	SafeAbove = decimal.RequireFromString("1.5")
	// LiquidatableAtOrBelow health factor at or below this is liquidatable
	LiquidatableAtOrBelow = decimal.New(1, 0)
)

// Prices usd prices of both legs of a position
type Prices struct {
	Collateral decimal.Decimal
	Borrow     decimal.Decimal
}

// Result health of one position
type Result struct {
	CollateralValue      decimal.Decimal
	DebtValue            decimal.Decimal
	LiquidationThreshold decimal.Decimal
	// nil when there is no debt
	Factor *decimal.Decimal
	Status core.HealthStatus
}

// Evaluator read only health projection
type Evaluator struct {
	curve *curve.Engine
}

// New new evaluator sharing the curve engine
func New(engine *curve.Engine) *Evaluator {
	return &Evaluator{curve: engine}
}

// Evaluate health of the position. The threshold is LT of the contract
// duration, not of the elapsed time.
func (e *Evaluator) Evaluate(position *core.BorrowingPosition, prices Prices) Result {
	lt := e.curve.LT(position.DurationMinutes)
	collateralValue := position.CollateralAmount.Mul(prices.Collateral)
	debtValue := position.BorrowAmount.Mul(prices.Borrow)

	r := Result{
		CollateralValue:      collateralValue,
		DebtValue:            debtValue,
		LiquidationThreshold: lt,
	}

	if !debtValue.IsPositive() {
		r.Status = core.HealthStatusSafe
		return r
	}

	factor := collateralValue.Mul(lt).Div(debtValue).Truncate(curve.MaxPricision)
	r.Factor = &factor
	r.Status = Classify(factor)
	return r
}

// Classify reporting classification, never enforced
func Classify(factor decimal.Decimal) core.HealthStatus {
	switch {
	case factor.GreaterThan(SafeAbove):
		return core.HealthStatusSafe
	case factor.GreaterThan(LiquidatableAtOrBelow):
		return core.HealthStatusWarning
	default:
		return core.HealthStatusLiquidatable
	}
}

// Unhealthy at or below the liquidation threshold
func (r Result) Unhealthy() bool {
	return r.Status == core.HealthStatusLiquidatable
}
