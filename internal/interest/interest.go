package interest

import (
	"context"
	"time"

	"chrono/core"
	"chrono/internal/curve"
	"chrono/pkg/number"

	"github.com/shopspring/decimal"
)

// SecondsPerYear 365 days, leap years are not accounted
const SecondsPerYear int64 = 31536000

var secondsPerYear = decimal.NewFromInt(SecondsPerYear)

// ElapsedSeconds whole seconds from start to now, zero if now is before start
func ElapsedSeconds(start, now time.Time) int64 {
	if !now.After(start) {
		return 0
	}

	return int64(now.Sub(start) / time.Second)
}

// Simple amount * annualRate * seconds / SecondsPerYear, not rounded
func Simple(amount, annualRate decimal.Decimal, seconds int64) decimal.Decimal {
	if seconds <= 0 {
		return decimal.Zero
	}

	return amount.Mul(annualRate).Mul(decimal.NewFromInt(seconds)).Div(secondsPerYear)
}

// Calculator borrow interest accrual, simple and never compounded
type Calculator struct {
	annualRate decimal.Decimal
}

// NewCalculator accrue at the base interest rate
func NewCalculator(params core.ProtocolParameters) *Calculator {
	return &Calculator{annualRate: params.BaseInterestRate}
}

// OwedInterest interest from open to now, rounded up to ledger precision
func (c *Calculator) OwedInterest(position *core.BorrowingPosition, now time.Time) decimal.Decimal {
	seconds := ElapsedSeconds(position.OpenedAt, now)
	owed := Simple(position.BorrowAmount, c.annualRate, seconds)
	return number.Ceil(owed, number.Precision)
}

// TotalRepayment principal + owed interest
func (c *Calculator) TotalRepayment(position *core.BorrowingPosition, now time.Time) decimal.Decimal {
	return position.BorrowAmount.Add(c.OwedInterest(position, now))
}

// YieldService pays supply yield at the current supply apy,
// bounded by the interest repaid into the vault
type YieldService struct {
	curve *curve.Engine
}

// NewYieldService new yield service
func NewYieldService(engine *curve.Engine) *YieldService {
	return &YieldService{curve: engine}
}

// Yield implements core.IYieldService
func (s *YieldService) Yield(_ context.Context, position *core.LendingPosition, vault *core.VaultAggregate, now time.Time) (decimal.Decimal, error) {
	apy := s.curve.SupplyAPY(vault.UtilizationRate())
	seconds := ElapsedSeconds(position.OpenedAt, now)
	yield := Simple(position.Amount, apy, seconds).Truncate(number.Precision)

	if pool := vault.InterestPool; yield.GreaterThan(pool) {
		if pool.IsNegative() {
			return decimal.Zero, nil
		}
		return pool, nil
	}

	return yield, nil
}
