package position

import (
	"context"

	"chrono/core"
	"chrono/pkg/number"

	"github.com/shopspring/decimal"
)

type vaults struct {
	collateral *core.VaultAggregate
	borrow     *core.VaultAggregate
}

// loadVaults both legs of a position, sharing one record when the tokens are equal
func loadVaults(ctx context.Context, tx core.ILedger, collateral, borrow core.TokenTag) (*vaults, error) {
	c, err := tx.Vaults().Find(ctx, collateral)
	if err != nil {
		return nil, err
	}

	if collateral == borrow {
		return &vaults{collateral: c, borrow: c}, nil
	}

	b, err := tx.Vaults().Find(ctx, borrow)
	if err != nil {
		return nil, err
	}

	return &vaults{collateral: c, borrow: b}, nil
}

func (v *vaults) save(ctx context.Context, tx core.ILedger) error {
	if err := tx.Vaults().Save(ctx, v.collateral); err != nil {
		return err
	}

	if v.borrow == v.collateral {
		return nil
	}

	return tx.Vaults().Save(ctx, v.borrow)
}

// withinCeiling borrowValue <= collateralValue * LTV(duration), without division
func (m *Manager) withinCeiling(ctx context.Context, tx core.ILedger, collateral core.TokenTag, collateralAmount decimal.Decimal, borrow core.TokenTag, borrowAmount decimal.Decimal, duration uint64) error {
	collateralPrice, err := m.price(ctx, tx, collateral)
	if err != nil {
		return err
	}

	borrowPrice, err := m.price(ctx, tx, borrow)
	if err != nil {
		return err
	}

	collateralValue := collateralAmount.Mul(collateralPrice)
	borrowValue := borrowAmount.Mul(borrowPrice)
	if !number.Representable(collateralValue) || !number.Representable(borrowValue) {
		return core.ErrAmountOverflow
	}

	ceiling := m.curve.LTV(duration)
	if borrowValue.GreaterThan(collateralValue.Mul(ceiling)) {
		return core.ErrLTVExceeded
	}

	return nil
}

// Open lock collateral and disburse the loan
func (m *Manager) Open(ctx context.Context, env core.Envelope, req *core.OpenRequest) (*core.BorrowingPosition, error) {
	var position *core.BorrowingPosition
	err := m.ledger.Tx(ctx, func(tx core.ILedger) error {
		if err := env.Validate(); err != nil {
			return err
		}

		existing, err := tx.Borrowings().FindTrace(ctx, env.TraceID)
		if err != nil {
			return err
		}

		if existing.ID > 0 {
			position = existing
			return nil
		}

		// checked before the decay curve is ever evaluated
		if !m.params.DurationAllowed(req.DurationMinutes) {
			return core.ErrMaxDurationExceeded
		}

		if _, err := m.token(req.CollateralType); err != nil {
			return err
		}

		borrowToken, err := m.token(req.BorrowTokenType)
		if err != nil {
			return err
		}

		collateralAmount, err := amount(req.CollateralAmount)
		if err != nil {
			return err
		}

		borrowAmount, err := amount(req.BorrowAmount)
		if err != nil {
			return err
		}

		if err := m.withinCeiling(ctx, tx, req.CollateralType, collateralAmount, req.BorrowTokenType, borrowAmount, req.DurationMinutes); err != nil {
			return err
		}

		vs, err := loadVaults(ctx, tx, req.CollateralType, req.BorrowTokenType)
		if err != nil {
			return err
		}

		if vs.borrow.AvailableLiquidity().LessThan(borrowAmount) {
			return core.ErrInsufficientLiquidity
		}

		totalCollateral, err := sum(vs.collateral.TotalCollateral, collateralAmount)
		if err != nil {
			return err
		}

		position = &core.BorrowingPosition{
			TraceID:           env.TraceID,
			Borrower:          env.Caller,
			CollateralType:    req.CollateralType,
			CollateralAmount:  collateralAmount,
			BorrowTokenType:   req.BorrowTokenType,
			BorrowAmount:      borrowAmount,
			DurationMinutes:   req.DurationMinutes,
			OpenedAt:          env.At,
			RepaymentDeadline: core.DeadlineFor(env.At, req.DurationMinutes),
			IsActive:          true,
		}
		if err := tx.Borrowings().Create(ctx, position); err != nil {
			return err
		}

		vs.collateral.TotalCollateral = totalCollateral
		vs.borrow.TotalBorrowed = vs.borrow.TotalBorrowed.Add(borrowAmount)
		vs.borrow.ActiveBorrowCount++
		if err := vs.save(ctx, tx); err != nil {
			return err
		}

		return m.transfer(ctx, tx, env, "borrow", borrowToken, borrowAmount)
	})

	var id uint64
	if position != nil {
		id = position.ID
	}
	m.done(ctx, opOpen, env, id, err)
	if err != nil {
		return nil, err
	}

	return position, nil
}

func (m *Manager) owned(ctx context.Context, tx core.ILedger, env core.Envelope, id uint64) (*core.BorrowingPosition, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	position, err := tx.Borrowings().Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if position.ID == 0 {
		return nil, core.ErrNotFound
	}

	if position.Borrower != env.Caller {
		return nil, core.ErrUnauthorized
	}

	if !position.IsActive {
		return nil, core.ErrAlreadyClosed
	}

	return position, nil
}

// BorrowMore increase the loan against unchanged collateral.
// The duration and open time are kept.
func (m *Manager) BorrowMore(ctx context.Context, env core.Envelope, id uint64, additional decimal.Decimal) (*core.BorrowingPosition, error) {
	var position *core.BorrowingPosition
	err := m.ledger.Tx(ctx, func(tx core.ILedger) error {
		p, err := m.owned(ctx, tx, env, id)
		if err != nil {
			return err
		}

		borrowToken, err := m.token(p.BorrowTokenType)
		if err != nil {
			return err
		}

		additional, err := amount(additional)
		if err != nil {
			return err
		}

		borrowAmount, err := sum(p.BorrowAmount, additional)
		if err != nil {
			return err
		}

		if err := m.withinCeiling(ctx, tx, p.CollateralType, p.CollateralAmount, p.BorrowTokenType, borrowAmount, p.DurationMinutes); err != nil {
			return err
		}

		vault, err := tx.Vaults().Find(ctx, p.BorrowTokenType)
		if err != nil {
			return err
		}

		if vault.AvailableLiquidity().LessThan(additional) {
			return core.ErrInsufficientLiquidity
		}

		p.BorrowAmount = borrowAmount
		if err := tx.Borrowings().Update(ctx, p); err != nil {
			return err
		}

		vault.TotalBorrowed = vault.TotalBorrowed.Add(additional)
		if err := tx.Vaults().Save(ctx, vault); err != nil {
			return err
		}

		if err := m.transfer(ctx, tx, env, "borrow_more", borrowToken, additional); err != nil {
			return err
		}

		position = p
		return nil
	})

	m.done(ctx, opBorrowMore, env, id, err)
	if err != nil {
		return nil, err
	}

	return position, nil
}

// Repay close the position with the supplied borrow token amount,
// returning the collateral and any excess
func (m *Manager) Repay(ctx context.Context, env core.Envelope, id uint64, supplied decimal.Decimal) (*core.Repayment, error) {
	var repayment *core.Repayment
	err := m.ledger.Tx(ctx, func(tx core.ILedger) error {
		p, err := m.owned(ctx, tx, env, id)
		if err != nil {
			return err
		}

		collateralToken, err := m.token(p.CollateralType)
		if err != nil {
			return err
		}

		borrowToken, err := m.token(p.BorrowTokenType)
		if err != nil {
			return err
		}

		owed := m.interest.OwedInterest(p, env.At)
		total, err := sum(p.BorrowAmount, owed)
		if err != nil {
			return err
		}

		supplied = number.Amount(supplied)
		if supplied.LessThan(total) {
			return core.ErrInsufficientRepayment
		}

		refund := supplied.Sub(total)

		vs, err := loadVaults(ctx, tx, p.CollateralType, p.BorrowTokenType)
		if err != nil {
			return err
		}

		closedAt := env.At
		p.IsActive = false
		p.ClosedAt = &closedAt
		if err := tx.Borrowings().Update(ctx, p); err != nil {
			return err
		}

		reserve := owed.Mul(m.params.ReserveFactor).Truncate(number.Precision)
		vs.borrow.TotalBorrowed = vs.borrow.TotalBorrowed.Sub(p.BorrowAmount)
		vs.borrow.ActiveBorrowCount--
		vs.borrow.Reserves = vs.borrow.Reserves.Add(reserve)
		vs.borrow.InterestPool = vs.borrow.InterestPool.Add(owed.Sub(reserve))
		vs.collateral.TotalCollateral = vs.collateral.TotalCollateral.Sub(p.CollateralAmount)
		if err := vs.save(ctx, tx); err != nil {
			return err
		}

		if err := m.transfer(ctx, tx, env, "collateral", collateralToken, p.CollateralAmount); err != nil {
			return err
		}

		if err := m.transfer(ctx, tx, env, "refund", borrowToken, refund); err != nil {
			return err
		}

		repayment = &core.Repayment{
			Position:       p,
			Interest:       owed,
			TotalRepayment: total,
			Refund:         refund,
		}
		return nil
	})

	m.done(ctx, opRepay, env, id, err)
	if err != nil {
		return nil, err
	}

	return repayment, nil
}
