package position

import (
	"context"

	"chrono/core"

	"github.com/shopspring/decimal"
)

// Lend open an active lending position with the supplied amount
func (m *Manager) Lend(ctx context.Context, env core.Envelope, tag core.TokenTag, value decimal.Decimal) (*core.LendingPosition, error) {
	var position *core.LendingPosition
	err := m.ledger.Tx(ctx, func(tx core.ILedger) error {
		if err := env.Validate(); err != nil {
			return err
		}

		// replayed trace, the vault already holds this position
		existing, err := tx.Lendings().FindTrace(ctx, env.TraceID)
		if err != nil {
			return err
		}

		if existing.ID > 0 {
			position = existing
			return nil
		}

		if _, err := m.token(tag); err != nil {
			return err
		}

		value, err := amount(value)
		if err != nil {
			return err
		}

		vault, err := tx.Vaults().Find(ctx, tag)
		if err != nil {
			return err
		}

		deposited, err := sum(vault.TotalDeposited, value)
		if err != nil {
			return err
		}

		position = &core.LendingPosition{
			TraceID:   env.TraceID,
			Lender:    env.Caller,
			TokenType: tag,
			Amount:    value,
			OpenedAt:  env.At,
			IsActive:  true,
		}
		if err := tx.Lendings().Create(ctx, position); err != nil {
			return err
		}

		vault.TotalDeposited = deposited
		vault.ActiveLendCount++
		return tx.Vaults().Save(ctx, vault)
	})

	var id uint64
	if position != nil {
		id = position.ID
	}
	m.done(ctx, opLend, env, id, err)
	if err != nil {
		return nil, err
	}

	return position, nil
}

// Withdraw close the lending position, paying back principal and yield
func (m *Manager) Withdraw(ctx context.Context, env core.Envelope, id uint64) (*core.Withdrawal, error) {
	var withdrawal *core.Withdrawal
	err := m.ledger.Tx(ctx, func(tx core.ILedger) error {
		if err := env.Validate(); err != nil {
			return err
		}

		position, err := tx.Lendings().Find(ctx, id)
		if err != nil {
			return err
		}

		if position.ID == 0 {
			return core.ErrNotFound
		}

		if position.Lender != env.Caller {
			return core.ErrUnauthorized
		}

		if !position.IsActive {
			return core.ErrAlreadyClosed
		}

		token, err := m.token(position.TokenType)
		if err != nil {
			return err
		}

		vault, err := tx.Vaults().Find(ctx, position.TokenType)
		if err != nil {
			return err
		}

		if vault.AvailableLiquidity().LessThan(position.Amount) {
			return core.ErrInsufficientLiquidity
		}

		yield, err := m.yield.Yield(ctx, position, vault, env.At)
		if err != nil {
			return err
		}

		payout, err := sum(position.Amount, yield)
		if err != nil {
			return err
		}

		closedAt := env.At
		position.IsActive = false
		position.ClosedAt = &closedAt
		if err := tx.Lendings().Update(ctx, position); err != nil {
			return err
		}

		vault.TotalDeposited = vault.TotalDeposited.Sub(position.Amount)
		vault.InterestPool = vault.InterestPool.Sub(yield)
		vault.ActiveLendCount--
		if err := tx.Vaults().Save(ctx, vault); err != nil {
			return err
		}

		if err := m.transfer(ctx, tx, env, "withdraw", token, payout); err != nil {
			return err
		}

		withdrawal = &core.Withdrawal{
			Position: position,
			Yield:    yield,
			Payout:   payout,
		}
		return nil
	})

	m.done(ctx, opWithdraw, env, id, err)
	if err != nil {
		return nil, err
	}

	return withdrawal, nil
}
