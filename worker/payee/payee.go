package payee

import (
	"context"
	"errors"

	"chrono/core"
	"chrono/service/position"
	"chrono/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

const (
	checkpointKey = "payee_checkpoint"
	limit         = 100
)

// Payee apply pending inbox actions in ledger order
type Payee struct {
	worker.TickWorker
	ledger     core.ILedger
	properties property.Store
	params     core.IParameterStore
	tokens     core.Tokens
	opts       []position.Option
}

// New new payee
func New(
	ledger core.ILedger,
	properties property.Store,
	params core.IParameterStore,
	tokens core.Tokens,
	opts ...position.Option,
) *Payee {
	return &Payee{
		ledger:     ledger,
		properties: properties,
		params:     params,
		tokens:     tokens,
		opts:       opts,
	}
}

// Run run worker
func (w *Payee) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "payee")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, w.run)
}

func (w *Payee) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.properties.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	actions, err := w.ledger.Actions().ListPending(ctx, uint64(v.Int64()), limit)
	if err != nil {
		log.WithError(err).Errorln("actions.ListPending")
		return err
	}

	if len(actions) == 0 {
		return errors.New("EOF")
	}

	// parameter amendments apply from the next batch on
	params, err := w.params.Get(ctx)
	if err != nil {
		log.WithError(err).Errorln("params.Get")
		return err
	}

	manager := position.New(w.ledger, *params, w.tokens, w.opts...)
	for _, action := range actions {
		if err := w.handleAction(ctx, manager, action); err != nil {
			return err
		}

		if err := w.properties.Save(ctx, checkpointKey, int64(action.ID)); err != nil {
			log.WithError(err).Errorln("property.Save", checkpointKey)
			return err
		}
	}

	return nil
}

// handleAction apply the action, settle its status and refund a rejected payment in one tx.
// Rejections never write before failing, so the tx still commits the status.
func (w *Payee) handleAction(ctx context.Context, manager *position.Manager, action *core.Action) error {
	log := logger.FromContext(ctx).
		WithField("action", action.ID).
		WithField("type", action.Type).
		WithField("trace", action.TraceID)
	ctx = logger.WithContext(ctx, log)

	return w.ledger.Tx(ctx, func(tx core.ILedger) error {
		err := w.apply(ctx, manager.With(tx), tx, action)

		var code core.ErrorCode
		switch {
		case err == nil:
			action.Status = core.ActionStatusDone
		case errors.As(err, &code):
			action.Status = core.ActionStatusRejected
			action.ErrorCode = int(code)
			if err := w.refund(ctx, tx, action, purposeRefund); err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Actions().Update(ctx, action)
	})
}

func (w *Payee) apply(ctx context.Context, manager *position.Manager, tx core.ILedger, action *core.Action) error {
	env := action.Envelope()

	switch action.Type {
	case core.ActionTypeLend:
		_, err := manager.Lend(ctx, env, action.TokenType, action.Amount)
		return err
	case core.ActionTypeOpen:
		_, err := manager.Open(ctx, env, &core.OpenRequest{
			CollateralType:   action.TokenType,
			CollateralAmount: action.Amount,
			BorrowTokenType:  action.BorrowTokenType,
			BorrowAmount:     action.BorrowAmount,
			DurationMinutes:  action.DurationMinutes,
		})
		return err
	case core.ActionTypeRepay:
		if err := w.requireRepayToken(ctx, tx, action); err != nil {
			return err
		}

		_, err := manager.Repay(ctx, env, action.PositionID, action.Amount)
		return err
	case core.ActionTypeWithdraw:
		if _, err := manager.Withdraw(ctx, env, action.PositionID); err != nil {
			return err
		}

		return w.refund(ctx, tx, action, purposeReturn)
	case core.ActionTypeBorrowMore:
		if _, err := manager.BorrowMore(ctx, env, action.PositionID, action.BorrowAmount); err != nil {
			return err
		}

		return w.refund(ctx, tx, action, purposeReturn)
	default:
		return core.ErrInvalidParameters
	}
}

// requireRepayToken the payment must be made in the borrowed token
func (w *Payee) requireRepayToken(ctx context.Context, tx core.ILedger, action *core.Action) error {
	p, err := tx.Borrowings().Find(ctx, action.PositionID)
	if err != nil {
		return err
	}

	if p.ID > 0 && p.BorrowTokenType != action.TokenType {
		return core.ErrUnsupportedToken
	}

	return nil
}
