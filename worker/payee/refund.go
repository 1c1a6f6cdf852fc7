package payee

import (
	"context"

	"chrono/core"

	"github.com/fox-one/pkg/logger"
	foxuuid "github.com/fox-one/pkg/uuid"
)

const (
	// payment of a rejected action
	purposeRefund = "refund"
	// carrier payment of withdraw and borrow_more, which spend nothing
	purposeReturn = "return"
)

func (w *Payee) refund(ctx context.Context, tx core.ILedger, action *core.Action, purpose string) error {
	if !action.Amount.IsPositive() {
		return nil
	}

	token, ok := w.tokens.Find(action.TokenType)
	if !ok {
		// unsupported payments never reach the inbox
		return nil
	}

	if err := action.Envelope().Validate(); err != nil {
		logger.FromContext(ctx).WithField("trace", action.TraceID).Warnln("skip refund of action with bad trace")
		return nil
	}

	return tx.Transfers().Create(ctx, &core.Transfer{
		TraceID:    foxuuid.Modify(action.TraceID, purpose),
		OpponentID: action.Sender,
		TokenType:  token.Tag,
		AssetID:    token.AssetID,
		Amount:     action.Amount,
		Memo:       purpose,
	})
}
