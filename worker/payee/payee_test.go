package payee

import (
	"context"
	"testing"
	"time"

	"chrono/core"
	"chrono/service/position"
	"chrono/store/memory"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func setup(t *testing.T) (*Payee, *position.Manager, *memory.Ledger) {
	ctx := context.Background()
	l := memory.New()
	require.Nil(t, l.Prices().Save(ctx, &core.Price{TokenType: core.TokenWrappedETH, Price: d("2000")}))
	require.Nil(t, l.Prices().Save(ctx, &core.Price{TokenType: core.TokenWrappedUSDC, Price: d("1")}))

	tokens := core.DefaultTokens()
	params := core.DefaultProtocolParameters()
	w := New(l, nil, nil, tokens)
	return w, position.New(l, params, tokens), l
}

func inbox(t *testing.T, l core.ILedger, action *core.Action) *core.Action {
	action.TraceID = uuid.Must(uuid.NewV4()).String()
	action.At = t0
	require.Nil(t, l.Actions().Create(context.Background(), action))
	return action
}

func transfers(t *testing.T, l core.ILedger) []*core.Transfer {
	list, err := l.Transfers().Top(context.Background(), 100)
	require.Nil(t, err)
	return list
}

func TestHandleLend(t *testing.T) {
	ctx := context.Background()
	w, m, l := setup(t)

	action := inbox(t, l, &core.Action{
		Sender:    "lender",
		TokenType: core.TokenWrappedUSDC,
		Amount:    d("1000"),
		Type:      core.ActionTypeLend,
	})
	require.Nil(t, w.handleAction(ctx, m, action))
	assert.Equal(t, core.ActionStatusDone, action.Status)

	pending, err := l.Actions().ListPending(ctx, 0, 10)
	require.Nil(t, err)
	assert.Len(t, pending, 0)

	positions, err := l.Lendings().FindByLender(ctx, "lender")
	require.Nil(t, err)
	require.Len(t, positions, 1)
	assert.True(t, positions[0].Amount.Equal(d("1000")))
	assert.Equal(t, action.TraceID, positions[0].TraceID)
	assert.Len(t, transfers(t, l), 0)
}

func TestHandleRejectedRefunds(t *testing.T) {
	ctx := context.Background()
	w, m, l := setup(t)

	lendAction := inbox(t, l, &core.Action{Sender: "lender", TokenType: core.TokenWrappedUSDC, Amount: d("100000"), Type: core.ActionTypeLend})
	require.Nil(t, w.handleAction(ctx, m, lendAction))

	action := inbox(t, l, &core.Action{
		Sender:          "borrower",
		TokenType:       core.TokenWrappedETH,
		Amount:          d("10"),
		Type:            core.ActionTypeOpen,
		BorrowTokenType: core.TokenWrappedUSDC,
		BorrowAmount:    d("19000"),
		DurationMinutes: 1,
	})
	require.Nil(t, w.handleAction(ctx, m, action))
	assert.Equal(t, core.ActionStatusRejected, action.Status)
	assert.Equal(t, int(core.ErrLTVExceeded), action.ErrorCode)

	list := transfers(t, l)
	require.Len(t, list, 1)
	assert.Equal(t, foxuuid.Modify(action.TraceID, purposeRefund), list[0].TraceID)
	assert.Equal(t, "borrower", list[0].OpponentID)
	assert.Equal(t, core.TokenWrappedETH, list[0].TokenType)
	assert.True(t, list[0].Amount.Equal(d("10")))

	borrowings, err := l.Borrowings().FindByBorrower(ctx, "borrower")
	require.Nil(t, err)
	assert.Len(t, borrowings, 0)

	vault, err := l.Vaults().Find(ctx, core.TokenWrappedETH)
	require.Nil(t, err)
	assert.True(t, vault.TotalCollateral.IsZero())
}

func TestHandleUnknownType(t *testing.T) {
	ctx := context.Background()
	w, m, l := setup(t)

	action := inbox(t, l, &core.Action{Sender: "someone", TokenType: core.TokenWrappedUSDC, Amount: d("5")})
	require.Nil(t, w.handleAction(ctx, m, action))
	assert.Equal(t, core.ActionStatusRejected, action.Status)
	assert.Equal(t, int(core.ErrInvalidParameters), action.ErrorCode)
	assert.Len(t, transfers(t, l), 1)
}

func TestHandleOpenThenRepay(t *testing.T) {
	ctx := context.Background()
	w, m, l := setup(t)

	require.Nil(t, w.handleAction(ctx, m, inbox(t, l, &core.Action{
		Sender: "lender", TokenType: core.TokenWrappedUSDC, Amount: d("100000"), Type: core.ActionTypeLend,
	})))

	open := inbox(t, l, &core.Action{
		Sender:          "borrower",
		TokenType:       core.TokenWrappedETH,
		Amount:          d("10"),
		Type:            core.ActionTypeOpen,
		BorrowTokenType: core.TokenWrappedUSDC,
		BorrowAmount:    d("15000"),
		DurationMinutes: 30,
	})
	require.Nil(t, w.handleAction(ctx, m, open))
	require.Equal(t, core.ActionStatusDone, open.Status)

	borrowings, err := l.Borrowings().FindByBorrower(ctx, "borrower")
	require.Nil(t, err)
	require.Len(t, borrowings, 1)
	id := borrowings[0].ID

	// repaid in the collateral token
	wrong := inbox(t, l, &core.Action{
		Sender: "borrower", TokenType: core.TokenWrappedETH, Amount: d("8"), Type: core.ActionTypeRepay, PositionID: id,
	})
	require.Nil(t, w.handleAction(ctx, m, wrong))
	assert.Equal(t, core.ActionStatusRejected, wrong.Status)
	assert.Equal(t, int(core.ErrUnsupportedToken), wrong.ErrorCode)

	repay := inbox(t, l, &core.Action{
		Sender: "borrower", TokenType: core.TokenWrappedUSDC, Amount: d("15000"), Type: core.ActionTypeRepay, PositionID: id,
	})
	require.Nil(t, w.handleAction(ctx, m, repay))
	assert.Equal(t, core.ActionStatusDone, repay.Status)

	p, err := l.Borrowings().Find(ctx, id)
	require.Nil(t, err)
	assert.False(t, p.IsActive)
}

func TestHandleWithdrawReturnsCarrier(t *testing.T) {
	ctx := context.Background()
	w, m, l := setup(t)

	lendAction := inbox(t, l, &core.Action{Sender: "lender", TokenType: core.TokenWrappedUSDC, Amount: d("1000"), Type: core.ActionTypeLend})
	require.Nil(t, w.handleAction(ctx, m, lendAction))

	positions, err := l.Lendings().FindByLender(ctx, "lender")
	require.Nil(t, err)
	require.Len(t, positions, 1)

	action := inbox(t, l, &core.Action{
		Sender: "lender", TokenType: core.TokenWrappedUSDC, Amount: d("0.0001"), Type: core.ActionTypeWithdraw, PositionID: positions[0].ID,
	})
	require.Nil(t, w.handleAction(ctx, m, action))
	assert.Equal(t, core.ActionStatusDone, action.Status)

	traces := map[string]decimal.Decimal{}
	for _, tr := range transfers(t, l) {
		traces[tr.TraceID] = tr.Amount
	}

	assert.Len(t, traces, 2)
	assert.True(t, traces[foxuuid.Modify(action.TraceID, "withdraw")].Equal(d("1000")))
	assert.True(t, traces[foxuuid.Modify(action.TraceID, purposeReturn)].Equal(d("0.0001")))
}
