package syncer

import (
	"context"
	"testing"
	"time"

	"chrono/core"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usdcAsset = "9b180ab6-6abe-3dc0-a13f-04169eb34bfa"

func newSyncer() *Syncer {
	tokens := core.DefaultTokens()
	for idx := range tokens {
		if tokens[idx].Tag == core.TokenWrappedUSDC {
			tokens[idx].AssetID = usdcAsset
		}
	}

	return New(nil, nil, nil, tokens)
}

func payment(memo string) *core.Snapshot {
	return &core.Snapshot{
		SnapshotID: uuid.Must(uuid.NewV4()).String(),
		UserID:     uuid.Must(uuid.NewV4()).String(),
		OpponentID: uuid.Must(uuid.NewV4()).String(),
		AssetID:    usdcAsset,
		Amount:     decimal.NewFromInt(100),
		Memo:       memo,
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestActionFromMemo(t *testing.T) {
	w := newSyncer()

	memo, err := core.ActionMemo{
		Type:            core.ActionTypeBorrowMore,
		PositionID:      7,
		BorrowAmount:    "12.5",
		DurationMinutes: 10,
	}.Encode()
	require.Nil(t, err)

	s := payment(memo)
	action, ok := w.action(context.Background(), s)
	require.True(t, ok)
	assert.Equal(t, s.SnapshotID, action.TraceID)
	assert.Equal(t, s.OpponentID, action.Sender)
	assert.Equal(t, core.TokenWrappedUSDC, action.TokenType)
	assert.True(t, action.Amount.Equal(s.Amount))
	assert.Equal(t, s.CreatedAt, action.At)
	assert.Equal(t, core.ActionTypeBorrowMore, action.Type)
	assert.Equal(t, uint64(7), action.PositionID)
	assert.True(t, action.BorrowAmount.Equal(decimal.RequireFromString("12.5")))
	assert.Contains(t, action.Memo.String(), `"position_id":7`)
}

func TestActionWithBadMemo(t *testing.T) {
	w := newSyncer()

	action, ok := w.action(context.Background(), payment("not a memo"))
	require.True(t, ok)
	assert.Equal(t, core.ActionType(""), action.Type)
}

func TestActionSkipped(t *testing.T) {
	w := newSyncer()

	s := payment("")
	s.AssetID = uuid.Must(uuid.NewV4()).String()
	_, ok := w.action(context.Background(), s)
	assert.False(t, ok)

	s = payment("")
	s.OpponentID = ""
	_, ok = w.action(context.Background(), s)
	assert.False(t, ok)
}

func TestActionWithBadBorrowAmount(t *testing.T) {
	w := newSyncer()

	memo, err := core.ActionMemo{
		Type:         core.ActionTypeBorrowMore,
		PositionID:   7,
		BorrowAmount: "12,5",
	}.Encode()
	require.Nil(t, err)

	action, ok := w.action(context.Background(), payment(memo))
	require.True(t, ok)
	assert.Equal(t, core.ActionType(""), action.Type)
	assert.True(t, action.BorrowAmount.IsZero())
}
