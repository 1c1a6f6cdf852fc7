package vault

import (
	"context"
	"testing"
	"time"

	"chrono/core"
	"chrono/service/position"
	"chrono/store/memory"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(caller string) core.Envelope {
	return core.Envelope{
		Caller:  caller,
		TraceID: uuid.Must(uuid.NewV4()).String(),
		At:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecompute(t *testing.T) {
	ctx := context.Background()
	l := memory.New()
	require.Nil(t, l.Prices().Save(ctx, &core.Price{TokenType: core.TokenWrappedETH, Price: decimal.NewFromInt(2000)}))
	require.Nil(t, l.Prices().Save(ctx, &core.Price{TokenType: core.TokenWrappedUSDC, Price: decimal.NewFromInt(1)}))

	tokens := core.DefaultTokens()
	m := position.New(l, core.DefaultProtocolParameters(), tokens)

	_, err := m.Lend(ctx, env("alice"), core.TokenWrappedUSDC, decimal.NewFromInt(50000))
	require.Nil(t, err)
	closed, err := m.Lend(ctx, env("bob"), core.TokenWrappedUSDC, decimal.NewFromInt(100))
	require.Nil(t, err)
	_, err = m.Withdraw(ctx, env("bob"), closed.ID)
	require.Nil(t, err)

	_, err = m.Open(ctx, env("carol"), &core.OpenRequest{
		CollateralType:   core.TokenWrappedETH,
		CollateralAmount: decimal.NewFromInt(10),
		BorrowTokenType:  core.TokenWrappedUSDC,
		BorrowAmount:     decimal.NewFromInt(15000),
		DurationMinutes:  10,
	})
	require.Nil(t, err)

	s := New(l, tokens)
	vaults, err := s.Recompute(ctx)
	require.Nil(t, err)
	require.Len(t, vaults, 3)

	eth, usdc := vaults[0], vaults[1]
	assert.True(t, eth.TotalCollateral.Equal(decimal.NewFromInt(10)))
	assert.True(t, usdc.TotalDeposited.Equal(decimal.NewFromInt(50000)))
	assert.True(t, usdc.TotalBorrowed.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, int64(1), usdc.ActiveLendCount)
	assert.Equal(t, int64(1), usdc.ActiveBorrowCount)

	drifts, err := s.Reconcile(ctx)
	require.Nil(t, err)
	assert.Len(t, drifts, 0)

	// tamper with the stored rollup
	stored, err := l.Vaults().Find(ctx, core.TokenWrappedUSDC)
	require.Nil(t, err)
	stored.TotalDeposited = decimal.NewFromInt(1)
	require.Nil(t, l.Vaults().Save(ctx, stored))

	drifts, err = s.Reconcile(ctx)
	require.Nil(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, core.TokenWrappedUSDC, drifts[0].Recomputed.TokenType)
}
