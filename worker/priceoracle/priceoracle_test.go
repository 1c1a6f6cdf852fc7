package priceoracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"chrono/core"
	"chrono/store/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOracle map[string]string

func (f fakeOracle) PullPriceTicker(_ context.Context, token *core.Token) (*core.PriceTicker, error) {
	price, ok := f[token.Symbol]
	if !ok {
		return nil, errors.New("not found")
	}

	return &core.PriceTicker{Provider: "test", Symbol: token.Symbol, Price: decimal.RequireFromString(price)}, nil
}

func TestOnWork(t *testing.T) {
	ctx := context.Background()
	l := memory.New()
	w := New(core.DefaultTokens(), l.Prices(), fakeOracle{
		"WETH": "2000.5",
		"USDC": "1",
		"FLOW": "0",
	}, time.Minute)

	require.Nil(t, w.onWork(ctx))

	prices, err := l.Prices().List(ctx)
	require.Nil(t, err)
	assert.Len(t, prices, 2)

	eth, found, err := l.Prices().Find(ctx, core.TokenWrappedETH)
	require.Nil(t, err)
	require.True(t, found)
	assert.True(t, eth.Price.Equal(decimal.RequireFromString("2000.5")))
	assert.Contains(t, eth.Content.String(), `"test"`)

	_, found, err = l.Prices().Find(ctx, core.TokenFlow)
	require.Nil(t, err)
	assert.False(t, found)
}
