package report

import (
	"context"
	"encoding/json"
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

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func env(caller string) core.Envelope {
	return core.Envelope{Caller: caller, TraceID: uuid.Must(uuid.NewV4()).String(), At: t0}
}

func seed(t *testing.T) (*memory.Ledger, *core.BorrowingPosition) {
	ctx := context.Background()
	l := memory.New()
	require.Nil(t, l.Prices().Save(ctx, &core.Price{TokenType: core.TokenWrappedETH, Price: d("2000")}))
	require.Nil(t, l.Prices().Save(ctx, &core.Price{TokenType: core.TokenWrappedUSDC, Price: d("1")}))

	m := position.New(l, core.DefaultProtocolParameters(), core.DefaultTokens())
	_, err := m.Lend(ctx, env("lender"), core.TokenWrappedUSDC, d("100000"))
	require.Nil(t, err)

	p, err := m.Open(ctx, env("borrower"), &core.OpenRequest{
		CollateralType:   core.TokenWrappedETH,
		CollateralAmount: d("10"),
		BorrowTokenType:  core.TokenWrappedUSDC,
		BorrowAmount:     d("15000"),
		DurationMinutes:  37,
	})
	require.Nil(t, err)
	return l, p
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	l, _ := seed(t)
	s := New(l, core.DefaultProtocolParameters(), core.DefaultTokens())

	snapshot, err := s.Snapshot(ctx, t0.Add(10*time.Minute))
	require.Nil(t, err)
	require.Len(t, snapshot.Vaults, 3)

	usdc := snapshot.Vaults[1]
	assert.Equal(t, core.TokenWrappedUSDC, usdc.TokenType)
	assert.Equal(t, "USDC", usdc.Symbol)
	assert.True(t, usdc.TotalDeposited.Equal(d("100000")))
	assert.True(t, usdc.TotalBorrowed.Equal(d("15000")))
	assert.True(t, usdc.AvailableLiquidity.Equal(d("85000")))
	assert.True(t, usdc.UtilizationRate.Equal(d("0.15")))
	assert.Equal(t, int64(1), usdc.NumberOfActiveBorrowPositions)
	assert.Equal(t, int64(1), usdc.NumberOfActiveLendingPositions)
	assert.NotZero(t, usdc.LastPriceUpdate)

	flow := snapshot.Vaults[2]
	assert.True(t, flow.Price.IsZero())
	assert.Zero(t, flow.LastPriceUpdate)

	stats := snapshot.ProtocolStats
	assert.True(t, stats.TotalValueLocked.Equal(d("100000")))
	assert.True(t, stats.TotalBorrowed.Equal(d("15000")))
	assert.Equal(t, int64(1), stats.ActiveLendingPositions)
	assert.Equal(t, int64(1), stats.ActiveBorrowingPositions)
	assert.Equal(t, int64(0), stats.OverduePositions)
	assert.Equal(t, int64(0), stats.UnhealthyPositions)

	// past the deadline, and collateral price drops
	require.Nil(t, l.Prices().Save(ctx, &core.Price{TokenType: core.TokenWrappedETH, Price: d("1500")}))
	snapshot, err = s.Snapshot(ctx, t0.Add(time.Hour))
	require.Nil(t, err)
	assert.Equal(t, int64(1), snapshot.ProtocolStats.OverduePositions)
	assert.Equal(t, int64(1), snapshot.ProtocolStats.UnhealthyPositions)
}

func TestSnapshotFieldNames(t *testing.T) {
	l, _ := seed(t)
	s := New(l, core.DefaultProtocolParameters(), core.DefaultTokens())

	snapshot, err := s.Snapshot(context.Background(), t0)
	require.Nil(t, err)

	data, err := json.Marshal(snapshot)
	require.Nil(t, err)

	var doc struct {
		ProtocolStats map[string]interface{}   `json:"protocolStats"`
		Vaults        []map[string]interface{} `json:"vaults"`
	}
	require.Nil(t, json.Unmarshal(data, &doc))

	for _, key := range []string{
		"totalValueLocked", "totalBorrowed", "activeLendingPositions",
		"activeBorrowingPositions", "unhealthyPositions", "overduePositions",
	} {
		assert.Contains(t, doc.ProtocolStats, key)
	}

	for _, key := range []string{
		"tokenType", "totalDeposited", "totalBorrowed", "availableLiquidity", "utilizationRate",
		"numberOfActiveBorrowPositions", "numberOfActiveLendingPositions", "price", "lastPriceUpdate",
	} {
		assert.Contains(t, doc.Vaults[0], key)
	}
}

func TestBorrowingDetail(t *testing.T) {
	ctx := context.Background()
	l, p := seed(t)
	s := New(l, core.DefaultProtocolParameters(), core.DefaultTokens())

	detail, err := s.BorrowingDetail(ctx, p, t0)
	require.Nil(t, err)
	assert.True(t, detail.CalculatedLTV.Equal(d("0.75")))
	assert.True(t, detail.OwedInterest.IsZero())
	assert.True(t, detail.TotalRepayment.Equal(d("15000")))
	assert.False(t, detail.Overdue)
	require.NotNil(t, detail.HealthFactor)
	assert.Equal(t, core.HealthStatusWarning, detail.HealthStatus)
	assert.True(t, detail.LiquidationThreshold.GreaterThan(detail.LTVCeiling))

	detail, err = s.BorrowingDetail(ctx, p, t0.Add(365*24*time.Hour))
	require.Nil(t, err)
	assert.True(t, detail.Overdue)
	assert.True(t, detail.OwedInterest.Equal(d("300")))

	orphan := *p
	orphan.CollateralType = core.TokenFlow
	detail, err = s.BorrowingDetail(ctx, &orphan, t0)
	require.Nil(t, err)
	assert.Equal(t, core.HealthStatusUnknown, detail.HealthStatus)
	assert.Nil(t, detail.HealthFactor)
}
