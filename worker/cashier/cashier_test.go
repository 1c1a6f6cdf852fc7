package cashier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chrono/core"
	"chrono/store/memory"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWallet struct {
	mu     sync.Mutex
	paid   []string
	failOn string
}

func (f *fakeWallet) HandleTransfer(_ context.Context, transfer *core.Transfer) (*core.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if transfer.TraceID == f.failOn {
		return nil, errors.New("network")
	}

	f.paid = append(f.paid, transfer.TraceID)
	return &core.Snapshot{TraceID: transfer.TraceID}, nil
}

func (f *fakeWallet) PullSnapshots(context.Context, string, int) ([]*core.Snapshot, string, error) {
	return nil, "", nil
}

func outbox(t *testing.T, l *memory.Ledger, n int) []string {
	var traces []string
	for i := 0; i < n; i++ {
		trace := uuid.Must(uuid.NewV4()).String()
		require.Nil(t, l.Transfers().Create(context.Background(), &core.Transfer{
			TraceID:    trace,
			OpponentID: "user",
			TokenType:  core.TokenWrappedUSDC,
			Amount:     decimal.NewFromInt(int64(i + 1)),
		}))
		traces = append(traces, trace)
	}

	return traces
}

func TestCashierSync(t *testing.T) {
	ctx := context.Background()
	l := memory.New()
	traces := outbox(t, l, 3)

	wallet := &fakeWallet{failOn: traces[1]}
	w := New(l.Transfers(), wallet, Config{Batch: 10, Capacity: 1})

	assert.NotNil(t, w.onWork(ctx, w.sync))
	assert.Equal(t, traces[:1], wallet.paid)

	left, err := l.Transfers().Top(ctx, 10)
	require.Nil(t, err)
	assert.Len(t, left, 2)

	wallet.failOn = ""
	assert.Nil(t, w.onWork(ctx, w.sync))
	assert.Equal(t, traces, wallet.paid)
	assert.EqualError(t, w.onWork(ctx, w.sync), "EOF")
}

func TestCashierParallel(t *testing.T) {
	ctx := context.Background()
	l := memory.New()
	traces := outbox(t, l, 20)

	wallet := &fakeWallet{}
	w := New(l.Transfers(), wallet, Config{Batch: 50, Capacity: 4})

	assert.Nil(t, w.onWork(ctx, w.parallel(4)))
	assert.ElementsMatch(t, traces, wallet.paid)

	left, err := l.Transfers().Top(ctx, 50)
	require.Nil(t, err)
	assert.Len(t, left, 0)
}
