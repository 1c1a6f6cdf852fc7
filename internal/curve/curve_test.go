package curve

import (
	"math"
	"sync"
	"testing"

	"chrono/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestLTV(t *testing.T) {
	e := New(core.DefaultProtocolParameters())

	t.Run("capped at zero", func(t *testing.T) {
		assert.True(t, e.LTV(0).Equal(d("0.9")), e.LTV(0).String())
	})

	t.Run("strictly decreasing", func(t *testing.T) {
		prev := e.LTV(0)
		for m := uint64(1); m <= 1000; m++ {
			cur := e.LTV(m)
			require.True(t, cur.LessThan(prev), "ltv(%d)=%s ltv(%d)=%s", m, cur, m-1, prev)
			prev = cur
		}
	})

	t.Run("tends to base", func(t *testing.T) {
		diff := e.LTV(200000).Sub(d("0.75")).Abs()
		assert.True(t, diff.LessThan(d("0.000000000001")), diff.String())
	})

	t.Run("never above cap", func(t *testing.T) {
		p := core.DefaultProtocolParameters()
		p.LTVAmplitude = d("0.2")
		p.LTAmplitude = d("0.2")
		e := New(p)
		assert.True(t, e.LTV(0).Equal(d("0.9")))
		assert.True(t, e.LTV(1).Equal(d("0.9")))
	})
}

func TestLT(t *testing.T) {
	e := New(core.DefaultProtocolParameters())

	assert.True(t, e.LT(0).Equal(d("0.95")), e.LT(0).String())

	prev := e.LT(0)
	for m := uint64(1); m <= 1000; m++ {
		cur := e.LT(m)
		require.True(t, cur.LessThan(prev), "lt(%d)", m)
		require.True(t, cur.GreaterThan(e.LTV(m)), "lt(%d) <= ltv(%d)", m, m)
		prev = cur
	}

	diff := e.LT(200000).Sub(d("0.77")).Abs()
	assert.True(t, diff.LessThan(d("0.000000000001")), diff.String())
	assert.True(t, e.LT(200000).GreaterThan(e.LTV(200000)))
}

func TestDecayLongDurations(t *testing.T) {
	e := New(core.DefaultProtocolParameters())

	assert.True(t, e.Decay(core.DurationLimitMinutes).IsZero())
	assert.True(t, e.LT(core.DurationLimitMinutes).Equal(d("0.77")))
	assert.True(t, e.LT(math.MaxUint64).Equal(d("0.77")), e.LT(math.MaxUint64).String())
	assert.True(t, e.LTV(math.MaxUint64).Equal(d("0.75")))

	// below the cutoff the tail is still evaluated
	p := core.DefaultProtocolParameters()
	p.DecayConstant = d("0.001")
	e = New(p)
	assert.True(t, e.Decay(30000).IsPositive())
	assert.True(t, e.Decay(40000).IsZero())
}

func TestCurvesConcurrently(t *testing.T) {
	e := New(core.DefaultProtocolParameters())
	want := make([]decimal.Decimal, 16)
	for i := range want {
		want[i] = e.LT(uint64(1000 * (i + 1)))
	}

	var wg sync.WaitGroup
	got := make([]decimal.Decimal, len(want))
	for i := range want {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = New(core.DefaultProtocolParameters()).LT(uint64(1000 * (i + 1)))
		}(i)
	}
	wg.Wait()

	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "lt(%d)", 1000*(i+1))
	}
}

func TestBorrowAPY(t *testing.T) {
	e := New(core.DefaultProtocolParameters())

	for u, apy := range map[string]string{
		"0":   "0.02",
		"0.5": "0.06",
		"0.8": "0.084",
		"0.9": "0.184",
		"1":   "0.284",
	} {
		assert.True(t, e.BorrowAPY(d(u)).Equal(d(apy)), "borrow apy at %s: %s", u, e.BorrowAPY(d(u)))
	}

	t.Run("continuous at kink", func(t *testing.T) {
		eps := d("0.000000001")
		kink := d("0.8")
		below := e.BorrowAPY(kink.Sub(eps))
		above := e.BorrowAPY(kink.Add(eps))
		assert.True(t, above.Sub(below).LessThan(d("0.00000001")))
	})

	t.Run("non decreasing", func(t *testing.T) {
		prev := e.BorrowAPY(decimal.Zero)
		for i := int64(1); i <= 100; i++ {
			cur := e.BorrowAPY(decimal.New(i, -2))
			require.True(t, cur.GreaterThanOrEqual(prev))
			prev = cur
		}
	})
}

func TestSupplyAPY(t *testing.T) {
	e := New(core.DefaultProtocolParameters())

	assert.True(t, e.SupplyAPY(d("0.5")).Equal(d("0.027")), e.SupplyAPY(d("0.5")).String())
	assert.True(t, e.SupplyAPY(decimal.Zero).IsZero())

	for i := int64(0); i <= 100; i++ {
		u := decimal.New(i, -2)
		require.True(t, e.SupplyAPY(u).LessThanOrEqual(e.BorrowAPY(u)), "u=%s", u)
	}
}

func TestPoints(t *testing.T) {
	e := New(core.DefaultProtocolParameters())

	points := e.Points()
	require.Len(t, points, 37)
	assert.Equal(t, uint64(1), points[0].Minutes)
	assert.Equal(t, uint64(37), points[36].Minutes)
	assert.True(t, points[36].LTV.Equal(e.LTV(37)))
}
