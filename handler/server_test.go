package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chrono/core"
	"chrono/handler/codes"
	"chrono/service/params"
	"chrono/service/position"
	"chrono/store/memory"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Data json.RawMessage `json:"data"`
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newServer(t *testing.T) (*httptest.Server, *core.BorrowingPosition) {
	ctx := context.Background()
	l := memory.New()
	require.Nil(t, l.Prices().Save(ctx, &core.Price{TokenType: core.TokenWrappedETH, Price: d("2000")}))
	require.Nil(t, l.Prices().Save(ctx, &core.Price{TokenType: core.TokenWrappedUSDC, Price: d("1")}))

	protocol := core.DefaultProtocolParameters()
	tokens := core.DefaultTokens()
	m := position.New(l, protocol, tokens)

	env := func(caller string) core.Envelope {
		return core.Envelope{Caller: caller, TraceID: uuid.Must(uuid.NewV4()).String(), At: time.Now()}
	}

	_, err := m.Lend(ctx, env("lender"), core.TokenWrappedUSDC, d("100000"))
	require.Nil(t, err)

	p, err := m.Open(ctx, env("borrower"), &core.OpenRequest{
		CollateralType:   core.TokenWrappedETH,
		CollateralAmount: d("10"),
		BorrowTokenType:  core.TokenWrappedUSDC,
		BorrowAmount:     d("10000"),
		DurationMinutes:  10,
	})
	require.Nil(t, err)

	s := New(l, params.Static(protocol), tokens, "test")
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, p
}

func get(t *testing.T, ts *httptest.Server, path string) (int, *response) {
	resp, err := http.Get(ts.URL + path)
	require.Nil(t, err)
	defer resp.Body.Close()

	var body response
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, &body
}

func TestVaults(t *testing.T) {
	ts, _ := newServer(t)

	status, body := get(t, ts, "/api/vaults")
	require.Equal(t, http.StatusOK, status)

	var vaults []map[string]interface{}
	require.Nil(t, json.Unmarshal(body.Data, &vaults))
	require.Len(t, vaults, 3)
	assert.Equal(t, "WrappedUSDC", vaults[1]["tokenType"])
	assert.Equal(t, "0.1", vaults[1]["utilizationRate"])
	assert.Contains(t, vaults[1], "borrowAPY")

	status, body = get(t, ts, "/api/vaults/WrappedETH")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"symbol":"WETH"`)

	status, body = get(t, ts, "/api/vaults/DOGE")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(core.ErrUnsupportedToken), body.Code)
}

func TestPositions(t *testing.T) {
	ts, p := newServer(t)

	status, body := get(t, ts, "/api/borrowings/1")
	require.Equal(t, http.StatusOK, status)

	var detail core.BorrowingDetail
	require.Nil(t, json.Unmarshal(body.Data, &detail))
	assert.Equal(t, p.ID, detail.ID)
	assert.Equal(t, core.HealthStatusSafe, detail.HealthStatus)
	assert.True(t, detail.CalculatedLTV.Equal(d("0.5")))

	status, body = get(t, ts, "/api/borrowings/99")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int(core.ErrNotFound), body.Code)

	status, body = get(t, ts, "/api/borrowings?owner=borrower")
	require.Equal(t, http.StatusOK, status)
	var borrowings []*core.BorrowingPosition
	require.Nil(t, json.Unmarshal(body.Data, &borrowings))
	assert.Len(t, borrowings, 1)

	status, body = get(t, ts, "/api/lendings")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, codes.InvalidArguments, body.Code)

	status, body = get(t, ts, "/api/lendings/1")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"accrued_yield"`)

	status, _ = get(t, ts, "/api/lendings/abc")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCurves(t *testing.T) {
	ts, _ := newServer(t)

	status, body := get(t, ts, "/api/curves")
	require.Equal(t, http.StatusOK, status)

	var curves struct {
		Points []map[string]interface{} `json:"points"`
		Rates  map[string]interface{}   `json:"rates"`
	}
	require.Nil(t, json.Unmarshal(body.Data, &curves))
	assert.Len(t, curves.Points, 37)
	assert.Nil(t, curves.Rates)

	status, body = get(t, ts, "/api/curves?duration=37&utilization=0.5")
	require.Equal(t, http.StatusOK, status)
	require.Nil(t, json.Unmarshal(body.Data, &curves))
	assert.Len(t, curves.Points, 1)
	assert.Equal(t, "0.06", curves.Rates["borrow_apy"])

	status, body = get(t, ts, "/api/curves?duration=38")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(core.ErrMaxDurationExceeded), body.Code)
}

func TestMemos(t *testing.T) {
	ts, _ := newServer(t)

	payload, _ := json.Marshal(core.ActionMemo{Type: core.ActionTypeRepay, PositionID: 3})
	resp, err := http.Post(ts.URL+"/api/memos", "application/json", bytes.NewReader(payload))
	require.Nil(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body response
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))

	var view struct {
		Memo string `json:"memo"`
	}
	require.Nil(t, json.Unmarshal(body.Data, &view))

	memo, err := core.DecodeActionMemo(view.Memo)
	require.Nil(t, err)
	assert.Equal(t, core.ActionTypeRepay, memo.Type)
	assert.Equal(t, uint64(3), memo.PositionID)

	payload, _ = json.Marshal(core.ActionMemo{Type: "liquidate"})
	resp2, err := http.Post(ts.URL+"/api/memos", "application/json", bytes.NewReader(payload))
	require.Nil(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	ts, _ := newServer(t)

	resp, err := http.Get(ts.URL + "/hc")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
