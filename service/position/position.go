package position

import (
	"context"
	"errors"

	"chrono/core"
	"chrono/internal/curve"
	"chrono/internal/interest"
	"chrono/pkg/number"

	"github.com/fox-one/pkg/logger"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

const (
	opLend       = "lend"
	opWithdraw   = "withdraw"
	opOpen       = "open"
	opBorrowMore = "borrow_more"
	opRepay      = "repay"
)

// Manager lending and borrowing position lifecycle.
// Every mutation validates first and writes all of its effects,
// vault rollups and outbound transfers included, in one ledger Tx.
type Manager struct {
	ledger   core.ILedger
	params   core.ProtocolParameters
	tokens   core.Tokens
	curve    *curve.Engine
	interest *interest.Calculator
	yield    core.IYieldService
	metrics  *operationMetrics
}

// Option manager option
type Option func(m *Manager)

// WithYield replace the supply yield collaborator
func WithYield(yield core.IYieldService) Option {
	return func(m *Manager) {
		m.yield = yield
	}
}

// New new position manager
func New(ledger core.ILedger, params core.ProtocolParameters, tokens core.Tokens, opts ...Option) *Manager {
	engine := curve.New(params)
	m := &Manager{
		ledger:   ledger,
		params:   params,
		tokens:   tokens,
		curve:    engine,
		interest: interest.NewCalculator(params),
		yield:    interest.NewYieldService(engine),
		metrics:  metrics(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// With manager bound to tx
func (m *Manager) With(tx core.ILedger) *Manager {
	c := *m
	c.ledger = tx
	return &c
}

// Params parameters the manager was built with
func (m *Manager) Params() core.ProtocolParameters {
	return m.params
}

// Curve shared curve engine
func (m *Manager) Curve() *curve.Engine {
	return m.curve
}

// Interest shared accrual calculator
func (m *Manager) Interest() *interest.Calculator {
	return m.interest
}

// Tokens supported tokens
func (m *Manager) Tokens() core.Tokens {
	return m.tokens
}

func (m *Manager) token(tag core.TokenTag) (core.Token, error) {
	token, ok := m.tokens.Find(tag)
	if !ok {
		return token, core.ErrUnsupportedToken
	}

	return token, nil
}

// amount truncate to ledger precision and check the range
func amount(v decimal.Decimal) (decimal.Decimal, error) {
	v = number.Amount(v)
	if !v.IsPositive() {
		return v, core.ErrZeroAmount
	}

	if !number.Representable(v) {
		return v, core.ErrAmountOverflow
	}

	return v, nil
}

// sum a + b, rejecting results above the fixed point maximum
func sum(a, b decimal.Decimal) (decimal.Decimal, error) {
	s := a.Add(b)
	if !number.Representable(s) {
		return s, core.ErrAmountOverflow
	}

	return s, nil
}

func (m *Manager) price(ctx context.Context, tx core.ILedger, token core.TokenTag) (decimal.Decimal, error) {
	price, found, err := tx.Prices().Find(ctx, token)
	if err != nil {
		return decimal.Zero, err
	}

	if !found || !price.Price.IsPositive() {
		return decimal.Zero, core.ErrInvalidPrice
	}

	return price.Price, nil
}

func (m *Manager) transfer(ctx context.Context, tx core.ILedger, env core.Envelope, purpose string, token core.Token, value decimal.Decimal) error {
	if !value.IsPositive() {
		return nil
	}

	return tx.Transfers().Create(ctx, &core.Transfer{
		TraceID:    foxuuid.Modify(env.TraceID, purpose),
		OpponentID: env.Caller,
		TokenType:  token.Tag,
		AssetID:    token.AssetID,
		Amount:     value,
		Memo:       purpose,
	})
}

// done log and count the outcome of an operation
func (m *Manager) done(ctx context.Context, op string, env core.Envelope, id uint64, err error) {
	m.metrics.observe(op, err)

	log := logger.FromContext(ctx).WithField("operation", op).
		WithField("caller", env.Caller).
		WithField("trace", env.TraceID)
	if id > 0 {
		log = log.WithField("position", id)
	}

	var code core.ErrorCode
	switch {
	case err == nil:
		log.Infoln("applied")
	case errors.As(err, &code):
		log.WithField("code", code.String()).Infoln("rejected:", code.Message())
	default:
		log.WithError(err).Errorln("failed")
	}
}

var _ core.IPositionService = (*Manager)(nil)
