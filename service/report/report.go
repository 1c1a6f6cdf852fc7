package report

import (
	"context"
	"time"

	"chrono/core"
	"chrono/internal/curve"
	"chrono/internal/health"
	"chrono/internal/interest"

	"github.com/shopspring/decimal"
)

// Service derived read models over the ledger
type Service struct {
	ledger   core.ILedger
	tokens   core.Tokens
	curve    *curve.Engine
	interest *interest.Calculator
	health   *health.Evaluator
}

// New new report service
func New(ledger core.ILedger, params core.ProtocolParameters, tokens core.Tokens) *Service {
	engine := curve.New(params)
	return &Service{
		ledger:   ledger,
		tokens:   tokens,
		curve:    engine,
		interest: interest.NewCalculator(params),
		health:   health.New(engine),
	}
}

var _ core.IReportService = (*Service)(nil)

type priceBook map[core.TokenTag]*core.Price

func (b priceBook) get(token core.TokenTag) (decimal.Decimal, bool) {
	p, ok := b[token]
	if !ok || !p.Price.IsPositive() {
		return decimal.Zero, false
	}

	return p.Price, true
}

func (s *Service) prices(ctx context.Context) (priceBook, error) {
	prices, err := s.ledger.Prices().List(ctx)
	if err != nil {
		return nil, err
	}

	book := make(priceBook, len(prices))
	for _, p := range prices {
		book[p.TokenType] = p
	}

	return book, nil
}

// Snapshot protocol snapshot at now
func (s *Service) Snapshot(ctx context.Context, now time.Time) (*core.ProtocolSnapshot, error) {
	book, err := s.prices(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &core.ProtocolSnapshot{
		Timestamp:  now.UTC(),
		LastUpdate: now.UnixMilli(),
		ProtocolStats: core.ProtocolStats{
			TotalValueLocked: decimal.Zero,
			TotalBorrowed:    decimal.Zero,
		},
	}

	stats := &snapshot.ProtocolStats
	for _, token := range s.tokens {
		vault, err := s.ledger.Vaults().Find(ctx, token.Tag)
		if err != nil {
			return nil, err
		}

		price, _ := book.get(token.Tag)
		info := &core.VaultInfo{
			TokenType:                      token.Tag,
			TotalDeposited:                 vault.TotalDeposited,
			TotalBorrowed:                  vault.TotalBorrowed,
			AvailableLiquidity:             vault.AvailableLiquidity(),
			UtilizationRate:                vault.UtilizationRate(),
			NumberOfActiveBorrowPositions:  vault.ActiveBorrowCount,
			NumberOfActiveLendingPositions: vault.ActiveLendCount,
			Price:                          price,
			TotalDepositedUSD:              vault.TotalDeposited.Mul(price),
			TotalBorrowedUSD:               vault.TotalBorrowed.Mul(price),
			AvailableLiquidityUSD:          vault.AvailableLiquidity().Mul(price),
			Symbol:                         token.Symbol,
			Name:                           token.Name,
		}

		if p, ok := book[token.Tag]; ok {
			info.LastPriceUpdate = p.UpdatedAt.Unix()
		}

		stats.TotalValueLocked = stats.TotalValueLocked.Add(info.TotalDepositedUSD)
		stats.TotalBorrowed = stats.TotalBorrowed.Add(info.TotalBorrowedUSD)
		snapshot.Vaults = append(snapshot.Vaults, info)
	}

	lendings, err := s.ledger.Lendings().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActiveLendingPositions = int64(len(lendings))

	borrowings, err := s.ledger.Borrowings().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActiveBorrowingPositions = int64(len(borrowings))

	for _, p := range borrowings {
		if p.IsOverdue(now) {
			stats.OverduePositions++
		}

		if r, ok := s.evaluate(p, book); ok && r.Unhealthy() {
			stats.UnhealthyPositions++
		}
	}

	return snapshot, nil
}

func (s *Service) evaluate(position *core.BorrowingPosition, book priceBook) (health.Result, bool) {
	collateral, ok := book.get(position.CollateralType)
	if !ok {
		return health.Result{}, false
	}

	borrow, ok := book.get(position.BorrowTokenType)
	if !ok {
		return health.Result{}, false
	}

	return s.health.Evaluate(position, health.Prices{Collateral: collateral, Borrow: borrow}), true
}

// BorrowingDetail figures of a borrowing position computed at now
func (s *Service) BorrowingDetail(ctx context.Context, position *core.BorrowingPosition, now time.Time) (*core.BorrowingDetail, error) {
	book, err := s.prices(ctx)
	if err != nil {
		return nil, err
	}

	detail := &core.BorrowingDetail{
		BorrowingPosition:    position,
		LTVCeiling:           s.curve.LTV(position.DurationMinutes),
		LiquidationThreshold: s.curve.LT(position.DurationMinutes),
		HealthStatus:         core.HealthStatusUnknown,
		Overdue:              position.IsOverdue(now),
		OwedInterest:         decimal.Zero,
		TotalRepayment:       position.BorrowAmount,
	}

	if position.IsActive {
		detail.OwedInterest = s.interest.OwedInterest(position, now)
		detail.TotalRepayment = s.interest.TotalRepayment(position, now)
	}

	if r, ok := s.evaluate(position, book); ok {
		detail.HealthFactor = r.Factor
		detail.HealthStatus = r.Status
		if r.CollateralValue.IsPositive() {
			detail.CalculatedLTV = r.DebtValue.Div(r.CollateralValue).Truncate(curve.MaxPricision)
		}
	}

	return detail, nil
}
