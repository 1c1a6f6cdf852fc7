package priceoracle

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"chrono/core"
	"chrono/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker pull token prices into the ledger
type Worker struct {
	worker.TickWorker
	tokens             core.Tokens
	prices             core.IPriceStore
	PriceOracleService core.IPriceOracleService
}

// New new price oracle worker
func New(tokens core.Tokens, prices core.IPriceStore, priceSrv core.IPriceOracleService, interval time.Duration) *Worker {
	job := Worker{
		TickWorker:         worker.TickWorker{Delay: interval, ErrDelay: interval},
		tokens:             tokens,
		prices:             prices,
		PriceOracleService: priceSrv,
	}

	return &job
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	wg := sync.WaitGroup{}
	for idx := range w.tokens {
		wg.Add(1)
		go func(token *core.Token) {
			defer wg.Done()

			ticker, e := w.PriceOracleService.PullPriceTicker(ctx, token)
			if e != nil {
				log.WithError(e).Errorln("pull price ticker error:", token.Symbol)
				return
			}

			if !ticker.Price.IsPositive() {
				log.Errorln("invalid ticker price:", ticker.Symbol, ":", ticker.Price)
				return
			}

			if e := w.save(ctx, token, ticker); e != nil {
				log.WithError(e).Errorln("prices.Save:", token.Symbol)
			}
		}(&w.tokens[idx])
	}

	wg.Wait()

	return nil
}

func (w *Worker) save(ctx context.Context, token *core.Token, ticker *core.PriceTicker) error {
	content, err := json.Marshal([]*core.PriceTicker{ticker})
	if err != nil {
		return err
	}

	return w.prices.Save(ctx, &core.Price{
		TokenType: token.Tag,
		Price:     ticker.Price,
		Content:   content,
	})
}
