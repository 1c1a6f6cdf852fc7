package cashier

import (
	"context"
	"errors"

	"chrono/core"
	"chrono/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Cashier cashier
//
// pay out the pending transfers of the ledger outbox
type Cashier struct {
	worker.TickWorker
	transfers core.ITransferStore
	walletz   core.IWalletService
	cfg       Config
}

type Config struct {
	Batch    int   `json:"batch" valid:"required"`
	Capacity int64 `json:"capacity" valid:"required"`
}

// New new cashier
func New(
	transfers core.ITransferStore,
	walletz core.IWalletService,
	cfg Config,
) *Cashier {
	cashier := Cashier{
		transfers: transfers,
		walletz:   walletz,
		cfg:       cfg,
	}

	return &cashier
}

// Run run worker
func (w *Cashier) Run(ctx context.Context) error {
	f := w.sync
	if w.cfg.Capacity > 1 {
		f = w.parallel(w.cfg.Capacity)
	}

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx, f)
	})
}

func (w *Cashier) onWork(ctx context.Context, f func(context.Context, []*core.Transfer) error) error {
	log := logger.FromContext(ctx).WithField("worker", "cashier")

	transfers, err := w.transfers.Top(ctx, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("transfers.Top")
		return err
	}

	if len(transfers) == 0 {
		return errors.New("EOF")
	}

	return f(ctx, transfers)
}

func (w *Cashier) sync(ctx context.Context, transfers []*core.Transfer) error {
	for _, transfer := range transfers {
		if err := w.handleTransfer(ctx, transfer); err != nil {
			return err
		}
	}

	return nil
}

func (w *Cashier) parallel(capacity int64) func(ctx context.Context, transfers []*core.Transfer) error {
	sem := semaphore.NewWeighted(capacity)

	return func(ctx context.Context, transfers []*core.Transfer) error {
		g := errgroup.Group{}

		for idx := range transfers {
			transfer := transfers[idx]

			if err := sem.Acquire(ctx, 1); err != nil {
				return g.Wait()
			}

			g.Go(func() error {
				defer sem.Release(1)
				return w.handleTransfer(ctx, transfer)
			})
		}

		return g.Wait()
	}
}

// handleTransfer the wallet dedupes by trace id, a transfer paid but not
// deleted is harmless on retry
func (w *Cashier) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	if _, err := w.walletz.HandleTransfer(ctx, transfer); err != nil {
		log.WithError(err).Errorln("walletz.HandleTransfer")
		return err
	}

	if err := w.transfers.Delete(ctx, transfer.ID); err != nil {
		log.WithError(err).Errorln("transfers.Delete")
		return err
	}

	return nil
}
