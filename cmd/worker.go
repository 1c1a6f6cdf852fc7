package cmd

import (
	"time"

	"chrono/worker"
	"chrono/worker/cashier"
	"chrono/worker/payee"
	"chrono/worker/priceoracle"
	"chrono/worker/reporter"
	"chrono/worker/syncer"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "chrono job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		dapp := provideDApp()
		ledger := provideLedger(database)
		propertyStore := providePropertyStore(database)
		paramStore := provideParameterStore(propertyStore)
		walletService := provideWalletService(dapp)

		batch, _ := cmd.Flags().GetInt("cashier.batch")
		capacity, _ := cmd.Flags().GetInt64("cashier.capacity")
		priceInterval, _ := cmd.Flags().GetDuration("price.interval")

		p := payee.New(ledger, propertyStore, paramStore, cfg.Tokens)
		p.Delay = cfg.App.Interval

		workers := []worker.Worker{
			p,
			syncer.New(ledger, walletService, propertyStore, cfg.Tokens),
			cashier.New(ledger.Transfers(), walletService, cashier.Config{
				Batch:    batch,
				Capacity: capacity,
			}),
			priceoracle.New(cfg.Tokens, ledger.Prices(), providePriceService(), priceInterval),
		}

		job := reporter.New(cfg.App.Location, cfg.Report, ledger, paramStore, cfg.Tokens)
		job.Start()
		defer job.Stop()

		g, ctx := errgroup.WithContext(ctx)
		for idx := range workers {
			w := workers[idx]
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Infoln("worker stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().Int("cashier.batch", 100, "batch of transfers paid per round")
	workerCmd.Flags().Int64("cashier.capacity", 1, "concurrent transfers of the cashier")
	workerCmd.Flags().Duration("price.interval", time.Minute, "price pull interval")
}
