package reporter

import (
	"context"
	"encoding/json"
	"time"

	"chrono/core"
	"chrono/service/report"
	"chrono/service/vault"
	"chrono/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/google/renameio/v2"
	"github.com/robfig/cron/v3"
)

const defaultSchedule = "@every 1m"

// Reporter export the protocol snapshot and check the vault rollups
type Reporter struct {
	worker.BaseJob
	ledger core.ILedger
	params core.IParameterStore
	tokens core.Tokens
	vaults *vault.Service
	output string
	now    func() time.Time
}

// New new reporter job
func New(location string, cfg core.Report, ledger core.ILedger, params core.IParameterStore, tokens core.Tokens) *Reporter {
	job := Reporter{
		ledger: ledger,
		params: params,
		tokens: tokens,
		vaults: vault.New(ledger, tokens),
		output: cfg.Output,
		now:    time.Now,
	}

	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.UTC
	}

	schedule := cfg.Schedule
	if schedule == "" {
		schedule = defaultSchedule
	}

	job.Cron = cron.New(cron.WithLocation(l))
	if _, err := job.Cron.AddFunc(schedule, job.Run); err != nil {
		panic(err)
	}

	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (job *Reporter) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "reporter")
	ctx = logger.WithContext(ctx, log)

	if err := job.export(ctx); err != nil {
		log.WithError(err).Errorln("export snapshot")
		return err
	}

	drifts, err := job.vaults.Reconcile(ctx)
	if err != nil {
		log.WithError(err).Errorln("vaults.Reconcile")
		return err
	}

	for _, d := range drifts {
		log.WithField("token", d.Stored.TokenType).
			WithField("stored_deposited", d.Stored.TotalDeposited).
			WithField("deposited", d.Recomputed.TotalDeposited).
			WithField("stored_borrowed", d.Stored.TotalBorrowed).
			WithField("borrowed", d.Recomputed.TotalBorrowed).
			WithField("stored_collateral", d.Stored.TotalCollateral).
			WithField("collateral", d.Recomputed.TotalCollateral).
			Errorln("vault rollup drift")
	}

	return nil
}

func (job *Reporter) export(ctx context.Context) error {
	params, err := job.params.Get(ctx)
	if err != nil {
		return err
	}

	snapshot, err := report.New(job.ledger, *params, job.tokens).Snapshot(ctx, job.now())
	if err != nil {
		return err
	}

	if job.output == "" {
		logger.FromContext(ctx).WithField("tvl", snapshot.ProtocolStats.TotalValueLocked).
			WithField("borrowed", snapshot.ProtocolStats.TotalBorrowed).
			WithField("unhealthy", snapshot.ProtocolStats.UnhealthyPositions).
			WithField("overdue", snapshot.ProtocolStats.OverduePositions).
			Infoln("snapshot")
		return nil
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	return renameio.WriteFile(job.output, data, 0644)
}
