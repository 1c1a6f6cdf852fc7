package syncer

import (
	"context"
	"encoding/json"
	"errors"

	"chrono/core"
	"chrono/worker"

	"github.com/fatih/structs"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

const (
	checkpointKey = "sync_checkpoint"
	limit         = 500
)

// Syncer turn inbound wallet payments into pending inbox actions
type Syncer struct {
	worker.TickWorker
	ledger     core.ILedger
	walletz    core.IWalletService
	properties property.Store
	tokens     core.Tokens
}

// New new sync worker
func New(
	ledger core.ILedger,
	walletz core.IWalletService,
	properties property.Store,
	tokens core.Tokens,
) *Syncer {
	return &Syncer{
		ledger:     ledger,
		walletz:    walletz,
		properties: properties,
		tokens:     tokens,
	}
}

// Run run worker
func (w *Syncer) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "syncer")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, w.run)
}

func (w *Syncer) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.properties.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	snapshots, cursor, err := w.walletz.PullSnapshots(ctx, v.String(), limit)
	if err != nil {
		log.WithError(err).Errorln("walletz.PullSnapshots")
		return err
	}

	for _, snapshot := range snapshots {
		action, ok := w.action(ctx, snapshot)
		if !ok {
			continue
		}

		if err := w.ledger.Actions().Create(ctx, action); err != nil {
			log.WithError(err).Errorln("actions.Create")
			return err
		}
	}

	if err := w.properties.Save(ctx, checkpointKey, cursor); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	if len(snapshots) < limit {
		return errors.New("EOF")
	}

	return nil
}

// action inbox entry of the payment, memos that cannot be decoded become
// actions without a type and are refunded by the payee
func (w *Syncer) action(ctx context.Context, snapshot *core.Snapshot) (*core.Action, bool) {
	log := logger.FromContext(ctx).WithField("snapshot", snapshot.SnapshotID)

	if _, err := uuid.FromString(snapshot.OpponentID); err != nil {
		log.Debugln("skip payment without a user opponent")
		return nil, false
	}

	token, ok := w.tokens.FindByAsset(snapshot.AssetID)
	if !ok {
		log.WithField("asset", snapshot.AssetID).Infoln("skip payment of unsupported asset")
		return nil, false
	}

	action := &core.Action{
		TraceID:   snapshot.SnapshotID,
		Sender:    snapshot.OpponentID,
		TokenType: token.Tag,
		Amount:    snapshot.Amount,
		At:        snapshot.CreatedAt,
	}

	memo, err := core.DecodeActionMemo(snapshot.Memo)
	if err != nil {
		log.WithError(err).Infoln("decode memo")
		return action, true
	}

	log.WithFields(structs.Map(memo)).Debugln("memo decoded")

	if memo.BorrowAmount != "" {
		amount, err := decimal.NewFromString(memo.BorrowAmount)
		if err != nil {
			// left untyped, rejected as invalid parameters
			log.WithError(err).Infoln("parse borrow amount")
			return action, true
		}

		action.BorrowAmount = amount
	}

	action.Type = memo.Type
	action.PositionID = memo.PositionID
	action.BorrowTokenType = memo.BorrowTokenType
	action.DurationMinutes = memo.DurationMinutes

	if data, err := json.Marshal(memo); err == nil {
		action.Memo = data
	}

	return action, true
}
