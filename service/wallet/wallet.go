package wallet

import (
	"context"
	"time"

	"chrono/core"

	"github.com/fox-one/mixin-sdk-go"
)

// New new wallet service
func New(mainWallet *core.Wallet) core.IWalletService {
	return &walletService{
		MainWallet: mainWallet,
	}
}

type walletService struct {
	MainWallet *core.Wallet
}

func (s *walletService) HandleTransfer(ctx context.Context, transfer *core.Transfer) (*core.Snapshot, error) {
	input := &mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: transfer.OpponentID,
		Amount:     transfer.Amount,
		TraceID:    transfer.TraceID,
		Memo:       transfer.Memo,
	}

	snapshot, err := s.MainWallet.Client.Transfer(ctx, input, s.MainWallet.Pin)
	if err != nil {
		return nil, err
	}

	return convertSnapshot(snapshot), nil
}

// PullSnapshots inbound snapshots after cursor, cursor is a RFC3339Nano time
func (s *walletService) PullSnapshots(ctx context.Context, cursor string, limit int) ([]*core.Snapshot, string, error) {
	offset, err := time.Parse(time.RFC3339Nano, cursor)
	if err != nil {
		offset = time.Now().UTC()
	}

	snapshots, err := s.MainWallet.Client.ReadNetworkSnapshots(ctx, "", offset, "ASC", limit)
	if err != nil {
		return nil, "", err
	}

	out := make([]*core.Snapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		offset = snapshot.CreatedAt

		// only payments received by the dapp
		if snapshot.UserID == "" || !snapshot.Amount.IsPositive() {
			continue
		}

		out = append(out, convertSnapshot(snapshot))
	}

	return out, offset.Format(time.RFC3339Nano), nil
}

func convertSnapshot(snapshot *mixin.Snapshot) *core.Snapshot {
	return &core.Snapshot{
		SnapshotID: snapshot.SnapshotID,
		TraceID:    snapshot.TraceID,
		UserID:     snapshot.UserID,
		OpponentID: snapshot.OpponentID,
		AssetID:    snapshot.AssetID,
		Amount:     snapshot.Amount,
		Memo:       snapshot.Memo,
		CreatedAt:  snapshot.CreatedAt,
	}
}
