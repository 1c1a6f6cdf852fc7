package core

import (
	"context"
	"time"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/shopspring/decimal"
)

// Wallet wallet
type Wallet struct {
	Client *mixin.Client `json:"client"`
	Pin    string        `json:"pin"`
}

// Snapshot inbound or outbound wallet movement
type Snapshot struct {
	SnapshotID string          `json:"snapshot_id,omitempty"`
	TraceID    string          `json:"trace_id,omitempty"`
	UserID     string          `json:"user_id,omitempty"`
	OpponentID string          `json:"opponent_id,omitempty"`
	AssetID    string          `json:"asset_id,omitempty"`
	Amount     decimal.Decimal `json:"amount,omitempty"`
	Memo       string          `json:"memo,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
}

// IWalletService wallet service interface
type IWalletService interface {
	HandleTransfer(ctx context.Context, transfer *Transfer) (*Snapshot, error)
	PullSnapshots(ctx context.Context, cursor string, limit int) ([]*Snapshot, string, error)
}
