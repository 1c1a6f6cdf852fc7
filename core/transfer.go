package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Transfer pending outbound payment, executed by the cashier
type Transfer struct {
	ID         uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
	TraceID    string          `sql:"size:36;unique_index:trace_idx" json:"trace_id,omitempty"`
	OpponentID string          `sql:"size:64" json:"opponent_id,omitempty"`
	TokenType  TokenTag        `sql:"size:32" json:"token_type,omitempty"`
	AssetID    string          `sql:"size:36" json:"asset_id,omitempty"`
	Amount     decimal.Decimal `sql:"type:decimal(32,8)" json:"amount,omitempty"`
	Memo       string          `sql:"size:140" json:"memo,omitempty"`
}

// ITransferStore transfer store interface
type ITransferStore interface {
	Create(ctx context.Context, transfer *Transfer) error
	Delete(ctx context.Context, id ...uint64) error
	// Top oldest pending transfers
	Top(ctx context.Context, limit int) ([]*Transfer, error)
}
