package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LendingPosition a deposit supplied by one lender
type LendingPosition struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:lending_trace_idx" json:"trace_id"`
	Lender    string          `sql:"size:64;index:lending_lender_idx" json:"lender"`
	TokenType TokenTag        `sql:"size:32;index:lending_token_idx" json:"token_type"`
	Amount    decimal.Decimal `sql:"type:decimal(32,8)" json:"amount"`
	OpenedAt  time.Time       `json:"opened_at"`
	ClosedAt  *time.Time      `json:"closed_at,omitempty"`
	IsActive  bool            `json:"is_active"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ILendingStore lending position store interface
type ILendingStore interface {
	// Create assign a fresh id and insert
	Create(ctx context.Context, position *LendingPosition) error
	// Find returns a position with ID 0 if not exists
	Find(ctx context.Context, id uint64) (*LendingPosition, error)
	// FindTrace returns a position with ID 0 if no position was opened by the trace
	FindTrace(ctx context.Context, trace string) (*LendingPosition, error)
	FindByLender(ctx context.Context, lender string) ([]*LendingPosition, error)
	ListActive(ctx context.Context) ([]*LendingPosition, error)
	Update(ctx context.Context, position *LendingPosition) error
}

// Withdrawal result of a withdraw
type Withdrawal struct {
	Position *LendingPosition `json:"position"`
	Yield    decimal.Decimal  `json:"yield"`
	Payout   decimal.Decimal  `json:"payout"`
}
