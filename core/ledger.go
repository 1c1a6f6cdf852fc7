package core

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Envelope ledger supplied context of a mutation.
// Caller and At are never asserted by the caller itself.
type Envelope struct {
	Caller  string    `json:"caller"`
	TraceID string    `json:"trace_id"`
	At      time.Time `json:"at"`
}

// Validate the trace id must be an uuid, outbound transfer ids derive from it
func (e Envelope) Validate() error {
	if _, err := uuid.FromString(e.TraceID); err != nil {
		return ErrInvalidParameters
	}

	return nil
}

// ILedger durable store of positions, vaults and the inbox/outbox.
// All writes of one mutation go through a single Tx.
type ILedger interface {
	// Tx run fn atomically, any error discards every write of fn.
	// Calling Tx on a ledger already bound to a transaction runs fn in it.
	Tx(ctx context.Context, fn func(tx ILedger) error) error

	Lendings() ILendingStore
	Borrowings() IBorrowingStore
	Vaults() IVaultStore
	Transfers() ITransferStore
	Actions() IActionStore
	Prices() IPriceStore
}

// IYieldService supply yield owed to a lending position on withdraw
type IYieldService interface {
	Yield(ctx context.Context, position *LendingPosition, vault *VaultAggregate, now time.Time) (decimal.Decimal, error)
}

// IPositionService mutation interface of the position lifecycle
type IPositionService interface {
	Lend(ctx context.Context, env Envelope, token TokenTag, amount decimal.Decimal) (*LendingPosition, error)
	Withdraw(ctx context.Context, env Envelope, id uint64) (*Withdrawal, error)
	Open(ctx context.Context, env Envelope, req *OpenRequest) (*BorrowingPosition, error)
	BorrowMore(ctx context.Context, env Envelope, id uint64, amount decimal.Decimal) (*BorrowingPosition, error)
	Repay(ctx context.Context, env Envelope, id uint64, supplied decimal.Decimal) (*Repayment, error)
}
