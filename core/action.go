package core

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/fox-one/msgpack"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// ActionType requested operation
type ActionType string

const (
	// ActionTypeLend open a lending position with the payment
	ActionTypeLend ActionType = "lend"
	// ActionTypeWithdraw close a lending position
	ActionTypeWithdraw ActionType = "withdraw"
	// ActionTypeOpen open a borrowing position, the payment is the collateral
	ActionTypeOpen ActionType = "open"
	// ActionTypeBorrowMore top up a borrowing position
	ActionTypeBorrowMore ActionType = "borrow_more"
	// ActionTypeRepay repay a borrowing position with the payment
	ActionTypeRepay ActionType = "repay"
)

// ActionStatus inbox status
type ActionStatus int

const (
	// ActionStatusPending not applied yet
	ActionStatusPending ActionStatus = iota
	// ActionStatusDone applied
	ActionStatusDone
	// ActionStatusRejected rejected, the payment is refunded
	ActionStatusRejected
)

func (s ActionStatus) String() string {
	switch s {
	case ActionStatusDone:
		return "done"
	case ActionStatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Action ordered inbox entry supplied by the ledger
type Action struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID string `sql:"size:36;unique_index:action_trace_idx" json:"trace_id"`
	// authenticated sender of the payment
	Sender string `sql:"size:64" json:"sender"`
	// payment attached to the action
	TokenType TokenTag        `sql:"size:32" json:"token_type"`
	Amount    decimal.Decimal `sql:"type:decimal(32,8)" json:"amount"`

	Type            ActionType      `sql:"size:16" json:"type"`
	PositionID      uint64          `json:"position_id,omitempty"`
	BorrowTokenType TokenTag        `sql:"size:32" json:"borrow_token_type,omitempty"`
	BorrowAmount    decimal.Decimal `sql:"type:decimal(32,8)" json:"borrow_amount"`
	DurationMinutes uint64          `json:"duration_minutes,omitempty"`
	// decoded memo as json, kept for audit
	Memo types.JSONText `sql:"type:varchar(512)" json:"memo,omitempty"`

	Status    ActionStatus `sql:"default:0" json:"status"`
	ErrorCode int          `sql:"default:0" json:"error_code,omitempty"`
	// ledger time
	At        time.Time `json:"at"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Envelope caller identity and clock of the action
func (a *Action) Envelope() Envelope {
	return Envelope{
		Caller:  a.Sender,
		TraceID: a.TraceID,
		At:      a.At,
	}
}

// IActionStore action inbox store interface
type IActionStore interface {
	// Create ignores an action whose trace id already exists
	Create(ctx context.Context, action *Action) error
	// ListPending pending actions with id > from, in id order
	ListPending(ctx context.Context, from uint64, limit int) ([]*Action, error)
	Update(ctx context.Context, action *Action) error
}

// ActionMemo payload of an inbound payment memo
type ActionMemo struct {
	Type            ActionType `msgpack:"t" json:"type"`
	PositionID      uint64     `msgpack:"p,omitempty" json:"position_id,omitempty"`
	BorrowTokenType TokenTag   `msgpack:"bt,omitempty" json:"borrow_token_type,omitempty"`
	BorrowAmount    string     `msgpack:"ba,omitempty" json:"borrow_amount,omitempty"`
	DurationMinutes uint64     `msgpack:"d,omitempty" json:"duration_minutes,omitempty"`
}

// Encode msgpack then base64 url encoding
func (m ActionMemo) Encode() (string, error) {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeActionMemo decode a memo produced by ActionMemo.Encode
func DecodeActionMemo(memo string) (*ActionMemo, error) {
	data, err := base64.RawURLEncoding.DecodeString(memo)
	if err != nil {
		if data, err = base64.StdEncoding.DecodeString(memo); err != nil {
			return nil, err
		}
	}

	var m ActionMemo
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
