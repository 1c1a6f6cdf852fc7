package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BorrowingPosition collateral locked against a loan for a fixed duration
type BorrowingPosition struct {
	ID               uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID          string          `sql:"size:36;unique_index:borrowing_trace_idx" json:"trace_id"`
	Borrower         string          `sql:"size:64;index:borrowing_borrower_idx" json:"borrower"`
	CollateralType   TokenTag        `sql:"size:32" json:"collateral_type"`
	CollateralAmount decimal.Decimal `sql:"type:decimal(32,8)" json:"collateral_amount"`
	BorrowTokenType  TokenTag        `sql:"size:32" json:"borrow_token_type"`
	BorrowAmount     decimal.Decimal `sql:"type:decimal(32,8)" json:"borrow_amount"`
	// contract term, fixed at open
	DurationMinutes   uint64     `json:"duration_minutes"`
	OpenedAt          time.Time  `json:"opened_at"`
	RepaymentDeadline time.Time  `json:"repayment_deadline"`
	ClosedAt          *time.Time `json:"closed_at,omitempty"`
	IsActive          bool       `json:"is_active"`
	Version           int64      `sql:"default:0" json:"version"`
	CreatedAt         time.Time  `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time  `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DeadlineFor repayment deadline of a position opened at t
func DeadlineFor(t time.Time, durationMinutes uint64) time.Time {
	return t.Add(time.Duration(durationMinutes) * time.Minute)
}

// IsOverdue active and past the repayment deadline. Overdue is never stored.
func (p *BorrowingPosition) IsOverdue(now time.Time) bool {
	return p.IsActive && now.After(p.RepaymentDeadline)
}

// IBorrowingStore borrowing position store interface
type IBorrowingStore interface {
	// Create assign a fresh id and insert
	Create(ctx context.Context, position *BorrowingPosition) error
	// Find returns a position with ID 0 if not exists
	Find(ctx context.Context, id uint64) (*BorrowingPosition, error)
	// FindTrace returns a position with ID 0 if no position was opened by the trace
	FindTrace(ctx context.Context, trace string) (*BorrowingPosition, error)
	FindByBorrower(ctx context.Context, borrower string) ([]*BorrowingPosition, error)
	ListActive(ctx context.Context) ([]*BorrowingPosition, error)
	Update(ctx context.Context, position *BorrowingPosition) error
}

// OpenRequest open a borrowing position
type OpenRequest struct {
	CollateralType   TokenTag        `json:"collateral_type"`
	CollateralAmount decimal.Decimal `json:"collateral_amount"`
	BorrowTokenType  TokenTag        `json:"borrow_token_type"`
	BorrowAmount     decimal.Decimal `json:"borrow_amount"`
	DurationMinutes  uint64          `json:"duration_minutes"`
}

// Repayment result of a repay
type Repayment struct {
	Position       *BorrowingPosition `json:"position"`
	Interest       decimal.Decimal    `json:"interest"`
	TotalRepayment decimal.Decimal    `json:"total_repayment"`
	Refund         decimal.Decimal    `json:"refund"`
}
