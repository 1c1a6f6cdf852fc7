package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// VaultAggregate per token rollup of the active positions
type VaultAggregate struct {
	ID             uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TokenType      TokenTag        `sql:"size:32;unique_index:vault_token_idx" json:"token_type"`
	TotalDeposited decimal.Decimal `sql:"type:decimal(32,8)" json:"total_deposited"`
	TotalBorrowed  decimal.Decimal `sql:"type:decimal(32,8)" json:"total_borrowed"`
	// collateral in custody, denominated in this token
	TotalCollateral decimal.Decimal `sql:"type:decimal(32,8)" json:"total_collateral"`
	Reserves        decimal.Decimal `sql:"type:decimal(32,8)" json:"reserves"`
	// repaid interest not yet paid out as supply yield
	InterestPool      decimal.Decimal `sql:"type:decimal(32,8)" json:"interest_pool"`
	ActiveLendCount   int64           `json:"active_lend_count"`
	ActiveBorrowCount int64           `json:"active_borrow_count"`
	Version           int64           `sql:"default:0" json:"version"`
	CreatedAt         time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewVault empty vault of token
func NewVault(token TokenTag) *VaultAggregate {
	return &VaultAggregate{
		TokenType:       token,
		TotalDeposited:  decimal.Zero,
		TotalBorrowed:   decimal.Zero,
		TotalCollateral: decimal.Zero,
		Reserves:        decimal.Zero,
		InterestPool:    decimal.Zero,
	}
}

// AvailableLiquidity deposited - borrowed
func (v *VaultAggregate) AvailableLiquidity() decimal.Decimal {
	return v.TotalDeposited.Sub(v.TotalBorrowed)
}

// UtilizationRate borrowed / deposited, zero for an empty vault
func (v *VaultAggregate) UtilizationRate() decimal.Decimal {
	if !v.TotalDeposited.IsPositive() {
		return decimal.Zero
	}

	return v.TotalBorrowed.Div(v.TotalDeposited).Truncate(16)
}

// Equal compare the rollup figures, ignoring bookkeeping columns
func (v *VaultAggregate) Equal(o *VaultAggregate) bool {
	return v.TokenType == o.TokenType &&
		v.TotalDeposited.Equal(o.TotalDeposited) &&
		v.TotalBorrowed.Equal(o.TotalBorrowed) &&
		v.TotalCollateral.Equal(o.TotalCollateral) &&
		v.ActiveLendCount == o.ActiveLendCount &&
		v.ActiveBorrowCount == o.ActiveBorrowCount
}

// IVaultStore vault store interface
type IVaultStore interface {
	// Find returns an empty vault with ID 0 if not exists
	Find(ctx context.Context, token TokenTag) (*VaultAggregate, error)
	// Save create or update by token
	Save(ctx context.Context, vault *VaultAggregate) error
	List(ctx context.Context) ([]*VaultAggregate, error)
}
