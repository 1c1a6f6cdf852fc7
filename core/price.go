package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// Price latest usd price of a token
type Price struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TokenType TokenTag        `sql:"size:32;unique_index:idx_prices" json:"token_type,omitempty"`
	Price     decimal.Decimal `sql:"type:decimal(32,8)" json:"price,omitempty"`
	// raw ticker payload
	Content   types.JSONText `sql:"type:varchar(1024)" json:"content,omitempty"`
	Version   int64          `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// PriceTicker price ticker
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceStore price store interface
type IPriceStore interface {
	// Save create or replace the latest price of the token
	Save(ctx context.Context, price *Price) error
	// Find returns false if no price was ever recorded
	Find(ctx context.Context, token TokenTag) (*Price, bool, error)
	List(ctx context.Context) ([]*Price, error)
}

// IPriceOracleService pull prices from the external ticker
type IPriceOracleService interface {
	PullPriceTicker(ctx context.Context, token *Token) (*PriceTicker, error)
}
