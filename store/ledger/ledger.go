package ledger

import (
	"context"

	"chrono/core"
	"chrono/store/action"
	"chrono/store/borrowing"
	"chrono/store/lending"
	"chrono/store/price"
	"chrono/store/transfer"
	"chrono/store/vault"

	"github.com/fox-one/pkg/store/db"
	// postgres dialect
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/lib/pq"
)

type ledger struct {
	db    *db.DB
	bound bool

	lendings   core.ILendingStore
	borrowings core.IBorrowingStore
	vaults     core.IVaultStore
	transfers  core.ITransferStore
	actions    core.IActionStore
	prices     core.IPriceStore
}

// New database backed ledger
func New(db *db.DB) core.ILedger {
	return bind(db, false)
}

func bind(db *db.DB, bound bool) *ledger {
	return &ledger{
		db:         db,
		bound:      bound,
		lendings:   lending.New(db),
		borrowings: borrowing.New(db),
		vaults:     vault.New(db),
		transfers:  transfer.New(db),
		actions:    action.New(db),
		prices:     price.New(db),
	}
}

func (l *ledger) Tx(ctx context.Context, fn func(tx core.ILedger) error) error {
	if l.bound {
		return fn(l)
	}

	return l.db.Tx(func(tx *db.DB) error {
		return fn(bind(tx, true))
	})
}

func (l *ledger) Lendings() core.ILendingStore     { return l.lendings }
func (l *ledger) Borrowings() core.IBorrowingStore { return l.borrowings }
func (l *ledger) Vaults() core.IVaultStore         { return l.vaults }
func (l *ledger) Transfers() core.ITransferStore   { return l.transfers }
func (l *ledger) Actions() core.IActionStore       { return l.actions }
func (l *ledger) Prices() core.IPriceStore         { return l.prices }
