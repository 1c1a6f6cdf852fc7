// Package memory in process ledger backed by copy-on-write btrees.
// Every Tx works on a lazy clone of the committed trees and swaps it in
// on success, so a failed Tx leaves no trace.
package memory

import (
	"context"
	"sync"
	"time"

	"chrono/core"

	"github.com/google/btree"
)

const defaultTreeDegree = 8

type tables struct {
	lendings   *btree.BTreeG[*core.LendingPosition]
	borrowings *btree.BTreeG[*core.BorrowingPosition]
	vaults     *btree.BTreeG[*core.VaultAggregate]
	transfers  *btree.BTreeG[*core.Transfer]
	actions    *btree.BTreeG[*core.Action]
	prices     *btree.BTreeG[*core.Price]

	seq sequences
}

type sequences struct {
	lending, borrowing, vault, transfer, action, price uint64
}

func newTables() *tables {
	return &tables{
		lendings: btree.NewG(defaultTreeDegree, func(a, b *core.LendingPosition) bool {
			return a.ID < b.ID
		}),
		borrowings: btree.NewG(defaultTreeDegree, func(a, b *core.BorrowingPosition) bool {
			return a.ID < b.ID
		}),
		vaults: btree.NewG(defaultTreeDegree, func(a, b *core.VaultAggregate) bool {
			return a.TokenType < b.TokenType
		}),
		transfers: btree.NewG(defaultTreeDegree, func(a, b *core.Transfer) bool {
			return a.ID < b.ID
		}),
		actions: btree.NewG(defaultTreeDegree, func(a, b *core.Action) bool {
			return a.ID < b.ID
		}),
		prices: btree.NewG(defaultTreeDegree, func(a, b *core.Price) bool {
			return a.TokenType < b.TokenType
		}),
	}
}

func (t *tables) clone() *tables {
	return &tables{
		lendings:   t.lendings.Clone(),
		borrowings: t.borrowings.Clone(),
		vaults:     t.vaults.Clone(),
		transfers:  t.transfers.Clone(),
		actions:    t.actions.Clone(),
		prices:     t.prices.Clone(),
		seq:        t.seq,
	}
}

type shared struct {
	// serializes writers
	mu sync.Mutex
	// guards state
	rw    sync.RWMutex
	state *tables
	now   func() time.Time
}

// Ledger in memory core.ILedger
type Ledger struct {
	*shared
	// draft of the running Tx, nil outside a Tx
	tx *tables
}

// New empty ledger
func New() *Ledger {
	return &Ledger{
		shared: &shared{
			state: newTables(),
			now:   time.Now,
		},
	}
}

// Tx implements core.ILedger
func (l *Ledger) Tx(ctx context.Context, fn func(tx core.ILedger) error) error {
	if l.tx != nil {
		return fn(l)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.rw.RLock()
	draft := l.state.clone()
	l.rw.RUnlock()

	if err := fn(&Ledger{shared: l.shared, tx: draft}); err != nil {
		return err
	}

	l.rw.Lock()
	l.state = draft
	l.rw.Unlock()
	return nil
}

func (l *Ledger) read(fn func(t *tables) error) error {
	if l.tx != nil {
		return fn(l.tx)
	}

	l.rw.RLock()
	t := l.state
	l.rw.RUnlock()
	return fn(t)
}

func (l *Ledger) write(ctx context.Context, fn func(t *tables) error) error {
	return l.Tx(ctx, func(tx core.ILedger) error {
		return fn(tx.(*Ledger).tx)
	})
}

func (l *Ledger) Lendings() core.ILendingStore     { return &lendingStore{l: l} }
func (l *Ledger) Borrowings() core.IBorrowingStore { return &borrowingStore{l: l} }
func (l *Ledger) Vaults() core.IVaultStore         { return &vaultStore{l: l} }
func (l *Ledger) Transfers() core.ITransferStore   { return &transferStore{l: l} }
func (l *Ledger) Actions() core.IActionStore       { return &actionStore{l: l} }
func (l *Ledger) Prices() core.IPriceStore         { return &priceStore{l: l} }
