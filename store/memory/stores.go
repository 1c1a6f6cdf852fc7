package memory

import (
	"context"
	"errors"

	"chrono/core"

	"github.com/fox-one/pkg/store/db"
)

type lendingStore struct {
	l *Ledger
}

func (s *lendingStore) Create(ctx context.Context, position *core.LendingPosition) error {
	return s.l.write(ctx, func(t *tables) error {
		var existing *core.LendingPosition
		t.lendings.Ascend(func(item *core.LendingPosition) bool {
			if position.TraceID != "" && item.TraceID == position.TraceID {
				existing = item
				return false
			}
			return true
		})

		if existing != nil {
			*position = *existing
			return nil
		}

		t.seq.lending++
		position.ID = t.seq.lending
		position.CreatedAt = s.l.now()
		position.UpdatedAt = position.CreatedAt
		item := *position
		t.lendings.ReplaceOrInsert(&item)
		return nil
	})
}

func (s *lendingStore) Find(ctx context.Context, id uint64) (*core.LendingPosition, error) {
	position := &core.LendingPosition{}
	err := s.l.read(func(t *tables) error {
		if item, ok := t.lendings.Get(&core.LendingPosition{ID: id}); ok {
			*position = *item
		}
		return nil
	})

	return position, err
}

func (s *lendingStore) FindTrace(ctx context.Context, trace string) (*core.LendingPosition, error) {
	position := &core.LendingPosition{}
	err := s.l.read(func(t *tables) error {
		t.lendings.Ascend(func(item *core.LendingPosition) bool {
			if item.TraceID == trace {
				*position = *item
				return false
			}
			return true
		})
		return nil
	})

	return position, err
}

func (s *lendingStore) FindByLender(ctx context.Context, lender string) ([]*core.LendingPosition, error) {
	return s.filter(func(p *core.LendingPosition) bool { return p.Lender == lender })
}

func (s *lendingStore) ListActive(ctx context.Context) ([]*core.LendingPosition, error) {
	return s.filter(func(p *core.LendingPosition) bool { return p.IsActive })
}

func (s *lendingStore) filter(match func(p *core.LendingPosition) bool) ([]*core.LendingPosition, error) {
	var positions []*core.LendingPosition
	err := s.l.read(func(t *tables) error {
		t.lendings.Ascend(func(item *core.LendingPosition) bool {
			if match(item) {
				p := *item
				positions = append(positions, &p)
			}
			return true
		})
		return nil
	})

	return positions, err
}

func (s *lendingStore) Update(ctx context.Context, position *core.LendingPosition) error {
	return s.l.write(ctx, func(t *tables) error {
		current, ok := t.lendings.Get(position)
		if !ok || current.Version != position.Version {
			return db.ErrOptimisticLock
		}

		position.Version++
		position.UpdatedAt = s.l.now()
		item := *current
		item.IsActive = position.IsActive
		item.ClosedAt = position.ClosedAt
		item.Version = position.Version
		item.UpdatedAt = position.UpdatedAt
		t.lendings.ReplaceOrInsert(&item)
		return nil
	})
}

type borrowingStore struct {
	l *Ledger
}

func (s *borrowingStore) Create(ctx context.Context, position *core.BorrowingPosition) error {
	return s.l.write(ctx, func(t *tables) error {
		var existing *core.BorrowingPosition
		t.borrowings.Ascend(func(item *core.BorrowingPosition) bool {
			if position.TraceID != "" && item.TraceID == position.TraceID {
				existing = item
				return false
			}
			return true
		})

		if existing != nil {
			*position = *existing
			return nil
		}

		t.seq.borrowing++
		position.ID = t.seq.borrowing
		position.CreatedAt = s.l.now()
		position.UpdatedAt = position.CreatedAt
		item := *position
		t.borrowings.ReplaceOrInsert(&item)
		return nil
	})
}

func (s *borrowingStore) Find(ctx context.Context, id uint64) (*core.BorrowingPosition, error) {
	position := &core.BorrowingPosition{}
	err := s.l.read(func(t *tables) error {
		if item, ok := t.borrowings.Get(&core.BorrowingPosition{ID: id}); ok {
			*position = *item
		}
		return nil
	})

	return position, err
}

func (s *borrowingStore) FindTrace(ctx context.Context, trace string) (*core.BorrowingPosition, error) {
	position := &core.BorrowingPosition{}
	err := s.l.read(func(t *tables) error {
		t.borrowings.Ascend(func(item *core.BorrowingPosition) bool {
			if item.TraceID == trace {
				*position = *item
				return false
			}
			return true
		})
		return nil
	})

	return position, err
}

func (s *borrowingStore) FindByBorrower(ctx context.Context, borrower string) ([]*core.BorrowingPosition, error) {
	return s.filter(func(p *core.BorrowingPosition) bool { return p.Borrower == borrower })
}

func (s *borrowingStore) ListActive(ctx context.Context) ([]*core.BorrowingPosition, error) {
	return s.filter(func(p *core.BorrowingPosition) bool { return p.IsActive })
}

func (s *borrowingStore) filter(match func(p *core.BorrowingPosition) bool) ([]*core.BorrowingPosition, error) {
	var positions []*core.BorrowingPosition
	err := s.l.read(func(t *tables) error {
		t.borrowings.Ascend(func(item *core.BorrowingPosition) bool {
			if match(item) {
				p := *item
				positions = append(positions, &p)
			}
			return true
		})
		return nil
	})

	return positions, err
}

func (s *borrowingStore) Update(ctx context.Context, position *core.BorrowingPosition) error {
	return s.l.write(ctx, func(t *tables) error {
		current, ok := t.borrowings.Get(position)
		if !ok || current.Version != position.Version {
			return db.ErrOptimisticLock
		}

		position.Version++
		position.UpdatedAt = s.l.now()
		item := *current
		item.BorrowAmount = position.BorrowAmount
		item.IsActive = position.IsActive
		item.ClosedAt = position.ClosedAt
		item.Version = position.Version
		item.UpdatedAt = position.UpdatedAt
		t.borrowings.ReplaceOrInsert(&item)
		return nil
	})
}

type vaultStore struct {
	l *Ledger
}

func (s *vaultStore) Find(ctx context.Context, token core.TokenTag) (*core.VaultAggregate, error) {
	vault := core.NewVault(token)
	err := s.l.read(func(t *tables) error {
		if item, ok := t.vaults.Get(&core.VaultAggregate{TokenType: token}); ok {
			*vault = *item
		}
		return nil
	})

	return vault, err
}

func (s *vaultStore) Save(ctx context.Context, vault *core.VaultAggregate) error {
	return s.l.write(ctx, func(t *tables) error {
		current, ok := t.vaults.Get(vault)
		switch {
		case !ok && vault.ID == 0:
			t.seq.vault++
			vault.ID = t.seq.vault
			vault.CreatedAt = s.l.now()
		case !ok || current.ID != vault.ID || current.Version != vault.Version:
			return db.ErrOptimisticLock
		default:
			vault.Version++
		}

		vault.UpdatedAt = s.l.now()
		item := *vault
		t.vaults.ReplaceOrInsert(&item)
		return nil
	})
}

func (s *vaultStore) List(ctx context.Context) ([]*core.VaultAggregate, error) {
	var vaults []*core.VaultAggregate
	err := s.l.read(func(t *tables) error {
		t.vaults.Ascend(func(item *core.VaultAggregate) bool {
			v := *item
			vaults = append(vaults, &v)
			return true
		})
		return nil
	})

	return vaults, err
}

type transferStore struct {
	l *Ledger
}

func (s *transferStore) Create(ctx context.Context, transfer *core.Transfer) error {
	return s.l.write(ctx, func(t *tables) error {
		var existing *core.Transfer
		t.transfers.Ascend(func(item *core.Transfer) bool {
			if item.TraceID == transfer.TraceID {
				existing = item
				return false
			}
			return true
		})

		if existing != nil {
			*transfer = *existing
			return nil
		}

		t.seq.transfer++
		transfer.ID = t.seq.transfer
		transfer.CreatedAt = s.l.now()
		item := *transfer
		t.transfers.ReplaceOrInsert(&item)
		return nil
	})
}

func (s *transferStore) Delete(ctx context.Context, ids ...uint64) error {
	if len(ids) == 0 {
		return nil
	}

	return s.l.write(ctx, func(t *tables) error {
		for _, id := range ids {
			t.transfers.Delete(&core.Transfer{ID: id})
		}
		return nil
	})
}

func (s *transferStore) Top(ctx context.Context, limit int) ([]*core.Transfer, error) {
	if limit <= 0 {
		return nil, errors.New("invalid limit")
	}

	var transfers []*core.Transfer
	err := s.l.read(func(t *tables) error {
		t.transfers.Ascend(func(item *core.Transfer) bool {
			tr := *item
			transfers = append(transfers, &tr)
			return len(transfers) < limit
		})
		return nil
	})

	return transfers, err
}

type actionStore struct {
	l *Ledger
}

func (s *actionStore) Create(ctx context.Context, action *core.Action) error {
	return s.l.write(ctx, func(t *tables) error {
		var existing *core.Action
		t.actions.Ascend(func(item *core.Action) bool {
			if item.TraceID == action.TraceID {
				existing = item
				return false
			}
			return true
		})

		if existing != nil {
			*action = *existing
			return nil
		}

		t.seq.action++
		action.ID = t.seq.action
		action.CreatedAt = s.l.now()
		action.UpdatedAt = action.CreatedAt
		item := *action
		t.actions.ReplaceOrInsert(&item)
		return nil
	})
}

func (s *actionStore) ListPending(ctx context.Context, from uint64, limit int) ([]*core.Action, error) {
	var actions []*core.Action
	err := s.l.read(func(t *tables) error {
		t.actions.AscendGreaterOrEqual(&core.Action{ID: from + 1}, func(item *core.Action) bool {
			if item.Status == core.ActionStatusPending {
				a := *item
				actions = append(actions, &a)
			}
			return limit <= 0 || len(actions) < limit
		})
		return nil
	})

	return actions, err
}

func (s *actionStore) Update(ctx context.Context, action *core.Action) error {
	return s.l.write(ctx, func(t *tables) error {
		current, ok := t.actions.Get(action)
		if !ok {
			return db.ErrOptimisticLock
		}

		item := *current
		item.Status = action.Status
		item.ErrorCode = action.ErrorCode
		item.UpdatedAt = s.l.now()
		t.actions.ReplaceOrInsert(&item)
		return nil
	})
}

type priceStore struct {
	l *Ledger
}

func (s *priceStore) Save(ctx context.Context, price *core.Price) error {
	return s.l.write(ctx, func(t *tables) error {
		if current, ok := t.prices.Get(price); ok {
			price.ID = current.ID
			price.Version = current.Version + 1
			price.CreatedAt = current.CreatedAt
		} else {
			t.seq.price++
			price.ID = t.seq.price
			price.CreatedAt = s.l.now()
		}

		price.UpdatedAt = s.l.now()
		item := *price
		t.prices.ReplaceOrInsert(&item)
		return nil
	})
}

func (s *priceStore) Find(ctx context.Context, token core.TokenTag) (*core.Price, bool, error) {
	price := &core.Price{}
	found := false
	err := s.l.read(func(t *tables) error {
		if item, ok := t.prices.Get(&core.Price{TokenType: token}); ok {
			*price = *item
			found = true
		}
		return nil
	})

	return price, found, err
}

func (s *priceStore) List(ctx context.Context) ([]*core.Price, error) {
	var prices []*core.Price
	err := s.l.read(func(t *tables) error {
		t.prices.Ascend(func(item *core.Price) bool {
			p := *item
			prices = append(prices, &p)
			return true
		})
		return nil
	})

	return prices, err
}
