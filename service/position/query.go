package position

import (
	"context"

	"chrono/core"
)

// LendingPosition find lending position by id
func (m *Manager) LendingPosition(ctx context.Context, id uint64) (*core.LendingPosition, bool, error) {
	position, err := m.ledger.Lendings().Find(ctx, id)
	if err != nil {
		return nil, false, err
	}

	return position, position.ID > 0, nil
}

// BorrowingPosition find borrowing position by id
func (m *Manager) BorrowingPosition(ctx context.Context, id uint64) (*core.BorrowingPosition, bool, error) {
	position, err := m.ledger.Borrowings().Find(ctx, id)
	if err != nil {
		return nil, false, err
	}

	return position, position.ID > 0, nil
}

// LendingsOf lending positions of the owner, closed ones included
func (m *Manager) LendingsOf(ctx context.Context, owner string) ([]*core.LendingPosition, error) {
	return m.ledger.Lendings().FindByLender(ctx, owner)
}

// BorrowingsOf borrowing positions of the owner, closed ones included
func (m *Manager) BorrowingsOf(ctx context.Context, owner string) ([]*core.BorrowingPosition, error) {
	return m.ledger.Borrowings().FindByBorrower(ctx, owner)
}

// Vault rollup of a supported token
func (m *Manager) Vault(ctx context.Context, tag core.TokenTag) (*core.VaultAggregate, error) {
	if _, err := m.token(tag); err != nil {
		return nil, err
	}

	return m.ledger.Vaults().Find(ctx, tag)
}

// Vaults rollups of every supported token, in token order of the config
func (m *Manager) Vaults(ctx context.Context) ([]*core.VaultAggregate, error) {
	vaults := make([]*core.VaultAggregate, 0, len(m.tokens))
	for _, token := range m.tokens {
		vault, err := m.ledger.Vaults().Find(ctx, token.Tag)
		if err != nil {
			return nil, err
		}

		vaults = append(vaults, vault)
	}

	return vaults, nil
}
