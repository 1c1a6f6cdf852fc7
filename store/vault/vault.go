package vault

import (
	"context"

	"chrono/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type vaultStore struct {
	db *db.DB
}

// New new vault store
func New(db *db.DB) core.IVaultStore {
	return &vaultStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.VaultAggregate{})
		if err := tx.AutoMigrate(core.VaultAggregate{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *vaultStore) Find(ctx context.Context, token core.TokenTag) (*core.VaultAggregate, error) {
	var vault core.VaultAggregate
	if err := s.db.View().Where("token_type=?", token).First(&vault).Error; err != nil {
		if store.IsErrNotFound(err) {
			return core.NewVault(token), nil
		}

		return nil, err
	}

	return &vault, nil
}

func (s *vaultStore) Save(ctx context.Context, vault *core.VaultAggregate) error {
	if vault.ID == 0 {
		return s.db.Update().Create(vault).Error
	}

	version := vault.Version
	vault.Version++

	tx := s.db.Update().Model(vault).Where("version=?", version).Updates(map[string]interface{}{
		"total_deposited":     vault.TotalDeposited,
		"total_borrowed":      vault.TotalBorrowed,
		"total_collateral":    vault.TotalCollateral,
		"reserves":            vault.Reserves,
		"interest_pool":       vault.InterestPool,
		"active_lend_count":   vault.ActiveLendCount,
		"active_borrow_count": vault.ActiveBorrowCount,
		"version":             vault.Version,
	})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *vaultStore) List(ctx context.Context) ([]*core.VaultAggregate, error) {
	var vaults []*core.VaultAggregate
	if err := s.db.View().Order("id").Find(&vaults).Error; err != nil {
		return nil, err
	}

	return vaults, nil
}
