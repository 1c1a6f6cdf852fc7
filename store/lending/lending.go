package lending

import (
	"context"

	"chrono/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type lendingStore struct {
	db *db.DB
}

// New new lending store
func New(db *db.DB) core.ILendingStore {
	return &lendingStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.LendingPosition{})
		if err := tx.AutoMigrate(core.LendingPosition{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *lendingStore) Create(ctx context.Context, position *core.LendingPosition) error {
	return s.db.Update().Where("trace_id=?", position.TraceID).FirstOrCreate(position).Error
}

func (s *lendingStore) Find(ctx context.Context, id uint64) (*core.LendingPosition, error) {
	var position core.LendingPosition
	if err := s.db.View().Where("id=?", id).First(&position).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.LendingPosition{}, nil
		}

		return nil, err
	}

	return &position, nil
}

func (s *lendingStore) FindTrace(ctx context.Context, trace string) (*core.LendingPosition, error) {
	var position core.LendingPosition
	if err := s.db.View().Where("trace_id=?", trace).First(&position).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.LendingPosition{}, nil
		}

		return nil, err
	}

	return &position, nil
}

func (s *lendingStore) FindByLender(ctx context.Context, lender string) ([]*core.LendingPosition, error) {
	var positions []*core.LendingPosition
	if err := s.db.View().Where("lender=?", lender).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *lendingStore) ListActive(ctx context.Context) ([]*core.LendingPosition, error) {
	var positions []*core.LendingPosition
	if err := s.db.View().Where("is_active=?", true).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *lendingStore) Update(ctx context.Context, position *core.LendingPosition) error {
	version := position.Version
	position.Version++

	tx := s.db.Update().Model(position).Where("version=?", version).Updates(map[string]interface{}{
		"is_active": position.IsActive,
		"closed_at": position.ClosedAt,
		"version":   position.Version,
	})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
