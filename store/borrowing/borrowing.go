package borrowing

import (
	"context"

	"chrono/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type borrowingStore struct {
	db *db.DB
}

// New new borrowing store
func New(db *db.DB) core.IBorrowingStore {
	return &borrowingStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.BorrowingPosition{})
		if err := tx.AutoMigrate(core.BorrowingPosition{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_borrowing_active_deadline", "is_active", "repayment_deadline").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *borrowingStore) Create(ctx context.Context, position *core.BorrowingPosition) error {
	return s.db.Update().Where("trace_id=?", position.TraceID).FirstOrCreate(position).Error
}

func (s *borrowingStore) Find(ctx context.Context, id uint64) (*core.BorrowingPosition, error) {
	var position core.BorrowingPosition
	if err := s.db.View().Where("id=?", id).First(&position).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.BorrowingPosition{}, nil
		}

		return nil, err
	}

	return &position, nil
}

func (s *borrowingStore) FindTrace(ctx context.Context, trace string) (*core.BorrowingPosition, error) {
	var position core.BorrowingPosition
	if err := s.db.View().Where("trace_id=?", trace).First(&position).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.BorrowingPosition{}, nil
		}

		return nil, err
	}

	return &position, nil
}

func (s *borrowingStore) FindByBorrower(ctx context.Context, borrower string) ([]*core.BorrowingPosition, error) {
	var positions []*core.BorrowingPosition
	if err := s.db.View().Where("borrower=?", borrower).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *borrowingStore) ListActive(ctx context.Context) ([]*core.BorrowingPosition, error) {
	var positions []*core.BorrowingPosition
	if err := s.db.View().Where("is_active=?", true).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *borrowingStore) Update(ctx context.Context, position *core.BorrowingPosition) error {
	version := position.Version
	position.Version++

	tx := s.db.Update().Model(position).Where("version=?", version).Updates(map[string]interface{}{
		"borrow_amount": position.BorrowAmount,
		"is_active":     position.IsActive,
		"closed_at":     position.ClosedAt,
		"version":       position.Version,
	})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
