package action

import (
	"context"

	"chrono/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type actionStore struct {
	db *db.DB
}

// New new action inbox store
func New(db *db.DB) core.IActionStore {
	return &actionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Action{})
		if err := tx.AutoMigrate(core.Action{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_actions_status", "status").Error; err != nil {
			return err
		}

		return nil
	})
}

func pending(from uint64) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status=? and id > ?", core.ActionStatusPending, from)
	}
}

func (s *actionStore) Create(ctx context.Context, action *core.Action) error {
	return s.db.Update().Where("trace_id=?", action.TraceID).FirstOrCreate(action).Error
}

func (s *actionStore) ListPending(ctx context.Context, from uint64, limit int) ([]*core.Action, error) {
	var actions []*core.Action
	if err := s.db.View().Scopes(pending(from)).Order("id ASC").Limit(limit).Find(&actions).Error; err != nil {
		return nil, err
	}

	return actions, nil
}

func (s *actionStore) Update(ctx context.Context, action *core.Action) error {
	return s.db.Update().Model(action).Updates(map[string]interface{}{
		"status":     action.Status,
		"error_code": action.ErrorCode,
	}).Error
}
