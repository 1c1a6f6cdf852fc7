package price

import (
	"context"

	"chrono/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})

		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Save(ctx context.Context, price *core.Price) error {
	var current core.Price
	err := s.db.Update().Where("token_type=?", price.TokenType).First(&current).Error
	if gorm.IsRecordNotFoundError(err) {
		return s.db.Update().Create(price).Error
	} else if err != nil {
		return err
	}

	price.ID = current.ID
	price.Version = current.Version + 1
	return s.db.Update().Model(core.Price{}).Where("id=? and version=?", current.ID, current.Version).Updates(map[string]interface{}{
		"price":   price.Price,
		"content": price.Content,
		"version": price.Version,
	}).Error
}

func (s *priceStore) Find(ctx context.Context, token core.TokenTag) (*core.Price, bool, error) {
	var price core.Price
	if e := s.db.View().Where("token_type=?", token).First(&price).Error; e != nil {
		if gorm.IsRecordNotFoundError(e) {
			return &price, false, nil
		}
		return nil, false, e
	}

	return &price, true, nil
}

func (s *priceStore) List(ctx context.Context) ([]*core.Price, error) {
	var prices []*core.Price
	if e := s.db.View().Order("token_type").Find(&prices).Error; e != nil {
		return nil, e
	}

	return prices, nil
}
