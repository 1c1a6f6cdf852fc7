package params

import (
	"context"
	"time"

	"chrono/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

const cacheKey = "params"

// Cache cache the parameters for exp
func Cache(store core.IParameterStore, exp time.Duration) core.IParameterStore {
	return &cacheParameterStore{
		IParameterStore: store,
		cache:           gcache.New(1).LRU().Build(),
		sf:              &singleflight.Group{},
		exp:             exp,
	}
}

type cacheParameterStore struct {
	core.IParameterStore
	cache gcache.Cache
	sf    *singleflight.Group
	exp   time.Duration
}

func (s *cacheParameterStore) Get(ctx context.Context) (*core.ProtocolParameters, error) {
	if v, err := s.cache.Get(cacheKey); err == nil {
		if params, ok := v.(core.ProtocolParameters); ok {
			return &params, nil
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		params, err := s.IParameterStore.Get(ctx)
		if err != nil {
			return nil, err
		}

		_ = s.cache.SetWithExpire(cacheKey, *params, s.exp)
		return *params, nil
	})
	if err != nil {
		return nil, err
	}

	params := v.(core.ProtocolParameters)
	return &params, nil
}

func (s *cacheParameterStore) Save(ctx context.Context, params *core.ProtocolParameters) error {
	if err := s.IParameterStore.Save(ctx, params); err != nil {
		return err
	}

	s.cache.Remove(cacheKey)
	return nil
}
