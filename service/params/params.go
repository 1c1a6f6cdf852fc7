package params

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"chrono/core"

	"github.com/fox-one/pkg/property"
)

const propertyKey = "protocol_parameters"

// New property backed parameter store. defaults is returned until the
// first amendment is saved.
func New(props property.Store, defaults core.ProtocolParameters) core.IParameterStore {
	return &propertyParameterStore{
		props:    props,
		defaults: defaults,
	}
}

type propertyParameterStore struct {
	props    property.Store
	defaults core.ProtocolParameters
}

func (s *propertyParameterStore) Get(ctx context.Context) (*core.ProtocolParameters, error) {
	v, err := s.props.Get(ctx, propertyKey)
	if err != nil {
		return nil, err
	}

	return Decode(v.String(), s.defaults)
}

func (s *propertyParameterStore) Save(ctx context.Context, params *core.ProtocolParameters) error {
	data, err := Encode(params)
	if err != nil {
		return err
	}

	return s.props.Save(ctx, propertyKey, data)
}

// Encode validate and marshal
func Encode(params *core.ProtocolParameters) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Decode unmarshal on top of defaults, an empty value yields the defaults
func Decode(raw string, defaults core.ProtocolParameters) (*core.ProtocolParameters, error) {
	params := defaults
	if raw == "" {
		return &params, nil
	}

	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("decode protocol parameters: %w", err)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &params, nil
}

// Static in memory parameter store
func Static(params core.ProtocolParameters) core.IParameterStore {
	return &staticParameterStore{params: params}
}

type staticParameterStore struct {
	mux    sync.RWMutex
	params core.ProtocolParameters
}

func (s *staticParameterStore) Get(_ context.Context) (*core.ProtocolParameters, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	params := s.params
	return &params, nil
}

func (s *staticParameterStore) Save(_ context.Context, params *core.ProtocolParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.mux.Lock()
	s.params = *params
	s.mux.Unlock()
	return nil
}
