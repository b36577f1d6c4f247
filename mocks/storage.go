package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Storage is a mock of kvstore.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *Storage) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *Storage) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
