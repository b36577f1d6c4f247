// Package mocks holds testify mocks for the storage interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"civicsync/models"
)

// IssueStore is a mock of store.IssueStore.
type IssueStore struct {
	mock.Mock
}

func (m *IssueStore) Append(ctx context.Context, issue models.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *IssueStore) All(ctx context.Context) ([]models.Issue, error) {
	args := m.Called(ctx)
	issues, _ := args.Get(0).([]models.Issue)
	return issues, args.Error(1)
}
