package service

import (
	"context"

	"blogbootstrap/internal/models"
	"blogbootstrap/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockSchemaRepository struct {
	mock.Mock
}

func (m *MockSchemaRepository) CreateTable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSchemaRepository) CreateIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSchemaRepository) CreateTitleUniqueIndex(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSchemaRepository) EnableRowLevelSecurity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSchemaRepository) CreatePolicy(ctx context.Context, policy repository.Policy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func (m *MockSchemaRepository) InsertSeedPosts(ctx context.Context, seeds []models.SeedPost) (int64, error) {
	args := m.Called(ctx, seeds)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSchemaRepository) CountPosts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogPost), args.Error(1)
}
