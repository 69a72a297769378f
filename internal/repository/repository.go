package repository

import (
	"context"

	"blogbootstrap/internal/models"

	"github.com/jmoiron/sqlx"
)

type SchemaRepository interface {
	CreateTable(ctx context.Context) error
	CreateIndexes(ctx context.Context) error
	CreateTitleUniqueIndex(ctx context.Context) error
	EnableRowLevelSecurity(ctx context.Context) error
	CreatePolicy(ctx context.Context, policy Policy) error
	InsertSeedPosts(ctx context.Context, seeds []models.SeedPost) (int64, error)
	CountPosts(ctx context.Context) (int, error)
}

type PostRepository interface {
	ListAll(ctx context.Context) ([]models.BlogPost, error)
}

type Repository struct {
	Schema SchemaRepository
	Post   PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Schema: NewSchemaRepository(db),
		Post:   NewPostRepository(db),
	}
}
