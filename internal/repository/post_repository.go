package repository

import (
	"context"
	"fmt"

	"blogbootstrap/internal/models"

	"github.com/jmoiron/sqlx"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	query := `
		SELECT id, title, category, content, COALESCE(image_url, '') AS image_url, created_at
		FROM public.blog_posts
		ORDER BY created_at DESC
	`

	var posts []models.BlogPost
	err := r.DB.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("error listing blog posts: %w", err)
	}

	return posts, nil
}
