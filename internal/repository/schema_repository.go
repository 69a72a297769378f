package repository

import (
	"context"
	"fmt"
	"strings"

	"blogbootstrap/internal/models"

	"github.com/jmoiron/sqlx"
)

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS public.blog_posts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			category TEXT NOT NULL CHECK (category IN ('economic', 'tech', 'newArrivals')),
			content TEXT NOT NULL,
			image_url TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT NOW()
		)`

	createCategoryIndexSQL  = `CREATE INDEX IF NOT EXISTS idx_blog_posts_category ON public.blog_posts(category)`
	createCreatedAtIndexSQL = `CREATE INDEX IF NOT EXISTS idx_blog_posts_created_at ON public.blog_posts(created_at DESC)`

	// Separate from CREATE TABLE so it also lands on tables created without it.
	createTitleIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS idx_blog_posts_title ON public.blog_posts(title)`

	enableRLSSQL = `ALTER TABLE public.blog_posts ENABLE ROW LEVEL SECURITY`

	countPostsSQL = `SELECT COUNT(*) FROM public.blog_posts`
)

// Policy is one row-level-security policy on blog_posts.
type Policy struct {
	Name      string
	Operation string
	SQL       string
}

// Policies returns the select, insert, update and delete policies in that order.
func Policies() []Policy {
	return []Policy{
		{
			Name:      "Allow public read access to blog posts",
			Operation: "SELECT",
			SQL: `CREATE POLICY "Allow public read access to blog posts" ON public.blog_posts
				FOR SELECT USING (true)`,
		},
		{
			Name:      "Allow authenticated users to insert blog posts",
			Operation: "INSERT",
			SQL: `CREATE POLICY "Allow authenticated users to insert blog posts" ON public.blog_posts
				FOR INSERT WITH CHECK (auth.role() = 'authenticated')`,
		},
		{
			Name:      "Allow authenticated users to update blog posts",
			Operation: "UPDATE",
			SQL: `CREATE POLICY "Allow authenticated users to update blog posts" ON public.blog_posts
				FOR UPDATE USING (auth.role() = 'authenticated')`,
		},
		{
			Name:      "Allow authenticated users to delete blog posts",
			Operation: "DELETE",
			SQL: `CREATE POLICY "Allow authenticated users to delete blog posts" ON public.blog_posts
				FOR DELETE USING (auth.role() = 'authenticated')`,
		},
	}
}

type schemaRepository struct {
	db *sqlx.DB
}

func NewSchemaRepository(db *sqlx.DB) SchemaRepository {
	return &schemaRepository{db: db}
}

func (r *schemaRepository) CreateTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("error creating blog_posts table: %w", err)
	}
	return nil
}

func (r *schemaRepository) CreateIndexes(ctx context.Context) error {
	for _, stmt := range []string{createCategoryIndexSQL, createCreatedAtIndexSQL} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creating index: %w", err)
		}
	}
	return nil
}

// CreateTitleUniqueIndex fails with a unique violation when the table
// already holds repeated titles.
func (r *schemaRepository) CreateTitleUniqueIndex(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTitleIndexSQL); err != nil {
		return fmt.Errorf("error creating unique title index: %w", err)
	}
	return nil
}

func (r *schemaRepository) EnableRowLevelSecurity(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, enableRLSSQL); err != nil {
		return fmt.Errorf("error enabling row level security: %w", err)
	}
	return nil
}

func (r *schemaRepository) CreatePolicy(ctx context.Context, policy Policy) error {
	if _, err := r.db.ExecContext(ctx, policy.SQL); err != nil {
		return fmt.Errorf("error creating policy %q: %w", policy.Name, err)
	}
	return nil
}

// InsertSeedPosts inserts all seeds in one statement. Rows hitting any unique
// index are skipped, so the returned count is the number of new rows.
func (r *schemaRepository) InsertSeedPosts(ctx context.Context, seeds []models.SeedPost) (int64, error) {
	if len(seeds) == 0 {
		return 0, nil
	}

	query, args := buildSeedInsert(seeds)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("error inserting seed posts: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking inserted rows: %w", err)
	}

	return inserted, nil
}

func buildSeedInsert(seeds []models.SeedPost) (string, []any) {
	const cols = 5

	var sb strings.Builder
	sb.WriteString("INSERT INTO public.blog_posts (title, content, category, image_url, created_at) VALUES ")

	args := make([]any, 0, len(seeds)*cols)
	for i, seed := range seeds {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * cols
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, NOW() - ($%d::double precision * INTERVAL '1 second'))",
			n+1, n+2, n+3, n+4, n+5)
		args = append(args, seed.Title, seed.Content, string(seed.Category), seed.ImageURL, seed.Age.Seconds())
	}
	sb.WriteString(" ON CONFLICT DO NOTHING")

	return sb.String(), args
}

func (r *schemaRepository) CountPosts(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, countPostsSQL)
	if err != nil {
		return 0, fmt.Errorf("error counting blog posts: %w", err)
	}

	return count, nil
}
