package service

import (
	"context"
	"fmt"
	"io"

	"blogbootstrap/internal/database"
	"blogbootstrap/internal/models"
	"blogbootstrap/internal/repository"

	"github.com/go-playground/validator/v10"
)

// Step names used in StatementError.
const (
	StepCreateTable = "create table"
	StepIndexes     = "create indexes"
	StepEnableRLS   = "enable row level security"
	StepPolicies    = "create policies"
	StepSeed        = "insert seed posts"
	StepCount       = "count posts"
)

type ProvisionResult struct {
	TitleIndexSkipped bool
	PoliciesCreated   int
	PoliciesSkipped   int
	SeedsInserted     int64
	PostCount         int
}

type ProvisionService interface {
	Provision(ctx context.Context) (*ProvisionResult, error)
}

type provisionService struct {
	schemaRepo repository.SchemaRepository
	policies   []repository.Policy
	seeds      []models.SeedPost
	validate   *validator.Validate
	out        io.Writer
}

func NewProvisionService(schemaRepo repository.SchemaRepository, out io.Writer) ProvisionService {
	if out == nil {
		out = io.Discard
	}
	return &provisionService{
		schemaRepo: schemaRepo,
		policies:   repository.Policies(),
		seeds:      models.SeedPosts(),
		validate:   validator.New(),
		out:        out,
	}
}

// Provision runs every statement in order. Each statement commits on its own,
// so a failure leaves whatever ran before it in place.
func (s *provisionService) Provision(ctx context.Context) (*ProvisionResult, error) {
	res := &ProvisionResult{}

	s.printf("📝 Creating blog_posts table...\n")
	if err := s.schemaRepo.CreateTable(ctx); err != nil {
		return res, &database.StatementError{Step: StepCreateTable, Err: err}
	}
	s.printf("✅ Table created successfully!\n")

	s.printf("📊 Creating indexes...\n")
	if err := s.schemaRepo.CreateIndexes(ctx); err != nil {
		return res, &database.StatementError{Step: StepIndexes, Err: err}
	}
	err := s.schemaRepo.CreateTitleUniqueIndex(ctx)
	switch {
	case database.IsUniqueViolation(err):
		// tables seeded by earlier, unconstrained runs can hold repeated titles
		s.printf("   Duplicate titles found, skipping unique title index...\n")
		res.TitleIndexSkipped = true
	case err != nil:
		return res, &database.StatementError{Step: StepIndexes, Err: err}
	}
	s.printf("✅ Indexes created successfully!\n")

	s.printf("🔒 Enabling Row Level Security...\n")
	if err := s.schemaRepo.EnableRowLevelSecurity(ctx); err != nil {
		return res, &database.StatementError{Step: StepEnableRLS, Err: err}
	}
	s.printf("✅ RLS enabled successfully!\n")

	s.printf("🛡️ Creating security policies...\n")
	for _, policy := range s.policies {
		err := s.schemaRepo.CreatePolicy(ctx, policy)
		switch {
		case err == nil:
			res.PoliciesCreated++
		case database.IsDuplicateObject(err):
			s.printf("   Policy already exists, skipping...\n")
			res.PoliciesSkipped++
		default:
			return res, &database.StatementError{Step: StepPolicies, Err: err}
		}
	}
	s.printf("✅ Security policies created successfully!\n")

	s.printf("📄 Inserting sample data...\n")
	for i := range s.seeds {
		if err := s.validate.Struct(s.seeds[i]); err != nil {
			return res, &database.StatementError{Step: StepSeed, Err: fmt.Errorf("invalid seed post %q: %w", s.seeds[i].Title, err)}
		}
	}
	inserted, err := s.schemaRepo.InsertSeedPosts(ctx, s.seeds)
	if err != nil {
		return res, &database.StatementError{Step: StepSeed, Err: err}
	}
	res.SeedsInserted = inserted
	s.printf("✅ Sample data inserted successfully! (%d new)\n", inserted)

	count, err := s.schemaRepo.CountPosts(ctx)
	if err != nil {
		return res, &database.StatementError{Step: StepCount, Err: err}
	}
	res.PostCount = count
	s.printf("🎉 Setup complete! Table has %d blog posts.\n", count)

	return res, nil
}

func (s *provisionService) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
