package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ElectricFeet/gutenberg/internal/database/repository"
)

const welcomeContent = `<!-- wp:core/heading {"content":"Welcome","level":2} /-->
<!-- wp:core/paragraph {"content":"Start writing, or press i to insert a block."} /-->`

// SeedDefaults ensures a starter draft exists for new databases so the
// editor always has a post to open. Idempotent and safe to run on every
// startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewPostRepo(db)
	existing, err := repo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	now := Now()
	return repo.Upsert(ctx, repository.Post{
		ID:        uuid.NewString(),
		Title:     "Welcome",
		Content:   welcomeContent,
		Status:    "draft",
		Type:      "post",
		CreatedAt: now,
		UpdatedAt: now,
	})
}
