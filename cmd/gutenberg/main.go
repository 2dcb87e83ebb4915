package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ElectricFeet/gutenberg/internal/blocks"
	"github.com/ElectricFeet/gutenberg/internal/config"
	"github.com/ElectricFeet/gutenberg/internal/database"
	"github.com/ElectricFeet/gutenberg/internal/database/repository"
	"github.com/ElectricFeet/gutenberg/internal/prefs"
	"github.com/ElectricFeet/gutenberg/internal/state"
	"github.com/ElectricFeet/gutenberg/internal/store"
	"github.com/ElectricFeet/gutenberg/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	postRepo := repository.NewPostRepo(db)
	reusableRepo := repository.NewReusableBlockRepo(db)

	post, err := loadPost(ctx, postRepo, os.Args[1:])
	if err != nil {
		log.Fatalf("load post: %v", err)
	}

	saved, err := prefs.Load()
	if err != nil {
		log.Printf("warn: using default preferences: %v", err)
	}
	st := store.NewWithPreferences(saved)
	st.Dispatch(state.SetupEditor{
		Post: state.Post{
			"id":      post.ID,
			"title":   post.Title,
			"content": post.Content,
			"status":  post.Status,
			"type":    post.Type,
		},
		Blocks: blocks.Parse(post.Content),
	})

	app := tui.New(ctx, cfg, st, blocks.DefaultRegistry(),
		tui.Repos{Posts: postRepo, Reusable: reusableRepo}, post.ID)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// loadPost opens the post named on the command line, falling back to the
// most recently updated one.
func loadPost(ctx context.Context, repo *repository.PostRepo, args []string) (*repository.Post, error) {
	if len(args) > 0 {
		return repo.Get(ctx, args[0])
	}
	post, err := repo.Latest(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return &repository.Post{Status: "draft", Type: "post"}, nil
	}
	return post, err
}
