package tui

import (
	"context"
	"testing"

	"github.com/ElectricFeet/gutenberg/internal/blocks"
	"github.com/ElectricFeet/gutenberg/internal/config"
	"github.com/ElectricFeet/gutenberg/internal/database/repository"
	"github.com/ElectricFeet/gutenberg/internal/state"
	"github.com/ElectricFeet/gutenberg/internal/store"
)

func TestSavedMessageAdoptsSnapshotAndClearsDirty(t *testing.T) {
	st := store.New()
	st.Dispatch(state.SetupEditor{
		Post: state.Post{"id": "p1", "title": "Old", "status": "draft", "type": "post"},
	})
	app := New(context.Background(), config.Config{}, st, blocks.DefaultRegistry(), Repos{}, "p1")

	st.Dispatch(state.EditPost{Edits: map[string]any{"title": "New"}})
	if !st.IsDirty() {
		t.Fatalf("title edit should mark the editor dirty")
	}

	app.Update(savedMsg{post: repository.Post{
		ID: "p1", Title: "New", Status: "draft", Type: "post",
	}})

	if st.IsDirty() {
		t.Fatalf("a successful save must clear the dirty marker")
	}
	if got := st.State().CurrentPost["title"]; got != "New" {
		t.Fatalf("CurrentPost title = %v, want saved value", got)
	}
	if got, ok := st.State().Editor.Value.Present.Edits["title"]; ok {
		t.Fatalf("saved edit should leave the overlay, got %v", got)
	}
	if !st.State().Saving.Successful {
		t.Fatalf("save success must be recorded")
	}
}
