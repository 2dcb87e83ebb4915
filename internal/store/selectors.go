package store

import (
	"github.com/ElectricFeet/gutenberg/internal/blocks"
	"github.com/ElectricFeet/gutenberg/internal/state"
)

// Document returns the present document value.
func (s *Store) Document() *state.Document {
	return s.state.Editor.Value.Present
}

// Blocks returns the top-level blocks in document order.
func (s *Store) Blocks() []blocks.Block {
	return s.Document().Blocks()
}

// IsDirty reports whether the document differs from the last saved or
// loaded baseline.
func (s *Store) IsDirty() bool {
	return s.state.Editor.Dirty
}

func (s *Store) CanUndo() bool { return s.state.Editor.Value.CanUndo() }
func (s *Store) CanRedo() bool { return s.state.Editor.Value.CanRedo() }

// SelectedBlock returns the single selected block, if exactly one block
// is selected.
func (s *Store) SelectedBlock() (blocks.Block, bool) {
	sel := s.state.Selection
	if sel.Start == "" || sel.Start != sel.End {
		return blocks.Block{}, false
	}
	blk, ok := s.Document().BlocksByUID[sel.Start]
	return blk, ok
}

// MultiSelectedUIDs expands the selection range over the order index,
// inclusive at both ends. Empty when there is no multi-selection.
func (s *Store) MultiSelectedUIDs() []string {
	sel := s.state.Selection
	if sel.Start == "" || sel.End == "" || sel.Start == sel.End {
		return nil
	}
	order := s.Document().BlockOrder
	start, end := -1, -1
	for i, uid := range order {
		if uid == sel.Start {
			start = i
		}
		if uid == sel.End {
			end = i
		}
	}
	if start < 0 || end < 0 {
		return nil
	}
	if start > end {
		start, end = end, start
	}
	return append([]string(nil), order[start:end+1]...)
}

// EditedPostField reads a post field through the edits overlay: a pending
// edit wins over the saved snapshot.
func (s *Store) EditedPostField(field string) any {
	doc := s.Document()
	if v, ok := doc.Edits[field]; ok {
		return v
	}
	return s.state.CurrentPost[field]
}

// EditedContent serializes the block list when blocks carry pending
// structure, falling back to the stored content field.
func (s *Store) EditedContent() string {
	doc := s.Document()
	if len(doc.BlockOrder) > 0 {
		return blocks.Serialize(doc.Blocks())
	}
	if v, ok := doc.Edits["content"]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	if v, ok := s.state.CurrentPost["content"].(string); ok {
		return v
	}
	return ""
}

// IsSavingPost reports an in-flight save request.
func (s *Store) IsSavingPost() bool { return s.state.Saving.Requesting }

// BlockMode returns the editing mode of one block; blocks default to
// visual.
func (s *Store) BlockMode(uid string) state.Mode {
	if m, ok := s.state.BlocksMode[uid]; ok {
		return m
	}
	return state.ModeVisual
}

// BlockIndex returns the order-index position of a block, or -1.
func (s *Store) BlockIndex(uid string) int {
	for i, u := range s.Document().BlockOrder {
		if u == uid {
			return i
		}
	}
	return -1
}
