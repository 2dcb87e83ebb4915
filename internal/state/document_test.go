package state

import (
	"reflect"
	"testing"

	"github.com/ElectricFeet/gutenberg/internal/blocks"
)

// ---------------------------------------------------------------------------
// Test data helpers
// ---------------------------------------------------------------------------

func block(uid, name string, attrs blocks.Attributes) blocks.Block {
	return blocks.Block{UID: uid, Name: name, Attributes: attrs}
}

func docWith(t *testing.T, list ...blocks.Block) *Document {
	t.Helper()
	return ReduceDocument(NewDocument(), ResetBlocks{Blocks: list})
}

// checkConsistent verifies the core invariant: order index and entity
// store agree in both directions, with no duplicates.
func checkConsistent(t *testing.T, d *Document) {
	t.Helper()
	seen := make(map[string]bool, len(d.BlockOrder))
	for _, uid := range d.BlockOrder {
		if seen[uid] {
			t.Fatalf("uid %q appears twice in block order", uid)
		}
		seen[uid] = true
		if _, ok := d.BlocksByUID[uid]; !ok {
			t.Fatalf("uid %q in order but not in entity store", uid)
		}
	}
	for uid := range d.BlocksByUID {
		if !seen[uid] {
			t.Fatalf("uid %q in entity store but not in order", uid)
		}
	}
}

func intPtr(i int) *int { return &i }

// ---------------------------------------------------------------------------
// Entity store and order index
// ---------------------------------------------------------------------------

func TestInsertThenRemove(t *testing.T) {
	d := NewDocument()
	d = ReduceDocument(d, InsertBlocks{Blocks: []blocks.Block{
		block("a", "core/paragraph", nil),
		block("b", "core/paragraph", nil),
	}})
	checkConsistent(t, d)
	if got := d.BlockOrder; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("order after insert = %v, want [a b]", got)
	}

	d = ReduceDocument(d, RemoveBlocks{UIDs: []string{"a"}})
	checkConsistent(t, d)
	if got := d.BlockOrder; !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("order after remove = %v, want [b]", got)
	}
	if _, ok := d.BlocksByUID["a"]; ok {
		t.Fatalf("entity a should be gone after remove")
	}
}

func TestInsertAtIndex(t *testing.T) {
	d := docWith(t, block("a", "core/paragraph", nil), block("c", "core/paragraph", nil))
	d = ReduceDocument(d, InsertBlocks{
		Blocks: []blocks.Block{block("b", "core/heading", nil)},
		Index:  intPtr(1),
	})
	checkConsistent(t, d)
	if got := d.BlockOrder; !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("order = %v, want [a b c]", got)
	}
}

func TestUpdateAttributesChangedKeysOnly(t *testing.T) {
	d := docWith(t, block("a", "core/paragraph", blocks.Attributes{"text": "hi", "align": "left"}))
	next := ReduceDocument(d, UpdateBlockAttributes{
		UID:        "a",
		Attributes: blocks.Attributes{"text": "hello", "align": "left"},
	})
	if next == d {
		t.Fatalf("changed attribute should produce a new state")
	}
	attrs := next.BlocksByUID["a"].Attributes
	if attrs["text"] != "hello" || attrs["align"] != "left" {
		t.Fatalf("attributes = %v", attrs)
	}
}

func TestUpdateAttributesIdempotent(t *testing.T) {
	d := docWith(t, block("a", "core/paragraph", blocks.Attributes{"text": "hi"}))
	next := ReduceDocument(d, UpdateBlockAttributes{
		UID:        "a",
		Attributes: blocks.Attributes{"text": "hi"},
	})
	if next != d {
		t.Fatalf("equal attribute values must return the identical state")
	}
}

func TestUpdateAttributesUnknownUID(t *testing.T) {
	d := docWith(t, block("a", "core/paragraph", nil))
	next := ReduceDocument(d, UpdateBlockAttributes{
		UID:        "nope",
		Attributes: blocks.Attributes{"text": "x"},
	})
	if next != d {
		t.Fatalf("unknown uid must be a no-op")
	}
}

func TestUpdateBlockShallowMerge(t *testing.T) {
	d := docWith(t, block("a", "core/paragraph", blocks.Attributes{"text": "hi"}))
	name := "core/heading"
	next := ReduceDocument(d, UpdateBlock{UID: "a", Patch: BlockPatch{Name: &name}})
	if got := next.BlocksByUID["a"].Name; got != "core/heading" {
		t.Fatalf("name = %q", got)
	}
	if got := next.BlocksByUID["a"].Attributes["text"]; got != "hi" {
		t.Fatalf("untouched attributes should survive, got %v", got)
	}
	if next2 := ReduceDocument(d, UpdateBlock{UID: "zzz"}); next2 != d {
		t.Fatalf("unknown uid must be a no-op")
	}
}

func TestReplaceBlocksSplicesAtFirstMatch(t *testing.T) {
	d := docWith(t,
		block("a", "core/paragraph", nil),
		block("b", "core/paragraph", nil),
		block("c", "core/paragraph", nil),
	)
	d = ReduceDocument(d, ReplaceBlocks{
		UIDs:   []string{"b", "c"},
		Blocks: []blocks.Block{block("x", "core/quote", nil), block("y", "core/quote", nil)},
	})
	checkConsistent(t, d)
	if got := d.BlockOrder; !reflect.DeepEqual(got, []string{"a", "x", "y"}) {
		t.Fatalf("order = %v, want [a x y]", got)
	}
}

func TestReplaceBlocksEmptyReplacementIsNoop(t *testing.T) {
	d := docWith(t, block("a", "core/paragraph", nil))
	if next := ReduceDocument(d, ReplaceBlocks{UIDs: []string{"a"}}); next != d {
		t.Fatalf("replace with no blocks must be a no-op")
	}
}

func TestMoveUpAtBoundary(t *testing.T) {
	d := docWith(t,
		block("a", "core/paragraph", nil),
		block("b", "core/paragraph", nil),
		block("c", "core/paragraph", nil),
	)
	if next := ReduceDocument(d, MoveBlocksUp{First: "a"}); next != d {
		t.Fatalf("move up at top boundary must return the same state")
	}
	if next := ReduceDocument(d, MoveBlocksDown{First: "c"}); next != d {
		t.Fatalf("move down at bottom boundary must return the same state")
	}
}

func TestMoveGroupPreservesIntraGroupOrder(t *testing.T) {
	d := docWith(t,
		block("a", "core/paragraph", nil),
		block("b", "core/paragraph", nil),
		block("c", "core/paragraph", nil),
		block("d", "core/paragraph", nil),
	)
	up := ReduceDocument(d, MoveBlocksUp{First: "b", Last: "c"})
	checkConsistent(t, up)
	if got := up.BlockOrder; !reflect.DeepEqual(got, []string{"b", "c", "a", "d"}) {
		t.Fatalf("move up order = %v, want [b c a d]", got)
	}

	down := ReduceDocument(d, MoveBlocksDown{First: "b", Last: "c"})
	checkConsistent(t, down)
	if got := down.BlockOrder; !reflect.DeepEqual(got, []string{"a", "d", "b", "c"}) {
		t.Fatalf("move down order = %v, want [a d b c]", got)
	}
}

func TestReusableRefRewrite(t *testing.T) {
	d := docWith(t,
		block("x", blocks.ReusableRef, blocks.Attributes{"ref": "tmp1"}),
		block("y", "core/paragraph", blocks.Attributes{"text": "hi"}),
	)
	yAttrs := d.BlocksByUID["y"].Attributes

	next := ReduceDocument(d, SaveReusableBlockSuccess{ID: "tmp1", UpdatedID: "42"})
	if got := next.BlocksByUID["x"].Attributes["ref"]; got != "42" {
		t.Fatalf("ref = %v, want 42", got)
	}
	// untouched blocks keep their attribute maps
	if !sameAttrs(next.BlocksByUID["y"].Attributes, yAttrs) {
		t.Fatalf("unrelated block should keep its attribute map")
	}
}

func sameAttrs(a, b blocks.Attributes) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func TestReusableRefRewriteSameIDIsNoop(t *testing.T) {
	d := docWith(t, block("x", blocks.ReusableRef, blocks.Attributes{"ref": "7"}))
	if next := ReduceDocument(d, SaveReusableBlockSuccess{ID: "7", UpdatedID: "7"}); next != d {
		t.Fatalf("identical ids must be a no-op")
	}
}

func TestReusableRefRewriteDescendsIntoInnerBlocks(t *testing.T) {
	outer := block("o", "core/quote", nil)
	outer.InnerBlocks = []blocks.Block{block("i", blocks.ReusableRef, blocks.Attributes{"ref": "tmp"})}
	d := docWith(t, outer)

	next := ReduceDocument(d, SaveReusableBlockSuccess{ID: "tmp", UpdatedID: "9"})
	inner := next.BlocksByUID["o"].InnerBlocks[0]
	if got := inner.Attributes["ref"]; got != "9" {
		t.Fatalf("inner ref = %v, want 9", got)
	}
	// the prior state's inner blocks must be untouched
	if got := d.BlocksByUID["o"].InnerBlocks[0].Attributes["ref"]; got != "tmp" {
		t.Fatalf("prior state mutated: inner ref = %v", got)
	}
}

func TestUnknownActionReturnsSameReference(t *testing.T) {
	type mysteryAction struct{ N int }
	d := docWith(t, block("a", "core/paragraph", nil))
	if next := ReduceDocument(d, mysteryAction{N: 7}); next != d {
		t.Fatalf("unknown action must return the identical state")
	}
}

func TestRandomizedStructuralActionsKeepInvariant(t *testing.T) {
	d := NewDocument()
	steps := []Action{
		InsertBlocks{Blocks: []blocks.Block{block("a", "core/paragraph", nil), block("b", "core/paragraph", nil)}},
		InsertBlocks{Blocks: []blocks.Block{block("c", "core/heading", nil)}, Index: intPtr(0)},
		MoveBlocksDown{First: "c"},
		ReplaceBlocks{UIDs: []string{"a"}, Blocks: []blocks.Block{block("d", "core/list", nil)}},
		RemoveBlocks{UIDs: []string{"b", "zzz"}},
		MoveBlocksUp{First: "d"},
		RemoveBlocks{UIDs: []string{"c", "d"}},
	}
	for _, step := range steps {
		d = ReduceDocument(d, step)
		checkConsistent(t, d)
	}
	if len(d.BlockOrder) != 0 || len(d.BlocksByUID) != 0 {
		t.Fatalf("expected empty document, got order=%v", d.BlockOrder)
	}
}

// ---------------------------------------------------------------------------
// Edits overlay
// ---------------------------------------------------------------------------

func TestEditPostKeepsOnlyChangedFields(t *testing.T) {
	d := ReduceDocument(NewDocument(), EditPost{Edits: map[string]any{"title": "Hello"}})
	if d.Edits["title"] != "Hello" {
		t.Fatalf("edits = %v", d.Edits)
	}
	// same value again: identical state back
	if next := ReduceDocument(d, EditPost{Edits: map[string]any{"title": "Hello"}}); next != d {
		t.Fatalf("value-equal edit must be a no-op")
	}
}

func TestResetBlocksDropsContentEdit(t *testing.T) {
	d := ReduceDocument(NewDocument(), EditPost{Edits: map[string]any{"content": "raw", "title": "T"}})
	d = ReduceDocument(d, ResetBlocks{Blocks: []blocks.Block{block("a", "core/paragraph", nil)}})
	if _, ok := d.Edits["content"]; ok {
		t.Fatalf("content edit should be dropped when blocks become authoritative")
	}
	if d.Edits["title"] != "T" {
		t.Fatalf("other edits must survive, got %v", d.Edits)
	}
}

func TestResetPostReconcilesOverlay(t *testing.T) {
	d := ReduceDocument(NewDocument(), EditPost{Edits: map[string]any{"title": "Saved", "status": "draft"}})
	d = ReduceDocument(d, ResetPost{Post: Post{
		"title":  map[string]any{"raw": "Saved"},
		"status": "publish",
	}})
	if _, ok := d.Edits["title"]; ok {
		t.Fatalf("edit equal to the raw server value should be dropped")
	}
	if d.Edits["status"] != "draft" {
		t.Fatalf("genuinely pending edit must survive, got %v", d.Edits)
	}
}

func TestUpdatePostReconcilesOverlay(t *testing.T) {
	d := ReduceDocument(NewDocument(), EditPost{Edits: map[string]any{"title": "Saved", "status": "pending"}})
	d = ReduceDocument(d, UpdatePost{Edits: map[string]any{"title": "Saved"}})
	if _, ok := d.Edits["title"]; ok {
		t.Fatalf("edit merged into the snapshot by a save should be dropped, got %v", d.Edits)
	}
	if d.Edits["status"] != "pending" {
		t.Fatalf("unsaved edit must survive the save, got %v", d.Edits)
	}
	if next := ReduceDocument(d, UpdatePost{Edits: map[string]any{"title": "Other"}}); next != d {
		t.Fatalf("save of a non-matching value must keep the document reference")
	}
}
