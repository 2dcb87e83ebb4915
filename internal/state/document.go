package state

import "github.com/ElectricFeet/gutenberg/internal/blocks"

// Document is the normalized editable document: a field-edit overlay over
// the last synced post, the block entity store, and the order index.
//
// Invariant: after any transition every UID in BlockOrder has an entry in
// BlocksByUID and every entity's UID appears exactly once in BlockOrder.
type Document struct {
	Edits       map[string]any
	BlocksByUID map[string]blocks.Block
	BlockOrder  []string
}

// NewDocument returns the empty initial document.
func NewDocument() *Document {
	return &Document{
		Edits:       map[string]any{},
		BlocksByUID: map[string]blocks.Block{},
		BlockOrder:  []string{},
	}
}

// ReduceDocument applies one action to the document. The returned pointer
// is identical to prev when nothing changed; downstream change detection
// relies on that, so sub-reducers report changes explicitly rather than
// allocating fresh equal values.
func ReduceDocument(prev *Document, action Action) *Document {
	edits, editsChanged := reduceEdits(prev.Edits, action)
	byUID, entitiesChanged := reduceBlocksByUID(prev.BlocksByUID, action)
	order, orderChanged := reduceBlockOrder(prev.BlockOrder, action)
	if !editsChanged && !entitiesChanged && !orderChanged {
		return prev
	}
	return &Document{Edits: edits, BlocksByUID: byUID, BlockOrder: order}
}

// Blocks returns the top-level blocks in document order.
func (d *Document) Blocks() []blocks.Block {
	out := make([]blocks.Block, 0, len(d.BlockOrder))
	for _, uid := range d.BlockOrder {
		if blk, ok := d.BlocksByUID[uid]; ok {
			out = append(out, blk)
		}
	}
	return out
}

// --- edits overlay ---

func reduceEdits(prev map[string]any, action Action) (map[string]any, bool) {
	switch a := action.(type) {
	case EditPost:
		return mergeChangedEdits(prev, a.Edits)
	case SetupNewPost:
		return mergeChangedEdits(prev, a.Edits)
	case SetupEditor:
		if len(prev) == 0 {
			return prev, false
		}
		return map[string]any{}, true
	case ResetBlocks:
		// blocks become authoritative over the raw content string
		if _, ok := prev["content"]; !ok {
			return prev, false
		}
		next := cloneEdits(prev)
		delete(next, "content")
		return next, true
	case ResetPost:
		return reconcileEdits(prev, a.Post)
	case UpdatePost:
		// a save merges edits into the snapshot; fields now in sync stop
		// being pending
		return reconcileEdits(prev, a.Edits)
	}
	return prev, false
}

// reconcileEdits keeps only genuinely pending edits: fields whose value now
// equals the synced raw value drop out of the overlay.
func reconcileEdits(prev, synced map[string]any) (map[string]any, bool) {
	var next map[string]any
	for k, v := range prev {
		raw, ok := synced[k]
		if ok && blocks.ValueEqual(v, RawValue(raw)) {
			if next == nil {
				next = cloneEdits(prev)
			}
			delete(next, k)
		}
	}
	if next == nil {
		return prev, false
	}
	return next, true
}

func mergeChangedEdits(prev, incoming map[string]any) (map[string]any, bool) {
	var next map[string]any
	for k, v := range incoming {
		if cur, ok := prev[k]; ok && blocks.ValueEqual(cur, v) {
			continue
		}
		if next == nil {
			next = cloneEdits(prev)
		}
		next[k] = v
	}
	if next == nil {
		return prev, false
	}
	return next, true
}

func cloneEdits(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// --- entity store ---

func reduceBlocksByUID(prev map[string]blocks.Block, action Action) (map[string]blocks.Block, bool) {
	switch a := action.(type) {
	case SetupEditor:
		return keyByUID(a.Blocks), true
	case ResetBlocks:
		return keyByUID(a.Blocks), true
	case InsertBlocks:
		if len(a.Blocks) == 0 {
			return prev, false
		}
		next := cloneEntities(prev)
		for _, blk := range a.Blocks {
			next[blk.UID] = blk
		}
		return next, true
	case UpdateBlockAttributes:
		blk, ok := prev[a.UID]
		if !ok {
			return prev, false
		}
		// write only attributes whose value actually changed; when none
		// did, the whole state keeps its reference
		var attrs blocks.Attributes
		for k, v := range a.Attributes {
			if cur, exists := blk.Attributes[k]; exists && blocks.ValueEqual(cur, v) {
				continue
			}
			if attrs == nil {
				attrs = make(blocks.Attributes, len(blk.Attributes)+1)
				for k2, v2 := range blk.Attributes {
					attrs[k2] = v2
				}
			}
			attrs[k] = v
		}
		if attrs == nil {
			return prev, false
		}
		next := cloneEntities(prev)
		blk.Attributes = attrs
		next[a.UID] = blk
		return next, true
	case UpdateBlock:
		blk, ok := prev[a.UID]
		if !ok {
			return prev, false
		}
		if a.Patch.Name != nil {
			blk.Name = *a.Patch.Name
		}
		if a.Patch.Attributes != nil {
			blk.Attributes = a.Patch.Attributes
		}
		if a.Patch.InnerBlocks != nil {
			blk.InnerBlocks = a.Patch.InnerBlocks
		}
		next := cloneEntities(prev)
		next[a.UID] = blk
		return next, true
	case ReplaceBlocks:
		if len(a.Blocks) == 0 {
			return prev, false
		}
		next := cloneEntities(prev)
		for _, uid := range a.UIDs {
			delete(next, uid)
		}
		for _, blk := range a.Blocks {
			next[blk.UID] = blk
		}
		return next, true
	case RemoveBlocks:
		var next map[string]blocks.Block
		for _, uid := range a.UIDs {
			if _, ok := prev[uid]; !ok {
				continue
			}
			if next == nil {
				next = cloneEntities(prev)
			}
			delete(next, uid)
		}
		if next == nil {
			return prev, false
		}
		return next, true
	case SaveReusableBlockSuccess:
		if a.ID == a.UpdatedID || a.UpdatedID == "" {
			return prev, false
		}
		var next map[string]blocks.Block
		for uid, blk := range prev {
			rewritten, changed := rewriteReusableRef(blk, a.ID, a.UpdatedID)
			if !changed {
				continue
			}
			if next == nil {
				next = cloneEntities(prev)
			}
			next[uid] = rewritten
		}
		if next == nil {
			return prev, false
		}
		return next, true
	}
	return prev, false
}

// rewriteReusableRef repoints a reusable-block placement from oldID to
// newID, descending into inner blocks. Untouched blocks keep their
// attribute maps.
func rewriteReusableRef(blk blocks.Block, oldID, newID string) (blocks.Block, bool) {
	changed := false
	if blk.Name == blocks.ReusableRef {
		if ref, ok := blk.Attributes["ref"]; ok && blocks.ValueEqual(ref, oldID) {
			attrs := make(blocks.Attributes, len(blk.Attributes))
			for k, v := range blk.Attributes {
				attrs[k] = v
			}
			attrs["ref"] = newID
			blk.Attributes = attrs
			changed = true
		}
	}
	copied := false
	for i, inner := range blk.InnerBlocks {
		rewritten, innerChanged := rewriteReusableRef(inner, oldID, newID)
		if !innerChanged {
			continue
		}
		if !copied {
			// copy the slice once before the first in-place write so the
			// prior state keeps its own inner blocks
			blk.InnerBlocks = append([]blocks.Block(nil), blk.InnerBlocks...)
			copied = true
		}
		blk.InnerBlocks[i] = rewritten
		changed = true
	}
	return blk, changed
}

func keyByUID(list []blocks.Block) map[string]blocks.Block {
	out := make(map[string]blocks.Block, len(list))
	for _, blk := range list {
		out[blk.UID] = blk
	}
	return out
}

func cloneEntities(m map[string]blocks.Block) map[string]blocks.Block {
	out := make(map[string]blocks.Block, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// --- order index ---

func reduceBlockOrder(prev []string, action Action) ([]string, bool) {
	switch a := action.(type) {
	case SetupEditor:
		return orderOf(a.Blocks), true
	case ResetBlocks:
		return orderOf(a.Blocks), true
	case InsertBlocks:
		if len(a.Blocks) == 0 {
			return prev, false
		}
		index := len(prev)
		if a.Index != nil && *a.Index >= 0 && *a.Index <= len(prev) {
			index = *a.Index
		}
		next := make([]string, 0, len(prev)+len(a.Blocks))
		next = append(next, prev[:index]...)
		next = append(next, orderOf(a.Blocks)...)
		next = append(next, prev[index:]...)
		return next, true
	case ReplaceBlocks:
		if len(a.Blocks) == 0 {
			return prev, false
		}
		old := make(map[string]bool, len(a.UIDs))
		for _, uid := range a.UIDs {
			old[uid] = true
		}
		next := make([]string, 0, len(prev)+len(a.Blocks))
		spliced := false
		for _, uid := range prev {
			if !old[uid] {
				next = append(next, uid)
				continue
			}
			// replacements occupy the position of the first old uid;
			// later old uids simply drop out
			if !spliced {
				next = append(next, orderOf(a.Blocks)...)
				spliced = true
			}
		}
		if !spliced {
			next = append(next, orderOf(a.Blocks)...)
		}
		return next, true
	case RemoveBlocks:
		removing := make(map[string]bool, len(a.UIDs))
		for _, uid := range a.UIDs {
			removing[uid] = true
		}
		var next []string
		changed := false
		for _, uid := range prev {
			if removing[uid] {
				changed = true
				continue
			}
			next = append(next, uid)
		}
		if !changed {
			return prev, false
		}
		if next == nil {
			next = []string{}
		}
		return next, true
	case MoveBlocksUp:
		first, last, ok := groupBounds(prev, a.First, a.Last)
		if !ok || first == 0 {
			return prev, false
		}
		next := append([]string(nil), prev...)
		next[last] = prev[first-1]
		copy(next[first-1:last], prev[first:last+1])
		return next, true
	case MoveBlocksDown:
		first, last, ok := groupBounds(prev, a.First, a.Last)
		if !ok || last == len(prev)-1 {
			return prev, false
		}
		next := append([]string(nil), prev...)
		next[first] = prev[last+1]
		copy(next[first+1:last+2], prev[first:last+1])
		return next, true
	}
	return prev, false
}

// groupBounds resolves the contiguous [first..last] group of a move
// action. Last empty means a single-block group.
func groupBounds(order []string, firstUID, lastUID string) (int, int, bool) {
	first := indexOfUID(order, firstUID)
	if first < 0 {
		return 0, 0, false
	}
	last := first
	if lastUID != "" && lastUID != firstUID {
		last = indexOfUID(order, lastUID)
		if last < first {
			return 0, 0, false
		}
	}
	return first, last, true
}

func indexOfUID(order []string, uid string) int {
	for i, u := range order {
		if u == uid {
			return i
		}
	}
	return -1
}

func orderOf(list []blocks.Block) []string {
	out := make([]string, len(list))
	for i, blk := range list {
		out[i] = blk.UID
	}
	return out
}
