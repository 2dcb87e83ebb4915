package state

// BlockSelection is the current user selection: Start/End delimit an
// inclusive contiguous range over the order index. Both empty means no
// selection.
type BlockSelection struct {
	Start            string
	End              string
	Focus            map[string]any
	IsMultiSelecting bool
	IsEnabled        bool
}

// NewBlockSelection returns the initial, empty-but-enabled selection.
func NewBlockSelection() *BlockSelection {
	return &BlockSelection{IsEnabled: true}
}

func (s *BlockSelection) with(mutate func(*BlockSelection)) *BlockSelection {
	next := *s
	mutate(&next)
	return &next
}

// ReduceSelection handles selection actions plus the block-structural
// actions that would otherwise leave the selection dangling. Replacing the
// selected block retargets to the first replacement; removing it outright
// deliberately leaves the selection as-is, matching the historical
// behavior this reducer reproduces (see the replace-with-empty case in
// the tests).
func ReduceSelection(prev *BlockSelection, action Action) *BlockSelection {
	switch a := action.(type) {
	case ClearSelectedBlock:
		if prev.Start == "" && prev.End == "" && prev.Focus == nil && !prev.IsMultiSelecting {
			return prev
		}
		return prev.with(func(n *BlockSelection) {
			n.Start, n.End, n.Focus, n.IsMultiSelecting = "", "", nil, false
		})
	case StartMultiSelect:
		if prev.IsMultiSelecting {
			return prev
		}
		return prev.with(func(n *BlockSelection) { n.IsMultiSelecting = true })
	case StopMultiSelect:
		if !prev.IsMultiSelecting {
			return prev
		}
		return prev.with(func(n *BlockSelection) { n.IsMultiSelecting = false })
	case MultiSelect:
		return prev.with(func(n *BlockSelection) {
			n.Start, n.End, n.Focus = a.Start, a.End, nil
		})
	case SelectBlock:
		if a.UID == prev.Start && a.UID == prev.End {
			if a.Focus == nil {
				return prev
			}
			return prev.with(func(n *BlockSelection) { n.Focus = a.Focus })
		}
		focus := a.Focus
		if focus == nil {
			focus = map[string]any{}
		}
		return prev.with(func(n *BlockSelection) {
			n.Start, n.End, n.Focus = a.UID, a.UID, focus
		})
	case UpdateFocus:
		return prev.with(func(n *BlockSelection) {
			n.Start, n.End, n.Focus = a.UID, a.UID, a.Config
		})
	case ToggleSelection:
		if prev.IsEnabled == a.IsEnabled {
			return prev
		}
		return prev.with(func(n *BlockSelection) { n.IsEnabled = a.IsEnabled })
	case InsertBlocks:
		if len(a.Blocks) == 0 {
			return prev
		}
		uid := a.Blocks[0].UID
		return prev.with(func(n *BlockSelection) {
			n.Start, n.End, n.Focus, n.IsMultiSelecting = uid, uid, map[string]any{}, false
		})
	case ReplaceBlocks:
		// an empty replacement list leaves a stale selection behind;
		// reproduced verbatim rather than silently repaired
		if len(a.Blocks) == 0 || !containsUID(a.UIDs, prev.Start) {
			return prev
		}
		uid := a.Blocks[0].UID
		return prev.with(func(n *BlockSelection) {
			n.Start, n.End, n.Focus = uid, uid, map[string]any{}
		})
	}
	return prev
}

func containsUID(uids []string, uid string) bool {
	if uid == "" {
		return false
	}
	for _, u := range uids {
		if u == uid {
			return true
		}
	}
	return false
}

// ReduceHovered tracks the hovered block UID. Hover clears on selection
// and while typing; replacing the hovered block retargets to the first
// replacement.
func ReduceHovered(prev string, action Action) string {
	switch a := action.(type) {
	case ToggleBlockHover:
		if a.Hovered {
			return a.UID
		}
		if prev == a.UID {
			return ""
		}
		return prev
	case SelectBlock, StartTyping:
		return ""
	case ReplaceBlocks:
		if len(a.Blocks) == 0 || !containsUID(a.UIDs, prev) {
			return prev
		}
		return a.Blocks[0].UID
	}
	return prev
}

// ReduceTyping tracks whether the user is typing into the selected block.
func ReduceTyping(prev bool, action Action) bool {
	switch action.(type) {
	case StartTyping:
		return true
	case StopTyping:
		return false
	}
	return prev
}

// InsertionPoint is the visual insertion marker between blocks. A nil
// Index means "after the selection" and is resolved by the UI layer.
type InsertionPoint struct {
	Visible bool
	Index   *int
}

func ReduceInsertionPoint(prev InsertionPoint, action Action) InsertionPoint {
	switch a := action.(type) {
	case ShowInsertionPoint:
		return InsertionPoint{Visible: true, Index: a.Index}
	case HideInsertionPoint:
		if !prev.Visible && prev.Index == nil {
			return prev
		}
		return InsertionPoint{}
	}
	return prev
}

// Mode is the editing mode of the editor (or of a single block).
type Mode string

const (
	ModeVisual Mode = "visual"
	ModeHTML   Mode = "html"
	ModeText   Mode = "text"
)

// ReduceBlocksMode tracks the per-block visual/html toggle. Blocks absent
// from the map are in visual mode.
func ReduceBlocksMode(prev map[string]Mode, action Action) map[string]Mode {
	a, ok := action.(ToggleBlockMode)
	if !ok {
		return prev
	}
	next := make(map[string]Mode, len(prev)+1)
	for k, v := range prev {
		next[k] = v
	}
	if prev[a.UID] == ModeHTML {
		next[a.UID] = ModeVisual
	} else {
		next[a.UID] = ModeHTML
	}
	return next
}
