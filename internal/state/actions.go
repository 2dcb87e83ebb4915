package state

import "github.com/ElectricFeet/gutenberg/internal/blocks"

// Action is any value dispatched at the store. Each reducer type-switches
// on the concrete kinds it understands and returns its prior state (the
// identical value, not a copy) for every kind it does not. Unknown action
// kinds are legal and must be no-ops. Action is an alias so reducers over
// concrete slice types satisfy the generic wrapper signatures directly.
type Action = any

// --- Document lifecycle ---

// SetupEditor seeds the whole editor from a loaded post: current post
// snapshot, block list parsed from its content, empty edits overlay.
// History and the dirty baseline are rebased; undo cannot cross it.
type SetupEditor struct {
	Post   Post
	Blocks []blocks.Block
}

// ResetPost replaces the current post snapshot (for example after a save)
// and reconciles the edits overlay against the post's raw field values.
type ResetPost struct {
	Post Post
}

// SetupNewPost seeds the edits overlay of a fresh, never-saved post.
type SetupNewPost struct {
	Edits map[string]any
}

// ResetBlocks replaces the entity store and order index wholesale, making
// blocks authoritative over the raw content string.
type ResetBlocks struct {
	Blocks []blocks.Block
}

// --- Block structure ---

// InsertBlocks splices new blocks into the order index at Index
// (nil means end) and merges their entities into the store. UID uniqueness
// against existing entries is the caller's contract.
type InsertBlocks struct {
	Blocks []blocks.Block
	Index  *int
}

// UpdateBlockAttributes merges only genuinely-changed attribute values
// into the block's attribute bag. Unknown UID is a no-op.
type UpdateBlockAttributes struct {
	UID        string
	Attributes blocks.Attributes
}

// BlockPatch carries optional top-level block field replacements for
// UpdateBlock. Nil fields are left untouched.
type BlockPatch struct {
	Name        *string
	Attributes  blocks.Attributes
	InnerBlocks []blocks.Block
}

// UpdateBlock shallow-merges top-level fields into an existing block.
// Unknown UID is a no-op.
type UpdateBlock struct {
	UID   string
	Patch BlockPatch
}

// ReplaceBlocks removes the old entities and splices the replacement
// blocks into the position of the first old UID found in the order index.
// With no replacement blocks it is a no-op.
type ReplaceBlocks struct {
	UIDs   []string
	Blocks []blocks.Block
}

// RemoveBlocks deletes entities and order-index entries for the UIDs.
type RemoveBlocks struct {
	UIDs []string
}

// MoveBlocksUp swaps the contiguous group [First..Last] with the block
// immediately preceding it. No-op when the group is already first.
// Last may be empty for a single-block group.
type MoveBlocksUp struct {
	First string
	Last  string
}

// MoveBlocksDown is the inverse of MoveBlocksUp.
type MoveBlocksDown struct {
	First string
	Last  string
}

// --- Selection and interaction ---

type SelectBlock struct {
	UID   string
	Focus map[string]any
}

type UpdateFocus struct {
	UID    string
	Config map[string]any
}

type ClearSelectedBlock struct{}

type StartMultiSelect struct{}

type StopMultiSelect struct{}

type MultiSelect struct {
	Start string
	End   string
}

type ToggleSelection struct {
	IsEnabled bool
}

type StartTyping struct{}

type StopTyping struct{}

type ToggleBlockHover struct {
	UID     string
	Hovered bool
}

type ShowInsertionPoint struct {
	Index *int
}

type HideInsertionPoint struct{}

type ToggleBlockMode struct {
	UID string
}

// --- Post edits and saving ---

// EditPost merges field edits into the overlay, keeping only fields whose
// value actually differs from the current overlay value.
type EditPost struct {
	Edits map[string]any
}

// UpdatePost merges saved fields into the current post snapshot without
// replacing it wholesale.
type UpdatePost struct {
	Edits map[string]any
}

type SavePostStart struct{}

type SavePostSuccess struct {
	IsNew bool
}

// SavePostFailure carries an opaque error payload stored verbatim for the
// UI layer; the state machine never interprets it.
type SavePostFailure struct {
	Err error
}

// --- Preferences and UI chrome ---

type ToggleSidebar struct {
	Sidebar string
	Force   *bool
}

type ToggleSidebarPanel struct {
	Panel string
}

type ToggleFeature struct {
	Feature string
}

type SwitchMode struct {
	Mode Mode
}

type SetActivePanel struct {
	Panel string
}

type UpdateMobileState struct {
	IsMobile bool
}

// --- Notices ---

type CreateNotice struct {
	Notice Notice
}

type RemoveNotice struct {
	ID string
}

// --- Meta boxes ---

type InitializeMetaBoxState struct {
	// location -> active
	MetaBoxes map[string]bool
}

type MetaBoxLoaded struct {
	Location string
}

type HandleMetaBoxReload struct {
	Location string
}

type RequestMetaBoxUpdates struct{}

type MetaBoxUpdatesSuccess struct{}

type MetaBoxStateChanged struct {
	Location   string
	HasChanged bool
}

// --- Reusable blocks ---

type FetchReusableBlocksSuccess struct {
	ReusableBlocks []ReusableBlock
}

type UpdateReusableBlock struct {
	ID            string
	ReusableBlock ReusableBlock
}

type SaveReusableBlock struct {
	ID string
}

// SaveReusableBlockSuccess finalizes a pending save. When the identifier
// changed from a temporary to a final one, every core/block placement
// whose ref attribute equals ID is rewritten to UpdatedID.
type SaveReusableBlockSuccess struct {
	ID        string
	UpdatedID string
}

type SaveReusableBlockFailure struct {
	ID string
}

type DeleteReusableBlock struct {
	ID string
}
