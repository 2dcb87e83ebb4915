// Package store assembles the editor state slices into a single
// dispatch-driven store. Every dispatched action visits every slice;
// unchanged slices keep their references so consumers can detect change
// by identity.
package store

import (
	"reflect"

	"github.com/ElectricFeet/gutenberg/internal/history"
	"github.com/ElectricFeet/gutenberg/internal/state"
)

// EditorValue is the document slice decorated by the history wrapper.
type EditorValue = history.History[*state.Document]

// State is the whole editor state tree.
type State struct {
	Editor         history.Tracked[EditorValue]
	CurrentPost    state.Post
	Selection      *state.BlockSelection
	Hovered        string
	IsTyping       bool
	InsertionPoint state.InsertionPoint
	BlocksMode     map[string]state.Mode
	Preferences    *state.Preferences
	Saving         state.Saving
	Notices        []state.Notice
	MetaBoxes      map[string]state.MetaBoxState
	Reusable       *state.ReusableState
	IsMobile       bool
	ActivePanel    string
}

// Store owns the state tree and applies actions one at a time, in
// dispatch order, on a single goroutine. Reducers are pure; the store is
// the only place a new tree is adopted.
type Store struct {
	state     State
	editor    history.Reducer[history.Tracked[EditorValue]]
	listeners map[int]func()
	nextID    int
}

// New builds a store with default initial state.
func New() *Store {
	doc := state.NewDocument()
	inner := history.WithHistory[*state.Document](state.ReduceDocument, history.Options{
		ShouldReset: isHistoryReset,
	})
	editor := history.WithChangeDetection(inner, history.ChangeOptions[EditorValue]{
		ShouldReset: isDirtyReset,
		Equal:       documentsEqual,
	})
	return &Store{
		state: State{
			Editor:      history.NewTracked(history.NewHistory(doc)),
			CurrentPost: state.Post{},
			Selection:   state.NewBlockSelection(),
			BlocksMode:  map[string]state.Mode{},
			Preferences: state.NewPreferences(),
			MetaBoxes:   state.NewMetaBoxes(),
			Reusable:    state.NewReusableState(),
			ActivePanel: "document",
		},
		editor:    editor,
		listeners: map[int]func(){},
	}
}

// NewWithPreferences builds a store whose preferences slice starts from a
// previously persisted value instead of the defaults.
func NewWithPreferences(p *state.Preferences) *Store {
	s := New()
	if p != nil {
		s.state.Preferences = p
	}
	return s
}

// undo cannot cross an editor setup
func isHistoryReset(action any) bool {
	_, ok := action.(state.SetupEditor)
	return ok
}

// saves and post resets recapture the dirty baseline
func isDirtyReset(action any) bool {
	switch action.(type) {
	case state.SetupEditor, state.ResetPost, state.UpdatePost:
		return true
	}
	return false
}

// documentsEqual compares the present documents of two history values:
// pointer identity first, structural equality as the slow path.
func documentsEqual(a, b EditorValue) bool {
	if a.Present == b.Present {
		return true
	}
	return reflect.DeepEqual(a.Present, b.Present)
}

// State returns the current state tree. Values inside are treated as
// immutable once published; callers must not mutate them.
func (s *Store) State() State {
	return s.state
}

// Dispatch applies one action to every slice and notifies subscribers.
// Unknown action kinds fall through every reducer untouched.
func (s *Store) Dispatch(action state.Action) {
	prev := s.state
	next := State{
		Editor:         s.editor(prev.Editor, action),
		CurrentPost:    state.ReducePost(prev.CurrentPost, action),
		Selection:      state.ReduceSelection(prev.Selection, action),
		Hovered:        state.ReduceHovered(prev.Hovered, action),
		IsTyping:       state.ReduceTyping(prev.IsTyping, action),
		InsertionPoint: state.ReduceInsertionPoint(prev.InsertionPoint, action),
		BlocksMode:     state.ReduceBlocksMode(prev.BlocksMode, action),
		Preferences:    state.ReducePreferences(prev.Preferences, action),
		Saving:         state.ReduceSaving(prev.Saving, action),
		Notices:        state.ReduceNotices(prev.Notices, action),
		MetaBoxes:      state.ReduceMetaBoxes(prev.MetaBoxes, action),
		Reusable:       state.ReduceReusableBlocks(prev.Reusable, action),
		IsMobile:       state.ReduceMobile(prev.IsMobile, action),
		ActivePanel:    state.ReduceActivePanel(prev.ActivePanel, action),
	}
	s.state = next
	for _, fn := range s.listeners {
		fn()
	}
}

// Subscribe registers a listener invoked after every dispatch. The
// returned function unsubscribes it.
func (s *Store) Subscribe(fn func()) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}
