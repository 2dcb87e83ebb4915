package state

// MetaBoxState is the per-location lifecycle of a server-rendered meta box
// panel. The flags are set and cleared independently; this is not a
// strict linear state machine.
type MetaBoxState struct {
	IsActive   bool
	IsLoaded   bool
	IsUpdating bool
	IsDirty    bool
}

// MetaBoxLocations are the panel slots a theme can populate.
var MetaBoxLocations = []string{"normal", "side", "advanced"}

// NewMetaBoxes returns the initial, inactive meta box map.
func NewMetaBoxes() map[string]MetaBoxState {
	out := make(map[string]MetaBoxState, len(MetaBoxLocations))
	for _, loc := range MetaBoxLocations {
		out[loc] = MetaBoxState{}
	}
	return out
}

func cloneMetaBoxes(m map[string]MetaBoxState) map[string]MetaBoxState {
	out := make(map[string]MetaBoxState, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func ReduceMetaBoxes(prev map[string]MetaBoxState, action Action) map[string]MetaBoxState {
	switch a := action.(type) {
	case InitializeMetaBoxState:
		next := cloneMetaBoxes(prev)
		for loc, active := range a.MetaBoxes {
			s := next[loc]
			s.IsActive = active
			next[loc] = s
		}
		return next
	case MetaBoxLoaded:
		s, ok := prev[a.Location]
		if !ok || s.IsLoaded {
			return prev
		}
		next := cloneMetaBoxes(prev)
		s.IsLoaded = true
		next[a.Location] = s
		return next
	case HandleMetaBoxReload:
		s, ok := prev[a.Location]
		if !ok {
			return prev
		}
		next := cloneMetaBoxes(prev)
		s.IsUpdating = false
		s.IsDirty = false
		next[a.Location] = s
		return next
	case RequestMetaBoxUpdates:
		next := cloneMetaBoxes(prev)
		changed := false
		for loc, s := range next {
			if s.IsActive && !s.IsUpdating {
				s.IsUpdating = true
				next[loc] = s
				changed = true
			}
		}
		if !changed {
			return prev
		}
		return next
	case MetaBoxUpdatesSuccess:
		next := cloneMetaBoxes(prev)
		changed := false
		for loc, s := range next {
			if s.IsUpdating {
				s.IsUpdating = false
				next[loc] = s
				changed = true
			}
		}
		if !changed {
			return prev
		}
		return next
	case MetaBoxStateChanged:
		s, ok := prev[a.Location]
		if !ok || s.IsDirty == a.HasChanged {
			return prev
		}
		next := cloneMetaBoxes(prev)
		s.IsDirty = a.HasChanged
		next[a.Location] = s
		return next
	}
	return prev
}
