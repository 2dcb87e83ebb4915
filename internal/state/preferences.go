package state

import (
	"encoding/json"

	"github.com/ElectricFeet/gutenberg/internal/blocks"
)

// MaxRecentInserts bounds the recent-inserts list.
const MaxRecentInserts = 8

// RecentInsert records one inserter choice: a block type plus the initial
// attributes it was inserted with.
type RecentInsert struct {
	Name              string            `json:"name"`
	InitialAttributes blocks.Attributes `json:"initialAttributes,omitempty"`
}

// Preferences holds sticky editor UI choices. Persisted across sessions
// by the prefs package; the reducer itself never touches disk.
type Preferences struct {
	Sidebars        map[string]bool `json:"sidebars"`
	Panels          map[string]bool `json:"panels"`
	Mode            Mode            `json:"mode"`
	Features        map[string]bool `json:"features"`
	RecentInserts   []RecentInsert  `json:"recentInserts"`
	InsertFrequency map[string]int  `json:"insertFrequency"`
}

// NewPreferences returns the defaults: document sidebar open on desktop,
// visual mode, no features toggled.
func NewPreferences() *Preferences {
	return &Preferences{
		Sidebars: map[string]bool{"desktop": true},
		Panels:   map[string]bool{"post-status": true},
		Mode:     ModeVisual,
		Features: map[string]bool{},
	}
}

// InsertKey is the canonical serialization of an insert choice, used to
// key the frequency counter.
func InsertKey(name string, attrs blocks.Attributes) string {
	data, err := json.Marshal(RecentInsert{Name: name, InitialAttributes: attrs})
	if err != nil {
		return name
	}
	return string(data)
}

func (p *Preferences) with(mutate func(*Preferences)) *Preferences {
	next := *p
	mutate(&next)
	return &next
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ReducePreferences handles the toggle actions and piggybacks on
// InsertBlocks to track recent inserts and insert frequency.
func ReducePreferences(prev *Preferences, action Action) *Preferences {
	switch a := action.(type) {
	case ToggleSidebar:
		value := !prev.Sidebars[a.Sidebar]
		if a.Force != nil {
			value = *a.Force
		}
		if prev.Sidebars[a.Sidebar] == value {
			return prev
		}
		return prev.with(func(n *Preferences) {
			n.Sidebars = cloneBoolMap(prev.Sidebars)
			n.Sidebars[a.Sidebar] = value
		})
	case ToggleSidebarPanel:
		return prev.with(func(n *Preferences) {
			n.Panels = cloneBoolMap(prev.Panels)
			n.Panels[a.Panel] = !prev.Panels[a.Panel]
		})
	case ToggleFeature:
		return prev.with(func(n *Preferences) {
			n.Features = cloneBoolMap(prev.Features)
			n.Features[a.Feature] = !prev.Features[a.Feature]
		})
	case SwitchMode:
		if prev.Mode == a.Mode {
			return prev
		}
		return prev.with(func(n *Preferences) { n.Mode = a.Mode })
	case InsertBlocks:
		if len(a.Blocks) == 0 {
			return prev
		}
		return prev.with(func(n *Preferences) {
			n.RecentInserts = prev.RecentInserts
			n.InsertFrequency = prev.InsertFrequency
			for _, blk := range a.Blocks {
				n.RecentInserts = recordRecentInsert(n.RecentInserts, blk)
				n.InsertFrequency = bumpInsertFrequency(n.InsertFrequency, blk)
			}
		})
	}
	return prev
}

// recordRecentInsert moves (or inserts) the choice to the front, deduped
// by structural equality of name plus initial attributes.
func recordRecentInsert(prev []RecentInsert, blk blocks.Block) []RecentInsert {
	entry := RecentInsert{Name: blk.Name, InitialAttributes: blk.Attributes}
	next := make([]RecentInsert, 0, len(prev)+1)
	next = append(next, entry)
	for _, r := range prev {
		if r.Name == entry.Name && blocks.AttributesEqual(r.InitialAttributes, entry.InitialAttributes) {
			continue
		}
		next = append(next, r)
	}
	if len(next) > MaxRecentInserts {
		next = next[:MaxRecentInserts]
	}
	return next
}

func bumpInsertFrequency(prev map[string]int, blk blocks.Block) map[string]int {
	next := make(map[string]int, len(prev)+1)
	for k, v := range prev {
		next[k] = v
	}
	next[InsertKey(blk.Name, blk.Attributes)]++
	return next
}
