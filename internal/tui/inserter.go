package tui

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ElectricFeet/gutenberg/internal/blocks"
	"github.com/ElectricFeet/gutenberg/internal/state"
)

// Inserter is the searchable block-type picker shown when adding a block.
// Without a query it lists frequently and recently used types first; with a
// query it fuzzy-matches titles and breaks ties by edit distance.
type Inserter struct {
	registry *blocks.Registry
	prefs    *state.Preferences
	menu     *Menu
	query    string
}

func NewInserter(registry *blocks.Registry, prefs *state.Preferences) *Inserter {
	ins := &Inserter{registry: registry, prefs: prefs}
	ins.rebuild()
	return ins
}

func (ins *Inserter) Query() string {
	if ins == nil {
		return ""
	}
	return ins.query
}

func (ins *Inserter) Menu() *Menu {
	if ins == nil {
		return nil
	}
	return ins.menu
}

// SetPreferences refreshes the frequency ordering, keeping the query and the
// focused item where possible.
func (ins *Inserter) SetPreferences(prefs *state.Preferences) {
	if ins == nil {
		return
	}
	ins.prefs = prefs
	ins.rebuild()
}

func (ins *Inserter) SetQuery(q string) {
	if ins == nil {
		return
	}
	ins.query = q
	ins.rebuild()
}

func (ins *Inserter) HandleKey(keyName string) MenuResult {
	if ins == nil {
		return MenuResult{Action: MenuActionNone}
	}
	switch keyName {
	case "backspace":
		if len(ins.query) > 0 {
			ins.SetQuery(ins.query[:len(ins.query)-1])
		}
		return MenuResult{Action: MenuActionNone}
	default:
		if isPrintableASCIIKey(keyName) {
			ins.SetQuery(ins.query + keyName)
			return MenuResult{Action: MenuActionNone}
		}
		return ins.menu.HandleKey(keyName)
	}
}

type scoredType struct {
	typ   blocks.Type
	score int
	dist  int
	index int
}

func (ins *Inserter) rebuild() {
	if ins == nil {
		return
	}
	q := strings.TrimSpace(ins.query)
	types := ins.registry.Types()
	scored := make([]scoredType, 0, len(types))
	for idx, t := range types {
		if q == "" {
			scored = append(scored, scoredType{typ: t, score: ins.frequency(t.Name), index: idx})
			continue
		}
		matched, score := fuzzyMatchScore(t.Title, q)
		if !matched {
			continue
		}
		scored = append(scored, scoredType{
			typ:   t,
			score: score,
			dist:  levenshtein.ComputeDistance(strings.ToLower(t.Title), strings.ToLower(q)),
			index: idx,
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].dist != scored[j].dist {
			return scored[i].dist < scored[j].dist
		}
		return scored[i].index < scored[j].index
	})

	items := make([]MenuItem, 0, len(scored))
	for _, row := range scored {
		items = append(items, MenuItem{Name: row.typ.Name, Title: row.typ.Title, Icon: row.typ.Icon})
	}
	if ins.menu == nil {
		ins.menu = NewMenu(items)
	} else {
		ins.menu.SetItems(items)
	}
}

// frequency sums insert counts across all attribute variants of a type.
func (ins *Inserter) frequency(name string) int {
	if ins.prefs == nil {
		return 0
	}
	total := 0
	for key, count := range ins.prefs.InsertFrequency {
		var entry state.RecentInsert
		if err := json.Unmarshal([]byte(key), &entry); err != nil {
			continue
		}
		if entry.Name == name {
			total += count
		}
	}
	return total
}

func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	searchFrom := 0
	for i := 0; i < len(queryLower); i++ {
		ch := queryLower[i]
		found := false
		for j := searchFrom; j < len(labelLower); j++ {
			if labelLower[j] == ch {
				matchIdx = append(matchIdx, j)
				searchFrom = j + 1
				found = true
				break
			}
		}
		if !found {
			return false, 0
		}
	}

	score := len(queryLower)
	if len(matchIdx) > 0 && matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127
}
