package tui

// MenuItem is one selectable entry in a block-type menu. Disabled items stay
// visible but can never hold focus.
type MenuItem struct {
	Name       string
	Title      string
	Icon       string
	IsDisabled bool
}

type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionMoved
	MenuActionSelected
	MenuActionCancelled
)

type MenuResult struct {
	Action MenuAction
	Item   MenuItem
}

// Menu tracks a single "current" item across an ordered item set. Focus rides
// on the enabled subset only: when the item set changes the menu tries to keep
// focus on the same Name, falling back to the first enabled item.
type Menu struct {
	items   []MenuItem
	enabled []int // indices into items
	current string
}

func NewMenu(items []MenuItem) *Menu {
	m := &Menu{}
	m.SetItems(items)
	return m
}

func (m *Menu) Items() []MenuItem {
	if m == nil {
		return nil
	}
	return append([]MenuItem(nil), m.items...)
}

// SetItems replaces the item set. The previous current item keeps focus when
// it still exists and is enabled; otherwise focus falls back to the first
// enabled item.
func (m *Menu) SetItems(items []MenuItem) {
	if m == nil {
		return
	}
	m.items = append([]MenuItem(nil), items...)
	m.enabled = m.enabled[:0]
	for i, item := range m.items {
		if !item.IsDisabled {
			m.enabled = append(m.enabled, i)
		}
	}
	if m.enabledPos(m.current) >= 0 {
		return
	}
	if len(m.enabled) > 0 {
		m.current = m.items[m.enabled[0]].Name
	} else {
		m.current = ""
	}
}

// Current reports the item that holds focus. ok is false when no item is
// enabled.
func (m *Menu) Current() (MenuItem, bool) {
	if m == nil {
		return MenuItem{}, false
	}
	pos := m.enabledPos(m.current)
	if pos < 0 {
		return MenuItem{}, false
	}
	return m.items[m.enabled[pos]], true
}

// IsCurrent reports whether the named item holds focus. At most one item is
// current at a time.
func (m *Menu) IsCurrent(name string) bool {
	if m == nil {
		return false
	}
	return m.current != "" && m.current == name
}

func (m *Menu) Next() bool {
	return m.move(1)
}

func (m *Menu) Prev() bool {
	return m.move(-1)
}

func (m *Menu) move(delta int) bool {
	if m == nil || len(m.enabled) == 0 {
		return false
	}
	pos := m.enabledPos(m.current)
	if pos < 0 {
		m.current = m.items[m.enabled[0]].Name
		return true
	}
	next := pos + delta
	if next < 0 || next >= len(m.enabled) {
		return false
	}
	m.current = m.items[m.enabled[next]].Name
	return true
}

func (m *Menu) HandleKey(keyName string) MenuResult {
	if m == nil {
		return MenuResult{Action: MenuActionNone}
	}
	switch keyName {
	case "down", "right", "j", "l":
		if m.Next() {
			return MenuResult{Action: MenuActionMoved}
		}
		return MenuResult{Action: MenuActionNone}
	case "up", "left", "k", "h":
		if m.Prev() {
			return MenuResult{Action: MenuActionMoved}
		}
		return MenuResult{Action: MenuActionNone}
	case "enter":
		item, ok := m.Current()
		if !ok {
			return MenuResult{Action: MenuActionNone}
		}
		return MenuResult{Action: MenuActionSelected, Item: item}
	case "esc":
		return MenuResult{Action: MenuActionCancelled}
	default:
		return MenuResult{Action: MenuActionNone}
	}
}

func (m *Menu) enabledPos(name string) int {
	if name == "" {
		return -1
	}
	for pos, idx := range m.enabled {
		if m.items[idx].Name == name {
			return pos
		}
	}
	return -1
}
