package tui

import "testing"

func menuItems() []MenuItem {
	return []MenuItem{
		{Name: "core/paragraph", Title: "Paragraph"},
		{Name: "core/heading", Title: "Heading"},
		{Name: "core/quote", Title: "Quote", IsDisabled: true},
		{Name: "core/image", Title: "Image"},
	}
}

func TestMenuStartsOnFirstEnabled(t *testing.T) {
	m := NewMenu(menuItems())
	item, ok := m.Current()
	if !ok || item.Name != "core/paragraph" {
		t.Fatalf("current = %v %v, want core/paragraph", item, ok)
	}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu(menuItems())
	m.Next()
	m.Next()
	item, _ := m.Current()
	if item.Name != "core/image" {
		t.Fatalf("current after two moves = %q, want core/image", item.Name)
	}
	if m.IsCurrent("core/quote") {
		t.Fatalf("disabled item became current")
	}
}

func TestMenuStopsAtBoundaries(t *testing.T) {
	m := NewMenu(menuItems())
	if m.Prev() {
		t.Fatalf("Prev moved past first item")
	}
	m.Next()
	m.Next()
	if m.Next() {
		t.Fatalf("Next moved past last enabled item")
	}
	item, _ := m.Current()
	if item.Name != "core/image" {
		t.Fatalf("current = %q, want core/image", item.Name)
	}
}

func TestMenuRestoresCurrentAcrossItemChange(t *testing.T) {
	m := NewMenu(menuItems())
	m.Next() // core/heading
	m.SetItems([]MenuItem{
		{Name: "core/list", Title: "List"},
		{Name: "core/heading", Title: "Heading"},
	})
	item, _ := m.Current()
	if item.Name != "core/heading" {
		t.Fatalf("current = %q, want core/heading restored", item.Name)
	}
}

func TestMenuFallsBackToFirstEnabled(t *testing.T) {
	m := NewMenu(menuItems())
	m.Next() // core/heading
	m.SetItems([]MenuItem{
		{Name: "core/list", Title: "List", IsDisabled: true},
		{Name: "core/image", Title: "Image"},
	})
	item, ok := m.Current()
	if !ok || item.Name != "core/image" {
		t.Fatalf("current = %v %v, want fallback to core/image", item, ok)
	}
}

func TestMenuAllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Name: "core/quote", IsDisabled: true}})
	if _, ok := m.Current(); ok {
		t.Fatalf("expected no current item")
	}
	if m.Next() {
		t.Fatalf("Next moved with no enabled items")
	}
	res := m.HandleKey("enter")
	if res.Action != MenuActionNone {
		t.Fatalf("enter on empty menu = %v, want none", res.Action)
	}
}

func TestMenuHandleKey(t *testing.T) {
	m := NewMenu(menuItems())
	if res := m.HandleKey("down"); res.Action != MenuActionMoved {
		t.Fatalf("down = %v, want moved", res.Action)
	}
	res := m.HandleKey("enter")
	if res.Action != MenuActionSelected || res.Item.Name != "core/heading" {
		t.Fatalf("enter = %v %q", res.Action, res.Item.Name)
	}
	if res := m.HandleKey("esc"); res.Action != MenuActionCancelled {
		t.Fatalf("esc = %v, want cancelled", res.Action)
	}
	if res := m.HandleKey("x"); res.Action != MenuActionNone {
		t.Fatalf("unknown key = %v, want none", res.Action)
	}
}
