package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type activated int

func testMenu() Menu {
	item := func(n int, disabled bool) MenuItem {
		return MenuItem{
			Label:    string(rune('A' + n)),
			Disabled: disabled,
			Action:   func() tea.Cmd { return func() tea.Msg { return activated(n) } },
		}
	}
	return NewMenu([]MenuItem{item(0, true), item(1, false), item(2, true), item(3, false)})
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := testMenu()
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down at end = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}
}

func TestMenu_EnterAndDigits(t *testing.T) {
	m := testMenu()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil || cmd() != activated(1) {
		t.Fatal("enter should activate the selected item")
	}

	m, cmd = m.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if cmd == nil || cmd() != activated(3) || m.Selected != 3 {
		t.Fatal("digit 4 should activate the fourth item")
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd != nil {
		t.Error("digit for a disabled item should do nothing")
	}
}

func TestChoices_View(t *testing.T) {
	c := Choices{Options: []string{"int", "String"}, Selected: 1, CorrectIndex: 0}
	view := c.View(40)
	if !strings.Contains(view, "▸ B)  String") {
		t.Errorf("selected option not marked:\n%s", view)
	}

	c.Answered = true
	view = c.View(40)
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("answered view should mark correct and wrong picks:\n%s", view)
	}
}

func TestOptionLetter(t *testing.T) {
	if OptionLetter(0) != "A" || OptionLetter(5) != "F" || OptionLetter(6) != "7" {
		t.Error("unexpected option letters")
	}
}

func TestProgressBar_Fraction(t *testing.T) {
	tests := []struct {
		cur, total int
		want       float64
	}{
		{0, 5, 0},
		{5, 5, 1},
		{2, 4, 0.5},
		{3, 0, 0},
		{9, 3, 1},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.cur, tt.total, 20).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.cur, tt.total, got, tt.want)
		}
	}
}
