package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeString(m loginModel, s string) loginModel {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestLoginTypingAndFocus(t *testing.T) {
	m := newLoginModel(nil)
	m = typeString(m, "a@b.co")
	if m.fields[lfEmail] != "a@b.co" {
		t.Errorf("email field = %q, want %q", m.fields[lfEmail], "a@b.co")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != lfPassword {
		t.Errorf("focus = %d after tab, want password", m.focus)
	}
	m = typeString(m, "hunter2")
	if m.fields[lfPassword] != "hunter2" {
		t.Errorf("password field = %q, want %q", m.fields[lfPassword], "hunter2")
	}
}

func TestLoginMasksPassword(t *testing.T) {
	m := newLoginModel(nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeString(m, "secret")

	view := m.View()
	if strings.Contains(view, "secret") {
		t.Errorf("password visible in view:\n%s", view)
	}
	if !strings.Contains(view, "••••••") {
		t.Errorf("expected masked password in view:\n%s", view)
	}
}

func TestLoginEmptySubmitIsLocalError(t *testing.T) {
	m := newLoginModel(nil)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("expected no command for empty submit")
	}
	if m.errMsg == "" {
		t.Error("expected local validation error for empty submit")
	}
}

func TestLoginNavigatesToSignupAndForgot(t *testing.T) {
	m := newLoginModel(nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if cmd == nil {
		t.Fatal("expected command for ctrl+n")
	}
	if msg, ok := cmd().(gotoAuthMsg); !ok || msg.view != viewSignup {
		t.Errorf("ctrl+n produced %#v, want gotoAuthMsg{viewSignup}", cmd())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if cmd == nil {
		t.Fatal("expected command for ctrl+f")
	}
	if msg, ok := cmd().(gotoAuthMsg); !ok || msg.view != viewForgot {
		t.Errorf("ctrl+f produced %#v, want gotoAuthMsg{viewForgot}", cmd())
	}
}
