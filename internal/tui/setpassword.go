package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linkcodelearn/campus/internal/session"
)

// setPasswordModel is the forced stop for provisioned accounts: the
// user cannot reach any other view until a new password is set.
type setPasswordModel struct {
	sess       *session.Store
	newPw      string
	confirmPw  string
	focus      int // 0=new password, 1=confirm
	submitting bool
	errMsg     string
}

func newSetPasswordModel(s *session.Store) setPasswordModel {
	return setPasswordModel{sess: s}
}

func (m setPasswordModel) Init() tea.Cmd {
	return nil
}

func (m setPasswordModel) Update(msg tea.Msg) (setPasswordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.sess.LastError
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		m.errMsg = ""
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
		case "enter", "ctrl+s":
			if m.focus == 0 && msg.String() == "enter" {
				m.focus = 1
				return m, nil
			}
			return m.submit()
		case "backspace":
			m.edit("backspace")
		default:
			if key := msg.String(); len(key) == 1 {
				m.edit(key)
			}
		}
	}
	return m, nil
}

func (m *setPasswordModel) edit(key string) {
	if m.focus == 0 {
		m.newPw = editRune(m.newPw, key)
	} else {
		m.confirmPw = editRune(m.confirmPw, key)
	}
}

func (m setPasswordModel) submit() (setPasswordModel, tea.Cmd) {
	s := m.sess
	newPw, confirmPw := m.newPw, m.confirmPw
	m.submitting = true
	return m, func() tea.Msg {
		err := s.SetPassword(context.Background(), newPw, confirmPw)
		return sessionChangedMsg{sess: s.Snapshot(), err: err}
	}
}

func (m setPasswordModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + sectionHeaderStyle.Render("set your password") + "\n")
	b.WriteString(" " + dimStyle.Render("your account was provisioned with a temporary password;") + "\n")
	b.WriteString(" " + dimStyle.Render("pick your own before continuing") + "\n\n")

	b.WriteString(formField("new password", m.newPw, m.focus == 0, true) + "\n")
	b.WriteString(formField("confirm password", m.confirmPw, m.focus == 1, true) + "\n\n")

	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("saving...") + "\n")
	case m.errMsg != "":
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m setPasswordModel) helpKeys() string {
	return helpEntry("tab", "switch field") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("ctrl+l", "sign out") + "  " + helpEntry("ctrl+c", "quit")
}
