package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linkcodelearn/campus/internal/session"
)

// sessionChangedMsg carries the session snapshot after any auth operation.
// The app root reroutes views on it; the originating form shows the error.
type sessionChangedMsg struct {
	sess session.Session
	err  error
}

// gotoAuthMsg switches between the unauthenticated screens.
type gotoAuthMsg struct {
	view view
}

type loginField int

const (
	lfEmail loginField = iota
	lfPassword
	lfCount
)

type loginModel struct {
	sess       *session.Store
	fields     [lfCount]string
	focus      loginField
	submitting bool
	errMsg     string
}

func newLoginModel(s *session.Store) loginModel {
	return loginModel{sess: s}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.sess.LastError
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.errMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % lfCount
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + lfCount) % lfCount
	case "backspace":
		f := &m.fields[m.focus]
		*f = editRune(*f, "backspace")
	case "enter":
		if m.focus == lfPassword {
			return m.submit()
		}
		m.focus++
	case "ctrl+s":
		return m.submit()
	case "ctrl+n":
		return m, func() tea.Msg { return gotoAuthMsg{view: viewSignup} }
	case "ctrl+f":
		return m, func() tea.Msg { return gotoAuthMsg{view: viewForgot} }
	default:
		if key := msg.String(); len(key) == 1 {
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[lfEmail])
	password := m.fields[lfPassword]

	if email == "" || password == "" {
		m.errMsg = "email and password are required"
		return m, nil
	}

	m.submitting = true
	s := m.sess
	return m, func() tea.Msg {
		sess, err := s.Login(context.Background(), email, password)
		return sessionChangedMsg{sess: sess, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + sectionHeaderStyle.Render("sign in") + "\n\n")
	b.WriteString(formField("email", m.fields[lfEmail], m.focus == lfEmail, false) + "\n")
	b.WriteString(formField("password", m.fields[lfPassword], m.focus == lfPassword, true) + "\n")

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	case m.errMsg != "":
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n " + metaStyle.Render("new here? ctrl+n to sign up · forgot password? ctrl+f") + "\n")
	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+n", "sign up") + "  " + helpEntry("ctrl+f", "recover") + "  " + helpEntry("ctrl+c", "quit")
}
