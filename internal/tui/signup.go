package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linkcodelearn/campus/internal/session"
	"github.com/linkcodelearn/campus/pkg/domain"
)

type signupField int

const (
	sfFirstName signupField = iota
	sfLastName
	sfEmail
	sfMobile
	sfGender
	sfPassword
	sfConfirm
	sfCount
)

// genderCycle is the h/l selection order for the gender field.
var genderCycle = []string{"", "female", "male", "other"}

type signupModel struct {
	sess       *session.Store
	fields     [sfCount]string
	focus      signupField
	submitting bool
	errMsg     string
}

func newSignupModel(s *session.Store) signupModel {
	return signupModel{sess: s}
}

func (m signupModel) Init() tea.Cmd {
	return nil
}

func (m signupModel) Update(msg tea.Msg) (signupModel, tea.Cmd) {
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

func (m signupModel) updateKeys(msg tea.KeyMsg) (signupModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.errMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % sfCount
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + sfCount) % sfCount
	case "backspace":
		if m.focus != sfGender {
			f := &m.fields[m.focus]
			*f = editRune(*f, "backspace")
		}
	case "enter":
		if m.focus == sfConfirm {
			return m.submit()
		}
		m.focus++
	case "ctrl+s":
		return m.submit()
	case "esc":
		return m, func() tea.Msg { return gotoAuthMsg{view: viewLogin} }
	default:
		key := msg.String()
		if m.focus == sfGender {
			switch key {
			case "l":
				m.fields[sfGender] = cycleNext(genderCycle, m.fields[sfGender], 1)
			case "h":
				m.fields[sfGender] = cycleNext(genderCycle, m.fields[sfGender], -1)
			}
			return m, nil
		}
		if len(key) == 1 {
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m signupModel) submit() (signupModel, tea.Cmd) {
	req := domain.SignupRequest{
		FirstName:       strings.TrimSpace(m.fields[sfFirstName]),
		LastName:        strings.TrimSpace(m.fields[sfLastName]),
		Email:           strings.TrimSpace(m.fields[sfEmail]),
		MobileNo:        strings.TrimSpace(m.fields[sfMobile]),
		Gender:          m.fields[sfGender],
		Password:        m.fields[sfPassword],
		ConfirmPassword: m.fields[sfConfirm],
	}
	if err := req.Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.submitting = true
	s := m.sess
	return m, func() tea.Msg {
		sess, err := s.Signup(context.Background(), req)
		return sessionChangedMsg{sess: sess, err: err}
	}
}

func (m signupModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + sectionHeaderStyle.Render("create a student account") + "\n\n")
	b.WriteString(formField("first name", m.fields[sfFirstName], m.focus == sfFirstName, false) + "\n")
	b.WriteString(formField("last name", m.fields[sfLastName], m.focus == sfLastName, false) + "\n")
	b.WriteString(formField("email", m.fields[sfEmail], m.focus == sfEmail, false) + "\n")
	b.WriteString(formField("mobile", m.fields[sfMobile], m.focus == sfMobile, false) + "\n")
	b.WriteString(cycleField("gender", m.fields[sfGender], m.focus == sfGender) + "\n")
	b.WriteString(formField("password", m.fields[sfPassword], m.focus == sfPassword, true) + "\n")
	b.WriteString(formField("confirm password", m.fields[sfConfirm], m.focus == sfConfirm, true) + "\n")

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("creating account...") + "\n")
	case m.errMsg != "":
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m signupModel) helpKeys() string {
	return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "sign up") + "  " + helpEntry("esc", "back") + "  " + helpEntry("ctrl+c", "quit")
}
