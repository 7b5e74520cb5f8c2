package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linkcodelearn/campus/internal/session"
)

// forgotStep is the state machine for the OTP recovery flow:
// email -> otp -> (optional) forced password reset.
type forgotStep int

const (
	fsEmail forgotStep = iota
	fsOTP
	fsReset
)

type otpRequestedMsg struct{ err error }

type forgotResetDoneMsg struct {
	sess session.Session
	err  error
}

type forgotModel struct {
	sess       *session.Store
	step       forgotStep
	email      string
	otp        string
	newPw      string
	confirmPw  string
	resetFocus int // 0=new password, 1=confirm
	submitting bool
	errMsg     string
	statusMsg  string
}

func newForgotModel(s *session.Store) forgotModel {
	return forgotModel{sess: s}
}

func (m forgotModel) Init() tea.Cmd {
	return nil
}

func (m forgotModel) Update(msg tea.Msg) (forgotModel, tea.Cmd) {
	switch msg := msg.(type) {
	case otpRequestedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = m.sess.Snapshot().LastError
			return m, nil
		}
		// Success-shaped whether or not the address is registered.
		m.step = fsOTP
		m.statusMsg = "if that address is registered, a 6-digit code is on its way"
		return m, nil

	case sessionChangedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.sess.LastError
			return m, nil
		}
		if msg.sess.RequiresPasswordReset {
			m.step = fsReset
			m.statusMsg = "verified — choose a new password to finish"
		}
		// Otherwise the OTP verify logged the user straight in and the
		// app root has already rerouted.
		return m, nil

	case forgotResetDoneMsg:
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

func (m forgotModel) updateKeys(msg tea.KeyMsg) (forgotModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.errMsg = ""

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return gotoAuthMsg{view: viewLogin} }
	case "enter", "ctrl+s":
		return m.submit()
	case "tab", "down":
		if m.step == fsReset {
			m.resetFocus = (m.resetFocus + 1) % 2
		}
	case "shift+tab", "up":
		if m.step == fsReset {
			m.resetFocus = (m.resetFocus + 1) % 2
		}
	case "backspace":
		m.edit("backspace")
	default:
		if key := msg.String(); len(key) == 1 {
			m.edit(key)
		}
	}
	return m, nil
}

func (m *forgotModel) edit(key string) {
	switch m.step {
	case fsEmail:
		m.email = editRune(m.email, key)
	case fsOTP:
		m.otp = editRune(m.otp, key)
	case fsReset:
		if m.resetFocus == 0 {
			m.newPw = editRune(m.newPw, key)
		} else {
			m.confirmPw = editRune(m.confirmPw, key)
		}
	}
}

func (m forgotModel) submit() (forgotModel, tea.Cmd) {
	s := m.sess
	switch m.step {
	case fsEmail:
		email := strings.TrimSpace(m.email)
		if email == "" {
			m.errMsg = "email is required"
			return m, nil
		}
		m.submitting = true
		return m, func() tea.Msg {
			return otpRequestedMsg{err: s.ForgotPassword(context.Background(), email)}
		}

	case fsOTP:
		email := strings.TrimSpace(m.email)
		otp := strings.TrimSpace(m.otp)
		if otp == "" {
			m.errMsg = "enter the 6-digit code"
			return m, nil
		}
		m.submitting = true
		return m, func() tea.Msg {
			sess, err := s.VerifyOTP(context.Background(), email, otp)
			return sessionChangedMsg{sess: sess, err: err}
		}

	case fsReset:
		if m.resetFocus == 0 {
			m.resetFocus = 1
			return m, nil
		}
		newPw, confirmPw := m.newPw, m.confirmPw
		m.submitting = true
		return m, func() tea.Msg {
			err := s.ResetPasswordForgot(context.Background(), newPw, confirmPw)
			return forgotResetDoneMsg{sess: s.Snapshot(), err: err}
		}
	}
	return m, nil
}

func (m forgotModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + sectionHeaderStyle.Render("recover your account") + "\n\n")

	switch m.step {
	case fsEmail:
		b.WriteString(formField("email", m.email, true, false) + "\n")
	case fsOTP:
		b.WriteString(" " + metaStyle.Render("email") + "  " + normalStyle.Render(m.email) + "\n")
		b.WriteString(formField("6-digit code", m.otp, true, false) + "\n")
	case fsReset:
		b.WriteString(formField("new password", m.newPw, m.resetFocus == 0, true) + "\n")
		b.WriteString(formField("confirm password", m.confirmPw, m.resetFocus == 1, true) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("working...") + "\n")
	case m.errMsg != "":
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	case m.statusMsg != "":
		b.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m forgotModel) helpKeys() string {
	return helpEntry("enter", "continue") + "  " + helpEntry("esc", "back to sign in") + "  " + helpEntry("ctrl+c", "quit")
}
