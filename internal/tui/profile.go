package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linkcodelearn/campus/internal/session"
	"github.com/linkcodelearn/campus/pkg/domain"
)

// profileState is the state machine for profile interactions.
type profileState int

const (
	pfNormal   profileState = iota
	pfEditing               // completing or editing profile fields
	pfPassword              // authenticated password change
)

// -- messages --

type profileSavedMsg struct {
	sess session.Session
	err  error
}

type passwordChangedMsg struct {
	sess session.Session
	err  error
}

// -- model --

type profileField int

const (
	pfAddress profileField = iota
	pfEducation
	pfBio
	pfMobile
	pfFieldCount
)

var profileFieldLabels = [pfFieldCount]string{"address", "education", "bio", "mobile"}

type profileModel struct {
	sess  *session.Store
	state profileState

	// editing
	fields [pfFieldCount]string
	focus  profileField

	// password change
	pwFields [3]string // current, new, confirm
	pwFocus  int

	submitting bool
	errMsg     string
	statusMsg  string
	width      int
	height     int
}

func newProfileModel(s *session.Store) profileModel {
	return profileModel{sess: s}
}

func (m profileModel) Init() tea.Cmd {
	return nil
}

// startEditing seeds the form from the current user so edits do not
// blank fields the user leaves untouched.
func (m *profileModel) startEditing() {
	u := m.sess.Snapshot().User
	if u != nil {
		m.fields[pfAddress] = u.Address
		m.fields[pfEducation] = u.Education
		m.fields[pfBio] = u.Bio
		m.fields[pfMobile] = u.MobileNo
	}
	m.focus = pfAddress
	m.state = pfEditing
	m.errMsg = ""
	m.statusMsg = ""
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case profileSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.sess.LastError
			return m, nil
		}
		m.state = pfNormal
		m.statusMsg = "profile saved"
		return m, nil

	case passwordChangedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.sess.LastError
			return m, nil
		}
		m.state = pfNormal
		m.pwFields = [3]string{}
		m.statusMsg = "password changed"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m profileModel) handleKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch m.state {
	case pfEditing:
		return m.handleEditKey(msg)
	case pfPassword:
		return m.handlePasswordKey(msg)
	}

	switch msg.String() {
	case "e":
		m.startEditing()
	case "w":
		m.state = pfPassword
		m.pwFields = [3]string{}
		m.pwFocus = 0
		m.errMsg = ""
		m.statusMsg = ""
	}
	return m, nil
}

func (m profileModel) handleEditKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	m.errMsg = ""
	switch msg.String() {
	case "esc":
		m.state = pfNormal
	case "tab", "down":
		m.focus = (m.focus + 1) % pfFieldCount
	case "shift+tab", "up":
		m.focus = (m.focus + pfFieldCount - 1) % pfFieldCount
	case "enter":
		if m.focus < pfFieldCount-1 {
			m.focus++
			return m, nil
		}
		return m.submitProfile()
	case "ctrl+s":
		return m.submitProfile()
	case "backspace":
		m.fields[m.focus] = editRune(m.fields[m.focus], "backspace")
	case " ":
		m.fields[m.focus] = editRune(m.fields[m.focus], " ")
	default:
		if key := msg.String(); len(key) == 1 {
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m profileModel) submitProfile() (profileModel, tea.Cmd) {
	s := m.sess
	req := domain.CompleteProfileRequest{
		Address:   strings.TrimSpace(m.fields[pfAddress]),
		Education: strings.TrimSpace(m.fields[pfEducation]),
		Bio:       strings.TrimSpace(m.fields[pfBio]),
		MobileNo:  strings.TrimSpace(m.fields[pfMobile]),
	}
	if err := req.Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.submitting = true
	return m, func() tea.Msg {
		err := s.CompleteProfile(context.Background(), req)
		return profileSavedMsg{sess: s.Snapshot(), err: err}
	}
}

func (m profileModel) handlePasswordKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	m.errMsg = ""
	switch msg.String() {
	case "esc":
		m.state = pfNormal
		m.pwFields = [3]string{}
	case "tab", "down":
		m.pwFocus = (m.pwFocus + 1) % 3
	case "shift+tab", "up":
		m.pwFocus = (m.pwFocus + 2) % 3
	case "enter":
		if m.pwFocus < 2 {
			m.pwFocus++
			return m, nil
		}
		return m.submitPassword()
	case "ctrl+s":
		return m.submitPassword()
	case "backspace":
		m.pwFields[m.pwFocus] = editRune(m.pwFields[m.pwFocus], "backspace")
	default:
		if key := msg.String(); len(key) == 1 {
			m.pwFields[m.pwFocus] = editRune(m.pwFields[m.pwFocus], key)
		}
	}
	return m, nil
}

func (m profileModel) submitPassword() (profileModel, tea.Cmd) {
	s := m.sess
	current, newPw, confirmPw := m.pwFields[0], m.pwFields[1], m.pwFields[2]
	m.submitting = true
	return m, func() tea.Msg {
		err := s.ResetPassword(context.Background(), current, newPw, confirmPw)
		return passwordChangedMsg{sess: s.Snapshot(), err: err}
	}
}

func (m profileModel) View() string {
	sess := m.sess.Snapshot()
	u := sess.User
	if u == nil {
		return " " + dimStyle.Render("loading...") + "\n"
	}

	var b strings.Builder

	switch m.state {
	case pfEditing:
		header := "edit profile"
		if !u.ProfileComplete() {
			header = "complete your profile"
		}
		b.WriteString("\n " + sectionHeaderStyle.Render(header) + "\n\n")
		for f := profileField(0); f < pfFieldCount; f++ {
			b.WriteString(formField(profileFieldLabels[f], m.fields[f], f == m.focus, false) + "\n")
		}

	case pfPassword:
		b.WriteString("\n " + sectionHeaderStyle.Render("change password") + "\n\n")
		labels := [3]string{"current password", "new password", "confirm password"}
		for i, label := range labels {
			b.WriteString(formField(label, m.pwFields[i], i == m.pwFocus, true) + "\n")
		}

	default:
		b.WriteString("\n " + selectedStyle.Render(sess.DisplayName) + "  " + RoleBadge(u.Role) + "\n")
		b.WriteString(" " + metaStyle.Render(u.Email) + "\n\n")

		if !u.ProfileComplete() {
			b.WriteString(" " + warnStyle.Render("profile incomplete — press e to finish it") + "\n\n")
		}

		rows := []struct{ label, value string }{
			{"address", u.Address},
			{"education", u.Education},
			{"bio", u.Bio},
			{"mobile", u.MobileNo},
			{"gender", u.Gender},
		}
		for _, r := range rows {
			value := r.value
			if value == "" {
				value = dimStyle.Render("not set")
			} else {
				value = normalStyle.Render(value)
			}
			b.WriteString(fmt.Sprintf(" %s %s\n", metaStyle.Render(fmt.Sprintf("%-12s", r.label)), value))
		}

		if !u.CreatedAt.IsZero() {
			b.WriteString(fmt.Sprintf(" %s %s\n",
				metaStyle.Render(fmt.Sprintf("%-12s", "joined")),
				dimStyle.Render(formatTime(u.CreatedAt))))
		}
		if !sess.ExpiresAt.IsZero() {
			b.WriteString(fmt.Sprintf(" %s %s\n",
				metaStyle.Render(fmt.Sprintf("%-12s", "session")),
				dimStyle.Render(formatExpiry(sess.ExpiresAt))))
		}
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("saving...") + "\n")
	case m.errMsg != "":
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	case m.statusMsg != "":
		b.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m profileModel) helpKeys() string {
	switch m.state {
	case pfEditing, pfPassword:
		return helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("e", "edit profile") + "  " + helpEntry("w", "change password") + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
}
