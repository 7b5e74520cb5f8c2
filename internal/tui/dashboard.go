package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linkcodelearn/campus/internal/session"
	"github.com/linkcodelearn/campus/pkg/domain"
)

// dashboardModel is the landing view after sign-in. The panels shown
// depend on the signed-in role; it renders from the session snapshot
// and makes no calls of its own.
type dashboardModel struct {
	sess   *session.Store
	width  int
	height int
}

func newDashboardModel(s *session.Store) dashboardModel {
	return dashboardModel{sess: s}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m dashboardModel) View() string {
	sess := m.sess.Snapshot()
	u := sess.User
	if u == nil {
		return " " + dimStyle.Render("loading...") + "\n"
	}

	var b strings.Builder

	b.WriteString("\n " + selectedStyle.Render("welcome back, "+sess.DisplayName) + "  " + RoleBadge(u.Role) + "\n\n")

	if !u.ProfileComplete() {
		b.WriteString(" " + warnStyle.Render("your profile is incomplete — visit the profile tab to finish it") + "\n\n")
	}

	switch u.Role {
	case domain.RoleInstructor:
		b.WriteString(" " + sectionHeaderStyle.Render("teaching") + "\n")
		b.WriteString(" " + normalStyle.Render("your courses and learners live in the catalog tab") + "\n\n")
		b.WriteString(m.linkRow("1", "browse the catalog"))
		b.WriteString(m.linkRow("3", "update your bio and education"))
	case domain.RoleAdmin:
		b.WriteString(" " + sectionHeaderStyle.Render("administration") + "\n\n")
		b.WriteString(m.linkRow("4", "manage users and instructors"))
		b.WriteString(m.linkRow("1", "browse the catalog"))
	default:
		b.WriteString(" " + sectionHeaderStyle.Render("learning") + "\n\n")
		b.WriteString(m.linkRow("1", "browse the course catalog"))
		b.WriteString(m.linkRow("3", "view your profile"))
	}

	if !sess.ExpiresAt.IsZero() {
		b.WriteString("\n " + dimStyle.Render("session "+formatExpiry(sess.ExpiresAt)) + "\n")
	}
	return b.String()
}

func (m dashboardModel) linkRow(key, label string) string {
	return fmt.Sprintf(" %s %s\n", helpKeyStyle.Render(key), normalStyle.Render(label))
}

func (m dashboardModel) helpKeys() string {
	return helpEntry("1-4", "switch tab") + "  " + helpEntry("?", "help") + "  " + helpEntry("ctrl+l", "sign out") + "  " + helpEntry("q", "quit")
}
