package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linkcodelearn/campus/pkg/client"
	"github.com/linkcodelearn/campus/pkg/domain"
)

// adminState is the state machine for user management interactions.
type adminState int

const (
	adNormal    adminState = iota
	adSearching            // typing into the search filter
	adDeleting             // delete confirmation on selected user
	adCreating             // provisioning a new instructor
)

// -- messages --

type adminStatsMsg struct {
	stats *domain.DashboardStats
	err   error
}

type adminUsersMsg struct {
	users []domain.User
	err   error
}

type adminActionMsg struct {
	action string
	err    error
}

type adminCopyMsg struct{ err error }

type instructorCreatedMsg struct {
	user *domain.User
	err  error
}

// -- model --

// roleOrder is the cycle order for role filtering.
var roleOrder = []string{"", "student", "instructor", "admin"}

type instructorField int

const (
	ifFirstName instructorField = iota
	ifLastName
	ifEmail
	ifFieldCount
)

var instructorFieldLabels = [ifFieldCount]string{"first name", "last name", "email"}

type adminModel struct {
	client *client.Client
	state  adminState

	stats  *domain.DashboardStats
	users  []domain.User
	cursor int

	roleCycle int    // index into roleOrder
	search    string // committed search filter
	searchBuf string // in-progress search input

	// instructor provisioning form
	createFields [ifFieldCount]string
	createFocus  instructorField

	loading    bool
	submitting bool
	err        string
	statusMsg  string
	width      int
	height     int
}

func newAdminModel(c *client.Client) adminModel {
	return adminModel{client: c, loading: true}
}

func (m adminModel) Init() tea.Cmd {
	return tea.Batch(m.loadStats(), m.loadUsers())
}

func (m adminModel) loadStats() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		stats, err := c.DashboardStats(context.Background())
		return adminStatsMsg{stats: stats, err: err}
	}
}

func (m adminModel) loadUsers() tea.Cmd {
	c := m.client
	filters := domain.UserFilters{Role: domain.Role(roleOrder[m.roleCycle]), Search: m.search}
	return func() tea.Msg {
		users, err := c.ListUsers(context.Background(), filters)
		return adminUsersMsg{users: users, err: err}
	}
}

func (m adminModel) selected() *domain.User {
	if len(m.users) == 0 || m.cursor >= len(m.users) {
		return nil
	}
	return &m.users[m.cursor]
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case adminStatsMsg:
		if msg.err == nil {
			m.stats = msg.stats
		}

	case adminUsersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "could not load users")
		} else {
			m.users = msg.users
			m.err = ""
			if m.cursor >= len(m.users) {
				m.cursor = 0
			}
		}

	case adminActionMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = client.Message(msg.err, msg.action+" failed")
			return m, nil
		}
		m.err = ""
		m.statusMsg = msg.action + " done"
		m.loading = true
		return m, tea.Batch(m.loadUsers(), m.loadStats())

	case adminCopyMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "email copied"
		}

	case instructorCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "could not create instructor")
			return m, nil
		}
		m.state = adNormal
		m.createFields = [ifFieldCount]string{}
		m.err = ""
		m.statusMsg = "instructor provisioned: " + msg.user.Email
		m.loading = true
		return m, tea.Batch(m.loadUsers(), m.loadStats())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m adminModel) handleKey(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch m.state {
	case adSearching:
		return m.handleSearchKey(msg)
	case adDeleting:
		return m.handleDeleteKey(msg)
	case adCreating:
		return m.handleCreateKey(msg)
	}

	m.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.users)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "f":
		m.roleCycle = (m.roleCycle + 1) % len(roleOrder)
		m.cursor = 0
		m.loading = true
		return m, m.loadUsers()
	case "/":
		m.state = adSearching
		m.searchBuf = m.search
	case "a":
		if u := m.selected(); u != nil {
			return m.toggleActive(u)
		}
	case "x":
		if m.selected() != nil {
			m.state = adDeleting
		}
	case "c":
		if u := m.selected(); u != nil {
			email := u.Email
			return m, func() tea.Msg {
				return adminCopyMsg{err: clipboard.WriteAll(email)}
			}
		}
	case "i":
		m.state = adCreating
		m.createFields = [ifFieldCount]string{}
		m.createFocus = ifFirstName
		m.err = ""
	case "r":
		m.loading = true
		return m, tea.Batch(m.loadUsers(), m.loadStats())
	}
	return m, nil
}

func (m adminModel) toggleActive(u *domain.User) (adminModel, tea.Cmd) {
	c := m.client
	id := u.ID.String()
	m.submitting = true
	if u.IsActive {
		return m, func() tea.Msg {
			return adminActionMsg{action: "deactivate", err: c.DeactivateUser(context.Background(), id)}
		}
	}
	return m, func() tea.Msg {
		return adminActionMsg{action: "activate", err: c.ActivateUser(context.Background(), id)}
	}
}

func (m adminModel) handleSearchKey(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state = adNormal
		m.search = strings.TrimSpace(m.searchBuf)
		m.cursor = 0
		m.loading = true
		return m, m.loadUsers()
	case "esc":
		m.state = adNormal
		if m.search != "" {
			m.search = ""
			m.cursor = 0
			m.loading = true
			return m, m.loadUsers()
		}
	case "backspace":
		m.searchBuf = editRune(m.searchBuf, "backspace")
	case " ":
		m.searchBuf = editRune(m.searchBuf, " ")
	default:
		if key := msg.String(); len(key) == 1 {
			m.searchBuf = editRune(m.searchBuf, key)
		}
	}
	return m, nil
}

func (m adminModel) handleDeleteKey(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		u := m.selected()
		m.state = adNormal
		if u == nil {
			return m, nil
		}
		c := m.client
		id := u.ID.String()
		m.submitting = true
		return m, func() tea.Msg {
			return adminActionMsg{action: "delete", err: c.DeleteUser(context.Background(), id)}
		}
	case "n", "esc":
		m.state = adNormal
	}
	return m, nil
}

func (m adminModel) handleCreateKey(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	m.err = ""
	switch msg.String() {
	case "esc":
		m.state = adNormal
	case "tab", "down":
		m.createFocus = (m.createFocus + 1) % ifFieldCount
	case "shift+tab", "up":
		m.createFocus = (m.createFocus + ifFieldCount - 1) % ifFieldCount
	case "enter":
		if m.createFocus < ifFieldCount-1 {
			m.createFocus++
			return m, nil
		}
		return m.submitCreate()
	case "ctrl+s":
		return m.submitCreate()
	case "backspace":
		m.createFields[m.createFocus] = editRune(m.createFields[m.createFocus], "backspace")
	case " ":
		m.createFields[m.createFocus] = editRune(m.createFields[m.createFocus], " ")
	default:
		if key := msg.String(); len(key) == 1 {
			m.createFields[m.createFocus] = editRune(m.createFields[m.createFocus], key)
		}
	}
	return m, nil
}

func (m adminModel) submitCreate() (adminModel, tea.Cmd) {
	req := domain.CreateInstructorRequest{
		FirstName: strings.TrimSpace(m.createFields[ifFirstName]),
		LastName:  strings.TrimSpace(m.createFields[ifLastName]),
		Email:     strings.TrimSpace(m.createFields[ifEmail]),
	}
	if err := req.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}
	c := m.client
	m.submitting = true
	return m, func() tea.Msg {
		user, err := c.CreateInstructor(context.Background(), req)
		return instructorCreatedMsg{user: user, err: err}
	}
}

func (m adminModel) View() string {
	var b strings.Builder

	if m.state == adCreating {
		b.WriteString("\n " + sectionHeaderStyle.Render("provision instructor") + "\n")
		b.WriteString(" " + dimStyle.Render("they receive a temporary password and must replace it on first sign-in") + "\n\n")
		for f := instructorField(0); f < ifFieldCount; f++ {
			b.WriteString(formField(instructorFieldLabels[f], m.createFields[f], f == m.createFocus, false) + "\n")
		}
		b.WriteString("\n")
		if m.submitting {
			b.WriteString(" " + dimStyle.Render("creating...") + "\n")
		} else if m.err != "" {
			b.WriteString(" " + errStyle.Render(m.err) + "\n")
		}
		return b.String()
	}

	// Stats line
	if m.stats != nil {
		stats := fmt.Sprintf("%d users · %d students · %d instructors · %d active",
			m.stats.TotalUsers, m.stats.TotalStudents, m.stats.TotalInstructors, m.stats.ActiveUsers)
		b.WriteString(" " + metaStyle.Render(stats) + "\n")
	}

	// Filter line
	parts := []string{}
	if role := roleOrder[m.roleCycle]; role != "" {
		parts = append(parts, RoleStyle(domain.Role(role)).Render(role))
	}
	if m.state == adSearching {
		parts = append(parts, accentStyle.Render("/"+m.searchBuf+"█"))
	} else if m.search != "" {
		parts = append(parts, dimStyle.Render("/"+m.search))
	}
	if len(parts) > 0 {
		b.WriteString(" " + strings.Join(parts, dimStyle.Render(" · ")) + "\n")
	}

	if m.loading && len(m.users) == 0 {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errStyle.Render("error: "+m.err) + "\n")
		return b.String()
	}
	if len(m.users) == 0 {
		b.WriteString("\n " + dimStyle.Render("no users match") + "\n")
		return b.String()
	}

	for i, u := range m.users {
		isActive := i == m.cursor

		cursor := " "
		name := normalStyle.Render(fmt.Sprintf("%-24s", truncStr(u.DisplayName(), 24)))
		if isActive {
			cursor = accentStyle.Render("▸")
			name = selectedStyle.Render(fmt.Sprintf("%-24s", truncStr(u.DisplayName(), 24)))
		}

		status := okStyle.Render("active")
		if !u.IsActive {
			status = errStyle.Render("inactive")
		}

		row := fmt.Sprintf(" %s %s %s  %s  %s", cursor, name, RoleBadge(u.Role),
			metaStyle.Render(truncStr(u.Email, 30)), status)
		b.WriteString(row + "\n")
	}

	if m.state == adDeleting {
		if u := m.selected(); u != nil {
			b.WriteString("\n " + errStyle.Render("delete "+u.Email+"? (y/n)") + "\n")
		}
	} else if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}

func (m adminModel) helpKeys() string {
	switch m.state {
	case adCreating:
		return helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "create") + "  " + helpEntry("esc", "cancel")
	case adSearching:
		return helpEntry("enter", "apply") + "  " + helpEntry("esc", "clear")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("f", "role") + "  " + helpEntry("/", "search") + "  " + helpEntry("a", "toggle active") + "  " + helpEntry("x", "delete") + "  " + helpEntry("c", "copy email") + "  " + helpEntry("i", "new instructor") + "  " + helpEntry("r", "refresh")
}
