package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linkcodelearn/campus/internal/browser"
	"github.com/linkcodelearn/campus/internal/session"
	"github.com/linkcodelearn/campus/pkg/client"
	"github.com/linkcodelearn/campus/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewSignup
	viewForgot
	viewSetPassword
	viewCourses
	viewDashboard
	viewProfile
	viewAdmin
)

// protectedRole maps each protected view to the role it requires; ""
// means any signed-in user.
func protectedRole(v view) (domain.Role, bool) {
	switch v {
	case viewCourses, viewDashboard, viewProfile:
		return "", true
	case viewAdmin:
		return domain.RoleAdmin, true
	}
	return "", false
}

// App is the root Bubbletea model.
type App struct {
	sess    *session.Store
	client  *client.Client
	baseURL string
	view    view

	login       loginModel
	signup      signupModel
	forgot      forgotModel
	setPassword setPasswordModel
	courses     coursesModel
	dashboard   dashboardModel
	profile     profileModel
	admin       adminModel

	helpOpen   bool
	helpCursor int
	links      []helpItem

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the TUI application rooted at the login view; startup
// restoration reroutes once it settles.
func NewApp(s *session.Store, c *client.Client, baseURL string) App {
	return App{
		sess:        s,
		client:      c,
		baseURL:     baseURL,
		login:       newLoginModel(s),
		signup:      newSignupModel(s),
		forgot:      newForgotModel(s),
		setPassword: newSetPasswordModel(s),
		courses:     newCoursesModel(c),
		dashboard:   newDashboardModel(s),
		profile:     newProfileModel(s),
		admin:       newAdminModel(c),
		links:       helpLinks(baseURL),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.restore(), shimmerTickCmd())
}

func (a App) restore() tea.Cmd {
	s := a.sess
	return func() tea.Msg {
		s.Restore(context.Background())
		return sessionChangedMsg{sess: s.Snapshot()}
	}
}

func (a App) logout() tea.Cmd {
	s := a.sess
	return func() tea.Msg {
		s.Logout(context.Background())
		return sessionChangedMsg{sess: s.Snapshot()}
	}
}

// switchTo changes the active view and fires its loader when entering.
func (a App) switchTo(v view) (App, tea.Cmd) {
	if a.view == v {
		return a, nil
	}
	a.view = v
	switch v {
	case viewCourses:
		a.courses = newCoursesModel(a.client)
		return a, a.courses.Init()
	case viewAdmin:
		a.admin = newAdminModel(a.client)
		return a, a.admin.Init()
	}
	return a, nil
}

// reroute moves the root view to match the session state after any
// auth transition.
func (a App) reroute(sess session.Session) (App, tea.Cmd) {
	switch sess.State {
	case session.PasswordChangeRequired:
		a.view = viewSetPassword
		return a, nil
	case session.Authenticated:
		if sess.RequiresPasswordReset {
			// The OTP verify signed the session in, but the recovery
			// flow still owes a new password. Hold the forgot view on
			// its reset step until that lands.
			a.view = viewForgot
			return a, nil
		}
		if _, ok := protectedRole(a.view); !ok {
			return a.switchTo(viewDashboard)
		}
		return a, nil
	case session.Unauthenticated:
		if sess.Loading {
			return a, nil
		}
		if _, ok := protectedRole(a.view); ok || a.view == viewSetPassword {
			a.view = viewLogin
			a.login = newLoginModel(a.sess)
		}
		return a, nil
	}
	return a, nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + blank(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.courses, _ = a.courses.Update(bodyMsg)
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.profile, _ = a.profile.Update(bodyMsg)
		a.admin, _ = a.admin.Update(bodyMsg)

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionChangedMsg:
		var cmd tea.Cmd
		switch a.view {
		case viewLogin:
			a.login, cmd = a.login.Update(msg)
		case viewSignup:
			a.signup, cmd = a.signup.Update(msg)
		case viewForgot:
			a.forgot, cmd = a.forgot.Update(msg)
		case viewSetPassword:
			a.setPassword, cmd = a.setPassword.Update(msg)
		}
		var routeCmd tea.Cmd
		a, routeCmd = a.reroute(msg.sess)
		return a, tea.Batch(cmd, routeCmd)

	case forgotResetDoneMsg:
		var cmd tea.Cmd
		a.forgot, cmd = a.forgot.Update(msg)
		if msg.err != nil {
			return a, cmd
		}
		var routeCmd tea.Cmd
		a, routeCmd = a.reroute(msg.sess)
		return a, tea.Batch(cmd, routeCmd)

	case gotoAuthMsg:
		a.view = msg.view
		switch msg.view {
		case viewLogin:
			a.login = newLoginModel(a.sess)
		case viewSignup:
			a.signup = newSignupModel(a.sess)
		case viewForgot:
			a.forgot = newForgotModel(a.sess)
		}
		return a, nil

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(a.links)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := a.links[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+l":
			if a.sess.Snapshot().State != session.Unauthenticated {
				return a, a.logout()
			}
		}

		// Tab switching and global keys only outside text entry
		if _, ok := protectedRole(a.view); ok && !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "?":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "1":
				return a.switchTo(viewCourses)
			case "2":
				return a.switchTo(viewDashboard)
			case "3":
				return a.switchTo(viewProfile)
			case "4":
				if guard(a.sess.Snapshot(), domain.RoleAdmin) == allowView {
					return a.switchTo(viewAdmin)
				}
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewSignup:
		a.signup, cmd = a.signup.Update(msg)
	case viewForgot:
		a.forgot, cmd = a.forgot.Update(msg)
	case viewSetPassword:
		a.setPassword, cmd = a.setPassword.Update(msg)
	case viewCourses:
		a.courses, cmd = a.courses.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	case viewAdmin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewCourses:
		return a.courses.searching
	case viewProfile:
		return a.profile.state != pfNormal
	case viewAdmin:
		return a.admin.state != adNormal
	}
	return false
}

func (a App) View() string {
	sess := a.sess.Snapshot()

	// Header: centered shimmer logo plus identity line
	logo := renderShimmerLogo(a.frame)
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	identity := ""
	if sess.User != nil {
		identity = metaStyle.Render(sess.DisplayName) + " " + RoleBadge(sess.User.Role)
	} else if sess.Loading {
		identity = dimStyle.Render("restoring session...")
	}
	if identity != "" {
		idPad := (a.width - lipgloss.Width(identity)) / 2
		if idPad < 0 {
			idPad = 0
		}
		header += "\n" + strings.Repeat(" ", idPad) + identity
	} else {
		header += "\n"
	}

	tabBar := a.tabBar(sess)

	body, help := a.body(sess)
	if a.helpOpen {
		body = helpView(a.helpCursor, a.links)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Chrome budget: header(2) + tabs(1) + blank(1) + help(1)
	body = strings.TrimRight(truncateToHeight(body, a.height-5), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", header, tabBar, body, help)
}

// body picks the active sub-view, letting the route guard veto
// protected content the session no longer supports.
func (a App) body(sess session.Session) (string, string) {
	if role, ok := protectedRole(a.view); ok {
		switch guard(sess, role) {
		case showLoading:
			return " " + dimStyle.Render("restoring session..."), ""
		case redirectLogin:
			return a.login.View(), " " + a.login.helpKeys()
		case redirectHome:
			return a.dashboard.View(), " " + a.dashboard.helpKeys()
		}
	}

	switch a.view {
	case viewLogin:
		return a.login.View(), " " + a.login.helpKeys()
	case viewSignup:
		return a.signup.View(), " " + a.signup.helpKeys()
	case viewForgot:
		return a.forgot.View(), " " + a.forgot.helpKeys()
	case viewSetPassword:
		return a.setPassword.View(), " " + a.setPassword.helpKeys()
	case viewCourses:
		return a.courses.View(), " " + helpEntry("1-4", "tabs") + "  " + a.courses.helpKeys()
	case viewDashboard:
		return a.dashboard.View(), " " + helpEntry("1-4", "tabs") + "  " + a.dashboard.helpKeys()
	case viewProfile:
		return a.profile.View(), " " + helpEntry("1-4", "tabs") + "  " + a.profile.helpKeys()
	case viewAdmin:
		return a.admin.View(), " " + helpEntry("1-4", "tabs") + "  " + a.admin.helpKeys()
	}
	return "", ""
}

// tabBar renders the protected-view tabs, blank while signed out.
func (a App) tabBar(sess session.Session) string {
	if sess.State != session.Authenticated {
		return ""
	}

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Courses", viewCourses},
		{"2", "Dashboard", viewDashboard},
		{"3", "Profile", viewProfile},
	}
	if sess.User != nil && sess.User.Role == domain.RoleAdmin {
		tabs = append(tabs, tabEntry{"4", "Admin", viewAdmin})
	}

	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return bar.String()
}
