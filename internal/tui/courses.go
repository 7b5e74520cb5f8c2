package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linkcodelearn/campus/pkg/client"
	"github.com/linkcodelearn/campus/pkg/domain"
)

// -- messages --

type coursesLoadedMsg struct {
	courses []domain.Course
	err     error
}

// -- model --

// coursesModel fetches the catalog once and does all filtering and
// paging locally; "r" refetches.
type coursesModel struct {
	client        *client.Client
	courses       []domain.Course
	cursor        int
	page          int
	search        string
	searching     bool
	categoryCycle int // index into domain.CourseCategories
	err           string
	loading       bool
	width         int
	height        int
}

func newCoursesModel(c *client.Client) coursesModel {
	return coursesModel{client: c, loading: true}
}

func (m coursesModel) Init() tea.Cmd {
	return m.loadCourses()
}

func (m coursesModel) loadCourses() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		courses, err := c.ListCourses(context.Background())
		return coursesLoadedMsg{courses: courses, err: err}
	}
}

func (m coursesModel) category() string {
	return domain.CourseCategories[m.categoryCycle]
}

// visible applies category then search, preserving catalog order.
func (m coursesModel) visible() []domain.Course {
	category := m.category()
	query := strings.ToLower(strings.TrimSpace(m.search))
	out := make([]domain.Course, 0, len(m.courses))
	for _, c := range m.courses {
		if category != "" && c.Category != category {
			continue
		}
		if query != "" {
			hay := strings.ToLower(c.Title + " " + c.Instructor + " " + c.Description)
			if !strings.Contains(hay, query) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func (m coursesModel) pageCount(total int) int {
	if total == 0 {
		return 1
	}
	return (total + coursesPerPage - 1) / coursesPerPage
}

// clamp keeps page and cursor valid after any filter change.
func (m *coursesModel) clamp(total int) {
	pages := m.pageCount(total)
	if m.page >= pages {
		m.page = pages - 1
	}
	if m.page < 0 {
		m.page = 0
	}
	onPage := total - m.page*coursesPerPage
	if onPage > coursesPerPage {
		onPage = coursesPerPage
	}
	if m.cursor >= onPage {
		m.cursor = onPage - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m coursesModel) Update(msg tea.Msg) (coursesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case coursesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "could not load courses")
		} else {
			m.courses = msg.courses
			m.err = ""
			m.clamp(len(m.visible()))
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m coursesModel) handleKey(msg tea.KeyMsg) (coursesModel, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			if msg.String() == "esc" {
				m.search = ""
			}
		case "backspace":
			m.search = editRune(m.search, "backspace")
		default:
			if key := msg.String(); len(key) == 1 {
				m.search = editRune(m.search, key)
			}
		}
		m.page = 0
		m.cursor = 0
		return m, nil
	}

	visible := m.visible()
	switch msg.String() {
	case "j", "down":
		onPage := len(visible) - m.page*coursesPerPage
		if onPage > coursesPerPage {
			onPage = coursesPerPage
		}
		if m.cursor < onPage-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "l", "right", "n":
		if m.page < m.pageCount(len(visible))-1 {
			m.page++
			m.cursor = 0
		}
	case "h", "left", "p":
		if m.page > 0 {
			m.page--
			m.cursor = 0
		}
	case "/":
		m.searching = true
	case "esc":
		m.search = ""
		m.categoryCycle = 0
		m.page = 0
		m.cursor = 0
	case "c":
		m.categoryCycle = (m.categoryCycle + 1) % len(domain.CourseCategories)
		m.page = 0
		m.cursor = 0
	case "r":
		m.loading = true
		return m, m.loadCourses()
	}
	return m, nil
}

func (m coursesModel) View() string {
	var b strings.Builder

	// Filter line
	parts := []string{}
	if cat := m.category(); cat != "" {
		parts = append(parts, CategoryStyle(cat).Render(cat))
	}
	if m.searching {
		parts = append(parts, accentStyle.Render("/"+m.search+"█"))
	} else if m.search != "" {
		parts = append(parts, dimStyle.Render("/"+m.search))
	}
	if len(parts) > 0 {
		b.WriteString(" " + strings.Join(parts, dimStyle.Render(" · ")) + "\n")
	}

	if m.loading && len(m.courses) == 0 {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errStyle.Render("error: "+m.err) + "\n")
		return b.String()
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString("\n " + dimStyle.Render("no courses match — press c or esc to clear filters") + "\n")
		return b.String()
	}

	start := m.page * coursesPerPage
	end := start + coursesPerPage
	if end > len(visible) {
		end = len(visible)
	}

	for i, course := range visible[start:end] {
		isActive := i == m.cursor

		cursor := " "
		title := normalStyle.Render(truncStr(course.Title, 40))
		if isActive {
			cursor = accentStyle.Render("▸")
			title = selectedStyle.Render(truncStr(course.Title, 40))
		}

		rating := ""
		if course.Rating > 0 {
			rating = starStyle.Render(fmt.Sprintf("★ %.1f", course.Rating))
		}

		row := fmt.Sprintf(" %s %s  %s  %s", cursor, title,
			CategoryStyle(course.Category).Render(course.Category),
			levelStyle(course.Level).Render(course.Level))
		if rating != "" {
			row += "  " + rating
		}
		b.WriteString(row + "\n")

		meta := fmt.Sprintf("     %s · %s · %d enrolled",
			course.Instructor, course.Duration, course.Students)
		b.WriteString(metaStyle.Render(meta) + "\n")

		if isActive && course.Description != "" {
			b.WriteString("     " + dimStyle.Render(truncStr(course.Description, 70)) + "\n")
		}
	}

	pages := m.pageCount(len(visible))
	pageLine := fmt.Sprintf("page %d/%d · %d courses", m.page+1, pages, len(visible))
	b.WriteString("\n " + dimStyle.Render(pageLine) + "\n")

	return b.String()
}

func (m coursesModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("h/l", "page") + "  " + helpEntry("/", "search") + "  " + helpEntry("c", "category") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
}
