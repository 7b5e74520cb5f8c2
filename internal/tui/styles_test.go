package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/linkcodelearn/campus/pkg/domain"
)

func TestRoleBadgeFormat(t *testing.T) {
	tests := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleStudent, "[student]"},
		{domain.RoleInstructor, "[instructor]"},
		{domain.RoleAdmin, "[admin]"},
	}
	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			if badge := RoleBadge(tc.role); !strings.Contains(badge, tc.want) {
				t.Errorf("RoleBadge(%q) = %q, want to contain %q", tc.role, badge, tc.want)
			}
		})
	}
}

func TestCategoryStyleUnknownFallback(t *testing.T) {
	rendered := CategoryStyle("nonexistent-category").Render("nonexistent-category")
	if !strings.Contains(rendered, "nonexistent-category") {
		t.Errorf("CategoryStyle fallback did not render text: %q", rendered)
	}
}

func TestRenderShimmerLogoStable(t *testing.T) {
	a := renderShimmerLogo(0)
	if a == "" {
		t.Fatal("empty logo")
	}
	// Different frames shift colors, never content length
	b := renderShimmerLogo(7)
	if len([]rune(a)) == 0 || len([]rune(b)) == 0 {
		t.Error("logo frames should render content")
	}
}

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{128.4, 128},
		{255, 255},
		{300, 255},
	}
	for _, tc := range tests {
		if got := clampByte(tc.in); got != tc.want {
			t.Errorf("clampByte(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestHelpLinks(t *testing.T) {
	links := helpLinks("https://linkcode.dev")
	if len(links) == 0 {
		t.Fatal("no help links")
	}
	for _, l := range links {
		if l.url != "" && !strings.HasPrefix(l.url, "https://linkcode.dev") {
			t.Errorf("link %q points outside the site: %q", l.label, l.url)
		}
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, ""},
		{"expired", time.Now().Add(-time.Minute), "expired"},
		{"minutes", time.Now().Add(30*time.Minute + 30*time.Second), "30m"},
		{"hours", time.Now().Add(2*time.Hour + 5*time.Minute + 30*time.Second), "2h 5m"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatExpiry(tc.t); got != tc.want {
				t.Errorf("formatExpiry = %q, want %q", got, tc.want)
			}
		})
	}
}
