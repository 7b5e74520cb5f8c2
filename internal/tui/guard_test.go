package tui

import (
	"testing"

	"github.com/linkcodelearn/campus/internal/session"
	"github.com/linkcodelearn/campus/pkg/domain"
)

func TestGuard(t *testing.T) {
	student := &domain.User{Email: "s@b.com", Role: domain.RoleStudent}
	admin := &domain.User{Email: "a@b.com", Role: domain.RoleAdmin}

	tests := []struct {
		name     string
		sess     session.Session
		required domain.Role
		want     guardDecision
	}{
		{"loading defers", session.Session{Loading: true}, domain.RoleAdmin, showLoading},
		{"no user redirects to login", session.Session{}, "", redirectLogin},
		{"no user with role requirement", session.Session{}, domain.RoleAdmin, redirectLogin},
		{"wrong role redirects home", session.Session{User: student, State: session.Authenticated}, domain.RoleAdmin, redirectHome},
		{"matching role allowed", session.Session{User: admin, State: session.Authenticated}, domain.RoleAdmin, allowView},
		{"no requirement allows any user", session.Session{User: student, State: session.Authenticated}, "", allowView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guard(tt.sess, tt.required); got != tt.want {
				t.Errorf("guard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuardLoadingBeatsUser(t *testing.T) {
	// Even with a (cached) user present, loading defers the decision.
	sess := session.Session{Loading: true, User: &domain.User{Role: domain.RoleStudent}}
	if got := guard(sess, ""); got != showLoading {
		t.Errorf("guard() = %v, want showLoading", got)
	}
}
