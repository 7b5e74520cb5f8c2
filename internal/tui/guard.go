package tui

import (
	"github.com/linkcodelearn/campus/internal/session"
	"github.com/linkcodelearn/campus/pkg/domain"
)

// guardDecision is the route guard's verdict for a protected view.
type guardDecision int

const (
	// allowView renders the protected content.
	allowView guardDecision = iota
	// showLoading defers the decision while session restoration runs.
	showLoading
	// redirectLogin sends an unauthenticated session to the login view.
	redirectLogin
	// redirectHome sends an authenticated but wrong-role session home.
	redirectHome
)

// guard decides whether a protected view may render. requiredRole == ""
// means any authenticated user.
func guard(sess session.Session, requiredRole domain.Role) guardDecision {
	if sess.Loading {
		return showLoading
	}
	if sess.User == nil {
		return redirectLogin
	}
	if requiredRole != "" && sess.User.Role != requiredRole {
		return redirectHome
	}
	return allowView
}
