package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/linkcodelearn/campus/internal/session"
	"github.com/linkcodelearn/campus/pkg/client"
	"github.com/linkcodelearn/campus/pkg/domain"
)

func writeTestData(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": v}) //nolint:errcheck
}

func makeTestUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		FirstName: "Asha",
		LastName:  "Patel",
		Email:     "asha@linkcode.dev",
		Role:      role,
		IsActive:  true,
		Gender:    "female",
		MobileNo:  "9876543210",
		Address:   "Pune",
		Education: "BE Computer",
	}
}

// newAuthedApp spins a stub backend, signs the session in, and returns
// the app plus the stores so tests can drive protected views.
func newAuthedApp(t *testing.T, user *domain.User, extra http.HandlerFunc) (App, *session.Store, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeTestData(w, domain.LoginResult{User: user, AccessToken: "at", RefreshToken: "rt"})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeTestData(w, map[string]string{"message": "ok"})
	})
	if extra != nil {
		mux.HandleFunc("/", extra)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := client.New(srv.URL, 5*time.Second)
	s := session.NewStore(c, nil)
	if _, err := s.Login(context.Background(), user.Email, "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	a := NewApp(s, c, "http://localhost:3000")
	a.width = 80
	a.height = 30
	a, _ = a.reroute(s.Snapshot())
	return a, s, srv
}

func TestAppStartsAtLogin(t *testing.T) {
	c := client.New("http://localhost:0", time.Second)
	a := NewApp(session.NewStore(c, nil), c, "http://localhost:3000")
	if a.view != viewLogin {
		t.Errorf("expected initial view=login, got %d", a.view)
	}
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"1", viewCourses},
		{"3", viewProfile},
		{"2", viewDashboard},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			a, _, _ := newAuthedApp(t, makeTestUser(domain.RoleStudent), nil)
			if tc.wantView == viewDashboard {
				a.view = viewCourses // move away so the switch is visible
			}
			model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)})
			got := model.(App)
			if got.view != tc.wantView {
				t.Errorf("after key %q: expected view=%d, got %d", tc.key, tc.wantView, got.view)
			}
		})
	}
}

func TestAppAdminTabRequiresAdminRole(t *testing.T) {
	a, _, _ := newAuthedApp(t, makeTestUser(domain.RoleStudent), nil)
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	got := model.(App)
	if got.view == viewAdmin {
		t.Error("student reached the admin view")
	}

	a, _, _ = newAuthedApp(t, makeTestUser(domain.RoleAdmin), func(w http.ResponseWriter, r *http.Request) {
		writeTestData(w, []domain.User{})
	})
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	got = model.(App)
	if got.view != viewAdmin {
		t.Errorf("admin did not reach the admin view, got %d", got.view)
	}
}

func TestAppReroutesToSetPasswordOnFirstLogin(t *testing.T) {
	user := makeTestUser(domain.RoleInstructor)
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeTestData(w, domain.LoginResult{
			User: user, AccessToken: "at", RefreshToken: "rt",
			RequiresPasswordChange: true, IsFirstLogin: true,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := client.New(srv.URL, 5*time.Second)
	s := session.NewStore(c, nil)
	sess, err := s.Login(context.Background(), user.Email, "temp")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	a := NewApp(s, c, "http://localhost:3000")
	model, _ := a.Update(sessionChangedMsg{sess: sess})
	got := model.(App)
	if got.view != viewSetPassword {
		t.Errorf("expected set-password view after first login, got %d", got.view)
	}
}

func TestAppHoldsForgotViewThroughForcedReset(t *testing.T) {
	user := makeTestUser(domain.RoleStudent)
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/verify-otp-login", func(w http.ResponseWriter, r *http.Request) {
		writeTestData(w, domain.LoginResult{
			User: user, AccessToken: "at", RefreshToken: "rt",
			RequiresPasswordReset: true,
		})
	})
	mux.HandleFunc("/auth/reset-password-forgot", func(w http.ResponseWriter, r *http.Request) {
		writeTestData(w, map[string]string{"message": "password reset"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := client.New(srv.URL, 5*time.Second)
	s := session.NewStore(c, nil)
	a := NewApp(s, c, "http://localhost:3000")
	model, _ := a.Update(gotoAuthMsg{view: viewForgot})
	a = model.(App)

	sess, err := s.VerifyOTP(context.Background(), user.Email, "123456")
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	model, _ = a.Update(sessionChangedMsg{sess: sess})
	a = model.(App)
	if a.view != viewForgot {
		t.Fatalf("expected forgot view to survive OTP sign-in, got %d", a.view)
	}
	if a.forgot.step != fsReset {
		t.Fatalf("expected reset step after OTP sign-in, got %d", a.forgot.step)
	}

	if err := s.ResetPasswordForgot(context.Background(), "NewPass456!", "NewPass456!"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	model, _ = a.Update(forgotResetDoneMsg{sess: s.Snapshot()})
	a = model.(App)
	if a.view != viewDashboard {
		t.Errorf("expected dashboard after reset completed, got %d", a.view)
	}
}

func TestAppStaysOnForgotWhenResetFails(t *testing.T) {
	c := client.New("http://localhost:0", time.Second)
	a := NewApp(session.NewStore(c, nil), c, "http://localhost:3000")
	model, _ := a.Update(gotoAuthMsg{view: viewForgot})
	a = model.(App)

	sess := session.Session{State: session.Authenticated, RequiresPasswordReset: true, LastError: "password too weak"}
	model, _ = a.Update(forgotResetDoneMsg{sess: sess, err: errors.New("password too weak")})
	a = model.(App)
	if a.view != viewForgot {
		t.Errorf("expected forgot view to survive a failed reset, got %d", a.view)
	}
}

func TestAppLogoutReturnsToLogin(t *testing.T) {
	a, s, _ := newAuthedApp(t, makeTestUser(domain.RoleStudent), nil)
	if a.view != viewDashboard {
		t.Fatalf("expected dashboard after login, got %d", a.view)
	}

	s.Logout(context.Background())
	model, _ := a.Update(sessionChangedMsg{sess: s.Snapshot()})
	got := model.(App)
	if got.view != viewLogin {
		t.Errorf("expected login view after logout, got %d", got.view)
	}
}

func TestAppGotoAuthMsg(t *testing.T) {
	c := client.New("http://localhost:0", time.Second)
	a := NewApp(session.NewStore(c, nil), c, "http://localhost:3000")

	model, _ := a.Update(gotoAuthMsg{view: viewSignup})
	got := model.(App)
	if got.view != viewSignup {
		t.Errorf("expected signup view, got %d", got.view)
	}

	model, _ = got.Update(gotoAuthMsg{view: viewForgot})
	got = model.(App)
	if got.view != viewForgot {
		t.Errorf("expected forgot view, got %d", got.view)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a, _, _ := newAuthedApp(t, makeTestUser(domain.RoleStudent), nil)

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	got := model.(App)
	if !got.helpOpen {
		t.Fatal("expected help overlay open after ?")
	}
	if !strings.Contains(got.View(), "terms") {
		t.Error("expected help overlay to list the terms link")
	}

	model, _ = got.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got = model.(App)
	if got.helpOpen {
		t.Error("expected help overlay closed after esc")
	}
}

func TestAppViewShowsIdentity(t *testing.T) {
	a, _, _ := newAuthedApp(t, makeTestUser(domain.RoleStudent), nil)
	view := a.View()
	if !strings.Contains(view, "Asha Patel") {
		t.Errorf("expected display name in header, got:\n%s", view)
	}
}
