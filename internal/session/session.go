// Package session owns the client-side record of the authenticated
// principal. All mutation funnels through named operations on Store, so
// views never write session fields directly.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/linkcodelearn/campus/internal/store"
	"github.com/linkcodelearn/campus/pkg/client"
	"github.com/linkcodelearn/campus/pkg/domain"
)

// State is the session lifecycle position.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	// PasswordChangeRequired is the instructor first-login hold: the
	// account is authenticated but must set its own password before any
	// protected view renders.
	PasswordChangeRequired
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case PasswordChangeRequired:
		return "password-change-required"
	}
	return "unknown"
}

// Session is an immutable snapshot handed to views.
type Session struct {
	State       State
	User        *domain.User
	DisplayName string
	// Loading is true only during the one-time startup restoration check.
	Loading bool
	// RequiresPasswordChange and IsFirstLogin are meaningful only right
	// after a login or OTP verify; cleared on password set and on logout.
	RequiresPasswordChange bool
	IsFirstLogin           bool
	// RequiresPasswordReset marks the forgot-password OTP branch.
	RequiresPasswordReset bool
	// ExpiresAt is the access-token expiry, zero when the token is opaque.
	ExpiresAt time.Time
	LastError string
}

// Store is the process-wide session state store. One instance per running
// client; constructed at startup and injected into the view tree.
type Store struct {
	mu     sync.Mutex
	client *client.Client
	cache  *store.Store

	state                  State
	user                   *domain.User
	displayName            string
	loading                bool
	requiresPasswordChange bool
	isFirstLogin           bool
	requiresPasswordReset  bool
	expiresAt              time.Time
	lastError              string

	// gen invalidates in-flight operations: a completion that arrives
	// after teardown started must be a no-op, not an error.
	gen int
}

// NewStore creates the session store. cache may be nil when no durable
// directory is available; persistence is then skipped silently.
func NewStore(c *client.Client, cache *store.Store) *Store {
	return &Store{client: c, cache: cache, loading: true}
}

// Snapshot returns the current session for rendering.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Session{
		State:                  s.state,
		User:                   s.user,
		DisplayName:            s.displayName,
		Loading:                s.loading,
		RequiresPasswordChange: s.requiresPasswordChange,
		IsFirstLogin:           s.isFirstLogin,
		RequiresPasswordReset:  s.requiresPasswordReset,
		ExpiresAt:              s.expiresAt,
		LastError:              s.lastError,
	}
}

// CachedUser returns the locally cached record from a previous run, used to
// paint the UI while Restore is still in flight.
func (s *Store) CachedUser() *domain.User {
	if s.cache == nil {
		return nil
	}
	return s.cache.Load()
}

// Restore runs the one-time "who am I" check at startup. Success populates
// the user; any failure leaves the session unauthenticated. Loading turns
// false either way.
func (s *Store) Restore(ctx context.Context) {
	gen := s.generation()
	u, err := s.client.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.loading = false
	if err != nil {
		return
	}
	s.setUserLocked(u)
	s.state = Authenticated
	s.persistLocked(u)
}

// Login authenticates with email and password. On success the session lands
// in Authenticated, or in PasswordChangeRequired for an instructor first
// login. On failure it stays unauthenticated with LastError set.
func (s *Store) Login(ctx context.Context, email, password string) (Session, error) {
	req := domain.LoginRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return s.fail(err.Error()), err
	}

	gen := s.beginAuth()
	res, err := s.client.Login(ctx, email, password)
	return s.finishLogin(gen, res, err, "Login failed")
}

// Signup registers a student account and logs it straight in.
func (s *Store) Signup(ctx context.Context, req domain.SignupRequest) (Session, error) {
	if err := req.Validate(); err != nil {
		return s.fail(err.Error()), err
	}

	gen := s.beginAuth()
	res, err := s.client.Signup(ctx, req)
	return s.finishLogin(gen, res, err, "Signup failed")
}

// VerifyOTP proves email ownership with the mailed code and logs in. The
// returned session's RequiresPasswordReset reports whether the caller must
// continue into the forgot-password reset step.
func (s *Store) VerifyOTP(ctx context.Context, email, otp string) (Session, error) {
	req := domain.VerifyOTPRequest{Email: email, OTP: otp}
	if err := req.Validate(); err != nil {
		return s.fail(err.Error()), err
	}

	gen := s.beginAuth()
	res, err := s.client.VerifyOTPLogin(ctx, email, otp)
	return s.finishLogin(gen, res, err, "OTP verification failed")
}

// ForgotPassword requests a recovery OTP. Always success-shaped server-side;
// the client does not learn whether the address is registered.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	req := domain.ForgotPasswordRequest{Email: email}
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}
	if err := s.client.ForgotPassword(ctx, email); err != nil {
		s.fail(client.Message(err, "Failed to send OTP"))
		return err
	}
	s.clearError()
	return nil
}

// SetPassword completes the instructor first-login flow. Success clears the
// forced-change flags and moves the session to Authenticated.
func (s *Store) SetPassword(ctx context.Context, newPassword, confirmPassword string) error {
	req := domain.SetPasswordRequest{NewPassword: newPassword, ConfirmPassword: confirmPassword}
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}

	gen := s.generation()
	if err := s.client.SetPassword(ctx, req); err != nil {
		s.fail(client.Message(err, "Failed to set password"))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.requiresPasswordChange = false
	s.isFirstLogin = false
	s.lastError = ""
	if s.user != nil {
		s.state = Authenticated
	}
	return nil
}

// ResetPassword changes the password of the authenticated user. The
// current-equals-new rejection happens locally, before any network call.
func (s *Store) ResetPassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) error {
	req := domain.ResetPasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	}
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}
	if err := s.client.ResetPassword(ctx, req); err != nil {
		s.fail(client.Message(err, "Failed to reset password"))
		return err
	}
	s.clearError()
	return nil
}

// ResetPasswordForgot finishes the OTP recovery flow; no current password.
func (s *Store) ResetPasswordForgot(ctx context.Context, newPassword, confirmPassword string) error {
	req := domain.ResetPasswordForgotRequest{NewPassword: newPassword, ConfirmPassword: confirmPassword}
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}

	gen := s.generation()
	if err := s.client.ResetPasswordForgot(ctx, req); err != nil {
		s.fail(client.Message(err, "Failed to reset password"))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.requiresPasswordReset = false
	s.lastError = ""
	if s.user != nil {
		s.state = Authenticated
	}
	return nil
}

// CompleteProfile fills in the post-signup fields; the updated record
// becomes the current user and is persisted locally.
func (s *Store) CompleteProfile(ctx context.Context, req domain.CompleteProfileRequest) error {
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}

	gen := s.generation()
	u, err := s.client.CompleteProfile(ctx, req)
	if err != nil {
		s.fail(client.Message(err, "Failed to complete profile"))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.setUserLocked(u)
	s.lastError = ""
	s.persistLocked(u)
	return nil
}

// Logout tears the session down. The remote call is best-effort: its
// failure is swallowed so the local session always clears.
func (s *Store) Logout(ctx context.Context) {
	s.client.Logout(ctx) //nolint:errcheck // logout must always succeed locally

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = Unauthenticated
	s.user = nil
	s.displayName = ""
	s.requiresPasswordChange = false
	s.isFirstLogin = false
	s.requiresPasswordReset = false
	s.expiresAt = time.Time{}
	s.lastError = ""
	s.loading = false
	if s.cache != nil {
		s.cache.Clear() //nolint:errcheck // a stale cache record is harmless
	}
}

// -- internal --

func (s *Store) generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Store) beginAuth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Unauthenticated {
		s.state = Authenticating
	}
	s.lastError = ""
	return s.gen
}

func (s *Store) fail(msg string) Session {
	s.mu.Lock()
	s.loading = false
	s.lastError = msg
	if s.state == Authenticating {
		s.state = Unauthenticated
	}
	s.mu.Unlock()
	return s.Snapshot()
}

func (s *Store) clearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// finishLogin applies a login-shaped result under the generation guard.
func (s *Store) finishLogin(gen int, res *domain.LoginResult, err error, fallback string) (Session, error) {
	if err != nil {
		return s.fail(client.Message(err, fallback)), err
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return s.Snapshot(), nil
	}
	s.loading = false
	s.setUserLocked(res.User)
	s.requiresPasswordChange = res.RequiresPasswordChange
	s.isFirstLogin = res.IsFirstLogin
	s.requiresPasswordReset = res.RequiresPasswordReset
	s.expiresAt = tokenExpiry(res.AccessToken)
	s.lastError = ""
	if res.RequiresPasswordChange && res.IsFirstLogin {
		s.state = PasswordChangeRequired
	} else {
		s.state = Authenticated
	}
	s.persistLocked(res.User)
	s.mu.Unlock()
	return s.Snapshot(), nil
}

// setUserLocked installs the user and computes the derived display name
// once, so views never recompute it.
func (s *Store) setUserLocked(u *domain.User) {
	s.user = u
	s.displayName = ""
	if u != nil {
		s.displayName = u.DisplayName()
	}
}

func (s *Store) persistLocked(u *domain.User) {
	if s.cache == nil || u == nil {
		return
	}
	s.cache.Save(u) //nolint:errcheck // cache is an optimization, never fatal
}

// tokenExpiry pulls the exp claim from the access token without verifying
// the signature; the client has no key and only uses this for display.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
