package client

import (
	"context"
	"fmt"

	"github.com/linkcodelearn/campus/pkg/domain"
)

// checkLoginResult is the integrity check shared by Login and VerifyOTPLogin:
// a 2xx login response missing user or either token is a contract violation.
func checkLoginResult(res *domain.LoginResult) error {
	switch {
	case res.User == nil:
		return &InvalidResponseError{Reason: "login response missing user"}
	case res.AccessToken == "":
		return &InvalidResponseError{Reason: "login response missing accessToken"}
	case res.RefreshToken == "":
		return &InvalidResponseError{Reason: "login response missing refreshToken"}
	}
	return nil
}

// Signup registers a new student account.
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (*domain.LoginResult, error) {
	var res domain.LoginResult
	if err := c.post(ctx, "/auth/signup/student", req, &res); err != nil {
		return nil, fmt.Errorf("client.Signup: %w", err)
	}
	return &res, nil
}

// Login authenticates against the unified login endpoint, shared across
// roles. A 401 here propagates directly: bad credentials, not an expired
// session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var res domain.LoginResult
	if err := c.post(ctx, "/auth/login", domain.LoginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if err := checkLoginResult(&res); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &res, nil
}

// AdminLogin authenticates against the dedicated admin endpoint. Kept for
// backward compatibility with older server deployments; the unified
// endpoint accepts admins too.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var res domain.LoginResult
	if err := c.post(ctx, "/auth/admin/login", domain.LoginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, fmt.Errorf("client.AdminLogin: %w", err)
	}
	if err := checkLoginResult(&res); err != nil {
		return nil, fmt.Errorf("client.AdminLogin: %w", err)
	}
	return &res, nil
}

// Me returns the currently authenticated user, riding on the session cookie.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/auth/me", &u); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &u, nil
}

// SetPassword sets the first-login password for an instructor account.
func (c *Client) SetPassword(ctx context.Context, req domain.SetPasswordRequest) error {
	if err := c.post(ctx, "/auth/set-password", req, nil); err != nil {
		return fmt.Errorf("client.SetPassword: %w", err)
	}
	return nil
}

// ForgotPassword requests a recovery OTP for email. The server answers
// success-shaped whether or not the address is registered, so callers
// cannot enumerate accounts through this endpoint.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := c.post(ctx, "/auth/forgot-password", domain.ForgotPasswordRequest{Email: email}, nil); err != nil {
		return fmt.Errorf("client.ForgotPassword: %w", err)
	}
	return nil
}

// VerifyOTPLogin proves email ownership with the mailed code and logs in.
// Same response shape and integrity check as Login, plus the optional
// requiresPasswordReset flag that branches into the forced-reset flow.
func (c *Client) VerifyOTPLogin(ctx context.Context, email, otp string) (*domain.LoginResult, error) {
	var res domain.LoginResult
	if err := c.post(ctx, "/auth/verify-otp-login", domain.VerifyOTPRequest{Email: email, OTP: otp}, &res); err != nil {
		return nil, fmt.Errorf("client.VerifyOTPLogin: %w", err)
	}
	if err := checkLoginResult(&res); err != nil {
		return nil, fmt.Errorf("client.VerifyOTPLogin: %w", err)
	}
	return &res, nil
}

// RefreshToken rotates the session cookie pair explicitly. The transport
// layer already calls this on the first 401 from a non-auth endpoint.
func (c *Client) RefreshToken(ctx context.Context) error {
	if err := c.post(ctx, "/auth/refresh-token", nil, nil); err != nil {
		return fmt.Errorf("client.RefreshToken: %w", err)
	}
	return nil
}

// ResetPassword changes the password of the authenticated user.
func (c *Client) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	if err := c.post(ctx, "/auth/reset-password", req, nil); err != nil {
		return fmt.Errorf("client.ResetPassword: %w", err)
	}
	return nil
}

// ResetPasswordForgot changes the password after OTP verification; no
// current password is required.
func (c *Client) ResetPasswordForgot(ctx context.Context, req domain.ResetPasswordForgotRequest) error {
	if err := c.post(ctx, "/auth/reset-password-forgot", req, nil); err != nil {
		return fmt.Errorf("client.ResetPasswordForgot: %w", err)
	}
	return nil
}

// CompleteProfile fills in the post-signup profile fields and returns the
// updated user record.
func (c *Client) CompleteProfile(ctx context.Context, req domain.CompleteProfileRequest) (*domain.User, error) {
	var u domain.User
	if err := c.put(ctx, "/auth/complete-profile", req, &u); err != nil {
		return nil, fmt.Errorf("client.CompleteProfile: %w", err)
	}
	return &u, nil
}

// CreateInstructor provisions an instructor account. Admin only. The server
// generates credentials and mails the invitation.
func (c *Client) CreateInstructor(ctx context.Context, req domain.CreateInstructorRequest) (*domain.User, error) {
	var u domain.User
	if err := c.post(ctx, "/auth/admin/create-instructor", req, &u); err != nil {
		return nil, fmt.Errorf("client.CreateInstructor: %w", err)
	}
	return &u, nil
}

// Logout tears down the remote session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}
