package domain

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LoginResult is the unwrapped payload of a successful login or OTP verify.
type LoginResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	// RequiresPasswordChange with IsFirstLogin marks an instructor account
	// that must set its own password before proceeding.
	RequiresPasswordChange bool `json:"requiresPasswordChange,omitempty"`
	IsFirstLogin           bool `json:"isFirstLogin,omitempty"`
	// RequiresPasswordReset marks the forgot-password OTP flow: the caller
	// must continue into a password reset instead of landing authenticated.
	RequiresPasswordReset bool `json:"requiresPasswordReset,omitempty"`
}

// LoginRequest is the unified login payload, shared across roles.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs local form rules before any network call.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// SignupRequest is the student registration payload.
type SignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	MobileNo        string `json:"mobileNo"`
	Gender          string `json:"gender"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate runs local form rules before any network call.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.MobileNo, validation.Required, validation.Length(10, 15), is.Digit),
		validation.Field(&r.Gender, validation.Required, validation.In("male", "female", "other")),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.ConfirmPassword, validation.Required,
			validation.By(stringEquals(r.Password, "passwords do not match"))),
	)
}

// ForgotPasswordRequest starts the OTP recovery flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate runs local form rules before any network call.
func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// VerifyOTPRequest proves email ownership with the mailed 6-digit code.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Validate runs local form rules before any network call.
func (r VerifyOTPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.OTP, validation.Required, validation.Length(6, 6), is.Digit),
	)
}

// SetPasswordRequest is the instructor first-login password payload.
type SetPasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate runs local form rules before any network call.
func (r SetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.ConfirmPassword, validation.Required,
			validation.By(stringEquals(r.NewPassword, "passwords do not match"))),
	)
}

// ResetPasswordRequest is the authenticated password change payload.
type ResetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate runs local form rules before any network call. The new password
// must differ from the current one; that failure carries its own message,
// distinct from a confirmation mismatch.
func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 100),
			validation.By(stringDiffers(r.CurrentPassword, "new password must differ from current password"))),
		validation.Field(&r.ConfirmPassword, validation.Required,
			validation.By(stringEquals(r.NewPassword, "passwords do not match"))),
	)
}

// ResetPasswordForgotRequest finishes the OTP recovery flow. No current
// password: the caller proved ownership with the OTP instead.
type ResetPasswordForgotRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate runs local form rules before any network call.
func (r ResetPasswordForgotRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.ConfirmPassword, validation.Required,
			validation.By(stringEquals(r.NewPassword, "passwords do not match"))),
	)
}

// CompleteProfileRequest fills in the post-signup profile fields.
type CompleteProfileRequest struct {
	Address   string `json:"address"`
	Education string `json:"education"`
	Bio       string `json:"bio,omitempty"`
	MobileNo  string `json:"mobileNo,omitempty"`
}

// Validate runs local form rules before any network call.
func (r CompleteProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Address, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Education, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Bio, validation.Length(0, 1000)),
		validation.Field(&r.MobileNo, validation.Length(10, 15), is.Digit),
	)
}

// CreateInstructorRequest provisions an instructor account. The server
// generates credentials and delivers the invitation mail.
type CreateInstructorRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Validate runs local form rules before any network call.
func (r CreateInstructorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func stringEquals(want, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != want {
			return errors.New(msg)
		}
		return nil
	}
}

func stringDiffers(other, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == other {
			return errors.New(msg)
		}
		return nil
	}
}
