package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a platform account role.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ValidRoles lists every role the platform issues.
var ValidRoles = []Role{RoleStudent, RoleInstructor, RoleAdmin}

// ValidRole reports whether r is a known platform role.
func ValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if v == r {
			return true
		}
	}
	return false
}

// User represents a registered platform account.
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Name      string    `json:"name,omitempty"` // server-provided display name, if any
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	Gender    string    `json:"gender,omitempty"`
	MobileNo  string    `json:"mobileNo,omitempty"`
	Address   string    `json:"address,omitempty"`
	Education string    `json:"education,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName derives the name views render for a user.
// Both name parts present: "First Last". Otherwise the server-provided
// name, then the email address.
func (u User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// ProfileComplete reports whether the post-signup profile fields are filled in.
func (u User) ProfileComplete() bool {
	return u.Address != "" && u.Education != ""
}
