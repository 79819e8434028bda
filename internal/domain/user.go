// Package domain contains the core business entities for the catalog service.
// These are pure Go structs with no external dependencies.
package domain

// UserStatus represents the lifecycle state of a user account.
type UserStatus string

// Possible user statuses.
const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusBlocked  UserStatus = "BLOCKED"
)

// Valid reports whether s is one of the enumerated statuses.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusBlocked:
		return true
	}
	return false
}

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user (assigned by the store,
	// immutable once set).
	ID int64 `json:"id"`

	// Username is the unique username for login and display.
	// Constraints: 3-50 characters, letters/digits/./_/- only.
	Username string `json:"username"`

	// FirstName is the user's given name.
	FirstName string `json:"first_name"`

	// LastName is the user's family name.
	LastName string `json:"last_name"`

	// Email is the unique email address for the user.
	// Uniqueness is enforced case-insensitively.
	Email string `json:"email"`

	// Password is the user's password. It is stored and compared as plain
	// text to preserve the behavior of the system this replaces; that is a
	// known security defect, not a feature. Never exposed in API responses.
	Password string `json:"-"`

	// Phone is the optional contact number, validated against a
	// configurable regional pattern.
	Phone string `json:"phone,omitempty"`

	// Status is the account lifecycle state. New accounts are always
	// created Active.
	Status UserStatus `json:"status"`
}

// NewUser creates a new User with default values.
func NewUser(username, firstName, lastName, email, password string) *User {
	return &User{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Status:    UserStatusActive,
	}
}

// IsActive reports whether the account is in the Active state.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CanAuthenticate returns true if the user is allowed to authenticate.
// Inactive and blocked accounts are rejected.
func (u *User) CanAuthenticate() bool {
	return u.IsActive()
}
