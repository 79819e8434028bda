// Package validation implements field-level invariant checking for catalog
// entities. Rules are evaluated independently: a validation pass collects
// every violation instead of stopping at the first one, so callers can
// surface the complete list to the user at once.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Field length bounds.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	NameMinLen     = 2
	NameMaxLen     = 100
	EmailMaxLen    = 150
	PasswordMinLen = 8
	PasswordMaxLen = 100
)

// SpecialChars is the set of characters that satisfies the password
// special-character rule.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

// DefaultPhonePattern matches 8-9 digit local numbers with an optional
// +56-style country prefix. The pattern is configurable per deployment
// region; this is only the default.
const DefaultPhonePattern = `^(\+56)?[0-9]{8,9}$`

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	nameRe     = regexp.MustCompile(`^[\p{L}][\p{L} ]*$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
)

// Engine checks entity fields against the catalog's format invariants.
// The zero value is not usable; construct one with NewEngine.
type Engine struct {
	phoneRe *regexp.Regexp
}

// NewEngine creates an Engine. phonePattern overrides the regional phone
// format; pass an empty string for DefaultPhonePattern.
func NewEngine(phonePattern string) (*Engine, error) {
	if phonePattern == "" {
		phonePattern = DefaultPhonePattern
	}
	re, err := regexp.Compile(phonePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid phone pattern %q: %w", phonePattern, err)
	}
	return &Engine{phoneRe: re}, nil
}

// UserFields is the subset of user attributes subject to format rules.
type UserFields struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// User returns the ordered list of rule violations for the given fields.
// An empty result means the fields are valid. newAccount enables the
// password-strength criteria, which only apply when a password is first
// chosen.
func (e *Engine) User(f UserFields, newAccount bool) []string {
	var violations []string

	switch {
	case f.Username == "":
		violations = append(violations, "username is required")
	case len(f.Username) < UsernameMinLen || len(f.Username) > UsernameMaxLen:
		violations = append(violations, fmt.Sprintf("username must be %d-%d characters", UsernameMinLen, UsernameMaxLen))
	case !usernameRe.MatchString(f.Username):
		violations = append(violations, "username may only contain letters, digits, '.', '_' and '-'")
	}

	violations = append(violations, e.UserProfile(f)...)
	violations = append(violations, e.Password(f.Password, newAccount)...)

	return violations
}

// UserProfile checks only the fields mutable through a profile update:
// given name, family name, email and phone. Username and password rules
// are skipped because those attributes are immutable in an update.
func (e *Engine) UserProfile(f UserFields) []string {
	var violations []string

	violations = append(violations, checkName("first name", f.FirstName)...)
	violations = append(violations, checkName("last name", f.LastName)...)

	switch {
	case f.Email == "":
		violations = append(violations, "email is required")
	case len(f.Email) > EmailMaxLen:
		violations = append(violations, fmt.Sprintf("email must not exceed %d characters", EmailMaxLen))
	case !emailRe.MatchString(f.Email):
		violations = append(violations, "email format is invalid")
	}

	// Phone is optional; the pattern applies only when present.
	if f.Phone != "" && !e.phoneRe.MatchString(f.Phone) {
		violations = append(violations, "phone format is invalid")
	}

	return violations
}

// Password returns the violations for a password on its own. When strength
// is true each missing strength criterion is reported individually, so the
// caller can tell the user exactly what is absent.
func (e *Engine) Password(password string, strength bool) []string {
	var violations []string

	if len(password) < PasswordMinLen {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters", PasswordMinLen))
	} else if len(password) > PasswordMaxLen {
		violations = append(violations, fmt.Sprintf("password must not exceed %d characters", PasswordMaxLen))
	}

	if !strength {
		return violations
	}

	if !upperRe.MatchString(password) {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !lowerRe.MatchString(password) {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(password) {
		violations = append(violations, "password must contain at least one digit")
	}
	if !strings.ContainsAny(password, SpecialChars) {
		violations = append(violations, "password must contain at least one special character")
	}

	return violations
}

// ProductFields is the subset of product attributes subject to rules.
type ProductFields struct {
	Name  string
	Code  string
	Price float64
	Stock int
}

// Product returns the ordered list of rule violations for the given
// fields. An empty result means the fields are valid.
func (e *Engine) Product(f ProductFields) []string {
	var violations []string

	if f.Name == "" {
		violations = append(violations, "product name is required")
	}
	if f.Code == "" {
		violations = append(violations, "product code is required")
	}
	if f.Price <= 0 {
		violations = append(violations, "price must be greater than zero")
	}
	if f.Stock < 0 {
		violations = append(violations, "stock must not be negative")
	}

	return violations
}

// checkName applies the shared given-name/family-name rules. Accented
// Latin letters are allowed; digits and punctuation are not.
func checkName(field, value string) []string {
	switch {
	case value == "":
		return []string{field + " is required"}
	case len([]rune(value)) < NameMinLen || len([]rune(value)) > NameMaxLen:
		return []string{fmt.Sprintf("%s must be %d-%d characters", field, NameMinLen, NameMaxLen)}
	case !nameRe.MatchString(value):
		return []string{field + " may only contain letters and spaces"}
	}
	return nil
}
