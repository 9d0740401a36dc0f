package domain

import (
	"errors"
	"strings"
	"time"
)

// DefaultRole is assigned at signup when none is given.
const DefaultRole = "Security Analyst"

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// ValidationError is a user-facing rejection raised before anything is
// dispatched to the store.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Message
}

// User is the identity attached to an authenticated session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Account is a locally stored user with its password hash.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
}

// User strips the credential fields.
func (a Account) User() User {
	return User{ID: a.ID, Email: a.Email, Role: a.Role}
}

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return &ValidationError{Title: "Missing Email", Message: ErrEmptyEmail.Error()}
	}
	if c.Password == "" {
		return &ValidationError{Title: "Missing Password", Message: ErrEmptyPassword.Error()}
	}
	return nil
}

// SignupRequest is a registration request.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role,omitempty"`
}

// Validate applies the signup form rules in order: confirmation first, then length.
func (r SignupRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return &ValidationError{Title: "Missing Email", Message: ErrEmptyEmail.Error()}
	}
	if r.Password != r.ConfirmPassword {
		return &ValidationError{Title: "Password Mismatch", Message: "Passwords do not match"}
	}
	if len(r.Password) < MinPasswordLength {
		return &ValidationError{Title: "Weak Password", Message: "Password must be at least 6 characters long"}
	}
	return nil
}

// RoleOrDefault returns the requested role or DefaultRole.
func (r SignupRequest) RoleOrDefault() string {
	if strings.TrimSpace(r.Role) == "" {
		return DefaultRole
	}
	return r.Role
}

var ErrAccountNotFound = errors.New("account not found")

// NormalizeEmail lowercases and trims an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
