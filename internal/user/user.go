// Package user identifies who performs a write: the bearer-token subject on
// the HTTP API, or the operating-system user for CLI commands.
package user

import (
	"context"
	"os"
	"os/user"
)

// Identity is the actor recorded as created_by
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Name returns the value stored in created_by columns
func (i Identity) Name() string {
	if i.Email != "" {
		return i.Email
	}
	if i.ID != "" {
		return i.ID
	}
	return "unknown"
}

type ctxKey struct{}

// WithIdentity returns a context carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by WithIdentity
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Actor returns the request identity's name, falling back to the local
// system user when the context carries none
func Actor(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok {
		return id.Name()
	}
	return GetCurrentUsername()
}

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	// Try to get current user from OS
	currentUser, err := user.Current()
	if err != nil {
		// Fallback to USER environment variable
		username := os.Getenv("USER")
		if username == "" {
			// Final fallback
			return "unknown"
		}
		return username
	}
	return currentUser.Username
}
