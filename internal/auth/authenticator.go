package auth

import (
	"context"

	"github.com/mtilda/chipin/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The abstraction allows swapping credential schemes (password, OAuth,
// passkeys) without touching the service layer.
type Authenticator interface {
	// Register creates a new user account with the given email and
	// credential. Returns the created user or an error if registration
	// fails (weak credential, email already taken).
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user
	// if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
