package ports

import (
	"context"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

// AuthService registers broker accounts and authenticates credentials.
type AuthService interface {
	// Register creates a BROKER account. It does not log the user in.
	Register(ctx context.Context, fullName, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed session token alongside
	// the public user projection.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
