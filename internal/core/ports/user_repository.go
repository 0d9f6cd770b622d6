package ports

import (
	"context"
	"time"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

// BrokerSummary is a broker row in the admin listing, including how many
// customers the broker has onboarded.
type BrokerSummary struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"createdAt"`
	CustomerCount int64     `json:"customerCount"`
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	Recent(ctx context.Context, limit int) ([]domain.User, error)
	ListBrokers(ctx context.Context) ([]BrokerSummary, error)
}
