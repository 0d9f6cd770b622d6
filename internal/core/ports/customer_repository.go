package ports

import (
	"context"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

// CustomerRepository defines persistence for customer records. Broker-scoped
// reads filter on the owning broker; the WithBroker variants embed the owning
// broker projection for admin views.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	CountByBroker(ctx context.Context, brokerID string) (int64, error)
	CountByBrokerAndType(ctx context.Context, brokerID string, entityType domain.EntityType) (int64, error)
	RecentByBroker(ctx context.Context, brokerID string, limit int) ([]domain.Customer, error)
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, entityType domain.EntityType) (int64, error)
	RecentWithBroker(ctx context.Context, limit int) ([]domain.Customer, error)
	ListWithBroker(ctx context.Context) ([]domain.Customer, error)
}
