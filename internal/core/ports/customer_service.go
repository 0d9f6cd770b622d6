package ports

import (
	"context"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

// CreateCustomerInput carries the fields a broker submits when onboarding a
// customer. BrokerID comes from the authenticated identity, never the payload.
type CreateCustomerInput struct {
	BrokerID   string
	FullName   string
	Email      string
	GSTIN      string
	EntityType string
}

// BrokerStats is the broker dashboard aggregate: counts by entity type plus
// the most recently onboarded customers, newest first.
type BrokerStats struct {
	Total     int64             `json:"total"`
	Exporters int64             `json:"exporters"`
	Importers int64             `json:"importers"`
	Recent    []domain.Customer `json:"-"`
}

// CustomerService implements broker-scoped customer operations.
type CustomerService interface {
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	Stats(ctx context.Context, brokerID string) (*BrokerStats, error)
}
