package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
	"github.com/neximprove/broker-onboarding/internal/core/ports"
)

const recentCustomerLimit = 5

// CustomerService implements broker-scoped customer onboarding and stats.
type CustomerService struct {
	repo   ports.CustomerRepository
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

// Create onboards a customer for the given broker. The GSTIN is normalized to
// upper case before storage; the per-broker GSTIN uniqueness race resolves in
// the store, surfacing domain.ErrGSTINTaken on the losing insert.
func (s *CustomerService) Create(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:         uuid.NewString(),
		BrokerID:   input.BrokerID,
		FullName:   strings.TrimSpace(input.FullName),
		Email:      NormalizeEmail(input.Email),
		GSTIN:      domain.NormalizeGSTIN(input.GSTIN),
		EntityType: domain.EntityType(input.EntityType),
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("customer_id", created.ID).
		Str("broker_id", created.BrokerID).
		Str("entity_type", string(created.EntityType)).
		Msg("customer onboarded")
	return created, nil
}

// Stats returns the broker dashboard aggregate: counts by entity type plus
// the five most recently onboarded customers, newest first.
func (s *CustomerService) Stats(ctx context.Context, brokerID string) (*ports.BrokerStats, error) {
	total, err := s.repo.CountByBroker(ctx, brokerID)
	if err != nil {
		return nil, err
	}
	exporters, err := s.repo.CountByBrokerAndType(ctx, brokerID, domain.EntityExporter)
	if err != nil {
		return nil, err
	}
	importers, err := s.repo.CountByBrokerAndType(ctx, brokerID, domain.EntityImporter)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentByBroker(ctx, brokerID, recentCustomerLimit)
	if err != nil {
		return nil, err
	}

	return &ports.BrokerStats{
		Total:     total,
		Exporters: exporters,
		Importers: importers,
		Recent:    recent,
	}, nil
}
