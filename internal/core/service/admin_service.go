package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
	"github.com/neximprove/broker-onboarding/internal/core/ports"
)

const recentOverviewLimit = 5

// AdminService provides read-only cross-broker aggregates.
type AdminService struct {
	users     ports.UserRepository
	customers ports.CustomerRepository
	logger    zerolog.Logger
}

func NewAdminService(users ports.UserRepository, customers ports.CustomerRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, customers: customers, logger: logger}
}

// Overview returns the system-wide dashboard snapshot.
func (s *AdminService) Overview(ctx context.Context) (*ports.Overview, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	recentUsers, err := s.users.Recent(ctx, recentOverviewLimit)
	if err != nil {
		return nil, err
	}
	recentCustomers, err := s.customers.RecentWithBroker(ctx, recentOverviewLimit)
	if err != nil {
		return nil, err
	}

	return &ports.Overview{
		Stats: ports.OverviewStats{
			TotalUsers:     totalUsers,
			TotalCustomers: totalCustomers,
		},
		RecentUsers:     recentUsers,
		RecentCustomers: recentCustomers,
	}, nil
}

// Stats returns counts broken down by role and entity type.
func (s *AdminService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	totalBrokers, err := s.users.CountByRole(ctx, domain.RoleBroker)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	exporters, err := s.customers.CountByType(ctx, domain.EntityExporter)
	if err != nil {
		return nil, err
	}
	importers, err := s.customers.CountByType(ctx, domain.EntityImporter)
	if err != nil {
		return nil, err
	}

	return &ports.AdminStats{
		TotalBrokers:   totalBrokers,
		TotalCustomers: totalCustomers,
		Exporters:      exporters,
		Importers:      importers,
	}, nil
}

// ListBrokers returns every broker with its onboarded customer count,
// newest first. No pagination: the listing is returned whole.
func (s *AdminService) ListBrokers(ctx context.Context) ([]ports.BrokerSummary, error) {
	return s.users.ListBrokers(ctx)
}

// ListCustomers returns every customer with the owning broker embedded,
// newest first.
func (s *AdminService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.ListWithBroker(ctx)
}
