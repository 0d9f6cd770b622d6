package ports

import (
	"context"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

// OverviewStats are the headline counters on the admin dashboard.
type OverviewStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalCustomers int64 `json:"totalCustomers"`
}

// Overview is the system-wide snapshot: headline counters plus the five most
// recent users and customers, newest first.
type Overview struct {
	Stats           OverviewStats     `json:"stats"`
	RecentUsers     []domain.User     `json:"recentUsers"`
	RecentCustomers []domain.Customer `json:"recentCustomers"`
}

// AdminStats breaks totals down by role and entity type.
type AdminStats struct {
	TotalBrokers   int64 `json:"totalBrokers"`
	TotalCustomers int64 `json:"totalCustomers"`
	Exporters      int64 `json:"exporters"`
	Importers      int64 `json:"importers"`
}

// AdminService provides read-only, cross-broker views. It never mutates.
type AdminService interface {
	Overview(ctx context.Context) (*Overview, error)
	Stats(ctx context.Context) (*AdminStats, error)
	ListBrokers(ctx context.Context) ([]BrokerSummary, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}
