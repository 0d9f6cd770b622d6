package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
	"github.com/neximprove/broker-onboarding/internal/core/ports"
)

type stubAdminService struct {
	overviewFn      func(ctx context.Context) (*ports.Overview, error)
	statsFn         func(ctx context.Context) (*ports.AdminStats, error)
	listBrokersFn   func(ctx context.Context) ([]ports.BrokerSummary, error)
	listCustomersFn func(ctx context.Context) ([]domain.Customer, error)
}

func (s *stubAdminService) Overview(ctx context.Context) (*ports.Overview, error) {
	return s.overviewFn(ctx)
}

func (s *stubAdminService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	return s.statsFn(ctx)
}

func (s *stubAdminService) ListBrokers(ctx context.Context) ([]ports.BrokerSummary, error) {
	return s.listBrokersFn(ctx)
}

func (s *stubAdminService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.listCustomersFn(ctx)
}

func TestAdminHandler_Overview(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		overviewFn: func(ctx context.Context) (*ports.Overview, error) {
			return &ports.Overview{
				Stats: ports.OverviewStats{TotalUsers: 3, TotalCustomers: 7},
				RecentCustomers: []domain.Customer{
					{
						ID:         "c1",
						GSTIN:      "27AAAAA0000A1Z5",
						EntityType: domain.EntityExporter,
						CreatedAt:  time.Now().UTC(),
						Broker:     &domain.BrokerRef{FullName: "Jane Doe", Email: "jane@x.com"},
					},
				},
			}, nil
		},
	})

	c, rec := newContext(t, http.MethodGet, "/admin/overview", "")
	if err := h.Overview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	stats := resp["stats"].(map[string]any)
	if stats["totalUsers"] != float64(3) || stats["totalCustomers"] != float64(7) {
		t.Fatalf("unexpected stats: %v", stats)
	}
	if _, ok := resp["recentUsers"].([]any); !ok {
		t.Fatalf("recentUsers must be an array, got %v", resp["recentUsers"])
	}
	customers := resp["recentCustomers"].([]any)
	broker := customers[0].(map[string]any)["broker"].(map[string]any)
	if broker["fullName"] != "Jane Doe" {
		t.Fatalf("expected embedded broker, got %v", broker)
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		statsFn: func(ctx context.Context) (*ports.AdminStats, error) {
			return &ports.AdminStats{TotalBrokers: 2, TotalCustomers: 5, Exporters: 3, Importers: 2}, nil
		},
	})

	c, rec := newContext(t, http.MethodGet, "/admin/stats", "")
	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp ports.AdminStats
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TotalCustomers != resp.Exporters+resp.Importers {
		t.Fatalf("totals must add up: %+v", resp)
	}
}

func TestAdminHandler_ListBrokers_Empty(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		listBrokersFn: func(ctx context.Context) ([]ports.BrokerSummary, error) {
			return nil, nil
		},
	})

	c, rec := newContext(t, http.MethodGet, "/admin/brokers", "")
	if err := h.ListBrokers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["brokers"].([]any); !ok {
		t.Fatalf("brokers must be an empty array, not null: %v", resp["brokers"])
	}
}

func TestAdminHandler_ListCustomers(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		listCustomersFn: func(ctx context.Context) ([]domain.Customer, error) {
			return []domain.Customer{
				{ID: "c1", BrokerID: "u2", GSTIN: "27AAAAA0000A1Z5", Broker: &domain.BrokerRef{FullName: "Jane Doe", Email: "jane@x.com"}},
			}, nil
		},
	})

	c, rec := newContext(t, http.MethodGet, "/admin/customers", "")
	if err := h.ListCustomers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Customers []domain.Customer `json:"customers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Customers) != 1 || resp.Customers[0].Broker == nil {
		t.Fatalf("expected customer with embedded broker: %+v", resp.Customers)
	}
}
