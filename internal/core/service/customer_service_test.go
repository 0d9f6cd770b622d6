package service

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
	"github.com/neximprove/broker-onboarding/internal/core/ports"
)

type stubCustomerRepo struct {
	customers []domain.Customer
}

func (r *stubCustomerRepo) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.BrokerID == customer.BrokerID && c.GSTIN == customer.GSTIN {
			return nil, domain.ErrGSTINTaken
		}
	}
	r.customers = append(r.customers, *customer)
	clone := *customer
	return &clone, nil
}

func (r *stubCustomerRepo) CountByBroker(_ context.Context, brokerID string) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if c.BrokerID == brokerID {
			n++
		}
	}
	return n, nil
}

func (r *stubCustomerRepo) CountByBrokerAndType(_ context.Context, brokerID string, entityType domain.EntityType) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if c.BrokerID == brokerID && c.EntityType == entityType {
			n++
		}
	}
	return n, nil
}

func (r *stubCustomerRepo) RecentByBroker(_ context.Context, brokerID string, limit int) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range r.customers {
		if c.BrokerID == brokerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

func (r *stubCustomerRepo) CountByType(_ context.Context, entityType domain.EntityType) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if c.EntityType == entityType {
			n++
		}
	}
	return n, nil
}

func (r *stubCustomerRepo) RecentWithBroker(_ context.Context, limit int) ([]domain.Customer, error) {
	out := append([]domain.Customer(nil), r.customers...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubCustomerRepo) ListWithBroker(_ context.Context) ([]domain.Customer, error) {
	return append([]domain.Customer(nil), r.customers...), nil
}

func TestCustomerService_Create_NormalizesGSTIN(t *testing.T) {
	repo := &stubCustomerRepo{}
	svc := NewCustomerService(repo, zerolog.Nop())

	customer, err := svc.Create(context.Background(), ports.CreateCustomerInput{
		BrokerID:   "broker-1",
		FullName:   "Acme Exports",
		Email:      "Ops@Acme.com",
		GSTIN:      "27aaaaa0000a1z5",
		EntityType: "EXPORTER",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if customer.GSTIN != "27AAAAA0000A1Z5" {
		t.Fatalf("expected upper-cased GSTIN, got %s", customer.GSTIN)
	}
	if customer.Email != "ops@acme.com" {
		t.Fatalf("expected normalized email, got %s", customer.Email)
	}
	if customer.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCustomerService_Create_DuplicateGSTINSameBroker(t *testing.T) {
	repo := &stubCustomerRepo{}
	svc := NewCustomerService(repo, zerolog.Nop())

	input := ports.CreateCustomerInput{
		BrokerID:   "broker-1",
		FullName:   "Acme Exports",
		Email:      "ops@acme.com",
		GSTIN:      "27AAAAA0000A1Z5",
		EntityType: "EXPORTER",
	}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Same GSTIN in a different case must still collide for the same broker.
	input.GSTIN = "27aaaaa0000a1z5"
	if _, err := svc.Create(context.Background(), input); err != domain.ErrGSTINTaken {
		t.Fatalf("expected ErrGSTINTaken, got %v", err)
	}
}

func TestCustomerService_Create_SameGSTINDifferentBroker(t *testing.T) {
	repo := &stubCustomerRepo{}
	svc := NewCustomerService(repo, zerolog.Nop())

	input := ports.CreateCustomerInput{
		BrokerID:   "broker-1",
		FullName:   "Acme Exports",
		Email:      "ops@acme.com",
		GSTIN:      "27AAAAA0000A1Z5",
		EntityType: "EXPORTER",
	}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	input.BrokerID = "broker-2"
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("different broker should reuse GSTIN, got %v", err)
	}
}

func TestCustomerService_Stats(t *testing.T) {
	repo := &stubCustomerRepo{}
	svc := NewCustomerService(repo, zerolog.Nop())

	inputs := []ports.CreateCustomerInput{
		{BrokerID: "broker-1", FullName: "Acme Exports", Email: "a@x.com", GSTIN: "27AAAAA0000A1Z5", EntityType: "EXPORTER"},
		{BrokerID: "broker-1", FullName: "Bulk Imports", Email: "b@x.com", GSTIN: "07BBBBB1111B1Z2", EntityType: "IMPORTER"},
		{BrokerID: "broker-1", FullName: "Cargo Exports", Email: "c@x.com", GSTIN: "29CCCCC2222C1Z9", EntityType: "EXPORTER"},
		{BrokerID: "broker-2", FullName: "Other Broker Co", Email: "d@x.com", GSTIN: "33DDDDD3333D1Z1", EntityType: "IMPORTER"},
	}
	for _, in := range inputs {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background(), "broker-1")
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Total != 3 || stats.Exporters != 2 || stats.Importers != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.Total != stats.Exporters+stats.Importers {
		t.Fatalf("total must equal exporters+importers: %+v", stats)
	}
	if len(stats.Recent) != 3 {
		t.Fatalf("expected 3 recent customers, got %d", len(stats.Recent))
	}
	for _, c := range stats.Recent {
		if c.BrokerID != "broker-1" {
			t.Fatalf("recent customers leaked another broker: %+v", c)
		}
	}
}

func TestCustomerService_Stats_Empty(t *testing.T) {
	svc := NewCustomerService(&stubCustomerRepo{}, zerolog.Nop())

	stats, err := svc.Stats(context.Background(), "broker-1")
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Total != 0 || stats.Exporters != 0 || stats.Importers != 0 {
		t.Fatalf("expected zero counts: %+v", stats)
	}
	if len(stats.Recent) != 0 {
		t.Fatalf("expected no recent customers, got %d", len(stats.Recent))
	}
}
