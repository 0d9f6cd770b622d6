package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

// CustomerRepository implements ports.CustomerRepository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a customer. The (broker_id, gstin) unique constraint is the
// serialization point for concurrent duplicate onboarding: the losing insert
// maps to domain.ErrGSTINTaken.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	const insertSQL = `
		INSERT INTO customers (id, broker_id, full_name, email, gstin, entity_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, broker_id, full_name, email, gstin, entity_type, created_at
	`

	created, err := scanCustomer(r.pool.QueryRow(ctx, insertSQL,
		customer.ID, customer.BrokerID, customer.FullName, customer.Email,
		customer.GSTIN, customer.EntityType, customer.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrGSTINTaken
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}

	return created, nil
}

func (r *CustomerRepository) CountByBroker(ctx context.Context, brokerID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM customers WHERE broker_id = $1`, brokerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers by broker: %w", err)
	}
	return n, nil
}

func (r *CustomerRepository) CountByBrokerAndType(ctx context.Context, brokerID string, entityType domain.EntityType) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM customers WHERE broker_id = $1 AND entity_type = $2`,
		brokerID, entityType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers by broker and type: %w", err)
	}
	return n, nil
}

// RecentByBroker returns the broker's newest customers first.
func (r *CustomerRepository) RecentByBroker(ctx context.Context, brokerID string, limit int) ([]domain.Customer, error) {
	const selectSQL = `
		SELECT id, broker_id, full_name, email, gstin, entity_type, created_at
		FROM customers
		WHERE broker_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, selectSQL, brokerID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent customers by broker: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func (r *CustomerRepository) CountByType(ctx context.Context, entityType domain.EntityType) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM customers WHERE entity_type = $1`, entityType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers by type: %w", err)
	}
	return n, nil
}

// RecentWithBroker returns the newest customers across all brokers with the
// owning broker projection embedded.
func (r *CustomerRepository) RecentWithBroker(ctx context.Context, limit int) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, withBrokerSQL+` LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent customers: %w", err)
	}
	defer rows.Close()

	return collectCustomersWithBroker(rows)
}

// ListWithBroker returns every customer with the owning broker embedded,
// newest first.
func (r *CustomerRepository) ListWithBroker(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, withBrokerSQL)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	return collectCustomersWithBroker(rows)
}

const withBrokerSQL = `
	SELECT c.id, c.broker_id, c.full_name, c.email, c.gstin, c.entity_type, c.created_at,
	       u.full_name, u.email
	FROM customers c
	JOIN users u ON u.id = c.broker_id
	ORDER BY c.created_at DESC`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.BrokerID,
		&c.FullName,
		&c.Email,
		&c.GSTIN,
		&c.EntityType,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func collectCustomersWithBroker(rows pgx.Rows) ([]domain.Customer, error) {
	var customers []domain.Customer
	for rows.Next() {
		var (
			c      domain.Customer
			broker domain.BrokerRef
		)
		err := rows.Scan(
			&c.ID,
			&c.BrokerID,
			&c.FullName,
			&c.Email,
			&c.GSTIN,
			&c.EntityType,
			&c.CreatedAt,
			&broker.FullName,
			&broker.Email,
		)
		if err != nil {
			return nil, err
		}
		c.Broker = &broker
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
