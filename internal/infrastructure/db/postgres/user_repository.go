package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
	"github.com/neximprove/broker-onboarding/internal/core/ports"
)

const uniqueViolation = "23505"

// UserRepository implements ports.UserRepository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a user. The email unique constraint is the serialization
// point for concurrent duplicate registrations: the losing insert maps to
// domain.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const insertSQL = `
		INSERT INTO users (id, full_name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, full_name, email, password_hash, role, created_at
	`

	created, err := scanUser(r.pool.QueryRow(ctx, insertSQL,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Role, user.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const selectSQL = `
		SELECT id, full_name, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, selectSQL, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE role = $1`, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// Recent returns the newest users first.
func (r *UserRepository) Recent(ctx context.Context, limit int) ([]domain.User, error) {
	const selectSQL = `
		SELECT id, full_name, email, password_hash, role, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, selectSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("recent users: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// ListBrokers returns every broker with its onboarded customer count,
// newest first.
func (r *UserRepository) ListBrokers(ctx context.Context) ([]ports.BrokerSummary, error) {
	const selectSQL = `
		SELECT u.id, u.full_name, u.email, u.created_at, count(c.id)
		FROM users u
		LEFT JOIN customers c ON c.broker_id = u.id
		WHERE u.role = $1
		GROUP BY u.id, u.full_name, u.email, u.created_at
		ORDER BY u.created_at DESC
	`

	rows, err := r.pool.Query(ctx, selectSQL, domain.RoleBroker)
	if err != nil {
		return nil, fmt.Errorf("list brokers: %w", err)
	}
	defer rows.Close()

	var brokers []ports.BrokerSummary
	for rows.Next() {
		var b ports.BrokerSummary
		if err := rows.Scan(&b.ID, &b.FullName, &b.Email, &b.CreatedAt, &b.CustomerCount); err != nil {
			return nil, fmt.Errorf("list brokers: %w", err)
		}
		brokers = append(brokers, b)
	}
	return brokers, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
