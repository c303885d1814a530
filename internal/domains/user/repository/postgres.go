package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"propertypro-backend/internal/domains/user"
)

// uniqueViolation = PostgreSQL error code 23505
const uniqueViolation = "23505"

// postgresRepository implement user.Repository với pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository tạo repository instance
// Inject pool qua constructor (Dependency Injection)
func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

// Create tạo user mới, DB sinh id và created_at
func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (email, first_name, last_name, phone_number, address, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		u.Email, u.FirstName, u.LastName, u.PhoneNumber, u.Address, u.PasswordHash, u.IsAdmin,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		// Mapping PostgreSQL unique violation thành domain error
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *postgresRepository) findOne(ctx context.Context, where string, arg interface{}) (*user.User, error) {
	query := `
		SELECT id, email, first_name, last_name, phone_number, address, password_hash, is_admin, created_at
		FROM users ` + where

	var u user.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.Address,
		&u.PasswordHash, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}
