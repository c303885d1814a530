package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"propertypro-backend/internal/domains/property/model"
	"propertypro-backend/pkg/database"
)

const propertyColumns = `
	id, owner_id, price, state, city, address, type,
	image_url, image_id, status, created_at, updated_at`

// postgresRepository implements RepositoryInterface với pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanProperty(row pgx.Row) (*model.Property, error) {
	var p model.Property
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Price, &p.State, &p.City, &p.Address, &p.Type,
		&p.ImageURL, &p.ImageID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new property, id/created_at do DB sinh
func (r *postgresRepository) Create(ctx context.Context, p *model.Property) (*model.Property, error) {
	query := `
		INSERT INTO properties (owner_id, price, state, city, address, type, image_url, image_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + propertyColumns

	created, err := scanProperty(r.pool.QueryRow(ctx, query,
		p.OwnerID, p.Price, p.State, p.City, p.Address, p.Type, p.ImageURL, p.ImageID, p.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property by id: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY id`
	return r.query(ctx, query)
}

func (r *postgresRepository) ListByType(ctx context.Context, propertyType string) ([]*model.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE type = $1 ORDER BY id`
	return r.query(ctx, query, propertyType)
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]*model.Property, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	items := make([]*model.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}
	return items, nil
}

// Update lock row rồi gọi fn, chỉ ghi lại khi fn không trả error
func (r *postgresRepository) Update(ctx context.Context, id int64, fn UpdateFunc) (*model.Property, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Property, error) {
		lockQuery := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 FOR UPDATE`

		current, err := scanProperty(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to lock property: %w", err)
		}

		lockedAt := current.UpdatedAt
		if err := fn(current); err != nil {
			return nil, err
		}
		if current.UpdatedAt.Equal(lockedAt) {
			// fn không đổi gì (vd: mark sold lần hai)
			return current, nil
		}

		updateQuery := `
			UPDATE properties
			SET price = $2, state = $3, city = $4, address = $5, type = $6,
			    status = $7, updated_at = $8
			WHERE id = $1
			RETURNING ` + propertyColumns

		updated, err := scanProperty(tx.QueryRow(ctx, updateQuery,
			id, current.Price, current.State, current.City, current.Address, current.Type, current.Status, current.UpdatedAt,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to update property: %w", err)
		}
		return updated, nil
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete property: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
