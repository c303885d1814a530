package repository

import (
	"context"

	"propertypro-backend/internal/domains/property/model"
)

// UpdateFunc được gọi với bản ghi đã lock. Trả error để hủy update (rollback).
// fn set UpdatedAt khi có thay đổi; UpdatedAt giữ nguyên thì repository không ghi gì.
type UpdateFunc func(p *model.Property) error

// RepositoryInterface định nghĩa data access cho property.
// GetByID / Update trả về (nil, nil) khi không tìm thấy.
type RepositoryInterface interface {
	Create(ctx context.Context, p *model.Property) (*model.Property, error)
	GetByID(ctx context.Context, id int64) (*model.Property, error)
	List(ctx context.Context) ([]*model.Property, error)
	ListByType(ctx context.Context, propertyType string) ([]*model.Property, error)

	// Update: read-modify-write trong một transaction (SELECT ... FOR UPDATE)
	Update(ctx context.Context, id int64, fn UpdateFunc) (*model.Property, error)

	// Delete trả về false nếu id không tồn tại
	Delete(ctx context.Context, id int64) (bool, error)
}
