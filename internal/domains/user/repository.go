package user

import "context"

// Repository định nghĩa contract cho data access layer.
// Cho phép swap implementation (Postgres / in-memory) và mock trong test.
type Repository interface {
	// Create tạo user mới, set ID và CreatedAt
	// Returns: ErrEmailAlreadyExists nếu email đã tồn tại
	Create(ctx context.Context, user *User) error

	// FindByID / FindByEmail
	// Returns: ErrUserNotFound nếu không tìm thấy
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
