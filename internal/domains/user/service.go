package user

import (
	"context"

	"propertypro-backend/pkg/jwt"
)

// Service định nghĩa business logic layer contract
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Signin(ctx context.Context, req SigninRequest) (*AuthResponse, error)

	// Signout thu hồi token hiện tại cho tới khi hết hạn
	Signout(ctx context.Context, claims *jwt.Claims) error

	// EnsureAdmin seed tài khoản admin nếu chưa có
	EnsureAdmin(ctx context.Context, email, password string) error
}
