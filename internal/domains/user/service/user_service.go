package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"propertypro-backend/internal/domains/user"
	"propertypro-backend/pkg/cache"
	"propertypro-backend/pkg/jwt"
	"propertypro-backend/pkg/logger"
)

const DefaultBcryptCost = 12

// userService implement user.Service interface
type userService struct {
	repo       user.Repository       // Data access layer
	jwtManager *jwt.Manager          // Ký access token
	revoked    cache.RevocationStore // Token đã signout
	bcryptCost int
}

// NewUserService tạo service instance
// Inject dependencies qua constructor (Dependency Injection)
func NewUserService(repo user.Repository, jwtManager *jwt.Manager, revoked cache.RevocationStore, bcryptCost int) user.Service {
	if bcryptCost <= 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		revoked:    revoked,
		bcryptCost: bcryptCost,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Signup tạo user mới và trả về access token luôn
func (s *userService) Signup(ctx context.Context, req user.SignupRequest) (*user.AuthResponse, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. BUSINESS RULE: email unique
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	// 3. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. PERSIST
	newUser := &user.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		PasswordHash: string(passwordHash),
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user signed up", map[string]interface{}{"user_id": newUser.ID})
	return s.issueToken(newUser)
}

// Signin xác thực email/password và trả về JWT
func (s *userService) Signin(ctx context.Context, req user.SigninRequest) (*user.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Không expose email có tồn tại hay không
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueToken(u)
}

// Signout lưu jti vào revocation store với TTL = thời gian còn lại của token
func (s *userService) Signout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	if s.revoked == nil {
		return fmt.Errorf("token revocation is not configured")
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.Remaining(time.Now())); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// EnsureAdmin tạo admin nếu email chưa tồn tại. Email rỗng thì bỏ qua.
func (s *userService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &user.User{
		Email:        email,
		FirstName:    "Admin",
		LastName:     "PropertyPro",
		PasswordHash: string(passwordHash),
		IsAdmin:      true,
	}
	if err := s.repo.Create(ctx, admin); err != nil && !errors.Is(err, user.ErrEmailAlreadyExists) {
		return fmt.Errorf("create admin: %w", err)
	}

	logger.Info("admin account seeded", map[string]interface{}{"email": email})
	return nil
}

func (s *userService) issueToken(u *user.User) (*user.AuthResponse, error) {
	token, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, string(u.Role()))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtManager.TTL()),
		User:      u.ToDTO(),
	}, nil
}
