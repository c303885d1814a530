package cache

import (
	"context"
	"time"
)

// RevocationStore lưu token ID (jti) đã bị thu hồi cho tới khi token hết hạn.
// Cho phép swap implementation (Redis, in-memory cho test).
type RevocationStore interface {
	// Revoke đánh dấu token ID bị thu hồi trong khoảng ttl
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked kiểm tra token ID đã bị thu hồi chưa
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
