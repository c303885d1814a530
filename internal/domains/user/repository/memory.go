package repository

import (
	"context"
	"sync"
	"time"

	"propertypro-backend/internal/domains/user"
)

// memoryRepository dùng cho DB_DRIVER=memory và test
type memoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*user.User
	byEmail map[string]int64
}

func NewMemoryRepository() user.Repository {
	return &memoryRepository{
		byID:    make(map[int64]*user.User),
		byEmail: make(map[string]int64),
	}
}

func (r *memoryRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrEmailAlreadyExists
	}

	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()

	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()

	if !ok {
		return nil, user.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *memoryRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}
