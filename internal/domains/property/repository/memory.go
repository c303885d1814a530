package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"propertypro-backend/internal/domains/property/model"
)

// memoryRepository dùng cho DB_DRIVER=memory và test.
// Mọi giá trị trả ra là bản copy.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*model.Property
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{items: make(map[int64]*model.Property)}
}

func (r *memoryRepository) Create(_ context.Context, p *model.Property) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()

	stored := p.Clone()
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.items[stored.ID] = stored

	return stored.Clone(), nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.items[id].Clone(), nil
}

func (r *memoryRepository) List(_ context.Context) ([]*model.Property, error) {
	return r.filter(func(*model.Property) bool { return true }), nil
}

func (r *memoryRepository) ListByType(_ context.Context, propertyType string) ([]*model.Property, error) {
	return r.filter(func(p *model.Property) bool { return p.Type == propertyType }), nil
}

func (r *memoryRepository) filter(keep func(*model.Property) bool) []*model.Property {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Property, 0, len(r.items))
	for _, p := range r.items {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memoryRepository) Update(_ context.Context, id int64, fn UpdateFunc) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return nil, nil
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	if working.UpdatedAt.Equal(current.UpdatedAt) {
		return current.Clone(), nil
	}

	// id, owner, ảnh và created_at không đổi qua update
	working.ID = current.ID
	working.OwnerID = current.OwnerID
	working.ImageURL = current.ImageURL
	working.ImageID = current.ImageID
	working.CreatedAt = current.CreatedAt
	r.items[id] = working

	return working.Clone(), nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
