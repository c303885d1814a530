package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
)

type Property struct {
	ID        int64           `json:"id" db:"id"`
	OwnerID   int64           `json:"owner_id" db:"owner_id"`
	Price     decimal.Decimal `json:"price" db:"price"`
	State     string          `json:"state" db:"state"`
	City      string          `json:"city" db:"city"`
	Address   string          `json:"address" db:"address"`
	Type      string          `json:"type" db:"type"`
	ImageURL  string          `json:"image_url" db:"image_url"`
	ImageID   string          `json:"-" db:"image_id"`
	Status    Status          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// IsSold: available -> sold là chiều duy nhất
func (p *Property) IsSold() bool {
	return p.Status == StatusSold
}

// MarkSold chuyển status sang sold. Trả về false nếu đã sold từ trước (no-op).
func (p *Property) MarkSold(now time.Time) bool {
	if p.IsSold() {
		return false
	}
	p.Status = StatusSold
	p.UpdatedAt = now
	return true
}

// Apply chỉ ghi đè các field có trong request. ID, OwnerID, Status không đổi.
// Request rỗng thì không đổi gì, kể cả UpdatedAt.
func (p *Property) Apply(req *UpdatePropertyRequest, now time.Time) {
	if req == nil || req.IsEmpty() {
		return
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	p.UpdatedAt = now
}

// Clone trả về bản copy để store không bị sửa từ bên ngoài
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

type PropertyResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Price     float64   `json:"price"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	Type      string    `json:"type"`
	ImageURL  string    `json:"image_url"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Property) ToResponse() *PropertyResponse {
	return &PropertyResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Price:     p.Price.InexactFloat64(),
		State:     p.State,
		City:      p.City,
		Address:   p.Address,
		Type:      p.Type,
		ImageURL:  p.ImageURL,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToResponses(items []*Property) []*PropertyResponse {
	out := make([]*PropertyResponse, 0, len(items))
	for _, p := range items {
		out = append(out, p.ToResponse())
	}
	return out
}
