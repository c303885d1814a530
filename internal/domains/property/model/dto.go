package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ImageFile là ảnh client gửi lên qua multipart field "image"
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreatePropertyRequest struct {
	Price   decimal.Decimal
	State   string
	City    string
	Address string
	Type    string
	Image   *ImageFile
}

// UpdatePropertyRequest: nil = field không được gửi
type UpdatePropertyRequest struct {
	Price   *decimal.Decimal
	State   *string
	City    *string
	Address *string
	Type    *string
}

func (r *UpdatePropertyRequest) IsEmpty() bool {
	return r.Price == nil && r.State == nil && r.City == nil && r.Address == nil && r.Type == nil
}

// NewCreatePropertyRequest build request từ payload đã qua CreatePropertySchema
func NewCreatePropertyRequest(payload map[string]any, image *ImageFile) (*CreatePropertyRequest, error) {
	req := &CreatePropertyRequest{Image: image}

	price, ok := payload["price"].(float64)
	if !ok {
		return nil, fmt.Errorf("price missing from validated payload")
	}
	req.Price = decimal.NewFromFloat(price)

	for key, dst := range map[string]*string{
		"state":   &req.State,
		"city":    &req.City,
		"address": &req.Address,
		"type":    &req.Type,
	} {
		v, ok := payload[key].(string)
		if !ok {
			return nil, fmt.Errorf("%s missing from validated payload", key)
		}
		*dst = v
	}

	return req, nil
}

// NewUpdatePropertyRequest build request từ payload đã qua UpdatePropertySchema
func NewUpdatePropertyRequest(payload map[string]any) *UpdatePropertyRequest {
	req := &UpdatePropertyRequest{}

	if v, ok := payload["price"].(float64); ok {
		price := decimal.NewFromFloat(v)
		req.Price = &price
	}
	req.State = optionalString(payload, "state")
	req.City = optionalString(payload, "city")
	req.Address = optionalString(payload, "address")
	req.Type = optionalString(payload, "type")

	return req
}

func optionalString(payload map[string]any, key string) *string {
	v, ok := payload[key].(string)
	if !ok {
		return nil
	}
	return &v
}
