package service

import (
	"context"

	"propertypro-backend/internal/domains/property/model"
	"propertypro-backend/internal/shared/authz"
)

// ImageUploader là image host bên ngoài. Upload trả về public URL và asset id.
type ImageUploader interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (url string, assetID string, err error)
	Delete(ctx context.Context, assetID string) error
}

// ImagePreparer validate + resize ảnh trước khi upload
type ImagePreparer interface {
	Prepare(data []byte) ([]byte, string, error)
}

// ServiceInterface: mọi method mutate nhận actor tường minh và gọi authz.Authorize
type ServiceInterface interface {
	List(ctx context.Context) ([]*model.PropertyResponse, error)
	ListByType(ctx context.Context, propertyType string) ([]*model.PropertyResponse, error)
	GetByID(ctx context.Context, id int64) (*model.PropertyResponse, error)

	Create(ctx context.Context, actor *authz.Actor, req *model.CreatePropertyRequest) (*model.PropertyResponse, error)
	Update(ctx context.Context, actor *authz.Actor, id int64, req *model.UpdatePropertyRequest) (*model.PropertyResponse, error)
	MarkSold(ctx context.Context, actor *authz.Actor, id int64) (*model.PropertyResponse, error)
	Delete(ctx context.Context, actor *authz.Actor, id int64) error
}
