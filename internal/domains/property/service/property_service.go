package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"propertypro-backend/internal/domains/property/model"
	"propertypro-backend/internal/domains/property/repository"
	"propertypro-backend/internal/shared/authz"
)

type PropertyService struct {
	repo     repository.RepositoryInterface
	uploader ImageUploader
	images   ImagePreparer
	now      func() time.Time
}

// NewPropertyService: images có thể nil (upload nguyên bản)
func NewPropertyService(repo repository.RepositoryInterface, uploader ImageUploader, images ImagePreparer) ServiceInterface {
	return &PropertyService{
		repo:     repo,
		uploader: uploader,
		images:   images,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ========================================
// READ
// ========================================

func (s *PropertyService) List(ctx context.Context) ([]*model.PropertyResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(items), nil
}

// ListByType: không có kết quả -> not found
func (s *PropertyService) ListByType(ctx context.Context, propertyType string) ([]*model.PropertyResponse, error) {
	items, err := s.repo.ListByType(ctx, propertyType)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.NewTypeNotFound(propertyType)
	}
	return model.ToResponses(items), nil
}

func (s *PropertyService) GetByID(ctx context.Context, id int64) (*model.PropertyResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewPropertyNotFound(model.MsgNotFound)
	}
	return p.ToResponse(), nil
}

// ========================================
// CREATE
// ========================================

// Create: authorize -> prepare ảnh -> upload -> persist.
// Upload lỗi thì không persist; persist lỗi thì xóa ảnh vừa upload.
func (s *PropertyService) Create(ctx context.Context, actor *authz.Actor, req *model.CreatePropertyRequest) (*model.PropertyResponse, error) {
	if err := authz.Authorize(actor, 0, authz.OpCreate).Err(); err != nil {
		return nil, err
	}
	if req.Image == nil || len(req.Image.Data) == 0 {
		return nil, model.NewImageRequired()
	}

	data, contentType := req.Image.Data, req.Image.ContentType
	if s.images != nil {
		prepared, ct, err := s.images.Prepare(data)
		if err != nil {
			return nil, model.NewInvalidImage(err)
		}
		data, contentType = prepared, ct
	}

	url, assetID, err := s.uploader.Upload(ctx, req.Image.Filename, contentType, data)
	if err != nil {
		log.Error().Err(err).Int64("owner_id", actor.UserID).Msg("image upload failed")
		return nil, model.NewImageUploadFailed(err)
	}

	created, err := s.repo.Create(ctx, &model.Property{
		OwnerID:  actor.UserID,
		Price:    req.Price,
		State:    req.State,
		City:     req.City,
		Address:  req.Address,
		Type:     req.Type,
		ImageURL: url,
		ImageID:  assetID,
		Status:   model.StatusAvailable,
	})
	if err != nil {
		s.removeImage(ctx, assetID)
		return nil, fmt.Errorf("create property: %w", err)
	}

	log.Info().Int64("property_id", created.ID).Int64("owner_id", created.OwnerID).Msg("property created")
	return created.ToResponse(), nil
}

// ========================================
// UPDATE / MARK SOLD
// ========================================

// Update chỉ ghi các field có trong request. Policy được check trên bản ghi đã lock.
func (s *PropertyService) Update(ctx context.Context, actor *authz.Actor, id int64, req *model.UpdatePropertyRequest) (*model.PropertyResponse, error) {
	updated, err := s.repo.Update(ctx, id, func(p *model.Property) error {
		if err := authz.Authorize(actor, p.OwnerID, authz.OpUpdate).Err(); err != nil {
			return err
		}
		p.Apply(req, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewPropertyNotFound(model.MsgUpdateNotFound)
	}
	return updated.ToResponse(), nil
}

// MarkSold: available -> sold. Gọi lại trên property đã sold là no-op, vẫn trả 200.
func (s *PropertyService) MarkSold(ctx context.Context, actor *authz.Actor, id int64) (*model.PropertyResponse, error) {
	updated, err := s.repo.Update(ctx, id, func(p *model.Property) error {
		if err := authz.Authorize(actor, p.OwnerID, authz.OpMarkSold).Err(); err != nil {
			return err
		}
		p.MarkSold(s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewPropertyNotFound(model.MsgNotFound)
	}
	return updated.ToResponse(), nil
}

// ========================================
// DELETE
// ========================================

// Delete: owner hoặc admin. Ảnh trên image host được xóa sau cùng (best effort).
func (s *PropertyService) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return model.NewPropertyNotFound(model.MsgDeleteNotFound)
	}

	if err := authz.Authorize(actor, p.OwnerID, authz.OpDelete).Err(); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		// bị xóa bởi request khác giữa GetByID và Delete
		return model.NewPropertyNotFound(model.MsgDeleteNotFound)
	}

	s.removeImage(ctx, p.ImageID)
	log.Info().Int64("property_id", id).Int64("actor_id", actor.UserID).Msg("property deleted")
	return nil
}

func (s *PropertyService) removeImage(ctx context.Context, assetID string) {
	if assetID == "" {
		return
	}
	if err := s.uploader.Delete(ctx, assetID); err != nil {
		log.Warn().Err(err).Str("asset_id", assetID).Msg("failed to delete property image")
	}
}
