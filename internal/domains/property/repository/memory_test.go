package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertypro-backend/internal/domains/property/model"
)

func newProperty(owner int64, propertyType string) *model.Property {
	return &model.Property{
		OwnerID: owner,
		Price:   decimal.NewFromInt(1000),
		State:   "Lagos",
		City:    "Ikeja",
		Address: "12 Allen Avenue",
		Type:    propertyType,
		Status:  model.StatusAvailable,
	}
}

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	first, err := repo.Create(ctx, newProperty(1, "3 bedroom"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newProperty(2, "duplex"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "3 bedroom", got.Type)

	// giá trị trả ra là copy
	got.City = "mutated"
	again, _ := repo.GetByID(ctx, 1)
	assert.Equal(t, "Ikeja", again.City)

	missing, err := repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, _ := repo.List(ctx)
	assert.Len(t, all, 2)

	byType, _ := repo.ListByType(ctx, "duplex")
	require.Len(t, byType, 1)
	assert.Equal(t, int64(2), byType[0].ID)

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.Create(ctx, newProperty(1, "3 bedroom"))
	require.NoError(t, err)

	stamp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	updated, err := repo.Update(ctx, 1, func(p *model.Property) error {
		p.City = "Yaba"
		p.OwnerID = 42
		p.UpdatedAt = stamp
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Yaba", updated.City)
	assert.Equal(t, int64(1), updated.OwnerID)
	assert.Equal(t, stamp, updated.UpdatedAt)

	boom := errors.New("denied")
	_, err = repo.Update(ctx, 1, func(p *model.Property) error {
		p.City = "Surulere"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	current, _ := repo.GetByID(ctx, 1)
	assert.Equal(t, "Yaba", current.City)

	missing, err := repo.Update(ctx, 7, func(*model.Property) error { return nil })
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryRepository_UpdateWithoutChangeSkipsWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	created, err := repo.Create(ctx, newProperty(1, "3 bedroom"))
	require.NoError(t, err)

	// fn không set UpdatedAt thì thay đổi bị bỏ qua
	got, err := repo.Update(ctx, 1, func(p *model.Property) error {
		p.City = "Yaba"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Ikeja", got.City)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)

	stored, _ := repo.GetByID(ctx, 1)
	assert.Equal(t, "Ikeja", stored.City)
}
