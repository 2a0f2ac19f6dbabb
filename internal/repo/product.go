package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/models"
	"github.com/shopstack/shopstack/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts pages through the catalog newest first, optionally filtering
// name/description case-insensitively.
func (r *GormRepo) ListProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	query := r.DB.WithContext(ctx).Model(&models.Product{})
	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id string) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.ImageURL != nil {
		prod.ImageURL = *req.ImageURL
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
