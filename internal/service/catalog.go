package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/models"
	"github.com/shopstack/shopstack/internal/repo"
	"github.com/shopstack/shopstack/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, q, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	var fields []transport.FieldError
	if req.Name == "" {
		fields = append(fields, transport.FieldError{Field: "name", Reason: "required"})
	}
	if req.Price < 0 {
		fields = append(fields, transport.FieldError{Field: "price", Reason: "cannot be negative"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	prod := models.Product{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id string) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, &ValidationError{Fields: []transport.FieldError{
			{Field: "price", Reason: "cannot be negative"},
		}}
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return prod, nil
}

// DeleteProduct refuses to delete a product still referenced by cart items,
// so line items never dangle.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	referenced, err := s.Repo.CountItemsByProduct(ctx, id)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return ErrProductInCarts
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
