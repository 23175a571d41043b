package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/montasssar/EcommerceSnazzyWear/models"
	"github.com/montasssar/EcommerceSnazzyWear/repository"
)

// ProductService is the catalog's business layer.
type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, product models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *productService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProduct assigns the id and timestamps; clients never pick them.
func (s *productService) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct overwrites the client-editable fields and refreshes
// updated_at, then reads the record back so the caller always gets the
// store's authoritative version.
func (s *productService) UpdateProduct(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	updates := map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"image_url":   product.ImageURL,
		"category":    product.Category,
		"updated_at":  time.Now().UTC().Format(time.RFC3339),
	}
	if product.SubCategory != "" {
		updates["sub_category"] = product.SubCategory
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
