package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// ProductInput carries the catalog fields an admin may set.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Stock       int
}

// ListProductsResult is returned by List.
type ListProductsResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines use-case operations on the catalog.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListProductsFilter) (*ListProductsResult, error)
}
