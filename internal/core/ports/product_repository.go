package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing the catalog.
type ListProductsFilter struct {
	Category string  // optional: exact category match
	Search   string  // optional: partial match on name
	MinPrice float64 // optional: price >= MinPrice (when > 0)
	MaxPrice float64 // optional: price <= MaxPrice (when > 0)
	Page     int     // 1-based
	Limit    int     // max rows per page (capped at 100 by the service)
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
}
