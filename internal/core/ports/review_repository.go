package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*domain.Review, error)
	// ListByProduct returns a page of reviews for a product and the total count.
	ListByProduct(ctx context.Context, productID string, page, limit int) ([]*domain.Review, int64, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id string) error
}
