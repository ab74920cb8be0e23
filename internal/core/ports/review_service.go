package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// CreateReviewInput carries everything needed to post a review. OwnerUserID
// is the resolved effective user, not necessarily the caller.
type CreateReviewInput struct {
	OwnerUserID string
	ProductID   string
	Rating      int
	Comment     string
}

// ListReviewsResult is returned by ListByProduct.
type ListReviewsResult struct {
	Items      []*domain.Review
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReviewService defines use-case operations on product reviews.
type ReviewService interface {
	// Create posts a review; a second review by the same user on the same
	// product is refused (domain.ErrReviewExists).
	Create(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string, page, limit int) (*ListReviewsResult, error)
	Update(ctx context.Context, review *domain.Review, rating int, comment string) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}
