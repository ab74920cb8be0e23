package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// ReviewService implements product review use cases.
type ReviewService struct {
	reviews  ports.ReviewRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, products ports.ProductRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, log: log}
}

// Create posts a review on an existing product. Each user reviews a product
// at most once.
func (s *ReviewService) Create(ctx context.Context, input ports.CreateReviewInput) (*domain.Review, error) {
	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	if _, err := s.reviews.FindByUserAndProduct(ctx, input.OwnerUserID, input.ProductID); err == nil {
		return nil, domain.ErrReviewExists
	} else if !errors.Is(err, domain.ErrReviewNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	review, err := s.reviews.Create(ctx, &domain.Review{
		UserID:    input.OwnerUserID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("review_id", review.ID).Str("product_id", input.ProductID).Msg("review posted")
	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string, page, limit int) (*ports.ListReviewsResult, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.reviews.ListByProduct(ctx, productID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ListReviewsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *ReviewService) Update(ctx context.Context, review *domain.Review, rating int, comment string) (*domain.Review, error) {
	review.Rating = rating
	review.Comment = comment
	review.UpdatedAt = time.Now().UTC()

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.reviews.Delete(ctx, id)
}
