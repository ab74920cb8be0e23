package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

func newReviewFixture() (*ReviewService, *stubReviewRepo) {
	reviews := newStubReviewRepo()
	products := newStubProductRepo(&domain.Product{ID: "p1", Name: "Keyboard", Price: 49.90})
	return NewReviewService(reviews, products, zerolog.Nop()), reviews
}

func TestReviewService_Create(t *testing.T) {
	svc, _ := newReviewFixture()

	review, err := svc.Create(context.Background(), ports.CreateReviewInput{
		OwnerUserID: "u1", ProductID: "p1", Rating: 4, Comment: "solid",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if review.ID == "" || review.Rating != 4 {
		t.Fatalf("unexpected review %+v", review)
	}
}

func TestReviewService_Create_UnknownProduct(t *testing.T) {
	svc, _ := newReviewFixture()

	_, err := svc.Create(context.Background(), ports.CreateReviewInput{
		OwnerUserID: "u1", ProductID: "ghost", Rating: 4,
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestReviewService_Create_OnePerUserPerProduct(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()
	input := ports.CreateReviewInput{OwnerUserID: "u1", ProductID: "p1", Rating: 4}

	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}
	// A different user may still review the same product.
	if _, err := svc.Create(ctx, ports.CreateReviewInput{OwnerUserID: "u2", ProductID: "p1", Rating: 2}); err != nil {
		t.Fatalf("second user Create: %v", err)
	}
}

func TestReviewService_Update(t *testing.T) {
	svc, reviews := newReviewFixture()
	ctx := context.Background()

	created, _ := svc.Create(ctx, ports.CreateReviewInput{OwnerUserID: "u1", ProductID: "p1", Rating: 4, Comment: "ok"})

	updated, err := svc.Update(ctx, created, 5, "actually great")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Rating != 5 || updated.Comment != "actually great" {
		t.Fatalf("unexpected review %+v", updated)
	}
	stored, _ := reviews.FindByID(ctx, created.ID)
	if stored.Rating != 5 {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestReviewService_Delete(t *testing.T) {
	svc, reviews := newReviewFixture()
	ctx := context.Background()

	created, _ := svc.Create(ctx, ports.CreateReviewInput{OwnerUserID: "u1", ProductID: "p1", Rating: 3})

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := reviews.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("expected review gone, got %v", err)
	}
}
