package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// CartService implements cart use cases. Line names and unit prices are
// refreshed from the catalog on every mutation; they are only frozen when an
// order is placed.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, log: log}
}

// Get returns the user's cart; a user without one gets an empty cart rather
// than an error.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].Name = product.Name
			cart.Items[i].UnitPrice = product.Price
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
		})
	}

	return s.save(ctx, cart)
}

// UpdateItem sets the line quantity; zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity == 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			return s.save(ctx, cart)
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return s.save(ctx, cart)
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	err := s.carts.DeleteByUserID(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return nil
	}
	return err
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	cart.UpdatedAt = time.Now().UTC()
	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
