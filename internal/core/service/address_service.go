package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// AddressService implements shipping address use cases.
type AddressService struct {
	repo ports.AddressRepository
	log  zerolog.Logger
}

func NewAddressService(repo ports.AddressRepository, log zerolog.Logger) *AddressService {
	return &AddressService{repo: repo, log: log}
}

// Create stores a new address. The owner's first address becomes the default
// so a default always exists once any address does.
func (s *AddressService) Create(ctx context.Context, input ports.AddressInput) (*domain.ShippingAddress, error) {
	count, err := s.repo.CountByUser(ctx, input.OwnerUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	addr, err := s.repo.Create(ctx, &domain.ShippingAddress{
		UserID:    input.OwnerUserID,
		Label:     input.Label,
		Street:    input.Street,
		City:      input.City,
		ZipCode:   input.ZipCode,
		Country:   input.Country,
		IsDefault: count == 0,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("address_id", addr.ID).Str("user_id", addr.UserID).Msg("address created")
	return addr, nil
}

func (s *AddressService) ListByUser(ctx context.Context, userID string) ([]*domain.ShippingAddress, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *AddressService) Update(ctx context.Context, addr *domain.ShippingAddress, input ports.AddressInput) (*domain.ShippingAddress, error) {
	addr.Label = input.Label
	addr.Street = input.Street
	addr.City = input.City
	addr.ZipCode = input.ZipCode
	addr.Country = input.Country
	addr.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// Delete removes an address. The default address is protected while other
// addresses exist: another address must be made default first.
func (s *AddressService) Delete(ctx context.Context, addr *domain.ShippingAddress) error {
	if addr.IsDefault {
		count, err := s.repo.CountByUser(ctx, addr.UserID)
		if err != nil {
			return err
		}
		if count > 1 {
			return domain.ErrDefaultAddress
		}
	}
	return s.repo.Delete(ctx, addr.ID)
}

// SetDefault moves the default flag to addr. The unset-previous/set-new pair
// runs in one repository transaction; a failure anywhere leaves the previous
// default untouched.
func (s *AddressService) SetDefault(ctx context.Context, addr *domain.ShippingAddress) error {
	if addr.IsDefault {
		return nil
	}
	if err := s.repo.SetDefault(ctx, addr.UserID, addr.ID); err != nil {
		return err
	}
	s.log.Info().Str("address_id", addr.ID).Str("user_id", addr.UserID).Msg("default address changed")
	return nil
}
