package domain

import "errors"

// Sentinel errors shared across services. The API layer owns the mapping of
// each error to an HTTP status code (see internal/api/error_handler.go).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrForbidden          = errors.New("access forbidden")

	ErrRoleNotFound    = errors.New("role not found")
	ErrRoleExists      = errors.New("role already exists")
	ErrInvalidRoleName = errors.New("invalid role name")
	ErrLastRole        = errors.New("cannot remove the last role from a user")
	ErrRoleInUse       = errors.New("role is still assigned to users")

	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("item not in cart")
	ErrEmptyCart        = errors.New("cart is empty")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoPaymentIntent   = errors.New("order has no payment intent")

	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("product already reviewed by this user")

	ErrAddressNotFound = errors.New("address not found")
	ErrDefaultAddress  = errors.New("cannot delete the default address")
)
