package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// In-memory stand-ins for the persistence ports, shared by the service tests.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]*domain.User, int64, error) {
	var users []*domain.User
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	return users, int64(len(r.users)), nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLoginAt = at
	return nil
}

func (r *stubUserRepo) GrantRole(_ context.Context, userID, role string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, held := range u.Roles {
		if held == role {
			return nil
		}
	}
	u.Roles = append(u.Roles, role)
	return nil
}

func (r *stubUserRepo) RevokeRole(_ context.Context, userID, role string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	idx := -1
	for i, held := range u.Roles {
		if held == role {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrRoleNotFound
	}
	if len(u.Roles) <= 1 {
		return domain.ErrLastRole
	}
	u.Roles = append(u.Roles[:idx], u.Roles[idx+1:]...)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		for _, held := range u.Roles {
			if held == role {
				n++
				break
			}
		}
	}
	return n, nil
}

type stubRoleRepo struct {
	roles  map[string]*domain.Role
	nextID int
}

func newStubRoleRepo(names ...string) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for _, name := range names {
		_, _ = r.Create(context.Background(), &domain.Role{Name: name})
	}
	return r
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return nil, domain.ErrRoleExists
		}
	}
	clone := *role
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("role-%d", r.nextID)
	}
	r.roles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			clone := *role
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	var roles []*domain.Role
	for _, role := range r.roles {
		clone := *role
		roles = append(roles, &clone)
	}
	return roles, nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.products[p.ID] = p
	return p, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	var products []*domain.Product
	for _, p := range r.products {
		clone := *p
		products = append(products, &clone)
	}
	return products, int64(len(products)), nil
}

type stubCartRepo struct {
	carts     map[string]*domain.Cart
	upsertErr error
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *stubCartRepo) FindByUserID(_ context.Context, userID string) (*domain.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	clone := *c
	clone.Items = append([]domain.CartItem(nil), c.Items...)
	return &clone, nil
}

func (r *stubCartRepo) Upsert(_ context.Context, cart *domain.Cart) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	clone := *cart
	clone.Items = append([]domain.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = &clone
	return nil
}

func (r *stubCartRepo) DeleteByUserID(_ context.Context, userID string) error {
	delete(r.carts, userID)
	return nil
}

type statusUpdate struct {
	orderID      string
	status       domain.OrderStatus
	intentStatus string
}

type stubOrderRepo struct {
	orders        map[string]*domain.Order
	placeErr      error
	placed        []*domain.Order
	statusUpdates []statusUpdate
	intents       map[string]domain.PaymentInfo
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	r := &stubOrderRepo{
		orders:  make(map[string]*domain.Order),
		intents: make(map[string]domain.PaymentInfo),
	}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *stubOrderRepo) Place(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if r.placeErr != nil {
		return nil, r.placeErr
	}
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", len(r.orders)+1)
	}
	r.orders[order.ID] = order
	r.placed = append(r.placed, order)
	return order, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	var orders []*domain.Order
	for _, o := range r.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		clone := *o
		orders = append(orders, &clone)
	}
	return orders, int64(len(orders)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, intentStatus string, at time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.Payment.Status = intentStatus
	o.UpdatedAt = at
	r.statusUpdates = append(r.statusUpdates, statusUpdate{orderID: id, status: status, intentStatus: intentStatus})
	return nil
}

func (r *stubOrderRepo) SetPaymentIntent(_ context.Context, id string, payment domain.PaymentInfo) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Payment = payment
	r.intents[id] = payment
	return nil
}

type stubAddressRepo struct {
	addrs         map[string]*domain.ShippingAddress
	setDefaultErr error
	nextID        int
}

func newStubAddressRepo() *stubAddressRepo {
	return &stubAddressRepo{addrs: make(map[string]*domain.ShippingAddress)}
}

func (r *stubAddressRepo) Create(_ context.Context, a *domain.ShippingAddress) (*domain.ShippingAddress, error) {
	clone := *a
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("addr-%d", r.nextID)
	}
	r.addrs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAddressRepo) FindByID(_ context.Context, id string) (*domain.ShippingAddress, error) {
	a, ok := r.addrs[id]
	if !ok {
		return nil, domain.ErrAddressNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAddressRepo) ListByUser(_ context.Context, userID string) ([]*domain.ShippingAddress, error) {
	var addrs []*domain.ShippingAddress
	for _, a := range r.addrs {
		if a.UserID == userID {
			clone := *a
			addrs = append(addrs, &clone)
		}
	}
	return addrs, nil
}

func (r *stubAddressRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, a := range r.addrs {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubAddressRepo) Update(_ context.Context, a *domain.ShippingAddress) error {
	if _, ok := r.addrs[a.ID]; !ok {
		return domain.ErrAddressNotFound
	}
	clone := *a
	r.addrs[a.ID] = &clone
	return nil
}

func (r *stubAddressRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.addrs[id]; !ok {
		return domain.ErrAddressNotFound
	}
	delete(r.addrs, id)
	return nil
}

func (r *stubAddressRepo) SetDefault(_ context.Context, userID, addressID string) error {
	if r.setDefaultErr != nil {
		return r.setDefaultErr
	}
	target, ok := r.addrs[addressID]
	if !ok || target.UserID != userID {
		return domain.ErrAddressNotFound
	}
	for _, a := range r.addrs {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	target.IsDefault = true
	return nil
}

type stubReviewRepo struct {
	reviews map[string]*domain.Review
	nextID  int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.ProductID == review.ProductID {
			return nil, domain.ErrReviewExists
		}
	}
	clone := *review
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("review-%d", r.nextID)
	}
	r.reviews[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	clone := *review
	return &clone, nil
}

func (r *stubReviewRepo) FindByUserAndProduct(_ context.Context, userID, productID string) (*domain.Review, error) {
	for _, review := range r.reviews {
		if review.UserID == userID && review.ProductID == productID {
			clone := *review
			return &clone, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) ListByProduct(_ context.Context, productID string, page, limit int) ([]*domain.Review, int64, error) {
	var reviews []*domain.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			clone := *review
			reviews = append(reviews, &clone)
		}
	}
	return reviews, int64(len(reviews)), nil
}

func (r *stubReviewRepo) Update(_ context.Context, review *domain.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
	marked   int
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(intentID, status string, ts time.Time) string {
	return fmt.Sprintf("%s:%s:%d", intentID, status, ts.Unix())
}

func (d *stubDedup) IsDuplicate(_ context.Context, intentID, status string, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[d.key(intentID, status, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, intentID, status string, ts time.Time) error {
	d.seen[d.key(intentID, status, ts)] = true
	d.marked++
	return nil
}
