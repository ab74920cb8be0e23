package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

const collectionAddresses = "addresses"

type AddressRepository struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewAddressRepository(client *mongo.Client, db *mongo.Database) *AddressRepository {
	return &AddressRepository{client: client, col: db.Collection(collectionAddresses)}
}

func (r *AddressRepository) Create(ctx context.Context, a *domain.ShippingAddress) (*domain.ShippingAddress, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}
	return a, nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (*domain.ShippingAddress, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.ShippingAddress
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	return &a, nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.ShippingAddress, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "is_default", Value: -1}, {Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer cur.Close(ctx)

	var addrs []*domain.ShippingAddress
	for cur.Next(ctx) {
		var a domain.ShippingAddress
		if err := cur.Decode(&a); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
		addrs = append(addrs, &a)
	}
	return addrs, cur.Err()
}

func (r *AddressRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (r *AddressRepository) Update(ctx context.Context, a *domain.ShippingAddress) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

// SetDefault moves the default flag inside one transaction: the previous
// default is unset and the new one set, or neither happens.
func (r *AddressRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	now := time.Now().UTC()
	return WithTransaction(ctx, r.client, func(sc mongo.SessionContext) (any, error) {
		if _, err := r.col.UpdateMany(sc,
			bson.M{"user_id": userID, "is_default": true},
			bson.M{"$set": bson.M{"is_default": false, "updated_at": now}},
		); err != nil {
			return nil, fmt.Errorf("unset default address: %w", err)
		}

		res, err := r.col.UpdateOne(sc,
			bson.M{"_id": addressID, "user_id": userID},
			bson.M{"$set": bson.M{"is_default": true, "updated_at": now}},
		)
		if err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrAddressNotFound
		}
		return nil, nil
	})
}

// EnsureIndexes creates the address query index.
func (r *AddressRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_default", Value: -1}},
	})
	return err
}
