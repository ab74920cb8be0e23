package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

const collectionCarts = "carts"

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts)}
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cart domain.Cart
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

// Upsert stores the cart keyed by its owner, creating it on first write.
func (r *CartRepository) Upsert(ctx context.Context, cart *domain.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// _id is immutable, so it is only set when the upsert inserts.
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": cart.UserID},
		bson.M{
			"$set":         bson.M{"items": cart.Items, "updated_at": cart.UpdatedAt},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID().Hex()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}

func (r *CartRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
