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
	"github.com/brightcart/storefront-api/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	client *mongo.Client
	orders *mongo.Collection
	prods  *mongo.Collection
	carts  *mongo.Collection
}

func NewOrderRepository(client *mongo.Client, db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		client: client,
		orders: db.Collection(collectionOrders),
		prods:  db.Collection(collectionProducts),
		carts:  db.Collection(collectionCarts),
	}
}

// Place runs the whole placement in one transaction: every line item's stock
// is decremented with a floor guard, the order is inserted, and the owner's
// cart is cleared. Any failure aborts all three.
func (r *OrderRepository) Place(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.ID == "" {
		order.ID = primitive.NewObjectID().Hex()
	}

	err := WithTransaction(ctx, r.client, func(sc mongo.SessionContext) (any, error) {
		for _, item := range order.Items {
			res, err := r.prods.UpdateOne(sc,
				bson.M{"_id": item.ProductID, "stock": bson.M{"$gte": item.Quantity}},
				bson.M{"$inc": bson.M{"stock": -item.Quantity}},
			)
			if err != nil {
				return nil, fmt.Errorf("decrement stock: %w", err)
			}
			if res.MatchedCount == 0 {
				return nil, domain.ErrInsufficientStock
			}
		}

		if _, err := r.orders.InsertOne(sc, order); err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		if _, err := r.carts.DeleteOne(sc, bson.M{"user_id": order.UserID}); err != nil {
			return nil, fmt.Errorf("clear cart: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var order domain.Order
	if err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.orders.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.orders.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	for cur.Next(ctx) {
		var o domain.Order
		if err := cur.Decode(&o); err != nil {
			return nil, 0, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, total, cur.Err()
}

// UpdateStatus transitions the order and records the latest intent status in
// the same write.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, intentStatus string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status, "updated_at": at}
	if intentStatus != "" {
		set["payment.status"] = intentStatus
		set["payment.updated_at"] = at
	}

	res, err := r.orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) SetPaymentIntent(ctx context.Context, id string, payment domain.PaymentInfo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"payment": payment, "updated_at": payment.UpdatedAt},
	})
	if err != nil {
		return fmt.Errorf("set payment intent: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// EnsureIndexes creates the order query indexes.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "payment.intent_id", Value: 1}}},
	}
	_, err := r.orders.Indexes().CreateMany(ctx, indexes)
	return err
}
