package domain

import "time"

// CartItem is a single product line in a cart. UnitPrice is refreshed from
// the catalog on every mutation; it is only frozen at order time.
type CartItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Cart holds a user's pending purchases. At most one cart exists per user;
// it is looked up by owner, not by primary key.
type Cart struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"user_id" bson:"user_id"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// OwnerID implements Ownable.
func (c *Cart) OwnerID() string { return c.UserID }

// Total returns the sum of all line totals.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}
