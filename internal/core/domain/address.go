package domain

import "time"

// ShippingAddress is a delivery destination owned by a user. Exactly one
// address per user is the default; the default cannot be deleted while other
// addresses exist, and switching the default is atomic (unset previous, set
// new) so no observable state has two defaults or none.
type ShippingAddress struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Label     string    `json:"label,omitempty" bson:"label,omitempty"`
	Street    string    `json:"street" bson:"street"`
	City      string    `json:"city" bson:"city"`
	ZipCode   string    `json:"zip_code" bson:"zip_code"`
	Country   string    `json:"country" bson:"country"`
	IsDefault bool      `json:"is_default" bson:"is_default"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// OwnerID implements Ownable.
func (a *ShippingAddress) OwnerID() string { return a.UserID }
