package domain

import "time"

type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	SessionID string     `bson:"session_id" json:"session_id"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

type CartItem struct {
	ProductID string    `bson:"product_id" json:"productId"`
	Name      string    `bson:"name" json:"name"`
	Price     int64     `bson:"price" json:"price"`
	ImageURL  string    `bson:"image_url" json:"imageUrl"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"addedAt"`
}

// Subtotal is the line total for this item in minor currency units.
func (i CartItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}
