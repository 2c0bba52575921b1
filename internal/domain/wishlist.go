package domain

import "time"

type WishlistItem struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"imageUrl"`
	AddedAt   time.Time `json:"addedAt"`
}
