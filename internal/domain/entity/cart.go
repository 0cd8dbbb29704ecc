package entity

import (
	"time"
)

type CartItem struct {
	ProductID string  `json:"product_id" firestore:"productId"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	UnitPrice float64 `json:"unit_price" firestore:"unitPrice"`
}

// Cart is one document per user, keyed by the user id.
type Cart struct {
	UserID    string     `json:"user_id" firestore:"userId"`
	Items     []CartItem `json:"items" firestore:"items"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
}

func (c *Cart) ItemFor(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
