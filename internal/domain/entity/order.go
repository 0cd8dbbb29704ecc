package entity

import (
	"time"
)

// OrderItem snapshots a product line at checkout time so later product edits
// do not rewrite history.
type OrderItem struct {
	ProductID string  `json:"product_id" firestore:"productId"`
	VendorID  string  `json:"vendor_id" firestore:"vendorId"`
	Title     string  `json:"title" firestore:"title"`
	UnitPrice float64 `json:"unit_price" firestore:"unitPrice"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
}

type Order struct {
	ID        string      `json:"id" firestore:"id"`
	BuyerID   string      `json:"buyer_id" firestore:"buyerId"`
	VendorIDs []string    `json:"vendor_ids" firestore:"vendorIds"`
	Items     []OrderItem `json:"items" firestore:"items"`
	Total     float64     `json:"total" firestore:"total"`
	Status    string      `json:"status" firestore:"status"` // "pending", "shipped", "completed", "cancelled"
	CreatedAt time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time   `json:"updated_at" firestore:"updatedAt"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

func (o *Order) HasVendor(vendorID string) bool {
	for _, id := range o.VendorIDs {
		if id == vendorID {
			return true
		}
	}
	return false
}
