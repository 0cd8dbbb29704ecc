package entity

import (
	"time"
)

// Review is a buyer's review of a product. One review per (product, reviewer).
type Review struct {
	ID         string    `json:"id" firestore:"id"`
	ProductID  string    `json:"product_id" firestore:"productId"`
	ReviewerID string    `json:"reviewer_id" firestore:"reviewerId"`
	Rating     int       `json:"rating" firestore:"rating"` // 1-5
	Content    string    `json:"content" firestore:"content"`
	Status     string    `json:"status" firestore:"status"` // "active", "hidden"
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}
